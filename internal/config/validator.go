package config

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/Iron-Ham/skim/internal/errors"
	"github.com/Iron-Ham/skim/internal/keymap"
	"github.com/Iron-Ham/skim/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "pager.tab_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Is lets errors.Is(err, errors.ErrInvalidInput) match a failed Load.
func (e ValidationErrors) Is(target error) bool {
	return target == errors.ErrInvalidInput
}

const (
	minTabWidth = 1
	maxTabWidth = 16
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, c.validatePager()...)
	errs = append(errs, c.validateTheme()...)
	errs = append(errs, c.validateKeys()...)
	errs = append(errs, c.validateLogging()...)

	return errs
}

func (c *Config) validatePager() []ValidationError {
	var errs []ValidationError

	if c.Pager.TabWidth < minTabWidth || c.Pager.TabWidth > maxTabWidth {
		errs = append(errs, ValidationError{
			Field:   "pager.tab_width",
			Value:   c.Pager.TabWidth,
			Message: fmt.Sprintf("must be between %d and %d", minTabWidth, maxTabWidth),
		})
	}

	return errs
}

func (c *Config) validateTheme() []ValidationError {
	var errs []ValidationError

	styles := []struct {
		name  string
		style StyleConfig
	}{
		{"match", c.Theme.Match},
		{"current", c.Theme.Current},
		{"prompt", c.Theme.Prompt},
		{"message", c.Theme.Message},
	}
	for _, s := range styles {
		for _, color := range []struct{ field, value string }{
			{"foreground", s.style.Foreground},
			{"background", s.style.Background},
		} {
			if !IsValidColor(color.value) {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("theme.%s.%s", s.name, color.field),
					Value:   color.value,
					Message: "must be #rgb, #rrggbb, or an ANSI color number 0-255",
				})
			}
		}
	}

	return errs
}

// IsValidColor reports whether s is empty, a hex color, or an ANSI color number.
func IsValidColor(s string) bool {
	if s == "" || hexColorRegex.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}

// validateKeys applies the overrides to a scratch default keymap so that
// every problem is reported before the real keymap is touched.
func (c *Config) validateKeys() []ValidationError {
	if len(c.Keys) == 0 {
		return nil
	}

	err := keymap.DefaultKeymap().Apply(c.Keys)
	if err == nil {
		return nil
	}

	var errs []ValidationError
	for _, e := range flatten(err) {
		var ve *errors.ValidationError
		if errors.As(e, &ve) {
			errs = append(errs, ValidationError{Field: ve.Field, Value: ve.Value, Message: ve.Reason()})
			continue
		}
		errs = append(errs, ValidationError{Field: "keys", Message: e.Error()})
	}
	return errs
}

func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func (c *Config) validateLogging() []ValidationError {
	var errs []ValidationError

	levels := logging.ValidLevels()
	if c.Logging.Level != "" && !slices.Contains(levels, strings.ToUpper(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.ToLower(strings.Join(levels, ", "))),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errs
}
