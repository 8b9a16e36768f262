// Package errors provides centralized error definitions and error handling utilities
// for skim. It defines sentinel errors, typed errors with context, and
// classification helpers used by the CLI to decide how a failure is reported.
//
// # Error Types
//
//   - EncodingError: the input stream is not valid UTF-8 (fatal, user-facing)
//   - IndexError: a line index outside the buffer was requested (internal
//     invariant violation, never user-facing)
//   - ValidationError: invalid configuration or key binding
//
// # Usage
//
//	err := errors.NewEncodingError(offset, line)
//	if errors.Is(err, errors.ErrInvalidEncoding) { ... }
//
//	var encErr *errors.EncodingError
//	if errors.As(err, &encErr) {
//	    fmt.Println(encErr.Offset)
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for invariant violations inside the pager core.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

var (
	// ErrInvalidEncoding indicates that the input is not valid UTF-8.
	ErrInvalidEncoding = New("invalid UTF-8 input")
	// ErrIndexOutOfRange indicates a line index outside the buffer.
	ErrIndexOutOfRange = New("line index out of range")
	// ErrNoMatches indicates that match navigation was requested with no matches.
	ErrNoMatches = New("no matches")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// SkimError is the base interface for all typed errors in this module.
type SkimError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Typed Errors
// -----------------------------------------------------------------------------

// EncodingError reports the first byte sequence of the input that is not
// valid UTF-8.
//
// Example:
//
//	err := errors.NewEncodingError(1042, 17)
//	fmt.Println(err) // "encoding error [offset=1042, line=17]: input is not valid UTF-8: invalid UTF-8 input"
type EncodingError struct {
	baseError
	// Offset is the 0-based byte offset of the invalid sequence in the stream.
	Offset int64
	// Line is the 1-based line containing the invalid sequence.
	Line int
}

// NewEncodingError creates a new EncodingError.
func NewEncodingError(offset int64, line int) *EncodingError {
	return &EncodingError{
		baseError: baseError{
			message:    "input is not valid UTF-8",
			cause:      ErrInvalidEncoding,
			severity:   SeverityError,
			userFacing: true,
		},
		Offset: offset,
		Line:   line,
	}
}

// Error returns the formatted error message.
func (e *EncodingError) Error() string {
	prefix := fmt.Sprintf("encoding error [offset=%d, line=%d]", e.Offset, e.Line)
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// IndexError reports an out-of-range line lookup.
type IndexError struct {
	baseError
	Index int
	Count int
}

// NewIndexError creates a new IndexError for index i in a buffer of count lines.
func NewIndexError(i, count int) *IndexError {
	return &IndexError{
		baseError: baseError{
			message:    fmt.Sprintf("line %d requested from buffer of %d lines", i, count),
			cause:      ErrIndexOutOfRange,
			severity:   SeverityCritical,
			userFacing: false,
		},
		Index: i,
		Count: count,
	}
}

// ValidationError represents invalid configuration or key binding input.
//
// Example:
//
//	err := errors.NewValidationError("unknown command").WithField("keys.normal").WithValue("jump")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Reason returns the message and cause without the field and value prefix.
func (e *ValidationError) Reason() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Is reports ValidationError as matching ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var skimErr SkimError
	if As(err, &skimErr) {
		return skimErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement SkimError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var skimErr SkimError
	if As(err, &skimErr) {
		return skimErr.Severity()
	}
	return SeverityError
}

// IsFatal reports whether err must abort the program before or during the
// interactive session.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return Is(err, ErrInvalidEncoding) || GetSeverity(err) >= SeverityCritical
}

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
