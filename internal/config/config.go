package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/skim/internal/logging"
)

// Config represents the complete skim configuration
type Config struct {
	Pager PagerConfig `mapstructure:"pager"`
	Theme ThemeConfig `mapstructure:"theme"`
	// Keys rebinds commands per mode, e.g. keys.normal.scroll_down: [j, down]
	Keys    map[string]map[string][]string `mapstructure:"keys"`
	Logging LoggingConfig                  `mapstructure:"logging"`
}

// PagerConfig controls how content is displayed
type PagerConfig struct {
	// TabWidth is the number of columns a tab stop spans (default: 8)
	TabWidth int `mapstructure:"tab_width"`
	// ShowPosition shows "line/total pct%" at the right of the prompt row (default: true)
	ShowPosition bool `mapstructure:"show_position"`
}

// ThemeConfig holds the styles used when rendering
type ThemeConfig struct {
	// Match styles every search match
	Match StyleConfig `mapstructure:"match"`
	// Current styles the match the cursor is on
	Current StyleConfig `mapstructure:"current"`
	// Prompt styles the prompt row
	Prompt StyleConfig `mapstructure:"prompt"`
	// Message styles one-shot status messages
	Message StyleConfig `mapstructure:"message"`
}

// StyleConfig is a foreground/background pair. Colors are "#rgb",
// "#rrggbb", or an ANSI color number from 0 to 255. Empty means the
// terminal default.
type StyleConfig struct {
	Foreground string `mapstructure:"foreground"`
	Background string `mapstructure:"background"`
	Bold       bool   `mapstructure:"bold"`
	Reverse    bool   `mapstructure:"reverse"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path (default: <config dir>/skim.log)
	File string `mapstructure:"file"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 2)
	MaxBackups int `mapstructure:"max_backups"`
	// Compress gzips rotated backups (default: false)
	Compress bool `mapstructure:"compress"`
}

// Rotation returns the rotation settings for the log writer.
func (c LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
}

// Path returns the log file path, or "" when logging is disabled.
func (c LoggingConfig) Path() string {
	if !c.Enabled {
		return ""
	}
	if c.File != "" {
		return c.File
	}
	return filepath.Join(ConfigDir(), "skim.log")
}

// Default returns a Config with sensible default values
func Default() *Config {
	rotation := logging.DefaultRotationConfig()
	return &Config{
		Pager: PagerConfig{
			TabWidth:     8,
			ShowPosition: true,
		},
		Theme: ThemeConfig{
			Match: StyleConfig{
				Foreground: "0",
				Background: "3",
			},
			Current: StyleConfig{
				Foreground: "0",
				Background: "208",
				Bold:       true,
			},
			Prompt:  StyleConfig{},
			Message: StyleConfig{Reverse: true},
		},
		Keys: map[string]map[string][]string{},
		Logging: LoggingConfig{
			Enabled:    false,
			Level:      "info",
			File:       "",
			MaxSizeMB:  rotation.MaxSizeMB,
			MaxBackups: rotation.MaxBackups,
			Compress:   rotation.Compress,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	SetDefaultsFor(viper.GetViper())
}

// SetDefaultsFor registers default values with v.
func SetDefaultsFor(v *viper.Viper) {
	defaults := Default()

	// Pager defaults
	v.SetDefault("pager.tab_width", defaults.Pager.TabWidth)
	v.SetDefault("pager.show_position", defaults.Pager.ShowPosition)

	// Theme defaults
	setStyleDefaults(v, "theme.match", defaults.Theme.Match)
	setStyleDefaults(v, "theme.current", defaults.Theme.Current)
	setStyleDefaults(v, "theme.prompt", defaults.Theme.Prompt)
	setStyleDefaults(v, "theme.message", defaults.Theme.Message)

	v.SetDefault("keys", defaults.Keys)

	// Logging defaults
	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	v.SetDefault("logging.compress", defaults.Logging.Compress)
}

func setStyleDefaults(v *viper.Viper, prefix string, s StyleConfig) {
	v.SetDefault(prefix+".foreground", s.Foreground)
	v.SetDefault(prefix+".background", s.Background)
	v.SetDefault(prefix+".bold", s.Bold)
	v.SetDefault(prefix+".reverse", s.Reverse)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load for a specific viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "skim")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skim"
	}
	return filepath.Join(home, ".config", "skim")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
