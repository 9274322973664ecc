// Package config provides configuration management for the querydef CLI.
//
// Settings are layered from lowest to highest precedence: built-in
// defaults, a querydef.yaml file, QUERYDEF_ environment variables and
// explicitly set command-line flags.
package config

import (
	"log/slog"
	"time"
)

// Config holds all CLI configuration options.
type Config struct {
	// Prefix is prepended to every generated constant.
	Prefix string `koanf:"prefix"`
	// Package overrides the package name derived from the identifier path.
	Package      string      `koanf:"package"`
	LogLevel     slog.Level  `koanf:"log_level"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	Color        string      `koanf:"color"`
	Watch        WatchConfig `koanf:"watch"`

	// File is the config file that was read, or "" when none was.
	File string `koanf:"-"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	// Debounce is how long to wait after the last file event before
	// regenerating.
	Debounce time.Duration `koanf:"debounce"`
}

// Default configuration values.
const (
	DefaultLogLevel = "warn"
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultColor    = "auto"
	DefaultDebounce = 100 * time.Millisecond
)

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		LogLevel:     slog.LevelWarn,
		OutputFormat: DefaultOutput,
		Color:        DefaultColor,
		Watch:        WatchConfig{Debounce: DefaultDebounce},
	}
}
