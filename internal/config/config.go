// Package config loads scanr configuration from an optional YAML file and
// merges it with command-line flags, which always take precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Valid color modes for match highlighting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents scanr configuration options that can be supplied through
// a config file as defaults for the corresponding CLI flags.
type Config struct {
	// Threads is the worker pool size (default: number of CPUs).
	Threads int `yaml:"threads"`

	// ColorMode controls match highlighting: auto, always or never.
	ColorMode string `yaml:"color"`

	// LogLevel sets the diagnostic verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// BeforeContext is the default number of leading context lines.
	BeforeContext int `yaml:"before_context"`

	// AfterContext is the default number of trailing context lines.
	AfterContext int `yaml:"after_context"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Threads:       runtime.NumCPU(),
		ColorMode:     ColorAuto,
		LogLevel:      "info",
		BeforeContext: 0,
		AfterContext:  0,
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from the file over the defaults.
	if fileCfg.Threads != 0 {
		cfg.Threads = fileCfg.Threads
	}
	if fileCfg.ColorMode != "" {
		cfg.ColorMode = fileCfg.ColorMode
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.BeforeContext != 0 {
		cfg.BeforeContext = fileCfg.BeforeContext
	}
	if fileCfg.AfterContext != 0 {
		cfg.AfterContext = fileCfg.AfterContext
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .scanr/config.yaml in the
// specified directory. If the directory or file doesn't exist, returns
// default configuration without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".scanr", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration. Non-nil flag
// values override configuration values, so flags take precedence over the
// config file.
func (c *Config) MergeWithFlags(threads *int, colorMode *string, before, after *int) {
	if threads != nil {
		c.Threads = *threads
	}
	if colorMode != nil {
		c.ColorMode = *colorMode
	}
	if before != nil {
		c.BeforeContext = *before
	}
	if after != nil {
		c.AfterContext = *after
	}
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if c.Threads <= 0 {
		return fmt.Errorf("threads must be > 0, got %d", c.Threads)
	}

	if c.BeforeContext < 0 {
		return fmt.Errorf("before_context must be >= 0, got %d", c.BeforeContext)
	}
	if c.AfterContext < 0 {
		return fmt.Errorf("after_context must be >= 0, got %d", c.AfterContext)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q, must be one of: auto, always, never", c.ColorMode)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	return nil
}
