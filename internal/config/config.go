// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Output formats for review reports
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Deck  string `json:"deck,omitempty"`  // Path to the .pptx deck
	Rules string `json:"rules,omitempty"` // Path to the rule text (markdown or HTML)
	Out   string `json:"out,omitempty"`   // Report output path; stdout when empty

	// Output
	Format string `json:"format,omitempty" validate:"omitempty,oneof=json text"`

	// Behavior
	Concurrency   int    `json:"concurrency,omitempty" validate:"gte=0"` // Parallel slide parsers, 0 = unbounded
	LogLevel      string `json:"log_level,omitempty" validate:"omitempty,oneof=error warn info debug"`
	LogFormat     string `json:"log_format,omitempty" validate:"omitempty,oneof=json logfmt text"`
	Verbose       bool   `json:"verbose,omitempty"`         // Print the console report alongside JSON
	FailOnWarning bool   `json:"fail_on_warning,omitempty"` // Treat warning violations as failures
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Format:    FormatJSON,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.Deck != "" {
		if _, err := os.Stat(c.Deck); os.IsNotExist(err) {
			return fmt.Errorf("config error: deck file not found: %s", c.Deck)
		}
	}
	if c.Rules != "" {
		if _, err := os.Stat(c.Rules); os.IsNotExist(err) {
			return fmt.Errorf("config error: rules file not found: %s", c.Rules)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Deck == "" {
		result.Deck = defaults.Deck
	}
	if result.Rules == "" {
		result.Rules = defaults.Rules
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: a true default wins since unset cannot be told apart from false
	result.Verbose = result.Verbose || defaults.Verbose
	result.FailOnWarning = result.FailOnWarning || defaults.FailOnWarning

	return result
}
