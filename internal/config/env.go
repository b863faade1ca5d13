package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by FromEnv
const (
	EnvLogLevel    = "DECK_DETECTIVE_LOG_LEVEL"
	EnvLogFormat   = "DECK_DETECTIVE_LOG_FORMAT"
	EnvConcurrency = "DECK_DETECTIVE_CONCURRENCY"
)

// FromEnv builds a partial configuration from environment variables.
// Unset variables leave the corresponding fields empty.
func FromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:  os.Getenv(EnvLogLevel),
		LogFormat: os.Getenv(EnvLogFormat),
	}

	if s := os.Getenv(EnvConcurrency); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %v", EnvConcurrency, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("%s must be non-negative, got: %d", EnvConcurrency, n)
		}
		cfg.Concurrency = n
	}

	return cfg, nil
}
