// Package config loads client configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything needed to construct an API client.
type Config struct {
	APIBaseURL     string        `env:"POLICY_API_BASE_URL" env-default:"http://localhost:8000/api"`
	APIToken       string        `env:"POLICY_API_TOKEN"`
	RequestTimeout time.Duration `env:"POLICY_REQUEST_TIMEOUT" env-default:"30s"`
	LogLevel       string        `env:"POLICY_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("POLICY_API_BASE_URL must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("POLICY_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
