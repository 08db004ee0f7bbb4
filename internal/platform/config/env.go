// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is shared by every cementdash subcommand. Flags override it.
type Config struct {
	HTTPAddr        string        `env:"CEMENT_TARGETS_HTTP_ADDR" envDefault:"localhost:8501"`
	DatasetPath     string        `env:"CEMENT_TARGETS_DATASET"`
	OutputDir       string        `env:"CEMENT_TARGETS_OUTPUT_DIR" envDefault:"."`
	ShutdownTimeout time.Duration `env:"CEMENT_TARGETS_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	// Tracing is on only when an endpoint is set and it is not disabled.
	OTelEndpoint string `env:"CEMENT_TARGETS_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"CEMENT_TARGETS_OTEL_ENABLED" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns Config populated from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
