package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Overrides are the settings the environment may change. Unset variables
// leave the pointer nil.
type Overrides struct {
	Size    *int    `env:"TURING_SIZE"`
	Seed    *int64  `env:"TURING_SEED"`
	Workers *int    `env:"TURING_WORKERS"`
	Strict  *bool   `env:"TURING_STRICT"`
	DataDir *string `env:"TURING_DATA"`
}

// ApplyEnv overlays TURING_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var o Overrides
	if err := ParseEnv(&o); err != nil {
		return err
	}
	if o.Size != nil {
		cfg.Size = *o.Size
	}
	if o.Seed != nil {
		cfg.Seed = *o.Seed
	}
	if o.Workers != nil {
		cfg.Workers = *o.Workers
	}
	if o.Strict != nil {
		cfg.Strict = *o.Strict
	}
	if o.DataDir != nil {
		cfg.DataDir = *o.DataDir
	}
	return nil
}
