// Package config loads the runtime configuration of the qseries engine from
// environment variables.
package config

import (
	"github.com/cockroachdb/errors"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. QSERIES_TRUNC.
const Prefix = "QSERIES"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the engine configuration. The sections are embedded so that
// their variables share the QSERIES_ prefix.
type Config struct {
	EngineConfig
	LogConfig
}

// EngineConfig holds the series engine configuration.
type EngineConfig struct {
	// Trunc is the default truncation degree T of new series.
	Trunc int `envconfig:"TRUNC" default:"50"`
	// DisplayTerms is the number of terms shown when rendering a series.
	DisplayTerms int  `envconfig:"DISPLAY_TERMS" default:"30"`
	EtaCache     bool `envconfig:"ETA_CACHE" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"warn"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		EngineConfig: EngineConfig{
			Trunc:        50,
			DisplayTerms: 30,
			EtaCache:     true,
		},
		LogConfig: LogConfig{
			Level:       "warn",
			Development: false,
		},
	}
}

// Validate checks the ranges of the configuration values.
func (c *Config) Validate() error {
	if c.Trunc < 1 {
		return errors.Wrapf(ErrInvalidConfig, "%s_TRUNC must be positive but is %d", Prefix, c.Trunc)
	}
	if c.DisplayTerms < 1 {
		return errors.Wrapf(ErrInvalidConfig, "%s_DISPLAY_TERMS must be positive but is %d", Prefix, c.DisplayTerms)
	}
	return nil
}
