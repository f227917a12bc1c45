// Package config loads process settings from the environment.
package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

type LogFormat string

const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

type Config struct {
	// Log level ("debug", "info", "warn", "error").
	LogLevel string `env:"VITALS_LOG_LEVEL" envDefault:"info"`

	// Log format ("pretty", "json").
	LogFormat string `env:"VITALS_LOG_FORMAT" envDefault:"pretty"`

	// PrefabDir overrides embedded prefabs and scripts from disk.
	PrefabDir string `env:"VITALS_PREFAB_DIR" envDefault:"prefabs"`

	// TickRate is the simulation rate in updates per second.
	TickRate int `env:"VITALS_TICK_RATE" envDefault:"60"`

	// Watch enables hot reload of PrefabDir.
	Watch bool `env:"VITALS_WATCH" envDefault:"false"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{}

	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse config")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

func (cfg Config) Validate() error {
	if _, err := cfg.Level(); err != nil {
		return err
	}
	if cfg.Format() == "" {
		return eris.Errorf("invalid log format: %s (must be 'json' or 'pretty')", cfg.LogFormat)
	}
	if cfg.TickRate <= 0 {
		return eris.Errorf("tick rate must be positive, got %d", cfg.TickRate)
	}
	return nil
}

func (cfg Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return zerolog.NoLevel, eris.Errorf("invalid log level: %s (must be 'debug', 'info', 'warn', or 'error')", cfg.LogLevel)
	}
	return lvl, nil
}

// Format returns the parsed log format, or "" when unrecognised.
func (cfg Config) Format() LogFormat {
	switch LogFormat(strings.ToLower(cfg.LogFormat)) {
	case LogFormatPretty:
		return LogFormatPretty
	case LogFormatJSON:
		return LogFormatJSON
	}
	return ""
}
