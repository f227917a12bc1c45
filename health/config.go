package health

import (
	"math"

	"github.com/rotisserie/eris"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = eris.New("health: invalid config")

const (
	DefaultMaxHealth           float64 = 10
	DefaultCriticalHealthRatio float64 = 0.3
)

// Config holds the creation-time settings of a State. None of these values
// change for the lifetime of the entity except the invincible flag.
type Config struct {
	MaxHealth           float64  `yaml:"max_health"`
	CriticalHealthRatio float64  `yaml:"critical_health_ratio"`
	InitialHealth       *float64 `yaml:"initial_health,omitempty"`
	Invincible          bool     `yaml:"invincible"`
}

// DefaultConfig returns a full-health config with max 10 and a 30% critical threshold.
func DefaultConfig() Config {
	return Config{
		MaxHealth:           DefaultMaxHealth,
		CriticalHealthRatio: DefaultCriticalHealthRatio,
	}
}

// Validate reports the first contract violation in c.
func (c Config) Validate() error {
	if math.IsNaN(c.MaxHealth) || math.IsInf(c.MaxHealth, 0) || c.MaxHealth <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "max health must be a finite value > 0, got %v", c.MaxHealth)
	}
	if math.IsNaN(c.CriticalHealthRatio) || c.CriticalHealthRatio < 0 || c.CriticalHealthRatio > 1 {
		return eris.Wrapf(ErrInvalidConfig, "critical health ratio must be in [0,1], got %v", c.CriticalHealthRatio)
	}
	if c.InitialHealth != nil {
		v := *c.InitialHealth
		if math.IsNaN(v) || v < 0 || v > c.MaxHealth {
			return eris.Wrapf(ErrInvalidConfig, "initial health must be in [0,%v], got %v", c.MaxHealth, v)
		}
	}
	return nil
}

func (c Config) initial() float64 {
	if c.InitialHealth == nil {
		return c.MaxHealth
	}
	return *c.InitialHealth
}
