package prefabs

import (
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/vitals/health"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// HealthComponentSpec is the health block of a prefab. Omitted fields take
// the health package defaults.
type HealthComponentSpec struct {
	MaxHealth           *float64 `yaml:"max_health"`
	CriticalHealthRatio *float64 `yaml:"critical_health_ratio"`
	InitialHealth       *float64 `yaml:"initial_health"`
	Invincible          bool     `yaml:"invincible"`
}

// Config fills omitted fields from health.DefaultConfig and validates the result.
func (s HealthComponentSpec) Config() (health.Config, error) {
	cfg := health.DefaultConfig()
	if s.MaxHealth != nil {
		cfg.MaxHealth = *s.MaxHealth
	}
	if s.CriticalHealthRatio != nil {
		cfg.CriticalHealthRatio = *s.CriticalHealthRatio
	}
	cfg.InitialHealth = s.InitialHealth
	cfg.Invincible = s.Invincible
	if err := cfg.Validate(); err != nil {
		return health.Config{}, eris.Wrap(err, "prefabs: health")
	}
	return cfg, nil
}

// LoadHealthConfig loads only the health block of a prefab.
func LoadHealthConfig(filename string) (health.Config, error) {
	spec, err := LoadEntityBuildSpec(filename)
	if err != nil {
		return health.Config{}, err
	}
	raw, ok := spec.Components["health"]
	if !ok {
		return health.Config{}, eris.Errorf("prefabs: %s has no health component", filename)
	}
	hs, err := DecodeComponentSpec[HealthComponentSpec](raw)
	if err != nil {
		return health.Config{}, eris.Wrapf(err, "prefabs: decode health in %s", filename)
	}
	return hs.Config()
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type ColliderComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ActorComponentSpec struct {
	Name  string     `yaml:"name"`
	Color *YAMLColor `yaml:"color"`
}

type HealPickupComponentSpec struct {
	Amount float64 `yaml:"amount"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type InvulnerableComponentSpec struct {
	Frames int `yaml:"frames"`
}

// BoundsSpec is an axis-aligned box in world units.
type BoundsSpec struct {
	Left   float64 `yaml:"left"`
	Bottom float64 `yaml:"bottom"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
}

func (b BoundsSpec) Validate() error {
	if b.Right < b.Left || b.Top < b.Bottom {
		return eris.Errorf("prefabs: inverted bounds l=%g b=%g r=%g t=%g", b.Left, b.Bottom, b.Right, b.Top)
	}
	return nil
}

type KillVolumeComponentSpec struct {
	Bounds BoundsSpec `yaml:"bounds"`
}

type LevelBoundsComponentSpec struct {
	Bounds BoundsSpec `yaml:"bounds"`
}

type ScriptComponentSpec struct {
	Path  string `yaml:"path"`
	Every int    `yaml:"every"`
}

type DeathDespawnComponentSpec struct {
	Frames int `yaml:"frames"`
}
