// Package scenario plays scripted health timelines against prefab actors
// without a window.
package scenario

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = eris.New("scenario: invalid")

type Op string

const (
	OpDamage     Op = "damage"
	OpHeal       Op = "heal"
	OpKill       Op = "kill"
	OpInvincible Op = "invincible"
	OpVulnerable Op = "vulnerable"
	OpMove       Op = "move"
)

type Spec struct {
	Name   string      `yaml:"name"`
	Frames int         `yaml:"frames"`
	Actors []ActorSpec `yaml:"actors"`
	Steps  []Step      `yaml:"steps"`
}

// ActorSpec spawns Prefab under Name. A nil X or Y keeps the prefab's
// position.
type ActorSpec struct {
	Name   string   `yaml:"name"`
	Prefab string   `yaml:"prefab"`
	X      *float64 `yaml:"x"`
	Y      *float64 `yaml:"y"`
}

// Step is applied before the update of Frame. Frames only matters for
// invincible, where a positive value grants timed invulnerability.
type Step struct {
	Frame  int     `yaml:"frame"`
	Actor  string  `yaml:"actor"`
	Op     Op      `yaml:"op"`
	Amount float64 `yaml:"amount"`
	Source string  `yaml:"source"`
	Frames int     `yaml:"frames"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

func Parse(data []byte) (Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, eris.Wrap(err, "scenario: decode")
	}
	if spec.Frames == 0 {
		for _, st := range spec.Steps {
			if st.Frame+1 > spec.Frames {
				spec.Frames = st.Frame + 1
			}
		}
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, eris.Wrapf(err, "scenario: read %s", path)
	}
	spec, err := Parse(data)
	if err != nil {
		return Spec{}, eris.Wrapf(err, "scenario: %s", path)
	}
	if spec.Name == "" {
		spec.Name = path
	}
	return spec, nil
}

func (s Spec) Validate() error {
	if s.Frames <= 0 {
		return eris.Wrapf(ErrInvalidScenario, "frames must be positive, got %d", s.Frames)
	}
	if len(s.Actors) == 0 {
		return eris.Wrap(ErrInvalidScenario, "no actors")
	}
	names := make(map[string]struct{}, len(s.Actors))
	for i, a := range s.Actors {
		if a.Name == "" {
			return eris.Wrapf(ErrInvalidScenario, "actor %d has no name", i)
		}
		if a.Prefab == "" {
			return eris.Wrapf(ErrInvalidScenario, "actor %q has no prefab", a.Name)
		}
		if _, dup := names[a.Name]; dup {
			return eris.Wrapf(ErrInvalidScenario, "duplicate actor %q", a.Name)
		}
		names[a.Name] = struct{}{}
	}
	for i, st := range s.Steps {
		if st.Frame < 0 || st.Frame >= s.Frames {
			return eris.Wrapf(ErrInvalidScenario, "step %d: frame %d outside [0, %d)", i, st.Frame, s.Frames)
		}
		if _, ok := names[st.Actor]; !ok {
			return eris.Wrapf(ErrInvalidScenario, "step %d: unknown actor %q", i, st.Actor)
		}
		if st.Source != "" {
			if _, ok := names[st.Source]; !ok {
				return eris.Wrapf(ErrInvalidScenario, "step %d: unknown source %q", i, st.Source)
			}
		}
		switch st.Op {
		case OpDamage, OpHeal, OpKill, OpInvincible, OpVulnerable, OpMove:
		default:
			return eris.Wrapf(ErrInvalidScenario, "step %d: unknown op %q", i, st.Op)
		}
	}
	return nil
}
