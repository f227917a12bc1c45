package prefabs

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, err
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, eris.Wrapf(err, "prefabs: unmarshal %s", filename)
	}

	return spec, nil
}

// YAMLColor decodes "#rrggbb" or "#rrggbbaa".
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return eris.New("prefabs: color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return eris.Errorf("prefabs: invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return eris.Wrapf(err, "prefabs: invalid color %s", value.Value)
	}
	g, err := parse(2)
	if err != nil {
		return eris.Wrapf(err, "prefabs: invalid color %s", value.Value)
	}
	b, err := parse(4)
	if err != nil {
		return eris.Wrapf(err, "prefabs: invalid color %s", value.Value)
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
