package health

import (
	"math"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"zero_ratio", Config{MaxHealth: 1, CriticalHealthRatio: 0}, false},
		{"full_ratio", Config{MaxHealth: 1, CriticalHealthRatio: 1}, false},
		{"initial_zero", Config{MaxHealth: 5, InitialHealth: floatPtr(0)}, false},
		{"initial_max", Config{MaxHealth: 5, InitialHealth: floatPtr(5)}, false},
		{"zero_max", Config{MaxHealth: 0, CriticalHealthRatio: 0.3}, true},
		{"negative_max", Config{MaxHealth: -10, CriticalHealthRatio: 0.3}, true},
		{"nan_max", Config{MaxHealth: math.NaN()}, true},
		{"inf_max", Config{MaxHealth: math.Inf(1)}, true},
		{"ratio_below_zero", Config{MaxHealth: 10, CriticalHealthRatio: -0.1}, true},
		{"ratio_above_one", Config{MaxHealth: 10, CriticalHealthRatio: 1.5}, true},
		{"initial_above_max", Config{MaxHealth: 10, InitialHealth: floatPtr(11)}, true},
		{"initial_negative", Config{MaxHealth: 10, InitialHealth: floatPtr(-1)}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.cfg.Validate()
			if !c.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrInvalidConfig))

			s, err := New(c.cfg)
			assert.Nil(t, s)
			assert.Error(t, err)
		})
	}
}

func TestConfigYAML(t *testing.T) {
	src := []byte("max_health: 25\ncritical_health_ratio: 0.25\ninitial_health: 5\ninvincible: true\n")
	var cfg Config
	require.NoError(t, yaml.Unmarshal(src, &cfg))
	require.NoError(t, cfg.Validate())

	s := MustNew(cfg)
	assert.Equal(t, 5.0, s.Current())
	assert.Equal(t, 25.0, s.Max())
	assert.True(t, s.Invincible())
	assert.True(t, s.IsCritical())
}
