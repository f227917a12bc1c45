package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, LogFormatPretty, cfg.Format())
	assert.Equal(t, "prefabs", cfg.PrefabDir)
	assert.Equal(t, 60, cfg.TickRate)
	assert.False(t, cfg.Watch)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("VITALS_LOG_LEVEL", "DEBUG")
	t.Setenv("VITALS_LOG_FORMAT", "json")
	t.Setenv("VITALS_PREFAB_DIR", "/tmp/prefabs")
	t.Setenv("VITALS_TICK_RATE", "30")
	t.Setenv("VITALS_WATCH", "true")

	cfg, err := Load()
	require.NoError(t, err)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)
	assert.Equal(t, LogFormatJSON, cfg.Format())
	assert.Equal(t, "/tmp/prefabs", cfg.PrefabDir)
	assert.Equal(t, 30, cfg.TickRate)
	assert.True(t, cfg.Watch)
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		name, key, value string
	}{
		{"bad_level", "VITALS_LOG_LEVEL", "loud"},
		{"bad_format", "VITALS_LOG_FORMAT", "xml"},
		{"zero_tick_rate", "VITALS_TICK_RATE", "0"},
		{"unparseable_tick_rate", "VITALS_TICK_RATE", "fast"},
		{"unparseable_watch", "VITALS_WATCH", "maybe"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(c.key, c.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
