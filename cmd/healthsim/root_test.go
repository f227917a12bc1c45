package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/vitals/prefabs"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := prefabs.Dir()
	t.Cleanup(func() { prefabs.SetDir(prev) })
	t.Setenv("VITALS_LOG_LEVEL", "error")

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "--prefabs", t.TempDir(), "validate", "player.yaml", "grunt.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "player.yaml: ok (max=100 critical=0.3 initial=100 invincible=false)")
	assert.Contains(t, out, "grunt.yaml: ok")
}

func TestValidateReportsFailures(t *testing.T) {
	d := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(d, "bad.yaml"), []byte("name: bad\ncomponents:\n  health:\n    critical_health_ratio: 2\n"), 0o644))

	out, err := execute(t, "--prefabs", d, "validate", "bad.yaml", "medkit.yaml", "player.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 prefabs invalid")
	assert.Contains(t, out, "bad.yaml:")
	assert.Contains(t, out, "medkit.yaml:")
	assert.Contains(t, out, "player.yaml: ok")
}

func TestRun(t *testing.T) {
	d := t.TempDir()
	path := filepath.Join(d, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: smoke
frames: 3
actors:
  - {name: hero, prefab: player.yaml}
steps:
  - {frame: 1, actor: hero, op: damage, amount: 80}
`), 0o644))

	out, err := execute(t, "--prefabs", d, "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "scenario smoke: 3 frames, 1 events")
	assert.Contains(t, out, "20/100")
	assert.Contains(t, out, "critical")
}

func TestRunRequiresScenario(t *testing.T) {
	_, err := execute(t, "run")
	assert.Error(t, err)

	_, err = execute(t, "run", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBadConfig(t *testing.T) {
	t.Setenv("VITALS_LOG_FORMAT", "xml")
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"validate", "player.yaml"})
	assert.Error(t, cmd.Execute())
}
