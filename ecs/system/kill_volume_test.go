package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
)

func TestKillVolumeAndLevelBounds(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
		dead bool
	}{
		{"inside_level", 50, 50, false},
		{"touching_kill_plane", 50, 195, true},
		{"left_of_level", -20, 50, true},
		{"above_level", 50, 400, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, _, sched := newPipeline(nil)

			level := ecs.CreateEntity(w)
			require.NoError(t, ecs.Add(w, level, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Bounds: cp.BB{L: 0, B: 0, R: 300, T: 300}}))
			plane := ecs.CreateEntity(w)
			require.NoError(t, ecs.Add(w, plane, component.KillVolumeComponent.Kind(), &component.KillVolume{Bounds: cp.BB{L: 0, B: 200, R: 300, T: 220}}))

			_, st := spawnActor(t, w, "player", c.x, c.y)
			st.SetInvincible(true)
			run(sched, w, 1)

			assert.Equal(t, c.dead, st.IsDead())
		})
	}
}

func TestKillVolumeWithoutVolumesIsNoop(t *testing.T) {
	w := ecs.NewWorld()
	_, _, sched := newPipeline(nil)
	_, st := spawnActor(t, w, "player", -1000, -1000)

	run(sched, w, 1)
	assert.True(t, st.IsAlive())
}
