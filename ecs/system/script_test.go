package system

import (
	"errors"
	"testing"

	"github.com/d5/tengo/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
	"github.com/milk9111/vitals/health"
	"github.com/milk9111/vitals/prefabs"
)

type memScripts map[string]string

func (m memScripts) load(path string) ([]byte, error) {
	src, ok := m[path]
	if !ok {
		return nil, errors.New("missing script " + path)
	}
	return []byte(src), nil
}

func attachScript(t *testing.T, w *ecs.World, e ecs.Entity, path string, every int) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: path, Every: every}))
}

func TestScriptDamagesActor(t *testing.T) {
	scripts := memScripts{"poison.tengo": `actor.damage(1)`}
	w := ecs.NewWorld()
	_, log, sched := newPipeline(scripts.load)
	e, st := spawnActor(t, w, "grunt", 0, 0)
	attachScript(t, w, e, "poison.tengo", 0)

	run(sched, w, 3)

	assert.Equal(t, 7.0, st.Current())
	require.Len(t, log.events, 3)
	assert.Equal(t, health.NoActor, log.events[0].Source)
}

func TestScriptPeriod(t *testing.T) {
	scripts := memScripts{"regen.tengo": `
if actor.alive && actor.current < actor.max {
	actor.heal(2)
}
`}
	w := ecs.NewWorld()
	_, _, sched := newPipeline(scripts.load)
	e, st := spawnActor(t, w, "player", 0, 0)
	st.SetCurrent(1)
	attachScript(t, w, e, "regen.tengo", 3)

	run(sched, w, 7)
	// frames 0, 3 and 6
	assert.Equal(t, 7.0, st.Current())
}

func TestScriptSeesFrameAndFlags(t *testing.T) {
	scripts := memScripts{"doom.tengo": `
if frame == 2 && !actor.invincible {
	actor.kill()
}
`}
	w := ecs.NewWorld()
	_, _, sched := newPipeline(scripts.load)
	e, st := spawnActor(t, w, "grunt", 0, 0)
	attachScript(t, w, e, "doom.tengo", 0)

	run(sched, w, 2)
	assert.True(t, st.IsAlive())
	run(sched, w, 1)
	assert.True(t, st.IsDead())
}

func TestScriptSetInvincible(t *testing.T) {
	scripts := memScripts{"shield.tengo": `
if actor.critical {
	actor.set_invincible(true)
}
`}
	w := ecs.NewWorld()
	_, _, sched := newPipeline(scripts.load)
	e, st := spawnActor(t, w, "boss", 0, 0)
	st.SetCurrent(2)
	attachScript(t, w, e, "shield.tengo", 0)

	run(sched, w, 1)
	assert.True(t, st.Invincible())
}

func TestScriptErrorsAreContained(t *testing.T) {
	scripts := memScripts{"broken.tengo": `actor.damage(`}
	w := ecs.NewWorld()
	s := NewScriptSystem(zerolog.Nop(), scripts.load)
	e, st := spawnActor(t, w, "grunt", 0, 0)
	attachScript(t, w, e, "broken.tengo", 0)

	assert.NotPanics(t, func() { s.Update(w) })
	assert.Equal(t, 10.0, st.Current())

	scripts["broken.tengo"] = `actor.damage(4)`
	s.Update(w)
	assert.Equal(t, 10.0, st.Current())

	s.Invalidate("broken.tengo")
	s.Update(w)
	assert.Equal(t, 6.0, st.Current())
}

func TestScriptFailuresForgetDestroyedActors(t *testing.T) {
	w := ecs.NewWorld()
	s := NewScriptSystem(zerolog.Nop(), memScripts{}.load)
	e, _ := spawnActor(t, w, "grunt", 0, 0)
	attachScript(t, w, e, "missing.tengo", 0)

	s.Update(w)
	assert.Contains(t, s.failed, e)

	require.True(t, ecs.DestroyEntity(w, e))
	s.Update(w)
	assert.Empty(t, s.failed)
	assert.Empty(t, s.cache)
}

type recordingTarget struct {
	*health.State
	damage []float64
}

func (r *recordingTarget) TakeDamage(amount float64, source health.ActorRef) {
	r.damage = append(r.damage, amount)
	r.State.TakeDamage(amount, source)
}

func TestActorObjectDrivesDamageable(t *testing.T) {
	target := &recordingTarget{State: health.MustNew(health.DefaultConfig())}
	obj := actorObject(target)

	maxHealth, ok := obj.Value["max"].(*tengo.Float)
	require.True(t, ok)
	assert.Equal(t, 10.0, maxHealth.Value)

	damage, ok := obj.Value["damage"].(*tengo.UserFunction)
	require.True(t, ok)
	out, err := damage.Value(&tengo.Int{Value: 3})
	require.NoError(t, err)
	assert.Equal(t, &tengo.Float{Value: 7}, out)
	assert.Equal(t, []float64{3}, target.damage)

	_, err = damage.Value()
	assert.ErrorIs(t, err, tengo.ErrWrongNumArguments)
}

func TestScriptRuntimeErrorKeepsRunning(t *testing.T) {
	scripts := memScripts{"bad_arg.tengo": `actor.damage("lots")`}
	w := ecs.NewWorld()
	s := NewScriptSystem(zerolog.Nop(), scripts.load)
	e, st := spawnActor(t, w, "grunt", 0, 0)
	attachScript(t, w, e, "bad_arg.tengo", 0)

	assert.NotPanics(t, func() {
		s.Update(w)
		s.Update(w)
	})
	assert.Equal(t, 10.0, st.Current())
}

func TestScriptInvalidateReloadsSource(t *testing.T) {
	scripts := memScripts{"tick.tengo": `actor.damage(1)`}
	w := ecs.NewWorld()
	s := NewScriptSystem(zerolog.Nop(), scripts.load)
	e, st := spawnActor(t, w, "grunt", 0, 0)
	attachScript(t, w, e, "tick.tengo", 0)

	s.Update(w)
	scripts["tick.tengo"] = `actor.heal(1)`
	s.Update(w)
	assert.Equal(t, 8.0, st.Current())

	s.Invalidate("scripts/tick.tengo")
	s.Update(w)
	assert.Equal(t, 9.0, st.Current())
}

func TestEmbeddedScripts(t *testing.T) {
	prev := prefabs.Dir()
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir(prev) })

	cases := []struct {
		script  string
		frames  int
		current float64
		wantCur float64
		dead    bool
	}{
		{"scripts/poison.tengo", 6, 10, 2, false},
		{"scripts/regen.tengo", 3, 5, 8, false},
		{"scripts/regen.tengo", 3, 10, 10, false},
		{"scripts/doom.tengo", 600, 10, 10, false},
		{"scripts/doom.tengo", 601, 10, 0, true},
	}
	for _, c := range cases {
		t.Run(c.script, func(t *testing.T) {
			w := ecs.NewWorld()
			_, _, sched := newPipeline(nil)
			e, st := spawnActor(t, w, "actor", 0, 0)
			st.SetCurrent(c.current)
			attachScript(t, w, e, c.script, 0)

			run(sched, w, c.frames)
			assert.Equal(t, c.wantCur, st.Current())
			assert.Equal(t, c.dead, st.IsDead())
		})
	}
}
