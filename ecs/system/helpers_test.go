package system

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
	"github.com/milk9111/vitals/health"
)

func spawnActor(t *testing.T, w *ecs.World, name string, x, y float64) (ecs.Entity, *health.State) {
	t.Helper()
	e := ecs.CreateEntity(w)
	st := health.MustNew(health.DefaultConfig())
	require.NoError(t, ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{Name: name}))
	require.NoError(t, ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{State: st}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Width: 10, Height: 10}))
	return e, st
}

// eventLog records the health events visible at the end of each frame.
type eventLog struct {
	events []ecs.HealthEvent
}

func (l *eventLog) Update(w *ecs.World) {
	l.events = append(l.events, w.Events().HealthEvents()...)
}

func (l *eventLog) types() []health.EventType {
	var out []health.EventType
	for _, evt := range l.events {
		out = append(out, evt.Type)
	}
	return out
}

func newPipeline(load ScriptLoader) (*Systems, *eventLog, *ecs.Scheduler) {
	systems := Default(zerolog.Nop(), load)
	log := &eventLog{}
	return systems, log, systems.Scheduler(log)
}

func run(s *ecs.Scheduler, w *ecs.World, frames int) {
	for i := 0; i < frames; i++ {
		s.Update(w)
	}
}
