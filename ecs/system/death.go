package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
	"github.com/milk9111/vitals/health"
)

// DeathSystem reacts to death events queued this frame: it tags the actor
// with DeadTag and schedules despawn for actors carrying DeathDespawn.
type DeathSystem struct {
	log zerolog.Logger
}

func NewDeathSystem(log zerolog.Logger) *DeathSystem { return &DeathSystem{log: log} }

func (s *DeathSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().HealthEvents() {
		if evt.Type != health.EventDeath || !ecs.IsAlive(w, evt.Entity) {
			continue
		}
		e := evt.Entity
		s.log.Info().
			Str("actor", actorName(w, e)).
			Uint64("source", uint64(evt.Source)).
			Msg("actor died")
		_ = ecs.Add(w, e, component.DeadTagComponent.Kind(), &component.DeadTag{})

		despawn, ok := ecs.Get(w, e, component.DeathDespawnComponent.Kind())
		if !ok {
			continue
		}
		if despawn.Frames <= 0 {
			ecs.DestroyEntity(w, e)
			continue
		}
		_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: despawn.Frames})
	}
}
