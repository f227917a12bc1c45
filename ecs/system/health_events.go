package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
	"github.com/milk9111/vitals/health"
)

// HealthEventSystem forwards every health.Event of every Health component into
// the world event queue as an ecs.HealthEvent. It must run before any system
// that mutates health so events emitted later in the frame are captured.
type HealthEventSystem struct {
	log    zerolog.Logger
	bridge map[ecs.Entity]bridged
	hooked *ecs.World
}

type bridged struct {
	state       *health.State
	unsubscribe func()
}

func NewHealthEventSystem(log zerolog.Logger) *HealthEventSystem {
	return &HealthEventSystem{log: log, bridge: map[ecs.Entity]bridged{}}
}

func (s *HealthEventSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if s.hooked != w {
		s.hooked = w
		w.OnDestroy(s.release)
	}

	ecs.ForEach(w, component.HealthComponent.Kind(), func(e ecs.Entity, h *component.Health) {
		if h.State == nil {
			return
		}
		if b, ok := s.bridge[e]; ok {
			if b.state == h.State {
				return
			}
			// The component was replaced with a new state.
			b.unsubscribe()
		}
		entity := e
		unsub := h.State.Subscribe(func(_ *health.State, evt health.Event) {
			s.log.Debug().
				Str("actor", actorName(w, entity)).
				Str("event", string(evt.Type)).
				Float64("amount", evt.Amount).
				Float64("current", evt.Current).
				Uint64("source", uint64(evt.Source)).
				Msg("health event")
			w.Events().Push(ecs.Event{
				Type: ecs.EventTypeHealth,
				Data: ecs.HealthEvent{Entity: entity, Event: evt},
			})
		})
		s.bridge[e] = bridged{state: h.State, unsubscribe: unsub}
	})
}

// Tracked returns the number of bridged health states.
func (s *HealthEventSystem) Tracked() int {
	return len(s.bridge)
}

func (s *HealthEventSystem) release(e ecs.Entity) {
	if b, ok := s.bridge[e]; ok {
		b.unsubscribe()
		delete(s.bridge, e)
	}
}
