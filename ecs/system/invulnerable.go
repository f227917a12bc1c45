package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
)

// InvulnerableSystem drives health.State invincibility from Invulnerable
// components. When the component expires or is removed the flag returns to
// the value it had before the component was first seen.
type InvulnerableSystem struct {
	log     zerolog.Logger
	restore map[ecs.Entity]bool
}

func NewInvulnerableSystem(log zerolog.Logger) *InvulnerableSystem {
	return &InvulnerableSystem{log: log, restore: map[ecs.Entity]bool{}}
}

// Forget drops the flag saved for e. Call it after setting invincibility
// directly so an expiring or removed component does not overwrite it.
func (s *InvulnerableSystem) Forget(e ecs.Entity) {
	delete(s.restore, e)
}

func (s *InvulnerableSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for e, prev := range s.restore {
		if ecs.Has(w, e, component.InvulnerableComponent.Kind()) {
			continue
		}
		if h, ok := healthState(w, e); ok {
			h.State.SetInvincible(prev)
		}
		delete(s.restore, e)
	}

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		h, ok := healthState(w, e)
		if !ok {
			return
		}
		if _, active := s.restore[e]; !active {
			s.restore[e] = h.State.Invincible()
			h.State.SetInvincible(true)
			s.log.Debug().Str("actor", actorName(w, e)).Int("frames", inv.Frames).Msg("invulnerable")
			return
		}
		if inv.Frames <= 0 {
			return
		}
		inv.Frames--
		if inv.Frames > 0 {
			return
		}
		h.State.SetInvincible(s.restore[e])
		delete(s.restore, e)
		ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		s.log.Debug().Str("actor", actorName(w, e)).Msg("invulnerability expired")
	})
}
