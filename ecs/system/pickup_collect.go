package system

import (
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
)

// PickupCollectSystem consumes heal pickups touched by actors that can use
// them. Dead actors never collect, even though health.State would accept
// the heal.
type PickupCollectSystem struct {
	log zerolog.Logger
}

func NewPickupCollectSystem(log zerolog.Logger) *PickupCollectSystem {
	return &PickupCollectSystem{log: log}
}

type pickupBox struct {
	entity ecs.Entity
	pickup *component.HealPickup
	bounds cp.BB
}

func (s *PickupCollectSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var pickups []pickupBox
	ecs.ForEach2(w, component.HealPickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.HealPickup, t *component.Transform) {
		pw, ph := p.Width, p.Height
		if pw <= 0 || ph <= 0 {
			pw, ph = defaultPickupSize, defaultPickupSize
		}
		pickups = append(pickups, pickupBox{entity: e, pickup: p, bounds: cp.BB{L: t.X, B: t.Y, R: t.X + pw, T: t.Y + ph}})
	})
	if len(pickups) == 0 {
		return
	}

	ecs.ForEach2(w, component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Health, t *component.Transform) {
		if h.State == nil || !h.State.IsAlive() {
			return
		}
		box := actorBounds(w, e, t)
		for _, p := range pickups {
			if !ecs.IsAlive(w, p.entity) || !h.State.CanPickup() {
				continue
			}
			if !box.Intersects(p.bounds) {
				continue
			}
			before := h.State.Current()
			h.State.Heal(p.pickup.Amount)
			s.log.Info().
				Str("actor", actorName(w, e)).
				Float64("requested", p.pickup.Amount).
				Float64("applied", h.State.Current()-before).
				Msg("heal pickup collected")
			ecs.DestroyEntity(w, p.entity)
		}
	})
}
