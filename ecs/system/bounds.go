package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
)

const (
	defaultPickupSize = 24
)

// actorBounds returns the world-space box of e. Entities without a Collider
// are treated as a point at their Transform.
func actorBounds(w *ecs.World, e ecs.Entity, t *component.Transform) cp.BB {
	width, height := 0.0, 0.0
	if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		width, height = col.Width, col.Height
	}
	return cp.BB{L: t.X, B: t.Y, R: t.X + width, T: t.Y + height}
}

func actorName(w *ecs.World, e ecs.Entity) string {
	if a, ok := ecs.Get(w, e, component.ActorComponent.Kind()); ok && a.Name != "" {
		return a.Name
	}
	return e.String()
}

func healthState(w *ecs.World, e ecs.Entity) (*component.Health, bool) {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.State == nil {
		return nil, false
	}
	return h, true
}
