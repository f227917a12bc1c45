package system

import (
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
)

// KillVolumeSystem kills actors that touch a KillVolume or whose position
// leaves the LevelBounds.
type KillVolumeSystem struct {
	log zerolog.Logger
}

func NewKillVolumeSystem(log zerolog.Logger) *KillVolumeSystem {
	return &KillVolumeSystem{log: log}
}

func (s *KillVolumeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var volumes []cp.BB
	ecs.ForEach(w, component.KillVolumeComponent.Kind(), func(_ ecs.Entity, v *component.KillVolume) {
		volumes = append(volumes, v.Bounds)
	})

	var bounds *cp.BB
	if e, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
		lb, _ := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
		bounds = &lb.Bounds
	}
	if len(volumes) == 0 && bounds == nil {
		return
	}

	ecs.ForEach2(w, component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, h *component.Health, t *component.Transform) {
		if h.State == nil || !h.State.IsAlive() {
			return
		}
		if bounds != nil && !bounds.ContainsVect(cp.Vector{X: t.X, Y: t.Y}) {
			s.log.Info().Str("actor", actorName(w, e)).Float64("x", t.X).Float64("y", t.Y).Msg("out of level bounds")
			h.State.Kill()
			return
		}
		box := actorBounds(w, e, t)
		for _, v := range volumes {
			if box.Intersects(v) {
				s.log.Info().Str("actor", actorName(w, e)).Msg("entered kill volume")
				h.State.Kill()
				return
			}
		}
	})
}
