package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
)

// DamageSystem applies queued DamageRequest hits and clears the request.
type DamageSystem struct {
	log zerolog.Logger
}

func NewDamageSystem(log zerolog.Logger) *DamageSystem { return &DamageSystem{log: log} }

func (s *DamageSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.DamageRequestComponent.Kind(), func(e ecs.Entity, req *component.DamageRequest) {
		h, ok := healthState(w, e)
		if !ok {
			s.log.Warn().Str("actor", actorName(w, e)).Msg("damage request on entity without health")
			ecs.Remove(w, e, component.DamageRequestComponent.Kind())
			return
		}
		for _, hit := range req.Hits {
			if hit.Amount < 0 {
				s.log.Warn().Str("actor", actorName(w, e)).Float64("amount", hit.Amount).Msg("ignoring negative damage")
				continue
			}
			h.State.TakeDamage(hit.Amount, hit.Source)
		}
		ecs.Remove(w, e, component.DamageRequestComponent.Kind())
	})
}

// HealSystem applies queued HealRequest amounts and clears the request.
type HealSystem struct {
	log zerolog.Logger
}

func NewHealSystem(log zerolog.Logger) *HealSystem { return &HealSystem{log: log} }

func (s *HealSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.HealRequestComponent.Kind(), func(e ecs.Entity, req *component.HealRequest) {
		if h, ok := healthState(w, e); ok {
			for _, amount := range req.Amounts {
				h.State.Heal(amount)
			}
		}
		ecs.Remove(w, e, component.HealRequestComponent.Kind())
	})
}

// KillSystem kills actors carrying a KillRequest.
type KillSystem struct {
	log zerolog.Logger
}

func NewKillSystem(log zerolog.Logger) *KillSystem { return &KillSystem{log: log} }

func (s *KillSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.KillRequestComponent.Kind(), func(e ecs.Entity, _ *component.KillRequest) {
		if h, ok := healthState(w, e); ok {
			h.State.Kill()
		}
		ecs.Remove(w, e, component.KillRequestComponent.Kind())
	})
}

// Damage queues a hit against target, appending to any pending request.
func Damage(w *ecs.World, target ecs.Entity, amount float64, source ecs.Entity) error {
	req, ok := ecs.Get(w, target, component.DamageRequestComponent.Kind())
	if !ok {
		req = &component.DamageRequest{}
	}
	req.Hits = append(req.Hits, component.Hit{Amount: amount, Source: source.ActorRef()})
	return ecs.Add(w, target, component.DamageRequestComponent.Kind(), req)
}

// Heal queues a heal against target.
func Heal(w *ecs.World, target ecs.Entity, amount float64) error {
	req, ok := ecs.Get(w, target, component.HealRequestComponent.Kind())
	if !ok {
		req = &component.HealRequest{}
	}
	req.Amounts = append(req.Amounts, amount)
	return ecs.Add(w, target, component.HealRequestComponent.Kind(), req)
}

// Kill queues an instant kill against target.
func Kill(w *ecs.World, target ecs.Entity) error {
	return ecs.Add(w, target, component.KillRequestComponent.Kind(), &component.KillRequest{})
}
