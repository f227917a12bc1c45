package system

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/vitals/ecs"
)

// Systems is the standard health pipeline in update order.
type Systems struct {
	HealthEvents *HealthEventSystem
	Script       *ScriptSystem
	Invulnerable *InvulnerableSystem
	Damage       *DamageSystem
	Heal         *HealSystem
	Pickup       *PickupCollectSystem
	KillVolume   *KillVolumeSystem
	Kill         *KillSystem
	TTL          *TTLSystem
	Death        *DeathSystem
}

// Default builds the standard pipeline. load may be nil to read scripts from
// the prefab filesystem.
func Default(log zerolog.Logger, load ScriptLoader) *Systems {
	return &Systems{
		HealthEvents: NewHealthEventSystem(log.With().Str("system", "health_events").Logger()),
		Script:       NewScriptSystem(log.With().Str("system", "script").Logger(), load),
		Invulnerable: NewInvulnerableSystem(log.With().Str("system", "invulnerable").Logger()),
		Damage:       NewDamageSystem(log.With().Str("system", "damage").Logger()),
		Heal:         NewHealSystem(log.With().Str("system", "heal").Logger()),
		Pickup:       NewPickupCollectSystem(log.With().Str("system", "pickup").Logger()),
		KillVolume:   NewKillVolumeSystem(log.With().Str("system", "kill_volume").Logger()),
		Kill:         NewKillSystem(log.With().Str("system", "kill").Logger()),
		TTL:          NewTTLSystem(),
		Death:        NewDeathSystem(log.With().Str("system", "death").Logger()),
	}
}

// List returns the systems in update order. TTL runs before Death so a
// DeathDespawn of N frames removes the actor exactly N updates after it died.
func (s *Systems) List() []ecs.System {
	return []ecs.System{
		s.HealthEvents,
		s.Script,
		s.Invulnerable,
		s.Damage,
		s.Heal,
		s.Pickup,
		s.KillVolume,
		s.Kill,
		s.TTL,
		s.Death,
	}
}

// Scheduler returns a scheduler running List followed by extra.
func (s *Systems) Scheduler(extra ...ecs.System) *ecs.Scheduler {
	return ecs.NewScheduler(append(s.List(), extra...)...)
}
