// Package health tracks the hit points of a single game actor.
//
// A State is owned by exactly one entity and is mutated only from the
// simulation step; it does no locking.
package health

import "math"

// State is the health of one actor: current hit points bounded by [0, Max],
// a critical threshold and an invincibility override.
type State struct {
	current       float64
	max           float64
	criticalRatio float64
	invincible    bool
	dead          bool

	// Per-instance callbacks, invoked before subscribed handlers.
	OnDamage func(s *State, evt Event)
	OnHeal   func(s *State, evt Event)
	OnDeath  func(s *State, evt Event)

	emitter Emitter
}

// New creates a State from cfg. Current health starts at cfg.InitialHealth,
// or at MaxHealth when no initial value is configured.
func New(cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &State{
		current:       cfg.initial(),
		max:           cfg.MaxHealth,
		criticalRatio: cfg.CriticalHealthRatio,
		invincible:    cfg.Invincible,
	}, nil
}

// MustNew is like New but panics on an invalid config.
func MustNew(cfg Config) *State {
	s, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// Current returns the current health value.
func (s *State) Current() float64 {
	if s == nil {
		return 0
	}
	return s.current
}

// Max returns the configured maximum health.
func (s *State) Max() float64 {
	if s == nil {
		return 0
	}
	return s.max
}

// CriticalRatio returns the configured critical threshold.
func (s *State) CriticalRatio() float64 {
	if s == nil {
		return 0
	}
	return s.criticalRatio
}

// Invincible reports whether damage is currently suppressed.
func (s *State) Invincible() bool {
	return s != nil && s.invincible
}

// SetInvincible toggles damage suppression. Heal and Kill ignore it.
func (s *State) SetInvincible(v bool) {
	if s == nil {
		return
	}
	s.invincible = v
}

// IsAlive reports whether the actor has not died and has health left.
func (s *State) IsAlive() bool {
	return s != nil && !s.dead && s.current > 0
}

// IsDead reports whether the actor went through its death transition.
func (s *State) IsDead() bool {
	return s != nil && s.dead
}

// SetCurrent overwrites current health, clamped to [0, Max]. It emits no
// events and never triggers death.
func (s *State) SetCurrent(v float64) {
	if s == nil || math.IsNaN(v) {
		return
	}
	s.current = clamp(v, 0, s.max)
}

// TakeDamage subtracts amount from current health, flooring at zero.
// Negative amounts and invincible actors are ignored.
func (s *State) TakeDamage(amount float64, source ActorRef) {
	if s == nil || s.invincible || !validAmount(amount) {
		return
	}
	wasAlive := s.IsAlive()
	before := s.current
	s.current = math.Max(0, s.current-amount)
	applied := before - s.current

	if wasAlive && s.current == 0 {
		s.die(applied, source)
		return
	}
	if applied > 0 {
		s.emit(s.OnDamage, Event{Type: EventDamageTaken, Amount: applied, Source: source, Current: s.current})
	}
}

// Heal adds amount to current health, capped at Max. Healing a dead actor is
// not refused here; hosts that forbid it must check IsDead first.
func (s *State) Heal(amount float64) {
	if s == nil || !validAmount(amount) {
		return
	}
	before := s.current
	s.current = math.Min(s.max, s.current+amount)
	if applied := s.current - before; applied > 0 {
		s.emit(s.OnHeal, Event{Type: EventHealApplied, Amount: applied, Current: s.current})
	}
}

// Kill drops current health to zero regardless of invincibility.
func (s *State) Kill() {
	if s == nil {
		return
	}
	wasAlive := s.IsAlive()
	applied := s.current
	s.current = 0
	if wasAlive {
		s.die(applied, NoActor)
	}
}

// Ratio returns current/max.
func (s *State) Ratio() float64 {
	if s == nil {
		return 0
	}
	return s.current / s.max
}

// IsCritical reports whether Ratio is at or below the critical threshold.
func (s *State) IsCritical() bool {
	return s != nil && s.Ratio() <= s.criticalRatio
}

// CanPickup reports whether a heal pickup would have any effect.
func (s *State) CanPickup() bool {
	return s != nil && s.current < s.max
}

// Subscribe registers h for every event this state emits.
func (s *State) Subscribe(h Handler) (unsubscribe func()) {
	if s == nil {
		return func() {}
	}
	return s.emitter.Subscribe(h)
}

func (s *State) die(applied float64, source ActorRef) {
	s.dead = true
	s.emit(s.OnDeath, Event{Type: EventDeath, Amount: applied, Source: source, Current: 0})
}

func (s *State) emit(cb func(*State, Event), evt Event) {
	if cb != nil {
		cb(s, evt)
	}
	s.emitter.Emit(s, evt)
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsNaN(v)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
