package health

// Damageable is the health surface scripts and other hosts act on.
type Damageable interface {
	TakeDamage(amount float64, source ActorRef)
	Heal(amount float64)
	Kill()
	Ratio() float64
	IsCritical() bool
	CanPickup() bool
	IsAlive() bool
	IsDead() bool
	Current() float64
	Max() float64
	Invincible() bool
	SetInvincible(v bool)
}

var _ Damageable = (*State)(nil)
