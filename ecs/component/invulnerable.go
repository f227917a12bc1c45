package component

// Invulnerable makes an actor's health ignore damage while present.
// If Frames > 0 the system counts frames down each tick and removes the
// component when it reaches zero. Frames == 0 means indefinite invulnerability
// until explicitly removed.
type Invulnerable struct {
	Frames int
}

var InvulnerableComponent = NewComponent[Invulnerable]()
