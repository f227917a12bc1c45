package component

// TTL is a simple frame-based time-to-live component. Systems may add this
// component to an entity to have it automatically destroyed after the given
// number of update ticks.
type TTL struct {
	// Frames remaining for the TTL (in update ticks)
	Frames int
}

var TTLComponent = NewComponent[TTL]()

// DeathDespawn destroys an actor Frames ticks after it dies. Frames <= 0
// destroys it in the frame it dies. Actors without it stay in the world.
type DeathDespawn struct {
	Frames int
}

var DeathDespawnComponent = NewComponent[DeathDespawn]()
