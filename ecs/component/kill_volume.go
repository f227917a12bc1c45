package component

import "github.com/jakecoffman/cp"

// KillVolume instantly kills any actor overlapping Bounds, ignoring
// invincibility.
type KillVolume struct {
	Bounds cp.BB
}

var KillVolumeComponent = NewComponent[KillVolume]()

// LevelBounds is the playable area. Actors whose position leaves it are
// killed as having fallen out of the level.
type LevelBounds struct {
	Bounds cp.BB
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
