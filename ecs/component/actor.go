package component

import "image/color"

// Actor names an entity for logs and scenario scripts. Color is only used by
// debug drawing and may be nil.
type Actor struct {
	Name  string
	Color color.Color
}

var ActorComponent = NewComponent[Actor]()
