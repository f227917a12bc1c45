package component

// Transform is the top-left world position of an entity.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

// Collider is the axis-aligned size of an entity, extending right and down
// from its Transform.
type Collider struct {
	Width  float64
	Height float64
}

var ColliderComponent = NewComponent[Collider]()
