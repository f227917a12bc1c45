package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// DeadTag is added once an actor's health reaches its death transition.
type DeadTag struct{}

var DeadTagComponent = NewComponent[DeadTag]()
