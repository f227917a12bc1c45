package component

import "github.com/milk9111/vitals/health"

// Hit is one pending damage application.
type Hit struct {
	Amount float64
	Source health.ActorRef
}

// DamageRequest queues hits against an actor for the next damage pass.
type DamageRequest struct {
	Hits []Hit
}

var DamageRequestComponent = NewComponent[DamageRequest]()

// HealRequest queues heal amounts against an actor.
type HealRequest struct {
	Amounts []float64
}

var HealRequestComponent = NewComponent[HealRequest]()

// KillRequest asks the kill system to kill the actor this frame.
type KillRequest struct{}

var KillRequestComponent = NewComponent[KillRequest]()
