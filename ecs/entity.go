package ecs

import (
	"strconv"

	"github.com/milk9111/vitals/health"
)

type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e.id() > 0
}

// ActorRef converts the entity into the opaque source reference carried by
// health events.
func (e Entity) ActorRef() health.ActorRef {
	return health.ActorRef(e)
}

// EntityFromActor recovers the entity behind a health event source.
// health.NoActor maps to the invalid entity 0.
func EntityFromActor(ref health.ActorRef) Entity {
	return Entity(ref)
}
