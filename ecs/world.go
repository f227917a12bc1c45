package ecs

import "github.com/milk9111/vitals/ecs/component"

// World owns entities, their component stores, and the frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue

	destroyHooks []func(Entity)
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
// It returns false when e was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, hook := range w.destroyHooks {
		hook(e)
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// OnDestroy registers fn to run before an entity's components are removed.
func (w *World) OnDestroy(fn func(Entity)) {
	if w == nil || fn == nil {
		return
	}
	w.destroyHooks = append(w.destroyHooks, fn)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// EndFrame discards events nobody drained during the frame.
func (w *World) EndFrame() {
	if w == nil {
		return
	}
	w.events.flush()
}

func (w *World) AddComponent(e Entity, id component.ComponentID, value any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(id, true).Set(e, value)
	return nil
}

func (w *World) RemoveComponent(e Entity, id component.ComponentID) bool {
	s := w.store(id, false)
	if s == nil {
		return false
	}
	return s.Remove(e)
}

func (w *World) HasComponent(e Entity, id component.ComponentID) bool {
	s := w.store(id, false)
	return s != nil && s.Has(e)
}

func (w *World) GetComponent(e Entity, id component.ComponentID) (any, bool) {
	s := w.store(id, false)
	if s == nil {
		return nil, false
	}
	v := s.Get(e)
	return v, v != nil
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w == nil {
		return nil
	}
	s, ok := w.stores[id]
	if !ok && create {
		if w.stores == nil {
			w.stores = make(map[component.ComponentID]*SparseSet)
		}
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
