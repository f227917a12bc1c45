package ecs

import "github.com/milk9111/vitals/ecs/component"

// Query returns the live entities that hold every kind. It returns nil when
// any kind has no store yet.
func Query(w *World, kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	var out []Entity
	for _, e := range sets[smallest].Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		match := true
		for i, s := range sets {
			if i != smallest && !s.Has(e) {
				match = false
				break
			}
		}
		if match {
			out = append(out, e)
		}
	}
	return out
}
