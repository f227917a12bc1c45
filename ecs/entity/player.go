package entity

import (
	"fmt"

	"github.com/milk9111/vitals/ecs"
)

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "player.yaml")
}

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, "player.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}

// NewAt builds any prefab and moves it to x, y.
func NewAt(w *ecs.World, prefabPath string, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("%s: override transform: %w", prefabPath, err)
	}
	return entity, nil
}
