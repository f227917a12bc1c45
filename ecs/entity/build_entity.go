package entity

import (
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
	"github.com/milk9111/vitals/health"
	"github.com/milk9111/vitals/prefabs"
)

type buildContext struct {
	PrefabPath string
	Name       string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":    addPlayerTag,
	"actor":         addActor,
	"transform":     addTransform,
	"collider":      addCollider,
	"health":        addHealth,
	"heal_pickup":   addHealPickup,
	"invulnerable":  addInvulnerable,
	"kill_volume":   addKillVolume,
	"level_bounds":  addLevelBounds,
	"script":        addScript,
	"death_despawn": addDeathDespawn,
}

// health precedes invulnerable and script, which act on the health state.
var componentBuildOrder = []string{
	"player_tag",
	"actor",
	"transform",
	"collider",
	"health",
	"heal_pickup",
	"invulnerable",
	"kill_volume",
	"level_bounds",
	"script",
	"death_despawn",
}

// BuildEntity creates an entity from a prefab. On failure the partially
// built entity is destroyed.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Name: spec.Name}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	if !ecs.Has(w, e, component.ActorComponent.Kind()) && spec.Name != "" {
		if err := ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{Name: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

// SetEntityName overrides the actor name, e.g. when a scenario spawns the
// same prefab twice.
func SetEntityName(w *ecs.World, e ecs.Entity, name string) error {
	a, ok := ecs.Get(w, e, component.ActorComponent.Kind())
	if !ok {
		a = &component.Actor{}
	}
	a.Name = name
	return ecs.Add(w, e, component.ActorComponent.Kind(), a)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addActor(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ActorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode actor spec: %w", err)
	}
	a := &component.Actor{Name: spec.Name}
	if a.Name == "" {
		a.Name = ctx.Name
	}
	if spec.Color != nil {
		a.Color = spec.Color.Color
	}
	return ecs.Add(w, e, component.ActorComponent.Kind(), a)
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Rotation: spec.Rotation,
	})
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	if spec.Width < 0 || spec.Height < 0 {
		return fmt.Errorf("collider size must be non-negative, got %gx%g", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Width: spec.Width, Height: spec.Height})
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	cfg, err := spec.Config()
	if err != nil {
		return err
	}
	st, err := health.New(cfg)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{State: st})
}

func addHealPickup(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealPickupComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode heal_pickup spec: %w", err)
	}
	if spec.Amount < 0 {
		return fmt.Errorf("heal_pickup amount must be non-negative, got %g", spec.Amount)
	}
	return ecs.Add(w, e, component.HealPickupComponent.Kind(), &component.HealPickup{
		Amount: spec.Amount,
		Width:  spec.Width,
		Height: spec.Height,
	})
}

func addInvulnerable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InvulnerableComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode invulnerable spec: %w", err)
	}
	return ecs.Add(w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: spec.Frames})
}

func addKillVolume(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.KillVolumeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode kill_volume spec: %w", err)
	}
	bb, err := toBB(spec.Bounds)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.KillVolumeComponent.Kind(), &component.KillVolume{Bounds: bb})
}

func addLevelBounds(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LevelBoundsComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode level_bounds spec: %w", err)
	}
	bb, err := toBB(spec.Bounds)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Bounds: bb})
}

func addScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("script path is required")
	}
	if _, err := prefabs.LoadScript(spec.Path); err != nil {
		return err
	}
	return ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: spec.Path, Every: spec.Every})
}

func addDeathDespawn(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DeathDespawnComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode death_despawn spec: %w", err)
	}
	return ecs.Add(w, e, component.DeathDespawnComponent.Kind(), &component.DeathDespawn{Frames: spec.Frames})
}

func toBB(b prefabs.BoundsSpec) (cp.BB, error) {
	if err := b.Validate(); err != nil {
		return cp.BB{}, err
	}
	return cp.BB{L: b.Left, B: b.Bottom, R: b.Right, T: b.Top}, nil
}
