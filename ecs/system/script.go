package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
	"github.com/milk9111/vitals/health"
	"github.com/milk9111/vitals/prefabs"
)

// ScriptLoader returns the source of a script by path.
type ScriptLoader func(path string) ([]byte, error)

// ScriptSystem runs tengo scripts attached to actors. A script sees two
// globals: `frame` (int) and `actor`, a map with the read-only fields
// current, max, ratio, critical, alive, dead, invincible, can_pickup and the
// functions damage(amount), heal(amount), kill(), set_invincible(bool).
// Damage from a script carries no source actor.
type ScriptSystem struct {
	log    zerolog.Logger
	load   ScriptLoader
	frame  int
	cache  map[ecs.Entity]*scriptRuntime
	failed map[ecs.Entity]string
}

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
}

func NewScriptSystem(log zerolog.Logger, load ScriptLoader) *ScriptSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &ScriptSystem{
		log:    log,
		load:   load,
		cache:  map[ecs.Entity]*scriptRuntime{},
		failed: map[ecs.Entity]string{},
	}
}

// Invalidate drops compiled scripts for path so the next frame reloads them.
// An empty path drops everything.
func (s *ScriptSystem) Invalidate(path string) {
	for e, rt := range s.cache {
		if path == "" || samePath(rt.path, path) {
			delete(s.cache, e)
		}
	}
	for e, p := range s.failed {
		if path == "" || samePath(p, path) {
			delete(s.failed, e)
		}
	}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	frame := s.frame
	s.frame++

	for e := range s.cache {
		if !ecs.IsAlive(w, e) {
			delete(s.cache, e)
		}
	}
	for e := range s.failed {
		if !ecs.IsAlive(w, e) {
			delete(s.failed, e)
		}
	}

	ecs.ForEach2(w, component.ScriptComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, sc *component.Script, h *component.Health) {
		if h.State == nil || strings.TrimSpace(sc.Path) == "" {
			return
		}
		if sc.Every > 1 && frame%sc.Every != 0 {
			return
		}
		if p, ok := s.failed[e]; ok && p == sc.Path {
			return
		}
		rt, err := s.runtime(e, sc.Path)
		if err != nil {
			s.failed[e] = sc.Path
			s.log.Error().Err(err).Str("actor", actorName(w, e)).Str("script", sc.Path).Msg("script load failed")
			return
		}
		if err := rt.run(frame, h.State); err != nil {
			s.log.Error().Err(err).Str("actor", actorName(w, e)).Str("script", sc.Path).Msg("script run failed")
		}
	})
}

func (s *ScriptSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.cache[e]; ok && rt.path == path {
		return rt, nil
	}
	src, err := s.load(path)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	_ = script.Add("frame", 0)
	_ = script.Add("actor", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	rt := &scriptRuntime{path: path, compiled: compiled}
	s.cache[e] = rt
	return rt, nil
}

func (rt *scriptRuntime) run(frame int, st health.Damageable) error {
	if err := rt.compiled.Set("frame", frame); err != nil {
		return err
	}
	if err := rt.compiled.Set("actor", actorObject(st)); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func actorObject(st health.Damageable) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"current":    &tengo.Float{Value: st.Current()},
		"max":        &tengo.Float{Value: st.Max()},
		"ratio":      &tengo.Float{Value: st.Ratio()},
		"critical":   boolObject(st.IsCritical()),
		"alive":      boolObject(st.IsAlive()),
		"dead":       boolObject(st.IsDead()),
		"invincible": boolObject(st.Invincible()),
		"can_pickup": boolObject(st.CanPickup()),
	}

	values["damage"] = &tengo.UserFunction{Name: "damage", Value: func(args ...tengo.Object) (tengo.Object, error) {
		amount, err := amountArg(args)
		if err != nil {
			return nil, err
		}
		st.TakeDamage(amount, health.NoActor)
		return &tengo.Float{Value: st.Current()}, nil
	}}

	values["heal"] = &tengo.UserFunction{Name: "heal", Value: func(args ...tengo.Object) (tengo.Object, error) {
		amount, err := amountArg(args)
		if err != nil {
			return nil, err
		}
		st.Heal(amount)
		return &tengo.Float{Value: st.Current()}, nil
	}}

	values["kill"] = &tengo.UserFunction{Name: "kill", Value: func(args ...tengo.Object) (tengo.Object, error) {
		st.Kill()
		return tengo.UndefinedValue, nil
	}}

	values["set_invincible"] = &tengo.UserFunction{Name: "set_invincible", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		v, ok := tengo.ToBool(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "value", Expected: "bool", Found: args[0].TypeName()}
		}
		st.SetInvincible(v)
		return boolObject(v), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func amountArg(args []tengo.Object) (float64, error) {
	if len(args) != 1 {
		return 0, tengo.ErrWrongNumArguments
	}
	v, ok := tengo.ToFloat64(args[0])
	if !ok {
		return 0, tengo.ErrInvalidArgumentType{Name: "amount", Expected: "float", Found: args[0].TypeName()}
	}
	return v, nil
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func samePath(a, b string) bool {
	return strings.TrimPrefix(a, "scripts/") == strings.TrimPrefix(b, "scripts/") ||
		strings.HasSuffix(b, "/"+strings.TrimPrefix(a, "scripts/"))
}
