package scenario

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
	"github.com/milk9111/vitals/ecs/entity"
	"github.com/milk9111/vitals/ecs/system"
	"github.com/milk9111/vitals/health"
)

// Record is one health event observed during a run.
type Record struct {
	Frame   int
	Actor   string
	Type    health.EventType
	Amount  float64
	Source  string
	Current float64
}

type ActorSummary struct {
	Name       string
	Current    float64
	Max        float64
	Ratio      float64
	Critical   bool
	Alive      bool
	Dead       bool
	Invincible bool
	Despawned  bool
}

type Result struct {
	Name    string
	Frames  int
	Records []Record
	Actors  []ActorSummary
}

// Records filtered to one actor.
func (r *Result) For(actor string) []Record {
	var out []Record
	for _, rec := range r.Records {
		if rec.Actor == actor {
			out = append(out, rec)
		}
	}
	return out
}

func (r *Result) Actor(name string) (ActorSummary, bool) {
	for _, a := range r.Actors {
		if a.Name == name {
			return a, true
		}
	}
	return ActorSummary{}, false
}

type Runner struct {
	log  zerolog.Logger
	load system.ScriptLoader
}

type Option func(*Runner)

func WithLogger(log zerolog.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// WithScriptLoader replaces the prefab script loader.
func WithScriptLoader(load system.ScriptLoader) Option {
	return func(r *Runner) { r.load = load }
}

func NewRunner(opts ...Option) *Runner {
	r := &Runner{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type run struct {
	log     zerolog.Logger
	world   *ecs.World
	frame   int
	byName  map[string]ecs.Entity
	names   map[ecs.Entity]string
	states  map[string]*health.State
	records []Record

	invulnerable *system.InvulnerableSystem
}

// Update records the frame's health events. It runs last in the pipeline.
func (r *run) Update(w *ecs.World) {
	for _, evt := range w.Events().HealthEvents() {
		rec := Record{
			Frame:   r.frame,
			Actor:   r.names[evt.Entity],
			Type:    evt.Type,
			Amount:  evt.Amount,
			Source:  r.names[ecs.EntityFromActor(evt.Source)],
			Current: evt.Current,
		}
		r.records = append(r.records, rec)
		r.log.Info().
			Int("frame", rec.Frame).
			Str("actor", rec.Actor).
			Str("event", string(rec.Type)).
			Float64("amount", rec.Amount).
			Str("source", rec.Source).
			Float64("current", rec.Current).
			Msg("health event")
	}
}

// Run plays spec to completion or until ctx is cancelled.
func (r *Runner) Run(ctx context.Context, spec Spec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	log := r.log.With().Str("scenario", spec.Name).Logger()

	st := &run{
		log:    log,
		world:  ecs.NewWorld(),
		byName: make(map[string]ecs.Entity, len(spec.Actors)),
		names:  make(map[ecs.Entity]string, len(spec.Actors)),
		states: make(map[string]*health.State, len(spec.Actors)),
	}
	if err := st.spawn(spec.Actors); err != nil {
		return nil, err
	}

	steps := make(map[int][]Step)
	for _, s := range spec.Steps {
		steps[s.Frame] = append(steps[s.Frame], s)
	}

	systems := system.Default(log, r.load)
	st.invulnerable = systems.Invulnerable
	sched := systems.Scheduler(st)
	for st.frame = 0; st.frame < spec.Frames; st.frame++ {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrapf(err, "scenario %s: stopped at frame %d", spec.Name, st.frame)
		}
		for _, s := range steps[st.frame] {
			if err := st.apply(s); err != nil {
				return nil, eris.Wrapf(err, "scenario %s: frame %d", spec.Name, st.frame)
			}
		}
		sched.Update(st.world)
	}

	res := &Result{Name: spec.Name, Frames: spec.Frames, Records: st.records}
	for _, a := range spec.Actors {
		res.Actors = append(res.Actors, st.summary(a.Name))
	}
	log.Info().Int("frames", spec.Frames).Int("events", len(res.Records)).Msg("scenario finished")
	return res, nil
}

func (r *run) spawn(actors []ActorSpec) error {
	for _, a := range actors {
		e, err := entity.BuildEntity(r.world, a.Prefab)
		if err != nil {
			return eris.Wrapf(err, "scenario: spawn %q", a.Name)
		}
		if err := entity.SetEntityName(r.world, e, a.Name); err != nil {
			return err
		}
		if a.X != nil || a.Y != nil {
			t, _ := ecs.Get(r.world, e, component.TransformComponent.Kind())
			x, y := 0.0, 0.0
			if t != nil {
				x, y = t.X, t.Y
			}
			if a.X != nil {
				x = *a.X
			}
			if a.Y != nil {
				y = *a.Y
			}
			if err := entity.SetEntityTransform(r.world, e, x, y, 0); err != nil {
				return err
			}
		}
		r.byName[a.Name] = e
		r.names[e] = a.Name
		if h, ok := ecs.Get(r.world, e, component.HealthComponent.Kind()); ok {
			r.states[a.Name] = h.State
		}
	}
	return nil
}

func (r *run) apply(s Step) error {
	e := r.byName[s.Actor]
	if !ecs.IsAlive(r.world, e) {
		r.log.Warn().Int("frame", r.frame).Str("actor", s.Actor).Str("op", string(s.Op)).Msg("actor despawned, step skipped")
		return nil
	}
	if s.Op == OpMove {
		return entity.SetEntityTransform(r.world, e, s.X, s.Y, 0)
	}

	st := r.states[s.Actor]
	if st == nil {
		return eris.Errorf("actor %q has no health", s.Actor)
	}
	switch s.Op {
	case OpDamage:
		return system.Damage(r.world, e, s.Amount, r.byName[s.Source])
	case OpHeal:
		return system.Heal(r.world, e, s.Amount)
	case OpKill:
		return system.Kill(r.world, e)
	case OpInvincible:
		if s.Frames > 0 {
			return ecs.Add(r.world, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: s.Frames})
		}
		r.invulnerable.Forget(e)
		st.SetInvincible(true)
	case OpVulnerable:
		ecs.Remove(r.world, e, component.InvulnerableComponent.Kind())
		r.invulnerable.Forget(e)
		st.SetInvincible(false)
	}
	return nil
}

func (r *run) summary(name string) ActorSummary {
	sum := ActorSummary{Name: name, Despawned: !ecs.IsAlive(r.world, r.byName[name])}
	st := r.states[name]
	if st == nil {
		return sum
	}
	sum.Current = st.Current()
	sum.Max = st.Max()
	sum.Ratio = st.Ratio()
	sum.Critical = st.IsCritical()
	sum.Alive = st.IsAlive()
	sum.Dead = st.IsDead()
	sum.Invincible = st.Invincible()
	return sum
}
