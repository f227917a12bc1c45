package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"
	"golang.org/x/image/colornames"

	"github.com/milk9111/vitals/common"
	"github.com/milk9111/vitals/ecs"
	"github.com/milk9111/vitals/ecs/component"
	"github.com/milk9111/vitals/ecs/entity"
	"github.com/milk9111/vitals/ecs/system"
	"github.com/milk9111/vitals/prefabs"
)

const (
	baseWidth  = 640
	baseHeight = 480

	moveSpeed    = 3
	damageAmount = 10
	healAmount   = 15

	barWidth  = 160
	barEasing = 0.15
)

type Game struct {
	log     zerolog.Logger
	input   *Input
	world   *ecs.World
	systems *system.Systems
	sched   *ecs.Scheduler
	watcher *prefabs.Watcher

	player ecs.Entity
	grunt  ecs.Entity

	// shown trails the player's health ratio so the bar slides.
	shown float64
}

// NewGame spawns the sandbox level: a player, a grunt to take the blame for
// damage, a medkit, the kill plane and the level bounds.
func NewGame(log zerolog.Logger, watcher *prefabs.Watcher) (*Game, error) {
	g := &Game{
		log:     log,
		input:   NewInput(),
		world:   ecs.NewWorld(),
		watcher: watcher,
	}
	g.systems = system.Default(log, nil)
	g.sched = g.systems.Scheduler()

	for _, name := range []string{"level_bounds.yaml", "kill_plane.yaml", "medkit.yaml"} {
		if _, err := entity.BuildEntity(g.world, name); err != nil {
			return nil, err
		}
	}
	var err error
	if g.grunt, err = entity.BuildEntity(g.world, "grunt.yaml"); err != nil {
		return nil, err
	}
	if g.player, err = entity.NewPlayer(g.world); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Update() error {
	g.input.Update()
	if g.input.Quit {
		return ebiten.Termination
	}
	g.reload()

	if g.input.Respawn {
		g.respawn()
	}
	if g.input.SpawnKit {
		g.spawnMedkit()
	}
	g.control()

	g.sched.Update(g.world)

	target := 0.0
	if h, ok := ecs.Get(g.world, g.player, component.HealthComponent.Kind()); ok {
		target = h.State.Ratio()
	}
	g.shown = common.Clamp(common.Lerp(g.shown, target, barEasing), 0, 1)
	return nil
}

func (g *Game) control() {
	if !ecs.IsAlive(g.world, g.player) {
		return
	}
	if t, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind()); ok {
		t.X += g.input.MoveX * moveSpeed
		t.Y += g.input.MoveY * moveSpeed
	}

	var err error
	switch {
	case g.input.Damage:
		err = system.Damage(g.world, g.player, damageAmount, g.grunt)
	case g.input.Heal:
		err = system.Heal(g.world, g.player, healAmount)
	case g.input.Kill:
		err = system.Kill(g.world, g.player)
	case g.input.Invincible:
		if h, ok := ecs.Get(g.world, g.player, component.HealthComponent.Kind()); ok {
			h.State.SetInvincible(!h.State.Invincible())
		}
	}
	if err != nil {
		g.log.Error().Err(err).Msg("player action failed")
	}
}

func (g *Game) respawn() {
	x, y := 0.0, 0.0
	if t, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind()); ok {
		x, y = t.X, t.Y
	}
	ecs.DestroyEntity(g.world, g.player)
	player, err := entity.NewPlayer(g.world)
	if err != nil {
		g.log.Error().Err(err).Msg("respawn failed")
		return
	}
	g.player = player
	if x != 0 || y != 0 {
		_ = entity.SetEntityTransform(g.world, player, x, y, 0)
	}
	g.log.Info().Msg("player respawned")
}

func (g *Game) spawnMedkit() {
	x := float64(baseWidth) / 2
	if t, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind()); ok {
		x = common.Clamp(t.X+64, 0, baseWidth-16)
	}
	if _, err := entity.NewAt(g.world, "medkit.yaml", x, 208); err != nil {
		g.log.Error().Err(err).Msg("spawn medkit failed")
	}
}

// reload drains pending file changes. Scripts recompile on their next run;
// prefab edits apply to entities built afterwards.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.Info().Str("path", change.Path).Str("kind", change.Kind.String()).Msg("reloaded")
			if change.Kind == prefabs.ChangeScript {
				g.systems.Script.Invalidate(change.Path)
			}
		case err := <-g.watcher.Errors:
			if err != nil {
				g.log.Warn().Err(err).Msg("watcher error")
			}
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	ecs.ForEach(g.world, component.KillVolumeComponent.Kind(), func(_ ecs.Entity, v *component.KillVolume) {
		drawBB(screen, v.Bounds, color.RGBA{R: 255, A: 64}, colornames.Red)
	})
	ecs.ForEach2(g.world, component.HealPickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.HealPickup, t *component.Transform) {
		w, h := p.Width, p.Height
		if w <= 0 || h <= 0 {
			w, h = 24, 24
		}
		drawBB(screen, cp.BB{L: t.X, B: t.Y, R: t.X + w, T: t.Y + h}, actorColor(g.world, e, colornames.Lightgreen), colornames.White)
	})
	ecs.ForEach3(g.world, component.HealthComponent.Kind(), component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, h *component.Health, t *component.Transform, c *component.Collider) {
		fill := actorColor(g.world, e, colornames.Lightgray)
		outline := color.Color(colornames.Black)
		switch {
		case h.State.IsDead():
			fill = colornames.Dimgray
		case h.State.Invincible():
			outline = colornames.Gold
		case h.State.IsCritical():
			outline = colornames.Orangered
		}
		drawBB(screen, cp.BB{L: t.X, B: t.Y, R: t.X + c.Width, T: t.Y + c.Height}, fill, outline)
	})

	bar := cp.BB{L: baseWidth - barWidth - 8, B: 8, R: baseWidth - 8, T: 20}
	drawBB(screen, bar, colornames.Darkred, colornames.White)
	drawBB(screen, cp.BB{L: bar.L, B: bar.B, R: bar.L + barWidth*g.shown, T: bar.T}, colornames.Limegreen, colornames.White)

	ebitenutil.DebugPrintAt(screen, g.status(), 8, 8)
	ebitenutil.DebugPrintAt(screen, "arrows move  D damage  H heal  K kill  I invincible  R respawn  M medkit", 8, baseHeight-20)
}

func (g *Game) status() string {
	h, ok := ecs.Get(g.world, g.player, component.HealthComponent.Kind())
	if !ok {
		return fmt.Sprintf("FPS: %.1f  player despawned", ebiten.ActualFPS())
	}
	s := h.State
	return fmt.Sprintf(
		"FPS: %.1f  frame %d\nhealth %g/%g (%.0f%%)\ncritical %t  can pickup %t\ninvincible %t  alive %t  dead %t",
		ebiten.ActualFPS(), g.sched.Frame(),
		s.Current(), s.Max(), s.Ratio()*100,
		s.IsCritical(), s.CanPickup(),
		s.Invincible(), s.IsAlive(), s.IsDead(),
	)
}

func actorColor(w *ecs.World, e ecs.Entity, fallback color.Color) color.Color {
	if a, ok := ecs.Get(w, e, component.ActorComponent.Kind()); ok && a.Color != nil {
		return a.Color
	}
	return fallback
}

func drawBB(screen *ebiten.Image, bb cp.BB, fill, outline color.Color) {
	x, y := float32(bb.L), float32(bb.B)
	w, h := float32(bb.R-bb.L), float32(bb.T-bb.B)
	vector.FillRect(screen, x, y, w, h, fill, false)
	vector.StrokeRect(screen, x, y, w, h, 1, outline, false)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
