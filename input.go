package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the sandbox controls sampled once per frame.
type Input struct {
	// MoveX/MoveY are -1, 0 or +1 from the arrow keys.
	MoveX float64
	MoveY float64

	Damage     bool
	Heal       bool
	Kill       bool
	Invincible bool
	Respawn    bool
	SpawnKit   bool
	Quit       bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard. Action fields are true only on the frame the
// key goes down.
func (i *Input) Update() {
	i.MoveX, i.MoveY = 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		i.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		i.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		i.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		i.MoveY += 1
	}

	i.Damage = inpututil.IsKeyJustPressed(ebiten.KeyD)
	i.Heal = inpututil.IsKeyJustPressed(ebiten.KeyH)
	i.Kill = inpututil.IsKeyJustPressed(ebiten.KeyK)
	i.Invincible = inpututil.IsKeyJustPressed(ebiten.KeyI)
	i.Respawn = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.SpawnKit = inpututil.IsKeyJustPressed(ebiten.KeyM)
	i.Quit = inpututil.IsKeyJustPressed(ebiten.KeyF12)
}
