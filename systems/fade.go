package systems

import (
	"image/color"

	"github.com/adamcogen/littleman/components"
	cfg "github.com/adamcogen/littleman/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

// UpdateTransition reacts to the player entering a different map: the window
// follows the new frame size, a fade-in starts and the map is remembered for
// the next run.
func UpdateTransition(ecs *ecs.ECS) {
	entry, sim, ok := getSimulation(ecs)
	if !ok {
		return
	}
	fade := components.Fade.Get(entry)
	snap := sim.Snapshot
	if snap.MapID == fade.MapID {
		return
	}
	fade.MapID = snap.MapID

	if cfg.Render.FadeSeconds > 0 {
		fade.Tween = gween.New(1, 0, cfg.Render.FadeSeconds, ease.OutQuad)
		fade.Alpha = 1
	}
	if scale := cfg.C.Scale; scale > 0 && snap.Width > 0 {
		ebiten.SetWindowSize(snap.Width*scale, snap.Height*scale)
	}
	SaveCurrentSettings(components.Settings.Get(entry), snap.MapID)
}

// UpdateFade steps the fade tween by one frame.
func UpdateFade(ecs *ecs.ECS) {
	entry, _, ok := getSimulation(ecs)
	if !ok {
		return
	}
	fade := components.Fade.Get(entry)
	if fade.Tween == nil {
		return
	}
	alpha, done := fade.Tween.Update(1 / float32(ebiten.TPS()))
	fade.Alpha = alpha
	if done {
		fade.Tween = nil
		fade.Alpha = 0
	}
}

// DrawFade covers the frame with the background colour at the fade alpha.
func DrawFade(ecs *ecs.ECS, screen *ebiten.Image) {
	entry, _, ok := getSimulation(ecs)
	if !ok {
		return
	}
	alpha := components.Fade.Get(entry).Alpha
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	bg := cfg.Render.Background
	// Premultiplied alpha
	c := color.RGBA{
		R: uint8(float32(bg.R) * alpha),
		G: uint8(float32(bg.G) * alpha),
		B: uint8(float32(bg.B) * alpha),
		A: uint8(255 * alpha),
	}
	b := screen.Bounds()
	vector.FillRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}
