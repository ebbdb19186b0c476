package systems

import (
	"github.com/adamcogen/littleman/components"
	cfg "github.com/adamcogen/littleman/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawDebug outlines the player hitbox and marks the arm line used by the
// climb sample box.
func DrawDebug(ecs *ecs.ECS, screen *ebiten.Image) {
	entry, sim, ok := getSimulation(ecs)
	if !ok || !components.Settings.Get(entry).ShowHitbox {
		return
	}

	hb := cfg.Physics.Hitbox
	x, y := sim.Snapshot.X, sim.Snapshot.Y
	left := float32(x + hb.Left)
	right := float32(x + hb.Right)
	top := float32(y + hb.Top)
	bottom := float32(y + hb.Bottom)
	w := right - left + 1
	h := bottom - top + 1
	c := cfg.Render.HitboxColor

	vector.FillRect(screen, left, top, w, 1, c, false)    // Top
	vector.FillRect(screen, left, bottom, w, 1, c, false) // Bottom
	vector.FillRect(screen, left, top, 1, h, c, false)    // Left
	vector.FillRect(screen, right, top, 1, h, c, false)   // Right

	// Arm marker sits one row under the arm line, centred in the box.
	armX := float32(x + (hb.Left+hb.Right)/2)
	armY := float32(y + hb.ArmLine + 1)
	vector.FillRect(screen, armX, armY, 2, 1, cfg.Render.ArmLineColor, false)
}
