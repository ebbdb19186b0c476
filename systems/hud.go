package systems

import (
	"fmt"

	"github.com/adamcogen/littleman/components"
	cfg "github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/core"
	"github.com/adamcogen/littleman/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/yohamta/donburi/ecs"
)

const hudMargin = 4

// DrawHUD prints the player state in the top left corner. A halted
// simulation always shows its error.
func DrawHUD(ecs *ecs.ECS, screen *ebiten.Image) {
	entry, sim, ok := getSimulation(ecs)
	if !ok {
		return
	}
	face := fonts.HUD.Get()
	lineHeight := face.Metrics().Height.Ceil()
	y := hudMargin + lineHeight

	if sim.Halted {
		msg := fmt.Sprintf("halted: %v", sim.World.Err())
		text.Draw(screen, msg, face, hudMargin, y, cfg.Render.HUDColor)
		text.Draw(screen, "press action to respawn", face, hudMargin, y+lineHeight, cfg.Render.HUDColor)
		return
	}
	if !components.Settings.Get(entry).ShowHUD {
		return
	}
	text.Draw(screen, hudLine(sim.Snapshot), face, hudMargin, y, cfg.Render.HUDColor)
}

func hudLine(s core.Snapshot) string {
	state := "ground"
	switch {
	case s.Jumping:
		state = "jump"
	case s.FastFalling:
		state = "fast fall"
	case s.Falling:
		state = "fall"
	}
	return fmt.Sprintf("map %d  %d,%d  %s  climb %d", s.MapID, s.X, s.Y, state, s.Climb.Raw())
}
