package systems

import (
	cfg "github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/fonts"
	"github.com/adamcogen/littleman/shared/gamemath"
	"github.com/adamcogen/littleman/shared/leveldata"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawLevel clears the frame and draws every visible shape that sits behind
// the player, in map order.
func DrawLevel(ecs *ecs.ECS, screen *ebiten.Image) {
	_, sim, ok := getSimulation(ecs)
	if !ok {
		return
	}
	screen.Fill(cfg.Render.Background)
	drawShapes(screen, sim.Snapshot.Shapes, false)
}

// DrawForeground draws the shapes that cover the player.
func DrawForeground(ecs *ecs.ECS, screen *ebiten.Image) {
	_, sim, ok := getSimulation(ecs)
	if !ok {
		return
	}
	drawShapes(screen, sim.Snapshot.Shapes, true)
}

// Rectangles are drawn before ovals on each layer.
func drawShapes(screen *ebiten.Image, shapes []leveldata.Shape, front bool) {
	for i := range shapes {
		s := &shapes[i]
		if s.Class.Visible() && !s.Class.Oval() && s.Class.InFront() == front {
			vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), s.Color, false)
		}
	}
	for i := range shapes {
		s := &shapes[i]
		if s.Class.Oval() && s.Class.InFront() == front {
			drawOval(screen, s)
		}
	}
}

// drawOval fills the inscribed ellipse one row at a time so the drawn
// pixels are exactly the ones the collision map treats as inside.
func drawOval(screen *ebiten.Image, s *leveldata.Shape) {
	for py := s.Y; py < s.Y+s.H; py++ {
		x0, x1, ok := gamemath.OvalRowSpan(s.X, s.Y, s.W, s.H, py)
		if !ok {
			continue
		}
		vector.FillRect(screen, float32(x0), float32(py), float32(x1-x0+1), 1, s.Color, false)
	}
}

// DrawPlayer assembles the figure from text glyphs anchored at the player
// position. The walk step picks the glyph variant.
func DrawPlayer(ecs *ecs.ECS, screen *ebiten.Image) {
	_, sim, ok := getSimulation(ecs)
	if !ok {
		return
	}
	snap := sim.Snapshot
	face := fonts.Figure.Get()
	frame := snap.Step % 2
	for _, g := range cfg.Render.Glyphs {
		text.Draw(screen, g.Text[frame], face, snap.X+g.DX, snap.Y+g.DY, cfg.Render.Player)
	}
}
