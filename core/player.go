package core

// walkFrames is the number of walk animation steps.
const walkFrames = 2

// Player is the single simulated figure. Position is in whole pixels with
// the origin at the top left of the frame; Step selects the walk frame.
type Player struct {
	X, Y int
	Step int
}

func (p *Player) advanceStep() { p.Step = (p.Step + 1) % walkFrames }

func (p *Player) resetStep() { p.Step = 0 }
