package core

import (
	"github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/shared/leveldata"
)

// MotionController moves the player against the collision map and owns the
// jump and gravity state machines.
type MotionController struct {
	w    *World
	cfg  config.PhysicsConfig
	jump JumpStep
	fall FallState
}

func newMotionController(w *World, cfg config.PhysicsConfig) *MotionController {
	mc := &MotionController{w: w, cfg: cfg, jump: JumpIdle}
	mc.fall.reset(cfg.Gravity)
	return mc
}

func (mc *MotionController) Jump() JumpStep { return mc.jump }

func (mc *MotionController) Fall() FallState { return mc.fall }

// reset returns both state machines to rest.
func (mc *MotionController) reset() {
	mc.jump = JumpIdle
	mc.fall.reset(mc.cfg.Gravity)
}

// CheckCollision reports whether the player can stand at (x, y) without
// solid geometry on the given side of its hitbox. Every pixel of that edge
// is tested.
func (mc *MotionController) CheckCollision(side Direction, x, y int) bool {
	hb := mc.cfg.Hitbox
	m := mc.w.Map
	switch side {
	case Left:
		col := x + hb.Left + 1
		return !m.AnySolid(col, y+hb.Bottom, col, y+hb.Top)
	case Right:
		col := x + hb.Right - 1
		return !m.AnySolid(col, y+hb.Bottom, col, y+hb.Top)
	case Up:
		row := y + hb.Top - 1
		return !m.AnySolid(x+hb.Left+1, row, x+hb.Right-1, row)
	case Down:
		row := y + hb.Bottom + 1
		return !m.AnySolid(x+hb.Left+1, row, x+hb.Right-1, row)
	}
	return false
}

func (mc *MotionController) IsOnGround(x, y int) bool {
	return !mc.CheckCollision(Down, x, y)
}

// climbAt samples the climb box at (x, y): left edge, right edge, top edge
// at arm line, bottom edge, in that order.
func (mc *MotionController) climbAt(x, y int) leveldata.ClimbCode {
	hb := mc.cfg.Hitbox
	m := mc.w.Map
	var merge climbMerge
	for dy := hb.Bottom; dy >= hb.ArmLine && !merge.latched; dy-- {
		merge.add(m.ClimbCodeAt(x+hb.Left, y+dy))
	}
	for dy := hb.Bottom; dy >= hb.ArmLine && !merge.latched; dy-- {
		merge.add(m.ClimbCodeAt(x+hb.Right, y+dy))
	}
	for dx := hb.Left; dx <= hb.Right && !merge.latched; dx++ {
		merge.add(m.ClimbCodeAt(x+dx, y+hb.ArmLine))
	}
	for dx := hb.Left; dx <= hb.Right && !merge.latched; dx++ {
		merge.add(m.ClimbCodeAt(x+dx, y+hb.Bottom))
	}
	return merge.best
}

// CheckClimb classifies the player's position. A warp code triggers that
// in-map warp before returning.
func (mc *MotionController) CheckClimb() leveldata.ClimbCode {
	p := &mc.w.Player
	c := mc.climbAt(p.X, p.Y)
	if id, ok := c.WarpID(); ok {
		mc.w.Warps.NormWarp(id)
	}
	return c
}

// headroom reports whether the player can rise n pixels from (x, y).
func (mc *MotionController) headroom(x, y, n int) bool {
	for i := 1; i <= n; i++ {
		if !mc.CheckCollision(Up, x, y-i) {
			return false
		}
	}
	return true
}

// checkEdge fires an edge warp once the player is past the frame edge it is
// travelling toward.
func (mc *MotionController) checkEdge(dir Direction) {
	p := &mc.w.Player
	m := mc.w.Map.Data()
	ins := mc.cfg.EdgeInsets
	var out bool
	switch dir {
	case Left:
		out = p.X < -ins.Left
	case Right:
		out = p.X > m.Width+ins.Right
	case Up:
		out = p.Y < -ins.Top
	case Down:
		out = p.Y > m.Height+ins.Bottom
	}
	if out {
		mc.w.Warps.EdgeWarp(dir)
	}
}

// Move tries one move in dir and reports whether the player moved. Moves are
// made of sub-steps so the player stops flush against walls.
func (mc *MotionController) Move(dir Direction) bool {
	p := &mc.w.Player
	step := mc.cfg.SubStep
	moved := false

	switch dir {
	case Left, Right:
		dx := step
		if dir == Left {
			dx = -step
		}
		for i := 0; i < mc.cfg.SubSteps && !mc.w.failed(); i++ {
			if mc.CheckCollision(dir, p.X+dx, p.Y) {
				p.X += dx
				moved = true
			}
			mc.checkEdge(dir)
		}
	case Up:
		moved = mc.moveUp()
	case Down:
		for i := 0; i < mc.cfg.SubSteps && !mc.w.failed(); i++ {
			if !mc.jump.Jumping() && mc.CheckCollision(Down, p.X, p.Y+step) {
				p.Y += step
				moved = true
				mc.checkEdge(Down)
			}
		}
	}
	if mc.w.failed() {
		return moved
	}

	if moved {
		p.advanceStep()
	}
	mc.CheckClimb()
	if !mc.jump.Jumping() {
		mc.CheckFall()
	}
	return moved
}

// moveUp jumps when standing, swimming or on a jumpable climb, and climbs
// when on a ladder.
func (mc *MotionController) moveUp() bool {
	p := &mc.w.Player
	climb := mc.CheckClimb()
	if mc.w.failed() {
		return false
	}

	standing := mc.IsOnGround(p.X, p.Y) && climb == leveldata.NoClimb
	canJump := standing || climb == leveldata.Water || climb == leveldata.JumpableClimb
	if canJump && !mc.jump.Jumping() && mc.headroom(p.X, p.Y, mc.cfg.JumpRise) {
		mc.w.Timers.Start(JumpTimer)
		mc.jump = 0
		p.resetStep()
		p.Y -= mc.cfg.JumpRise
		mc.checkEdge(Up)
		return true
	}
	if climb != leveldata.Ladder {
		return false
	}

	moved := false
	step := mc.cfg.SubStep
	for i := 0; i < mc.cfg.SubSteps && !mc.w.failed(); i++ {
		if mc.CheckCollision(Up, p.X, p.Y-step) {
			p.Y -= step
			moved = true
			mc.checkEdge(Up)
		}
	}
	return moved
}

// jumpTick is the jump timer tick.
func (mc *MotionController) jumpTick() {
	p := &mc.w.Player
	next, dy, done := mc.jump.tick(mc.headroom(p.X, p.Y, mc.cfg.JumpRise), mc.cfg.JumpRise)
	mc.jump = next
	if dy > 0 {
		p.Y -= dy
		mc.checkEdge(Up)
	}
	if done {
		mc.w.Timers.Stop(JumpTimer)
		p.resetStep()
		mc.CheckFall()
	}
}
