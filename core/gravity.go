package core

import (
	"github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/shared/gamemath"
	"github.com/adamcogen/littleman/shared/leveldata"
)

// FallState holds the two fall rates. Both return to their initial values
// whenever a fall is broken.
type FallState struct {
	SlowRate float64
	FastRate float64
}

func (f *FallState) reset(g config.GravityConfig) {
	f.SlowRate = g.SlowInitial
	f.FastRate = g.FastInitial
}

// accelerateSlow speeds up the slow fall and reports whether it has reached
// the hand-over speed to the fast-fall timer.
func (f *FallState) accelerateSlow(g config.GravityConfig) bool {
	f.SlowRate = gamemath.Accelerate(f.SlowRate, g.SlowAcceleration, g.TerminalVelocity, g.SlowDivider)
	return f.SlowRate/g.SlowDivider >= g.FastThreshold
}

func (f *FallState) accelerateFast(g config.GravityConfig) {
	f.FastRate = gamemath.Accelerate(f.FastRate, g.FastAcceleration, g.TerminalVelocity, g.FastDivider)
}

func (mc *MotionController) fastFalling() bool {
	return mc.w.Timers.Active(FastFallTimer)
}

// airborne reports whether the player is off the ground and, if so, the
// climb classification at its position. A warp code here has already
// fired.
func (mc *MotionController) airborne() (bool, leveldata.ClimbCode) {
	p := &mc.w.Player
	if mc.IsOnGround(p.X, p.Y) {
		return false, leveldata.NoClimb
	}
	return true, mc.CheckClimb()
}

// fallPixel drops the player one sub-step and warps off the bottom edge.
func (mc *MotionController) fallPixel() {
	mc.w.Player.Y += mc.cfg.SubStep
	mc.checkEdge(Down)
}

// slowFallTick is the slow-fall timer tick. It falls int(SlowRate/divider)
// times, accelerating as it goes, and hands over to the fast-fall timer at
// the threshold speed. One more fall attempt follows the loop so water and
// landings are handled even when the loop did nothing.
func (mc *MotionController) slowFallTick() {
	g := mc.cfg.Gravity
	for i := 0; i < gamemath.PixelsPerTick(mc.fall.SlowRate, g.SlowDivider); i++ {
		if mc.w.failed() {
			return
		}
		if mc.fastFalling() {
			continue
		}
		if air, climb := mc.airborne(); !air || climb != leveldata.NoClimb {
			continue
		}
		mc.fallPixel()
		if g.Accelerate && mc.fall.accelerateSlow(g) {
			mc.w.Timers.Start(FastFallTimer)
		}
	}
	if mc.w.failed() {
		return
	}

	air, climb := mc.airborne()
	switch {
	case air && climb == leveldata.NoClimb && !mc.fastFalling():
		mc.fallPixel()
	case air && climb == leveldata.Water:
		// Sink one sub-step per tick in water.
		mc.fallPixel()
		mc.ResetFallSpeed()
	case mc.fastFalling():
		mc.w.Timers.Stop(SlowFallTimer)
	default:
		mc.land()
	}
}

// fastFallTick is the fast-fall timer tick: the same loop on the fast rate
// at a shorter interval, accelerating up to terminal velocity.
func (mc *MotionController) fastFallTick() {
	g := mc.cfg.Gravity
	for i := 0; i < gamemath.PixelsPerTick(mc.fall.FastRate, g.FastDivider); i++ {
		if mc.w.failed() {
			return
		}
		if air, climb := mc.airborne(); !air || climb != leveldata.NoClimb {
			continue
		}
		mc.fallPixel()
		mc.fall.accelerateFast(g)
	}
	if mc.w.failed() {
		return
	}

	if air, climb := mc.airborne(); air && climb == leveldata.NoClimb {
		mc.fallPixel()
		return
	}
	mc.land()
}

// land ends a fall: both fall timers stop, the walk frame and fall rates
// reset, and climb and fall are evaluated again from the new position.
func (mc *MotionController) land() {
	mc.w.Timers.Stop(SlowFallTimer)
	mc.w.Timers.Stop(FastFallTimer)
	mc.w.Player.resetStep()
	mc.ResetFallSpeed()
	mc.CheckClimb()
	mc.CheckFall()
}

// ResetFallSpeed restores both fall rates. Unless the player is in water it
// also stops both fall timers.
func (mc *MotionController) ResetFallSpeed() {
	p := &mc.w.Player
	if mc.climbAt(p.X, p.Y) != leveldata.Water {
		mc.w.Timers.Stop(SlowFallTimer)
		mc.w.Timers.Stop(FastFallTimer)
	}
	mc.fall.reset(mc.cfg.Gravity)
}

// CheckFall starts the slow-fall timer when the player is unsupported: off
// the ground and not holding a ladder or jumpable climb. It does nothing
// while a jump is rising or a fall is already under way.
func (mc *MotionController) CheckFall() {
	if mc.jump.Jumping() || mc.w.failed() {
		return
	}
	air, climb := mc.airborne()
	if !air || climb == leveldata.Ladder || climb == leveldata.JumpableClimb {
		return
	}
	// A warp has already evaluated fall at its destination.
	if climb.IsWarp() {
		return
	}
	if mc.fastFalling() || mc.w.failed() {
		return
	}
	mc.w.Timers.Start(SlowFallTimer)
}
