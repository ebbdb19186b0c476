package core

import "github.com/adamcogen/littleman/shared/leveldata"

type keyState uint8

const (
	keyIdle keyState = iota
	// keyHeld means the key is down and its immediate first move has fired.
	keyHeld
)

// InputAggregator turns directional key events into moves. The first press
// of a key moves at once; holding keys repeats moves on the move timer.
type InputAggregator struct {
	w    *World
	keys [directionCount]keyState
}

func newInputAggregator(w *World) *InputAggregator {
	return &InputAggregator{w: w}
}

func (a *InputAggregator) Held(d Direction) bool { return a.keys[d] == keyHeld }

func (a *InputAggregator) anyHeld() bool {
	for _, k := range a.keys {
		if k == keyHeld {
			return true
		}
	}
	return false
}

// Handle applies one key event. A press is ignored while the opposite key is
// held. Repeated presses of a held key, as sent by key repeat, only make sure
// the move timer runs.
func (a *InputAggregator) Handle(ev KeyEvent) {
	if ev.Direction < 0 || ev.Direction >= directionCount {
		return
	}
	switch ev.Transition {
	case Pressed:
		if a.Held(ev.Direction.Opposite()) {
			return
		}
		if a.keys[ev.Direction] == keyIdle {
			a.keys[ev.Direction] = keyHeld
			a.w.Motion.Move(ev.Direction)
			if a.w.failed() {
				return
			}
		}
		a.w.Timers.Start(MoveTimer)
	case Released:
		a.keys[ev.Direction] = keyIdle
		if !a.anyHeld() {
			a.w.Timers.Stop(MoveTimer)
		}
	}
}

// Release drops every held key and stops the move timer.
func (a *InputAggregator) Release() {
	a.keys = [directionCount]keyState{}
	a.w.Timers.Stop(MoveTimer)
}

// repeatTick is the move timer tick. Diagonals are tried horizontal first.
func (a *InputAggregator) repeatTick() {
	mc := a.w.Motion
	switch {
	case a.Held(Left) && a.Held(Up):
		a.combined(Left, Up)
	case a.Held(Left) && a.Held(Down):
		a.combined(Left, Down)
	case a.Held(Left):
		mc.Move(Left)
	case a.Held(Right) && a.Held(Up):
		a.combined(Right, Up)
	case a.Held(Right) && a.Held(Down):
		a.combined(Right, Down)
	case a.Held(Right):
		mc.Move(Right)
	case a.Held(Up):
		mc.Move(Up)
	case a.Held(Down):
		mc.Move(Down)
	}
}

// combined moves along both axes. Each successful move already advanced the
// walk frame. When both moved on a surface that carries diagonal motion the
// frame advances once more, so the pair reads as a single step.
func (a *InputAggregator) combined(h, v Direction) {
	mc := a.w.Motion
	movedH := mc.Move(h)
	movedV := mc.Move(v)
	if a.w.failed() || !movedH || !movedV {
		return
	}
	if diagonalClimb(v, mc.CheckClimb()) {
		a.w.Player.advanceStep()
	}
}

func diagonalClimb(v Direction, c leveldata.ClimbCode) bool {
	switch c {
	case leveldata.Ladder, leveldata.JumpableClimb:
		return true
	case leveldata.Water:
		return v == Down
	}
	return false
}
