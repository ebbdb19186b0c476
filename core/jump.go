package core

// JumpStep is the jump state machine. Steps 0 and 1 rise, step 2 ends the
// jump, and JumpIdle means no jump is in progress.
type JumpStep int

const JumpIdle JumpStep = 3

func (s JumpStep) Jumping() bool { return s != JumpIdle }

// tick is one jump timer tick. It returns the next step, how far to rise,
// and whether the jump just ended. Rising needs headroom.
func (s JumpStep) tick(headroom bool, rise int) (next JumpStep, dy int, done bool) {
	switch s {
	case 0, 1:
		if headroom {
			dy = rise
		}
		return s + 1, dy, false
	}
	return JumpIdle, 0, true
}
