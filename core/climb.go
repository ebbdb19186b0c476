package core

import "github.com/adamcogen/littleman/shared/leveldata"

// climbRank orders plain climb codes when merging samples. It is not
// the raw numeric order: a ladder outranks water.
func climbRank(c leveldata.ClimbCode) int {
	switch c.Kind() {
	case leveldata.ClimbJumpable:
		return 3
	case leveldata.ClimbLadder:
		return 2
	case leveldata.ClimbWater:
		return 1
	}
	return 0
}

// climbMerge folds sampled climb codes into one classification. The first
// warp code seen is final.
type climbMerge struct {
	best    leveldata.ClimbCode
	latched bool
}

func (m *climbMerge) add(c leveldata.ClimbCode) {
	if m.latched {
		return
	}
	if c.IsWarp() {
		m.best, m.latched = c, true
		return
	}
	if climbRank(c) > climbRank(m.best) {
		m.best = c
	}
}

// mergeClimb merges codes in order.
func mergeClimb(codes ...leveldata.ClimbCode) leveldata.ClimbCode {
	var m climbMerge
	for _, c := range codes {
		m.add(c)
	}
	return m.best
}
