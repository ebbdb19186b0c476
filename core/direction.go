package core

import "github.com/adamcogen/littleman/shared/leveldata"

// Direction is one of the four movement directions.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	directionCount
)

var directionNames = [directionCount]string{"left", "right", "up", "down"}

func (d Direction) String() string {
	if d < 0 || d >= directionCount {
		return "direction(?)"
	}
	return directionNames[d]
}

func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	}
	return Up
}

func (d Direction) Horizontal() bool { return d == Left || d == Right }

// edge is the frame edge crossed when travelling in d.
func (d Direction) edge() leveldata.Edge {
	switch d {
	case Left:
		return leveldata.EdgeLeft
	case Right:
		return leveldata.EdgeRight
	case Up:
		return leveldata.EdgeUp
	}
	return leveldata.EdgeDown
}

// KeyTransition tells whether a key went down or up.
type KeyTransition int

const (
	Pressed KeyTransition = iota
	Released
)

func (t KeyTransition) String() string {
	if t == Pressed {
		return "pressed"
	}
	return "released"
}

// KeyEvent is one directional key transition.
type KeyEvent struct {
	Direction  Direction
	Transition KeyTransition
}
