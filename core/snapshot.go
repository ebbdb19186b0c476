package core

import (
	"time"

	"github.com/adamcogen/littleman/shared/leveldata"
)

// Snapshot is the read-only state handed to renderers after every operation
// that can change it. Shapes is shared with the loaded map and must not be
// modified.
type Snapshot struct {
	X, Y  int
	Step  int
	MapID int

	Width, Height int
	Shapes        []leveldata.Shape

	Climb       leveldata.ClimbCode
	Jumping     bool
	Falling     bool // either fall timer is running
	FastFalling bool

	Time time.Duration
}

// Publisher receives snapshots.
type Publisher interface {
	Publish(Snapshot)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(Snapshot)

func (f PublisherFunc) Publish(s Snapshot) { f(s) }
