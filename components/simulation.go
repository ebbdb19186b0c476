package components

import (
	"github.com/adamcogen/littleman/core"
	"github.com/adamcogen/littleman/shared/leveldata"
	"github.com/yohamta/donburi"
)

// SimulationData links the ECS to the movement simulation. Snapshot is the
// last state the world published and is what every renderer draws.
type SimulationData struct {
	World    *core.World
	Store    *leveldata.Store
	Watcher  *leveldata.Watcher // nil unless maps are watched on disk
	Snapshot core.Snapshot
	Halted   bool
}

var Simulation = donburi.NewComponentType[SimulationData]()
