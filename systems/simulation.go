package systems

import (
	"log"
	"time"

	"github.com/adamcogen/littleman/components"
	cfg "github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// getSimulation returns the singleton simulation entry.
func getSimulation(ecs *ecs.ECS) (*donburi.Entry, *components.SimulationData, bool) {
	entry, ok := tags.Simulation.First(ecs.World)
	if !ok {
		return nil, nil, false
	}
	return entry, components.Simulation.Get(entry), true
}

// UpdateSimulation advances the virtual clock by one frame.
func UpdateSimulation(ecs *ecs.ECS) {
	_, sim, ok := getSimulation(ecs)
	if !ok || sim.Halted {
		return
	}
	dt := time.Second / time.Duration(ebiten.TPS())
	if err := sim.World.Advance(dt); err != nil {
		halt(sim, err)
	}
}

func halt(sim *components.SimulationData, err error) {
	log.Printf("Warning: simulation halted: %v", err)
	sim.Halted = true
}

// respawn restarts at the configured start map after a halt.
func respawn(sim *components.SimulationData) {
	if err := sim.World.Spawn(cfg.C.StartMap); err != nil {
		log.Printf("Warning: respawn on map %d failed: %v", cfg.C.StartMap, err)
		return
	}
	sim.Halted = false
}

// UpdateWatch applies map files edited on disk. The current map is reloaded
// in place; other maps are re-read when next entered.
func UpdateWatch(ecs *ecs.ECS) {
	_, sim, ok := getSimulation(ecs)
	if !ok || sim.Watcher == nil {
		return
	}
	for {
		select {
		case id, open := <-sim.Watcher.Events:
			if !open {
				sim.Watcher = nil
				return
			}
			sim.Store.Invalidate(id)
			if sim.Halted || id != sim.Snapshot.MapID {
				continue
			}
			if err := sim.World.ReloadMap(); err != nil {
				log.Printf("Warning: reload of map %d failed, keeping the old one: %v", id, err)
			} else {
				log.Printf("Reloaded map %d", id)
			}
		case err, open := <-sim.Watcher.Errors:
			if !open {
				sim.Watcher = nil
				return
			}
			log.Printf("Warning: map watcher: %v", err)
		default:
			return
		}
	}
}
