package archetypes

import (
	"github.com/adamcogen/littleman/components"
	cfg "github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Simulation = newArchetype(
		tags.Simulation,
		components.Simulation,
		components.Input,
		components.Settings,
		components.Fade,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
