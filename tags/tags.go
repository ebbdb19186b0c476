package tags

import "github.com/yohamta/donburi"

var (
	Simulation = donburi.NewTag().SetName("Simulation")
)

// Resolv tags for map shapes in the collision space
const (
	ResolvSolid = "solid"
	ResolvClimb = "climb"
)
