package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// FadeData drives the overlay that fades in the new map after a warp.
type FadeData struct {
	Tween *gween.Tween
	Alpha float32
	MapID int
}

var Fade = donburi.NewComponentType[FadeData]()
