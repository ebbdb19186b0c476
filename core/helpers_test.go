package core

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/shared/leveldata"
)

// fakeMaps is an in-memory map source.
type fakeMaps map[int]*leveldata.MapData

func (f fakeMaps) Map(id int) (*leveldata.MapData, error) {
	m, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("no map %d", id)
	}
	return m, nil
}

var grey = color.RGBA{R: 128, G: 128, B: 128, A: 255}

func solid(x, y, w, h int) leveldata.Shape {
	return leveldata.Shape{X: x, Y: y, W: w, H: h, Class: leveldata.ClassSolid, Color: grey}
}

func region(x, y, w, h int, c leveldata.ClimbCode) leveldata.Shape {
	return leveldata.Shape{X: x, Y: y, W: w, H: h, Class: leveldata.ClassHidden, Climb: c}
}

// flatMap is a 100x60 frame with ground on rows 40 to 59 and the spawn
// standing on it.
func flatMap(id int, extra ...leveldata.Shape) *leveldata.MapData {
	return &leveldata.MapData{
		ID:     id,
		Width:  100,
		Height: 60,
		SpawnX: 20,
		SpawnY: 40,
		Shapes: append([]leveldata.Shape{solid(0, 40, 100, 20)}, extra...),
	}
}

func newTestWorld(t *testing.T, maps fakeMaps, start int) *World {
	t.Helper()
	return newTestWorldConfig(t, maps, start, config.DefaultPhysics())
}

func newTestWorldConfig(t *testing.T, maps fakeMaps, start int, cfg config.PhysicsConfig) *World {
	t.Helper()
	w, err := NewWorld(maps, cfg)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if err := w.Spawn(start); err != nil {
		t.Fatalf("Spawn(%d): %v", start, err)
	}
	return w
}

func verticalActive(s *Scheduler) int {
	n := 0
	for id := JumpTimer; id < timerCount; id++ {
		if s.Active(id) {
			n++
		}
	}
	return n
}
