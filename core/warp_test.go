package core

import (
	"errors"
	"testing"
	"time"

	"github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/shared/leveldata"
)

func TestInMapWarpChangesMap(t *testing.T) {
	m1 := flatMap(1, region(60, 0, 10, 40, leveldata.WarpCode(2)))
	m1.Warps = []leveldata.Warp{{MapID: 1}, {MapID: 1}, {MapID: 2, X: 30, Y: 40}}
	w := newTestWorld(t, fakeMaps{1: m1, 2: flatMap(2)}, 1)
	w.Player.X = 50

	var last Snapshot
	w.SetPublisher(PublisherFunc(func(s Snapshot) { last = s }))
	if err := w.Handle(KeyEvent{Right, Pressed}); err != nil {
		t.Fatal(err)
	}

	if last.MapID != 2 || last.X != 30 || last.Y != 40 {
		t.Fatalf("after warp: map %d at (%d, %d), want map 2 at (30, 40)", last.MapID, last.X, last.Y)
	}
	if _, ok := w.Timers.ActiveVertical(); ok {
		t.Fatalf("falling after warping onto ground")
	}
}

func TestCheckFallThroughWarp(t *testing.T) {
	tests := []struct {
		name     string
		dest     leveldata.Warp
		wantFall bool
	}{
		{"onto ground", leveldata.Warp{MapID: 2, X: 20, Y: 40}, false},
		{"into the air", leveldata.Warp{MapID: 2, X: 20, Y: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m1 := flatMap(1, region(60, 0, 10, 30, leveldata.WarpCode(0)))
			m1.Warps = []leveldata.Warp{tt.dest}
			w := newTestWorld(t, fakeMaps{1: m1, 2: flatMap(2)}, 1)

			// Airborne inside the warp region.
			w.Player.X, w.Player.Y = 60, 20
			w.Motion.CheckFall()

			if got := w.Map.Data().ID; got != 2 || w.Player.X != tt.dest.X || w.Player.Y != tt.dest.Y {
				t.Fatalf("map %d at (%d, %d), want map 2 at (%d, %d)", got, w.Player.X, w.Player.Y, tt.dest.X, tt.dest.Y)
			}
			if got := w.Timers.Active(SlowFallTimer); got != tt.wantFall {
				t.Fatalf("slow fall active = %v, want %v", got, tt.wantFall)
			}
			if n := verticalActive(w.Timers); n > 1 {
				t.Fatalf("%d vertical timers active", n)
			}
		})
	}
}

func TestCheckClimbReturnsWarpCode(t *testing.T) {
	m1 := flatMap(1, region(60, 0, 10, 40, leveldata.WarpCode(2)))
	m1.Warps = []leveldata.Warp{{MapID: 1}, {MapID: 1}, {MapID: 2, X: 30, Y: 40}}
	w := newTestWorld(t, fakeMaps{1: m1, 2: flatMap(2)}, 1)
	w.Player.X = 60

	c := w.Motion.CheckClimb()
	if id, ok := c.WarpID(); !ok || id != 2 || c.Raw() != 12 {
		t.Fatalf("CheckClimb = %v (raw %d), want warp 2 (raw 12)", c, c.Raw())
	}
	if got := w.Map.Data().ID; got != 2 || w.Player.X != 30 || w.Player.Y != 40 {
		t.Fatalf("map %d at (%d, %d), want map 2 at (30, 40)", got, w.Player.X, w.Player.Y)
	}
	if c := w.Motion.CheckClimb(); c != leveldata.NoClimb {
		t.Fatalf("CheckClimb at the destination = %v, want none", c)
	}
}

func TestWarpFallSpeedFlags(t *testing.T) {
	g := config.DefaultPhysics().Gravity
	moving := FallState{SlowRate: 7, FastRate: 12}
	initial := FallState{SlowRate: g.SlowInitial, FastRate: g.FastInitial}

	tests := []struct {
		name  string
		edge  bool
		inMap bool
		warp  func(w *World)
		want  FallState
	}{
		{"edge kept", false, true, func(w *World) { w.Warps.EdgeWarp(Left) }, moving},
		{"edge reset", true, false, func(w *World) { w.Warps.EdgeWarp(Left) }, initial},
		{"in-map kept", true, false, func(w *World) { w.Warps.NormWarp(0) }, moving},
		{"in-map reset", false, true, func(w *World) { w.Warps.NormWarp(0) }, initial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultPhysics()
			cfg.EdgeWarpResetsFallSpeed = tt.edge
			cfg.InMapWarpResetsFallSpeed = tt.inMap

			m1 := flatMap(1)
			m1.Edges[leveldata.EdgeLeft] = leveldata.EdgeWarp{MapID: 2, Set: true}
			m1.Warps = []leveldata.Warp{{MapID: 2, X: 20, Y: 40}}
			w := newTestWorldConfig(t, fakeMaps{1: m1, 2: flatMap(2)}, 1, cfg)
			w.Motion.fall = moving

			tt.warp(w)
			if got := w.Map.Data().ID; got != 2 {
				t.Fatalf("on map %d after the warp, want 2", got)
			}
			if got := w.Motion.Fall(); got != tt.want {
				t.Fatalf("fall rates %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEdgeWarpRoundTrip(t *testing.T) {
	m1 := flatMap(1)
	m1.Edges[leveldata.EdgeLeft] = leveldata.EdgeWarp{MapID: 2, Set: true}
	m2 := flatMap(2)
	m2.Edges[leveldata.EdgeRight] = leveldata.EdgeWarp{MapID: 1, Set: true}
	w := newTestWorld(t, fakeMaps{1: m1, 2: m2}, 1)
	w.Player.X = -13

	// The third sub-step reaches x = -16, past the left threshold.
	w.Motion.Move(Left)
	if got := w.Map.Data().ID; got != 2 || w.Player.X != 105 || w.Player.Y != 40 {
		t.Fatalf("after left warp: map %d at (%d, %d), want map 2 at (105, 40)", got, w.Player.X, w.Player.Y)
	}

	// The first sub-step crosses the right threshold; two more follow on map 1.
	w.Motion.Move(Right)
	if got := w.Map.Data().ID; got != 1 || w.Player.X != -13 {
		t.Fatalf("after right warp: map %d at x %d, want map 1 at x -13", got, w.Player.X)
	}
}

func TestEdgeWarpWrapsWithinMap(t *testing.T) {
	w := newTestWorld(t, fakeMaps{1: flatMap(1)}, 1)
	w.Player.X = 104
	w.Motion.Move(Right)
	if w.Map.Data().ID != 1 {
		t.Fatalf("left map 1 without an edge entry")
	}
	// 105 is not past the edge, 106 is and lands at -15, then -14.
	if w.Player.X != -14 {
		t.Fatalf("X = %d, want -14", w.Player.X)
	}
}

func TestMissingMapHaltsWorld(t *testing.T) {
	m1 := flatMap(1)
	m1.Edges[leveldata.EdgeLeft] = leveldata.EdgeWarp{MapID: 9, Set: true}
	w := newTestWorld(t, fakeMaps{1: m1}, 1)
	w.Player.X = -13

	err := w.Handle(KeyEvent{Left, Pressed})
	var mle *leveldata.MapLoadError
	if !errors.As(err, &mle) {
		t.Fatalf("Handle error = %v, want *MapLoadError", err)
	}
	if mle.MapID != 9 {
		t.Fatalf("MapLoadError.MapID = %d, want 9", mle.MapID)
	}
	if w.Map.Data().ID != 1 {
		t.Fatalf("current map changed to %d", w.Map.Data().ID)
	}
	for id := MoveTimer; id < timerCount; id++ {
		if w.Timers.Active(id) {
			t.Fatalf("%v timer active after failure", id)
		}
	}
	if err := w.Advance(time.Second); err == nil {
		t.Fatalf("Advance succeeded on a halted world")
	}
	if err := w.Handle(KeyEvent{Right, Pressed}); err == nil {
		t.Fatalf("Handle succeeded on a halted world")
	}

	if err := w.Spawn(1); err != nil {
		t.Fatalf("Spawn after failure: %v", err)
	}
	if w.Err() != nil || w.Player.X != 20 {
		t.Fatalf("Spawn did not recover: err %v x %d", w.Err(), w.Player.X)
	}
}

func TestSelfWarpChainTerminates(t *testing.T) {
	m := &leveldata.MapData{ID: 1, Width: 100, Height: 60, SpawnX: 20, SpawnY: 30,
		Shapes: []leveldata.Shape{region(0, 0, 100, 60, leveldata.WarpCode(0))},
		Warps:  []leveldata.Warp{{MapID: 1, X: 20, Y: 30}},
	}
	w := newTestWorld(t, fakeMaps{1: m}, 1)
	if err := w.Advance(500 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if w.Player.X != 20 || w.Player.Y != 30 {
		t.Fatalf("player at (%d, %d), want (20, 30)", w.Player.X, w.Player.Y)
	}
}

func TestReloadMapReevaluatesFall(t *testing.T) {
	maps := fakeMaps{1: flatMap(1)}
	w := newTestWorld(t, maps, 1)
	if _, ok := w.Timers.ActiveVertical(); ok {
		t.Fatalf("falling on solid ground")
	}

	maps[1] = &leveldata.MapData{ID: 1, Width: 100, Height: 60, SpawnX: 0, SpawnY: 0}
	if err := w.ReloadMap(); err != nil {
		t.Fatal(err)
	}
	if w.Player.X != 20 || w.Player.Y != 40 {
		t.Fatalf("reload moved the player to (%d, %d)", w.Player.X, w.Player.Y)
	}
	if !w.Timers.Active(SlowFallTimer) {
		t.Fatalf("not falling after the ground was removed")
	}
}

func TestOperationsBeforeSpawn(t *testing.T) {
	w, err := NewWorld(fakeMaps{}, config.DefaultPhysics())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Handle(KeyEvent{Left, Pressed}); !errors.Is(err, ErrNoMap) {
		t.Fatalf("Handle = %v, want ErrNoMap", err)
	}
	if err := w.ReloadMap(); !errors.Is(err, ErrNoMap) {
		t.Fatalf("ReloadMap = %v, want ErrNoMap", err)
	}
	var mle *leveldata.MapLoadError
	if err := w.Spawn(3); !errors.As(err, &mle) || mle.MapID != 3 {
		t.Fatalf("Spawn(3) = %v, want MapLoadError for map 3", err)
	}
}
