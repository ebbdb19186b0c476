package core

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/shared/leveldata"
)

func TestClimbMergePriority(t *testing.T) {
	cases := []struct {
		name  string
		codes []leveldata.ClimbCode
		want  leveldata.ClimbCode
	}{
		{"empty", nil, leveldata.NoClimb},
		{"none_only", []leveldata.ClimbCode{leveldata.NoClimb, leveldata.NoClimb}, leveldata.NoClimb},
		{"ladder_beats_water", []leveldata.ClimbCode{leveldata.Ladder, leveldata.Water}, leveldata.Ladder},
		{"water_then_ladder", []leveldata.ClimbCode{leveldata.Water, leveldata.Ladder}, leveldata.Ladder},
		{"jumpable_beats_all", []leveldata.ClimbCode{leveldata.Water, leveldata.JumpableClimb, leveldata.Ladder}, leveldata.JumpableClimb},
		{"jumpable_last", []leveldata.ClimbCode{leveldata.Ladder, leveldata.Water, leveldata.JumpableClimb}, leveldata.JumpableClimb},
		{"first_warp_latches", []leveldata.ClimbCode{leveldata.JumpableClimb, leveldata.WarpCode(1), leveldata.WarpCode(2)}, leveldata.WarpCode(1)},
		{"warp_after_plain", []leveldata.ClimbCode{leveldata.Water, leveldata.NoClimb, leveldata.WarpCode(4), leveldata.Ladder}, leveldata.WarpCode(4)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := mergeClimb(c.codes...); got != c.want {
				t.Fatalf("mergeClimb(%v) = %v, want %v", c.codes, got, c.want)
			}
		})
	}
}

func TestJumpStepSequence(t *testing.T) {
	cases := []struct {
		step     JumpStep
		headroom bool
		next     JumpStep
		dy       int
		done     bool
	}{
		{0, true, 1, 3, false},
		{0, false, 1, 0, false},
		{1, true, 2, 3, false},
		{1, false, 2, 0, false},
		{2, true, JumpIdle, 0, true},
		{2, false, JumpIdle, 0, true},
	}
	for _, c := range cases {
		next, dy, done := c.step.tick(c.headroom, 3)
		if next != c.next || dy != c.dy || done != c.done {
			t.Errorf("step %d headroom %v: got (%d, %d, %v), want (%d, %d, %v)",
				c.step, c.headroom, next, dy, done, c.next, c.dy, c.done)
		}
	}
}

func TestIsOnGroundMatchesFootRow(t *testing.T) {
	// Ground covers columns 0 to 49 only.
	m := &leveldata.MapData{ID: 1, Width: 100, Height: 60, SpawnX: 10, SpawnY: 40,
		Shapes: []leveldata.Shape{solid(0, 40, 50, 20)}}
	w := newTestWorld(t, fakeMaps{1: m}, 1)
	hb := config.DefaultPhysics().Hitbox

	cases := []struct {
		name string
		x, y int
		want bool
	}{
		{"standing", 20, 40, true},
		{"one_above", 20, 39, false},
		{"overhanging_edge", 47, 40, true},
		{"past_edge", 48, 40, false},
		{"inside_ground", 20, 45, true},
		{"below_frame", 20, 70, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := w.Motion.IsOnGround(c.x, c.y)
			if got != c.want {
				t.Fatalf("IsOnGround(%d, %d) = %v, want %v", c.x, c.y, got, c.want)
			}
			row := c.y + hb.Bottom + 1
			if def := w.Map.AnySolid(c.x+hb.Left+1, row, c.x+hb.Right-1, row); def != got {
				t.Fatalf("IsOnGround(%d, %d) = %v but foot row solid = %v", c.x, c.y, got, def)
			}
		})
	}
}

func TestMoveStopsFlushAgainstWall(t *testing.T) {
	m := flatMap(1, solid(50, 0, 10, 40))
	w := newTestWorld(t, fakeMaps{1: m}, 1)
	w.Player.X = 40

	if !w.Motion.Move(Right) {
		t.Fatalf("first move blocked")
	}
	if w.Player.X != 42 {
		t.Fatalf("X = %d after first move, want 42", w.Player.X)
	}
	if w.Motion.Move(Right) {
		t.Fatalf("second move reported movement")
	}
	if w.Player.X != 42 {
		t.Fatalf("X = %d after blocked move, want 42", w.Player.X)
	}
	if !w.Motion.Move(Left) || w.Player.X != 39 {
		t.Fatalf("move away: X = %d, want 39", w.Player.X)
	}
}

func TestMoveAdvancesWalkFrame(t *testing.T) {
	w := newTestWorld(t, fakeMaps{1: flatMap(1)}, 1)
	for i, want := range []int{1, 0, 1} {
		w.Motion.Move(Right)
		if w.Player.Step != want {
			t.Fatalf("move %d: step %d, want %d", i, w.Player.Step, want)
		}
	}
}

func TestJumpRisesAndLands(t *testing.T) {
	w := newTestWorld(t, fakeMaps{1: flatMap(1)}, 1)

	if err := w.Handle(KeyEvent{Up, Pressed}); err != nil {
		t.Fatal(err)
	}
	if err := w.Handle(KeyEvent{Up, Released}); err != nil {
		t.Fatal(err)
	}
	if w.Player.Y != 37 {
		t.Fatalf("Y = %d right after jump, want 37", w.Player.Y)
	}
	if !w.Timers.Active(JumpTimer) || w.Motion.Jump() != 0 {
		t.Fatalf("jump not started: step %d", w.Motion.Jump())
	}

	steps := []struct {
		y    int
		jump JumpStep
	}{
		{34, 1},
		{31, 2},
		{31, JumpIdle},
	}
	for i, s := range steps {
		if err := w.Advance(120 * time.Millisecond); err != nil {
			t.Fatal(err)
		}
		if w.Player.Y != s.y || w.Motion.Jump() != s.jump {
			t.Fatalf("tick %d: Y %d step %d, want Y %d step %d", i+1, w.Player.Y, w.Motion.Jump(), s.y, s.jump)
		}
	}
	if !w.Timers.Active(SlowFallTimer) {
		t.Fatalf("not falling after the jump ended")
	}

	if err := w.Advance(2 * time.Second); err != nil {
		t.Fatal(err)
	}
	if w.Player.Y != 40 {
		t.Fatalf("landed at Y %d, want 40", w.Player.Y)
	}
	if _, ok := w.Timers.ActiveVertical(); ok {
		t.Fatalf("vertical timer still running after landing")
	}
	g := config.DefaultPhysics().Gravity
	if f := w.Motion.Fall(); f.SlowRate != g.SlowInitial || f.FastRate != g.FastInitial {
		t.Fatalf("fall rates not reset: %+v", f)
	}
}

func TestJumpDeterministicUnderHeldKeys(t *testing.T) {
	events := []struct {
		at time.Duration
		ev KeyEvent
	}{
		{0, KeyEvent{Up, Pressed}},
		{50 * time.Millisecond, KeyEvent{Right, Pressed}},
		{700 * time.Millisecond, KeyEvent{Right, Released}},
		{1200 * time.Millisecond, KeyEvent{Up, Released}},
	}
	const end = 2 * time.Second

	// play runs the events, advancing the clock in slices of at most chunk,
	// and samples the state around every event.
	play := func(chunk time.Duration) []string {
		w := newTestWorld(t, fakeMaps{1: flatMap(1)}, 1)
		var trace []string
		sample := func() {
			s := w.Snapshot()
			trace = append(trace, fmt.Sprintf("%v x=%d y=%d step=%d jump=%d fall=%v fast=%v",
				s.Time, s.X, s.Y, s.Step, w.Motion.Jump(), s.Falling, s.FastFalling))
		}
		advanceTo := func(to time.Duration) {
			for w.Timers.Now() < to {
				if err := w.Advance(min(chunk, to-w.Timers.Now())); err != nil {
					t.Fatal(err)
				}
				if w.Player.Y < 31 || w.Player.Y > 40 {
					t.Fatalf("at %v: Y = %d, outside one jump from the ground", w.Timers.Now(), w.Player.Y)
				}
				if n := verticalActive(w.Timers); n > 1 {
					t.Fatalf("at %v: %d vertical timers active", w.Timers.Now(), n)
				}
			}
		}
		for _, e := range events {
			advanceTo(e.at)
			sample()
			if err := w.Handle(e.ev); err != nil {
				t.Fatal(err)
			}
			sample()
		}
		advanceTo(end)
		sample()
		return trace
	}

	want := play(end)
	if got := play(end); !reflect.DeepEqual(got, want) {
		t.Fatalf("replay differs:\n%v\nwant\n%v", got, want)
	}
	for _, chunk := range []time.Duration{time.Millisecond, 7 * time.Millisecond, 30 * time.Millisecond, 120 * time.Millisecond} {
		if got := play(chunk); !reflect.DeepEqual(got, want) {
			t.Fatalf("advancing in %v slices:\n%v\nwant\n%v", chunk, got, want)
		}
	}
	if want[1] == want[0] {
		t.Fatalf("pressing up did not jump: %v", want[1])
	}
}

func TestJumpNeedsHeadroom(t *testing.T) {
	// Ceiling two pixels above the head.
	m := flatMap(1, solid(0, 0, 100, 16))
	w := newTestWorld(t, fakeMaps{1: m}, 1)
	w.Player.Y = 40

	if w.Motion.Move(Up) {
		t.Fatalf("jumped into a ceiling")
	}
	if w.Player.Y != 40 || w.Motion.Jump().Jumping() {
		t.Fatalf("Y %d jumping %v", w.Player.Y, w.Motion.Jump().Jumping())
	}
}

func TestLadderClimbsWithoutFalling(t *testing.T) {
	m := flatMap(1, region(10, 0, 30, 40, leveldata.Ladder))
	w := newTestWorld(t, fakeMaps{1: m}, 1)

	if !w.Motion.Move(Up) {
		t.Fatalf("could not climb")
	}
	if w.Player.Y != 37 {
		t.Fatalf("Y = %d, want 37", w.Player.Y)
	}
	if w.Motion.Jump().Jumping() {
		t.Fatalf("climbing started a jump")
	}
	w.Advance(time.Second)
	if w.Player.Y != 37 {
		t.Fatalf("slid to Y %d while holding the ladder", w.Player.Y)
	}
}

func TestWaterSinksSlowly(t *testing.T) {
	m := &leveldata.MapData{ID: 1, Width: 100, Height: 80, SpawnX: 20, SpawnY: 30,
		Shapes: []leveldata.Shape{
			solid(0, 60, 100, 20),
			region(0, 0, 100, 60, leveldata.Water),
		}}
	w := newTestWorld(t, fakeMaps{1: m}, 1)

	if !w.Timers.Active(SlowFallTimer) {
		t.Fatalf("not sinking in water")
	}
	w.Advance(360 * time.Millisecond)
	if w.Player.Y != 33 {
		t.Fatalf("Y = %d after three ticks, want 33", w.Player.Y)
	}
	if w.Snapshot().Climb != leveldata.Water {
		t.Fatalf("climb = %v, want water", w.Snapshot().Climb)
	}
}

func TestFreeFallAccelerates(t *testing.T) {
	m := &leveldata.MapData{ID: 1, Width: 100, Height: 4000, SpawnX: 20, SpawnY: 30}
	w := newTestWorld(t, fakeMaps{1: m}, 1)

	var snaps []Snapshot
	w.SetPublisher(PublisherFunc(func(s Snapshot) { snaps = append(snaps, s) }))
	if err := w.Advance(3 * time.Second); err != nil {
		t.Fatal(err)
	}

	g := config.DefaultPhysics().Gravity
	maxDelta := int(g.TerminalVelocity) + 1
	fast := false
	lastFast := 0
	for i := 1; i < len(snaps); i++ {
		prev, cur := snaps[i-1], snaps[i]
		d := cur.Y - prev.Y
		if d <= 0 {
			t.Fatalf("snapshot %d: fell %d pixels", i, d)
		}
		if d > maxDelta {
			t.Fatalf("snapshot %d: fell %d pixels, more than terminal %d", i, d, maxDelta)
		}
		if fast && !cur.FastFalling {
			t.Fatalf("snapshot %d: left fast fall in mid air", i)
		}
		if cur.FastFalling && prev.FastFalling {
			if d < lastFast {
				t.Fatalf("snapshot %d: fast fall slowed from %d to %d", i, lastFast, d)
			}
			lastFast = d
		}
		fast = fast || cur.FastFalling
	}
	if !fast {
		t.Fatalf("never reached fast fall")
	}
	if n := verticalActive(w.Timers); n != 1 {
		t.Fatalf("%d vertical timers active", n)
	}
}

func TestFallRatesNeverDecrease(t *testing.T) {
	m := &leveldata.MapData{ID: 1, Width: 100, Height: 10000, SpawnX: 20, SpawnY: 30}
	w := newTestWorld(t, fakeMaps{1: m}, 1)
	g := config.DefaultPhysics().Gravity

	prev := w.Motion.Fall()
	if prev.SlowRate != g.SlowInitial || prev.FastRate != g.FastInitial {
		t.Fatalf("initial rates %+v", prev)
	}
	slowGrew, fastGrew := false, false
	for i := 0; i < 150; i++ {
		if err := w.Advance(30 * time.Millisecond); err != nil {
			t.Fatal(err)
		}
		cur := w.Motion.Fall()
		if cur.SlowRate < prev.SlowRate || cur.FastRate < prev.FastRate {
			t.Fatalf("tick %d: rates fell from %+v to %+v", i, prev, cur)
		}
		slowGrew = slowGrew || cur.SlowRate > prev.SlowRate
		fastGrew = fastGrew || cur.FastRate > prev.FastRate
		if prev.FastRate > g.TerminalVelocity*g.FastDivider && cur.FastRate != prev.FastRate {
			t.Fatalf("tick %d: fast rate grew past terminal: %v to %v", i, prev.FastRate, cur.FastRate)
		}
		prev = cur
	}
	if !slowGrew || !fastGrew {
		t.Fatalf("slow grew %v, fast grew %v", slowGrew, fastGrew)
	}
	if prev.FastRate <= g.TerminalVelocity*g.FastDivider {
		t.Fatalf("fast rate %v never reached terminal", prev.FastRate)
	}
	if !w.Timers.Active(FastFallTimer) {
		t.Fatalf("not fast falling after 4.5s of free fall")
	}
}

func TestVerticalTimersNeverOverlap(t *testing.T) {
	m := &leveldata.MapData{ID: 1, Width: 200, Height: 120, SpawnX: 20, SpawnY: 100,
		Shapes: []leveldata.Shape{
			solid(0, 100, 200, 20),
			solid(90, 60, 40, 8),
			region(140, 20, 20, 80, leveldata.Ladder),
			region(40, 40, 40, 60, leveldata.Water),
			region(170, 30, 20, 20, leveldata.JumpableClimb),
		}}
	w := newTestWorld(t, fakeMaps{1: m}, 1)

	// Deterministic pseudo-random walk.
	seed := uint32(1)
	next := func(n int) int {
		seed = seed*1664525 + 1013904223
		return int(seed>>16) % n
	}
	for i := 0; i < 2000; i++ {
		switch next(3) {
		case 0:
			w.Handle(KeyEvent{Direction(next(4)), Pressed})
		case 1:
			w.Handle(KeyEvent{Direction(next(4)), Released})
		default:
			w.Advance(time.Duration(next(200)) * time.Millisecond)
		}
		if n := verticalActive(w.Timers); n > 1 {
			t.Fatalf("step %d: %d vertical timers active", i, n)
		}
		if w.Err() != nil {
			t.Fatalf("step %d: %v", i, w.Err())
		}
	}
}
