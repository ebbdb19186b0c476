// Package core is the movement simulation: a single player moving through
// pixel geometry under stepped gravity, a fixed three-phase jump, climbing,
// swimming and map-to-map warps, all driven by fixed-interval timers on a
// virtual clock. It does no rendering and reads no devices; a frontend feeds
// it key events and time and draws the snapshots it publishes.
package core

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/shared/leveldata"
)

// MapSource supplies decoded maps by id. leveldata.Store implements it.
type MapSource interface {
	Map(id int) (*leveldata.MapData, error)
}

// ErrNoMap is returned by operations that need a map before Spawn.
var ErrNoMap = errors.New("core: no map loaded")

// World owns the player and every component of the simulation. It is not
// safe for concurrent use; all calls come from one goroutine.
type World struct {
	Player Player

	Map    *CollisionMap
	Motion *MotionController
	Warps  *WarpController
	Input  *InputAggregator
	Timers *Scheduler

	maps     MapSource
	pub      Publisher
	onAction func()
	err      error
}

// NewWorld builds a world reading maps from src. Call Spawn before anything
// else.
func NewWorld(src MapSource, cfg config.PhysicsConfig) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("core: physics config: %w", err)
	}
	w := &World{
		Map:    NewCollisionMap(),
		Timers: NewScheduler(cfg.Timers),
		maps:   src,
	}
	w.Motion = newMotionController(w, cfg)
	w.Warps = newWarpController(w, cfg)
	w.Input = newInputAggregator(w)

	w.Timers.Handle(MoveTimer, w.guard(w.Input.repeatTick))
	w.Timers.Handle(JumpTimer, w.guard(w.Motion.jumpTick))
	w.Timers.Handle(SlowFallTimer, w.guard(w.Motion.slowFallTick))
	w.Timers.Handle(FastFallTimer, w.guard(w.Motion.fastFallTick))
	return w, nil
}

// SetPublisher sets the receiver of snapshots. It gets one right away if a
// map is loaded.
func (w *World) SetPublisher(p Publisher) {
	w.pub = p
	w.publish()
}

// OnAction sets the handler for the action key.
func (w *World) OnAction(fn func()) { w.onAction = fn }

// guard wraps a timer tick so it does nothing after a failure and publishes
// when done.
func (w *World) guard(tick func()) func() {
	return func() {
		if w.failed() {
			return
		}
		tick()
		w.publish()
	}
}

func (w *World) failed() bool { return w.err != nil }

// fail records a map load failure raised inside movement. Every timer stops
// and later events are ignored until the next Spawn.
func (w *World) fail(err error) {
	if w.err != nil {
		return
	}
	log.Printf("core: simulation halted: %v", err)
	w.err = err
	w.Timers.StopAll()
}

// Err returns the failure that halted the world, if any.
func (w *World) Err() error { return w.err }

// Spawn loads map id and places the player at its spawn point with all
// motion at rest. It clears a previous failure.
func (w *World) Spawn(id int) error {
	w.err = nil
	w.Timers.StopAll()
	w.Input.Release()
	if err := w.Warps.ChangeMap(id); err != nil {
		return err
	}
	m := w.Map.Data()
	w.Player = Player{X: m.SpawnX, Y: m.SpawnY}
	w.Motion.reset()
	w.Motion.CheckClimb()
	w.Motion.CheckFall()
	w.publish()
	return w.err
}

// ChangeMap loads map id without moving the player.
func (w *World) ChangeMap(id int) error {
	if err := w.Warps.ChangeMap(id); err != nil {
		return err
	}
	w.publish()
	return nil
}

// ReloadMap reloads the current map, normally after its file changed, and
// re-evaluates climb and fall at the unchanged position.
func (w *World) ReloadMap() error {
	m := w.Map.Data()
	if m == nil {
		return ErrNoMap
	}
	if err := w.Warps.ChangeMap(m.ID); err != nil {
		return err
	}
	w.Motion.CheckClimb()
	w.Motion.CheckFall()
	w.publish()
	return w.err
}

// Handle feeds one key event to the input aggregator.
func (w *World) Handle(ev KeyEvent) error {
	if w.err != nil {
		return w.err
	}
	if w.Map.Data() == nil {
		return ErrNoMap
	}
	w.Input.Handle(ev)
	w.publish()
	return w.err
}

// Act delivers the auxiliary action key.
func (w *World) Act() {
	if w.onAction != nil {
		w.onAction()
	}
}

// Advance moves the virtual clock forward, running every timer tick due in
// that time.
func (w *World) Advance(dt time.Duration) error {
	if w.err != nil {
		return w.err
	}
	w.Timers.Advance(dt)
	return w.err
}

// Snapshot returns the current render state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		X:       w.Player.X,
		Y:       w.Player.Y,
		Step:    w.Player.Step,
		Jumping: w.Motion.jump.Jumping(),
		Time:    w.Timers.Now(),
	}
	if v, ok := w.Timers.ActiveVertical(); ok && v != JumpTimer {
		s.Falling = true
		s.FastFalling = v == FastFallTimer
	}
	if m := w.Map.Data(); m != nil {
		s.MapID = m.ID
		s.Width, s.Height = m.Width, m.Height
		s.Shapes = m.Shapes
		s.Climb = w.Motion.climbAt(w.Player.X, w.Player.Y)
	}
	return s
}

func (w *World) publish() {
	if w.pub == nil || w.Map.Data() == nil {
		return
	}
	w.pub.Publish(w.Snapshot())
}
