package core

import (
	"time"

	"github.com/adamcogen/littleman/config"
)

// TimerID names one of the scheduler's timers. Lower ids fire first when
// deadlines coincide, so horizontal repeat moves resolve before vertical
// motion.
type TimerID int

const (
	MoveTimer     TimerID = iota // repeats moves while a key is held
	JumpTimer                    // advances the jump one phase
	SlowFallTimer                // falls at the slow rate until hand-over
	FastFallTimer                // falls at the fast rate up to terminal velocity
	timerCount
)

var timerNames = [timerCount]string{"move", "jump", "slow-fall", "fast-fall"}

func (id TimerID) String() string {
	if id < 0 || id >= timerCount {
		return "timer(?)"
	}
	return timerNames[id]
}

// vertical timers are mutually exclusive.
func (id TimerID) vertical() bool { return id != MoveTimer }

type timer struct {
	interval time.Duration
	next     time.Duration
	active   bool
	tick     func()
}

// Scheduler runs fixed-interval timers on a virtual clock. Nothing happens
// between calls to Advance; every tick runs to completion before the next
// one is considered. Starting any vertical timer stops the other two, so at
// most one of jump, slow-fall and fast-fall is ever active.
type Scheduler struct {
	now    time.Duration
	timers [timerCount]timer
}

func NewScheduler(t config.TimerConfig) *Scheduler {
	s := &Scheduler{}
	s.timers[MoveTimer].interval = t.Move
	s.timers[JumpTimer].interval = t.Jump
	s.timers[SlowFallTimer].interval = t.SlowFall
	s.timers[FastFallTimer].interval = t.FastFall
	return s
}

// Handle sets the function run on every tick of id.
func (s *Scheduler) Handle(id TimerID, fn func()) {
	s.timers[id].tick = fn
}

// Start activates id with its first tick one interval from now. Starting an
// active timer does nothing.
func (s *Scheduler) Start(id TimerID) {
	t := &s.timers[id]
	if t.active {
		return
	}
	if id.vertical() {
		for other := JumpTimer; other < timerCount; other++ {
			if other != id {
				s.timers[other].active = false
			}
		}
	}
	t.active = true
	t.next = s.now + t.interval
}

// Stop deactivates id. It takes effect before the next tick.
func (s *Scheduler) Stop(id TimerID) {
	s.timers[id].active = false
}

func (s *Scheduler) StopAll() {
	for id := range s.timers {
		s.timers[id].active = false
	}
}

func (s *Scheduler) Active(id TimerID) bool {
	return s.timers[id].active
}

// ActiveVertical returns the running vertical timer, if any.
func (s *Scheduler) ActiveVertical() (TimerID, bool) {
	for id := JumpTimer; id < timerCount; id++ {
		if s.timers[id].active {
			return id, true
		}
	}
	return 0, false
}

func (s *Scheduler) Now() time.Duration { return s.now }

// Advance moves the clock forward by dt, firing every tick that falls due in
// deadline order. A zero or negative dt does nothing.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt <= 0 {
		return
	}
	target := s.now + dt
	for {
		id, ok := s.due(target)
		if !ok {
			break
		}
		t := &s.timers[id]
		s.now = t.next
		t.next += t.interval
		if t.tick != nil {
			t.tick()
		}
	}
	s.now = target
}

func (s *Scheduler) due(target time.Duration) (TimerID, bool) {
	best := TimerID(-1)
	for id := range s.timers {
		t := &s.timers[id]
		if !t.active || t.next > target {
			continue
		}
		if best < 0 || t.next < s.timers[best].next {
			best = TimerID(id)
		}
	}
	return best, best >= 0
}
