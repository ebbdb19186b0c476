package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/adamcogen/littleman/core"
	"gopkg.in/yaml.v3"
)

// Event is one key transition at a point in virtual time.
type Event struct {
	At      time.Duration `yaml:"at"`
	Key     string        `yaml:"key"`
	Pressed bool          `yaml:"pressed"`
}

// Script is a recorded input sequence.
type Script struct {
	Map      int           `yaml:"map"`
	Duration time.Duration `yaml:"duration"`
	Events   []Event       `yaml:"events"`
}

const actionKey = "action"

// Runs continue this long after the last event when no duration is given.
const defaultTail = time.Second

var keyDirections = map[string]core.Direction{
	"left":  core.Left,
	"right": core.Right,
	"up":    core.Up,
	"down":  core.Down,
}

// ParseScript decodes and checks a script. Events are ordered by time;
// events at the same time keep their file order.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("script: %w", err)
	}
	for i, ev := range s.Events {
		if _, ok := keyDirections[ev.Key]; !ok && ev.Key != actionKey {
			return nil, fmt.Errorf("script: event %d: unknown key %q", i, ev.Key)
		}
		if ev.At < 0 {
			return nil, fmt.Errorf("script: event %d: negative time %v", i, ev.At)
		}
	}
	sort.SliceStable(s.Events, func(i, j int) bool { return s.Events[i].At < s.Events[j].At })

	var last time.Duration
	if n := len(s.Events); n > 0 {
		last = s.Events[n-1].At
	}
	switch {
	case s.Duration == 0:
		s.Duration = last + defaultTail
	case s.Duration < last:
		return nil, fmt.Errorf("script: duration %v ends before the last event at %v", s.Duration, last)
	}
	return &s, nil
}

// Run spawns on the script's map (or start when the script names none),
// plays the events and writes a line to out whenever the published state
// changes. It returns the final snapshot.
func Run(w *core.World, s *Script, start int, out io.Writer) (core.Snapshot, error) {
	var last string
	w.SetPublisher(core.PublisherFunc(func(snap core.Snapshot) {
		if line := formatSnapshot(snap); line != last {
			last = line
			fmt.Fprintf(out, "%8v %s\n", snap.Time, line)
		}
	}))
	w.OnAction(func() { fmt.Fprintf(out, "%8v action\n", w.Timers.Now()) })

	id := s.Map
	if id == 0 {
		id = start
	}
	if err := w.Spawn(id); err != nil {
		return w.Snapshot(), err
	}

	for _, ev := range s.Events {
		if err := w.Advance(ev.At - w.Timers.Now()); err != nil {
			return w.Snapshot(), err
		}
		if ev.Key == actionKey {
			if ev.Pressed {
				w.Act()
			}
			continue
		}
		t := core.Released
		if ev.Pressed {
			t = core.Pressed
		}
		if err := w.Handle(core.KeyEvent{Direction: keyDirections[ev.Key], Transition: t}); err != nil {
			return w.Snapshot(), err
		}
	}
	err := w.Advance(s.Duration - w.Timers.Now())
	return w.Snapshot(), err
}

func formatSnapshot(s core.Snapshot) string {
	return fmt.Sprintf("map=%d x=%d y=%d step=%d climb=%d jump=%t fall=%t fast=%t",
		s.MapID, s.X, s.Y, s.Step, s.Climb.Raw(), s.Jumping, s.Falling, s.FastFalling)
}
