package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// overrides is the YAML document read by LoadOverrides. Each section starts
// as a copy of the current globals so absent keys keep their values.
type overrides struct {
	Game    Config        `yaml:"game"`
	Physics PhysicsConfig `yaml:"physics"`
	Render  RenderConfig  `yaml:"render"`
	Debug   DebugConfig   `yaml:"debug"`
}

// LoadOverrides reads a YAML file and applies it on top of the current
// configuration. Unknown keys and invalid physics values are errors, and on
// error nothing is applied.
func LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := ApplyOverrides(data); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// ApplyOverrides is LoadOverrides for an in-memory document.
func ApplyOverrides(data []byte) error {
	doc := overrides{
		Game:    *C,
		Physics: Physics,
		Render:  Render,
		Debug:   Debug,
	}
	doc.Render.Glyphs = append([]Glyph(nil), Render.Glyphs...)

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if err := doc.Physics.Validate(); err != nil {
		return err
	}
	if doc.Game.Scale <= 0 {
		return fmt.Errorf("game: scale must be positive, got %d", doc.Game.Scale)
	}

	game := doc.Game
	C = &game
	Physics = doc.Physics
	Render = doc.Render
	Debug = doc.Debug
	return nil
}
