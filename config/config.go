package config

import "image/color"

// Config holds general game configuration
type Config struct {
	Title    string `yaml:"title"`
	StartMap int    `yaml:"start_map"`
	// MapDir is read from disk when set; otherwise the embedded maps are used.
	MapDir string `yaml:"map_dir"`
	// Watch reloads maps edited on disk while playing. Needs MapDir.
	Watch bool `yaml:"watch"`
	// Scale multiplies the map frame size to get the window size.
	Scale int `yaml:"scale"`
}

// Glyph is one piece of text drawn relative to the player position, the way
// the figure is assembled from letters. Text is indexed by animation step.
type Glyph struct {
	DX   int       `yaml:"dx"`
	DY   int       `yaml:"dy"`
	Text [2]string `yaml:"text"`
}

// RenderConfig contains drawing configuration
type RenderConfig struct {
	Background color.RGBA `yaml:"background"`
	Player     color.RGBA `yaml:"player"`
	FontSize   float64    `yaml:"font_size"`
	Glyphs     []Glyph    `yaml:"glyphs"`

	// FadeSeconds is the length of the fade-in after a map change.
	FadeSeconds float32 `yaml:"fade_seconds"`

	HitboxColor  color.RGBA `yaml:"hitbox_color"`
	ArmLineColor color.RGBA `yaml:"arm_line_color"`
	HUDColor     color.RGBA `yaml:"hud_color"`
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	ShowHitbox bool `yaml:"show_hitbox"`
	ShowHUD    bool `yaml:"show_hud"`
}

// Global configuration instances
var C *Config
var Render RenderConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black        = color.RGBA{A: 255}
	Red          = color.RGBA{R: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, A: 255}
	BlackOverlay = color.RGBA{A: 255}
)

func init() {
	C = &Config{
		Title:    "Littleman",
		StartMap: 1,
		Scale:    2,
	}

	Render = RenderConfig{
		Background: White,
		Player:     Black,
		FontSize:   12,
		Glyphs: []Glyph{
			{DX: 0, DY: 0, Text: [2]string{"H", "X"}},
			{DX: -5, DY: -6, Text: [2]string{"- -", "~ ~"}},
			{DX: 0, DY: -5, Text: [2]string{"O", "O"}},
			{DX: 2, DY: -15, Text: [2]string{"o", "o"}},
		},
		FadeSeconds:  0.25,
		HitboxColor:  Red,
		ArmLineColor: Yellow,
		HUDColor:     Red,
	}
}
