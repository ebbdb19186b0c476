package config

// Render layers for ecs.AddRenderer. Untyped so this package stays free of
// ebiten.
const (
	Default = iota
	Overlay
)
