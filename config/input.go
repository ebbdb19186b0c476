package config

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionToggleHitbox
	ActionToggleHUD
	ActionCount // Must be last - used for array sizing
)

// InputBinding lists the keys bound to an action by their ebiten key names
// ("ArrowLeft", "A", "F1"). Gamepad d-pad and left stick are always mapped
// to the four directions.
type InputBinding struct {
	Keys []string `yaml:"keys"`
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding `yaml:"bindings"`
	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64 `yaml:"analog_deadzone"`
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		AnalogDeadzone: 0.25,
		Bindings: map[ActionID]InputBinding{
			ActionMoveLeft:     {Keys: []string{"ArrowLeft", "A"}},
			ActionMoveRight:    {Keys: []string{"ArrowRight", "D"}},
			ActionMoveUp:       {Keys: []string{"ArrowUp", "W"}},
			ActionMoveDown:     {Keys: []string{"ArrowDown", "S"}},
			ActionToggleHitbox: {Keys: []string{"Space"}},
			ActionToggleHUD:    {Keys: []string{"F1"}},
		},
	}
}
