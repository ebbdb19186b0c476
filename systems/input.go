package systems

import (
	"log"

	"github.com/adamcogen/littleman/components"
	cfg "github.com/adamcogen/littleman/config"
	"github.com/adamcogen/littleman/core"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// keysByName maps ebiten key names ("ArrowLeft", "A", "F1") to keys.
var keysByName map[string]ebiten.Key

// warnedKeys remembers unknown binding names so each is logged once.
var warnedKeys = map[string]bool{}

// Standard gamepad buttons for each action. The d-pad always moves.
var gamepadBindings = map[cfg.ActionID][]ebiten.StandardGamepadButton{
	cfg.ActionMoveLeft:     {ebiten.StandardGamepadButtonLeftLeft},
	cfg.ActionMoveRight:    {ebiten.StandardGamepadButtonLeftRight},
	cfg.ActionMoveUp:       {ebiten.StandardGamepadButtonLeftTop, ebiten.StandardGamepadButtonRightBottom},
	cfg.ActionMoveDown:     {ebiten.StandardGamepadButtonLeftBottom},
	cfg.ActionToggleHitbox: {ebiten.StandardGamepadButtonRightLeft},
	cfg.ActionToggleHUD:    {ebiten.StandardGamepadButtonCenterLeft},
}

// Direction actions in the order their events reach the simulation.
var directionActions = []struct {
	action cfg.ActionID
	dir    core.Direction
}{
	{cfg.ActionMoveLeft, core.Left},
	{cfg.ActionMoveRight, core.Right},
	{cfg.ActionMoveUp, core.Up},
	{cfg.ActionMoveDown, core.Down},
}

func keyByName(name string) (ebiten.Key, bool) {
	if keysByName == nil {
		keysByName = make(map[string]ebiten.Key)
		for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
			keysByName[k.String()] = k
		}
	}
	k, ok := keysByName[name]
	if !ok && !warnedKeys[name] {
		warnedKeys[name] = true
		log.Printf("Warning: unknown key name %q in input bindings", name)
	}
	return k, ok
}

// UpdateInput polls raw input and updates the InputComponent.
// Must run BEFORE UpdateControls in the system order.
func UpdateInput(ecs *ecs.ECS) {
	entry, _, ok := getSimulation(ecs)
	if !ok {
		return
	}
	input := components.Input.Get(entry)

	// Swap buffers: current becomes previous, then zero out current
	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	var keyboardUsed, gamepadUsed bool
	for actionID, binding := range cfg.Input.Bindings {
		for _, name := range binding.Keys {
			if key, ok := keyByName(name); ok && ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
				keyboardUsed = true
			}
		}
	}

	for _, gpID := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		for actionID, buttons := range gamepadBindings {
			for _, btn := range buttons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
					gamepadUsed = true
				}
			}
		}
	}

	// Merge analog stick into directional actions
	left, right, up, down := getAnalogStickState(gamepadIDs)
	for _, a := range []struct {
		on     bool
		action cfg.ActionID
	}{
		{left, cfg.ActionMoveLeft},
		{right, cfg.ActionMoveRight},
		{up, cfg.ActionMoveUp},
		{down, cfg.ActionMoveDown},
	} {
		if a.on {
			input.Current[a.action] = true
			gamepadUsed = true
		}
	}

	if gamepadUsed {
		input.LastInputMethod = components.InputGamepad
	} else if keyboardUsed {
		input.LastInputMethod = components.InputKeyboard
	}
}

// getAnalogStickState reads the left analog stick from all gamepads
func getAnalogStickState(gamepads []ebiten.GamepadID) (left, right, up, down bool) {
	deadzone := cfg.Input.AnalogDeadzone

	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		vertical := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)

		left = left || horizontal < -deadzone
		right = right || horizontal > deadzone
		up = up || vertical < -deadzone
		down = down || vertical > deadzone
	}
	return
}

// GetAction returns the full ActionState for an action ID.
// JustPressed/JustReleased are derived from current vs previous frame.
func GetAction(input *components.InputData, id cfg.ActionID) components.ActionState {
	curr := input.Current[id]
	prev := input.Previous[id]
	return components.ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}

// UpdateControls turns action state into simulation key events. Releases go
// first so a direction pressed in the same frame its opposite was released
// is not ignored. Held directions send a press every frame; the simulation
// treats repeats as no-ops and picks up a press it ignored earlier once the
// opposite key is up.
func UpdateControls(ecs *ecs.ECS) {
	entry, sim, ok := getSimulation(ecs)
	if !ok {
		return
	}
	input := components.Input.Get(entry)

	if sim.Halted {
		if GetAction(input, cfg.ActionToggleHitbox).JustPressed {
			respawn(sim)
		}
		return
	}

	for _, da := range directionActions {
		if GetAction(input, da.action).JustReleased {
			handleKey(sim, core.KeyEvent{Direction: da.dir, Transition: core.Released})
		}
	}
	for _, da := range directionActions {
		if GetAction(input, da.action).Pressed {
			handleKey(sim, core.KeyEvent{Direction: da.dir, Transition: core.Pressed})
		}
	}

	if GetAction(input, cfg.ActionToggleHitbox).JustPressed {
		sim.World.Act()
	}
	if GetAction(input, cfg.ActionToggleHUD).JustPressed {
		settings := components.Settings.Get(entry)
		settings.ShowHUD = !settings.ShowHUD
		SaveCurrentSettings(settings, sim.Snapshot.MapID)
	}
}

func handleKey(sim *components.SimulationData, ev core.KeyEvent) {
	if sim.Halted {
		return
	}
	if err := sim.World.Handle(ev); err != nil {
		halt(sim, err)
	}
}
