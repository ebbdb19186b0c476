package config

import (
	"errors"
	"fmt"
	"time"
)

// Hitbox holds the player's edge offsets relative to its position. The
// position sits at the bottom left of the figure; y grows downward.
type Hitbox struct {
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	// ArmLine is the top of the climb sample box, above the feet and below
	// the head.
	ArmLine int `yaml:"arm_line"`
}

// EdgeInsets are how far past each frame edge the player may travel before
// an edge warp fires. The same values place the player after the warp.
type EdgeInsets struct {
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
}

// TimerConfig holds the tick interval of each scheduler timer.
type TimerConfig struct {
	Move     time.Duration `yaml:"move"`
	Jump     time.Duration `yaml:"jump"`
	SlowFall time.Duration `yaml:"slow_fall"`
	FastFall time.Duration `yaml:"fast_fall"`
}

// GravityConfig drives the two fall regimes. A rate of r covers
// int(r/divider) pixels per tick.
type GravityConfig struct {
	Accelerate       bool    `yaml:"accelerate"`
	SlowInitial      float64 `yaml:"slow_initial"`
	SlowDivider      float64 `yaml:"slow_divider"`
	SlowAcceleration float64 `yaml:"slow_acceleration"`
	FastInitial      float64 `yaml:"fast_initial"`
	FastDivider      float64 `yaml:"fast_divider"`
	FastAcceleration float64 `yaml:"fast_acceleration"`
	// TerminalVelocity bounds both rates, in pixels per tick.
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	// FastThreshold is the slow-fall speed, in pixels per tick, at which the
	// fast-fall timer takes over.
	FastThreshold float64 `yaml:"fast_threshold"`
}

// PhysicsConfig contains every tunable of the movement simulation.
type PhysicsConfig struct {
	Hitbox     Hitbox        `yaml:"hitbox"`
	EdgeInsets EdgeInsets    `yaml:"edge_insets"`
	Timers     TimerConfig   `yaml:"timers"`
	Gravity    GravityConfig `yaml:"gravity"`

	SubStep  int `yaml:"sub_step"`  // pixels per movement sub-step
	SubSteps int `yaml:"sub_steps"` // sub-steps per move
	JumpRise int `yaml:"jump_rise"` // pixels gained per jump phase

	EdgeWarpResetsFallSpeed  bool `yaml:"edge_warp_resets_fall_speed"`
	InMapWarpResetsFallSpeed bool `yaml:"in_map_warp_resets_fall_speed"`

	// MaxWarpChain bounds warps that land on further warps.
	MaxWarpChain int `yaml:"max_warp_chain"`
}

// Physics is the global physics configuration
var Physics PhysicsConfig

func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		Hitbox: Hitbox{
			Left:    1,
			Right:   8,
			Top:     -22,
			Bottom:  -1,
			ArmLine: -11,
		},
		EdgeInsets: EdgeInsets{
			Left:   15,
			Right:  5,
			Top:    2,
			Bottom: 22,
		},
		Timers: TimerConfig{
			Move:     100 * time.Millisecond,
			Jump:     120 * time.Millisecond,
			SlowFall: 120 * time.Millisecond,
			FastFall: 30 * time.Millisecond,
		},
		Gravity: GravityConfig{
			Accelerate:       true,
			SlowInitial:      4,
			SlowDivider:      2,
			SlowAcceleration: 0.2,
			FastInitial:      9,
			FastDivider:      6,
			FastAcceleration: 0.2,
			TerminalVelocity: 15,
			FastThreshold:    3,
		},
		SubStep:      1,
		SubSteps:     3,
		JumpRise:     3,
		MaxWarpChain: 8,
	}
}

// Validate rejects values the simulation cannot run with.
func (p PhysicsConfig) Validate() error {
	var errs []error
	if p.Hitbox.Left >= p.Hitbox.Right {
		errs = append(errs, fmt.Errorf("hitbox: left %d must be left of right %d", p.Hitbox.Left, p.Hitbox.Right))
	}
	if p.Hitbox.Top >= p.Hitbox.Bottom {
		errs = append(errs, fmt.Errorf("hitbox: top %d must be above bottom %d", p.Hitbox.Top, p.Hitbox.Bottom))
	}
	if p.Hitbox.ArmLine > p.Hitbox.Bottom || p.Hitbox.ArmLine < p.Hitbox.Top {
		errs = append(errs, fmt.Errorf("hitbox: arm line %d outside the hitbox", p.Hitbox.ArmLine))
	}
	intervals := []struct {
		name string
		d    time.Duration
	}{
		{"move", p.Timers.Move},
		{"jump", p.Timers.Jump},
		{"slow fall", p.Timers.SlowFall},
		{"fast fall", p.Timers.FastFall},
	}
	for _, iv := range intervals {
		if iv.d <= 0 {
			errs = append(errs, fmt.Errorf("timers: %s interval must be positive, got %v", iv.name, iv.d))
		}
	}
	if p.Gravity.SlowDivider <= 0 || p.Gravity.FastDivider <= 0 {
		errs = append(errs, errors.New("gravity: dividers must be positive"))
	}
	if p.SubStep <= 0 || p.SubSteps <= 0 || p.JumpRise < 0 {
		errs = append(errs, errors.New("sub_step and sub_steps must be positive and jump_rise not negative"))
	}
	if p.MaxWarpChain <= 0 {
		errs = append(errs, errors.New("max_warp_chain must be positive"))
	}
	return errors.Join(errs...)
}

func init() {
	Physics = DefaultPhysics()
}
