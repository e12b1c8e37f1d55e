package autopilot

import (
	"fmt"

	"github.com/samuelfneumann/rocketlander/agent"
	"github.com/samuelfneumann/rocketlander/environment"
	"github.com/samuelfneumann/rocketlander/environment/rocket"
)

func init() {
	// Register the Config type so that it can be typed using
	// agent.TypedConfig to help with serialization/deserialization.
	agent.Register(agent.Autopilot, DefaultConfig())
}

// Config represents a configuration for the Autopilot agent. Speeds are
// in pixels per second and angles in degrees.
type Config struct {
	// HoverPower is the engine power at which thrust balances gravity
	HoverPower float64

	// PowerGain is the engine power added per px/s of vertical speed
	// error
	PowerGain float64

	// VerticalGain is the desired vertical speed per pixel of altitude
	// error
	VerticalGain float64

	MaxClimbSpeed   float64
	MaxDescentSpeed float64

	// TouchdownSpeed is the descent speed held during the final
	// approach to the landing pad
	TouchdownSpeed float64

	// BrakingAccel is the deceleration, in px/s², planned for when
	// descending onto the landing pad. It must be well below the net
	// upward acceleration at full power.
	BrakingAccel float64

	// PadWindow and PadWindowSpeed bound the horizontal distance from
	// the centre of the landing pad and the horizontal speed within
	// which the rocket descends onto the pad
	PadWindow      float64
	PadWindowSpeed float64

	// CruiseAltitude is the altitude held while flying to the landing
	// pad
	CruiseAltitude float64

	// PositionGain is the desired horizontal speed per pixel of
	// horizontal error
	PositionGain       float64
	MaxHorizontalSpeed float64

	// TiltGain is the tilt from vertical per px/s of horizontal speed
	// error
	TiltGain float64
	MaxTilt  float64

	// AngularDamping is the number of seconds of angular velocity
	// subtracted from the heading error
	AngularDamping float64

	// Deadband is the heading error within which the rocket is not
	// rotated
	Deadband float64
}

// DefaultConfig returns a Config tuned to the default rocket physics
func DefaultConfig() Config {
	return Config{
		HoverPower:         rocket.RocketMass * rocket.Gravity / rocket.MaxThrust * rocket.MaxPower,
		PowerGain:          0.5,
		VerticalGain:       1.5,
		MaxClimbSpeed:      150.0,
		MaxDescentSpeed:    150.0,
		TouchdownSpeed:     20.0,
		BrakingAccel:       40.0,
		PadWindow:          30.0,
		PadWindowSpeed:     20.0,
		CruiseAltitude:     150.0,
		PositionGain:       1.0,
		MaxHorizontalSpeed: 150.0,
		TiltGain:           0.2,
		MaxTilt:            20.0,
		AngularDamping:     0.5,
		Deadband:           1.0,
	}
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(env environment.Environment,
	_ uint64) (agent.Agent, error) {
	return New(env, c)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*Autopilot)
	return ok
}

// Validate checks a Config to ensure it is a valid configuration
func (c Config) Validate() error {
	if c.HoverPower <= 0 || c.HoverPower > rocket.MaxPower {
		return fmt.Errorf("validate: hover power must be in (0, %v], got %v",
			rocket.MaxPower, c.HoverPower)
	}
	if c.TouchdownSpeed <= 0 || c.TouchdownSpeed > rocket.LandingSpeedThreshold {
		return fmt.Errorf("validate: touchdown speed must be in (0, %v], "+
			"got %v", rocket.LandingSpeedThreshold, c.TouchdownSpeed)
	}
	if c.MaxClimbSpeed <= 0 || c.MaxDescentSpeed <= 0 ||
		c.MaxHorizontalSpeed <= 0 {
		return fmt.Errorf("validate: speed limits must be positive")
	}
	if c.BrakingAccel <= 0 {
		return fmt.Errorf("validate: braking acceleration must be "+
			"positive, got %v", c.BrakingAccel)
	}
	if c.PadWindow <= 0 || c.PadWindowSpeed <= 0 {
		return fmt.Errorf("validate: pad window must be positive, got "+
			"%v, %v", c.PadWindow, c.PadWindowSpeed)
	}
	if c.MaxTilt <= 0 || c.MaxTilt >= 90 {
		return fmt.Errorf("validate: max tilt must be in (0, 90), got %v",
			c.MaxTilt)
	}
	if c.Deadband < 0 || c.AngularDamping < 0 {
		return fmt.Errorf("validate: deadband and angular damping must be "+
			"non-negative, got %v, %v", c.Deadband, c.AngularDamping)
	}
	return nil
}

// Type returns the type of agent which the Config creates
func (c Config) Type() agent.Type {
	return agent.Autopilot
}
