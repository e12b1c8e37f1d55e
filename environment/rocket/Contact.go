package rocket

import (
	"fmt"
	"math"
)

// Outcome classifies what a simulation step did to the rocket with
// respect to the ground
type Outcome int

const (
	// Airborne means the rocket is not touching the ground
	Airborne Outcome = iota

	// Resting means the rocket touched down safely on a platform but
	// did not land; it remains controllable
	Resting

	// Landed means the rocket touched down safely on the landing pad
	Landed

	// Crashed means the rocket touched the ground too fast or away
	// from every platform
	Crashed
)

func (o Outcome) String() string {
	switch o {
	case Airborne:
		return "Airborne"
	case Resting:
		return "Resting"
	case Landed:
		return "Landed"
	case Crashed:
		return "Crashed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Terminal returns whether the Outcome ends an episode
func (o Outcome) Terminal() bool {
	return o == Landed || o == Crashed
}

// Contact describes the result of resolving ground contact
type Contact struct {
	Outcome

	// LandingSpeed is the speed at touchdown, or 0 if the rocket was
	// not touching down
	LandingSpeed float64

	// Platform is the index of the platform supporting the rocket, or
	// -1 if the rocket is not supported by any platform
	Platform int
}

// ContactResolver classifies a Body's state against the ground and a
// set of platforms after each integration step. The zero value is not
// useful; use NewContactResolver for the documented defaults.
type ContactResolver struct {
	// LandingSpeedThreshold is the maximum safe touchdown speed. A
	// touchdown at exactly this speed is safe.
	LandingSpeedThreshold float64 `json:"landingSpeedThreshold" mapstructure:"landingSpeedThreshold"`

	// ZeroVelocityOnCrash stops the rocket when it crashes
	ZeroVelocityOnCrash bool `json:"zeroVelocityOnCrash" mapstructure:"zeroVelocityOnCrash"`

	// RequireTargetForLanding only counts a touchdown on the landing
	// pad as a landing once the target has been collected
	RequireTargetForLanding bool `json:"requireTargetForLanding" mapstructure:"requireTargetForLanding"`

	// RequireEngineOffForLanding only counts a touchdown on the landing
	// pad as a landing when the engine power is zero
	RequireEngineOffForLanding bool `json:"requireEngineOffForLanding" mapstructure:"requireEngineOffForLanding"`

	// FreezeOnLanded stops a landed Body from accepting control input
	FreezeOnLanded bool `json:"freezeOnLanded" mapstructure:"freezeOnLanded"`
}

// NewContactResolver returns a ContactResolver with the default
// policy: a 50 px/s landing speed threshold, velocities zeroed on
// crashes, landed bodies frozen, and no target or engine requirement
// for landing.
func NewContactResolver() *ContactResolver {
	return &ContactResolver{
		LandingSpeedThreshold:      LandingSpeedThreshold,
		ZeroVelocityOnCrash:        true,
		RequireTargetForLanding:    false,
		RequireEngineOffForLanding: false,
		FreezeOnLanded:             true,
	}
}

// Resolve classifies the ground contact of body and updates its
// terminal flags. See ResolveContact.
func (c *ContactResolver) Resolve(body *Body, platforms []Platform,
	halfHeight float64) Outcome {
	return c.ResolveContact(body, platforms, halfHeight).Outcome
}

// ResolveContact classifies the ground contact of body against the
// ordered platforms. The rocket touches down when its centre is at or
// below halfHeight while it is not moving upward. A touchdown faster
// than the landing speed threshold, or away from every platform, is a
// crash. A safe touchdown snaps the rocket onto the ground; the
// rocket lands if it is over the landing pad and the landing
// requirements hold, otherwise it rests.
//
// At most one of the Body's Landed and Crashed flags is set per call,
// and a Body that is already landed or crashed keeps its outcome. A
// landed Body that is not frozen is still held on the ground.
func (c *ContactResolver) ResolveContact(body *Body, platforms []Platform,
	halfHeight float64) Contact {
	state := body.State()
	switch {
	case state.Crashed:
		return Contact{Outcome: Crashed, Platform: -1}
	case state.Landed:
		if !body.Frozen() && state.Position.Y <= halfHeight &&
			state.Velocity.Y <= 0 {
			body.settle(halfHeight)
		}
		return Contact{Outcome: Landed, Platform: supporting(platforms,
			state.Position.X)}
	}

	if state.Position.Y > halfHeight || state.Velocity.Y > 0 {
		return Contact{Outcome: Airborne, Platform: -1}
	}

	speed := math.Sqrt(state.Velocity.X*state.Velocity.X +
		state.Velocity.Y*state.Velocity.Y)
	if speed > c.LandingSpeedThreshold {
		body.crash(c.ZeroVelocityOnCrash)
		return Contact{Outcome: Crashed, LandingSpeed: speed, Platform: -1}
	}

	index := supporting(platforms, state.Position.X)
	if index < 0 {
		body.crash(c.ZeroVelocityOnCrash)
		return Contact{Outcome: Crashed, LandingSpeed: speed, Platform: -1}
	}

	body.settle(halfHeight)

	contact := Contact{Outcome: Resting, LandingSpeed: speed, Platform: index}
	if platforms[index].LandingPad && c.canLand(state) {
		body.land(c.FreezeOnLanded)
		contact.Outcome = Landed
	}
	return contact
}

func (c *ContactResolver) canLand(state State) bool {
	if c.RequireTargetForLanding && !state.TargetReached {
		return false
	}
	if c.RequireEngineOffForLanding && state.EnginePower != 0 {
		return false
	}
	return true
}

// supporting returns the index of the platform under x, preferring
// the first landing pad over other platforms. If no platform is under
// x, -1 is returned.
func supporting(platforms []Platform, x float64) int {
	index := -1
	for i, platform := range platforms {
		if !platform.Contains(x) {
			continue
		}
		if platform.LandingPad {
			return i
		}
		if index < 0 {
			index = i
		}
	}
	return index
}
