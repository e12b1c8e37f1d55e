package rocket

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/rocketlander/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r2"
)

// Physics holds the physical constants of a run. Physics values are
// fixed for the lifetime of a Body.
type Physics struct {
	Gravity           float64 `json:"gravity" mapstructure:"gravity"`
	MaxThrust         float64 `json:"maxThrust" mapstructure:"maxThrust"`
	RotationTorque    float64 `json:"rotationTorque" mapstructure:"rotationTorque"`
	DragCoefficient   float64 `json:"dragCoefficient" mapstructure:"dragCoefficient"`
	InertiaMultiplier float64 `json:"inertiaMultiplier" mapstructure:"inertiaMultiplier"`
	PowerIncrement    float64 `json:"powerIncrement" mapstructure:"powerIncrement"`
	PixelsPerMeter    float64 `json:"pixelsPerMeter" mapstructure:"pixelsPerMeter"`
}

// DefaultPhysics returns the default physical constants
func DefaultPhysics() Physics {
	return Physics{
		Gravity:           Gravity,
		MaxThrust:         MaxThrust,
		RotationTorque:    RotationTorque,
		DragCoefficient:   DragCoefficient,
		InertiaMultiplier: InertiaMultiplier,
		PowerIncrement:    PowerIncrement,
		PixelsPerMeter:    PixelsPerMeter,
	}
}

// Validate returns an error if the physical constants cannot describe
// a simulation
func (p Physics) Validate() error {
	if p.InertiaMultiplier <= 0 {
		return fmt.Errorf("validate: inertia multiplier must be positive, "+
			"got %v", p.InertiaMultiplier)
	}
	if p.PixelsPerMeter <= 0 {
		return fmt.Errorf("validate: pixels per meter must be positive, "+
			"got %v", p.PixelsPerMeter)
	}
	if p.MaxThrust < 0 || p.DragCoefficient < 0 || p.Gravity < 0 {
		return fmt.Errorf("validate: thrust, drag, and gravity must be "+
			"non-negative, got thrust=%v drag=%v gravity=%v", p.MaxThrust,
			p.DragCoefficient, p.Gravity)
	}
	return nil
}

// Meters converts a length in pixels to meters
func (p Physics) Meters(pixels float64) float64 {
	return pixels / p.PixelsPerMeter
}

// State is the kinematic and motor state of a rocket
type State struct {
	Position        r2.Vec  // Centre of mass
	Velocity        r2.Vec  // Linear velocity
	Orientation     float64 // Heading in degrees, unwrapped
	AngularVelocity float64 // Degrees per second
	EnginePower     float64 // Throttle in [0, 100]
	FuelConsumed    float64 // Integral of EnginePower/100 over time
	Mass            float64
	MomentOfInertia float64

	Landed        bool
	Crashed       bool
	TargetReached bool
}

// Speed returns the magnitude of the linear velocity
func (s State) Speed() float64 {
	return r2.Norm(s.Velocity)
}

func (s State) String() string {
	msg := "Rocket  |  Position: (%.2f, %.2f)  |  Velocity: (%.2f, %.2f)" +
		"  |  Orientation: %.2f  |  Power: %v  |  Landed: %v  |  Crashed: %v"

	return fmt.Sprintf(msg, s.Position.X, s.Position.Y, s.Velocity.X,
		s.Velocity.Y, s.Orientation, s.EnginePower, s.Landed, s.Crashed)
}

// Forces is the breakdown of the forces acting on a Body
type Forces struct {
	Thrust  r2.Vec
	Drag    r2.Vec
	Gravity r2.Vec
	Net     r2.Vec
}

// Body is a rigid body rocket. A Body owns its State, which can only
// be changed through the Body's methods and by a ContactResolver.
//
// Once a Body is frozen (after a crash, or after a landing when the
// resolver freezes landed bodies) SetPower, ApplyTorque, and Integrate
// have no effect until the Body is Reset.
type Body struct {
	physics Physics
	state   State
	initial State
	frozen  bool
}

// NewBody returns a new Body at rest at position, pointing straight
// up with its engine off. The starting state is recorded so that Reset
// replays it exactly.
func NewBody(position r2.Vec, mass float64, physics Physics) *Body {
	initial := State{
		Position:        position,
		Orientation:     InitialOrientation,
		Mass:            mass,
		MomentOfInertia: mass * physics.InertiaMultiplier,
	}

	return &Body{
		physics: physics,
		state:   initial,
		initial: initial,
	}
}

// State returns a copy of the current state of the Body
func (b *Body) State() State {
	return b.state
}

// Initial returns the state that Reset restores
func (b *Body) Initial() State {
	return b.initial
}

// Physics returns the physical constants of the Body
func (b *Body) Physics() Physics {
	return b.physics
}

// Frozen returns whether the Body ignores control input
func (b *Body) Frozen() bool {
	return b.frozen
}

// SetPower adds delta to the engine power, clamped to [0, 100]. A NaN
// delta is ignored.
func (b *Body) SetPower(delta float64) {
	if b.frozen || math.IsNaN(delta) {
		return
	}
	b.state.EnginePower = floatutils.Clip(b.state.EnginePower+delta,
		MinPower, MaxPower)
}

// ApplyTorque accelerates the rotation of the Body for dt seconds.
// Positive torque rotates counter-clockwise.
func (b *Body) ApplyTorque(torque, dt float64) {
	if b.frozen || math.IsNaN(torque) {
		return
	}
	angularAccel := degrees(torque / b.state.MomentOfInertia)
	b.state.AngularVelocity += angularAccel * dt
}

// Forces returns the forces that the next call to Integrate will
// apply, given the current power, orientation, and velocity
func (b *Body) Forces() Forces {
	thrust := (b.state.EnginePower / MaxPower) * b.physics.MaxThrust
	heading := radians(b.state.Orientation)

	f := Forces{
		Thrust: r2.Vec{
			X: thrust * math.Cos(heading),
			Y: thrust * math.Sin(heading),
		},
		Drag:    r2.Scale(-b.physics.DragCoefficient, b.state.Velocity),
		Gravity: r2.Vec{X: 0, Y: -b.state.Mass * b.physics.Gravity},
	}
	f.Net = r2.Vec{
		X: f.Thrust.X + f.Drag.X,
		Y: f.Thrust.Y + f.Drag.Y + f.Gravity.Y,
	}
	return f
}

// Integrate advances the Body by dt seconds using semi-implicit Euler:
// velocity is updated first, position is then updated with the new
// velocity, and orientation is updated with the current angular
// velocity. Fuel consumption accumulates with the current power.
func (b *Body) Integrate(dt float64) {
	if b.frozen {
		return
	}

	net := b.Forces().Net
	accel := r2.Scale(1/b.state.Mass, net)

	b.state.Velocity = r2.Add(b.state.Velocity, r2.Scale(dt, accel))
	b.state.Position = r2.Add(b.state.Position, r2.Scale(dt, b.state.Velocity))
	b.state.Orientation += b.state.AngularVelocity * dt

	b.state.FuelConsumed += (b.state.EnginePower / MaxPower) * dt
}

// SetTargetReached records that the Body has collected its target
func (b *Body) SetTargetReached() {
	b.state.TargetReached = true
}

// Reset restores the Body to its initial state
func (b *Body) Reset() {
	b.state = b.initial
	b.frozen = false
}

// stop zeroes the linear and angular velocity
func (b *Body) stop() {
	b.state.Velocity = r2.Vec{}
	b.state.AngularVelocity = 0.0
}

// settle snaps the Body onto a surface at height y. An unpowered Body
// comes to a full stop; a powered Body keeps its horizontal velocity.
func (b *Body) settle(y float64) {
	b.state.Position.Y = y
	if b.state.EnginePower == 0 {
		b.stop()
		return
	}
	b.state.Velocity.Y = 0.0
	b.state.AngularVelocity = 0.0
}

func (b *Body) crash(stop bool) {
	if stop {
		b.stop()
	}
	b.state.Crashed = true
	b.frozen = true
}

func (b *Body) land(freeze bool) {
	b.state.Landed = true
	b.frozen = freeze
}

func degrees(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

func radians(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
