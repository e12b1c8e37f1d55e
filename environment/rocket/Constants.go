// Package rocket implements a 2D rocket landing environment. A rocket
// with a single throttleable engine and a reaction-torque attitude
// control flies above flat ground, may collect a target, and must come
// to rest on a landing platform slowly enough not to crash.
//
// The physics core consists of a Body, which integrates thrust, gravity,
// and linear drag with semi-implicit Euler, and a ContactResolver,
// which classifies the integrated state against the ground and a set
// of Platforms. A Simulation bundles the two together with the
// platforms and target of a single episode. The Discrete and Continuous
// environments wrap a Simulation in the environment.Environment
// interface.
//
// All lengths are in pixels and all times in seconds. Angles are in
// degrees, with 90° pointing straight up and angles increasing
// counter-clockwise.
package rocket

const (
	// Physical constants
	Gravity               float64 = 500.0   // pixels/s²
	MaxThrust             float64 = 30000.0 // force at 100% power
	RotationTorque        float64 = 3000.0  // torque per rotate command
	DragCoefficient       float64 = 7.0     // linear drag gain
	InertiaMultiplier     float64 = 50.0    // moment of inertia = mass * this
	PowerIncrement        float64 = 1.0     // power change per command (%)
	LandingSpeedThreshold float64 = 50.0    // max safe touchdown speed
	PixelsPerMeter        float64 = 100.0

	MinPower float64 = 0.0
	MaxPower float64 = 100.0

	// InitialOrientation points the rocket straight up
	InitialOrientation float64 = 90.0

	// Screen and simulation
	ScreenWidth  float64 = 1600.0
	ScreenHeight float64 = 900.0
	FPS          float64 = 60.0
	Dt           float64 = 1.0 / FPS

	// Rocket geometry and mass
	RocketWidth  float64 = 20.0
	RocketHeight float64 = 40.0
	RocketMass   float64 = 50.0

	// Platforms
	PlatformLength    float64 = 200.0
	PlatformMargin    float64 = 100.0
	LaunchPlatformX   float64 = PlatformMargin
	LandingPlatformX  float64 = ScreenWidth - PlatformLength - PlatformMargin
	PlatformElevation float64 = 0.0

	// Target, a circle at (5m, 5m)
	TargetX        float64 = 5 * PixelsPerMeter
	TargetY        float64 = 5 * PixelsPerMeter
	TargetDiameter float64 = 30.0

	// Default starting values: centred on the launch platform, resting
	// on the ground
	InitialX float64 = LaunchPlatformX + PlatformLength/2
	InitialY float64 = RocketHeight / 2

	// Discrete actions
	MinDiscreteAction int = 0
	MaxDiscreteAction int = 8

	// Continuous actions
	MinContinuousAction  float64 = -1.0
	MaxContinuousAction  float64 = 1.0
	ContinuousActionDims int     = 2

	// Observation normalization
	VelocityScale float64 = 1000.0
	AngleScale    float64 = 360.0
)
