package rocket

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/rocketlander/environment"
	"github.com/samuelfneumann/rocketlander/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r2"
)

// Indices of the features in an observation vector
const (
	ObsX int = iota
	ObsY
	ObsVelocityX
	ObsVelocityY
	ObsOrientation
	ObsAngularVelocity
	ObsPower
	ObsTargetX
	ObsTargetY
	ObsTargetReached
	ObsDistanceToTarget
	ObsAngleDifference
	ObsLandingX
	ObsLandingLength
	ObsDistanceToLandingX
	ObsDistanceToLandingY

	ObservationDims
)

// Parameters configures the world, physics, and contact policy of a
// rocket environment
type Parameters struct {
	Layout   Layout
	Physics  Physics
	Resolver *ContactResolver
}

// DefaultParameters returns the default world and physics with the
// contact policy of the landing game: a landing needs the target to
// have been collected and the engine to be off.
func DefaultParameters() Parameters {
	resolver := NewContactResolver()
	resolver.RequireTargetForLanding = true
	resolver.RequireEngineOffForLanding = true

	return Parameters{
		Layout:   DefaultLayout(),
		Physics:  DefaultPhysics(),
		Resolver: resolver,
	}
}

// Summary summarizes the current episode of a rocket environment
type Summary struct {
	Outcome       Outcome
	Steps         int
	FuelConsumed  float64
	TargetReached bool
	LandingSpeed  float64 // Speed of the most recent touchdown
	X             float64 // Final position in meters
	Y             float64 // Final altitude in meters
}

// rocketTask is a Task which needs access to the environment to
// compute rewards, such as the last tick of the simulation. Rocket
// environments register themselves with such Tasks on construction.
type rocketTask interface {
	environment.Task
	registerEnv(*base)
}

// base implements the functionality shared by the Discrete and
// Continuous environments. Actions are decoded into a Control by the
// embedding environment.
//
// Any Task used with a rocket environment must have a Starter which
// returns 2-dimensional vectors holding the x and y position to start
// the rocket at. Starting positions must lie on the screen, with the
// rocket's centre at least half its height above the ground.
type base struct {
	environment.Task
	sim      *Simulation
	layout   Layout
	discount float64

	xBounds r1.Interval
	yBounds r1.Interval

	lastStep     timestep.TimeStep
	lastTick     Tick
	prevMetrics  Metrics
	landingSpeed float64
}

func newBase(task environment.Task, discount float64,
	p Parameters) (*base, timestep.TimeStep, error) {
	if err := p.Layout.Validate(); err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newBase: %w", err)
	}
	if err := p.Physics.Validate(); err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newBase: %w", err)
	}
	if p.Resolver == nil {
		p.Resolver = NewContactResolver()
	}

	layout := p.Layout
	body := NewBody(r2.Vec{X: layout.Width / 2, Y: layout.Height / 2},
		layout.RocketMass, p.Physics)
	sim, err := NewSimulation(body, p.Resolver, layout.Platforms,
		layout.Target, layout.HalfHeight())
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newBase: %w", err)
	}

	b := &base{
		Task:     task,
		sim:      sim,
		layout:   layout,
		discount: discount,
		xBounds:  r1.Interval{Min: 0, Max: layout.Width},
		yBounds:  r1.Interval{Min: layout.HalfHeight(), Max: layout.Height},
	}

	if t, ok := task.(rocketTask); ok {
		t.registerEnv(b)
	}

	step, err := b.Reset()
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newBase: %w", err)
	}
	return b, step, nil
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (b *base) Reset() (timestep.TimeStep, error) {
	start := b.Start()
	if err := validateStart(start, b.xBounds, b.yBounds); err != nil {
		return timestep.TimeStep{}, fmt.Errorf("reset: %w", err)
	}

	b.sim.ResetAt(r2.Vec{X: start.AtVec(0), Y: start.AtVec(1)})
	b.lastTick = Tick{
		Contact: b.sim.Contact(),
		Metrics: b.sim.Metrics(),
	}
	b.prevMetrics = b.sim.Metrics()
	b.landingSpeed = 0.0

	step := timestep.New(timestep.First, 0.0, b.discount, b.observation(), 0)
	b.lastStep = step

	return step, nil
}

// step advances the simulation by one tick using control, which was
// decoded from action
func (b *base) step(control Control, action *mat.VecDense) (timestep.TimeStep,
	bool, error) {
	if b.lastStep.Last() {
		return b.lastStep, true, fmt.Errorf("step: episode has ended, " +
			"the environment must be reset")
	}

	b.prevMetrics = b.sim.Metrics()
	b.lastTick = b.sim.Tick(control, b.layout.Dt())
	if b.lastTick.Contact.Outcome != Airborne {
		b.landingSpeed = b.lastTick.Contact.LandingSpeed
	}

	obs := b.observation()
	reward := b.GetReward(b.lastStep.Observation, action, obs)
	next := timestep.New(timestep.Mid, reward, b.discount, obs,
		b.lastStep.Number+1)
	b.End(&next)

	b.lastStep = next
	return next, next.Last(), nil
}

// observation returns the current state observation. All features are
// normalized by the screen dimensions or fixed scales.
func (b *base) observation() *mat.VecDense {
	state := b.sim.Body().State()
	metrics := b.sim.Metrics()
	landing := b.sim.LandingPad()
	w, h := b.layout.Width, b.layout.Height

	var targetX, targetY, targetReached float64
	if target := b.sim.Target(); target != nil {
		targetX, targetY = target.Center.X/w, target.Center.Y/h
	}
	if state.TargetReached {
		targetReached = 1.0
	}

	obs := make([]float64, ObservationDims)
	obs[ObsX] = state.Position.X / w
	obs[ObsY] = state.Position.Y / h
	obs[ObsVelocityX] = state.Velocity.X / VelocityScale
	obs[ObsVelocityY] = state.Velocity.Y / VelocityScale
	obs[ObsOrientation] = state.Orientation / AngleScale
	obs[ObsAngularVelocity] = state.AngularVelocity / AngleScale
	obs[ObsPower] = state.EnginePower / MaxPower
	obs[ObsTargetX] = targetX
	obs[ObsTargetY] = targetY
	obs[ObsTargetReached] = targetReached
	obs[ObsDistanceToTarget] = metrics.DistanceToTarget / math.Hypot(w, h)
	obs[ObsAngleDifference] = metrics.AngleDifference / 180.0
	obs[ObsLandingX] = landing.LeftX / w
	obs[ObsLandingLength] = landing.Length / w
	obs[ObsDistanceToLandingX] = metrics.DistanceToLandingX / w
	obs[ObsDistanceToLandingY] = metrics.DistanceToLandingY / h

	return mat.NewVecDense(ObservationDims, obs)
}

// ObservationSpec returns the observation specification of the
// environment
func (b *base) ObservationSpec() environment.Spec {
	inf := math.Inf(1)
	w, h := b.layout.Width, b.layout.Height
	landing := b.sim.LandingPad()

	var targetX, targetY float64
	if target := b.sim.Target(); target != nil {
		targetX, targetY = target.Center.X/w, target.Center.Y/h
	}

	lower := make([]float64, ObservationDims)
	upper := make([]float64, ObservationDims)
	for _, i := range []int{ObsX, ObsY, ObsVelocityX, ObsVelocityY,
		ObsOrientation, ObsAngularVelocity} {
		lower[i], upper[i] = -inf, inf
	}
	upper[ObsPower] = 1.0
	lower[ObsTargetX], upper[ObsTargetX] = targetX, targetX
	lower[ObsTargetY], upper[ObsTargetY] = targetY, targetY
	upper[ObsTargetReached] = 1.0
	upper[ObsDistanceToTarget] = inf
	upper[ObsAngleDifference] = 1.0
	lower[ObsLandingX], upper[ObsLandingX] = landing.LeftX/w, landing.LeftX/w
	lower[ObsLandingLength] = landing.Length / w
	upper[ObsLandingLength] = landing.Length / w
	upper[ObsDistanceToLandingX] = inf
	upper[ObsDistanceToLandingY] = inf

	return environment.NewSpec(
		mat.NewVecDense(ObservationDims, nil),
		environment.Observation,
		mat.NewVecDense(ObservationDims, lower),
		mat.NewVecDense(ObservationDims, upper),
		environment.Continuous,
	)
}

// DiscountSpec returns the discounting specification of the environment
func (b *base) DiscountSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{b.discount})
	upperBound := mat.NewVecDense(1, []float64{b.discount})

	return environment.NewSpec(shape, environment.Discount, lowerBound,
		upperBound, environment.Continuous)
}

// LastTimeStep returns the last TimeStep that occurred in the
// environment
func (b *base) LastTimeStep() timestep.TimeStep {
	return b.lastStep
}

// Simulation returns the underlying simulation
func (b *base) Simulation() *Simulation {
	return b.sim
}

// State returns the current state of the rocket
func (b *base) State() State {
	return b.sim.Body().State()
}

// Layout returns the world the rocket flies in
func (b *base) Layout() Layout {
	return b.layout
}

// Summary summarizes the current episode
func (b *base) Summary() Summary {
	state := b.sim.Body().State()
	physics := b.sim.Body().Physics()

	outcome := b.lastTick.Contact.Outcome
	switch {
	case state.Crashed:
		outcome = Crashed
	case state.Landed:
		outcome = Landed
	}

	return Summary{
		Outcome:       outcome,
		Steps:         b.lastStep.Number,
		FuelConsumed:  state.FuelConsumed,
		TargetReached: state.TargetReached,
		LandingSpeed:  b.landingSpeed,
		X:             physics.Meters(state.Position.X),
		Y:             physics.Meters(state.Position.Y),
	}
}

func (b *base) String() string {
	return b.sim.Body().State().String()
}

// validateStart ensures that a starting position lies on the screen
func validateStart(start mat.Vector, xBounds, yBounds r1.Interval) error {
	if start.Len() != 2 {
		return fmt.Errorf("starting positions should be 2-dimensional, "+
			"got %v dimensions", start.Len())
	}

	if start.AtVec(0) > xBounds.Max || start.AtVec(0) < xBounds.Min {
		return fmt.Errorf("x position out of bounds, expected x ϵ [%v, %v] "+
			"but got x = %v", xBounds.Min, xBounds.Max, start.AtVec(0))
	}

	if start.AtVec(1) > yBounds.Max || start.AtVec(1) < yBounds.Min {
		return fmt.Errorf("y position out of bounds, expected y ϵ [%v, %v] "+
			"but got y = %v", yBounds.Min, yBounds.Max, start.AtVec(1))
	}

	return nil
}
