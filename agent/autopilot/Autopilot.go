// Package autopilot implements a hand-tuned controller which flies a
// rocket through its target and lands it on the landing pad
package autopilot

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/rocketlander/environment"
	"github.com/samuelfneumann/rocketlander/environment/rocket"
	"github.com/samuelfneumann/rocketlander/timestep"
	"github.com/samuelfneumann/rocketlander/utils/floatutils"
	"gonum.org/v1/gonum/mat"
)

// layouter is an environment which can report the world the rocket
// flies in, needed to undo the normalization of observations
type layouter interface {
	Layout() rocket.Layout
}

// Autopilot is a cascaded proportional controller for the rocket
// environments. It works from the observation vector alone.
//
// Until the target is collected, the rocket flies towards the target.
// Afterwards it flies to the landing pad at a cruise altitude. Once it
// hovers slowly over the centre of the pad it descends as fast as it
// can still brake to the touchdown speed, and it cuts its engine once
// it rests on the pad. The
// horizontal position error sets a desired horizontal speed, whose
// error sets a desired tilt from vertical; the vertical position error
// sets a desired vertical speed, whose error sets the engine power.
//
// Autopilot does not learn, and its Learner methods do nothing. It
// works with both discrete and continuous action environments.
type Autopilot struct {
	Config
	width, height float64
	halfHeight    float64
	hasTarget     bool
	discrete      bool
	eval          bool
}

// New creates a new Autopilot for env
func New(env environment.Environment, c Config) (*Autopilot, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	layout := rocket.DefaultLayout()
	if l, ok := env.(layouter); ok {
		layout = l.Layout()
	}

	spec := env.ActionSpec()
	discrete := spec.Cardinality == environment.Discrete
	if !discrete && spec.Shape.Len() != rocket.ContinuousActionDims {
		return nil, fmt.Errorf("new: cannot control %v-dimensional "+
			"continuous actions", spec.Shape.Len())
	}

	return &Autopilot{
		Config:     c,
		width:      layout.Width,
		height:     layout.Height,
		halfHeight: layout.HalfHeight(),
		hasTarget:  layout.Target != nil,
		discrete:   discrete,
	}, nil
}

// SelectAction returns the action to take at t
func (a *Autopilot) SelectAction(t timestep.TimeStep) *mat.VecDense {
	throttle, rotate := a.commands(t.Observation)

	if !a.discrete {
		return mat.NewVecDense(2, []float64{float64(throttle),
			float64(rotate)})
	}

	action, err := rocket.DiscreteAction(throttle, rotate)
	if err != nil {
		// Commands are always in {-1, 0, 1}
		panic(fmt.Sprintf("selectAction: %v", err))
	}
	return mat.NewVecDense(1, []float64{float64(action)})
}

// commands returns the throttle and rotate commands for an observation
func (a *Autopilot) commands(obs mat.Vector) (throttle, rotate int) {
	x := obs.AtVec(rocket.ObsX) * a.width
	y := obs.AtVec(rocket.ObsY) * a.height
	vx := obs.AtVec(rocket.ObsVelocityX) * rocket.VelocityScale
	vy := obs.AtVec(rocket.ObsVelocityY) * rocket.VelocityScale
	orientation := obs.AtVec(rocket.ObsOrientation) * rocket.AngleScale
	angularVelocity := obs.AtVec(rocket.ObsAngularVelocity) *
		rocket.AngleScale
	power := obs.AtVec(rocket.ObsPower) * rocket.MaxPower

	padLeft := obs.AtVec(rocket.ObsLandingX) * a.width
	padLength := obs.AtVec(rocket.ObsLandingLength) * a.width
	padX := padLeft + padLength/2

	targetX := obs.AtVec(rocket.ObsTargetX) * a.width
	targetY := obs.AtVec(rocket.ObsTargetY) * a.height
	seekTarget := a.hasTarget && obs.AtVec(rocket.ObsTargetReached) < 0.5

	overPad := padLeft <= x && x <= padLeft+padLength
	centred := math.Abs(padX-x) <= a.PadWindow &&
		math.Abs(vx) <= a.PadWindowSpeed

	var aimX, desiredVY float64
	switch {
	case seekTarget:
		aimX = targetX
		desiredVY = floatutils.Clip(a.VerticalGain*(targetY-y),
			-a.MaxDescentSpeed, a.MaxClimbSpeed)

	case overPad && y <= a.halfHeight+1 && vy <= 0:
		// Resting on the pad
		return cutPower(power), 0

	case !centred:
		aimX = padX
		desiredVY = floatutils.Clip(a.VerticalGain*(a.CruiseAltitude-y),
			-a.MaxDescentSpeed, a.MaxClimbSpeed)

	default:
		// Descend no faster than the engine can brake to the touchdown
		// speed by the ground
		aimX = padX
		height := math.Max(y-a.halfHeight, 0)
		desiredVY = -floatutils.Clip(math.Sqrt(2*a.BrakingAccel*height),
			a.TouchdownSpeed, a.MaxDescentSpeed)
	}

	desiredPower := a.HoverPower + a.PowerGain*(desiredVY-vy)
	switch {
	case desiredPower > power+0.5:
		throttle = 1
	case desiredPower < power-0.5:
		throttle = -1
	}

	desiredVX := floatutils.Clip(a.PositionGain*(aimX-x),
		-a.MaxHorizontalSpeed, a.MaxHorizontalSpeed)
	tilt := floatutils.Clip(a.TiltGain*(desiredVX-vx), -a.MaxTilt, a.MaxTilt)
	desiredOrientation := rocket.InitialOrientation - tilt

	headingError := floatutils.Wrap(desiredOrientation-orientation+180, 0,
		360) - 180
	u := headingError - a.AngularDamping*angularVelocity
	switch {
	case u > a.Deadband:
		rotate = 1
	case u < -a.Deadband:
		rotate = -1
	}

	return throttle, rotate
}

// cutPower returns the throttle command which turns the engine off
func cutPower(power float64) int {
	if power > 0 {
		return -1
	}
	return 0
}

// ObserveFirst records the first timestep in an episode
func (a *Autopilot) ObserveFirst(timestep.TimeStep) error { return nil }

// Observe records that an action lead to some timestep
func (a *Autopilot) Observe(mat.Vector, timestep.TimeStep) error { return nil }

// Step performs a single update to the learner
func (a *Autopilot) Step() error { return nil }

// EndEpisode performs cleanup at the end of an episode
func (a *Autopilot) EndEpisode() {}

// Eval sets the agent to evaluation mode
func (a *Autopilot) Eval() { a.eval = true }

// Train sets the agent to training mode
func (a *Autopilot) Train() { a.eval = false }

// IsEval returns whether the agent is in evaluation mode
func (a *Autopilot) IsEval() bool { return a.eval }
