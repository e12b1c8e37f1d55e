package rocket

import (
	"fmt"

	"github.com/samuelfneumann/rocketlander/environment"
	"github.com/samuelfneumann/rocketlander/timestep"
	"gonum.org/v1/gonum/mat"
)

// command is a pair of throttle and rotation commands, each in
// {-1, 0, 1}
type command struct {
	throttle float64
	rotate   float64
}

// discreteCommands maps discrete actions to commands. Positive rotation
// is counter-clockwise.
var discreteCommands = [MaxDiscreteAction + 1]command{
	{0, 0},   // No operation
	{1, 0},   // Increase power
	{-1, 0},  // Decrease power
	{0, 1},   // Rotate counter-clockwise
	{0, -1},  // Rotate clockwise
	{1, 1},   // Increase power and rotate counter-clockwise
	{1, -1},  // Increase power and rotate clockwise
	{-1, 1},  // Decrease power and rotate counter-clockwise
	{-1, -1}, // Decrease power and rotate clockwise
}

// Discrete implements the rocket landing environment with discrete
// actions. Each step the agent may change the engine power by one
// increment and may rotate the rocket in either direction:
//
//	Action		Meaning
//	  0			Do nothing
//	  1			Increase power
//	  2			Decrease power
//	  3			Rotate counter-clockwise
//	  4			Rotate clockwise
//	  5			Increase power, rotate counter-clockwise
//	  6			Increase power, rotate clockwise
//	  7			Decrease power, rotate counter-clockwise
//	  8			Decrease power, rotate clockwise
//
// Illegal actions cause Step to return an error.
//
// Discrete implements the environment.Environment interface
type Discrete struct {
	*base
}

// NewDiscrete constructs a new rocket environment with discrete actions
func NewDiscrete(task environment.Task, discount float64,
	p Parameters) (*Discrete, timestep.TimeStep, error) {
	base, firstStep, err := newBase(task, discount, p)
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newDiscrete: %w", err)
	}

	return &Discrete{base}, firstStep, nil
}

// ActionSpec returns the action specification of the environment
func (d *Discrete) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(1, []float64{float64(MaxDiscreteAction)})

	return environment.NewSpec(shape, environment.Action, lowerBound,
		upperBound, environment.Discrete)
}

// Step takes one environmental step given action a and returns the next
// timestep and whether the episode has ended
func (d *Discrete) Step(a *mat.VecDense) (timestep.TimeStep, bool, error) {
	if a.Len() != 1 {
		return timestep.TimeStep{}, false, fmt.Errorf("step: actions "+
			"should be 1-dimensional, got %v dimensions", a.Len())
	}

	action := int(a.AtVec(0))
	if float64(action) != a.AtVec(0) || action < MinDiscreteAction ||
		action > MaxDiscreteAction {
		return timestep.TimeStep{}, false, fmt.Errorf("step: illegal "+
			"action %v ∉ [%v, %v]", a.AtVec(0), MinDiscreteAction,
			MaxDiscreteAction)
	}

	physics := d.sim.Body().Physics()
	cmd := discreteCommands[action]
	control := Control{
		PowerDelta: cmd.throttle * physics.PowerIncrement,
		Torque:     cmd.rotate * physics.RotationTorque,
	}

	return d.step(control, a)
}

// DiscreteAction returns the discrete action which issues the throttle
// and rotate commands. Both commands must be in {-1, 0, 1}, with a
// positive rotate command rotating counter-clockwise.
func DiscreteAction(throttle, rotate int) (int, error) {
	for a, cmd := range discreteCommands {
		if cmd.throttle == float64(throttle) && cmd.rotate == float64(rotate) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("discreteAction: no action for throttle %v and "+
		"rotate %v", throttle, rotate)
}
