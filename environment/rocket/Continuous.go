package rocket

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/rocketlander/environment"
	"github.com/samuelfneumann/rocketlander/timestep"
	"github.com/samuelfneumann/rocketlander/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Continuous implements the rocket landing environment with continuous
// actions. Actions are 2-dimensional. The first dimension is the
// fraction of a power increment to add to the engine power and the
// second is the fraction of the rotation torque to apply, positive
// counter-clockwise. Both dimensions are clipped to [-1, 1], and an
// action with a NaN component is rejected.
//
// Continuous implements the environment.Environment interface
type Continuous struct {
	*base
}

// NewContinuous constructs a new rocket environment with continuous
// actions
func NewContinuous(task environment.Task, discount float64,
	p Parameters) (*Continuous, timestep.TimeStep, error) {
	base, firstStep, err := newBase(task, discount, p)
	if err != nil {
		return nil, timestep.TimeStep{}, fmt.Errorf("newContinuous: %w", err)
	}

	return &Continuous{base}, firstStep, nil
}

// ActionSpec returns the action specification of the environment
func (c *Continuous) ActionSpec() environment.Spec {
	shape := mat.NewVecDense(ContinuousActionDims, nil)

	lower := make([]float64, ContinuousActionDims)
	upper := make([]float64, ContinuousActionDims)
	for i := range lower {
		lower[i] = MinContinuousAction
		upper[i] = MaxContinuousAction
	}

	return environment.NewSpec(shape, environment.Action,
		mat.NewVecDense(ContinuousActionDims, lower),
		mat.NewVecDense(ContinuousActionDims, upper),
		environment.Continuous)
}

// Step takes one environmental step given action a and returns the next
// timestep and whether the episode has ended
func (c *Continuous) Step(a *mat.VecDense) (timestep.TimeStep, bool, error) {
	if a.Len() != ContinuousActionDims {
		return timestep.TimeStep{}, false, fmt.Errorf("step: actions "+
			"should be %v-dimensional, got %v dimensions",
			ContinuousActionDims, a.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if math.IsNaN(a.AtVec(i)) {
			return c.lastStep, false, fmt.Errorf("step: action "+
				"dimension %v is NaN", i)
		}
	}

	bounds := r1.Interval{Min: MinContinuousAction, Max: MaxContinuousAction}
	throttle := floatutils.ClipInterval(a.AtVec(0), bounds)
	rotate := floatutils.ClipInterval(a.AtVec(1), bounds)

	physics := c.sim.Body().Physics()
	control := Control{
		PowerDelta: throttle * physics.PowerIncrement,
		Torque:     rotate * physics.RotationTorque,
	}

	return c.step(control, a)
}
