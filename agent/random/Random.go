// Package random implements an agent which selects actions uniformly
// at random
package random

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/rocketlander/environment"
	"github.com/samuelfneumann/rocketlander/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Random selects actions uniformly at random from the action space of
// an environment. Discrete actions are sampled from the integers
// between the action bounds and continuous actions from the box
// between them. Each sampled action is repeated for a number of steps.
//
// Random does not learn, and its Learner methods do nothing.
type Random struct {
	Config
	sampler environment.Starter
	last    *mat.VecDense
	taken   int
	eval    bool
}

// New creates a new Random agent for env
func New(env environment.Environment, c Config, seed uint64) (*Random,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	spec := env.ActionSpec()
	bounds := make([]r1.Interval, spec.Shape.Len())
	for i := range bounds {
		low, high := spec.LowerBound.AtVec(i), spec.UpperBound.AtVec(i)
		if math.IsInf(low, 0) || math.IsInf(high, 0) || high < low {
			return nil, fmt.Errorf("new: cannot sample %v actions in "+
				"[%v, %v]", spec.Cardinality, low, high)
		}
		bounds[i] = r1.Interval{Min: low, Max: high}
	}

	var sampler environment.Starter
	switch spec.Cardinality {
	case environment.Discrete:
		for _, b := range bounds {
			if math.Floor(b.Max) < math.Ceil(b.Min) {
				return nil, fmt.Errorf("new: no discrete actions in %v", b)
			}
		}
		sampler = environment.NewCategoricalStarter(bounds, seed)

	case environment.Continuous:
		sampler = environment.NewUniformStarter(bounds, seed)

	default:
		return nil, fmt.Errorf("new: unknown action cardinality %v",
			spec.Cardinality)
	}

	return &Random{Config: c, sampler: sampler}, nil
}

// SelectAction returns a random action. The timestep is ignored.
func (r *Random) SelectAction(_ timestep.TimeStep) *mat.VecDense {
	if r.last == nil || r.taken >= r.Repeat {
		r.last = r.sampler.Start()
		r.taken = 0
	}
	r.taken++

	return mat.VecDenseCopyOf(r.last)
}

// ObserveFirst records the first timestep in an episode. Action
// repeats do not carry over between episodes.
func (r *Random) ObserveFirst(timestep.TimeStep) error {
	r.last = nil
	return nil
}

// Observe records that an action lead to some timestep
func (r *Random) Observe(mat.Vector, timestep.TimeStep) error { return nil }

// Step performs a single update to the learner
func (r *Random) Step() error { return nil }

// EndEpisode performs cleanup at the end of an episode
func (r *Random) EndEpisode() {}

// Eval sets the agent to evaluation mode
func (r *Random) Eval() { r.eval = true }

// Train sets the agent to training mode
func (r *Random) Train() { r.eval = false }

// IsEval returns whether the agent is in evaluation mode
func (r *Random) IsEval() bool { return r.eval }
