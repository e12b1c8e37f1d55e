// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/rocketlander/timestep"
	"gonum.org/v1/gonum/mat"
)

// Agent determines the implementation details of a controller
//
// An Agent is composed of a Learner, which adapts the agent from
// experience, and a Policy which chooses actions in each state. Agents
// which do not adapt, such as fixed controllers, implement the Learner
// methods as no-ops so that every Agent can be run by the same
// experiment loop.
type Agent interface {
	Learner
	Policy
}

// Learner observes the transitions generated by a Policy
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(action mat.Vector, nextObs timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions given the current
// TimeStep. A Policy in evaluation mode should act as well as it can,
// while a Policy in training mode may explore.
type Policy interface {
	SelectAction(t timestep.TimeStep) *mat.VecDense
	Eval()        // Set policy to evaluation mode
	Train()       // Set policy to training mode
	IsEval() bool // Indicates if in evaluation mode
}
