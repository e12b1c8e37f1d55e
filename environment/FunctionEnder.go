package environment

import (
	"github.com/samuelfneumann/rocketlander/timestep"
)

// FunctionEnder ends an episode whenever a predicate of the TimeStep
// holds. The predicate may inspect anything the TimeStep does not
// carry, such as the internal state of an environment.
type FunctionEnder struct {
	end     func(timestep.TimeStep) bool
	endType timestep.EndType
}

// NewFunctionEnder returns a new FunctionEnder which ends episodes with
// end type endType when f returns true.
func NewFunctionEnder(f func(timestep.TimeStep) bool,
	endType timestep.EndType) *FunctionEnder {
	return &FunctionEnder{f, endType}
}

// End marks t as the last step of its episode, with the FunctionEnder's
// end type, if the predicate holds for t
func (f *FunctionEnder) End(t *timestep.TimeStep) bool {
	if !f.end(*t) {
		return false
	}
	t.StepType = timestep.Last
	t.SetEnd(f.endType)
	return true
}
