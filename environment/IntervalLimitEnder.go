package environment

import (
	"fmt"

	"github.com/samuelfneumann/rocketlander/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

// IntervalLimit implements the Ender interface to end episodes
// whenever some observation feature leaves its interval. Features which
// are NaN are outside every interval.
type IntervalLimit struct {
	intervals []r1.Interval
	indices   []int
	endType   timestep.EndType
	exceeded  int
}

// NewIntervalLimit creates and returns a new interval limit, bounding
// feature obsIndices[i] by limits[i]. The endType argument determines
// what the episode end should be considered as.
func NewIntervalLimit(limits []r1.Interval, obsIndices []int,
	endType timestep.EndType) *IntervalLimit {
	if len(limits) != len(obsIndices) {
		panic(fmt.Sprintf("newIntervalLimit: %v limits for %v features",
			len(limits), len(obsIndices)))
	}

	return &IntervalLimit{
		intervals: limits,
		indices:   obsIndices,
		endType:   endType,
		exceeded:  -1,
	}
}

// End marks t as the last step of its episode if any bounded feature
// of its observation lies outside its interval
func (i *IntervalLimit) End(t *timestep.TimeStep) bool {
	i.exceeded = -1
	for j, feature := range i.indices {
		v := t.Observation.AtVec(feature)
		if v >= i.intervals[j].Min && v <= i.intervals[j].Max {
			continue
		}

		i.exceeded = feature
		t.StepType = timestep.Last
		t.SetEnd(i.endType)
		return true
	}
	return false
}

// Exceeded returns the index of the feature which ended the episode on
// the last call to End, or -1 if End did not end the episode
func (i *IntervalLimit) Exceeded() int {
	return i.exceeded
}
