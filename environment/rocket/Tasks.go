package rocket

import (
	"math"

	"github.com/samuelfneumann/rocketlander/environment"
	"github.com/samuelfneumann/rocketlander/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Rewards of the Land task
const (
	TargetReward            float64 = 100.0  // Collecting the target
	CrashReward             float64 = -100.0 // Crashing
	OffscreenReward         float64 = -100.0 // Leaving the screen
	TimeoutReward           float64 = -50.0  // Running out of steps
	LandingBonus            float64 = 500.0  // Landing, less fuel consumed
	UntargetedLandingReward float64 = 20.0   // Resting on the pad without the target

	ApproachReward   float64 = 0.1   // Moving closer to the target
	RetreatReward    float64 = -0.05 // Not moving closer to the target
	AlignReward      float64 = 0.1   // Turning towards the target
	DescentReward    float64 = 0.2   // Per axis, moving closer to the pad
	FuelPenaltyScale float64 = 0.01  // Per step at full power

	DefaultEpisodeSteps int = 2000
)

// Land implements the rocket landing task. The rocket must fly through
// the target and then come to rest on the landing pad with its engine
// off.
//
// Rewards are sparse with dense shaping. Collecting the target gives
// +100 and crashing gives -100. Resting on the landing pad with the
// engine off gives 500 less the fuel consumed (never below 0) once the
// target has been collected, and +20 every step before that. Each step
// the rocket gets +0.1 for moving closer to the target and -0.05
// otherwise, +0.1 for turning towards the target, and once the target
// is collected +0.2 per axis for moving closer to the landing pad. A
// penalty of 0.01 per step at full power is charged for fuel.
//
// Episodes end when the rocket lands or crashes, when the step limit is
// reached, or, if enabled, when the rocket leaves the screen. Running
// out of steps replaces the step's reward with -50 and leaving the
// screen replaces it with -100.
//
// Land can only compute rewards for the rocket environment it is
// registered with, and so a Land task should not be shared between
// environments.
type Land struct {
	environment.Starter
	contactEnder     *environment.FunctionEnder
	stepLimiter      *environment.StepLimit
	offscreenLimiter *environment.IntervalLimit
	env              *base
}

// NewLand creates and returns a new Land task. If terminateOffscreen is
// true, episodes end when the rocket leaves the screen.
func NewLand(s environment.Starter, episodeSteps int,
	terminateOffscreen bool) *Land {
	stepLimiter := environment.NewStepLimit(episodeSteps)

	var offscreenLimiter *environment.IntervalLimit
	if terminateOffscreen {
		onScreen := []r1.Interval{{Min: 0, Max: 1}, {Min: 0, Max: 1}}
		offscreenLimiter = environment.NewIntervalLimit(onScreen,
			[]int{ObsX, ObsY}, timestep.TerminalStateReached)
	}

	l := &Land{
		Starter:          s,
		stepLimiter:      stepLimiter,
		offscreenLimiter: offscreenLimiter,
	}
	l.contactEnder = environment.NewFunctionEnder(func(timestep.TimeStep) bool {
		return l.env != nil && l.env.lastTick.Contact.Terminal()
	}, timestep.TerminalStateReached)

	return l
}

// registerEnv registers the environment which the task computes
// rewards for
func (l *Land) registerEnv(b *base) {
	l.env = b
}

// GetReward returns the reward for the last transition of the
// registered environment
func (l *Land) GetReward(_, _, _ mat.Vector) float64 {
	if l.env == nil {
		panic("getReward: task is not registered with an environment")
	}

	tick := l.env.lastTick
	prev := l.env.prevMetrics
	next := tick.Metrics
	state := l.env.sim.Body().State()

	reward := 0.0
	if tick.TargetCaptured {
		reward += TargetReward
	}

	switch tick.Contact.Outcome {
	case Crashed:
		reward += CrashReward

	case Resting, Landed:
		if tick.Contact.Platform < 0 {
			break
		}
		platform := l.env.sim.Platforms()[tick.Contact.Platform]
		if platform.LandingPad && state.EnginePower == 0 {
			if state.TargetReached {
				reward += math.Max(0, LandingBonus-state.FuelConsumed)
			} else {
				reward += UntargetedLandingReward
			}
		}
	}

	if next.DistanceToTarget < prev.DistanceToTarget {
		reward += ApproachReward
	} else {
		reward += RetreatReward
	}
	if next.AngleDifference < prev.AngleDifference {
		reward += AlignReward
	}

	if state.TargetReached {
		if next.DistanceToLandingX < prev.DistanceToLandingX {
			reward += DescentReward
		}
		if next.DistanceToLandingY < prev.DistanceToLandingY {
			reward += DescentReward
		}
	}

	reward -= FuelPenaltyScale * state.EnginePower / MaxPower
	return reward
}

// End checks if a TimeStep is the last in an episode. If so, it adjusts
// the TimeStep's StepType to timestep.Last and returns true. Otherwise,
// the function does not adjust the TimeStep and returns false.
func (l *Land) End(t *timestep.TimeStep) bool {
	if l.contactEnder.End(t) {
		return true
	}

	if l.offscreenLimiter != nil && l.offscreenLimiter.End(t) {
		t.Reward = OffscreenReward
		return true
	}

	if l.stepLimiter.End(t) {
		t.Reward = TimeoutReward
		return true
	}
	return false
}

// EpisodeSteps returns the number of steps after which episodes are
// cut off
func (l *Land) EpisodeSteps() int {
	return l.stepLimiter.Limit()
}

// AtGoal returns whether the registered rocket has landed. The state
// argument is ignored, since a landing depends on the contact history
// rather than on the observation alone.
func (l *Land) AtGoal(_ mat.Matrix) bool {
	return l.env != nil && l.env.sim.Body().State().Landed
}

// Min returns the minimum possible reward that can be received in the
// environment
func (l *Land) Min() float64 {
	return CrashReward + RetreatReward - FuelPenaltyScale
}

// Max returns the maximum possible reward that can be received in the
// environment
func (l *Land) Max() float64 {
	return TargetReward + LandingBonus + ApproachReward + AlignReward +
		2*DescentReward
}

// RewardSpec returns the reward specification for the environment
func (l *Land) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{l.Min()})
	upperBound := mat.NewVecDense(1, []float64{l.Max()})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Continuous)
}
