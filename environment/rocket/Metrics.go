package rocket

import (
	"math"

	"github.com/samuelfneumann/rocketlander/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r2"
)

// Metrics are quantities derived from a rocket's State relative to its
// target and landing pad. Computing Metrics never changes the State.
type Metrics struct {
	// DistanceToTarget is the straight line distance from the rocket
	// to the target centre
	DistanceToTarget float64

	// AngleDifference is the absolute difference in degrees, in
	// [0, 180], between the rocket's heading and the bearing of the
	// target
	AngleDifference float64

	// Horizontal and vertical distances from the rocket to the centre
	// of the landing pad surface
	DistanceToLandingX float64
	DistanceToLandingY float64
}

// ComputeMetrics computes the Metrics of state relative to target and
// landing. A nil target yields zero target metrics.
func ComputeMetrics(state State, target *Target, landing Platform) Metrics {
	var m Metrics

	if target != nil {
		d := r2.Sub(target.Center, state.Position)
		m.DistanceToTarget = math.Sqrt(d.X*d.X + d.Y*d.Y)

		bearing := degrees(math.Atan2(d.Y, d.X))
		m.AngleDifference = AngleDifference(state.Orientation, bearing)
	}

	center := landing.Center()
	m.DistanceToLandingX = math.Abs(state.Position.X - center.X)
	m.DistanceToLandingY = math.Abs(state.Position.Y - center.Y)

	return m
}

// AngleDifference returns the smallest absolute difference in degrees
// between two headings. Headings need not be wrapped.
func AngleDifference(heading, bearing float64) float64 {
	return math.Abs(floatutils.Mod(heading-bearing+180, 360) - 180)
}

// NormalizeOrientation wraps an orientation in degrees into [0, 360).
// Bodies never wrap their own orientation; this is for display only.
func NormalizeOrientation(orientation float64) float64 {
	return floatutils.Wrap(orientation, 0, 360)
}
