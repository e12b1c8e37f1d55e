// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ClipInterval is a wrapper to use Clip with an r1.Interval instead of
// a separate max and min value
func ClipInterval(value float64, interval r1.Interval) float64 {
	return Clip(value, interval.Min, interval.Max)
}

// Mod returns the floored modulus of x and m. Unlike math.Mod, the
// result always takes the sign of m, so that Mod(-10, 360) == 350.
func Mod(x, m float64) float64 {
	return x - m*math.Floor(x/m)
}

// Wrap wraps value into the half-open interval [min, max). For
// example, wrapping an angle of 370 degrees into [0, 360) results
// in 10 degrees.
func Wrap(value, min, max float64) float64 {
	if min >= max {
		panic("wrap: min must be strictly less than max")
	}
	return min + Mod(value-min, max-min)
}
