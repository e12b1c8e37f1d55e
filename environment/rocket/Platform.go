package rocket

import (
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r2"
)

// Platform is a static horizontal surface the rocket can rest on. A
// rocket is over a Platform when its x coordinate lies in the closed
// interval [LeftX, LeftX + Length].
type Platform struct {
	LeftX        float64 `json:"leftX" mapstructure:"leftX"`
	Length       float64 `json:"length" mapstructure:"length"`
	GroundHeight float64 `json:"groundHeight" mapstructure:"groundHeight"`

	// LandingPad designates the platform that counts for a landing
	LandingPad bool `json:"landingPad" mapstructure:"landingPad"`
}

// NewPlatform returns a new Platform
func NewPlatform(leftX, length, groundHeight float64, landingPad bool) Platform {
	return Platform{
		LeftX:        leftX,
		Length:       length,
		GroundHeight: groundHeight,
		LandingPad:   landingPad,
	}
}

// Interval returns the horizontal extent of the Platform
func (p Platform) Interval() r1.Interval {
	return r1.Interval{Min: p.LeftX, Max: p.LeftX + p.Length}
}

// Contains returns whether x lies over the Platform
func (p Platform) Contains(x float64) bool {
	extent := p.Interval()
	return extent.Min <= x && x <= extent.Max
}

// Center returns the centre of the Platform's surface
func (p Platform) Center() r2.Vec {
	return r2.Vec{X: p.LeftX + p.Length/2, Y: p.GroundHeight}
}

// Target is a circular region the rocket can collect by flying through
// it
type Target struct {
	Center   r2.Vec  `json:"center" mapstructure:"center"`
	Diameter float64 `json:"diameter" mapstructure:"diameter"`
}

// NewTarget returns a new Target centred at (x, y)
func NewTarget(x, y, diameter float64) *Target {
	return &Target{Center: r2.Vec{X: x, Y: y}, Diameter: diameter}
}

// Contains returns whether point p lies within the Target
func (t *Target) Contains(p r2.Vec) bool {
	return r2.Norm(r2.Sub(p, t.Center)) <= t.Diameter/2
}
