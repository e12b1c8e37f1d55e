package rocket

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Control is the control input for a single tick
type Control struct {
	PowerDelta float64 // Change in engine power, in percent
	Torque     float64 // Torque to apply over the tick
}

// Tick reports what happened during a single simulation tick
type Tick struct {
	Contact        Contact
	TargetCaptured bool // Whether the target was collected this tick
	Metrics        Metrics
}

// Simulation owns everything needed to simulate a single rocket over an
// episode: the Body, the ContactResolver that classifies its ground
// contact, the platforms, and an optional target.
//
// A Simulation is not safe for concurrent use, but independent
// Simulations share no state.
type Simulation struct {
	body       *Body
	resolver   *ContactResolver
	platforms  []Platform
	landing    int
	target     *Target
	halfHeight float64

	metrics Metrics
	contact Contact
}

// NewSimulation returns a new Simulation. Exactly one of the platforms
// should be a landing pad; if several are, the first is used for
// metrics. The target may be nil. The halfHeight is half the height of
// the rocket, the height of its centre when resting on the ground.
func NewSimulation(body *Body, resolver *ContactResolver,
	platforms []Platform, target *Target, halfHeight float64) (*Simulation,
	error) {
	landing := -1
	for i := range platforms {
		if platforms[i].LandingPad {
			landing = i
			break
		}
	}
	if landing < 0 {
		return nil, fmt.Errorf("newSimulation: no landing pad in %v "+
			"platforms", len(platforms))
	}

	p := make([]Platform, len(platforms))
	copy(p, platforms)

	s := &Simulation{
		body:       body,
		resolver:   resolver,
		platforms:  p,
		landing:    landing,
		target:     target,
		halfHeight: halfHeight,
	}
	s.refresh()

	return s, nil
}

// Tick applies control to the rocket and advances the simulation by dt
// seconds: the control is applied, the body is integrated, ground
// contact is resolved, the target is checked for capture, and the
// metrics are updated from the resolved state.
func (s *Simulation) Tick(control Control, dt float64) Tick {
	s.body.SetPower(control.PowerDelta)
	s.body.ApplyTorque(control.Torque, dt)
	s.body.Integrate(dt)

	s.contact = s.resolver.ResolveContact(s.body, s.platforms, s.halfHeight)

	captured := false
	state := s.body.State()
	if s.target != nil && !s.body.Frozen() && !state.TargetReached &&
		s.target.Contains(state.Position) {
		s.body.SetTargetReached()
		captured = true
	}

	s.metrics = ComputeMetrics(s.body.State(), s.target, s.LandingPad())

	return Tick{
		Contact:        s.contact,
		TargetCaptured: captured,
		Metrics:        s.metrics,
	}
}

// Reset restores the rocket to its initial state
func (s *Simulation) Reset() {
	s.body.Reset()
	s.refresh()
}

// ResetAt replaces the rocket with a new one at rest at position, with
// the same mass and physical constants. Later calls to Reset restore
// this new starting position.
func (s *Simulation) ResetAt(position r2.Vec) {
	s.body = NewBody(position, s.body.State().Mass, s.body.Physics())
	s.refresh()
}

func (s *Simulation) refresh() {
	s.metrics = ComputeMetrics(s.body.State(), s.target, s.LandingPad())
	s.contact = Contact{Outcome: Airborne, Platform: -1}
}

// Body returns the simulated rocket
func (s *Simulation) Body() *Body {
	return s.body
}

// Resolver returns the ContactResolver of the Simulation
func (s *Simulation) Resolver() *ContactResolver {
	return s.resolver
}

// Platforms returns a copy of the platforms of the Simulation
func (s *Simulation) Platforms() []Platform {
	p := make([]Platform, len(s.platforms))
	copy(p, s.platforms)
	return p
}

// LandingPad returns the platform the rocket should land on
func (s *Simulation) LandingPad() Platform {
	return s.platforms[s.landing]
}

// Target returns the target of the Simulation, which may be nil
func (s *Simulation) Target() *Target {
	return s.target
}

// HalfHeight returns half the height of the rocket
func (s *Simulation) HalfHeight() float64 {
	return s.halfHeight
}

// Metrics returns the metrics computed on the last tick or reset
func (s *Simulation) Metrics() Metrics {
	return s.metrics
}

// Contact returns the contact resolved on the last tick, or an
// Airborne contact after a reset
func (s *Simulation) Contact() Contact {
	return s.contact
}
