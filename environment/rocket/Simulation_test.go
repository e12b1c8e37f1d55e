package rocket

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func newTestSimulation(t *testing.T, position r2.Vec,
	target *Target) *Simulation {
	t.Helper()

	layout := DefaultLayout()
	body := NewBody(position, RocketMass, DefaultPhysics())
	sim, err := NewSimulation(body, NewContactResolver(), layout.Platforms,
		target, layout.HalfHeight())
	if err != nil {
		t.Fatalf("could not create simulation: %v", err)
	}
	return sim
}

func TestNewSimulationRequiresLandingPad(t *testing.T) {
	body := NewBody(r2.Vec{X: 200, Y: 20}, RocketMass, DefaultPhysics())
	platforms := []Platform{NewPlatform(100, 200, 0, false)}

	_, err := NewSimulation(body, NewContactResolver(), platforms, nil,
		halfHeight)
	if err == nil {
		t.Errorf("expected error for simulation without landing pad")
	}
}

func TestSimulationTargetCapture(t *testing.T) {
	// Start just below the target and climb through it at full power
	target := NewTarget(TargetX, TargetY, TargetDiameter)
	sim := newTestSimulation(t, r2.Vec{X: TargetX, Y: TargetY - 40}, target)

	captures := 0
	for i := 0; i < 120; i++ {
		tick := sim.Tick(Control{PowerDelta: MaxPower}, Dt)
		if tick.TargetCaptured {
			captures++
		}
	}

	if captures != 1 {
		t.Errorf("target captured %v times, want 1", captures)
	}
	if !sim.Body().State().TargetReached {
		t.Errorf("target not reached")
	}
}

func TestSimulationWithoutTarget(t *testing.T) {
	sim := newTestSimulation(t, r2.Vec{X: TargetX, Y: TargetY}, nil)
	tick := sim.Tick(Control{}, Dt)

	if tick.TargetCaptured || sim.Body().State().TargetReached {
		t.Errorf("target captured without a target")
	}
	if tick.Metrics.DistanceToTarget != 0 {
		t.Errorf("distance to target = %v, want 0",
			tick.Metrics.DistanceToTarget)
	}
}

func TestSimulationCrashFreezes(t *testing.T) {
	// Drop the rocket between the platforms
	sim := newTestSimulation(t, r2.Vec{X: ScreenWidth / 2, Y: 300}, nil)

	var tick Tick
	for i := 0; i < 600 && !tick.Contact.Terminal(); i++ {
		tick = sim.Tick(Control{}, Dt)
	}

	if tick.Contact.Outcome != Crashed {
		t.Fatalf("outcome = %v, want %v", tick.Contact.Outcome, Crashed)
	}

	crashed := sim.Body().State()
	tick = sim.Tick(Control{PowerDelta: 100, Torque: RotationTorque}, Dt)
	if sim.Body().State() != crashed {
		t.Errorf("crashed rocket changed from %v to %v", crashed,
			sim.Body().State())
	}
	if tick.Contact.Outcome != Crashed {
		t.Errorf("outcome after crash = %v, want %v", tick.Contact.Outcome,
			Crashed)
	}
}

func TestSimulationRestingOnLaunchPlatform(t *testing.T) {
	sim := newTestSimulation(t, r2.Vec{X: InitialX, Y: InitialY}, nil)

	for i := 0; i < 60; i++ {
		tick := sim.Tick(Control{}, Dt)
		if tick.Contact.Outcome != Resting {
			t.Fatalf("step %v: outcome = %v, want %v", i,
				tick.Contact.Outcome, Resting)
		}
		if tick.Contact.Platform != 0 {
			t.Fatalf("step %v: platform = %v, want 0", i,
				tick.Contact.Platform)
		}
	}

	state := sim.Body().State()
	if state.Position != (r2.Vec{X: InitialX, Y: InitialY}) {
		t.Errorf("position = %v, want (%v, %v)", state.Position, InitialX,
			InitialY)
	}
}

func TestSimulationReset(t *testing.T) {
	start := r2.Vec{X: InitialX, Y: InitialY}
	sim := newTestSimulation(t, start, NewTarget(TargetX, TargetY,
		TargetDiameter))
	initial := sim.Metrics()

	for i := 0; i < 100; i++ {
		sim.Tick(Control{PowerDelta: 5, Torque: -RotationTorque}, Dt)
	}
	sim.Reset()

	if sim.Body().State() != sim.Body().Initial() {
		t.Errorf("state after reset = %v, want %v", sim.Body().State(),
			sim.Body().Initial())
	}
	if sim.Metrics() != initial {
		t.Errorf("metrics after reset = %v, want %v", sim.Metrics(), initial)
	}
	if sim.Contact().Outcome != Airborne {
		t.Errorf("contact after reset = %v, want %v", sim.Contact().Outcome,
			Airborne)
	}

	next := r2.Vec{X: 400, Y: 200}
	sim.ResetAt(next)
	if got := sim.Body().State().Position; got != next {
		t.Errorf("position after ResetAt = %v, want %v", got, next)
	}
	sim.Tick(Control{PowerDelta: 50}, Dt)
	sim.Reset()
	if got := sim.Body().State().Position; got != next {
		t.Errorf("position after Reset = %v, want %v", got, next)
	}
}

func TestSimulationPlatformsCopied(t *testing.T) {
	sim := newTestSimulation(t, r2.Vec{X: InitialX, Y: InitialY}, nil)

	platforms := sim.Platforms()
	platforms[0].LeftX = -1000

	if sim.Platforms()[0].LeftX == -1000 {
		t.Errorf("platforms were not copied")
	}
	if !sim.LandingPad().LandingPad {
		t.Errorf("landing pad is not a landing pad")
	}
}

func TestTargetContains(t *testing.T) {
	target := NewTarget(TargetX, TargetY, TargetDiameter)

	tests := []struct {
		p    r2.Vec
		want bool
	}{
		{r2.Vec{X: TargetX, Y: TargetY}, true},
		{r2.Vec{X: TargetX + TargetDiameter/2, Y: TargetY}, true},
		{r2.Vec{X: TargetX, Y: TargetY - TargetDiameter/2 - 0.01}, false},
		{r2.Vec{X: TargetX + 11, Y: TargetY + 11}, false},
		{r2.Vec{X: TargetX + 10, Y: TargetY + 10}, true},
	}

	for _, test := range tests {
		if got := target.Contains(test.p); got != test.want {
			t.Errorf("contains(%v) = %v, want %v", test.p, got, test.want)
		}
	}
}

func TestSimulationLandedWithoutFreezeStaysOnGround(t *testing.T) {
	layout := DefaultLayout()
	pad := layout.Platforms[1]
	body := NewBody(r2.Vec{X: pad.Center().X, Y: layout.HalfHeight()},
		RocketMass, DefaultPhysics())

	resolver := NewContactResolver()
	resolver.FreezeOnLanded = false
	sim, err := NewSimulation(body, resolver, layout.Platforms, nil,
		layout.HalfHeight())
	if err != nil {
		t.Fatalf("could not create simulation: %v", err)
	}

	for i := 0; i < 120; i++ {
		tick := sim.Tick(Control{}, Dt)
		if tick.Contact.Outcome != Landed {
			t.Fatalf("step %v: outcome = %v, want %v", i,
				tick.Contact.Outcome, Landed)
		}

		state := sim.Body().State()
		if state.Position.Y != layout.HalfHeight() {
			t.Fatalf("step %v: position.y = %v, want %v", i,
				state.Position.Y, layout.HalfHeight())
		}
		if state.Velocity != (r2.Vec{}) {
			t.Fatalf("step %v: velocity = %v, want 0", i, state.Velocity)
		}
	}
	if sim.Body().Frozen() {
		t.Errorf("landed body frozen with FreezeOnLanded unset")
	}
}

func TestSimulationTakeoffFromLaunchPlatform(t *testing.T) {
	sim := newTestSimulation(t, r2.Vec{X: InitialX, Y: InitialY}, nil)

	if tick := sim.Tick(Control{}, Dt); tick.Contact.Outcome != Resting {
		t.Fatalf("outcome before takeoff = %v, want %v",
			tick.Contact.Outcome, Resting)
	}

	airborne := false
	for i := 0; i < 120 && !airborne; i++ {
		tick := sim.Tick(Control{PowerDelta: MaxPower}, Dt)
		switch tick.Contact.Outcome {
		case Airborne:
			airborne = true
		case Resting:
		default:
			t.Fatalf("step %v: outcome = %v during takeoff", i,
				tick.Contact.Outcome)
		}
	}
	if !airborne {
		t.Fatalf("rocket did not take off at full power")
	}

	state := sim.Body().State()
	if state.Landed || state.Crashed {
		t.Errorf("landed = %v, crashed = %v after takeoff, want false",
			state.Landed, state.Crashed)
	}
	if state.Position.Y <= InitialY || state.Velocity.Y <= 0 {
		t.Errorf("position.y = %v, velocity.y = %v, want above %v and "+
			"climbing", state.Position.Y, state.Velocity.Y, InitialY)
	}
	if sim.Body().Frozen() {
		t.Errorf("body frozen after takeoff")
	}
}
