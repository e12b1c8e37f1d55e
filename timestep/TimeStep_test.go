package timestep

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStepTypes(t *testing.T) {
	obs := mat.NewVecDense(2, []float64{1, 2})
	step := New(First, 0.0, 0.99, obs, 0)

	if !step.First() || step.Mid() || step.Last() {
		t.Errorf("new: expected first step, got %v", step.StepType)
	}
	if step.EndType() != Unknown {
		t.Errorf("new: expected unknown end type, got %v", step.EndType())
	}

	step.StepType = Last
	step.SetEnd(Timeout)
	if !step.TimeoutEnd() || step.TerminalEnd() {
		t.Errorf("setEnd: expected timeout end, got %v", step.EndType())
	}

	step.SetEnd(TerminalStateReached)
	if !step.TerminalEnd() || step.TimeoutEnd() {
		t.Errorf("setEnd: expected terminal end, got %v", step.EndType())
	}
}

func TestEndRequiresLast(t *testing.T) {
	step := New(Mid, 1.0, 1.0, mat.NewVecDense(1, nil), 3)
	step.SetEnd(Timeout)

	if step.TimeoutEnd() {
		t.Errorf("timeoutEnd: a Mid step should never report an end")
	}
}

func TestString(t *testing.T) {
	tests := map[StepType]string{First: "First", Mid: "Mid", Last: "Last"}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("string: want(%v) have(%v)", want, s.String())
		}
	}

	ends := map[EndType]string{
		Unknown:              "Unknown",
		TerminalStateReached: "TerminalStateReached",
		Timeout:              "Timeout",
	}
	for e, want := range ends {
		if e.String() != want {
			t.Errorf("string: want(%v) have(%v)", want, e.String())
		}
	}
}
