package smc

import (
	"math"
	"testing"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/plant"
)

func TestClassicalFiniteOutput(t *testing.T) {
	reg, err := NewRegistry(plant.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	ctrl, err := reg.New(Classical, []float64{20, 15, 12, 8, 35, 5}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	out := ctrl.Compute(dynamo.State{0, 0.1, 0.05, 0, 0, 0}, 0)
	if math.IsNaN(out.Force) || math.IsInf(out.Force, 0) {
		t.Fatalf("non-finite force: %v", out.Force)
	}
	if out.Diag.NonFinite {
		t.Error("unexpected non-finite flag on a healthy state")
	}
	if math.Abs(out.Force) > DefaultOptions().MaxForce {
		t.Errorf("force %g exceeds limit", out.Force)
	}
}

func TestClassicalNaNStateYieldsZero(t *testing.T) {
	reg, err := NewRegistry(plant.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	ctrl, err := reg.New(Classical, []float64{20, 15, 12, 8, 35, 5}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	out := ctrl.Compute(dynamo.State{0, math.NaN(), 0.05, 0, 0, 0}, 0)
	if out.Force != 0 {
		t.Errorf("expected zero force on NaN state, got %g", out.Force)
	}
	if !out.Diag.NonFinite {
		t.Error("expected non-finite diagnostic flag")
	}
}

func TestClassicalSaturation(t *testing.T) {
	reg, err := NewRegistry(plant.NewDefault())
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.MaxForce = 1
	ctrl, err := reg.New(Classical, []float64{20, 15, 12, 8, 35, 5}, opts)
	if err != nil {
		t.Fatal(err)
	}

	out := ctrl.Compute(dynamo.State{0, 0.3, 0.2, 0, 0.5, 0.5}, 0)
	if math.Abs(out.Force) != 1 {
		t.Errorf("expected saturated force of magnitude 1, got %g", out.Force)
	}
	if !out.Diag.Saturated {
		t.Error("expected saturation flag")
	}
}
