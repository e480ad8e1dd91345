package sim

import (
	"context"
	"math"
	"testing"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/integrators"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/plant"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/smc"
)

// Full stack: classical sliding-mode controller balancing the double
// pendulum from a small tilt. The loop must stay bounded and the angle
// envelope must stop growing once the surface is reached.
func TestClassicalBalancesDoublePendulum(t *testing.T) {
	model := plant.NewDefault()
	reg, err := smc.NewRegistry(model)
	if err != nil {
		t.Fatal(err)
	}

	opts := smc.DefaultOptions()
	opts.Dt = 0.01
	ctrl, err := reg.New(smc.Classical, []float64{20, 15, 12, 8, 35, 5}, opts)
	if err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(model, integrators.NewRK4(), ctrl)
	cfg := Config{Dt: 0.01, Duration: 5.0, DivergeNorm: 100}
	x0 := dynamo.State{0, 0.1, 0.05, 0, 0, 0}

	result, err := runner.Run(context.Background(), x0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Err != nil {
		t.Fatalf("rollout ended early: %v", result.Err)
	}
	if result.Diverged {
		t.Fatal("rollout diverged")
	}
	if result.Steps() != 500 {
		t.Fatalf("expected 500 steps, got %d", result.Steps())
	}

	for i, x := range result.States {
		for j, v := range x {
			if math.Abs(v) >= 10 {
				t.Fatalf("state component %d blew up to %g at step %d", j, v, i)
			}
		}
	}

	envelope := func(from, to int) float64 {
		peak := 0.0
		for _, x := range result.States[from:to] {
			if a := math.Abs(x[1]); a > peak {
				peak = a
			}
			if a := math.Abs(x[2]); a > peak {
				peak = a
			}
		}
		return peak
	}

	early := envelope(400, 450)
	late := envelope(450, 501)
	if late > early {
		t.Errorf("angle envelope grew over the final second: %g -> %g", early, late)
	}
}
