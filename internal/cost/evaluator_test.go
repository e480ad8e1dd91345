package cost

import (
	"errors"
	"math"
	"testing"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/sim"
)

func healthyResult() *sim.Result {
	return &sim.Result{
		Times:    []float64{0, 0.1, 0.2},
		States:   []dynamo.State{{0, 0.1, 0.2, 0, 0, 0}, {0, 0.05, 0.1, 0, 0, 0}, {0, 0, 0, 0, 0, 0}},
		Controls: []float64{1.0, 0.5},
		Surfaces: []float64{0.2, 0.1},
	}
}

func TestTrajectoryAccumulation(t *testing.T) {
	e := NewEvaluator(Weights{Error: 1, Control: 1, ControlRate: 1, Surface: 1}, 0)
	dt := 0.1

	got := e.Trajectory(healthyResult(), dt)

	// Step 0: err 0.01+0.04, u 1, du 0 (slew starts at the first control), s 0.2
	// Step 1: err 0.0025+0.01, u 0.5, du (0.5-1)/0.1=-5, s 0.1
	want := dt*(0.05+1+0+0.04) + dt*(0.0125+0.25+25+0.01)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("expected cost %g, got %g", want, got)
	}
}

func TestTrajectoryConstantControlHasNoSlewCost(t *testing.T) {
	e := NewEvaluator(Weights{ControlRate: 1}, 0)
	res := &sim.Result{
		Times:    []float64{0, 0.1, 0.2},
		States:   []dynamo.State{{0, 0, 0, 0, 0, 0}, {0, 0, 0, 0, 0, 0}, {0, 0, 0, 0, 0, 0}},
		Controls: []float64{120.0, 120.0},
		Surfaces: []float64{0, 0},
	}
	if got := e.Trajectory(res, 0.1); got != 0 {
		t.Errorf("constant control should carry zero slew cost, got %g", got)
	}
}

func TestTrajectoryWeightsScale(t *testing.T) {
	res := healthyResult()
	dt := 0.1

	base := NewEvaluator(Weights{Error: 1}, 0).Trajectory(res, dt)
	doubled := NewEvaluator(Weights{Error: 2}, 0).Trajectory(res, dt)
	if math.Abs(doubled-2*base) > 1e-12 {
		t.Errorf("error weight does not scale linearly: %g vs %g", doubled, 2*base)
	}
}

func TestTrajectoryPenalties(t *testing.T) {
	e := NewEvaluator(DefaultWeights(), 0)

	diverged := healthyResult()
	diverged.Diverged = true

	failed := healthyResult()
	failed.Err = errors.New("boom")

	glitched := healthyResult()
	glitched.NonFinite = 1

	for name, res := range map[string]*sim.Result{
		"nil":        nil,
		"diverged":   diverged,
		"failed":     failed,
		"non-finite": glitched,
	} {
		if got := e.Trajectory(res, 0.1); got != DefaultPenalty {
			t.Errorf("%s: expected penalty %g, got %g", name, DefaultPenalty, got)
		}
	}
}

func TestStableBeatsPenalty(t *testing.T) {
	e := NewEvaluator(DefaultWeights(), 0)
	if got := e.Trajectory(healthyResult(), 0.1); got >= DefaultPenalty {
		t.Errorf("healthy trajectory cost %g should be below the penalty", got)
	}
}
