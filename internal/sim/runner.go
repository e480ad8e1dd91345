package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
)

type Config struct {
	Dt       float64
	Duration float64

	// DivergeNorm is the state norm beyond which a rollout counts as
	// diverged and stops early.
	DivergeNorm float64

	// Timeout is a per-rollout wall-clock budget. Zero disables it.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Dt:          0.01,
		Duration:    5.0,
		DivergeNorm: 100,
	}
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("sim: dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("sim: duration must be positive, got %f", c.Duration)
	}
	if c.DivergeNorm <= 0 {
		return fmt.Errorf("sim: divergence norm must be positive, got %f", c.DivergeNorm)
	}
	return nil
}

// Result holds one rollout. Err records why the rollout ended early; the
// series up to that point are still valid.
type Result struct {
	Times    []float64
	States   []dynamo.State
	Controls []float64
	Surfaces []float64

	Diverged  bool
	NonFinite int
	Err       error
}

// Steps reports the number of completed control steps.
func (r *Result) Steps() int { return len(r.Controls) }

// Runner drives one controller against one plant. Not safe for concurrent
// use; build one per rollout.
type Runner struct {
	sys   dynamo.System
	integ dynamo.Integrator
	ctrl  dynamo.Controller
}

func NewRunner(sys dynamo.System, integ dynamo.Integrator, ctrl dynamo.Controller) *Runner {
	return &Runner{sys: sys, integ: integ, ctrl: ctrl}
}

const timeoutCheckEvery = 64

func (r *Runner) Run(ctx context.Context, x0 dynamo.State, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(x0) != r.sys.StateDim() {
		return nil, dynamo.ErrDimensionMismatch
	}

	steps := int(cfg.Duration/cfg.Dt + 0.5)
	result := &Result{
		Times:    make([]float64, 0, steps+1),
		States:   make([]dynamo.State, 0, steps+1),
		Controls: make([]float64, 0, steps),
		Surfaces: make([]float64, 0, steps),
	}

	x := x0.Clone()
	t := 0.0
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	start := time.Now()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		if cfg.Timeout > 0 && i%timeoutCheckEvery == 0 && time.Since(start) > cfg.Timeout {
			result.Err = &dynamo.StepError{Step: i, Time: t, Wrapped: dynamo.ErrTimeout}
			return result, nil
		}

		out := r.ctrl.Compute(x, t)
		if out.Diag.NonFinite {
			result.NonFinite++
		}
		result.Controls = append(result.Controls, out.Force)
		result.Surfaces = append(result.Surfaces, out.Surface)

		newX, err := r.integ.Step(r.sys, x, out.Force, cfg.Dt)
		if err != nil {
			result.Err = &dynamo.StepError{Step: i, Time: t, Wrapped: err}
			return result, nil
		}
		if !newX.IsValid() {
			result.Diverged = true
			result.Err = &dynamo.StepError{Step: i, Time: t, Wrapped: dynamo.ErrInvalidState}
			return result, nil
		}

		x = newX
		t += cfg.Dt
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)

		if x.Norm() > cfg.DivergeNorm {
			result.Diverged = true
			result.Err = &dynamo.StepError{Step: i, Time: t, Wrapped: dynamo.ErrUnstable}
			return result, nil
		}
	}

	return result, nil
}
