package cost

import (
	"context"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/integrators"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/sim"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/smc"
)

// Tally counts evaluation failures across one EvaluateAll call. Failures
// are charged to their candidate as penalties, never propagated as errors.
type Tally struct {
	Candidates   int
	InvalidGains int
	DivergedRuns int
}

func (t *Tally) add(o Tally) {
	t.Candidates += o.Candidates
	t.InvalidGains += o.InvalidGains
	t.DivergedRuns += o.DivergedRuns
}

// RobustConfig describes a robust evaluation problem: which controller
// variant to tune, the scenario batch to run it against, and how to reduce
// per-scenario costs to one number.
type RobustConfig struct {
	Type      smc.Type
	Options   smc.Options
	Scenarios []dynamo.State
	Sim       sim.Config
	Weights   Weights
	Penalty   float64

	// WorstWeight sets how much the worst scenario counts on top of the
	// mean: cost = mean + WorstWeight*max.
	WorstWeight float64

	// Workers bounds candidate-level parallelism; 0 means GOMAXPROCS.
	Workers int
}

// Robust scores gain candidates by simulating each against the whole
// scenario batch. Safe for concurrent use.
type Robust struct {
	reg    *smc.Registry
	system dynamo.System
	cfg    RobustConfig
	eval   *Evaluator
}

func NewRobust(reg *smc.Registry, system dynamo.System, cfg RobustConfig) *Robust {
	return &Robust{
		reg:    reg,
		system: system,
		cfg:    cfg,
		eval:   NewEvaluator(cfg.Weights, cfg.Penalty),
	}
}

// Cost scores one candidate: mean plus worst-weighted max across scenarios.
// Invalid gains short-circuit to the penalty without any simulation.
func (r *Robust) Cost(ctx context.Context, gains []float64) (float64, Tally) {
	tally := Tally{Candidates: 1}

	if err := smc.ValidateGains(r.cfg.Type, gains); err != nil {
		tally.InvalidGains++
		return r.eval.Penalty, tally
	}

	factory := sim.Factory{
		System:        r.system,
		NewIntegrator: func() dynamo.Integrator { return integrators.NewRK4() },
		NewController: func() (dynamo.Controller, error) {
			return r.reg.New(r.cfg.Type, gains, r.cfg.Options)
		},
	}
	results := factory.Batch(ctx, r.cfg.Scenarios, r.cfg.Sim)
	if len(results) == 0 {
		return r.eval.Penalty, tally
	}

	sum, worst := 0.0, 0.0
	for _, res := range results {
		c := r.eval.Trajectory(res, r.cfg.Sim.Dt)
		if res != nil && (res.Diverged || res.Err != nil) {
			tally.DivergedRuns++
		}
		sum += c
		if c > worst {
			worst = c
		}
	}
	mean := sum / float64(len(results))

	return mean + r.cfg.WorstWeight*worst, tally
}

// EvaluateAll scores a generation of candidates with a bounded worker pool.
// The returned slice is index-aligned with candidates.
func (r *Robust) EvaluateAll(ctx context.Context, candidates [][]float64) ([]float64, Tally) {
	costs := make([]float64, len(candidates))

	workers := r.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	var tally Tally

	p := pool.New().WithMaxGoroutines(workers)
	for i := range candidates {
		i := i
		p.Go(func() {
			c, t := r.Cost(ctx, candidates[i])
			costs[i] = c
			mu.Lock()
			tally.add(t)
			mu.Unlock()
		})
	}
	p.Wait()

	return costs, tally
}
