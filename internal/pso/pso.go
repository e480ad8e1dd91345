package pso

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/cost"
	"github.com/theSadeQ/dip-smc-pso-sub005/internal/smc"
)

// Objective scores a generation of gain candidates. Implementations must
// return one cost per candidate, index-aligned, and fold failures into the
// costs rather than erroring out.
type Objective interface {
	EvaluateAll(ctx context.Context, candidates [][]float64) ([]float64, cost.Tally)
}

type Config struct {
	SwarmSize  int     `yaml:"swarm_size"`
	Iterations int     `yaml:"iterations"`
	Inertia    float64 `yaml:"inertia"`
	Cognitive  float64 `yaml:"cognitive"`
	Social     float64 `yaml:"social"`
	Seed       int64   `yaml:"seed"`

	// WarmStart seeds a fraction of the swarm near a known gain vector,
	// perturbed by bounded Gaussian noise relative to the search range.
	WarmStart     []float64 `yaml:"warm_start,omitempty"`
	WarmStartFrac float64   `yaml:"warm_start_frac"`
	WarmStartStd  float64   `yaml:"warm_start_std"`

	// StagnationIters stops early when the best cost has improved by less
	// than StagnationTol over that many iterations. Zero disables the stop
	// and makes the iteration budget the contract.
	StagnationIters int     `yaml:"stagnation_iters"`
	StagnationTol   float64 `yaml:"stagnation_tol"`
}

func DefaultConfig() Config {
	return Config{
		SwarmSize:     30,
		Iterations:    50,
		Inertia:       0.7,
		Cognitive:     1.5,
		Social:        1.5,
		Seed:          42,
		WarmStartFrac: 0.25,
		WarmStartStd:  0.1,
	}
}

var (
	ErrBadSwarm  = errors.New("pso: swarm size must be positive")
	ErrBadBudget = errors.New("pso: iteration budget must be positive")
	ErrBadBounds = errors.New("pso: bounds must be non-empty with lower < upper")
)

func (c Config) Validate() error {
	if c.SwarmSize <= 0 {
		return ErrBadSwarm
	}
	if c.Iterations <= 0 {
		return ErrBadBudget
	}
	if c.Inertia < 0 || c.Cognitive < 0 || c.Social < 0 {
		return fmt.Errorf("pso: inertia/cognitive/social must be non-negative")
	}
	return nil
}

// Result is the outcome of one tuning run. History holds the best cost
// after initialization and after every completed iteration.
type Result struct {
	BestGains  []float64
	BestCost   float64
	History    []float64
	Iterations int
	Tally      cost.Tally
}

type particle struct {
	pos []float64
	vel []float64

	bestPos  []float64
	bestCost float64
}

type Tuner struct {
	cfg    Config
	bounds smc.Bounds
	obj    Objective
}

func NewTuner(cfg Config, bounds smc.Bounds, obj Objective) (*Tuner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(bounds.Lower) == 0 || len(bounds.Lower) != len(bounds.Upper) {
		return nil, ErrBadBounds
	}
	for d := range bounds.Lower {
		if !(bounds.Lower[d] < bounds.Upper[d]) {
			return nil, fmt.Errorf("%w: dimension %d", ErrBadBounds, d)
		}
	}
	if cfg.WarmStart != nil && len(cfg.WarmStart) != len(bounds.Lower) {
		return nil, fmt.Errorf("pso: warm start has %d dims, bounds have %d",
			len(cfg.WarmStart), len(bounds.Lower))
	}
	if obj == nil {
		return nil, errors.New("pso: nil objective")
	}
	return &Tuner{cfg: cfg, bounds: bounds, obj: obj}, nil
}

// Run executes the swarm search. Cancellation is cooperative between
// iterations; a canceled run returns the best found so far together with
// the context error.
func (t *Tuner) Run(ctx context.Context) (*Result, error) {
	rng := rand.New(rand.NewSource(t.cfg.Seed))
	dims := len(t.bounds.Lower)

	swarm := make([]particle, t.cfg.SwarmSize)
	nWarm := 0
	if t.cfg.WarmStart != nil {
		nWarm = int(t.cfg.WarmStartFrac * float64(t.cfg.SwarmSize))
	}
	for i := range swarm {
		p := particle{
			pos:     make([]float64, dims),
			vel:     make([]float64, dims),
			bestPos: make([]float64, dims),
		}
		for d := 0; d < dims; d++ {
			lo, hi := t.bounds.Lower[d], t.bounds.Upper[d]
			span := hi - lo
			if i < nWarm {
				p.pos[d] = clip(t.cfg.WarmStart[d]+rng.NormFloat64()*t.cfg.WarmStartStd*span, lo, hi)
			} else {
				p.pos[d] = lo + rng.Float64()*span
			}
			p.vel[d] = (2*rng.Float64() - 1) * 0.1 * span
		}
		swarm[i] = p
	}

	result := &Result{
		BestCost: math.Inf(1),
		History:  make([]float64, 0, t.cfg.Iterations+1),
	}

	costs, tally := t.obj.EvaluateAll(ctx, positions(swarm))
	result.Tally.Candidates += tally.Candidates
	result.Tally.InvalidGains += tally.InvalidGains
	result.Tally.DivergedRuns += tally.DivergedRuns

	for i := range swarm {
		swarm[i].bestCost = costs[i]
		copy(swarm[i].bestPos, swarm[i].pos)
		if costs[i] < result.BestCost {
			result.BestCost = costs[i]
			result.BestGains = append([]float64(nil), swarm[i].pos...)
		}
	}
	if result.BestGains == nil {
		// Every candidate scored +Inf; anchor the social term somewhere.
		result.BestCost = costs[0]
		result.BestGains = append([]float64(nil), swarm[0].pos...)
	}
	result.History = append(result.History, result.BestCost)

	for iter := 0; iter < t.cfg.Iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		for i := range swarm {
			p := &swarm[i]
			for d := 0; d < dims; d++ {
				r1 := rng.Float64()
				r2 := rng.Float64()
				v := t.cfg.Inertia*p.vel[d] +
					t.cfg.Cognitive*r1*(p.bestPos[d]-p.pos[d]) +
					t.cfg.Social*r2*(result.BestGains[d]-p.pos[d])
				p.vel[d] = v

				x := p.pos[d] + v
				lo, hi := t.bounds.Lower[d], t.bounds.Upper[d]
				if x < lo {
					x = lo
					p.vel[d] = 0
				} else if x > hi {
					x = hi
					p.vel[d] = 0
				}
				p.pos[d] = x
			}
		}

		costs, tally = t.obj.EvaluateAll(ctx, positions(swarm))
		result.Tally.Candidates += tally.Candidates
		result.Tally.InvalidGains += tally.InvalidGains
		result.Tally.DivergedRuns += tally.DivergedRuns

		for i := range swarm {
			p := &swarm[i]
			if costs[i] < p.bestCost {
				p.bestCost = costs[i]
				copy(p.bestPos, p.pos)
			}
			if costs[i] < result.BestCost {
				result.BestCost = costs[i]
				result.BestGains = append([]float64(nil), p.pos...)
			}
		}

		result.Iterations = iter + 1
		result.History = append(result.History, result.BestCost)

		if t.stagnated(result.History) {
			break
		}
	}

	return result, nil
}

func (t *Tuner) stagnated(history []float64) bool {
	n := t.cfg.StagnationIters
	if n <= 0 || len(history) <= n {
		return false
	}
	improvement := history[len(history)-1-n] - history[len(history)-1]
	return improvement < t.cfg.StagnationTol
}

func positions(swarm []particle) [][]float64 {
	out := make([][]float64, len(swarm))
	for i := range swarm {
		out[i] = swarm[i].pos
	}
	return out
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
