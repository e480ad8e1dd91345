package cost

import (
	"math"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/sim"
)

// Weights scale the quadratic terms of the trajectory cost:
// state error, control effort, control slew and sliding surface.
type Weights struct {
	Error       float64 `yaml:"error"`
	Control     float64 `yaml:"control"`
	ControlRate float64 `yaml:"control_rate"`
	Surface     float64 `yaml:"surface"`
}

func DefaultWeights() Weights {
	return Weights{
		Error:       1.0,
		Control:     0.01,
		ControlRate: 0.001,
		Surface:     0.1,
	}
}

// DefaultPenalty is charged to unstable, failed or non-finite rollouts so
// they always rank below any stable trajectory.
const DefaultPenalty = 1e6

type Evaluator struct {
	W       Weights
	Penalty float64
}

func NewEvaluator(w Weights, penalty float64) *Evaluator {
	if penalty <= 0 {
		penalty = DefaultPenalty
	}
	return &Evaluator{W: w, Penalty: penalty}
}

// Trajectory reduces one rollout to a scalar,
//
//	sum dt * (wE*|x|^2 + wU*u^2 + wDU*(du/dt)^2 + wS*s^2)
//
// with the instability penalty substituted for diverged, failed or
// non-finite runs. The error term covers the whole state deviation, cart
// included, so a controller that balances the links by running the cart
// away still pays for it.
func (e *Evaluator) Trajectory(res *sim.Result, dt float64) float64 {
	if res == nil || res.Err != nil || res.Diverged || res.NonFinite > 0 {
		return e.Penalty
	}
	if len(res.Controls) == 0 {
		return 0
	}

	sum := 0.0
	uPrev := res.Controls[0]
	for i := 0; i < len(res.Controls); i++ {
		x := res.States[i]
		u := res.Controls[i]
		s := res.Surfaces[i]

		errSq := 0.0
		for _, v := range x {
			errSq += v * v
		}

		du := (u - uPrev) / dt
		uPrev = u

		sum += dt * (e.W.Error*errSq +
			e.W.Control*u*u +
			e.W.ControlRate*du*du +
			e.W.Surface*s*s)
	}

	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		return e.Penalty
	}
	return sum
}
