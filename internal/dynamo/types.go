package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System is a forced dynamical system driven by a scalar actuator input.
// Derive returns the time derivative of x, or an error when the dynamics
// cannot be evaluated (e.g. a singular mass matrix).
type System interface {
	Derive(x State, u float64) (State, error)
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(sys System, x State, u float64, dt float64) (State, error)
}

// Diagnostics carries per-step controller health flags.
type Diagnostics struct {
	NonFinite      bool
	Saturated      bool
	EmergencyReset bool
}

// Output is the result of one controller evaluation.
type Output struct {
	Force   float64
	Surface float64
	Diag    Diagnostics
}

// Controller computes an actuator force from the current state. Compute may
// mutate internal controller state (adapted gains, integrator terms), so a
// controller instance must not be shared across concurrent rollouts. Reset
// restores the initial internal state.
type Controller interface {
	Compute(x State, t float64) Output
	Reset()
}
