package smc

import (
	"math"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
)

// Surface is a sliding surface over the pendulum angles and rates,
//
//	s = (k1*th1 + k2*th2 + lam1*w1 + lam2*w2) / (k1 + k2)
//
// The division by k1+k2 keeps the surface scale invariant under uniform
// gain scaling, so the boundary layer width means the same thing across the
// whole search box.
type Surface struct {
	k1, k2     float64
	lam1, lam2 float64
	norm       float64
}

func NewSurface(k1, k2, lam1, lam2 float64) Surface {
	return Surface{k1: k1, k2: k2, lam1: lam1, lam2: lam2, norm: k1 + k2}
}

func (sf Surface) Value(x dynamo.State) float64 {
	return (sf.k1*x[1] + sf.k2*x[2] + sf.lam1*x[4] + sf.lam2*x[5]) / sf.norm
}

// Drift is ds/dt along an unforced state derivative d.
func (sf Surface) Drift(d dynamo.State) float64 {
	return (sf.k1*d[1] + sf.k2*d[2] + sf.lam1*d[4] + sf.lam2*d[5]) / sf.norm
}

// Gain is the sensitivity of ds/dt to the input, given the input column of
// the dynamics (the derivative response to a unit force).
func (sf Surface) Gain(b dynamo.State) float64 {
	return (sf.lam1*b[4] + sf.lam2*b[5]) / sf.norm
}

// probe evaluates the drift derivative and the input column at x. The
// dynamics are affine in the force, so two evaluations recover both exactly.
func probe(sys dynamo.System, x dynamo.State) (drift, bcol dynamo.State, err error) {
	d0, err := sys.Derive(x, 0)
	if err != nil {
		return nil, nil, err
	}
	d1, err := sys.Derive(x, 1)
	if err != nil {
		return nil, nil, err
	}
	b := make(dynamo.State, len(d0))
	for i := range b {
		b[i] = d1[i] - d0[i]
	}
	return d0, b, nil
}

// saturate is the boundary-layer switching function, linear inside the
// layer and clipped to +-1 outside it.
func saturate(s, eps float64) float64 {
	v := s / eps
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// direction reduces the surface input gain to its sign, +1 or -1. The
// switching terms act through it so that a weak control channel never
// inflates the commanded force the way a full division would.
func direction(den float64) float64 {
	if den < 0 {
		return -1
	}
	return 1
}

// regularize floors the magnitude of a surface input gain while keeping its
// sign, so the equivalent-control division stays finite near singular
// configurations.
func regularize(den, floor float64) float64 {
	if math.Abs(den) >= floor {
		return den
	}
	if den < 0 {
		return -floor
	}
	return floor
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
