package smc

import (
	"math"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
)

// superTwisting is a second-order sliding-mode design. The switching term
//
//	K1*sqrt(|s|)*sign(s) + z,  zdot = K2*sign(s)
//
// is continuous in s, so chattering stays inside the integrator rather than
// the actuator. K1 > K2 is enforced by the gain validator.
// Gains: [K1,K2,k1,k2,lam1,lam2].
type superTwisting struct {
	model  dynamo.System
	sf     Surface
	k1, k2 float64
	opts   Options

	z float64
}

func newSuperTwisting(model dynamo.System, gains []float64, opts Options) *superTwisting {
	return &superTwisting{
		model: model,
		sf:    NewSurface(gains[2], gains[3], gains[4], gains[5]),
		k1:    gains[0],
		k2:    gains[1],
		opts:  opts,
	}
}

func (st *superTwisting) Compute(x dynamo.State, _ float64) dynamo.Output {
	s := st.sf.Value(x)

	drift, bcol, err := probe(st.model, x)
	if err != nil || !drift.IsValid() || !bcol.IsValid() {
		return dynamo.Output{Surface: s, Diag: dynamo.Diagnostics{NonFinite: true}}
	}

	den := regularize(st.sf.Gain(bcol), st.opts.DenomFloor)
	uEq := -st.sf.Drift(drift) / den
	sw := st.k1*math.Sqrt(math.Abs(s))*sign(s) + st.z
	u := uEq - sw*direction(den)

	if !finite(s, u) {
		return dynamo.Output{Surface: s, Diag: dynamo.Diagnostics{NonFinite: true}}
	}

	// Forward-integrate the switching integral only on healthy steps.
	st.z = clamp(st.z+st.k2*sign(s)*st.opts.Dt, st.opts.MaxForce)

	out := dynamo.Output{Force: clamp(u, st.opts.MaxForce), Surface: s}
	out.Diag.Saturated = out.Force != u
	return out
}

func (st *superTwisting) Reset() {
	st.z = 0
}
