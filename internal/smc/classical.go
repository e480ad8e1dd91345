package smc

import "github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"

// classical is a boundary-layer sliding-mode controller with model-based
// equivalent control:
//
//	u = u_eq - (K*sat(s/eps) + kd*s) * sign(ds/du)
//
// where u_eq cancels the unforced surface drift. The switching term takes
// only the sign of the control channel, not its magnitude, so the command
// stays within actuator range when the channel gain is small.
// Gains: [k1,k2,lam1,lam2,K,kd].
type classical struct {
	model dynamo.System
	sf    Surface
	kSw   float64
	kd    float64
	opts  Options
}

func newClassical(model dynamo.System, gains []float64, opts Options) *classical {
	return &classical{
		model: model,
		sf:    NewSurface(gains[0], gains[1], gains[2], gains[3]),
		kSw:   gains[4],
		kd:    gains[5],
		opts:  opts,
	}
}

func (c *classical) Compute(x dynamo.State, _ float64) dynamo.Output {
	s := c.sf.Value(x)

	drift, bcol, err := probe(c.model, x)
	if err != nil || !drift.IsValid() || !bcol.IsValid() {
		return dynamo.Output{Surface: s, Diag: dynamo.Diagnostics{NonFinite: true}}
	}

	den := regularize(c.sf.Gain(bcol), c.opts.DenomFloor)
	uEq := -c.sf.Drift(drift) / den
	u := uEq - (c.kSw*saturate(s, c.opts.BoundaryLayer)+c.kd*s)*direction(den)

	if !finite(s, u) {
		return dynamo.Output{Surface: s, Diag: dynamo.Diagnostics{NonFinite: true}}
	}

	out := dynamo.Output{Force: clamp(u, c.opts.MaxForce), Surface: s}
	out.Diag.Saturated = out.Force != u
	return out
}

func (c *classical) Reset() {}
