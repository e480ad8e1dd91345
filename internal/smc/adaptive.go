package smc

import "github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"

// adaptive replaces the fixed switching gain with one grown online:
// Kdot = gamma*|s| outside the dead zone, a leak back toward the initial
// gain inside it. Gains: [k1,k2,lam1,lam2,gamma].
type adaptive struct {
	model dynamo.System
	sf    Surface
	gamma float64
	opts  Options

	kHat float64
}

func newAdaptive(model dynamo.System, gains []float64, opts Options) *adaptive {
	return &adaptive{
		model: model,
		sf:    NewSurface(gains[0], gains[1], gains[2], gains[3]),
		gamma: gains[4],
		opts:  opts,
		kHat:  opts.InitialGain,
	}
}

func (a *adaptive) Compute(x dynamo.State, _ float64) dynamo.Output {
	s := a.sf.Value(x)

	drift, bcol, err := probe(a.model, x)
	if err != nil || !drift.IsValid() || !bcol.IsValid() {
		return dynamo.Output{Surface: s, Diag: dynamo.Diagnostics{NonFinite: true}}
	}

	den := regularize(a.sf.Gain(bcol), a.opts.DenomFloor)
	uEq := -a.sf.Drift(drift) / den
	u := uEq - a.kHat*saturate(s, a.opts.BoundaryLayer)*direction(den)

	if !finite(s, u) {
		return dynamo.Output{Surface: s, Diag: dynamo.Diagnostics{NonFinite: true}}
	}

	// Gain update after a healthy evaluation, so a bad step never moves the
	// adapted state.
	abs := s
	if abs < 0 {
		abs = -abs
	}
	if abs > a.opts.DeadZone {
		a.kHat += a.gamma * abs * a.opts.Dt
	} else {
		a.kHat += a.opts.AdaptLeak * (a.opts.InitialGain - a.kHat) * a.opts.Dt
	}
	if a.kHat > a.opts.GainCeiling {
		a.kHat = a.opts.GainCeiling
	}
	if a.kHat < 0 {
		a.kHat = 0
	}

	out := dynamo.Output{Force: clamp(u, a.opts.MaxForce), Surface: s}
	out.Diag.Saturated = out.Force != u
	return out
}

func (a *adaptive) Reset() {
	a.kHat = a.opts.InitialGain
}

// SwitchingGain exposes the current adapted gain for diagnostics.
func (a *adaptive) SwitchingGain() float64 { return a.kHat }
