package smc

import (
	"math"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
)

// hybrid is a model-free adaptive super-twisting controller. Both switching
// gains are grown online, with the growth self-tapered by
//
//	tau(s) = |s| / (|s| + eps_t)
//
// so adaptation shuts itself off superlinearly as the surface collapses.
// Gains: [c1,lam1,c2,lam2] (surface shape only; the switching gains adapt).
type hybrid struct {
	sf   Surface
	opts Options

	k1, k2 float64
	z      float64
}

func newHybrid(gains []float64, opts Options) *hybrid {
	h := &hybrid{
		sf:   NewSurface(gains[0], gains[2], gains[1], gains[3]),
		opts: opts,
	}
	h.Reset()
	return h
}

func (h *hybrid) Compute(x dynamo.State, _ float64) dynamo.Output {
	s := h.sf.Value(x)
	if !finite(s) {
		return dynamo.Output{Surface: s, Diag: dynamo.Diagnostics{NonFinite: true}}
	}

	// Adapted state outside its safety envelope means the adaptation ran
	// away; restart it rather than command a runaway force.
	if h.k1 > h.opts.GainCeiling || h.k2 > h.opts.GainCeiling || math.Abs(h.z) > h.opts.MaxForce {
		h.Reset()
		return dynamo.Output{Surface: s, Diag: dynamo.Diagnostics{EmergencyReset: true}}
	}

	abs := math.Abs(s)
	u := -(h.k1*math.Sqrt(abs)*sign(s) + h.z)
	if !finite(u) {
		return dynamo.Output{Surface: s, Diag: dynamo.Diagnostics{NonFinite: true}}
	}

	// Adapt only after a healthy evaluation.
	taper := abs / (abs + h.opts.TaperEps)
	h.k1 += h.opts.HybridRate1 * taper * abs * h.opts.Dt
	h.k2 += h.opts.HybridRate2 * taper * abs * h.opts.Dt
	h.z = clamp(h.z+h.k2*sign(s)*h.opts.Dt, h.opts.MaxForce)

	out := dynamo.Output{Force: clamp(u, h.opts.MaxForce), Surface: s}
	out.Diag.Saturated = out.Force != u
	return out
}

func (h *hybrid) Reset() {
	h.k1 = h.opts.InitialGain
	h.k2 = h.opts.InitialGain / 2
	h.z = 0
}

// AdaptedGains exposes the current switching gains for diagnostics.
func (h *hybrid) AdaptedGains() (k1, k2 float64) { return h.k1, h.k2 }
