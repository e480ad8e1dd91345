package smc

import (
	"math"
	"testing"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
)

func newTestHybrid(t *testing.T, opts Options) *hybrid {
	t.Helper()
	reg, err := NewRegistry(&linearSystem{})
	if err != nil {
		t.Fatal(err)
	}
	ctrl, err := reg.New(Hybrid, []float64{1, 1, 1, 1}, opts)
	if err != nil {
		t.Fatal(err)
	}
	return ctrl.(*hybrid)
}

func TestHybridAdaptationTapersSuperlinearly(t *testing.T) {
	opts := DefaultOptions()

	increment := func(s float64) float64 {
		h := newTestHybrid(t, opts)
		k0, _ := h.AdaptedGains()
		// Surface (th1 + th2 + w1 + w2)/2 = s with both angles at s.
		h.Compute(dynamo.State{0, s, s, 0, 0, 0}, 0)
		k1, _ := h.AdaptedGains()
		return k1 - k0
	}

	small := increment(0.01)
	big := increment(0.1)
	if small <= 0 || big <= 0 {
		t.Fatalf("expected positive adaptation increments, got %g and %g", small, big)
	}

	// A ten-fold surface needs more than a ten-fold increment: the taper
	// suppresses adaptation near the surface superlinearly.
	if big <= 10*small {
		t.Errorf("adaptation not superlinear: inc(0.1)=%g, inc(0.01)=%g", big, small)
	}
}

func TestHybridEmergencyReset(t *testing.T) {
	opts := DefaultOptions()
	h := newTestHybrid(t, opts)

	h.k1 = opts.GainCeiling * 2
	h.z = 3

	out := h.Compute(dynamo.State{0, 0.1, 0.1, 0, 0, 0}, 0)
	if !out.Diag.EmergencyReset {
		t.Fatal("expected emergency reset flag")
	}
	if out.Force != 0 {
		t.Errorf("expected zero force during reset, got %g", out.Force)
	}

	k1, k2 := h.AdaptedGains()
	if k1 != opts.InitialGain || k2 != opts.InitialGain/2 || h.z != 0 {
		t.Errorf("adaptation state not restored: k1=%g k2=%g z=%g", k1, k2, h.z)
	}
}

func TestHybridNaNStateYieldsZero(t *testing.T) {
	h := newTestHybrid(t, DefaultOptions())

	out := h.Compute(dynamo.State{0, math.NaN(), 0, 0, 0, 0}, 0)
	if out.Force != 0 || !out.Diag.NonFinite {
		t.Errorf("expected zero force with non-finite flag, got %+v", out)
	}
}

func TestHybridForceWithinLimit(t *testing.T) {
	opts := DefaultOptions()
	h := newTestHybrid(t, opts)

	states := []dynamo.State{
		{0, 0.01, 0, 0, 0, 0},
		{0, 0.3, 0.2, 0, 0.5, 0.1},
		{1, -2, 3, -1, 4, -5},
		{0, 50, 50, 0, 80, 80},
	}
	for step := 0; step < 500; step++ {
		out := h.Compute(states[step%len(states)], float64(step)*opts.Dt)
		if math.Abs(out.Force) > opts.MaxForce {
			t.Fatalf("force %g exceeds limit at step %d", out.Force, step)
		}
	}
}
