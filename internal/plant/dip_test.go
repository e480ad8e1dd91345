package plant

import (
	"errors"
	"math"
	"testing"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
)

func TestUprightEquilibrium(t *testing.T) {
	d := NewDefault()
	x := dynamo.State{0, 0, 0, 0, 0, 0}

	dx, err := d.Derive(x, 0)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	for i, v := range dx {
		if math.Abs(v) > 1e-12 {
			t.Errorf("upright equilibrium not stationary: dx[%d] = %g", i, v)
		}
	}
}

func TestGravityAcceleratesTilt(t *testing.T) {
	d := NewDefault()
	x := dynamo.State{0, 0.1, 0, 0, 0, 0}

	dx, err := d.Derive(x, 0)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	if dx[4] <= 0 {
		t.Errorf("expected tilted link to fall further, got alpha1 = %g", dx[4])
	}
}

func TestInputAffine(t *testing.T) {
	d := NewDefault()
	x := dynamo.State{0.1, 0.2, -0.1, 0.3, 0.5, -0.2}

	d0, err := d.Derive(x, 0)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	d1, err := d.Derive(x, 1)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	d2, err := d.Derive(x, 2)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}

	for i := range d0 {
		lhs := d2[i] - d0[i]
		rhs := 2 * (d1[i] - d0[i])
		if math.Abs(lhs-rhs) > 1e-9 {
			t.Errorf("dynamics not affine in u at index %d: %g vs %g", i, lhs, rhs)
		}
	}
}

func TestDimensionMismatch(t *testing.T) {
	d := NewDefault()
	_, err := d.Derive(dynamo.State{0, 0, 0}, 0)
	if !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
}

func TestSingularMassMatrix(t *testing.T) {
	p := DefaultParams()
	p.Mass1 = 0
	p.Mass2 = 0
	d := New(p)

	_, err := d.Derive(dynamo.State{0, 0.1, 0.1, 0, 0, 0}, 0)
	if !errors.Is(err, dynamo.ErrSingular) {
		t.Errorf("expected singular mass matrix, got %v", err)
	}
}

func TestEnergyConservedWithoutFriction(t *testing.T) {
	p := DefaultParams()
	p.FrictCart = 0
	p.FrictJnt1 = 0
	p.FrictJnt2 = 0
	d := New(p)

	x := dynamo.State{0, 0.5, 0.2, 0, 0, 0}.Clone()
	e0 := d.Energy(x)
	if e0 == 0 {
		t.Fatal("expected nonzero reference energy")
	}

	// Unforced RK4 rollout at a fine step.
	dt := 0.001
	k := make(dynamo.State, 6)
	for step := 0; step < 1000; step++ {
		k1, err := d.Derive(x, 0)
		if err != nil {
			t.Fatalf("derive failed at step %d: %v", step, err)
		}
		for i := range k {
			k[i] = x[i] + dt*0.5*k1[i]
		}
		k2, _ := d.Derive(k, 0)
		for i := range k {
			k[i] = x[i] + dt*0.5*k2[i]
		}
		k3, _ := d.Derive(k, 0)
		for i := range k {
			k[i] = x[i] + dt*k3[i]
		}
		k4, _ := d.Derive(k, 0)
		for i := range x {
			x[i] += dt / 6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
		}
	}

	drift := math.Abs(d.Energy(x)-e0) / math.Abs(e0)
	if drift > 1e-3 {
		t.Errorf("energy drift %g exceeds tolerance", drift)
	}
}
