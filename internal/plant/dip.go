package plant

import (
	"math"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
)

// Params holds the physical parameters of a double inverted pendulum on a
// cart. Both links are modeled as uniform rods (center of mass at L/2,
// inertia m*L^2/12 about the center).
type Params struct {
	CartMass  float64 // m0
	Mass1     float64 // first link mass
	Mass2     float64 // second link mass
	Length1   float64 // first link length
	Length2   float64 // second link length
	Gravity   float64
	FrictCart float64 // viscous cart friction
	FrictJnt1 float64 // viscous friction at the cart-link joint
	FrictJnt2 float64 // viscous friction at the link-link joint
}

func DefaultParams() Params {
	return Params{
		CartMass:  1.5,
		Mass1:     1.2,
		Mass2:     0.5,
		Length1:   1.0,
		Length2:   0.45,
		Gravity:   9.81,
		FrictCart: 0.2,
		FrictJnt1: 0.005,
		FrictJnt2: 0.004,
	}
}

// DoublePendulum is a serial double pendulum mounted on a cart, actuated by
// a horizontal force on the cart only.
// State: [x, theta1, theta2, xdot, omega1, omega2] in joint coordinates:
// theta1 is the first link's angle from upright, theta2 the second link's
// angle relative to the first link (zero when the links are aligned).
type DoublePendulum struct {
	p Params

	// Precomputed inertia terms, see recompute.
	mt  float64 // total mass
	h1  float64 // m1*l1 + m2*L1
	h2  float64 // m2*l2
	j1  float64 // m1*l1^2 + m2*L1^2 + I1
	j2  float64 // m2*l2^2 + I2
	a23 float64 // m2*L1*l2
}

const singularEps = 1e-12

func New(p Params) *DoublePendulum {
	d := &DoublePendulum{p: p}
	d.recompute()
	return d
}

func NewDefault() *DoublePendulum {
	return New(DefaultParams())
}

func (d *DoublePendulum) recompute() {
	l1 := d.p.Length1 / 2
	l2 := d.p.Length2 / 2
	i1 := d.p.Mass1 * d.p.Length1 * d.p.Length1 / 12
	i2 := d.p.Mass2 * d.p.Length2 * d.p.Length2 / 12

	d.mt = d.p.CartMass + d.p.Mass1 + d.p.Mass2
	d.h1 = d.p.Mass1*l1 + d.p.Mass2*d.p.Length1
	d.h2 = d.p.Mass2 * l2
	d.j1 = d.p.Mass1*l1*l1 + d.p.Mass2*d.p.Length1*d.p.Length1 + i1
	d.j2 = d.p.Mass2*l2*l2 + i2
	d.a23 = d.p.Mass2 * d.p.Length1 * l2
}

func (d *DoublePendulum) StateDim() int { return 6 }

func (d *DoublePendulum) Params() Params { return d.p }

func (d *DoublePendulum) Derive(x dynamo.State, u float64) (dynamo.State, error) {
	if len(x) != 6 {
		return nil, dynamo.ErrDimensionMismatch
	}

	// The equations of motion are formed in absolute link angles; the joint
	// state maps onto them by a1 = theta1, a2 = theta1 + theta2.
	a1, a2 := x[1], x[1]+x[2]
	vx, w1, w2 := x[3], x[4], x[4]+x[5]

	s1, c1 := math.Sincos(a1)
	s2, c2 := math.Sincos(a2)
	s12, c12 := math.Sincos(a1 - a2)

	// Symmetric mass matrix.
	m11 := d.mt
	m12 := d.h1 * c1
	m13 := d.h2 * c2
	m22 := d.j1
	m23 := d.a23 * c12
	m33 := d.j2

	// Generalized forces: applied input, centrifugal and gravity terms,
	// viscous friction.
	b1 := u + d.h1*w1*w1*s1 + d.h2*w2*w2*s2 - d.p.FrictCart*vx
	b2 := d.h1*d.p.Gravity*s1 - d.a23*s12*w2*w2 - d.p.FrictJnt1*w1
	b3 := d.h2*d.p.Gravity*s2 + d.a23*s12*w1*w1 - d.p.FrictJnt2*w2

	// Cofactor inversion of the symmetric 3x3 mass matrix.
	co11 := m22*m33 - m23*m23
	co12 := m13*m23 - m12*m33
	co13 := m12*m23 - m13*m22
	det := m11*co11 + m12*co12 + m13*co13
	if math.Abs(det) < singularEps {
		return nil, dynamo.ErrSingular
	}

	co22 := m11*m33 - m13*m13
	co23 := m12*m13 - m11*m23
	co33 := m11*m22 - m12*m12

	ax := (co11*b1 + co12*b2 + co13*b3) / det
	aa1 := (co12*b1 + co22*b2 + co23*b3) / det
	aa2 := (co13*b1 + co23*b2 + co33*b3) / det

	// Back to joint rates: the second joint acceleration is the difference
	// of the absolute link accelerations.
	return dynamo.State{vx, x[4], x[5], ax, aa1, aa2 - aa1}, nil
}

// Energy returns the total mechanical energy with the upright configuration
// at zero velocity taken as the reference.
func (d *DoublePendulum) Energy(x dynamo.State) float64 {
	if len(x) != 6 {
		return math.NaN()
	}
	a1, a2 := x[1], x[1]+x[2]
	vx, w1, w2 := x[3], x[4], x[4]+x[5]

	c1 := math.Cos(a1)
	c2 := math.Cos(a2)
	c12 := math.Cos(a1 - a2)

	ke := 0.5*d.mt*vx*vx +
		0.5*d.j1*w1*w1 +
		0.5*d.j2*w2*w2 +
		d.h1*c1*vx*w1 +
		d.h2*c2*vx*w2 +
		d.a23*c12*w1*w2

	pe := d.p.Gravity * (d.h1*(c1-1) + d.h2*(c2-1))

	return ke + pe
}
