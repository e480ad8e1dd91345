package smc

import (
	"fmt"

	"github.com/theSadeQ/dip-smc-pso-sub005/internal/dynamo"
)

// Registry builds controllers from the closed variant table, sharing one
// dynamics model across the model-based designs. The model must be safe for
// concurrent reads; built controllers are not.
type Registry struct {
	model dynamo.System
}

func NewRegistry(model dynamo.System) (*Registry, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	return &Registry{model: model}, nil
}

// New validates the gain vector and builds a fresh controller. The gains
// are copied, so the caller may reuse its slice.
func (r *Registry) New(t Type, gains []float64, opts Options) (dynamo.Controller, error) {
	if err := ValidateGains(t, gains); err != nil {
		return nil, err
	}
	g := append([]float64(nil), gains...)
	switch t {
	case Classical:
		return newClassical(r.model, g, opts), nil
	case Adaptive:
		return newAdaptive(r.model, g, opts), nil
	case SuperTwisting:
		return newSuperTwisting(r.model, g, opts), nil
	case Hybrid:
		return newHybrid(g, opts), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, t)
	}
}

// NewController builds a one-off controller without keeping a registry.
func NewController(model dynamo.System, t Type, gains []float64, opts Options) (dynamo.Controller, error) {
	reg, err := NewRegistry(model)
	if err != nil {
		return nil, err
	}
	return reg.New(t, gains, opts)
}

// GainCount reports the gain vector length for a variant, 0 if unknown.
func GainCount(t Type) int {
	return gainCounts[t]
}

// BoundsFor returns a copy of the default search box for a variant.
func BoundsFor(t Type) (Bounds, error) {
	b, ok := gainBounds[t]
	if !ok {
		return Bounds{}, fmt.Errorf("%w: %v", ErrUnknownType, t)
	}
	return Bounds{
		Lower: append([]float64(nil), b.Lower...),
		Upper: append([]float64(nil), b.Upper...),
	}, nil
}

// Types lists the variants in declaration order.
func Types() []Type {
	return []Type{Classical, Adaptive, SuperTwisting, Hybrid}
}
