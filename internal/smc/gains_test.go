package smc

import (
	"errors"
	"math"
	"testing"
)

func TestValidateGains(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		gains   []float64
		wantErr error
	}{
		{"classical ok", Classical, []float64{20, 15, 12, 8, 35, 5}, nil},
		{"adaptive ok", Adaptive, []float64{20, 15, 12, 8, 4}, nil},
		{"sta ok", SuperTwisting, []float64{25, 10, 20, 15, 12, 8}, nil},
		{"hybrid ok", Hybrid, []float64{18, 10, 12, 6}, nil},

		{"classical short", Classical, []float64{20, 15, 12, 8, 35}, ErrGainCount},
		{"classical long", Classical, []float64{20, 15, 12, 8, 35, 5, 1}, ErrGainCount},
		{"hybrid wrong count", Hybrid, []float64{18, 10, 12, 6, 1}, ErrGainCount},

		{"zero gain", Classical, []float64{20, 0, 12, 8, 35, 5}, ErrGainPositive},
		{"negative gain", Adaptive, []float64{20, 15, -12, 8, 4}, ErrGainPositive},
		{"nan gain", Classical, []float64{20, math.NaN(), 12, 8, 35, 5}, ErrGainPositive},
		{"inf gain", Classical, []float64{20, math.Inf(1), 12, 8, 35, 5}, ErrGainPositive},

		{"sta K1 below K2", SuperTwisting, []float64{5, 10, 1, 1, 1, 1}, ErrGainOrdering},
		{"sta K1 equals K2", SuperTwisting, []float64{10, 10, 1, 1, 1, 1}, ErrGainOrdering},

		{"unknown type", Type(99), []float64{1}, ErrUnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGains(tt.typ, tt.gains)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected valid gains, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGainCounts(t *testing.T) {
	want := map[Type]int{Classical: 6, Adaptive: 5, SuperTwisting: 6, Hybrid: 4}
	for typ, n := range want {
		if got := GainCount(typ); got != n {
			t.Errorf("%s: expected %d gains, got %d", typ, n, got)
		}
	}
}

func TestBoundsMatchGainCounts(t *testing.T) {
	for _, typ := range Types() {
		b, err := BoundsFor(typ)
		if err != nil {
			t.Fatalf("%s: %v", typ, err)
		}
		if len(b.Lower) != GainCount(typ) || len(b.Upper) != GainCount(typ) {
			t.Errorf("%s: bounds dims %d/%d, want %d", typ, len(b.Lower), len(b.Upper), GainCount(typ))
		}
		for d := range b.Lower {
			if b.Lower[d] >= b.Upper[d] {
				t.Errorf("%s: empty range at dim %d", typ, d)
			}
			if b.Lower[d] <= 0 {
				t.Errorf("%s: non-positive lower bound at dim %d", typ, d)
			}
		}
	}
}
