package smc

import (
	"fmt"
	"math"
)

// Gain vector layouts per variant:
//
//	classical      [k1, k2, lam1, lam2, K, kd]
//	adaptive       [k1, k2, lam1, lam2, gamma]
//	super-twisting [K1, K2, k1, k2, lam1, lam2]
//	hybrid         [c1, lam1, c2, lam2]
var gainCounts = map[Type]int{
	Classical:     6,
	Adaptive:      5,
	SuperTwisting: 6,
	Hybrid:        4,
}

// Bounds is a per-dimension search box for a gain vector.
type Bounds struct {
	Lower []float64
	Upper []float64
}

var gainBounds = map[Type]Bounds{
	Classical: {
		Lower: []float64{1, 1, 0.5, 0.5, 5, 0.1},
		Upper: []float64{50, 50, 30, 30, 150, 20},
	},
	Adaptive: {
		Lower: []float64{1, 1, 0.5, 0.5, 0.1},
		Upper: []float64{50, 50, 30, 30, 20},
	},
	SuperTwisting: {
		Lower: []float64{2, 1, 1, 1, 0.5, 0.5},
		Upper: []float64{100, 50, 50, 50, 30, 30},
	},
	Hybrid: {
		Lower: []float64{1, 0.5, 1, 0.5},
		Upper: []float64{50, 30, 50, 30},
	},
}

// ValidateGains checks length, strict positivity and finiteness of a gain
// vector, plus the K1 > K2 stability ordering for super-twisting.
func ValidateGains(t Type, gains []float64) error {
	want, ok := gainCounts[t]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownType, t)
	}
	if len(gains) != want {
		return fmt.Errorf("%w: %s wants %d, got %d", ErrGainCount, t, want, len(gains))
	}
	for i, g := range gains {
		if math.IsNaN(g) || math.IsInf(g, 0) || g <= 0 {
			return fmt.Errorf("%w: gain %d = %v", ErrGainPositive, i, g)
		}
	}
	if t == SuperTwisting && gains[0] <= gains[1] {
		return fmt.Errorf("%w: K1=%v K2=%v", ErrGainOrdering, gains[0], gains[1])
	}
	return nil
}
