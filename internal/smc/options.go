package smc

// Options holds runtime constants shared by the controller variants. Zero
// values are not meaningful; start from DefaultOptions and override.
type Options struct {
	// MaxForce clamps the actuator output (and super-twisting integral).
	MaxForce float64
	// BoundaryLayer is the half-width of the saturation layer around s=0.
	BoundaryLayer float64
	// Dt is the controller sample time for explicit gain/integral updates.
	Dt float64

	// InitialGain seeds the adapted switching gain (adaptive and hybrid).
	InitialGain float64
	// AdaptLeak pulls the adaptive gain back toward InitialGain inside the
	// dead zone, per second.
	AdaptLeak float64
	// DeadZone is the |s| band where adaptation stops growing.
	DeadZone float64
	// GainCeiling bounds any adapted gain.
	GainCeiling float64

	// TaperEps sets the self-taper scale tau = |s|/(|s|+TaperEps) used by
	// the hybrid variant.
	TaperEps float64
	// HybridRate1 and HybridRate2 are the hybrid adaptation rates for the
	// proportional and integral switching gains.
	HybridRate1 float64
	HybridRate2 float64

	// DenomFloor is the minimum magnitude of the surface input gain used in
	// the equivalent-control division.
	DenomFloor float64
}

func DefaultOptions() Options {
	return Options{
		MaxForce:      150,
		BoundaryLayer: 0.1,
		Dt:            0.01,
		InitialGain:   10,
		AdaptLeak:     1.0,
		DeadZone:      0.01,
		GainCeiling:   200,
		TaperEps:      0.05,
		HybridRate1:   5,
		HybridRate2:   0.5,
		DenomFloor:    1e-3,
	}
}
