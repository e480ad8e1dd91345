package smc

import (
	"errors"
	"fmt"
)

// Type identifies a controller variant. The set is closed: adding a variant
// means adding a constant here and an entry in the registry table.
type Type int

const (
	Classical Type = iota
	Adaptive
	SuperTwisting
	Hybrid
)

var typeNames = map[Type]string{
	Classical:     "classical",
	Adaptive:      "adaptive",
	SuperTwisting: "sta",
	Hybrid:        "hybrid",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a config/CLI name to a controller type.
func ParseType(name string) (Type, error) {
	switch name {
	case "classical":
		return Classical, nil
	case "adaptive":
		return Adaptive, nil
	case "sta", "super_twisting", "supertwisting":
		return SuperTwisting, nil
	case "hybrid":
		return Hybrid, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

var (
	// ErrUnknownType indicates a controller type outside the closed set.
	ErrUnknownType = errors.New("smc: unknown controller type")

	// ErrGainCount indicates a gain vector of the wrong length.
	ErrGainCount = errors.New("smc: wrong number of gains")

	// ErrGainPositive indicates a gain that is not strictly positive.
	ErrGainPositive = errors.New("smc: gains must be strictly positive")

	// ErrGainOrdering indicates super-twisting gains with K1 <= K2.
	ErrGainOrdering = errors.New("smc: super-twisting requires K1 > K2")

	// ErrNilModel indicates a registry built without a dynamics model.
	ErrNilModel = errors.New("smc: nil dynamics model")
)
