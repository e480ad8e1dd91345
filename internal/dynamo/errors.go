package dynamo

import "errors"

// Domain errors for plant and simulation operations.
var (
	// ErrSingular indicates a mass matrix too close to singular to invert.
	ErrSingular = errors.New("dynamo: mass matrix is singular")

	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrUnstable indicates the simulation became numerically unstable.
	ErrUnstable = errors.New("dynamo: simulation unstable (state diverged)")

	// ErrTimeout indicates a rollout exceeded its wall-clock budget.
	ErrTimeout = errors.New("dynamo: rollout exceeded wall-clock budget")
)

// StepError wraps an error with simulation context.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return e.Wrapped.Error()
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
