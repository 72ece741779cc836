package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a parameter value outside its domain.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrDiverged indicates the field picked up NaN or Inf values during a step.
	ErrDiverged = errors.New("dynamo: simulation diverged (NaN or Inf detected)")

	// ErrDimensionMismatch indicates two fields of different grid sizes were combined.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between fields")
)

// ParamError reports which parameter was rejected and why.
type ParamError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("dynamo: invalid parameter %s=%g: %s", e.Name, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// SimulationError wraps an error with the step at which it happened.
type SimulationError struct {
	Step    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Wrapped.Error())
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
