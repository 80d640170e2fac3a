package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a non-positive step, horizon or gravity, or a
	// non-finite initial condition.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrUnknownMethod indicates an integrator name that is not registered.
	ErrUnknownMethod = errors.New("dynamo: unknown integration method")
)

// ParamError wraps ErrInvalidParameter with the offending field.
type ParamError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%g %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}
