package errs

import (
	"errors"
	"fmt"
)

// ErrCapacity is the sentinel for shipments a carrier cannot serve.
var ErrCapacity = errors.New("carrier capacity exceeded")

// CapacityError reports that a carrier cannot serve the requested weight,
// dimensions or zone.
type CapacityError struct {
	Scope  Scope
	Reason string
}

// NewCapacityError creates a CapacityError.
func NewCapacityError(scope Scope, reason string) *CapacityError {
	return &CapacityError{Scope: scope, Reason: reason}
}

func (e *CapacityError) Error() string {
	return withScope(fmt.Sprintf("%s: %s", ErrCapacity, e.Reason), e.Scope)
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacity
}
