package errs

import (
	"errors"
	"fmt"
)

// ErrCalculation is the sentinel for unexpected arithmetic or lookup failures.
var ErrCalculation = errors.New("calculation failed")

// CalculationError wraps an unexpected failure during a pricing stage.
type CalculationError struct {
	Scope Scope
	Stage string
	Cause error
}

// NewCalculationError creates a CalculationError for the named stage.
func NewCalculationError(scope Scope, stage string, cause error) *CalculationError {
	return &CalculationError{Scope: scope, Stage: stage, Cause: cause}
}

func (e *CalculationError) Error() string {
	msg := withScope(fmt.Sprintf("%s: %s", ErrCalculation, e.Stage), e.Scope)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *CalculationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCalculation}
	}
	return []error{ErrCalculation, e.Cause}
}
