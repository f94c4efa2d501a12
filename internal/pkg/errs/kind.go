package errs

import (
	"context"
	"errors"
)

// Kind names an error category for reports, metrics and transport mapping.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindConfiguration Kind = "configuration"
	KindCapacity      Kind = "capacity"
	KindCalculation   Kind = "calculation"
	KindNotFound      Kind = "not_found"
	KindInvalidValue  Kind = "invalid_value"
	KindCanceled      Kind = "canceled"
	KindInternal      Kind = "internal"
)

// KindOf classifies err by the first matching sentinel. Pricing errors are
// checked before value errors, so a CalculationError caused by a
// ValueIsOutOfRangeError is still a calculation failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrCapacity):
		return KindCapacity
	case errors.Is(err, ErrCalculation):
		return KindCalculation
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrValueIsRequired), errors.Is(err, ErrValueIsInvalid), errors.Is(err, ErrValueIsOutOfRange):
		return KindInvalidValue
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindInternal
	}
}
