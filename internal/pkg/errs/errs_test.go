package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("carrier", "dpd")

		assert.Equal(t, "carrier", err.ParamName)
		assert.Equal(t, "dpd", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: carrier dpd", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("customer", "c-1", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: customer c-1 (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("rule", 456)
		assert.Equal(t, "object not found: rule 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("currency")

		assert.Equal(t, "currency", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: currency", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("currency", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: currency (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("percentage", 150, 0, 100)

		assert.Equal(t, "percentage", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is out of range: percentage is 150, min value is 0, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is out of range: score is -5, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("zoneCode")

		assert.Equal(t, "zoneCode", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: zoneCode", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("zoneCode", cause)

		assert.Equal(t, "value is required: zoneCode (cause: missing required field)", err.Error())
	})
}

func TestPricingErrors(t *testing.T) {
	scope := errs.Scope{Carrier: "dpd", Zone: "local", Weight: "2.5", RuleID: "wr-1"}

	t.Run("configuration error renders scope", func(t *testing.T) {
		err := errs.NewConfigurationError(scope, "no weight rule matches")

		assert.Equal(t, "configuration error: no weight rule matches [carrier=dpd zone=local weight=2.5 rule=wr-1]", err.Error())
		require.ErrorIs(t, err, errs.ErrConfiguration)
	})

	t.Run("configuration error without scope", func(t *testing.T) {
		err := errs.NewConfigurationErrorWithCause(errs.Scope{}, "snapshot missing", errors.New("eof"))

		assert.Equal(t, "configuration error: snapshot missing (cause: eof)", err.Error())
	})

	t.Run("capacity error", func(t *testing.T) {
		err := errs.NewCapacityError(errs.Scope{Carrier: "inpost"}, "weight 40 kg exceeds limit 25 kg")

		assert.Equal(t, "carrier capacity exceeded: weight 40 kg exceeds limit 25 kg [carrier=inpost]", err.Error())
		require.ErrorIs(t, err, errs.ErrCapacity)
	})

	t.Run("calculation error exposes cause", func(t *testing.T) {
		cause := errors.New("division by zero")
		err := errs.NewCalculationError(scope, "seasonal", cause)

		require.ErrorIs(t, err, errs.ErrCalculation)
		require.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "calculation failed: seasonal")
	})

	t.Run("validation error lists every violation", func(t *testing.T) {
		err := errs.NewValidationError(
			errs.Violation{RuleID: "r1", Field: "percentage", Message: "must be within [0,100]"},
			errs.Violation{Field: "weightKg", Message: "must be greater than 0"},
		)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Len(t, err.Violations, 2)
		assert.Equal(t, []string{
			"rule r1: percentage: must be within [0,100]",
			"weightKg: must be greater than 0",
		}, err.Messages())
		assert.Contains(t, err.Error(), "2 violation(s)")
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.As finds typed errors through wrapping", func(t *testing.T) {
		var capacityErr *errs.CapacityError
		wrapped := errors.Join(errors.New("carrier dpd"), errs.NewCapacityError(errs.Scope{}, "too heavy"))

		require.ErrorAs(t, wrapped, &capacityErr)
		assert.Equal(t, "too heavy", capacityErr.Reason)
	})

	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("userId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("email"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("age", 150, 0, 120), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("username"), errs.ErrValueIsRequired)
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{"nil", nil, ""},
		{"validation", errs.NewValidationError(errs.Violation{Field: "weightKg", Message: "is required"}), errs.KindValidation},
		{"capacity wrapped", fmt.Errorf("price dpd: %w", errs.NewCapacityError(errs.Scope{Carrier: "dpd"}, "too heavy")), errs.KindCapacity},
		{"configuration", errs.NewConfigurationError(errs.Scope{Zone: "world"}, "no tariff"), errs.KindConfiguration},
		{"calculation over value error", errs.NewCalculationError(errs.Scope{}, "tax", errs.NewValueIsOutOfRangeError("amount", -1, 0, nil)), errs.KindCalculation},
		{"not found", errs.NewObjectNotFoundError("carrier", "ups"), errs.KindNotFound},
		{"value", errs.NewValueIsRequiredError("currency"), errs.KindInvalidValue},
		{"canceled", context.Canceled, errs.KindCanceled},
		{"other", errors.New("boom"), errs.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.KindOf(tt.err))
		})
	}
}
