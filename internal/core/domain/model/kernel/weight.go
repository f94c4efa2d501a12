package kernel

import (
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// WeightScale is the number of decimal places weights are reported with.
const WeightScale = 3

var thousand = decimal.NewFromInt(1000)

// Weight is a strictly positive mass in kilograms.
type Weight struct {
	kg decimal.Decimal
}

// NewWeight creates a Weight. The value must be greater than zero.
func NewWeight(kg decimal.Decimal) (Weight, error) {
	if !kg.IsPositive() {
		return Weight{}, errs.NewValueIsOutOfRangeError("weightKg", kg.String(), "greater than 0", "unbounded")
	}
	return Weight{kg: kg}, nil
}

// Kg returns the weight in kilograms.
func (w Weight) Kg() decimal.Decimal {
	return w.kg
}

// Grams returns the weight in whole grams, rounded half up.
func (w Weight) Grams() int64 {
	return w.kg.Mul(thousand).Round(0).IntPart()
}

// IsZero reports whether the weight is the zero value.
func (w Weight) IsZero() bool {
	return w.kg.IsZero()
}

// String renders the weight as e.g. "2.5 kg".
func (w Weight) String() string {
	return w.kg.String() + " kg"
}
