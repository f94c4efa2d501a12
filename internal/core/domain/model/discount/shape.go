package discount

import (
	"fmt"
	"strings"

	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ShapeType is how a discount value turns into an amount.
type ShapeType string

const (
	// ShapePercentage takes Value percent of the current price.
	ShapePercentage ShapeType = "percentage"
	// ShapeFixed takes Value as an absolute amount.
	ShapeFixed ShapeType = "fixed"
	// ShapeCapped takes Value percent of the current price, but at most Cap.
	ShapeCapped ShapeType = "capped"
)

// ParseShapeType normalizes s and checks it is a known shape.
func ParseShapeType(s string) (ShapeType, error) {
	switch candidate := ShapeType(strings.ToLower(strings.TrimSpace(s))); candidate {
	case ShapePercentage, ShapeFixed, ShapeCapped:
		return candidate, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("shape", fmt.Errorf("unknown discount shape %q", s))
	}
}

// Shape is a discount value with its interpretation.
//
// Example:
//
//	tenPercentUpTo15 := discount.Shape{Type: discount.ShapeCapped, Value: decimal.NewFromInt(10), Cap: decimal.NewFromInt(15)}
//	tenPercentUpTo15.Amount(decimal.NewFromInt(200)) // 15
type Shape struct {
	Type  ShapeType       `json:"type"`
	Value decimal.Decimal `json:"value"`
	Cap   decimal.Decimal `json:"cap,omitzero"`
}

// IsPercentage reports whether Value is a percentage.
func (s Shape) IsPercentage() bool {
	return s.Type == ShapePercentage || s.Type == ShapeCapped
}

// Amount returns the unrounded discount for price. It never exceeds price.
func (s Shape) Amount(price decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	switch s.Type {
	case ShapePercentage:
		amount = Percent(price, s.Value)
	case ShapeFixed:
		amount = s.Value
	case ShapeCapped:
		amount = Percent(price, s.Value)
		if s.Cap.IsPositive() {
			amount = decimal.Min(amount, s.Cap)
		}
	}
	return decimal.Min(amount, price)
}

// Percent returns pct percent of price.
func Percent(price, pct decimal.Decimal) decimal.Decimal {
	return price.Mul(pct).Div(hundred)
}
