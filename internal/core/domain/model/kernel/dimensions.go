package kernel

import (
	"errors"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrDimensionsIsNotConstructed is returned when zero-value Dimensions are used.
var ErrDimensionsIsNotConstructed = errs.NewValueIsRequiredError("dimensions must be created via NewDimensions")

var two = decimal.NewFromInt(2)

// Dimensions are the outer measurements of a parcel in centimeters.
// All three sides are strictly positive.
//
// Example:
//
//	dims, _ := kernel.NewDimensions(decimal.NewFromInt(60), decimal.NewFromInt(40), decimal.NewFromInt(30))
//	vol, _ := dims.VolumetricWeight(decimal.NewFromInt(5000))
//	// vol == 14.4
type Dimensions struct { //nolint:recvcheck //using for validation
	length decimal.Decimal
	width  decimal.Decimal
	height decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewDimensions creates Dimensions from length, width and height in centimeters.
// Every side must be greater than zero; all violations are reported together.
func NewDimensions(length, width, height decimal.Decimal) (Dimensions, error) {
	d := Dimensions{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		d.setSide("lengthCm", length, &d.length),
		d.setSide("widthCm", width, &d.width),
		d.setSide("heightCm", height, &d.height),
	); err != nil {
		return Dimensions{}, err
	}
	return d, nil
}

// Validate reports whether the Dimensions were created through NewDimensions.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsIsNotConstructed)
}

// Length returns the length in centimeters.
func (d Dimensions) Length() decimal.Decimal { return d.length }

// Width returns the width in centimeters.
func (d Dimensions) Width() decimal.Decimal { return d.width }

// Height returns the height in centimeters.
func (d Dimensions) Height() decimal.Decimal { return d.height }

// Volume returns L×W×H in cubic centimeters.
func (d Dimensions) Volume() decimal.Decimal {
	return d.length.Mul(d.width).Mul(d.height)
}

// VolumetricWeight returns (L×W×H)/divisor in kilograms. The divisor is
// carrier-specific (typically 5000 or 6000) and must be positive.
func (d Dimensions) VolumetricWeight(divisor decimal.Decimal) (decimal.Decimal, error) {
	if !divisor.IsPositive() {
		return decimal.Zero, errs.NewValueIsOutOfRangeError("volumetricDivisor", divisor.String(), "greater than 0", "unbounded")
	}
	return d.Volume().Div(divisor), nil
}

// LongestSide returns the largest of the three sides.
func (d Dimensions) LongestSide() decimal.Decimal {
	return decimal.Max(d.length, d.width, d.height)
}

// Girth returns the longest side plus twice the sum of the other two, the
// measure carriers use for size limits.
func (d Dimensions) Girth() decimal.Decimal {
	longest := d.LongestSide()
	rest := d.length.Add(d.width).Add(d.height).Sub(longest)
	return longest.Add(rest.Mul(two))
}

// String renders the dimensions as e.g. "60x40x30 cm".
func (d Dimensions) String() string {
	return d.length.String() + "x" + d.width.String() + "x" + d.height.String() + " cm"
}

func (d *Dimensions) setSide(name string, value decimal.Decimal, target *decimal.Decimal) error {
	if !value.IsPositive() {
		return errs.NewValueIsOutOfRangeError(name, value.String(), "greater than 0", "unbounded")
	}
	*target = value
	return nil
}
