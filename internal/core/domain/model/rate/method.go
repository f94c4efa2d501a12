package rate

import (
	"fmt"
	"strings"

	"pricing/internal/pkg/errs"
)

// Method is the way a WeightRule turns chargeable weight into a price.
type Method string

const (
	// MethodFlat charges BaseRate regardless of weight.
	MethodFlat Method = "flat"
	// MethodPerKg charges chargeable weight × RatePerKg.
	MethodPerKg Method = "per_kg"
	// MethodTiered charges BaseRate up to ThresholdKg, then RatePerKg for every
	// kilogram above it.
	MethodTiered Method = "tiered"
)

// ParseMethod normalizes s and checks it is a supported method. "stepped" is
// accepted as an alias of tiered.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(MethodFlat):
		return MethodFlat, nil
	case string(MethodPerKg), "perkg", "per-kg":
		return MethodPerKg, nil
	case string(MethodTiered), "stepped":
		return MethodTiered, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("unsupported calculation method %q", s))
	}
}

func (m Method) String() string {
	return string(m)
}
