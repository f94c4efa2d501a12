package rate

import (
	"errors"
	"strings"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrWeightRuleIsNotConstructed is returned when a zero-value WeightRule is used.
var ErrWeightRuleIsNotConstructed = errs.NewValueIsRequiredError("weight rule must be created via NewWeightRule")

// WeightRuleParams carries the raw fields of a weight rule as loaded from a
// tariff table.
type WeightRuleParams struct {
	ID            string
	Carrier       string
	ZoneCode      string
	ServiceType   kernel.ServiceType
	WeightFrom    decimal.Decimal
	WeightTo      *decimal.Decimal
	Method        Method
	BaseRate      decimal.Decimal
	RatePerKg     decimal.Decimal
	ThresholdKg   decimal.Decimal
	MinimumCharge decimal.Decimal
	Currency      kernel.Currency
}

// WeightRule prices one weight band for a carrier, zone and service.
//
// Invariants:
//   - ID, carrier, zone code, service type, method and currency are present
//   - the band is half-open [WeightFrom, WeightTo); nil WeightTo is unbounded
//
// Numeric sanity (non-negative rates, From < To, no overlap with sibling
// bands) is checked by the rule validator over the whole tariff, so a bad
// table is reported completely instead of one rule at a time.
type WeightRule struct { //nolint:recvcheck //using for validation
	id            string
	carrier       string
	zoneCode      string
	serviceType   kernel.ServiceType
	weightFrom    decimal.Decimal
	weightTo      *decimal.Decimal
	method        Method
	baseRate      decimal.Decimal
	ratePerKg     decimal.Decimal
	thresholdKg   decimal.Decimal
	minimumCharge decimal.Decimal
	currency      kernel.Currency
	guard         guard.ConstructorGuard
}

// NewWeightRule creates a WeightRule from p.
//
// Example:
//
//	upTo5 := decimal.NewFromInt(5)
//	rule, err := rate.NewWeightRule(rate.WeightRuleParams{
//	    ID: "dpd-dom-std-0", Carrier: "dpd", ZoneCode: "domestic",
//	    ServiceType: kernel.ServiceStandard, WeightTo: &upTo5,
//	    Method: rate.MethodFlat, BaseRate: decimal.RequireFromString("14.99"),
//	    Currency: "PLN",
//	})
func NewWeightRule(p WeightRuleParams) (WeightRule, error) {
	r := WeightRule{
		id:            strings.TrimSpace(p.ID),
		carrier:       strings.TrimSpace(p.Carrier),
		zoneCode:      strings.TrimSpace(p.ZoneCode),
		serviceType:   p.ServiceType,
		weightFrom:    p.WeightFrom,
		baseRate:      p.BaseRate,
		ratePerKg:     p.RatePerKg,
		thresholdKg:   p.ThresholdKg,
		minimumCharge: p.MinimumCharge,
		currency:      p.Currency,
		guard:         guard.NewConstructorGuard(),
	}
	if p.WeightTo != nil {
		to := *p.WeightTo
		r.weightTo = &to
	}

	var methodErr error
	r.method, methodErr = ParseMethod(string(p.Method))

	if err := errors.Join(
		required("id", r.id),
		required("carrier", r.carrier),
		required("zoneCode", r.zoneCode),
		required("serviceType", string(r.serviceType)),
		required("currency", string(r.currency)),
		methodErr,
	); err != nil {
		return WeightRule{}, err
	}
	return r, nil
}

// Validate reports whether the rule was created through NewWeightRule.
func (r WeightRule) Validate() error {
	return r.guard.Validate(ErrWeightRuleIsNotConstructed)
}

func (r WeightRule) ID() string                      { return r.id }
func (r WeightRule) Carrier() string                 { return r.carrier }
func (r WeightRule) ZoneCode() string                { return r.zoneCode }
func (r WeightRule) ServiceType() kernel.ServiceType { return r.serviceType }
func (r WeightRule) WeightFrom() decimal.Decimal     { return r.weightFrom }
func (r WeightRule) Method() Method                  { return r.method }
func (r WeightRule) BaseRate() decimal.Decimal       { return r.baseRate }
func (r WeightRule) RatePerKg() decimal.Decimal      { return r.ratePerKg }
func (r WeightRule) ThresholdKg() decimal.Decimal    { return r.thresholdKg }
func (r WeightRule) MinimumCharge() decimal.Decimal  { return r.minimumCharge }
func (r WeightRule) Currency() kernel.Currency       { return r.currency }

// WeightTo returns the exclusive upper bound and false when the band is unbounded.
func (r WeightRule) WeightTo() (decimal.Decimal, bool) {
	if r.weightTo == nil {
		return decimal.Zero, false
	}
	return *r.weightTo, true
}

// Scope identifies the tariff the rule belongs to.
func (r WeightRule) Scope() errs.Scope {
	return errs.Scope{Carrier: r.carrier, Zone: r.zoneCode, Service: string(r.serviceType), RuleID: r.id}
}

// SameTariff reports whether both rules price the same carrier, zone and service.
func (r WeightRule) SameTariff(other WeightRule) bool {
	return r.carrier == other.carrier && r.zoneCode == other.zoneCode && r.serviceType == other.serviceType
}

// Contains reports whether weight falls in [WeightFrom, WeightTo).
func (r WeightRule) Contains(weight decimal.Decimal) bool {
	if weight.LessThan(r.weightFrom) {
		return false
	}
	return r.weightTo == nil || weight.LessThan(*r.weightTo)
}

// Overlaps reports whether the two half-open bands share any weight.
func (r WeightRule) Overlaps(other WeightRule) bool {
	aEndsBeforeB := r.weightTo != nil && r.weightTo.LessThanOrEqual(other.weightFrom)
	bEndsBeforeA := other.weightTo != nil && other.weightTo.LessThanOrEqual(r.weightFrom)
	return !aEndsBeforeB && !bEndsBeforeA
}

// Price evaluates the rule for a chargeable weight and applies the minimum
// charge. The result is not rounded.
func (r WeightRule) Price(chargeable decimal.Decimal) decimal.Decimal {
	var price decimal.Decimal
	switch r.method {
	case MethodFlat:
		price = r.baseRate
	case MethodPerKg:
		price = chargeable.Mul(r.ratePerKg)
	case MethodTiered:
		price = r.baseRate
		if excess := chargeable.Sub(r.thresholdKg); excess.IsPositive() {
			price = price.Add(excess.Mul(r.ratePerKg))
		}
	}
	return decimal.Max(price, r.minimumCharge)
}

func required(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
