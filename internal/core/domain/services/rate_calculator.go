package services

import (
	"fmt"
	"slices"
	"strings"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rate"
	"pricing/internal/core/domain/model/result"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// RateQuote is the base carrier price for one shipment.
type RateQuote struct {
	Carrier     string
	ZoneCode    string
	ServiceType kernel.ServiceType
	RuleID      string
	Method      rate.Method
	Weight      result.WeightDetail
	BasePrice   kernel.Money
	// Breakdown explains which weight was charged.
	Breakdown string
}

// RateCalculator turns a shipment into a base carrier price.
//
// The chargeable weight is max(actual, (L×W×H)/divisor) with the carrier's
// divisor. Exactly one weight rule of the carrier/zone/service tariff must
// contain it: no match is a ConfigurationError, and so is more than one,
// because overlapping bands are a tariff defect that must not be resolved by
// picking one silently.
type RateCalculator struct{}

// NewRateCalculator creates a RateCalculator.
func NewRateCalculator() RateCalculator {
	return RateCalculator{}
}

// ChargeableWeight returns the weight detail for a parcel under the carrier's
// volumetric divisor.
func (c RateCalculator) ChargeableWeight(
	carrier rate.Carrier,
	weight kernel.Weight,
	dims kernel.Dimensions,
) (result.WeightDetail, error) {
	divisor := carrier.VolumetricDivisor()
	if !divisor.IsPositive() {
		return result.WeightDetail{}, errs.NewConfigurationError(errs.Scope{Carrier: carrier.Code()},
			fmt.Sprintf("volumetric divisor must be positive, got %s", divisor))
	}
	volumetric, err := dims.VolumetricWeight(divisor)
	if err != nil {
		return result.WeightDetail{}, errs.NewCalculationError(errs.Scope{Carrier: carrier.Code()}, "volumetric weight", err)
	}
	return result.NewWeightDetail(weight.Kg(), volumetric), nil
}

// Calculate prices the shipment with the tariff rules. Rules for other
// carriers, zones or services are ignored.
func (c RateCalculator) Calculate(
	carrier rate.Carrier,
	zoneCode string,
	serviceType kernel.ServiceType,
	weight kernel.Weight,
	dims kernel.Dimensions,
	rules []rate.WeightRule,
) (RateQuote, error) {
	if err := carrier.Validate(); err != nil {
		return RateQuote{}, err
	}
	if err := dims.Validate(); err != nil {
		return RateQuote{}, err
	}

	detail, err := c.ChargeableWeight(carrier, weight, dims)
	if err != nil {
		return RateQuote{}, err
	}

	scope := errs.Scope{
		Carrier: carrier.Code(),
		Zone:    zoneCode,
		Service: string(serviceType),
		Weight:  detail.Chargeable.String() + " kg",
	}

	rule, err := SelectWeightRule(rules, carrier.Code(), zoneCode, serviceType, detail.Chargeable)
	if err != nil {
		return RateQuote{}, err
	}
	scope.RuleID = rule.ID()

	if rule.Currency() != carrier.Currency() {
		return RateQuote{}, errs.NewConfigurationError(scope,
			fmt.Sprintf("weight rule currency %s differs from carrier currency %s", rule.Currency(), carrier.Currency()))
	}

	price, err := kernel.NewMoney(rule.Price(detail.Chargeable), rule.Currency())
	if err != nil {
		return RateQuote{}, errs.NewCalculationError(scope, "base rate", err)
	}

	return RateQuote{
		Carrier:     carrier.Code(),
		ZoneCode:    zoneCode,
		ServiceType: serviceType,
		RuleID:      rule.ID(),
		Method:      rule.Method(),
		Weight:      detail,
		BasePrice:   price,
		Breakdown:   describeWeight(detail, rule),
	}, nil
}

// SelectWeightRule returns the single rule of the tariff whose band contains
// weight.
func SelectWeightRule(
	rules []rate.WeightRule,
	carrier, zoneCode string,
	serviceType kernel.ServiceType,
	weight decimal.Decimal,
) (rate.WeightRule, error) {
	scope := errs.Scope{Carrier: carrier, Zone: zoneCode, Service: string(serviceType), Weight: weight.String() + " kg"}

	var matches []rate.WeightRule
	for _, r := range rules {
		if r.Carrier() != carrier || r.ZoneCode() != zoneCode || r.ServiceType() != serviceType {
			continue
		}
		if r.Contains(weight) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		return rate.WeightRule{}, errs.NewConfigurationError(scope, "no weight rule covers the chargeable weight")
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID()
		}
		slices.Sort(ids)
		return rate.WeightRule{}, errs.NewConfigurationError(scope,
			"overlapping weight rules "+strings.Join(ids, ", ")+" cover the chargeable weight")
	}
}

func describeWeight(detail result.WeightDetail, rule rate.WeightRule) string {
	winner := "actual weight"
	if detail.VolumetricWins {
		winner = "volumetric weight"
	}
	return fmt.Sprintf("%s %s kg charged (actual %s kg, volumetric %s kg) via rule %s (%s)",
		winner, result.Grams(detail.Chargeable), detail.Actual, result.Grams(detail.Volumetric), rule.ID(), rule.Method())
}
