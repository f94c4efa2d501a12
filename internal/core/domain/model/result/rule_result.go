package result

import (
	"pricing/internal/core/domain/model/discount"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// BreakdownEntry is one line of a price audit trail: the rule family, the rule
// that produced it and the rounded amount.
type BreakdownEntry struct {
	Type   discount.Kind `json:"type"`
	Source string        `json:"source"`
	Amount kernel.Money  `json:"amount"`
}

// WeightDetail explains which weight the price was looked up by.
type WeightDetail struct {
	Actual         decimal.Decimal `json:"actual"`
	Volumetric     decimal.Decimal `json:"volumetric"`
	Chargeable     decimal.Decimal `json:"chargeable"`
	VolumetricWins bool            `json:"volumetricWins"`
}

// Grams rounds w to the gram for display.
func Grams(w decimal.Decimal) decimal.Decimal {
	return w.Round(kernel.WeightScale)
}

// NewWeightDetail picks the chargeable weight as the greater of actual and
// the exact volumetric quotient. Volumetric wins only when strictly greater.
func NewWeightDetail(actual, volumetric decimal.Decimal) WeightDetail {
	wins := volumetric.GreaterThan(actual)
	chargeable := actual
	if wins {
		chargeable = volumetric
	}
	return WeightDetail{
		Actual:         actual,
		Volumetric:     volumetric,
		Chargeable:     chargeable,
		VolumetricWins: wins,
	}
}

// RuleResult is the outcome of a discount run.
//
// BasePrice is the price the run started with. Adjustments (surcharges) are
// added to it to form OriginalPrice, the price discounts are taken from.
// The invariant FinalPrice = OriginalPrice - TotalDiscount holds for every
// result, TotalDiscount is the sum of DiscountBreakdown, and FinalPrice lies
// in [0, OriginalPrice].
//
// A result with Errors was produced without running any discount stage; its
// FinalPrice equals the untouched OriginalPrice.
type RuleResult struct {
	BasePrice         kernel.Money     `json:"basePrice"`
	Adjustments       []BreakdownEntry `json:"adjustments"`
	OriginalPrice     kernel.Money     `json:"originalPrice"`
	FinalPrice        kernel.Money     `json:"finalPrice"`
	TotalDiscount     kernel.Money     `json:"totalDiscount"`
	Currency          kernel.Currency  `json:"currency"`
	AppliedRules      []string         `json:"appliedRules"`
	AppliedPromotions []string         `json:"appliedPromotions"`
	DiscountBreakdown []BreakdownEntry `json:"discountBreakdown"`
	Weight            WeightDetail     `json:"weight"`
	Violations        []errs.Violation `json:"violations,omitempty"`
	Errors            []string         `json:"errors"`
	Warnings          []string         `json:"warnings"`
}

// NewErrorResult returns a result that leaves price untouched and carries the
// violations that stopped the run.
func NewErrorResult(price kernel.Money, weight WeightDetail, violations []errs.Violation) RuleResult {
	messages := make([]string, len(violations))
	for i, v := range violations {
		messages[i] = v.String()
	}
	zero := kernel.ZeroMoney(price.Currency())
	return RuleResult{
		BasePrice:         price,
		Adjustments:       []BreakdownEntry{},
		OriginalPrice:     price,
		FinalPrice:        price,
		TotalDiscount:     zero,
		Currency:          price.Currency(),
		AppliedRules:      []string{},
		AppliedPromotions: []string{},
		DiscountBreakdown: []BreakdownEntry{},
		Weight:            weight,
		Violations:        append([]errs.Violation(nil), violations...),
		Errors:            messages,
		Warnings:          []string{},
	}
}

// HasErrors reports whether the run was blocked.
func (r RuleResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// DiscountSum returns the sum of the discount breakdown amounts.
func (r RuleResult) DiscountSum() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range r.DiscountBreakdown {
		sum = sum.Add(e.Amount.Amount())
	}
	return sum
}

// AdjustmentSum returns the sum of the surcharge amounts.
func (r RuleResult) AdjustmentSum() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range r.Adjustments {
		sum = sum.Add(e.Amount.Amount())
	}
	return sum
}
