package services

import (
	"fmt"
	"slices"

	"pricing/internal/core/domain/model/discount"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/result"
	"pricing/internal/core/domain/model/rulecontext"

	"github.com/shopspring/decimal"
)

// PerStageRoundingWarning is attached to results where more than one amount
// was rounded, because the final cent can then depend on stage order.
const PerStageRoundingWarning = "discount amounts are rounded to 2 decimals per rule; " +
	"the final price depends on the order rules were applied in"

// DiscountEngine applies the discount families to a price in a fixed order:
// adjustments, contract (and tiered), promotion, seasonal, volume,
// progressive. Every stage works on the price left by the previous one.
//
// Each rule amount is rounded to 2 decimals, capped at the running price and
// subtracted, so the running price never goes below zero and
// FinalPrice = OriginalPrice - TotalDiscount holds exactly. Within a stage,
// rules run by priority descending, then ID ascending.
//
// The rule set is validated first. If any violation is found no stage runs
// and the returned result carries the violations with the price untouched.
//
// Example:
//
//	engine := services.NewDiscountEngine(validator, conditions)
//	res := engine.Apply(rc, rules, weightDetail)
//	if res.HasErrors() {
//	    // rules are inconsistent, res.FinalPrice == res.OriginalPrice
//	}
type DiscountEngine struct {
	validator  RuleValidator
	conditions *ConditionEvaluator
	stages     []discountStage
}

// NewDiscountEngine creates an engine. A nil evaluator treats every rule
// condition as satisfied.
func NewDiscountEngine(validator RuleValidator, conditions *ConditionEvaluator) DiscountEngine {
	return DiscountEngine{
		validator:  validator,
		conditions: conditions,
		stages: []discountStage{
			{stage: discount.StageAdjustment, apply: applyAdjustments},
			{stage: discount.StageContract, apply: applyContracts},
			{stage: discount.StagePromotion, apply: applyPromotion},
			{stage: discount.StageSeasonal, apply: applySeasonal},
			{stage: discount.StageVolume, apply: applyVolume},
			{stage: discount.StageProgressive, apply: applyProgressive},
		},
	}
}

// Apply validates rules and, if they are consistent, folds the stages over
// the context's base price.
func (e DiscountEngine) Apply(rc rulecontext.Context, rules []discount.Rule, weight result.WeightDetail) result.RuleResult {
	if violations := e.validator.ValidateDiscountRules(rules); len(violations) > 0 {
		return result.NewErrorResult(rc.BasePrice(), weight, violations)
	}

	byStage := make(map[discount.Stage][]discount.Rule, len(e.stages))
	for _, r := range rules {
		byStage[r.Stage()] = append(byStage[r.Stage()], r)
	}
	for stage := range byStage {
		slices.SortFunc(byStage[stage], discount.Compare)
	}

	run := &discountRun{
		rc:         rc,
		conditions: e.conditions,
		currency:   rc.Currency(),
		original:   rc.BasePrice(),
		chargeable: weight.Chargeable,
	}
	if !run.chargeable.IsPositive() {
		run.chargeable = rc.Weight().Kg()
	}

	price := rc.BasePrice()
	for _, s := range e.stages {
		if s.stage == discount.StageContract {
			run.original = price
		}
		price = s.apply(run, price, byStage[s.stage])
	}

	return run.result(price, weight)
}

// discountStage is one step of the fold: it takes the running price and the
// stage's sorted rules and returns the new running price.
type discountStage struct {
	stage discount.Stage
	apply func(run *discountRun, price kernel.Money, rules []discount.Rule) kernel.Money
}

// discountRun accumulates the audit trail of a single Apply call.
type discountRun struct {
	rc         rulecontext.Context
	conditions *ConditionEvaluator
	currency   kernel.Currency
	// original is the price after adjustments; minimum order values and
	// condition facts are evaluated against it.
	original kernel.Money
	// chargeable is the weight overweight surcharges compare against.
	chargeable decimal.Decimal

	adjustments []result.BreakdownEntry
	entries     []result.BreakdownEntry
	applied     []string
	promotions  []string
	warnings    []string
	rounded     int
}

// eligible applies the filters every rule shares.
func (run *discountRun) eligible(r discount.Rule) bool {
	if !r.IsActive() ||
		!r.ValidAt(run.rc.CalculationDate()) ||
		!r.AllowsService(run.rc.ServiceType()) ||
		!r.AllowsZone(run.rc.ZoneCode()) ||
		run.original.Amount().LessThan(r.MinOrderValue()) {
		return false
	}
	if r.Condition() == "" || run.conditions == nil {
		return true
	}
	ok, err := run.conditions.Evaluate(r.Condition(), FactsFromContext(run.rc, run.original))
	if err != nil {
		run.warn(fmt.Sprintf("rule %s skipped: condition failed: %v", r.ID(), err))
		return false
	}
	return ok
}

// customer returns the snapshot or records why a customer-bound rule was skipped.
func (run *discountRun) customer(r discount.Rule) (rulecontext.CustomerSnapshot, bool) {
	snapshot, ok := run.rc.Customer()
	if !ok {
		run.warn(fmt.Sprintf("%s rule %s skipped: no customer data", r.Kind(), r.ID()))
	}
	return snapshot, ok
}

// discount subtracts raw (rounded, capped at price) from price and records it.
func (run *discountRun) discount(r discount.Rule, price kernel.Money, raw decimal.Decimal) (kernel.Money, bool) {
	amount := run.round(raw)
	amount = decimal.Min(amount, price.Amount())
	if !amount.IsPositive() {
		return price, false
	}
	money, err := kernel.NewMoney(amount, run.currency)
	if err != nil {
		run.warn(fmt.Sprintf("rule %s skipped: %v", r.ID(), err))
		return price, false
	}
	next, err := price.Sub(money)
	if err != nil {
		run.warn(fmt.Sprintf("rule %s skipped: %v", r.ID(), err))
		return price, false
	}
	run.entries = append(run.entries, result.BreakdownEntry{Type: r.Kind(), Source: r.ID(), Amount: money})
	run.applied = append(run.applied, r.ID())
	return next, true
}

// surcharge adds raw (rounded) to price and records it as an adjustment.
func (run *discountRun) surcharge(r discount.Rule, price kernel.Money, raw decimal.Decimal) kernel.Money {
	amount := run.round(raw)
	if !amount.IsPositive() {
		return price
	}
	money, err := kernel.NewMoney(amount, run.currency)
	if err != nil {
		run.warn(fmt.Sprintf("rule %s skipped: %v", r.ID(), err))
		return price
	}
	next, err := price.Add(money)
	if err != nil {
		run.warn(fmt.Sprintf("rule %s skipped: %v", r.ID(), err))
		return price
	}
	run.adjustments = append(run.adjustments, result.BreakdownEntry{Type: r.Kind(), Source: r.ID(), Amount: money})
	run.applied = append(run.applied, r.ID())
	return next
}

func (run *discountRun) round(raw decimal.Decimal) decimal.Decimal {
	amount := kernel.Round(raw)
	if !amount.Equal(raw) {
		run.rounded++
	}
	return amount
}

func (run *discountRun) warn(msg string) {
	run.warnings = append(run.warnings, msg)
}

func (run *discountRun) result(final kernel.Money, weight result.WeightDetail) result.RuleResult {
	total := kernel.ZeroMoney(run.currency)
	for _, e := range run.entries {
		total, _ = total.Add(e.Amount)
	}
	warnings := slices.Clone(run.warnings)
	if run.rounded > 1 {
		warnings = append(warnings, PerStageRoundingWarning)
	}

	return result.RuleResult{
		BasePrice:         run.rc.BasePrice(),
		Adjustments:       nonNil(run.adjustments),
		OriginalPrice:     run.original,
		FinalPrice:        final,
		TotalDiscount:     total,
		Currency:          run.currency,
		AppliedRules:      nonNil(run.applied),
		AppliedPromotions: nonNil(run.promotions),
		DiscountBreakdown: nonNil(run.entries),
		Weight:            weight,
		Errors:            []string{},
		Warnings:          nonNil(warnings),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
