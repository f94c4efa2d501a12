package services

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"pricing/internal/core/domain/model/discount"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rate"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var hundredPercent = decimal.NewFromInt(100)

// globalPromotionScope is the scope of promotions that do not name one.
const globalPromotionScope = "global"

// RuleValidator checks a rule set for internal consistency before any
// discount is computed. It never stops at the first problem: every check runs
// and every violation is collected.
//
// Weight rule checks:
//   - bands of the same carrier/zone/service do not overlap
//   - from ≥ 0, to > from, rates and minimum charge non-negative
//
// Discount rule checks:
//   - IDs are unique, validity windows have from ≤ to, minimum order value ≥ 0
//   - percentages lie in [0, 100], fixed amounts and caps are non-negative
//   - tier tables are non-empty and strictly ascending
//   - variant-specific required fields are present
//   - promotions of the same scope do not have overlapping active windows
//   - conditions compile to a boolean expression
type RuleValidator struct {
	conditions *ConditionEvaluator
}

// NewRuleValidator creates a validator. A nil evaluator skips condition checks.
func NewRuleValidator(conditions *ConditionEvaluator) RuleValidator {
	return RuleValidator{conditions: conditions}
}

// Validate runs every check and returns a *errs.ValidationError carrying the
// complete violation list, or nil.
func (v RuleValidator) Validate(weightRules []rate.WeightRule, discountRules []discount.Rule) error {
	violations := append(v.ValidateWeightRules(weightRules), v.ValidateDiscountRules(discountRules)...)
	if len(violations) > 0 {
		return errs.NewValidationError(violations...)
	}
	return nil
}

// ValidateWeightRules checks weight bands. Violations are ordered by tariff,
// then by band.
func (v RuleValidator) ValidateWeightRules(rules []rate.WeightRule) []errs.Violation {
	var violations []errs.Violation

	sorted := slices.Clone(rules)
	slices.SortFunc(sorted, func(a, b rate.WeightRule) int {
		return cmp.Or(
			strings.Compare(a.Carrier(), b.Carrier()),
			strings.Compare(a.ZoneCode(), b.ZoneCode()),
			strings.Compare(string(a.ServiceType()), string(b.ServiceType())),
			a.WeightFrom().Cmp(b.WeightFrom()),
			strings.Compare(a.ID(), b.ID()),
		)
	})

	for i, r := range sorted {
		if err := r.Validate(); err != nil {
			violations = append(violations, errs.Violation{Field: "weightRule", Message: err.Error()})
			continue
		}
		violations = append(violations, checkWeightRule(r)...)

		for _, other := range sorted[i+1:] {
			if !r.SameTariff(other) {
				break
			}
			if r.Overlaps(other) {
				violations = append(violations, errs.Violation{
					RuleID: r.ID(),
					Field:  "weightRange",
					Message: fmt.Sprintf("range %s overlaps rule %s range %s for %s/%s/%s",
						describeBand(r), other.ID(), describeBand(other), r.Carrier(), r.ZoneCode(), r.ServiceType()),
				})
			}
		}
	}
	return violations
}

func checkWeightRule(r rate.WeightRule) []errs.Violation {
	var violations []errs.Violation
	add := func(field, message string) {
		violations = append(violations, errs.Violation{RuleID: r.ID(), Field: field, Message: message})
	}

	if r.WeightFrom().IsNegative() {
		add("weightFrom", "must not be negative")
	}
	if to, bounded := r.WeightTo(); bounded && !to.GreaterThan(r.WeightFrom()) {
		add("weightTo", "must be greater than weightFrom")
	}
	if r.BaseRate().IsNegative() {
		add("baseRate", "must not be negative")
	}
	if r.RatePerKg().IsNegative() {
		add("ratePerKg", "must not be negative")
	}
	if r.ThresholdKg().IsNegative() {
		add("thresholdKg", "must not be negative")
	}
	if r.MinimumCharge().IsNegative() {
		add("minimumCharge", "must not be negative")
	}
	if r.Method() == rate.MethodPerKg && !r.RatePerKg().IsPositive() {
		add("ratePerKg", "is required for per_kg rules")
	}
	if r.Method() == rate.MethodTiered && !r.ThresholdKg().IsPositive() {
		add("thresholdKg", "is required for tiered rules")
	}
	return violations
}

func describeBand(r rate.WeightRule) string {
	if to, bounded := r.WeightTo(); bounded {
		return fmt.Sprintf("[%s, %s)", r.WeightFrom(), to)
	}
	return fmt.Sprintf("[%s, ∞)", r.WeightFrom())
}

// ValidateDiscountRules checks discount rules in the order given, then the
// promotion windows.
func (v RuleValidator) ValidateDiscountRules(rules []discount.Rule) []errs.Violation {
	var violations []errs.Violation
	seen := make(map[string]struct{}, len(rules))

	for _, r := range rules {
		if err := r.Validate(); err != nil {
			violations = append(violations, errs.Violation{Field: "discountRule", Message: err.Error()})
			continue
		}
		if _, dup := seen[r.ID()]; dup {
			violations = append(violations, errs.Violation{RuleID: r.ID(), Field: "id", Message: "is not unique"})
		}
		seen[r.ID()] = struct{}{}

		violations = append(violations, v.checkCommon(r)...)
		violations = append(violations, checkSpec(r)...)
	}

	return append(violations, checkPromotionWindows(rules)...)
}

func (v RuleValidator) checkCommon(r discount.Rule) []errs.Violation {
	var violations []errs.Violation
	add := func(field, message string) {
		violations = append(violations, errs.Violation{RuleID: r.ID(), Field: field, Message: message})
	}

	from, until := r.ValidFrom(), r.ValidUntil()
	if from != nil && until != nil && until.Before(*from) {
		add("validUntil", "must not be before validFrom")
	}
	if r.MinOrderValue().IsNegative() {
		add("minOrderValue", "must not be negative")
	}
	for _, st := range r.ServiceTypes() {
		if _, err := kernel.ParseServiceType(string(st)); err != nil {
			add("serviceTypes", fmt.Sprintf("unknown service type %q", st))
		}
	}
	if r.Condition() != "" && v.conditions != nil {
		if _, err := v.conditions.Compile(r.Condition()); err != nil {
			add("condition", err.Error())
		}
	}
	return violations
}

func checkSpec(r discount.Rule) []errs.Violation {
	c := specChecker{ruleID: r.ID()}

	switch spec := r.Spec().(type) {
	case discount.AdjustmentSpec:
		switch spec.Trigger {
		case discount.TriggerOverweight:
			c.positive("thresholdKg", spec.ThresholdKg)
		case discount.TriggerOversize:
			c.positive("thresholdCm", spec.ThresholdCm)
		default:
			c.add("trigger", fmt.Sprintf("unknown adjustment trigger %q", spec.Trigger))
		}
		if spec.Shape.Type == discount.ShapeCapped {
			c.add("shape.type", "capped is not allowed for adjustments")
		}
		c.shape("shape", spec.Shape)
	case discount.ContractSpec:
		if strings.TrimSpace(spec.CustomerID) == "" {
			c.add("customerId", "is required")
		}
		if len(spec.Tiers) > 0 {
			c.tiers("tiers", spec.Tiers)
		} else {
			c.shape("shape", spec.Shape)
		}
	case discount.TieredSpec:
		c.tiers("tiers", spec.Tiers)
	case discount.PromotionSpec:
		c.promotion(spec)
	case discount.SeasonalSpec:
		if len(spec.Percentages) == 0 {
			c.add("percentages", "at least one season is required")
		}
		seasons := make([]kernel.Season, 0, len(spec.Percentages))
		for season := range spec.Percentages {
			seasons = append(seasons, season)
		}
		slices.Sort(seasons)
		for _, season := range seasons {
			if _, err := kernel.ParseSeason(string(season)); err != nil {
				c.add("percentages", fmt.Sprintf("unknown season %q", season))
				continue
			}
			c.percentage("percentages."+string(season), spec.Percentages[season])
		}
	case discount.VolumeSpec:
		c.volumeTiers("tiers", spec.Tiers)
	case discount.ProgressiveSpec:
		c.tiers("tiers", spec.Tiers)
	default:
		c.add("spec", fmt.Sprintf("unsupported rule spec %T", spec))
	}
	return c.violations
}

func checkPromotionWindows(rules []discount.Rule) []errs.Violation {
	byScope := make(map[string][]discount.Rule)
	for _, r := range rules {
		if r.Validate() != nil || !r.IsActive() {
			continue
		}
		promo, ok := r.Spec().(discount.PromotionSpec)
		if !ok {
			continue
		}
		byScope[PromotionScope(promo)] = append(byScope[PromotionScope(promo)], r)
	}

	scopes := make([]string, 0, len(byScope))
	for scope := range byScope {
		scopes = append(scopes, scope)
	}
	slices.Sort(scopes)

	var violations []errs.Violation
	for _, scope := range scopes {
		group := byScope[scope]
		slices.SortFunc(group, func(a, b discount.Rule) int { return strings.Compare(a.ID(), b.ID()) })
		for i, a := range group {
			for _, b := range group[i+1:] {
				if a.ID() == b.ID() || !a.WindowOverlaps(b) {
					continue
				}
				violations = append(violations, errs.Violation{
					RuleID:  a.ID(),
					Field:   "validity",
					Message: fmt.Sprintf("active window overlaps promotion %s in scope %q", b.ID(), scope),
				})
			}
		}
	}
	return violations
}

// PromotionScope returns the campaign scope of a promotion: its Scope, else
// its Code, else the global scope.
func PromotionScope(p discount.PromotionSpec) string {
	if s := strings.TrimSpace(p.Scope); s != "" {
		return strings.ToLower(s)
	}
	if c := strings.TrimSpace(p.Code); c != "" {
		return strings.ToUpper(c)
	}
	return globalPromotionScope
}

type specChecker struct {
	ruleID     string
	violations []errs.Violation
}

func (c *specChecker) add(field, message string) {
	c.violations = append(c.violations, errs.Violation{RuleID: c.ruleID, Field: field, Message: message})
}

func (c *specChecker) nonNegative(field string, value decimal.Decimal) {
	if value.IsNegative() {
		c.add(field, "must not be negative")
	}
}

func (c *specChecker) positive(field string, value decimal.Decimal) {
	if !value.IsPositive() {
		c.add(field, "must be greater than 0")
	}
}

func (c *specChecker) percentage(field string, value decimal.Decimal) {
	if value.IsNegative() || value.GreaterThan(hundredPercent) {
		c.add(field, fmt.Sprintf("percentage %s must be within [0, 100]", value))
	}
}

func (c *specChecker) shape(field string, s discount.Shape) {
	if _, err := discount.ParseShapeType(string(s.Type)); err != nil {
		c.add(field+".type", fmt.Sprintf("unknown discount shape %q", s.Type))
		return
	}
	if s.IsPercentage() {
		c.percentage(field+".value", s.Value)
	} else {
		c.nonNegative(field+".value", s.Value)
	}
	if s.Type == discount.ShapeCapped {
		c.positive(field+".cap", s.Cap)
	}
}

func (c *specChecker) tiers(field string, tiers []discount.Tier) {
	if len(tiers) == 0 {
		c.add(field, "at least one tier is required")
		return
	}
	for i, t := range tiers {
		name := fmt.Sprintf("%s[%d]", field, i)
		c.nonNegative(name+".threshold", t.Threshold)
		c.percentage(name+".percent", t.Percent)
		if i > 0 && !t.Threshold.GreaterThan(tiers[i-1].Threshold) {
			c.add(name+".threshold", "tiers must be strictly ascending")
		}
	}
}

func (c *specChecker) volumeTiers(field string, tiers []discount.VolumeTier) {
	if len(tiers) == 0 {
		c.add(field, "at least one tier is required")
		return
	}
	for i, t := range tiers {
		name := fmt.Sprintf("%s[%d]", field, i)
		if t.MinOrders < 0 {
			c.add(name+".minOrders", "must not be negative")
		}
		c.nonNegative(name+".minSpend", t.MinSpend)
		c.percentage(name+".percent", t.Percent)
		if i > 0 {
			prev := tiers[i-1]
			if t.MinOrders <= prev.MinOrders || t.MinSpend.LessThan(prev.MinSpend) {
				c.add(name, "tiers must be strictly ascending")
			}
		}
	}
}

func (c *specChecker) promotion(p discount.PromotionSpec) {
	if _, err := discount.ParsePromotionType(string(p.Type)); err != nil {
		c.add("type", fmt.Sprintf("unknown promotion type %q", p.Type))
		return
	}
	c.nonNegative("maxDiscountPerOrder", p.MaxDiscountPerOrder)

	switch p.Type {
	case discount.PromotionPercentage:
		c.percentage("value", p.Value)
	case discount.PromotionFixed:
		c.nonNegative("value", p.Value)
	case discount.PromotionBuyXGetY:
		if p.BuyQuantity <= 0 {
			c.add("buyQuantity", "must be greater than 0")
		}
		if p.GetQuantity <= 0 {
			c.add("getQuantity", "must be greater than 0")
		}
	case discount.PromotionFreeShipping:
	}
}
