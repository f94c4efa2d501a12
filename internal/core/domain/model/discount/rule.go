package discount

import (
	"slices"
	"strings"
	"time"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrRuleIsNotConstructed is returned when a zero-value Rule is used.
var ErrRuleIsNotConstructed = errs.NewValueIsRequiredError("discount rule must be created via NewRule")

// RuleParams carries the raw fields of a discount rule as loaded from the rule
// store. Nil validity bounds are unbounded; empty allow-lists allow everything.
type RuleParams struct {
	ID            string
	Name          string
	Active        bool
	ValidFrom     *time.Time
	ValidUntil    *time.Time
	ServiceTypes  []kernel.ServiceType
	Zones         []string
	MinOrderValue decimal.Decimal
	Priority      int
	Condition     string
	Spec          Spec
}

// Rule is a loaded discount rule: common eligibility filters plus the
// family-specific Spec.
//
// Rule is immutable after construction and safe to share between concurrent
// calculations. Consistency across a rule set (percentages in range, windows
// ordered, tiers ascending, promotions not overlapping) is the rule
// validator's job; NewRule only checks that the rule is identifiable and
// carries a spec.
type Rule struct { //nolint:recvcheck //using for validation
	id            string
	name          string
	active        bool
	validFrom     *time.Time
	validUntil    *time.Time
	serviceTypes  []kernel.ServiceType
	zones         []string
	minOrderValue decimal.Decimal
	priority      int
	condition     string
	spec          Spec
	guard         guard.ConstructorGuard
}

// NewRule creates a Rule from p.
//
// Example:
//
//	rule, err := discount.NewRule(discount.RuleParams{
//	    ID: "contract-acme", Active: true, Priority: 10,
//	    Spec: discount.ContractSpec{
//	        CustomerID: "acme",
//	        Shape:      discount.Shape{Type: discount.ShapePercentage, Value: decimal.NewFromInt(10)},
//	    },
//	})
func NewRule(p RuleParams) (Rule, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		return Rule{}, errs.NewValueIsRequiredError("ruleId")
	}
	if p.Spec == nil {
		return Rule{}, errs.NewValueIsRequiredError("spec")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = id
	}

	services := append([]kernel.ServiceType(nil), p.ServiceTypes...)
	slices.Sort(services)
	zones := append([]string(nil), p.Zones...)
	slices.Sort(zones)

	return Rule{
		id:            id,
		name:          name,
		active:        p.Active,
		validFrom:     copyTime(p.ValidFrom),
		validUntil:    copyTime(p.ValidUntil),
		serviceTypes:  slices.Compact(services),
		zones:         slices.Compact(zones),
		minOrderValue: p.MinOrderValue,
		priority:      p.Priority,
		condition:     strings.TrimSpace(p.Condition),
		spec:          p.Spec,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the rule was created through NewRule.
func (r Rule) Validate() error {
	return r.guard.Validate(ErrRuleIsNotConstructed)
}

func (r Rule) ID() string                     { return r.id }
func (r Rule) Name() string                   { return r.name }
func (r Rule) IsActive() bool                 { return r.active }
func (r Rule) MinOrderValue() decimal.Decimal { return r.minOrderValue }
func (r Rule) Priority() int                  { return r.priority }
func (r Rule) Condition() string              { return r.condition }
func (r Rule) Spec() Spec                     { return r.spec }
func (r Rule) Kind() Kind                     { return r.spec.Kind() }
func (r Rule) Stage() Stage                   { return r.spec.Kind().Stage() }

// ValidFrom returns the inclusive start of the validity window, or nil.
func (r Rule) ValidFrom() *time.Time { return copyTime(r.validFrom) }

// ValidUntil returns the inclusive end of the validity window, or nil.
func (r Rule) ValidUntil() *time.Time { return copyTime(r.validUntil) }

// ServiceTypes returns a copy of the service allow-list.
func (r Rule) ServiceTypes() []kernel.ServiceType {
	return append([]kernel.ServiceType(nil), r.serviceTypes...)
}

// Zones returns a copy of the zone allow-list.
func (r Rule) Zones() []string { return append([]string(nil), r.zones...) }

// ValidAt reports whether t lies within [ValidFrom, ValidUntil].
func (r Rule) ValidAt(t time.Time) bool {
	if r.validFrom != nil && t.Before(*r.validFrom) {
		return false
	}
	if r.validUntil != nil && t.After(*r.validUntil) {
		return false
	}
	return true
}

// AllowsService reports whether the rule applies to the service level.
func (r Rule) AllowsService(st kernel.ServiceType) bool {
	if len(r.serviceTypes) == 0 {
		return true
	}
	_, found := slices.BinarySearch(r.serviceTypes, st)
	return found
}

// AllowsZone reports whether the rule applies to the zone.
func (r Rule) AllowsZone(zoneCode string) bool {
	if len(r.zones) == 0 {
		return true
	}
	_, found := slices.BinarySearch(r.zones, zoneCode)
	return found
}

// WindowOverlaps reports whether the validity windows of r and other share
// at least one instant. Missing bounds are unbounded.
func (r Rule) WindowOverlaps(other Rule) bool {
	if r.validUntil != nil && other.validFrom != nil && r.validUntil.Before(*other.validFrom) {
		return false
	}
	if other.validUntil != nil && r.validFrom != nil && other.validUntil.Before(*r.validFrom) {
		return false
	}
	return true
}

// Scope identifies the rule in error messages.
func (r Rule) Scope() errs.Scope {
	return errs.Scope{RuleID: r.id}
}

// Compare orders rules within a stage: priority descending, then ID ascending.
func Compare(a, b Rule) int {
	if a.priority != b.priority {
		return b.priority - a.priority
	}
	return strings.Compare(a.id, b.id)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
