package snapshot

import (
	"context"
	"slices"
	"strings"

	"pricing/internal/core/domain/model/addon"
	"pricing/internal/core/domain/model/discount"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rate"
	"pricing/internal/core/domain/model/rulecontext"
	"pricing/internal/core/domain/model/zone"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"
)

var _ ports.Snapshot = (*Snapshot)(nil)

// Snapshot is an immutable in-memory view of the pricing data. It is built
// once by Build and only read afterwards, so it is safe for concurrent use.
type Snapshot struct {
	version       string
	zones         []zone.PricingZone
	carriers      map[string]rate.Carrier
	weightRules   []rate.WeightRule
	discountRules []discount.Rule
	services      []addon.Service
	customers     map[string]rulecontext.CustomerSnapshot
}

func (s *Snapshot) Version() string { return s.version }

func (s *Snapshot) Zones() ports.ZoneCatalog                           { return zoneCatalog{s} }
func (s *Snapshot) WeightRules() ports.WeightRuleRepository            { return weightRuleRepository{s} }
func (s *Snapshot) Carriers() ports.CarrierRepository                  { return carrierRepository{s} }
func (s *Snapshot) DiscountRules() ports.DiscountRuleRepository        { return discountRuleRepository{s} }
func (s *Snapshot) AdditionalServices() ports.AdditionalServiceCatalog { return serviceCatalog{s} }
func (s *Snapshot) Customers() ports.CustomerRepository                { return customerRepository{s} }

type zoneCatalog struct{ s *Snapshot }

func (c zoneCatalog) ListZones(ctx context.Context) ([]zone.PricingZone, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(c.s.zones), nil
}

type weightRuleRepository struct{ s *Snapshot }

func (r weightRuleRepository) ListForTariff(
	ctx context.Context,
	carrier, zoneCode string,
	serviceType kernel.ServiceType,
) ([]rate.WeightRule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []rate.WeightRule
	for _, rule := range r.s.weightRules {
		if strings.EqualFold(rule.Carrier(), carrier) &&
			strings.EqualFold(rule.ZoneCode(), zoneCode) &&
			rule.ServiceType() == serviceType {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r weightRuleRepository) ListAll(ctx context.Context) ([]rate.WeightRule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(r.s.weightRules), nil
}

type carrierRepository struct{ s *Snapshot }

func (r carrierRepository) Get(ctx context.Context, code string) (rate.Carrier, error) {
	if err := ctx.Err(); err != nil {
		return rate.Carrier{}, err
	}
	c, ok := r.s.carriers[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return rate.Carrier{}, errs.NewObjectNotFoundError("carrier", code)
	}
	return c, nil
}

func (r carrierRepository) ListActive(ctx context.Context) ([]rate.Carrier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]rate.Carrier, 0, len(r.s.carriers))
	for _, c := range r.s.carriers {
		if c.IsActive() {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b rate.Carrier) int { return strings.Compare(a.Code(), b.Code()) })
	return out, nil
}

type discountRuleRepository struct{ s *Snapshot }

// ListApplicable filters by zone and service restriction and drops contracts
// that belong to another customer. Rules keep their configured order.
func (r discountRuleRepository) ListApplicable(
	ctx context.Context,
	customerID, zoneCode string,
	serviceType kernel.ServiceType,
) ([]discount.Rule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []discount.Rule
	for _, rule := range r.s.discountRules {
		if !rule.AllowsZone(zoneCode) || !rule.AllowsService(serviceType) {
			continue
		}
		if c, ok := rule.Spec().(discount.ContractSpec); ok && c.CustomerID != "" && c.CustomerID != customerID {
			continue
		}
		out = append(out, rule)
	}
	return out, nil
}

func (r discountRuleRepository) ListAll(ctx context.Context) ([]discount.Rule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(r.s.discountRules), nil
}

type serviceCatalog struct{ s *Snapshot }

func (c serviceCatalog) ListServices(ctx context.Context) ([]addon.Service, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(c.s.services), nil
}

type customerRepository struct{ s *Snapshot }

func (r customerRepository) Get(ctx context.Context, customerID string) (rulecontext.CustomerSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return rulecontext.CustomerSnapshot{}, err
	}
	c, ok := r.s.customers[strings.TrimSpace(customerID)]
	if !ok {
		return rulecontext.CustomerSnapshot{}, errs.NewObjectNotFoundError("customer", customerID)
	}
	return c, nil
}
