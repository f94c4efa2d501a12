// Package ports defines the read-only collaborator contracts of the pricing
// core. Implementations serve an already loaded, consistent view of zones,
// tariffs, carriers, discount rules and customers; the core never writes
// through them.
package ports

import (
	"context"

	"pricing/internal/core/domain/model/addon"
	"pricing/internal/core/domain/model/discount"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rate"
	"pricing/internal/core/domain/model/rulecontext"
	"pricing/internal/core/domain/model/zone"
)

// ZoneCatalog provides the configured pricing zones.
type ZoneCatalog interface {
	// ListZones returns every zone, active or not. Callers filter and order.
	ListZones(ctx context.Context) ([]zone.PricingZone, error)
}

// WeightRuleRepository provides carrier tariffs.
type WeightRuleRepository interface {
	// ListForTariff returns the weight rules of one carrier, zone and service
	// level. An empty result is not an error; the calculator reports it as a
	// configuration problem with the tariff in scope.
	ListForTariff(ctx context.Context, carrier, zoneCode string, serviceType kernel.ServiceType) ([]rate.WeightRule, error)

	// ListAll returns every weight rule, used for consistency checks.
	ListAll(ctx context.Context) ([]rate.WeightRule, error)
}

// CarrierRepository provides carrier capability profiles.
type CarrierRepository interface {
	// Get returns the carrier with the given code or an errs.ObjectNotFoundError.
	Get(ctx context.Context, code string) (rate.Carrier, error)

	// ListActive returns active carriers ordered by code.
	ListActive(ctx context.Context) ([]rate.Carrier, error)
}

// DiscountRuleRepository provides discount rules.
type DiscountRuleRepository interface {
	// ListApplicable returns the rules that may apply to a shipment of the
	// given service level into the given zone. Contract rules of other
	// customers may be included; the engine filters them out. Eligibility
	// by date, flags and conditions is decided by the engine, not here.
	//
	// Example:
	//   rules, err := repo.ListApplicable(ctx, "acme", "domestic", kernel.ServiceExpress)
	//   if err != nil {
	//       return fmt.Errorf("load discount rules: %w", err)
	//   }
	//   res := engine.Apply(rc, rules, weight)
	ListApplicable(ctx context.Context, customerID, zoneCode string, serviceType kernel.ServiceType) ([]discount.Rule, error)

	// ListAll returns every configured rule in configured order, used for
	// consistency checks.
	ListAll(ctx context.Context) ([]discount.Rule, error)
}

// CustomerRepository provides customer snapshots for discount eligibility.
type CustomerRepository interface {
	// Get returns the customer's snapshot or an errs.ObjectNotFoundError.
	Get(ctx context.Context, customerID string) (rulecontext.CustomerSnapshot, error)
}

// AdditionalServiceCatalog provides the priced shipment extras.
type AdditionalServiceCatalog interface {
	// ListServices returns every bookable additional service.
	ListServices(ctx context.Context) ([]addon.Service, error)
}
