package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"pricing/internal/core/domain/model/addon"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rate"
	"pricing/internal/core/domain/model/result"
	"pricing/internal/core/domain/model/zone"
	"pricing/internal/core/domain/services"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultTaxRatePercent is the flat VAT rate applied to the discounted subtotal.
var DefaultTaxRatePercent = decimal.NewFromInt(23)

var hundred = decimal.NewFromInt(100)

// ServiceCharge is one priced additional service.
type ServiceCharge struct {
	Code   string       `json:"code"`
	Name   string       `json:"name"`
	Amount kernel.Money `json:"amount"`
}

// PriceQuote is the full price of one shipment with one carrier.
// A quote is immutable once returned; cached quotes are shared.
type PriceQuote struct {
	Carrier       string              `json:"carrier"`
	Zone          zone.Resolution     `json:"zone"`
	ServiceType   kernel.ServiceType  `json:"serviceType"`
	Weight        result.WeightDetail `json:"weight"`
	WeightRuleID  string              `json:"weightRuleId"`
	RateBreakdown string              `json:"rateBreakdown"`
	BasePrice     kernel.Money        `json:"basePrice"`
	Services      []ServiceCharge     `json:"services"`
	ServicesTotal kernel.Money        `json:"servicesTotal"`
	Subtotal      kernel.Money        `json:"subtotal"`
	Discounts     result.RuleResult   `json:"discounts"`
	TaxRate       decimal.Decimal     `json:"taxRatePercent"`
	Tax           kernel.Money        `json:"tax"`
	Total         kernel.Money        `json:"total"`
	Currency      kernel.Currency     `json:"currency"`
	Warnings      []string            `json:"warnings"`
	SnapshotID    string              `json:"snapshotVersion"`
	CalculatedAt  time.Time           `json:"calculatedAt"`
}

// MetricsRecorder receives calculation telemetry. The pricer works without one.
type MetricsRecorder interface {
	ObserveCalculation(operation string, kind errs.Kind, elapsed time.Duration)
	AddDiscount(kind string, amount decimal.Decimal)
}

type noopMetrics struct{}

func (noopMetrics) ObserveCalculation(string, errs.Kind, time.Duration) {}
func (noopMetrics) AddDiscount(string, decimal.Decimal)                 {}

// ShipmentPricerDeps wires a ShipmentPricer.
type ShipmentPricerDeps struct {
	Snapshots       ports.SnapshotProvider
	Conditions      *services.ConditionEvaluator
	DomesticCountry string
	TaxRatePercent  *decimal.Decimal
	Cache           *services.QuoteCache[PriceQuote]
	Metrics         MetricsRecorder
	Now             func() time.Time
	Logger          *slog.Logger
}

// ShipmentPricer runs the single-shipment pricing path:
//
//	request → zone → carrier capability → base rate → additional services
//	        → discounts → tax → quote
//
// Comparison and bulk handlers call it once per carrier or item with the
// same snapshot; it holds no per-calculation state and is safe for
// concurrent use.
type ShipmentPricer struct {
	snapshots  ports.SnapshotProvider
	calculator services.RateCalculator
	validator  services.RuleValidator
	engine     services.DiscountEngine
	domestic   string
	taxRate    decimal.Decimal
	cache      *services.QuoteCache[PriceQuote]
	metrics    MetricsRecorder
	now        func() time.Time
	logger     *slog.Logger
}

// NewShipmentPricer creates a pricer. Snapshots and Conditions are required.
func NewShipmentPricer(deps ShipmentPricerDeps) (*ShipmentPricer, error) {
	if deps.Snapshots == nil {
		return nil, errors.New("shipment pricer: snapshot provider is required")
	}
	if deps.Conditions == nil {
		return nil, errors.New("shipment pricer: condition evaluator is required")
	}
	taxRate := DefaultTaxRatePercent
	if deps.TaxRatePercent != nil {
		taxRate = *deps.TaxRatePercent
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(hundred) {
		return nil, fmt.Errorf("shipment pricer: tax rate %s%% is out of range", taxRate)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	validator := services.NewRuleValidator(deps.Conditions)
	return &ShipmentPricer{
		snapshots:  deps.Snapshots,
		calculator: services.NewRateCalculator(),
		validator:  validator,
		engine:     services.NewDiscountEngine(validator, deps.Conditions),
		domestic:   deps.DomesticCountry,
		taxRate:    taxRate,
		cache:      deps.Cache,
		metrics:    metrics,
		now:        now,
		logger:     logger.With("component", "shipment_pricer"),
	}, nil
}

// Snapshot returns the snapshot new calculations should read from.
func (p *ShipmentPricer) Snapshot() ports.Snapshot {
	return p.snapshots.Current()
}

// PurgeCache drops memoized quotes.
func (p *ShipmentPricer) PurgeCache() {
	if p.cache != nil {
		p.cache.Purge()
	}
}

// Price prices s against snapshot and records telemetry under operation.
func (p *ShipmentPricer) Price(ctx context.Context, snapshot ports.Snapshot, s Shipment, operation string) (PriceQuote, error) {
	started := p.now()
	quote, err := p.price(ctx, snapshot, s)
	p.metrics.ObserveCalculation(operation, errs.KindOf(err), p.now().Sub(started))
	if err != nil {
		p.logger.DebugContext(ctx, "shipment not priced",
			"operation", operation, "carrier", s.Carrier, "kind", errs.KindOf(err), "error", err)
		return PriceQuote{}, err
	}
	for _, entry := range quote.Discounts.DiscountBreakdown {
		p.metrics.AddDiscount(string(entry.Type), entry.Amount.Amount())
	}
	return quote, nil
}

func (p *ShipmentPricer) price(ctx context.Context, snapshot ports.Snapshot, s Shipment) (PriceQuote, error) {
	if err := ctx.Err(); err != nil {
		return PriceQuote{}, err
	}
	if s.Carrier == "" {
		return PriceQuote{}, errs.NewValidationError(errs.Violation{Field: "carrier", Message: "is required"})
	}
	calculatedAt := p.now().UTC()

	key := p.cacheKey(snapshot, s, calculatedAt)
	if p.cache != nil {
		if cached, ok := p.cache.Get(key); ok {
			cached.CalculatedAt = calculatedAt
			return cached, nil
		}
	}

	resolution, err := p.resolveZone(ctx, snapshot, s)
	if err != nil {
		return PriceQuote{}, err
	}
	scope := errs.Scope{Carrier: s.Carrier, Zone: resolution.Code, Service: string(s.ServiceType), Weight: s.Weight.String()}

	carrier, err := snapshot.Carriers().Get(ctx, s.Carrier)
	if err != nil {
		return PriceQuote{}, fmt.Errorf("load carrier %s: %w", s.Carrier, err)
	}
	if err = carrier.CheckCapacity(resolution.Code, s.ServiceType, s.Weight, s.Dimensions); err != nil {
		return PriceQuote{}, err
	}

	weightRules, err := snapshot.WeightRules().ListForTariff(ctx, carrier.Code(), resolution.Code, s.ServiceType)
	if err != nil {
		return PriceQuote{}, fmt.Errorf("load weight rules [%s]: %w", scope, err)
	}
	if violations := p.validator.ValidateWeightRules(weightRules); len(violations) > 0 {
		return PriceQuote{}, errs.NewValidationError(violations...)
	}
	rateQuote, err := p.calculator.Calculate(carrier, resolution.Code, s.ServiceType, s.Weight, s.Dimensions, weightRules)
	if err != nil {
		return PriceQuote{}, err
	}
	currency := rateQuote.BasePrice.Currency()

	charges, servicesTotal, err := p.priceServices(ctx, snapshot, s, currency, rateQuote.Weight.Chargeable, scope)
	if err != nil {
		return PriceQuote{}, err
	}
	subtotal, err := rateQuote.BasePrice.Add(servicesTotal)
	if err != nil {
		return PriceQuote{}, errs.NewCalculationError(scope, "subtotal", err)
	}

	factory := services.NewContextFactory(snapshot.Customers(), func() time.Time { return calculatedAt }, p.logger)
	rc, err := factory.Create(s.Weight, s.Dimensions, s.ServiceType, resolution.Code, subtotal)
	if err != nil {
		return PriceQuote{}, errs.NewCalculationError(scope, "rule context", err)
	}
	rc, warnings, err := factory.WithCustomer(ctx, rc, s.CustomerID)
	if err != nil {
		return PriceQuote{}, err
	}
	declared, err := kernel.NewMoney(s.DeclaredValue, currency)
	if err != nil {
		return PriceQuote{}, errs.NewCalculationError(scope, "declared value", err)
	}
	rc = rc.WithPromoCodes(s.PromoCodes...).WithItemCount(s.ItemCount).WithDeclaredValue(declared)

	discountRules, err := snapshot.DiscountRules().ListApplicable(ctx, s.CustomerID, resolution.Code, s.ServiceType)
	if err != nil {
		return PriceQuote{}, fmt.Errorf("load discount rules [%s]: %w", scope, err)
	}
	discounts := p.engine.Apply(rc, discountRules, rateQuote.Weight)
	if len(warnings) > 0 {
		discounts.Warnings = slices.Concat(warnings, discounts.Warnings)
	}

	quote := PriceQuote{
		Carrier:       carrier.Code(),
		Zone:          resolution,
		ServiceType:   s.ServiceType,
		Weight:        rateQuote.Weight,
		WeightRuleID:  rateQuote.RuleID,
		RateBreakdown: rateQuote.Breakdown,
		BasePrice:     rateQuote.BasePrice,
		Services:      charges,
		ServicesTotal: servicesTotal,
		Subtotal:      subtotal,
		Discounts:     discounts,
		TaxRate:       p.taxRate,
		Currency:      currency,
		SnapshotID:    snapshot.Version(),
		CalculatedAt:  calculatedAt,
	}
	if quote, err = quote.withTax(scope); err != nil {
		return PriceQuote{}, err
	}
	quote.Warnings = quoteWarnings(resolution, discounts)

	if p.cache != nil {
		p.cache.Put(key, quote)
	}
	return quote, nil
}

// Discount runs only the discount stage for s starting from basePrice. The
// chargeable weight uses the default volumetric divisor since no carrier is
// involved. Additional services are priced and added to the base first.
func (p *ShipmentPricer) Discount(
	ctx context.Context,
	snapshot ports.Snapshot,
	s Shipment,
	basePrice kernel.Money,
	operation string,
) (result.RuleResult, error) {
	started := p.now()
	res, err := p.discount(ctx, snapshot, s, basePrice)
	p.metrics.ObserveCalculation(operation, errs.KindOf(err), p.now().Sub(started))
	if err != nil {
		return result.RuleResult{}, err
	}
	for _, entry := range res.DiscountBreakdown {
		p.metrics.AddDiscount(string(entry.Type), entry.Amount.Amount())
	}
	return res, nil
}

func (p *ShipmentPricer) discount(
	ctx context.Context,
	snapshot ports.Snapshot,
	s Shipment,
	basePrice kernel.Money,
) (result.RuleResult, error) {
	if err := ctx.Err(); err != nil {
		return result.RuleResult{}, err
	}
	scope := errs.Scope{Zone: s.ZoneCode, Service: string(s.ServiceType), Weight: s.Weight.String()}

	volumetric, err := s.Dimensions.VolumetricWeight(rate.DefaultVolumetricDivisor)
	if err != nil {
		return result.RuleResult{}, errs.NewCalculationError(scope, "volumetric weight", err)
	}
	weight := result.NewWeightDetail(s.Weight.Kg(), volumetric)

	_, servicesTotal, err := p.priceServices(ctx, snapshot, s, basePrice.Currency(), weight.Chargeable, scope)
	if err != nil {
		return result.RuleResult{}, err
	}
	price, err := basePrice.Add(servicesTotal)
	if err != nil {
		return result.RuleResult{}, errs.NewCalculationError(scope, "subtotal", err)
	}

	factory := services.NewContextFactory(snapshot.Customers(), p.now, p.logger)
	rc, err := factory.Create(s.Weight, s.Dimensions, s.ServiceType, s.ZoneCode, price)
	if err != nil {
		return result.RuleResult{}, errs.NewCalculationError(scope, "rule context", err)
	}
	rc, warnings, err := factory.WithCustomer(ctx, rc, s.CustomerID)
	if err != nil {
		return result.RuleResult{}, err
	}
	declared, err := kernel.NewMoney(s.DeclaredValue, basePrice.Currency())
	if err != nil {
		return result.RuleResult{}, errs.NewCalculationError(scope, "declared value", err)
	}
	rc = rc.WithPromoCodes(s.PromoCodes...).WithItemCount(s.ItemCount).WithDeclaredValue(declared)

	rules, err := snapshot.DiscountRules().ListApplicable(ctx, s.CustomerID, s.ZoneCode, s.ServiceType)
	if err != nil {
		return result.RuleResult{}, fmt.Errorf("load discount rules [%s]: %w", scope, err)
	}
	res := p.engine.Apply(rc, rules, weight)
	if len(warnings) > 0 {
		res.Warnings = slices.Concat(warnings, res.Warnings)
	}
	return res, nil
}

func (p *ShipmentPricer) resolveZone(ctx context.Context, snapshot ports.Snapshot, s Shipment) (zone.Resolution, error) {
	if s.ZoneCode != "" {
		return zone.Resolution{Code: s.ZoneCode, Method: zone.MethodCatalog, Matched: s.ZoneCode}, nil
	}
	zones, err := snapshot.Zones().ListZones(ctx)
	if err != nil {
		return zone.Resolution{}, fmt.Errorf("load zones: %w", err)
	}
	resolver := services.NewZoneResolver(p.domestic, zones, p.logger)
	return resolver.Resolve(ctx, s.Destination), nil
}

func (p *ShipmentPricer) priceServices(
	ctx context.Context,
	snapshot ports.Snapshot,
	s Shipment,
	currency kernel.Currency,
	chargeableKg decimal.Decimal,
	scope errs.Scope,
) ([]ServiceCharge, kernel.Money, error) {
	total := kernel.ZeroMoney(currency)
	charges := make([]ServiceCharge, 0, len(s.AdditionalServices))
	if len(s.AdditionalServices) == 0 {
		return charges, total, nil
	}

	catalog, err := snapshot.AdditionalServices().ListServices(ctx)
	if err != nil {
		return nil, kernel.Money{}, fmt.Errorf("load additional services: %w", err)
	}
	byCode := make(map[string]addon.Service, len(catalog))
	for _, svc := range catalog {
		byCode[svc.Code()] = svc
	}

	declared, err := kernel.NewMoney(s.DeclaredValue, currency)
	if err != nil {
		return nil, kernel.Money{}, errs.NewCalculationError(scope, "declared value", err)
	}

	var violations []errs.Violation
	for i, code := range s.AdditionalServices {
		svc, found := byCode[code]
		switch {
		case !found:
			violations = append(violations, errs.Violation{
				Field: fmt.Sprintf("additionalServices[%d]", i), Message: fmt.Sprintf("unknown service %q", code),
			})
			continue
		case svc.Currency() != currency:
			return nil, kernel.Money{}, errs.NewConfigurationError(scope,
				fmt.Sprintf("service %s is priced in %s, carrier in %s", code, svc.Currency(), currency))
		case slices.ContainsFunc(charges, func(c ServiceCharge) bool { return c.Code == code }):
			continue
		}
		amount, err := svc.Price(declared, chargeableKg)
		if err != nil {
			return nil, kernel.Money{}, errs.NewCalculationError(scope, "additional service "+code, err)
		}
		charges = append(charges, ServiceCharge{Code: svc.Code(), Name: svc.Name(), Amount: amount})
		if total, err = total.Add(amount); err != nil {
			return nil, kernel.Money{}, errs.NewCalculationError(scope, "additional services", err)
		}
	}
	if len(violations) > 0 {
		return nil, kernel.Money{}, errs.NewValidationError(violations...)
	}
	return charges, total, nil
}

// withTax recomputes tax and total from the discounted price.
func (q PriceQuote) withTax(scope errs.Scope) (PriceQuote, error) {
	taxable := q.Discounts.FinalPrice
	tax, err := kernel.NewMoney(taxable.Amount().Mul(q.TaxRate).Div(hundred), q.Currency)
	if err != nil {
		return PriceQuote{}, errs.NewCalculationError(scope, "tax", err)
	}
	total, err := taxable.Add(tax)
	if err != nil {
		return PriceQuote{}, errs.NewCalculationError(scope, "total", err)
	}
	q.Tax = tax
	q.Total = total
	return q, nil
}

func quoteWarnings(resolution zone.Resolution, discounts result.RuleResult) []string {
	warnings := make([]string, 0, len(discounts.Warnings)+1)
	if resolution.Warning != "" {
		warnings = append(warnings, resolution.Warning)
	}
	return append(warnings, discounts.Warnings...)
}

// cacheKey covers every input of a calculation. The snapshot version keeps
// quotes from an older snapshot from being served after a reload. The instant
// is truncated to the cache TTL, so a rule window opening or closing is picked
// up no later than the next TTL bucket.
func (p *ShipmentPricer) cacheKey(snapshot ports.Snapshot, s Shipment, at time.Time) string {
	bucket := at
	if p.cache != nil {
		bucket = at.Truncate(p.cache.TTL())
	}
	point := ""
	if s.Destination.Point != nil {
		point = s.Destination.Point.String()
	}
	promo := slices.Clone(s.PromoCodes)
	slices.Sort(promo)
	extras := slices.Clone(s.AdditionalServices)
	slices.Sort(extras)

	return services.QuoteKey(
		snapshot.Version(),
		bucket.Format(time.RFC3339),
		s.Carrier,
		s.ZoneCode,
		s.Destination.Country,
		s.Destination.PostalCode,
		point,
		s.Weight.Kg().String(),
		s.Dimensions.String(),
		string(s.ServiceType),
		s.CustomerID,
		strings.Join(promo, ","),
		strings.Join(extras, ","),
		s.DeclaredValue.String(),
		fmt.Sprint(s.ItemCount),
	)
}
