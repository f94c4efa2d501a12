package snapshot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pricing/internal/core/domain/model/addon"
	"pricing/internal/core/domain/model/discount"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rate"
	"pricing/internal/core/domain/model/rulecontext"
	"pricing/internal/core/domain/model/zone"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Build converts a document into a Snapshot. Every malformed entry is
// reported; the returned error joins them with their location, for example
// "discountRules[3] (bf-2026): percent: value is invalid".
func Build(doc Document, version string) (*Snapshot, error) {
	s := &Snapshot{
		version:   version,
		carriers:  make(map[string]rate.Carrier, len(doc.Carriers)),
		customers: make(map[string]rulecontext.CustomerSnapshot, len(doc.Customers)),
	}

	var problems []error
	report := func(section string, i int, id string, err error) {
		if err == nil {
			return
		}
		problems = append(problems, fmt.Errorf("%s[%d] (%s): %w", section, i, id, err))
	}

	for i, d := range doc.Zones {
		z, err := buildZone(d)
		report("zones", i, d.Code, err)
		if err == nil {
			s.zones = append(s.zones, z)
		}
	}
	for i, d := range doc.Carriers {
		c, err := buildCarrier(d)
		report("carriers", i, d.Code, err)
		if err != nil {
			continue
		}
		if _, dup := s.carriers[c.Code()]; dup {
			report("carriers", i, d.Code, errors.New("duplicate carrier code"))
			continue
		}
		s.carriers[c.Code()] = c
	}
	for i, d := range doc.WeightRules {
		r, err := buildWeightRule(d)
		report("weightRules", i, d.ID, err)
		if err == nil {
			s.weightRules = append(s.weightRules, r)
		}
	}
	for i, d := range doc.DiscountRules {
		r, err := buildDiscountRule(d)
		report("discountRules", i, d.ID, err)
		if err == nil {
			s.discountRules = append(s.discountRules, r)
		}
	}
	for i, d := range doc.AdditionalServices {
		svc, err := buildService(d)
		report("additionalServices", i, d.Code, err)
		if err == nil {
			s.services = append(s.services, svc)
		}
	}
	for i, d := range doc.Customers {
		c, err := buildCustomer(d)
		report("customers", i, d.ID, err)
		if err == nil {
			s.customers[c.ID] = c
		}
	}

	if len(problems) > 0 {
		return nil, errs.NewConfigurationErrorWithCause(errs.Scope{}, "invalid snapshot "+version, errors.Join(problems...))
	}
	return s, nil
}

func buildZone(d ZoneDoc) (zone.PricingZone, error) {
	zoneType, err := zone.ParseZoneType(d.Type)
	if err != nil {
		return zone.PricingZone{}, err
	}
	ranges := make([]zone.PostalRange, 0, len(d.PostalRanges))
	for _, raw := range d.PostalRanges {
		from, to, ok := strings.Cut(raw, "..")
		if !ok {
			return zone.PricingZone{}, errs.NewValueIsInvalidErrorWithCause("postalRanges",
				fmt.Errorf("%q is not a FROM..TO range", raw))
		}
		r, err := zone.NewPostalRange(from, to)
		if err != nil {
			return zone.PricingZone{}, err
		}
		ranges = append(ranges, r)
	}
	return zone.NewPricingZone(d.Code, zoneType, d.Countries, ranges, boolOr(d.Active, true), d.Priority)
}

func buildCarrier(d CarrierDoc) (rate.Carrier, error) {
	var p rate.CarrierParams
	cur, curErr := kernel.NewCurrency(d.Currency)
	services, svcErr := serviceTypes(d.Services)
	err := errors.Join(
		curErr,
		svcErr,
		decimalField("volumetricDivisor", d.VolumetricDivisor, &p.VolumetricDivisor),
		decimalField("maxWeightKg", d.MaxWeightKg, &p.MaxWeightKg),
		decimalField("maxLongestSideCm", d.MaxLongestSideCm, &p.MaxLongestSideCm),
		decimalField("maxGirthCm", d.MaxGirthCm, &p.MaxGirthCm),
	)
	if err != nil {
		return rate.Carrier{}, err
	}
	if p.VolumetricDivisor.IsZero() {
		p.VolumetricDivisor = rate.DefaultVolumetricDivisor
	}
	p.Code = d.Code
	p.Name = d.Name
	p.SupportedZones = d.Zones
	p.SupportedServices = services
	p.Currency = cur
	p.Active = boolOr(d.Active, true)
	return rate.NewCarrier(p)
}

func buildWeightRule(d WeightRuleDoc) (rate.WeightRule, error) {
	var p rate.WeightRuleParams
	cur, curErr := kernel.NewCurrency(d.Currency)
	st, stErr := kernel.ParseServiceType(d.Service)
	err := errors.Join(
		curErr,
		stErr,
		decimalField("weightFrom", d.WeightFrom, &p.WeightFrom),
		decimalField("baseRate", d.BaseRate, &p.BaseRate),
		decimalField("ratePerKg", d.RatePerKg, &p.RatePerKg),
		decimalField("thresholdKg", d.ThresholdKg, &p.ThresholdKg),
		decimalField("minimumCharge", d.MinimumCharge, &p.MinimumCharge),
	)
	if strings.TrimSpace(d.WeightTo) != "" {
		var to decimal.Decimal
		err = errors.Join(err, decimalField("weightTo", d.WeightTo, &to))
		p.WeightTo = &to
	}
	if err != nil {
		return rate.WeightRule{}, err
	}
	p.ID = d.ID
	p.Carrier = strings.ToLower(strings.TrimSpace(d.Carrier))
	p.ZoneCode = d.Zone
	p.ServiceType = st
	p.Method = rate.Method(strings.ToLower(strings.TrimSpace(d.Method)))
	p.Currency = cur
	return rate.NewWeightRule(p)
}

func buildDiscountRule(d DiscountRuleDoc) (discount.Rule, error) {
	p := discount.RuleParams{
		ID:        d.ID,
		Name:      d.Name,
		Active:    boolOr(d.Active, true),
		Zones:     d.Zones,
		Priority:  d.Priority,
		Condition: d.Condition,
	}
	services, svcErr := serviceTypes(d.ServiceTypes)
	from, fromErr := parseTime("validFrom", d.ValidFrom, false)
	until, untilErr := parseTime("validUntil", d.ValidUntil, true)
	kind, kindErr := discount.ParseKind(d.Kind)
	err := errors.Join(svcErr, fromErr, untilErr, kindErr,
		decimalField("minOrderValue", d.MinOrderValue, &p.MinOrderValue))
	if err != nil {
		return discount.Rule{}, err
	}
	spec, err := buildSpec(kind, d.SpecDoc)
	if err != nil {
		return discount.Rule{}, err
	}
	p.ServiceTypes = services
	p.ValidFrom = from
	p.ValidUntil = until
	p.Spec = spec
	return discount.NewRule(p)
}

func buildSpec(kind discount.Kind, d SpecDoc) (discount.Spec, error) {
	switch kind {
	case discount.KindAdjustment:
		s := discount.AdjustmentSpec{Trigger: discount.AdjustmentTrigger(strings.ToLower(strings.TrimSpace(d.Trigger)))}
		shape, shapeErr := buildShape(d.Shape)
		err := errors.Join(shapeErr,
			decimalField("thresholdKg", d.ThresholdKg, &s.ThresholdKg),
			decimalField("thresholdCm", d.ThresholdCm, &s.ThresholdCm))
		s.Shape = shape
		return s, err
	case discount.KindContract:
		s := discount.ContractSpec{CustomerID: strings.TrimSpace(d.CustomerID)}
		tiers, tierErr := buildTiers(d.Tiers)
		s.Tiers = tiers
		if d.Shape != nil || len(tiers) == 0 {
			shape, shapeErr := buildShape(d.Shape)
			s.Shape = shape
			tierErr = errors.Join(tierErr, shapeErr)
		}
		return s, tierErr
	case discount.KindTiered:
		tiers, err := buildTiers(d.Tiers)
		return discount.TieredSpec{Tiers: tiers}, err
	case discount.KindProgressive:
		tiers, err := buildTiers(d.Tiers)
		if len(tiers) == 0 {
			tiers = discount.DefaultProgressiveTiers()
		}
		return discount.ProgressiveSpec{Tiers: tiers}, err
	case discount.KindVolume:
		tiers, err := buildVolumeTiers(d.VolumeTiers)
		if len(tiers) == 0 {
			tiers = discount.DefaultVolumeTiers()
		}
		return discount.VolumeSpec{Tiers: tiers}, err
	case discount.KindPromotion:
		return buildPromotion(d.Promotion)
	case discount.KindSeasonal:
		return buildSeasonal(d.Seasons)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("unsupported kind %q", kind))
	}
}

func buildShape(d *ShapeDoc) (discount.Shape, error) {
	if d == nil {
		return discount.Shape{}, errs.NewValueIsRequiredError("shape")
	}
	t, err := discount.ParseShapeType(d.Type)
	s := discount.Shape{Type: t}
	return s, errors.Join(err,
		decimalField("shape.value", d.Value, &s.Value),
		decimalField("shape.cap", d.Cap, &s.Cap))
}

func buildTiers(docs []TierDoc) ([]discount.Tier, error) {
	tiers := make([]discount.Tier, len(docs))
	var err error
	for i, d := range docs {
		err = errors.Join(err,
			decimalField(fmt.Sprintf("tiers[%d].threshold", i), d.Threshold, &tiers[i].Threshold),
			decimalField(fmt.Sprintf("tiers[%d].percent", i), d.Percent, &tiers[i].Percent))
	}
	return tiers, err
}

func buildVolumeTiers(docs []VolumeTierDoc) ([]discount.VolumeTier, error) {
	tiers := make([]discount.VolumeTier, len(docs))
	var err error
	for i, d := range docs {
		tiers[i].MinOrders = d.MinOrders
		err = errors.Join(err,
			decimalField(fmt.Sprintf("volumeTiers[%d].minSpend", i), d.MinSpend, &tiers[i].MinSpend),
			decimalField(fmt.Sprintf("volumeTiers[%d].percent", i), d.Percent, &tiers[i].Percent))
	}
	return tiers, err
}

func buildPromotion(d *PromotionDoc) (discount.Spec, error) {
	if d == nil {
		return nil, errs.NewValueIsRequiredError("promotion")
	}
	t, err := discount.ParsePromotionType(d.Type)
	s := discount.PromotionSpec{
		Code:        strings.ToUpper(strings.TrimSpace(d.Code)),
		Scope:       strings.TrimSpace(d.Scope),
		Type:        t,
		BuyQuantity: d.BuyQuantity,
		GetQuantity: d.GetQuantity,
	}
	err = errors.Join(err,
		decimalField("promotion.value", d.Value, &s.Value),
		decimalField("promotion.maxDiscountPerOrder", d.MaxDiscountPerOrder, &s.MaxDiscountPerOrder))
	return s, err
}

func buildSeasonal(docs map[string]string) (discount.Spec, error) {
	if len(docs) == 0 {
		return nil, errs.NewValueIsRequiredError("seasons")
	}
	percentages := make(map[kernel.Season]decimal.Decimal, len(docs))
	var err error
	for _, season := range kernel.AllSeasons() {
		raw, ok := docs[string(season)]
		if !ok {
			continue
		}
		var pct decimal.Decimal
		err = errors.Join(err, decimalField("seasons."+string(season), raw, &pct))
		percentages[season] = pct
	}
	for name := range docs {
		if _, parseErr := kernel.ParseSeason(name); parseErr != nil {
			err = errors.Join(err, parseErr)
		}
	}
	return discount.SeasonalSpec{Percentages: percentages}, err
}

func buildService(d ServiceDoc) (addon.Service, error) {
	p := addon.ServiceParams{Code: d.Code, Name: d.Name}
	cur, curErr := kernel.NewCurrency(d.Currency)
	method, methodErr := addon.ParseMethod(d.Method)
	err := errors.Join(curErr, methodErr,
		decimalField("amount", d.Amount, &p.Amount),
		decimalField("percent", d.Percent, &p.Percent),
		decimalField("minCharge", d.MinCharge, &p.MinCharge))
	if err != nil {
		return addon.Service{}, err
	}
	p.Method = method
	p.Currency = cur
	return addon.NewService(p)
}

func buildCustomer(d CustomerDoc) (rulecontext.CustomerSnapshot, error) {
	id := strings.TrimSpace(d.ID)
	if id == "" {
		return rulecontext.CustomerSnapshot{}, errs.NewValueIsRequiredError("customerId")
	}
	tier, err := rulecontext.ParseTier(d.Tier)
	c := rulecontext.CustomerSnapshot{
		ID:                id,
		Tier:              tier,
		MonthlyOrderCount: d.MonthlyOrderCount,
		IsFirstOrder:      d.IsFirstOrder,
	}
	if d.MonthlyOrderCount < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("monthlyOrderCount", d.MonthlyOrderCount, 0, "∞"))
	}
	err = errors.Join(err,
		decimalField("monthlySpend", d.MonthlySpend, &c.MonthlySpend),
		decimalField("lifetimeValue", d.LifetimeValue, &c.LifetimeValue))
	return c, err
}

// decimalField parses raw into dst. An empty string leaves dst at zero.
func decimalField(name, raw string, dst *decimal.Decimal) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	*dst = v
	return nil
}

// parseTime accepts RFC 3339 or a plain date. A plain date used as an upper
// bound means the last nanosecond of that day in UTC.
func parseTime(name, raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func serviceTypes(raw []string) ([]kernel.ServiceType, error) {
	out := make([]kernel.ServiceType, 0, len(raw))
	var err error
	for _, s := range raw {
		st, parseErr := kernel.ParseServiceType(s)
		if parseErr != nil {
			err = errors.Join(err, parseErr)
			continue
		}
		out = append(out, st)
	}
	return out, err
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
