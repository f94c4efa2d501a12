package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/zone"
)

// Destination is what a shipment is resolved from. PostalCode takes precedence
// over Country alone; Point is used only when neither is given.
type Destination struct {
	Country    string
	PostalCode string
	Point      *kernel.GeoPoint
}

// ZoneResolver maps a destination to exactly one pricing zone.
//
// Resolution order for a postal code:
//   - catalog zones with postal ranges, then the metro table (local zone)
//   - the domestic country (domestic zone)
//   - the country mapper (overrides, catalog, continent, world)
//
// A postal-range match always outranks a country match. A malformed domestic
// postal code is not an error: the resolver logs a warning and returns the
// domestic zone.
//
// Example:
//
//	resolver := services.NewZoneResolver("PL", catalogZones, logger)
//	res := resolver.Resolve(ctx, services.Destination{Country: "PL", PostalCode: "00-001"})
//	// res.Code == "local", res.Method == zone.MethodPostal
type ZoneResolver struct {
	domestic string
	postal   PostalCodeMapper
	country  CountryZoneMapper
	metros   []MetroArea
	logger   *slog.Logger
}

// NewZoneResolver creates a resolver for the domestic country over the built-in
// metro table and the given catalog zones. An empty domestic country defaults
// to DefaultDomesticCountry; a nil logger discards output.
func NewZoneResolver(domesticCountry string, catalog []zone.PricingZone, logger *slog.Logger) ZoneResolver {
	domestic := normalizeCountry(domesticCountry)
	if domestic == "" {
		domestic = DefaultDomesticCountry
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	metros := DefaultMetroAreas()
	return ZoneResolver{
		domestic: domestic,
		postal:   NewPostalCodeMapper(catalog, metros),
		country:  NewCountryZoneMapper(catalog),
		metros:   metros,
		logger:   logger.With("component", "zone_resolver"),
	}
}

// DomesticCountry returns the configured home market.
func (r ZoneResolver) DomesticCountry() string {
	return r.domestic
}

// Resolve picks the most specific input present in dest.
func (r ZoneResolver) Resolve(ctx context.Context, dest Destination) zone.Resolution {
	switch {
	case strings.TrimSpace(dest.PostalCode) != "":
		return r.ResolvePostalCode(ctx, dest.Country, dest.PostalCode)
	case strings.TrimSpace(dest.Country) != "":
		return r.ResolveCountry(ctx, dest.Country)
	case dest.Point != nil:
		return r.ResolveCoordinates(ctx, *dest.Point)
	default:
		return r.fallback(ctx, "destination is empty")
	}
}

// ResolvePostalCode resolves a postal code within a country. An empty country
// is taken to be the domestic country.
func (r ZoneResolver) ResolvePostalCode(ctx context.Context, country, postalCode string) zone.Resolution {
	cc := normalizeCountry(country)
	if cc == "" {
		cc = r.domestic
	}
	normalized := zone.NormalizePostalCode(postalCode)

	if res, ok := r.postal.Match(cc, normalized); ok {
		return res
	}

	if cc != r.domestic {
		return r.ResolveCountry(ctx, cc)
	}

	if !IsWellFormed(cc, normalized) {
		return r.fallback(ctx, fmt.Sprintf("postal code %q is not a valid %s code", postalCode, cc))
	}
	return zone.Resolution{Code: zone.CodeDomestic, Type: zone.TypeDomestic, Method: zone.MethodDomestic, Matched: cc}
}

// ResolveCountry resolves a country without a postal code.
func (r ZoneResolver) ResolveCountry(ctx context.Context, country string) zone.Resolution {
	cc := normalizeCountry(country)
	if cc == r.domestic {
		return zone.Resolution{Code: zone.CodeDomestic, Type: zone.TypeDomestic, Method: zone.MethodDomestic, Matched: cc}
	}
	if !isCountryCode(cc) {
		r.logger.WarnContext(ctx, "Unrecognized country code, using world zone", "country", country)
		return zone.Resolution{
			Code:    zone.CodeWorld,
			Type:    zone.TypeWorld,
			Method:  zone.MethodFallback,
			Warning: fmt.Sprintf("country %q is not an ISO 3166 alpha-2 code", country),
		}
	}
	return r.country.Map(cc)
}

// ResolveCoordinates resolves a point: inside a metro radius is local, inside
// the domestic box is domestic, inside Europe splits west/east at 15°E, and
// anything else is world.
func (r ZoneResolver) ResolveCoordinates(_ context.Context, point kernel.GeoPoint) zone.Resolution {
	for _, metro := range r.metros {
		if metro.Country != r.domestic {
			continue
		}
		centre, err := kernel.NewGeoPoint(metro.Lat, metro.Lng)
		if err != nil {
			continue
		}
		if km, err := point.DistanceKm(centre); err == nil && km <= metro.RadiusKm {
			return zone.Resolution{Code: zone.CodeLocal, Type: zone.TypeLocal, Method: zone.MethodCoordinates, Matched: metro.Name}
		}
	}

	lat, lng := point.Lat(), point.Lng()
	if box, ok := domesticBoxes[r.domestic]; ok && box.contains(lat, lng) {
		return zone.Resolution{Code: zone.CodeDomestic, Type: zone.TypeDomestic, Method: zone.MethodCoordinates, Matched: r.domestic}
	}
	if europeBox.contains(lat, lng) {
		if lng < europeSplitLng {
			return zone.Resolution{Code: zone.CodeEUWest, Type: zone.TypeEUWest, Method: zone.MethodCoordinates}
		}
		return zone.Resolution{Code: zone.CodeEUEast, Type: zone.TypeEUEast, Method: zone.MethodCoordinates}
	}
	return zone.Resolution{Code: zone.CodeWorld, Type: zone.TypeWorld, Method: zone.MethodCoordinates}
}

func (r ZoneResolver) fallback(ctx context.Context, reason string) zone.Resolution {
	r.logger.WarnContext(ctx, "Falling back to domestic zone", "reason", reason, "country", r.domestic)
	return zone.Resolution{
		Code:    zone.CodeDomestic,
		Type:    zone.TypeDomestic,
		Method:  zone.MethodFallback,
		Matched: r.domestic,
		Warning: reason,
	}
}

func normalizeCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}

func isCountryCode(cc string) bool {
	if len(cc) != 2 {
		return false
	}
	for _, r := range cc {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
