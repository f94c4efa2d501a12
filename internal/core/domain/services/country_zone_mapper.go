package services

import (
	"slices"

	"pricing/internal/core/domain/model/zone"
)

// CountryZoneMapper maps a country code to a zone. Lookup order: explicit
// overrides, catalog zones matched by country, continental classification,
// then the world zone.
type CountryZoneMapper struct {
	catalog []zone.PricingZone
}

// NewCountryZoneMapper creates a mapper over the country-level zones of catalog.
func NewCountryZoneMapper(catalog []zone.PricingZone) CountryZoneMapper {
	byCountry := make([]zone.PricingZone, 0, len(catalog))
	for _, z := range catalog {
		if z.IsActive() && len(z.PostalRanges()) == 0 && len(z.Countries()) > 0 {
			byCountry = append(byCountry, z)
		}
	}
	slices.SortFunc(byCountry, zone.Less)
	return CountryZoneMapper{catalog: byCountry}
}

// Map resolves an upper-case ISO 3166 alpha-2 country code.
func (m CountryZoneMapper) Map(country string) zone.Resolution {
	if code, ok := zoneOverrides[country]; ok {
		return zone.Resolution{Code: code, Type: zone.ZoneType(code), Method: zone.MethodOverride, Matched: country}
	}
	for _, z := range m.catalog {
		if z.MatchesCountry(country) {
			return zone.Resolution{Code: z.Code(), Type: z.Type(), Method: zone.MethodCatalog, Matched: z.Code()}
		}
	}
	if code, ok := continentalZones[country]; ok {
		return zone.Resolution{Code: code, Type: zone.ZoneType(code), Method: zone.MethodContinent, Matched: country}
	}
	return zone.Resolution{Code: zone.CodeWorld, Type: zone.TypeWorld, Method: zone.MethodFallback, Matched: country}
}
