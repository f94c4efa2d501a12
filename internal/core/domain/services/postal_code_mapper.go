package services

import (
	"slices"

	"pricing/internal/core/domain/model/zone"
)

// PostalCodeMapper matches a postal code to a local zone. Catalog zones with
// postal ranges are consulted first (priority descending, code ascending),
// then the metro table.
type PostalCodeMapper struct {
	catalog []zone.PricingZone
	metros  []MetroArea
}

// NewPostalCodeMapper creates a mapper over the postal-range zones of catalog
// and the given metro areas.
func NewPostalCodeMapper(catalog []zone.PricingZone, metros []MetroArea) PostalCodeMapper {
	ranged := make([]zone.PricingZone, 0, len(catalog))
	for _, z := range catalog {
		if z.IsActive() && len(z.PostalRanges()) > 0 {
			ranged = append(ranged, z)
		}
	}
	slices.SortFunc(ranged, zone.Less)
	return PostalCodeMapper{catalog: ranged, metros: metros}
}

// Match returns the zone resolution for a normalized postal code, or false
// when no range contains it.
func (m PostalCodeMapper) Match(country, postalCode string) (zone.Resolution, bool) {
	for _, z := range m.catalog {
		if z.MatchesPostal(country, postalCode) {
			return zone.Resolution{Code: z.Code(), Type: z.Type(), Method: zone.MethodPostal, Matched: z.Code()}, true
		}
	}
	for _, metro := range m.metros {
		if metro.Country != country {
			continue
		}
		for _, r := range metro.Ranges {
			if r.Contains(postalCode) {
				return zone.Resolution{
					Code:    zone.CodeLocal,
					Type:    zone.TypeLocal,
					Method:  zone.MethodPostal,
					Matched: metro.Name,
				}, true
			}
		}
	}
	return zone.Resolution{}, false
}

// IsWellFormed reports whether a normalized code fits the country's postal
// format. Countries without a known format accept any non-empty code.
func IsWellFormed(country, postalCode string) bool {
	if postalCode == "" {
		return false
	}
	format, ok := postalFormats[country]
	if !ok {
		return true
	}
	return format.MatchString(postalCode)
}
