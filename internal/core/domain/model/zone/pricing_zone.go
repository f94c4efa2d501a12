package zone

import (
	"slices"
	"strings"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

// ErrPricingZoneIsNotConstructed is returned when a zero-value PricingZone is used.
var ErrPricingZoneIsNotConstructed = errs.NewValueIsRequiredError("pricing zone must be created via NewPricingZone")

// PricingZone is a geographic pricing bucket loaded from the zone catalog.
//
// A zone matches a destination when it is active and either one of its postal
// ranges contains the postal code (for a country it covers), or, for zones
// without postal ranges, the destination country is in its country set.
// When several zones match, the one with the highest priority wins and the
// zone code breaks ties.
type PricingZone struct { //nolint:recvcheck //using for validation
	code         string
	zoneType     ZoneType
	countries    []string
	postalRanges []PostalRange
	active       bool
	priority     int
	guard        guard.ConstructorGuard
}

// NewPricingZone creates a PricingZone. Country codes are upper-cased.
func NewPricingZone(
	code string,
	zoneType ZoneType,
	countries []string,
	postalRanges []PostalRange,
	active bool,
	priority int,
) (PricingZone, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return PricingZone{}, errs.NewValueIsRequiredError("zoneCode")
	}
	if _, err := ParseZoneType(string(zoneType)); err != nil {
		return PricingZone{}, err
	}

	normalized := make([]string, 0, len(countries))
	for _, c := range countries {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		normalized = append(normalized, c)
	}
	slices.Sort(normalized)

	return PricingZone{
		code:         code,
		zoneType:     zoneType,
		countries:    slices.Compact(normalized),
		postalRanges: append([]PostalRange(nil), postalRanges...),
		active:       active,
		priority:     priority,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the zone was created through NewPricingZone.
func (z PricingZone) Validate() error {
	return z.guard.Validate(ErrPricingZoneIsNotConstructed)
}

// Code returns the zone code.
func (z PricingZone) Code() string { return z.code }

// Type returns the zone classification.
func (z PricingZone) Type() ZoneType { return z.zoneType }

// Countries returns a copy of the sorted country set.
func (z PricingZone) Countries() []string { return append([]string(nil), z.countries...) }

// PostalRanges returns a copy of the postal ranges.
func (z PricingZone) PostalRanges() []PostalRange {
	return append([]PostalRange(nil), z.postalRanges...)
}

// IsActive reports whether the zone takes part in resolution.
func (z PricingZone) IsActive() bool { return z.active }

// Priority orders overlapping zones; higher wins.
func (z PricingZone) Priority() int { return z.priority }

// CoversCountry reports whether country is in the zone's country set.
func (z PricingZone) CoversCountry(country string) bool {
	_, found := slices.BinarySearch(z.countries, strings.ToUpper(strings.TrimSpace(country)))
	return found
}

// MatchesPostal reports whether the zone is active, covers the country (or has
// no country restriction) and contains the postal code in one of its ranges.
func (z PricingZone) MatchesPostal(country, postalCode string) bool {
	if !z.active || len(z.postalRanges) == 0 {
		return false
	}
	if len(z.countries) > 0 && !z.CoversCountry(country) {
		return false
	}
	for _, r := range z.postalRanges {
		if r.Contains(postalCode) {
			return true
		}
	}
	return false
}

// MatchesCountry reports whether an active zone without postal ranges covers
// the country.
func (z PricingZone) MatchesCountry(country string) bool {
	return z.active && len(z.postalRanges) == 0 && z.CoversCountry(country)
}

// Less orders zones for resolution: priority descending, then code ascending.
func Less(a, b PricingZone) int {
	if a.priority != b.priority {
		return b.priority - a.priority
	}
	return strings.Compare(a.code, b.code)
}
