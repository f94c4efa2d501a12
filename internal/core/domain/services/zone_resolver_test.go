package services_test

import (
	"testing"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/zone"
	"pricing/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneResolver_ResolvePostalCode(t *testing.T) {
	resolver := services.NewZoneResolver("PL", nil, nil)

	testCases := []struct {
		name    string
		country string
		postal  string
		code    string
		method  zone.Method
		warning bool
	}{
		{name: "warsaw metro is local", country: "PL", postal: "00-001", code: zone.CodeLocal, method: zone.MethodPostal},
		{name: "lodz upper bound is local", country: "pl", postal: "94 999", code: zone.CodeLocal, method: zone.MethodPostal},
		{name: "no metro match is domestic", country: "PL", postal: "99-999", code: zone.CodeDomestic, method: zone.MethodDomestic},
		{name: "empty country means domestic", country: "", postal: "99-999", code: zone.CodeDomestic, method: zone.MethodDomestic},
		{name: "malformed domestic code falls back", country: "PL", postal: "ABC", code: zone.CodeDomestic, method: zone.MethodFallback, warning: true},
		{name: "foreign postal code uses the country", country: "DE", postal: "10115", code: zone.CodeEUWest, method: zone.MethodContinent},
		{name: "sanctioned country is forced to world", country: "RU", postal: "101000", code: zone.CodeWorld, method: zone.MethodOverride},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := resolver.ResolvePostalCode(t.Context(), tc.country, tc.postal)

			assert.Equal(t, tc.code, res.Code)
			assert.Equal(t, tc.method, res.Method)
			assert.Equal(t, tc.warning, res.Warning != "")
		})
	}
}

func TestZoneResolver_ResolveCountry(t *testing.T) {
	resolver := services.NewZoneResolver("", nil, nil)
	require.Equal(t, "PL", resolver.DomesticCountry())

	testCases := map[string]string{
		"PL": zone.CodeDomestic,
		"fr": zone.CodeEUWest,
		"CZ": zone.CodeEUEast,
		"NO": zone.CodeEurope,
		"BY": zone.CodeWorld,
		"US": zone.CodeWorld,
		"??": zone.CodeWorld,
	}
	for country, want := range testCases {
		res := resolver.ResolveCountry(t.Context(), country)

		assert.Equal(t, want, res.Code, "country %s", country)
	}
}

func TestZoneResolver_Catalog(t *testing.T) {
	tricity, err := zone.NewPricingZone("tricity", zone.TypeLocal, []string{"PL"},
		[]zone.PostalRange{zone.MustPostalRange("81-001", "81-999")}, true, 10)
	require.NoError(t, err)
	nordics, err := zone.NewPricingZone("nordics", zone.TypeEurope, []string{"SE", "NO", "FI", "DK"}, nil, true, 5)
	require.NoError(t, err)
	inactive, err := zone.NewPricingZone("closed", zone.TypeLocal, []string{"PL"},
		[]zone.PostalRange{zone.MustPostalRange("99-000", "99-999")}, false, 99)
	require.NoError(t, err)

	resolver := services.NewZoneResolver("PL", []zone.PricingZone{tricity, nordics, inactive}, nil)

	t.Run("catalog postal zone outranks domestic", func(t *testing.T) {
		res := resolver.ResolvePostalCode(t.Context(), "PL", "81-300")

		assert.Equal(t, "tricity", res.Code)
		assert.Equal(t, zone.MethodPostal, res.Method)
	})

	t.Run("catalog country zone outranks continent", func(t *testing.T) {
		res := resolver.ResolveCountry(t.Context(), "SE")

		assert.Equal(t, "nordics", res.Code)
		assert.Equal(t, zone.MethodCatalog, res.Method)
	})

	t.Run("inactive zones are ignored", func(t *testing.T) {
		res := resolver.ResolvePostalCode(t.Context(), "PL", "99-999")

		assert.Equal(t, zone.CodeDomestic, res.Code)
	})
}

func TestZoneResolver_ResolveCoordinates(t *testing.T) {
	resolver := services.NewZoneResolver("PL", nil, nil)
	point := func(lat, lng float64) kernel.GeoPoint {
		p, err := kernel.NewGeoPoint(lat, lng)
		require.NoError(t, err)
		return p
	}

	testCases := []struct {
		name string
		lat  float64
		lng  float64
		code string
	}{
		{name: "warsaw centre", lat: 52.23, lng: 21.01, code: zone.CodeLocal},
		{name: "rural poland", lat: 53.5, lng: 22.5, code: zone.CodeDomestic},
		{name: "paris", lat: 48.8566, lng: 2.3522, code: zone.CodeEUWest},
		{name: "budapest", lat: 47.4979, lng: 19.0402, code: zone.CodeEUEast},
		{name: "new york", lat: 40.7128, lng: -74.0060, code: zone.CodeWorld},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := resolver.ResolveCoordinates(t.Context(), point(tc.lat, tc.lng))

			assert.Equal(t, tc.code, res.Code)
			assert.Equal(t, zone.MethodCoordinates, res.Method)
		})
	}
}

func TestZoneResolver_Resolve(t *testing.T) {
	resolver := services.NewZoneResolver("PL", nil, nil)

	t.Run("postal code outranks country", func(t *testing.T) {
		res := resolver.Resolve(t.Context(), services.Destination{Country: "PL", PostalCode: "30-100"})

		assert.Equal(t, zone.CodeLocal, res.Code)
	})

	t.Run("empty destination is a domestic fallback", func(t *testing.T) {
		res := resolver.Resolve(t.Context(), services.Destination{})

		assert.Equal(t, zone.CodeDomestic, res.Code)
		assert.NotEmpty(t, res.Warning)
	})
}
