package queries_test

import (
	"testing"

	"pricing/internal/core/application/usecases/queries"
	"pricing/internal/core/domain/model/zone"
	"pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestResolveZoneQueryHandler_Handle(t *testing.T) {
	h := queries.NewResolveZoneQueryHandler(newHolder(t), "PL", nil)

	tests := []struct {
		name       string
		country    string
		postalCode string
		lat, lng   *float64
		code       string
		method     zone.Method
	}{
		{name: "catalog postal range", country: "pl", postalCode: "00-950", code: "local", method: zone.MethodPostal},
		{name: "metro postal range", country: "PL", postalCode: "31-000", code: "local", method: zone.MethodPostal},
		{name: "domestic postal code", country: "PL", postalCode: "72-600", code: "domestic", method: zone.MethodDomestic},
		{name: "domestic country", country: "PL", code: "domestic", method: zone.MethodDomestic},
		{name: "catalog country", country: "DE", code: "dach", method: zone.MethodCatalog},
		{name: "continent", country: "FR", code: zone.CodeEUWest, method: zone.MethodContinent},
		{name: "override", country: "RU", code: zone.CodeWorld, method: zone.MethodOverride},
		{name: "coordinates in metro", lat: ptr(52.23), lng: ptr(21.01), code: "local", method: zone.MethodCoordinates},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, err := queries.NewResolveZoneQuery(tc.country, tc.postalCode, tc.lat, tc.lng)
			require.NoError(t, err)

			res, err := h.Handle(t.Context(), query)
			require.NoError(t, err)
			assert.Equal(t, tc.code, res.Code)
			assert.Equal(t, tc.method, res.Method)
		})
	}
}

func TestNewResolveZoneQuery_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		country  string
		lat, lng *float64
		field    string
	}{
		{name: "empty destination", field: "destination"},
		{name: "three letter country", country: "POL", field: "country"},
		{name: "latitude without longitude", lat: ptr(52), field: "lat"},
		{name: "latitude out of range", lat: ptr(91), lng: ptr(0), field: "lat"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := queries.NewResolveZoneQuery(tc.country, "", tc.lat, tc.lng)
			var validationErr *errs.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Len(t, validationErr.Violations, 1)
			assert.Equal(t, tc.field, validationErr.Violations[0].Field)
		})
	}
}

func TestResolveZoneQuery_NotConstructed(t *testing.T) {
	h := queries.NewResolveZoneQueryHandler(newHolder(t), "PL", nil)
	_, err := h.Handle(t.Context(), queries.ResolveZoneQuery{})
	require.ErrorIs(t, err, queries.ErrResolveZoneQueryIsNotConstructed)
}
