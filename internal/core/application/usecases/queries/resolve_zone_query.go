// Package queries contains read operations over the pricing data.
// Queries never price anything; they expose lookups the pricing path uses.
package queries

import (
	"errors"
	"strings"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/services"
	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

var ErrResolveZoneQueryIsNotConstructed = errors.New(
	"ResolveZoneQuery must be created via NewResolveZoneQuery constructor",
)

// ResolveZoneQuery asks which pricing zone a destination falls into.
//
// Example:
//
//	query, err := NewResolveZoneQuery("PL", "31-000", nil, nil)
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, query)
//	// res.Code == "local", res.Matched == "Krakow"
type ResolveZoneQuery struct { //nolint:recvcheck //using for validation
	destination services.Destination

	guard guard.ConstructorGuard
}

// NewResolveZoneQuery creates a query. At least one of country, postal code
// or a coordinate pair is required.
func NewResolveZoneQuery(country, postalCode string, lat, lng *float64) (ResolveZoneQuery, error) {
	dest := services.Destination{
		Country:    strings.ToUpper(strings.TrimSpace(country)),
		PostalCode: strings.TrimSpace(postalCode),
	}

	var violations []errs.Violation
	switch {
	case (lat == nil) != (lng == nil):
		violations = append(violations, errs.Violation{Field: "lat", Message: "lat and lng must be given together"})
	case lat != nil:
		point, err := kernel.NewGeoPoint(*lat, *lng)
		if err != nil {
			violations = append(violations, errs.Violation{Field: "lat", Message: err.Error()})
		} else {
			dest.Point = &point
		}
	}
	if dest.Country != "" && len(dest.Country) != 2 {
		violations = append(violations, errs.Violation{Field: "country", Message: "must be a 2-letter ISO code"})
	}
	if dest.Country == "" && dest.PostalCode == "" && dest.Point == nil && len(violations) == 0 {
		violations = append(violations, errs.Violation{Field: "destination", Message: "country, postal code or coordinates are required"})
	}
	if len(violations) > 0 {
		return ResolveZoneQuery{}, errs.NewValidationError(violations...)
	}

	return ResolveZoneQuery{destination: dest, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ResolveZoneQuery) Validate() error {
	return q.guard.Validate(ErrResolveZoneQueryIsNotConstructed)
}

// Destination returns the normalized destination.
func (q ResolveZoneQuery) Destination() services.Destination {
	return q.destination
}
