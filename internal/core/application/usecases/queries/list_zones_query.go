package queries

import (
	"errors"

	"pricing/internal/pkg/guard"
)

var ErrListZonesQueryIsNotConstructed = errors.New(
	"ListZonesQuery must be created via NewListZonesQuery constructor",
)

// ListZonesQuery retrieves the configured pricing zones in matching order.
type ListZonesQuery struct { //nolint:recvcheck //using for validation
	includeInactive bool

	guard guard.ConstructorGuard
}

// NewListZonesQuery creates a zone listing query. Inactive zones are left out
// unless includeInactive is set.
func NewListZonesQuery(includeInactive bool) ListZonesQuery {
	return ListZonesQuery{includeInactive: includeInactive, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListZonesQuery) Validate() error {
	return q.guard.Validate(ErrListZonesQueryIsNotConstructed)
}

// IncludeInactive reports whether inactive zones are listed.
func (q ListZonesQuery) IncludeInactive() bool {
	return q.includeInactive
}

// ListZonesQueryResponse is the read model of one zone.
type ListZonesQueryResponse struct {
	Code         string   `json:"code"`
	Type         string   `json:"type"`
	Countries    []string `json:"countries"`
	PostalRanges []string `json:"postalRanges"`
	Priority     int      `json:"priority"`
	Active       bool     `json:"active"`
}
