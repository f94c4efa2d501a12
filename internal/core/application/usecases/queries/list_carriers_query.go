package queries

import (
	"errors"

	"pricing/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListCarriersQueryIsNotConstructed = errors.New(
		"ListCarriersQuery must be created via NewListCarriersQuery constructor",
	)
)

// ListCarriersQuery retrieves the active carriers of the current snapshot.
//
// Example:
//
//	query := NewListCarriersQuery()
//	handler := NewListCarriersQueryHandler(holder)
//
//	carriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list carriers: %w", err)
//	}
//	for _, c := range carriers {
//	    fmt.Printf("%s up to %s kg\n", c.Code, c.MaxWeightKg)
//	}
type ListCarriersQuery struct {
	guard guard.ConstructorGuard
}

// NewListCarriersQuery creates a parameterless carrier listing query.
func NewListCarriersQuery() ListCarriersQuery {
	return ListCarriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListCarriersQuery) Validate() error {
	return q.guard.Validate(ErrListCarriersQueryIsNotConstructed)
}

// ListCarriersQueryResponse is the read model of one carrier. Zero limits
// mean the carrier sets none; empty zone and service lists mean all.
type ListCarriersQueryResponse struct {
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Currency          string          `json:"currency"`
	VolumetricDivisor decimal.Decimal `json:"volumetricDivisor"`
	MaxWeightKg       decimal.Decimal `json:"maxWeightKg"`
	MaxLongestSideCm  decimal.Decimal `json:"maxLongestSideCm"`
	MaxGirthCm        decimal.Decimal `json:"maxGirthCm"`
	Zones             []string        `json:"zones"`
	Services          []string        `json:"services"`
}
