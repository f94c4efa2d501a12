package queries

import (
	"context"
	"fmt"

	"pricing/internal/core/ports"
)

// ListCarriersQueryHandler reads carriers from the current snapshot.
type ListCarriersQueryHandler struct {
	snapshots ports.SnapshotProvider
}

// NewListCarriersQueryHandler creates a handler over the snapshot provider.
func NewListCarriersQueryHandler(snapshots ports.SnapshotProvider) ListCarriersQueryHandler {
	return ListCarriersQueryHandler{snapshots: snapshots}
}

// Handle returns the active carriers ordered by code.
func (h ListCarriersQueryHandler) Handle(ctx context.Context, query ListCarriersQuery) ([]ListCarriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	carriers, err := h.snapshots.Current().Carriers().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list carriers: %w", err)
	}

	out := make([]ListCarriersQueryResponse, 0, len(carriers))
	for _, c := range carriers {
		services := make([]string, 0, len(c.SupportedServices()))
		for _, st := range c.SupportedServices() {
			services = append(services, string(st))
		}
		zones := c.SupportedZones()
		if zones == nil {
			zones = []string{}
		}
		out = append(out, ListCarriersQueryResponse{
			Code:              c.Code(),
			Name:              c.Name(),
			Currency:          c.Currency().String(),
			VolumetricDivisor: c.VolumetricDivisor(),
			MaxWeightKg:       c.MaxWeightKg(),
			MaxLongestSideCm:  c.MaxLongestSideCm(),
			MaxGirthCm:        c.MaxGirthCm(),
			Zones:             zones,
			Services:          services,
		})
	}
	return out, nil
}
