package queries

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"pricing/internal/core/ports"
)

// ListZonesQueryHandler reads zones from the current snapshot.
type ListZonesQueryHandler struct {
	snapshots ports.SnapshotProvider
}

// NewListZonesQueryHandler creates a handler over the snapshot provider.
func NewListZonesQueryHandler(snapshots ports.SnapshotProvider) ListZonesQueryHandler {
	return ListZonesQueryHandler{snapshots: snapshots}
}

// Handle returns zones by priority descending, then code, which is the order
// postal and country matching consult them in.
func (h ListZonesQueryHandler) Handle(ctx context.Context, query ListZonesQuery) ([]ListZonesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	zones, err := h.snapshots.Current().Zones().ListZones(ctx)
	if err != nil {
		return nil, fmt.Errorf("load zones: %w", err)
	}

	out := make([]ListZonesQueryResponse, 0, len(zones))
	for _, z := range zones {
		if !z.IsActive() && !query.IncludeInactive() {
			continue
		}
		ranges := make([]string, 0, len(z.PostalRanges()))
		for _, r := range z.PostalRanges() {
			ranges = append(ranges, r.From()+".."+r.To())
		}
		countries := z.Countries()
		if countries == nil {
			countries = []string{}
		}
		out = append(out, ListZonesQueryResponse{
			Code:         z.Code(),
			Type:         string(z.Type()),
			Countries:    countries,
			PostalRanges: ranges,
			Priority:     z.Priority(),
			Active:       z.IsActive(),
		})
	}
	slices.SortFunc(out, func(a, b ListZonesQueryResponse) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Code, b.Code)
	})
	return out, nil
}
