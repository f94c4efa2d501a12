package queries

import (
	"context"
	"fmt"
	"log/slog"

	"pricing/internal/core/domain/model/zone"
	"pricing/internal/core/domain/services"
	"pricing/internal/core/ports"
)

// ResolveZoneQueryHandler resolves destinations against the current zone catalog.
type ResolveZoneQueryHandler struct {
	snapshots ports.SnapshotProvider
	domestic  string
	logger    *slog.Logger
}

// NewResolveZoneQueryHandler creates a handler for the domestic country.
func NewResolveZoneQueryHandler(snapshots ports.SnapshotProvider, domesticCountry string, logger *slog.Logger) ResolveZoneQueryHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return ResolveZoneQueryHandler{snapshots: snapshots, domestic: domesticCountry, logger: logger}
}

// Handle returns the zone and how it was found. Resolution itself never
// fails; only loading the catalog can.
func (h ResolveZoneQueryHandler) Handle(ctx context.Context, query ResolveZoneQuery) (zone.Resolution, error) {
	if err := query.Validate(); err != nil {
		return zone.Resolution{}, err
	}
	zones, err := h.snapshots.Current().Zones().ListZones(ctx)
	if err != nil {
		return zone.Resolution{}, fmt.Errorf("load zones: %w", err)
	}
	return services.NewZoneResolver(h.domestic, zones, h.logger).Resolve(ctx, query.Destination()), nil
}
