package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pricing/internal/core/domain/services"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"
)

// RefreshSnapshotResult describes one reload.
type RefreshSnapshotResult struct {
	Version  string           `json:"version"`
	Changed  bool             `json:"changed"`
	Warnings []errs.Violation `json:"warnings"`
}

// RefreshSnapshotCommandHandler loads a snapshot from its source, checks the
// rule set for overlaps and malformed rules, and publishes it. Rule problems
// are returned as warnings and do not block publishing.
type RefreshSnapshotCommandHandler struct {
	source    ports.SnapshotSource
	publisher ports.SnapshotPublisher
	validator services.RuleValidator
	pricer    *ShipmentPricer
	logger    *slog.Logger
}

// NewRefreshSnapshotCommandHandler creates a handler. pricer may be nil; when
// set, its quote cache is purged whenever the version changes.
func NewRefreshSnapshotCommandHandler(
	source ports.SnapshotSource,
	publisher ports.SnapshotPublisher,
	conditions *services.ConditionEvaluator,
	pricer *ShipmentPricer,
	logger *slog.Logger,
) (*RefreshSnapshotCommandHandler, error) {
	if source == nil {
		return nil, errors.New("refresh snapshot: source is required")
	}
	if publisher == nil {
		return nil, errors.New("refresh snapshot: publisher is required")
	}
	if conditions == nil {
		return nil, errors.New("refresh snapshot: condition evaluator is required")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RefreshSnapshotCommandHandler{
		source:    source,
		publisher: publisher,
		validator: services.NewRuleValidator(conditions),
		pricer:    pricer,
		logger:    logger.With("component", "snapshot_refresh"),
	}, nil
}

// Handle reloads the snapshot. On error the published snapshot is untouched.
func (h *RefreshSnapshotCommandHandler) Handle(ctx context.Context, cmd RefreshSnapshotCommand) (RefreshSnapshotResult, error) {
	if err := cmd.Validate(); err != nil {
		return RefreshSnapshotResult{}, err
	}

	next, err := h.source.Load(ctx)
	if err != nil {
		return RefreshSnapshotResult{}, fmt.Errorf("load snapshot: %w", err)
	}

	warnings, err := h.check(ctx, next)
	if err != nil {
		return RefreshSnapshotResult{}, err
	}
	for _, w := range warnings {
		h.logger.WarnContext(ctx, "pricing rule problem", "version", next.Version(), "field", w.Field, "problem", w.Message)
	}

	changed := h.publisher.Replace(next)
	if changed && h.pricer != nil {
		h.pricer.PurgeCache()
	}
	h.logger.InfoContext(ctx, "snapshot refreshed",
		"trigger", cmd.Trigger(), "version", next.Version(), "changed", changed, "warnings", len(warnings))

	return RefreshSnapshotResult{Version: next.Version(), Changed: changed, Warnings: warnings}, nil
}

func (h *RefreshSnapshotCommandHandler) check(ctx context.Context, snap ports.Snapshot) ([]errs.Violation, error) {
	weightRules, err := snap.WeightRules().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weight rules: %w", err)
	}
	discountRules, err := snap.DiscountRules().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list discount rules: %w", err)
	}
	warnings := h.validator.ValidateWeightRules(weightRules)
	warnings = append(warnings, h.validator.ValidateDiscountRules(discountRules)...)
	if warnings == nil {
		warnings = []errs.Violation{}
	}
	return warnings, nil
}
