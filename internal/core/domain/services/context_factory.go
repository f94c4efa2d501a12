package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rulecontext"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"
)

// ContextFactory builds rule contexts stamped with the current time and,
// when asked, enriches them with a customer snapshot.
type ContextFactory struct {
	customers ports.CustomerRepository
	now       func() time.Time
	logger    *slog.Logger
}

// NewContextFactory creates a factory. A nil now uses time.Now; a nil
// customers repository makes every enrichment a warning.
func NewContextFactory(customers ports.CustomerRepository, now func() time.Time, logger *slog.Logger) ContextFactory {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return ContextFactory{
		customers: customers,
		now:       now,
		logger:    logger.With("component", "context_factory"),
	}
}

// Now returns the factory clock in UTC.
func (f ContextFactory) Now() time.Time {
	return f.now().UTC()
}

// Create builds a context dated now.
func (f ContextFactory) Create(
	weight kernel.Weight,
	dimensions kernel.Dimensions,
	serviceType kernel.ServiceType,
	zoneCode string,
	basePrice kernel.Money,
) (rulecontext.Context, error) {
	return rulecontext.New(weight, dimensions, serviceType, zoneCode, basePrice, f.Now())
}

// WithCustomer fetches the customer once and returns an enriched copy of rc.
// An unknown customer is not a failure: the copy records the requested ID
// without a snapshot and a warning is returned. Repository failures other than
// not-found are returned as errors.
func (f ContextFactory) WithCustomer(
	ctx context.Context,
	rc rulecontext.Context,
	customerID string,
) (rulecontext.Context, []string, error) {
	id := strings.TrimSpace(customerID)
	if id == "" {
		return rc, nil, nil
	}
	if f.customers == nil {
		return rc.WithCustomerID(id), []string{fmt.Sprintf("customer %s: no customer source configured", id)}, nil
	}

	snapshot, err := f.customers.Get(ctx, id)
	if errors.Is(err, errs.ErrObjectNotFound) {
		f.logger.WarnContext(ctx, "customer not found", "customer_id", id)
		return rc.WithCustomerID(id), []string{fmt.Sprintf("customer %s not found; customer discounts skipped", id)}, nil
	}
	if err != nil {
		return rc, nil, fmt.Errorf("load customer %s: %w", id, err)
	}
	if snapshot.ID == "" {
		snapshot.ID = id
	}
	return rc.WithCustomer(snapshot), nil, nil
}
