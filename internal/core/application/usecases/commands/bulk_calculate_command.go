package commands

import (
	"errors"
	"fmt"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

// MaxBulkItems is the largest batch a bulk calculation accepts.
const MaxBulkItems = 100

var ErrBulkCalculateCommandIsNotConstructed = errors.New(
	"BulkCalculateCommand must be created via NewBulkCalculateCommand constructor",
)

// BulkItem is one parsed batch entry. Err holds the item's validation error;
// such items are reported as failed without being priced.
type BulkItem struct {
	Shipment Shipment
	Err      error
}

// BulkCalculateCommand asks for a batch of independent shipments to be priced.
type BulkCalculateCommand struct { //nolint:recvcheck //using for validation
	items            []BulkItem
	stopOnFirstError bool

	guard guard.ConstructorGuard
}

// NewBulkCalculateCommand parses every item. Only an empty or oversized batch
// is rejected as a whole; malformed items travel with their error.
func NewBulkCalculateCommand(reqs []ShipmentRequest, stopOnFirstError bool) (BulkCalculateCommand, error) {
	switch {
	case len(reqs) == 0:
		return BulkCalculateCommand{}, errs.NewValidationError(errs.Violation{Field: "items", Message: "at least one item is required"})
	case len(reqs) > MaxBulkItems:
		return BulkCalculateCommand{}, errs.NewValidationError(errs.Violation{
			Field: "items", Message: fmt.Sprintf("must be at most %d, got %d", MaxBulkItems, len(reqs)),
		})
	}

	items := make([]BulkItem, len(reqs))
	for i, req := range reqs {
		cmd, err := NewCalculatePriceCommand(req)
		items[i] = BulkItem{Shipment: cmd.Shipment(), Err: err}
	}
	return BulkCalculateCommand{
		items:            items,
		stopOnFirstError: stopOnFirstError,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkCalculateCommand) Validate() error {
	return c.guard.Validate(ErrBulkCalculateCommandIsNotConstructed)
}

// Items returns the parsed batch in request order.
func (c BulkCalculateCommand) Items() []BulkItem {
	return append([]BulkItem(nil), c.items...)
}

// StopOnFirstError reports whether the batch stops at the first failed item.
func (c BulkCalculateCommand) StopOnFirstError() bool {
	return c.stopOnFirstError
}
