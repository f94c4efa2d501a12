package commands

import (
	"context"
)

const operationCalculate = "calculate"

// CalculatePriceCommandHandler prices a single shipment against the current
// snapshot.
type CalculatePriceCommandHandler struct {
	pricer *ShipmentPricer
}

// NewCalculatePriceCommandHandler creates a handler over pricer.
func NewCalculatePriceCommandHandler(pricer *ShipmentPricer) CalculatePriceCommandHandler {
	return CalculatePriceCommandHandler{pricer: pricer}
}

// Handle returns the quote or the first error of the pricing path:
// a CapacityError when the carrier cannot take the shipment, a
// ConfigurationError for missing or broken tariffs, a ValidationError for
// inconsistent weight rules or unknown additional services.
func (h CalculatePriceCommandHandler) Handle(ctx context.Context, cmd CalculatePriceCommand) (PriceQuote, error) {
	if err := cmd.Validate(); err != nil {
		return PriceQuote{}, err
	}
	return h.pricer.Price(ctx, h.pricer.Snapshot(), cmd.Shipment(), operationCalculate)
}
