package commands

import (
	"context"

	"pricing/internal/core/domain/model/result"
)

const operationDiscounts = "discounts"

// ApplyDiscountsCommandHandler runs the discount engine directly on a caller
// supplied base price. Rule violations do not fail the call: they come back in
// the result with the price untouched.
type ApplyDiscountsCommandHandler struct {
	pricer *ShipmentPricer
}

// NewApplyDiscountsCommandHandler creates a handler over pricer.
func NewApplyDiscountsCommandHandler(pricer *ShipmentPricer) ApplyDiscountsCommandHandler {
	return ApplyDiscountsCommandHandler{pricer: pricer}
}

// Handle returns the engine result for the command's shipment.
func (h ApplyDiscountsCommandHandler) Handle(ctx context.Context, cmd ApplyDiscountsCommand) (result.RuleResult, error) {
	if err := cmd.Validate(); err != nil {
		return result.RuleResult{}, err
	}
	return h.pricer.Discount(ctx, h.pricer.Snapshot(), cmd.Shipment(), cmd.BasePrice(), operationDiscounts)
}
