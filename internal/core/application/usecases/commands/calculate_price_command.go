package commands

import (
	"errors"
	"strings"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

var ErrCalculatePriceCommandIsNotConstructed = errors.New(
	"CalculatePriceCommand must be created via NewCalculatePriceCommand constructor",
)

// CalculatePriceCommand asks for the full price of one shipment with one carrier.
//
// Example:
//
//	cmd, err := NewCalculatePriceCommand(ShipmentRequest{
//	    Carrier: "dpd", Country: "PL", PostalCode: "00-950",
//	    WeightKg: "2.5", LengthCm: "30", WidthCm: "20", HeightCm: "15",
//	    ServiceType: "standard",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid shipment: %w", err)
//	}
//	quote, err := handler.Handle(ctx, cmd)
type CalculatePriceCommand struct { //nolint:recvcheck //using for validation
	shipment Shipment

	guard guard.ConstructorGuard
}

// NewCalculatePriceCommand validates req. The carrier is required here; the
// returned error is an *errs.ValidationError listing every problem.
func NewCalculatePriceCommand(req ShipmentRequest) (CalculatePriceCommand, error) {
	shipment, err := ParseShipment(req)
	if strings.TrimSpace(req.Carrier) == "" {
		err = appendViolations(err, errs.Violation{Field: "carrier", Message: "is required"})
	}
	if err != nil {
		return CalculatePriceCommand{}, err
	}
	return CalculatePriceCommand{shipment: shipment, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CalculatePriceCommand) Validate() error {
	return c.guard.Validate(ErrCalculatePriceCommandIsNotConstructed)
}

// Shipment returns the parsed shipment.
func (c CalculatePriceCommand) Shipment() Shipment {
	return c.shipment
}

// appendViolations adds violations to err, which is nil or an *errs.ValidationError.
func appendViolations(err error, violations ...errs.Violation) error {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return errs.NewValidationError(append(validationErr.Violations, violations...)...)
	}
	if err != nil {
		return errors.Join(err, errs.NewValidationError(violations...))
	}
	return errs.NewValidationError(violations...)
}
