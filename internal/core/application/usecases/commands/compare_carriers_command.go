package commands

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

// MaxComparedCarriers caps the carriers a single comparison may name.
const MaxComparedCarriers = 20

var ErrCompareCarriersCommandIsNotConstructed = errors.New(
	"CompareCarriersCommand must be created via NewCompareCarriersCommand constructor",
)

// CompareCarriersCommand asks for the same shipment priced by several carriers.
// With no carriers listed every active carrier is compared.
type CompareCarriersCommand struct { //nolint:recvcheck //using for validation
	shipment Shipment
	carriers []string

	guard guard.ConstructorGuard
}

// NewCompareCarriersCommand validates req and normalizes the carrier list.
// The request's own carrier field is ignored.
func NewCompareCarriersCommand(req ShipmentRequest, carriers []string) (CompareCarriersCommand, error) {
	req.Carrier = ""
	shipment, err := ParseShipment(req)

	codes := make([]string, 0, len(carriers))
	for i, c := range carriers {
		code := strings.ToLower(strings.TrimSpace(c))
		if code == "" {
			err = appendViolations(err, errs.Violation{Field: fmt.Sprintf("carriers[%d]", i), Message: "is required"})
			continue
		}
		codes = append(codes, code)
	}
	slices.Sort(codes)
	codes = slices.Compact(codes)
	if len(codes) > MaxComparedCarriers {
		err = appendViolations(err, errs.Violation{
			Field: "carriers", Message: fmt.Sprintf("must be at most %d", MaxComparedCarriers),
		})
	}
	if err != nil {
		return CompareCarriersCommand{}, err
	}

	return CompareCarriersCommand{
		shipment: shipment,
		carriers: codes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompareCarriersCommand) Validate() error {
	return c.guard.Validate(ErrCompareCarriersCommandIsNotConstructed)
}

// Shipment returns the parsed shipment without a carrier.
func (c CompareCarriersCommand) Shipment() Shipment {
	return c.shipment
}

// Carriers returns the sorted, de-duplicated carrier codes; empty means all.
func (c CompareCarriersCommand) Carriers() []string {
	return slices.Clone(c.carriers)
}
