package commands

import (
	"errors"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

var ErrApplyDiscountsCommandIsNotConstructed = errors.New(
	"ApplyDiscountsCommand must be created via NewApplyDiscountsCommand constructor",
)

// DiscountRequest is the wire shape of a raw discount-engine call: an already
// known base price for a shipment in a known zone.
type DiscountRequest struct {
	WeightKg           string   `json:"weightKg"           validate:"required,numeric"`
	LengthCm           string   `json:"lengthCm"           validate:"required,numeric"`
	WidthCm            string   `json:"widthCm"            validate:"required,numeric"`
	HeightCm           string   `json:"heightCm"           validate:"required,numeric"`
	ServiceType        string   `json:"serviceType"        validate:"required"`
	ZoneCode           string   `json:"zoneCode"           validate:"required,max=32"`
	BasePrice          string   `json:"basePrice"          validate:"required,numeric"`
	DeclaredValue      string   `json:"declaredValue"      validate:"omitempty,numeric"`
	Currency           string   `json:"currency"           validate:"required,len=3,alpha"`
	CustomerID         string   `json:"customerId"         validate:"omitempty,max=64"`
	PromoCodes         []string `json:"promoCodes"         validate:"max=10,dive,required,max=32"`
	AdditionalServices []string `json:"additionalServices" validate:"max=10,dive,required,max=32"`
	ItemCount          int      `json:"itemCount"          validate:"gte=0,lte=10000"`
}

// ApplyDiscountsCommand runs the discount engine on a given base price.
type ApplyDiscountsCommand struct { //nolint:recvcheck //using for validation
	shipment  Shipment
	basePrice kernel.Money

	guard guard.ConstructorGuard
}

// NewApplyDiscountsCommand validates req. All problems are reported in one
// *errs.ValidationError.
func NewApplyDiscountsCommand(req DiscountRequest) (ApplyDiscountsCommand, error) {
	violations := structViolations(req)

	shipment, err := ParseShipment(ShipmentRequest{
		ZoneCode:           req.ZoneCode,
		WeightKg:           req.WeightKg,
		LengthCm:           req.LengthCm,
		WidthCm:            req.WidthCm,
		HeightCm:           req.HeightCm,
		ServiceType:        req.ServiceType,
		CustomerID:         req.CustomerID,
		PromoCodes:         req.PromoCodes,
		AdditionalServices: req.AdditionalServices,
		ItemCount:          req.ItemCount,
		DeclaredValue:      req.DeclaredValue,
	})
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		for _, v := range validationErr.Violations {
			if !hasViolation(violations, v.Field) {
				violations = append(violations, v)
			}
		}
	}

	var basePrice kernel.Money
	currency, curErr := kernel.NewCurrency(req.Currency)
	if curErr != nil && req.Currency != "" && !hasViolation(violations, "currency") {
		violations = append(violations, errs.Violation{Field: "currency", Message: curErr.Error()})
	}
	if amount, ok := parseDecimal(&violations, "basePrice", req.BasePrice); ok && curErr == nil {
		if amount.IsNegative() {
			violations = append(violations, errs.Violation{Field: "basePrice", Message: "must not be negative"})
		} else {
			basePrice, _ = kernel.NewMoney(amount, currency)
		}
	}

	if len(violations) > 0 {
		return ApplyDiscountsCommand{}, errs.NewValidationError(violations...)
	}
	return ApplyDiscountsCommand{
		shipment:  shipment,
		basePrice: basePrice,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyDiscountsCommand) Validate() error {
	return c.guard.Validate(ErrApplyDiscountsCommandIsNotConstructed)
}

// Shipment returns the parsed shipment; its ZoneCode is always set.
func (c ApplyDiscountsCommand) Shipment() Shipment {
	return c.shipment
}

// BasePrice returns the price discounts start from.
func (c ApplyDiscountsCommand) BasePrice() kernel.Money {
	return c.basePrice
}
