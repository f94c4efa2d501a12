package commands

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/services"
	"pricing/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ShipmentRequest is the wire shape of a single shipment. Numbers that feed
// money or weight arithmetic travel as decimal strings.
type ShipmentRequest struct {
	Carrier            string   `json:"carrier"            validate:"omitempty,max=32"`
	ZoneCode           string   `json:"zoneCode"           validate:"omitempty,max=32"`
	Country            string   `json:"country"            validate:"omitempty,len=2,alpha"`
	PostalCode         string   `json:"postalCode"         validate:"omitempty,max=16"`
	Latitude           *float64 `json:"latitude"           validate:"omitempty,latitude"`
	Longitude          *float64 `json:"longitude"          validate:"omitempty,longitude"`
	WeightKg           string   `json:"weightKg"           validate:"required,numeric"`
	LengthCm           string   `json:"lengthCm"           validate:"required,numeric"`
	WidthCm            string   `json:"widthCm"            validate:"required,numeric"`
	HeightCm           string   `json:"heightCm"           validate:"required,numeric"`
	ServiceType        string   `json:"serviceType"        validate:"required"`
	CustomerID         string   `json:"customerId"         validate:"omitempty,max=64"`
	PromoCodes         []string `json:"promoCodes"         validate:"max=10,dive,required,max=32"`
	AdditionalServices []string `json:"additionalServices" validate:"max=10,dive,required,max=32"`
	DeclaredValue      string   `json:"declaredValue"      validate:"omitempty,numeric"`
	ItemCount          int      `json:"itemCount"          validate:"gte=0,lte=10000"`
}

// Shipment is a parsed and validated ShipmentRequest.
type Shipment struct {
	Carrier            string
	ZoneCode           string
	Destination        services.Destination
	Weight             kernel.Weight
	Dimensions         kernel.Dimensions
	ServiceType        kernel.ServiceType
	CustomerID         string
	PromoCodes         []string
	AdditionalServices []string
	DeclaredValue      decimal.Decimal
	ItemCount          int
}

// WithCarrier returns a copy of s priced for another carrier.
func (s Shipment) WithCarrier(code string) Shipment {
	s.Carrier = strings.ToLower(strings.TrimSpace(code))
	return s
}

// ParseShipment checks the request shape and builds the shipment value
// objects. All problems are reported together in one *errs.ValidationError.
func ParseShipment(req ShipmentRequest) (Shipment, error) {
	violations := structViolations(req)

	var s Shipment
	s.Carrier = strings.ToLower(strings.TrimSpace(req.Carrier))
	s.ZoneCode = strings.ToLower(strings.TrimSpace(req.ZoneCode))
	s.CustomerID = strings.TrimSpace(req.CustomerID)
	s.PromoCodes = append([]string(nil), req.PromoCodes...)
	s.ItemCount = max(req.ItemCount, 1)
	s.Destination = services.Destination{
		Country:    strings.ToUpper(strings.TrimSpace(req.Country)),
		PostalCode: strings.TrimSpace(req.PostalCode),
	}
	for _, code := range req.AdditionalServices {
		s.AdditionalServices = append(s.AdditionalServices, strings.ToLower(strings.TrimSpace(code)))
	}

	switch {
	case (req.Latitude == nil) != (req.Longitude == nil):
		violations = append(violations, errs.Violation{Field: "latitude", Message: "latitude and longitude must be given together"})
	case req.Latitude != nil:
		point, err := kernel.NewGeoPoint(*req.Latitude, *req.Longitude)
		if err != nil {
			violations = append(violations, errs.Violation{Field: "latitude", Message: err.Error()})
		} else {
			s.Destination.Point = &point
		}
	}
	if s.ZoneCode == "" && s.Destination.Country == "" && s.Destination.PostalCode == "" && s.Destination.Point == nil {
		violations = append(violations, errs.Violation{
			Field:   "destination",
			Message: "one of zoneCode, country, postalCode or latitude/longitude is required",
		})
	}

	if st, err := kernel.ParseServiceType(req.ServiceType); err != nil && req.ServiceType != "" {
		violations = append(violations, errs.Violation{Field: "serviceType", Message: err.Error()})
	} else {
		s.ServiceType = st
	}

	weightKg, weightOK := parseDecimal(&violations, "weightKg", req.WeightKg)
	if weightOK {
		w, err := kernel.NewWeight(weightKg)
		if err != nil {
			violations = append(violations, errs.Violation{Field: "weightKg", Message: "must be greater than 0"})
		}
		s.Weight = w
	}

	length, lengthOK := parseDecimal(&violations, "lengthCm", req.LengthCm)
	width, widthOK := parseDecimal(&violations, "widthCm", req.WidthCm)
	height, heightOK := parseDecimal(&violations, "heightCm", req.HeightCm)
	if lengthOK && widthOK && heightOK {
		dims, err := kernel.NewDimensions(length, width, height)
		if err != nil {
			violations = append(violations, errs.Violation{Field: "dimensions", Message: "every side must be greater than 0"})
		}
		s.Dimensions = dims
	}

	if declared, ok := parseDecimal(&violations, "declaredValue", req.DeclaredValue); ok {
		if declared.IsNegative() {
			violations = append(violations, errs.Violation{Field: "declaredValue", Message: "must not be negative"})
		}
		s.DeclaredValue = declared
	}

	if len(violations) > 0 {
		return Shipment{}, errs.NewValidationError(violations...)
	}
	return s, nil
}

// parseDecimal parses a non-empty decimal string. Shape errors were already
// reported by the struct validator, so they only mark the value as unusable.
func parseDecimal(violations *[]errs.Violation, field, raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		if !hasViolation(*violations, field) {
			*violations = append(*violations, errs.Violation{Field: field, Message: "must be a decimal number"})
		}
		return decimal.Zero, false
	}
	return d, true
}

func hasViolation(violations []errs.Violation, field string) bool {
	for _, v := range violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// structViolations runs the tag validator and converts its report.
func structViolations(v any) []errs.Violation {
	err := requestValidator.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []errs.Violation{{Field: "request", Message: err.Error()}}
	}
	violations := make([]errs.Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, errs.Violation{Field: fieldPath(fe), Message: describeTag(fe)})
	}
	return violations
}

// fieldPath drops the root struct name from the namespace:
// "ShipmentRequest.promoCodes[0]" becomes "promoCodes[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, found := strings.Cut(ns, "."); found {
		return rest
	}
	return ns
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "numeric":
		return "must be a decimal number"
	case "len":
		return fmt.Sprintf("must be %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "alpha":
		return "must contain letters only"
	case "latitude", "longitude":
		return "must be a valid " + fe.Tag()
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
