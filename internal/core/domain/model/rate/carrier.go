package rate

import (
	"fmt"
	"slices"
	"strings"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultVolumetricDivisor is the industry-standard cm³/kg divisor used when
// no carrier profile is involved.
var DefaultVolumetricDivisor = decimal.NewFromInt(5000)

// ErrCarrierIsNotConstructed is returned when a zero-value Carrier is used.
var ErrCarrierIsNotConstructed = errs.NewValueIsRequiredError("carrier must be created via NewCarrier")

// CarrierParams carries the raw fields of a carrier capability profile.
// Zero limits mean "no limit"; empty allow-lists mean "everything".
type CarrierParams struct {
	Code              string
	Name              string
	VolumetricDivisor decimal.Decimal
	MaxWeightKg       decimal.Decimal
	MaxLongestSideCm  decimal.Decimal
	MaxGirthCm        decimal.Decimal
	SupportedZones    []string
	SupportedServices []kernel.ServiceType
	Currency          kernel.Currency
	Active            bool
}

// Carrier is a courier company's capability profile: its volumetric divisor,
// the physical limits it accepts and the zones and service levels it serves.
//
// The divisor is not checked here. A non-positive divisor is a configuration
// defect reported when a price is calculated, with the carrier in scope.
type Carrier struct { //nolint:recvcheck //using for validation
	code              string
	name              string
	volumetricDivisor decimal.Decimal
	maxWeightKg       decimal.Decimal
	maxLongestSideCm  decimal.Decimal
	maxGirthCm        decimal.Decimal
	supportedZones    []string
	supportedServices []kernel.ServiceType
	currency          kernel.Currency
	active            bool
	guard             guard.ConstructorGuard
}

// NewCarrier creates a Carrier from p.
func NewCarrier(p CarrierParams) (Carrier, error) {
	code := strings.ToLower(strings.TrimSpace(p.Code))
	if code == "" {
		return Carrier{}, errs.NewValueIsRequiredError("carrierCode")
	}
	if p.Currency == "" {
		return Carrier{}, errs.NewValueIsRequiredError("currency")
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = code
	}

	zones := append([]string(nil), p.SupportedZones...)
	slices.Sort(zones)
	services := append([]kernel.ServiceType(nil), p.SupportedServices...)
	slices.Sort(services)

	return Carrier{
		code:              code,
		name:              name,
		volumetricDivisor: p.VolumetricDivisor,
		maxWeightKg:       p.MaxWeightKg,
		maxLongestSideCm:  p.MaxLongestSideCm,
		maxGirthCm:        p.MaxGirthCm,
		supportedZones:    slices.Compact(zones),
		supportedServices: slices.Compact(services),
		currency:          p.Currency,
		active:            p.Active,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the carrier was created through NewCarrier.
func (c Carrier) Validate() error {
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

func (c Carrier) Code() string                       { return c.code }
func (c Carrier) Name() string                       { return c.name }
func (c Carrier) VolumetricDivisor() decimal.Decimal { return c.volumetricDivisor }
func (c Carrier) Currency() kernel.Currency          { return c.currency }
func (c Carrier) IsActive() bool                     { return c.active }
func (c Carrier) MaxWeightKg() decimal.Decimal       { return c.maxWeightKg }
func (c Carrier) MaxLongestSideCm() decimal.Decimal  { return c.maxLongestSideCm }
func (c Carrier) MaxGirthCm() decimal.Decimal        { return c.maxGirthCm }

// SupportedZones returns a copy of the zone allow-list.
func (c Carrier) SupportedZones() []string { return append([]string(nil), c.supportedZones...) }

// SupportedServices returns a copy of the service allow-list.
func (c Carrier) SupportedServices() []kernel.ServiceType {
	return append([]kernel.ServiceType(nil), c.supportedServices...)
}

// ServesZone reports whether the carrier delivers to zoneCode.
func (c Carrier) ServesZone(zoneCode string) bool {
	if len(c.supportedZones) == 0 {
		return true
	}
	_, found := slices.BinarySearch(c.supportedZones, zoneCode)
	return found
}

// OffersService reports whether the carrier offers the service level.
func (c Carrier) OffersService(st kernel.ServiceType) bool {
	if len(c.supportedServices) == 0 {
		return true
	}
	_, found := slices.BinarySearch(c.supportedServices, st)
	return found
}

// CheckCapacity returns a CapacityError when the carrier is inactive or cannot
// take a parcel of this weight and size to zoneCode at the service level.
func (c Carrier) CheckCapacity(
	zoneCode string,
	st kernel.ServiceType,
	weight kernel.Weight,
	dims kernel.Dimensions,
) error {
	scope := errs.Scope{Carrier: c.code, Zone: zoneCode, Service: string(st), Weight: weight.String()}

	switch {
	case !c.active:
		return errs.NewCapacityError(scope, "carrier is not active")
	case !c.ServesZone(zoneCode):
		return errs.NewCapacityError(scope, fmt.Sprintf("zone %q is not served", zoneCode))
	case !c.OffersService(st):
		return errs.NewCapacityError(scope, fmt.Sprintf("service %q is not offered", st))
	case exceeds(weight.Kg(), c.maxWeightKg):
		return errs.NewCapacityError(scope, fmt.Sprintf("weight %s kg exceeds limit of %s kg", weight.Kg(), c.maxWeightKg))
	case exceeds(dims.LongestSide(), c.maxLongestSideCm):
		return errs.NewCapacityError(scope,
			fmt.Sprintf("longest side %s cm exceeds limit of %s cm", dims.LongestSide(), c.maxLongestSideCm))
	case exceeds(dims.Girth(), c.maxGirthCm):
		return errs.NewCapacityError(scope, fmt.Sprintf("girth %s cm exceeds limit of %s cm", dims.Girth(), c.maxGirthCm))
	}
	return nil
}

func exceeds(value, limit decimal.Decimal) bool {
	return limit.IsPositive() && value.GreaterThan(limit)
}
