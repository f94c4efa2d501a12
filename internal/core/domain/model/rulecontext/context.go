package rulecontext

import (
	"errors"
	"slices"
	"strings"
	"time"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

// ErrContextIsNotConstructed is returned when a zero-value Context is used.
var ErrContextIsNotConstructed = errs.NewValueIsRequiredError("rule context must be created via New")

// Context is everything a discount run may look at for one shipment.
//
// Invariants:
//   - weight, dimensions, base price and calculation date are always set
//   - the season is derived from the calculation date at construction
//   - promo codes are normalized to upper case, sorted and de-duplicated
//
// Example:
//
//	base, _ := rulecontext.New(weight, dims, kernel.ServiceStandard, "domestic", price, now)
//	enriched := base.WithCustomer(snapshot).WithPromoCodes("SUMMER25")
//	// base has no customer, enriched does
type Context struct { //nolint:recvcheck //using for validation
	weight          kernel.Weight
	dimensions      kernel.Dimensions
	serviceType     kernel.ServiceType
	zoneCode        string
	basePrice       kernel.Money
	declaredValue   kernel.Money
	customer        *CustomerSnapshot
	customerID      string
	promoCodes      []string
	itemCount       int
	calculationDate time.Time
	season          kernel.Season
	guard           guard.ConstructorGuard
}

// New creates a Context. The calculation date is converted to UTC.
func New(
	weight kernel.Weight,
	dimensions kernel.Dimensions,
	serviceType kernel.ServiceType,
	zoneCode string,
	basePrice kernel.Money,
	calculationDate time.Time,
) (Context, error) {
	var weightErr error
	if weight.IsZero() {
		weightErr = errs.NewValueIsRequiredError("weight")
	}
	var zoneErr error
	if strings.TrimSpace(zoneCode) == "" {
		zoneErr = errs.NewValueIsRequiredError("zoneCode")
	}
	var dateErr error
	if calculationDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("calculationDate")
	}
	var serviceErr error
	if _, err := kernel.ParseServiceType(string(serviceType)); err != nil {
		serviceErr = err
	}

	if err := errors.Join(
		weightErr,
		dimensions.Validate(),
		serviceErr,
		zoneErr,
		basePrice.Validate(),
		dateErr,
	); err != nil {
		return Context{}, err
	}

	date := calculationDate.UTC()
	return Context{
		weight:          weight,
		dimensions:      dimensions,
		serviceType:     serviceType,
		zoneCode:        strings.TrimSpace(zoneCode),
		basePrice:       basePrice,
		declaredValue:   kernel.ZeroMoney(basePrice.Currency()),
		itemCount:       1,
		calculationDate: date,
		season:          kernel.SeasonAt(date),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the context was created through New.
func (c Context) Validate() error {
	return c.guard.Validate(ErrContextIsNotConstructed)
}

func (c Context) Weight() kernel.Weight           { return c.weight }
func (c Context) Dimensions() kernel.Dimensions   { return c.dimensions }
func (c Context) ServiceType() kernel.ServiceType { return c.serviceType }
func (c Context) ZoneCode() string                { return c.zoneCode }
func (c Context) BasePrice() kernel.Money         { return c.basePrice }
func (c Context) Currency() kernel.Currency       { return c.basePrice.Currency() }
func (c Context) DeclaredValue() kernel.Money     { return c.declaredValue }
func (c Context) ItemCount() int                  { return c.itemCount }
func (c Context) CalculationDate() time.Time      { return c.calculationDate }
func (c Context) Season() kernel.Season           { return c.season }

// CustomerID returns the requested customer, which may be set even when no
// snapshot could be loaded.
func (c Context) CustomerID() string { return c.customerID }

// Customer returns the customer snapshot and whether one is attached.
func (c Context) Customer() (CustomerSnapshot, bool) {
	if c.customer == nil {
		return CustomerSnapshot{}, false
	}
	return *c.customer, true
}

// PromoCodes returns a copy of the normalized promo codes.
func (c Context) PromoCodes() []string { return append([]string(nil), c.promoCodes...) }

// HasPromoCodes reports whether the caller supplied any promo code.
func (c Context) HasPromoCodes() bool { return len(c.promoCodes) > 0 }

// HasPromoCode reports whether code was supplied by the caller.
func (c Context) HasPromoCode(code string) bool {
	_, found := slices.BinarySearch(c.promoCodes, normalizeCode(code))
	return found
}

// WithBasePrice returns a copy priced at price.
func (c Context) WithBasePrice(price kernel.Money) Context {
	c.basePrice = price
	return c
}

// WithCustomer returns a copy carrying the customer snapshot.
func (c Context) WithCustomer(snapshot CustomerSnapshot) Context {
	s := snapshot
	c.customer = &s
	if s.ID != "" {
		c.customerID = s.ID
	}
	return c
}

// WithCustomerID returns a copy that records the requested customer without a
// snapshot.
func (c Context) WithCustomerID(id string) Context {
	c.customerID = strings.TrimSpace(id)
	return c
}

// WithPromoCodes returns a copy with codes merged into the existing set.
func (c Context) WithPromoCodes(codes ...string) Context {
	merged := make([]string, 0, len(c.promoCodes)+len(codes))
	merged = append(merged, c.promoCodes...)
	for _, code := range codes {
		if n := normalizeCode(code); n != "" {
			merged = append(merged, n)
		}
	}
	slices.Sort(merged)
	c.promoCodes = slices.Compact(merged)
	return c
}

// WithItemCount returns a copy for a shipment of n items. Values below one are
// treated as one.
func (c Context) WithItemCount(n int) Context {
	c.itemCount = max(n, 1)
	return c
}

// WithDeclaredValue returns a copy carrying the declared goods value.
func (c Context) WithDeclaredValue(value kernel.Money) Context {
	c.declaredValue = value
	return c
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
