package kernel

import (
	"encoding/json"
	"fmt"
	"strings"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// MoneyScale is the number of decimal places every stored or returned amount is rounded to.
const MoneyScale = 2

// ErrMoneyIsNotConstructed is returned when a zero-value Money is used.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("money must be created via NewMoney or ZeroMoney")

// Currency is an ISO-4217 currency code such as "PLN" or "EUR".
type Currency string

// NewCurrency parses and normalizes a 3-letter ISO-4217 code.
//
// Example:
//
//	cur, err := kernel.NewCurrency("pln")
//	// cur == "PLN"
func NewCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not a 3-letter code", code))
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("currency", err)
	}
	return Currency(unit.String()), nil
}

// String returns the currency code.
func (c Currency) String() string {
	return string(c)
}

// Round rounds an amount to MoneyScale places, half away from zero.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

// Money is an exact, non-negative monetary amount in a single currency.
// The amount is rounded to two decimals at construction, so every Money value
// is already in its stored form.
//
// Example:
//
//	pln, _ := kernel.NewCurrency("PLN")
//	price, err := kernel.NewMoney(decimal.RequireFromString("19.999"), pln)
//	// price.String() == "20.00 PLN"
type Money struct { //nolint:recvcheck //using for validation
	amount   decimal.Decimal
	currency Currency
	guard    guard.ConstructorGuard
}

// NewMoney creates a Money rounded to two decimals.
// Returns an error if the amount is negative or the currency is empty.
func NewMoney(amount decimal.Decimal, cur Currency) (Money, error) {
	if cur == "" {
		return Money{}, errs.NewValueIsRequiredError("currency")
	}
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "unbounded")
	}
	return Money{
		amount:   Round(amount),
		currency: cur,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ZeroMoney returns 0.00 in the given currency.
func ZeroMoney(cur Currency) Money {
	return Money{amount: decimal.Zero.Round(MoneyScale), currency: cur, guard: guard.NewConstructorGuard()}
}

// Validate reports whether the Money was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the rounded amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero reports whether the amount is 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add returns m + other. Both values must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount), m.currency)
}

// Sub returns m - other, clamped at zero. Both values must share a currency.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	diff := m.amount.Sub(other.amount)
	if diff.IsNegative() {
		diff = decimal.Zero
	}
	return NewMoney(diff, m.currency)
}

// Equal reports whether both amount and currency match.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String returns the amount with two decimals followed by the currency code.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale) + " " + string(m.currency)
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON renders the amount as a fixed two-decimal string so that no
// binary float ever appears on the wire.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.amount.StringFixed(MoneyScale), Currency: string(m.currency)})
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency))
	}
	return nil
}
