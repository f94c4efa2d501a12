package addon

import (
	"errors"
	"fmt"
	"strings"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrServiceIsNotConstructed is returned when a zero-value Service is used.
var ErrServiceIsNotConstructed = errs.NewValueIsRequiredError("additional service must be created via NewService")

var hundred = decimal.NewFromInt(100)

// Method is how an additional service is charged.
type Method string

const (
	// MethodFlat charges Amount.
	MethodFlat Method = "flat"
	// MethodDeclaredValue charges Percent of the declared value, at least MinCharge.
	MethodDeclaredValue Method = "declared_value_percentage"
	// MethodPerKg charges Amount per chargeable kilogram.
	MethodPerKg Method = "per_kg"
	// MethodCOD charges Percent of the declared value plus Amount.
	MethodCOD Method = "cod"
)

// ParseMethod normalizes s and checks it is a known method.
func ParseMethod(s string) (Method, error) {
	switch candidate := Method(strings.ToLower(strings.TrimSpace(s))); candidate {
	case MethodFlat, MethodDeclaredValue, MethodPerKg, MethodCOD:
		return candidate, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("unknown additional service method %q", s))
	}
}

// Codes of the standard services.
const (
	CodeInsurance = "insurance"
	CodeCOD       = "cod"
	CodeSMS       = "sms"
	CodeSaturday  = "saturday"
	CodeSignature = "signature"
)

// ServiceParams carries the raw fields of an additional service.
type ServiceParams struct {
	Code      string
	Name      string
	Method    Method
	Amount    decimal.Decimal
	Percent   decimal.Decimal
	MinCharge decimal.Decimal
	Currency  kernel.Currency
}

// Service is an optional, separately priced shipment extra.
type Service struct { //nolint:recvcheck //using for validation
	code      string
	name      string
	method    Method
	amount    decimal.Decimal
	percent   decimal.Decimal
	minCharge decimal.Decimal
	currency  kernel.Currency
	guard     guard.ConstructorGuard
}

// NewService creates a Service. Amounts and percentages must not be negative.
func NewService(p ServiceParams) (Service, error) {
	s := Service{
		code:      strings.ToLower(strings.TrimSpace(p.Code)),
		name:      strings.TrimSpace(p.Name),
		amount:    p.Amount,
		percent:   p.Percent,
		minCharge: p.MinCharge,
		currency:  p.Currency,
		guard:     guard.NewConstructorGuard(),
	}
	if s.name == "" {
		s.name = s.code
	}

	var codeErr, currencyErr error
	if s.code == "" {
		codeErr = errs.NewValueIsRequiredError("code")
	}
	if s.currency == "" {
		currencyErr = errs.NewValueIsRequiredError("currency")
	}
	method, methodErr := ParseMethod(string(p.Method))
	s.method = method

	if err := errors.Join(
		codeErr,
		currencyErr,
		methodErr,
		nonNegative("amount", p.Amount),
		nonNegative("percent", p.Percent),
		nonNegative("minCharge", p.MinCharge),
	); err != nil {
		return Service{}, err
	}
	return s, nil
}

// Validate ensures the service was created through the constructor.
func (s Service) Validate() error {
	return s.guard.Validate(ErrServiceIsNotConstructed)
}

func (s Service) Code() string               { return s.code }
func (s Service) Name() string               { return s.name }
func (s Service) Method() Method             { return s.method }
func (s Service) Amount() decimal.Decimal    { return s.amount }
func (s Service) Percent() decimal.Decimal   { return s.percent }
func (s Service) MinCharge() decimal.Decimal { return s.minCharge }
func (s Service) Currency() kernel.Currency  { return s.currency }

// Price returns the charge for a shipment with the given declared value and
// chargeable weight.
func (s Service) Price(declaredValue kernel.Money, chargeableKg decimal.Decimal) (kernel.Money, error) {
	if err := s.Validate(); err != nil {
		return kernel.Money{}, err
	}

	var raw decimal.Decimal
	switch s.method {
	case MethodFlat:
		raw = s.amount
	case MethodDeclaredValue:
		raw = declaredValue.Amount().Mul(s.percent).Div(hundred)
	case MethodPerKg:
		raw = chargeableKg.Mul(s.amount)
	case MethodCOD:
		raw = declaredValue.Amount().Mul(s.percent).Div(hundred).Add(s.amount)
	}
	raw = decimal.Max(raw, s.minCharge)

	return kernel.NewMoney(raw, s.currency)
}

// Defaults returns the standard service catalog priced in cur.
func Defaults(cur kernel.Currency) []Service {
	params := []ServiceParams{
		{Code: CodeInsurance, Name: "Insurance", Method: MethodDeclaredValue, Percent: decimal.NewFromInt(1)},
		{Code: CodeCOD, Name: "Cash on delivery", Method: MethodCOD, Percent: decimal.RequireFromString("1.5"), Amount: decimal.NewFromInt(5)},
		{Code: CodeSMS, Name: "SMS notification", Method: MethodFlat, Amount: decimal.RequireFromString("0.50")},
		{Code: CodeSaturday, Name: "Saturday delivery", Method: MethodFlat, Amount: decimal.NewFromInt(15)},
		{Code: CodeSignature, Name: "Signature on delivery", Method: MethodFlat, Amount: decimal.NewFromInt(3)},
	}
	services := make([]Service, 0, len(params))
	for _, p := range params {
		p.Currency = cur
		s, err := NewService(p)
		if err != nil {
			panic(err)
		}
		services = append(services, s)
	}
	return services
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsOutOfRangeError(field, v.String(), "0", "unbounded")
	}
	return nil
}
