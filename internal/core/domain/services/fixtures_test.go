package services_test

import (
	"testing"
	"time"

	"pricing/internal/core/domain/model/discount"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rate"
	"pricing/internal/core/domain/model/rulecontext"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var summerDay = time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

func pln(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(dec(amount), "PLN")
	require.NoError(t, err)
	return m
}

func newContext(t *testing.T, price string, date time.Time) rulecontext.Context {
	t.Helper()
	weight, err := kernel.NewWeight(dec("2.5"))
	require.NoError(t, err)
	dims, err := kernel.NewDimensions(dec("30"), dec("20"), dec("15"))
	require.NoError(t, err)
	rc, err := rulecontext.New(weight, dims, kernel.ServiceStandard, "domestic", pln(t, price), date)
	require.NoError(t, err)
	return rc
}

func newDiscountRule(t *testing.T, p discount.RuleParams) discount.Rule {
	t.Helper()
	p.Active = true
	r, err := discount.NewRule(p)
	require.NoError(t, err)
	return r
}

func percentage(v string) discount.Shape {
	return discount.Shape{Type: discount.ShapePercentage, Value: dec(v)}
}

func contractRule(t *testing.T, id, customer, pct string) discount.Rule {
	return newDiscountRule(t, discount.RuleParams{
		ID:   id,
		Spec: discount.ContractSpec{CustomerID: customer, Shape: percentage(pct)},
	})
}

func seasonalRule(t *testing.T, id string, season kernel.Season, pct string) discount.Rule {
	return newDiscountRule(t, discount.RuleParams{
		ID:   id,
		Spec: discount.SeasonalSpec{Percentages: map[kernel.Season]decimal.Decimal{season: dec(pct)}},
	})
}

func newWeightRule(t *testing.T, id, from string, to *decimal.Decimal, method rate.Method, base, perKg string) rate.WeightRule {
	t.Helper()
	r, err := rate.NewWeightRule(rate.WeightRuleParams{
		ID:          id,
		Carrier:     "dpd",
		ZoneCode:    "domestic",
		ServiceType: kernel.ServiceStandard,
		WeightFrom:  dec(from),
		WeightTo:    to,
		Method:      method,
		BaseRate:    dec(base),
		RatePerKg:   dec(perKg),
		Currency:    "PLN",
	})
	require.NoError(t, err)
	return r
}

func newCarrier(t *testing.T, code string, divisor int64) rate.Carrier {
	t.Helper()
	c, err := rate.NewCarrier(rate.CarrierParams{
		Code:              code,
		VolumetricDivisor: decimal.NewFromInt(divisor),
		Currency:          "PLN",
		Active:            true,
	})
	require.NoError(t, err)
	return c
}
