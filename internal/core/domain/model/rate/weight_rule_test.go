package rate_test

import (
	"testing"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rate"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func newRule(t *testing.T, p rate.WeightRuleParams) rate.WeightRule {
	t.Helper()
	if p.ID == "" {
		p.ID = "r1"
	}
	if p.Carrier == "" {
		p.Carrier = "dpd"
	}
	if p.ZoneCode == "" {
		p.ZoneCode = "domestic"
	}
	if p.ServiceType == "" {
		p.ServiceType = kernel.ServiceStandard
	}
	if p.Currency == "" {
		p.Currency = "PLN"
	}
	if p.Method == "" {
		p.Method = rate.MethodFlat
	}
	r, err := rate.NewWeightRule(p)
	require.NoError(t, err)
	return r
}

func TestNewWeightRule(t *testing.T) {
	t.Run("should report every missing field", func(t *testing.T) {
		_, err := rate.NewWeightRule(rate.WeightRuleParams{Method: "magic"})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		for _, field := range []string{"id", "carrier", "zoneCode", "serviceType", "currency", "method"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("should copy the upper bound", func(t *testing.T) {
		to := d("5")
		r := newRule(t, rate.WeightRuleParams{WeightTo: &to})
		to = d("50")

		got, bounded := r.WeightTo()
		assert.True(t, bounded)
		assert.True(t, got.Equal(d("5")))
	})

	t.Run("stepped is an alias of tiered", func(t *testing.T) {
		r := newRule(t, rate.WeightRuleParams{Method: "stepped"})

		assert.Equal(t, rate.MethodTiered, r.Method())
	})
}

func TestWeightRule_Contains(t *testing.T) {
	bounded := newRule(t, rate.WeightRuleParams{WeightFrom: d("5"), WeightTo: dp("10")})
	open := newRule(t, rate.WeightRuleParams{WeightFrom: d("30")})

	assert.False(t, bounded.Contains(d("4.999")))
	assert.True(t, bounded.Contains(d("5")))
	assert.True(t, bounded.Contains(d("9.999")))
	assert.False(t, bounded.Contains(d("10")))
	assert.True(t, open.Contains(d("30")))
	assert.True(t, open.Contains(d("10000")))
}

func TestWeightRule_Overlaps(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     rate.WeightRuleParams
		expected bool
	}{
		{
			name:     "partially overlapping bands",
			a:        rate.WeightRuleParams{WeightFrom: d("0"), WeightTo: dp("5")},
			b:        rate.WeightRuleParams{WeightFrom: d("3"), WeightTo: dp("10")},
			expected: true,
		},
		{
			name:     "adjacent half-open bands",
			a:        rate.WeightRuleParams{WeightFrom: d("0"), WeightTo: dp("5")},
			b:        rate.WeightRuleParams{WeightFrom: d("5"), WeightTo: dp("10")},
			expected: false,
		},
		{
			name:     "unbounded band swallows later bands",
			a:        rate.WeightRuleParams{WeightFrom: d("10")},
			b:        rate.WeightRuleParams{WeightFrom: d("20"), WeightTo: dp("30")},
			expected: true,
		},
		{
			name:     "band entirely before an unbounded band",
			a:        rate.WeightRuleParams{WeightFrom: d("0"), WeightTo: dp("10")},
			b:        rate.WeightRuleParams{WeightFrom: d("10")},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := newRule(t, tc.a), newRule(t, tc.b)

			assert.Equal(t, tc.expected, a.Overlaps(b))
			assert.Equal(t, tc.expected, b.Overlaps(a))
		})
	}
}

func TestWeightRule_Price(t *testing.T) {
	testCases := []struct {
		name       string
		params     rate.WeightRuleParams
		chargeable string
		expected   string
	}{
		{
			name:       "flat ignores weight",
			params:     rate.WeightRuleParams{Method: rate.MethodFlat, BaseRate: d("14.99")},
			chargeable: "3.7",
			expected:   "14.99",
		},
		{
			name:       "per kg multiplies",
			params:     rate.WeightRuleParams{Method: rate.MethodPerKg, RatePerKg: d("2.50")},
			chargeable: "14.4",
			expected:   "36",
		},
		{
			name: "tiered below threshold charges the base",
			params: rate.WeightRuleParams{
				Method: rate.MethodTiered, BaseRate: d("20"), ThresholdKg: d("10"), RatePerKg: d("1.5"),
			},
			chargeable: "8",
			expected:   "20",
		},
		{
			name: "tiered above threshold charges the excess",
			params: rate.WeightRuleParams{
				Method: rate.MethodTiered, BaseRate: d("20"), ThresholdKg: d("10"), RatePerKg: d("1.5"),
			},
			chargeable: "14.4",
			expected:   "26.6",
		},
		{
			name: "minimum charge lifts small results",
			params: rate.WeightRuleParams{
				Method: rate.MethodPerKg, RatePerKg: d("2"), MinimumCharge: d("9.99"),
			},
			chargeable: "1.2",
			expected:   "9.99",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRule(t, tc.params)

			got := r.Price(d(tc.chargeable))

			assert.True(t, got.Equal(d(tc.expected)), "got %s", got)
		})
	}
}
