package services_test

import (
	"testing"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rate"
	"pricing/internal/core/domain/services"
	"pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tariff(t *testing.T) []rate.WeightRule {
	return []rate.WeightRule{
		newWeightRule(t, "dom-0", "0", decPtr("5"), rate.MethodFlat, "14.99", "0"),
		newWeightRule(t, "dom-5", "5", decPtr("30"), rate.MethodPerKg, "0", "2.10"),
		newWeightRule(t, "dom-30", "30", nil, rate.MethodFlat, "120", "0"),
	}
}

func TestRateCalculator_Calculate(t *testing.T) {
	calculator := services.NewRateCalculator()
	carrier := newCarrier(t, "dpd", 5000)

	testCases := []struct {
		name           string
		weight         string
		dims           [3]string
		rule           string
		price          string
		volumetric     string
		chargeable     string
		volumetricWins bool
	}{
		{
			name: "actual weight wins", weight: "2.5", dims: [3]string{"30", "20", "15"},
			rule: "dom-0", price: "14.99", volumetric: "1.8", chargeable: "2.5",
		},
		{
			name: "volumetric weight wins", weight: "1.0", dims: [3]string{"60", "40", "30"},
			rule: "dom-5", price: "30.24", volumetric: "14.4", chargeable: "14.4", volumetricWins: true,
		},
		{
			name: "band lower bound is inclusive", weight: "30", dims: [3]string{"10", "10", "10"},
			rule: "dom-30", price: "120.00", volumetric: "0.2", chargeable: "30",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			weight, err := kernel.NewWeight(dec(tc.weight))
			require.NoError(t, err)
			dims, err := kernel.NewDimensions(dec(tc.dims[0]), dec(tc.dims[1]), dec(tc.dims[2]))
			require.NoError(t, err)

			quote, err := calculator.Calculate(carrier, "domestic", kernel.ServiceStandard, weight, dims, tariff(t))

			require.NoError(t, err)
			assert.Equal(t, tc.rule, quote.RuleID)
			assert.True(t, quote.BasePrice.Amount().Equal(dec(tc.price)), "price %s", quote.BasePrice)
			assert.True(t, quote.Weight.Volumetric.Equal(dec(tc.volumetric)), "volumetric %s", quote.Weight.Volumetric)
			assert.True(t, quote.Weight.Chargeable.Equal(dec(tc.chargeable)))
			assert.Equal(t, tc.volumetricWins, quote.Weight.VolumetricWins)
			if tc.volumetricWins {
				assert.Contains(t, quote.Breakdown, "volumetric weight")
			} else {
				assert.Contains(t, quote.Breakdown, "actual weight")
			}
		})
	}
}

func TestRateCalculator_VolumetricNearBandBoundary(t *testing.T) {
	calculator := services.NewRateCalculator()
	weight, err := kernel.NewWeight(dec("1"))
	require.NoError(t, err)
	dims, err := kernel.NewDimensions(dec("2"), dec("29"), dec("431"))
	require.NoError(t, err)

	quote, err := calculator.Calculate(newCarrier(t, "dpd", 5000), "domestic", kernel.ServiceStandard, weight, dims, tariff(t))

	require.NoError(t, err)
	assert.True(t, quote.Weight.Chargeable.Equal(dec("4.9996")), "chargeable %s", quote.Weight.Chargeable)
	assert.True(t, quote.Weight.VolumetricWins)
	assert.Equal(t, "dom-0", quote.RuleID)
	assert.True(t, quote.BasePrice.Amount().Equal(dec("14.99")))
	assert.Contains(t, quote.Breakdown, "volumetric weight 5 kg charged")
}

func TestRateCalculator_ConfigurationErrors(t *testing.T) {
	calculator := services.NewRateCalculator()
	weight, _ := kernel.NewWeight(dec("2"))
	dims, _ := kernel.NewDimensions(dec("10"), dec("10"), dec("10"))

	t.Run("no rules is a configuration error", func(t *testing.T) {
		_, err := calculator.Calculate(newCarrier(t, "dpd", 5000), "domestic", kernel.ServiceStandard, weight, dims, nil)

		require.ErrorIs(t, err, errs.ErrConfiguration)
		assert.Contains(t, err.Error(), "carrier=dpd")
		assert.Contains(t, err.Error(), "zone=domestic")
	})

	t.Run("non-positive divisor is a configuration error", func(t *testing.T) {
		_, err := calculator.Calculate(newCarrier(t, "dpd", 0), "domestic", kernel.ServiceStandard, weight, dims, tariff(t))

		require.ErrorIs(t, err, errs.ErrConfiguration)
		assert.Contains(t, err.Error(), "volumetric divisor")
	})

	t.Run("overlapping rules are never resolved silently", func(t *testing.T) {
		rules := []rate.WeightRule{
			newWeightRule(t, "a", "0", decPtr("5"), rate.MethodFlat, "10", "0"),
			newWeightRule(t, "b", "1", decPtr("10"), rate.MethodFlat, "12", "0"),
		}

		_, err := calculator.Calculate(newCarrier(t, "dpd", 5000), "domestic", kernel.ServiceStandard, weight, dims, rules)

		require.ErrorIs(t, err, errs.ErrConfiguration)
		assert.Contains(t, err.Error(), "a, b")
	})

	t.Run("rules for another tariff are ignored", func(t *testing.T) {
		_, err := calculator.Calculate(newCarrier(t, "gls", 5000), "domestic", kernel.ServiceStandard, weight, dims, tariff(t))

		require.ErrorIs(t, err, errs.ErrConfiguration)
	})
}

func TestRateCalculator_ChargeableWeightProperty(t *testing.T) {
	calculator := services.NewRateCalculator()

	for _, divisor := range []int64{4000, 5000, 6000} {
		for _, side := range []string{"5", "25", "45.5", "80"} {
			carrier := newCarrier(t, "dpd", divisor)
			weight, _ := kernel.NewWeight(dec("3"))
			dims, _ := kernel.NewDimensions(dec(side), dec(side), dec("20"))

			detail, err := calculator.ChargeableWeight(carrier, weight, dims)

			require.NoError(t, err)
			expected := dims.Volume().Div(carrier.VolumetricDivisor())
			assert.True(t, detail.Volumetric.Equal(expected))
			if expected.GreaterThan(weight.Kg()) {
				assert.True(t, detail.Chargeable.Equal(expected))
			} else {
				assert.True(t, detail.Chargeable.Equal(weight.Kg()))
			}
		}
	}
}
