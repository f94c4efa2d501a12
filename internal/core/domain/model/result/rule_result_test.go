package result_test

import (
	"testing"

	"pricing/internal/core/domain/model/discount"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/result"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeightDetail(t *testing.T) {
	t.Run("actual weight wins", func(t *testing.T) {
		w := result.NewWeightDetail(decimal.RequireFromString("2.5"), decimal.RequireFromString("1.8"))

		assert.False(t, w.VolumetricWins)
		assert.True(t, w.Chargeable.Equal(decimal.RequireFromString("2.5")))
	})

	t.Run("volumetric weight wins", func(t *testing.T) {
		w := result.NewWeightDetail(decimal.RequireFromString("1.0"), decimal.RequireFromString("14.4"))

		assert.True(t, w.VolumetricWins)
		assert.True(t, w.Chargeable.Equal(decimal.RequireFromString("14.4")))
	})

	t.Run("volumetric weight is kept exact", func(t *testing.T) {
		exact := decimal.NewFromInt(1000).Div(decimal.NewFromInt(6000))
		w := result.NewWeightDetail(decimal.RequireFromString("0.1"), exact)

		assert.True(t, w.Volumetric.Equal(exact))
		assert.True(t, w.Chargeable.Equal(exact))
		assert.Equal(t, "0.167", result.Grams(w.Volumetric).String())
	})

	t.Run("volumetric just below a whole kilogram is not rounded up", func(t *testing.T) {
		w := result.NewWeightDetail(decimal.NewFromInt(1), decimal.RequireFromString("4.9996"))

		assert.True(t, w.VolumetricWins)
		assert.True(t, w.Chargeable.LessThan(decimal.NewFromInt(5)))
	})

	t.Run("a tie keeps actual weight", func(t *testing.T) {
		w := result.NewWeightDetail(decimal.NewFromInt(3), decimal.NewFromInt(3))

		assert.False(t, w.VolumetricWins)
	})
}

func TestNewErrorResult(t *testing.T) {
	price, err := kernel.NewMoney(decimal.NewFromInt(100), "PLN")
	require.NoError(t, err)
	violations := []errs.Violation{
		{RuleID: "p1", Field: "value", Message: "percentage must be within [0, 100]"},
		{RuleID: "p2", Field: "validUntil", Message: "must not be before validFrom"},
	}

	res := result.NewErrorResult(price, result.WeightDetail{}, violations)

	assert.True(t, res.HasErrors())
	assert.True(t, res.FinalPrice.Equal(price))
	assert.True(t, res.OriginalPrice.Equal(price))
	assert.True(t, res.TotalDiscount.IsZero())
	assert.Len(t, res.Errors, 2)
	assert.Equal(t, "rule p1: value: percentage must be within [0, 100]", res.Errors[0])
	assert.Empty(t, res.DiscountBreakdown)
}

func TestRuleResult_Sums(t *testing.T) {
	ten, _ := kernel.NewMoney(decimal.NewFromInt(10), "PLN")
	half, _ := kernel.NewMoney(decimal.RequireFromString("22.50"), "PLN")
	res := result.RuleResult{
		DiscountBreakdown: []result.BreakdownEntry{
			{Type: discount.KindContract, Source: "c1", Amount: ten},
			{Type: discount.KindSeasonal, Source: "s1", Amount: half},
		},
		Adjustments: []result.BreakdownEntry{{Type: discount.KindAdjustment, Source: "a1", Amount: ten}},
	}

	assert.True(t, res.DiscountSum().Equal(decimal.RequireFromString("32.5")))
	assert.True(t, res.AdjustmentSum().Equal(decimal.NewFromInt(10)))
}
