package discount

import "github.com/shopspring/decimal"

// Tier grants Percent once a value reaches Threshold.
type Tier struct {
	Threshold decimal.Decimal `json:"threshold"`
	Percent   decimal.Decimal `json:"percent"`
}

// VolumeTier grants Percent once both the monthly order count and the monthly
// spend reach their minimums.
type VolumeTier struct {
	MinOrders int             `json:"minOrders"`
	MinSpend  decimal.Decimal `json:"minSpend"`
	Percent   decimal.Decimal `json:"percent"`
}

// SelectTier returns the tier with the highest threshold ≤ value. Tiers must be
// sorted ascending by threshold.
func SelectTier(tiers []Tier, value decimal.Decimal) (Tier, bool) {
	var (
		selected Tier
		found    bool
	)
	for _, t := range tiers {
		if t.Threshold.GreaterThan(value) {
			break
		}
		selected, found = t, true
	}
	return selected, found
}

// SelectVolumeTier returns the highest tier whose order count and spend
// minimums are both met. Tiers must be sorted ascending.
func SelectVolumeTier(tiers []VolumeTier, orders int, spend decimal.Decimal) (VolumeTier, bool) {
	var (
		selected VolumeTier
		found    bool
	)
	for _, t := range tiers {
		if orders >= t.MinOrders && spend.GreaterThanOrEqual(t.MinSpend) {
			selected, found = t, true
		}
	}
	return selected, found
}

// DefaultVolumeTiers is the standard monthly volume table.
func DefaultVolumeTiers() []VolumeTier {
	return []VolumeTier{
		{MinOrders: 10, MinSpend: decimal.NewFromInt(500), Percent: decimal.NewFromInt(5)},
		{MinOrders: 25, MinSpend: decimal.NewFromInt(1500), Percent: decimal.NewFromInt(10)},
		{MinOrders: 50, MinSpend: decimal.NewFromInt(3000), Percent: decimal.NewFromInt(15)},
		{MinOrders: 100, MinSpend: decimal.NewFromInt(7500), Percent: decimal.NewFromInt(20)},
	}
}

// DefaultProgressiveTiers is the standard lifetime value table.
func DefaultProgressiveTiers() []Tier {
	return []Tier{
		{Threshold: decimal.NewFromInt(1000), Percent: decimal.NewFromInt(2)},
		{Threshold: decimal.NewFromInt(5000), Percent: decimal.NewFromInt(4)},
		{Threshold: decimal.NewFromInt(10000), Percent: decimal.NewFromInt(6)},
		{Threshold: decimal.NewFromInt(25000), Percent: decimal.NewFromInt(8)},
	}
}
