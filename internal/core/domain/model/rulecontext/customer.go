package rulecontext

import (
	"fmt"
	"strings"

	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Tier is a customer classification.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// ParseTier normalizes s and checks it is a known tier. An empty string is
// bronze.
func ParseTier(s string) (Tier, error) {
	switch candidate := Tier(strings.ToLower(strings.TrimSpace(s))); candidate {
	case "":
		return TierBronze, nil
	case TierBronze, TierSilver, TierGold, TierPlatinum:
		return candidate, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("tier", fmt.Errorf("unknown customer tier %q", s))
	}
}

// CustomerSnapshot is the customer history a calculation sees. It is read once
// from the customer store and then treated as a value.
type CustomerSnapshot struct {
	ID                string
	Tier              Tier
	MonthlyOrderCount int
	MonthlySpend      decimal.Decimal
	LifetimeValue     decimal.Decimal
	IsFirstOrder      bool
}
