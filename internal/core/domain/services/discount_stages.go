package services

import (
	"strings"

	"pricing/internal/core/domain/model/discount"
	"pricing/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

func applyAdjustments(run *discountRun, price kernel.Money, rules []discount.Rule) kernel.Money {
	for _, r := range rules {
		spec, ok := r.Spec().(discount.AdjustmentSpec)
		if !ok || !run.eligible(r) {
			continue
		}
		var triggered bool
		switch spec.Trigger {
		case discount.TriggerOverweight:
			triggered = run.chargeable.GreaterThan(spec.ThresholdKg)
		case discount.TriggerOversize:
			triggered = run.rc.Dimensions().LongestSide().GreaterThan(spec.ThresholdCm)
		}
		if !triggered {
			continue
		}
		raw := spec.Shape.Value
		if spec.Shape.Type == discount.ShapePercentage {
			raw = discount.Percent(price.Amount(), spec.Shape.Value)
		}
		price = run.surcharge(r, price, raw)
	}
	return price
}

func applyContracts(run *discountRun, price kernel.Money, rules []discount.Rule) kernel.Money {
	for _, r := range rules {
		if !run.eligible(r) {
			continue
		}
		switch spec := r.Spec().(type) {
		case discount.ContractSpec:
			customer, ok := run.customer(r)
			if !ok || !strings.EqualFold(customer.ID, spec.CustomerID) {
				continue
			}
			price, _ = run.discount(r, price, contractAmount(spec, price.Amount()))
		case discount.TieredSpec:
			tier, found := discount.SelectTier(spec.Tiers, price.Amount())
			if !found {
				continue
			}
			price, _ = run.discount(r, price, discount.Percent(price.Amount(), tier.Percent))
		}
	}
	return price
}

func contractAmount(spec discount.ContractSpec, price decimal.Decimal) decimal.Decimal {
	if len(spec.Tiers) == 0 {
		return spec.Shape.Amount(price)
	}
	tier, found := discount.SelectTier(spec.Tiers, price)
	if !found {
		return decimal.Zero
	}
	return discount.Percent(price, tier.Percent)
}

// applyPromotion applies the first eligible promotion that yields a positive
// amount. Promotions never stack. When the caller supplied promo codes only
// promotions carrying one of them are eligible.
func applyPromotion(run *discountRun, price kernel.Money, rules []discount.Rule) kernel.Money {
	for _, r := range rules {
		spec, ok := r.Spec().(discount.PromotionSpec)
		if !ok || !run.eligible(r) {
			continue
		}
		if run.rc.HasPromoCodes() && !run.rc.HasPromoCode(spec.Code) {
			continue
		}
		next, applied := run.discount(r, price, promotionAmount(spec, price.Amount(), run.rc.ItemCount()))
		if !applied {
			continue
		}
		label := r.ID()
		if spec.Code != "" {
			label = strings.ToUpper(strings.TrimSpace(spec.Code))
		}
		run.promotions = append(run.promotions, label)
		return next
	}
	return price
}

func promotionAmount(spec discount.PromotionSpec, price decimal.Decimal, items int) decimal.Decimal {
	var amount decimal.Decimal
	switch spec.Type {
	case discount.PromotionPercentage:
		amount = discount.Percent(price, spec.Value)
	case discount.PromotionFixed:
		amount = spec.Value
	case discount.PromotionBuyXGetY:
		group := spec.BuyQuantity + spec.GetQuantity
		if group <= 0 || items < group {
			return decimal.Zero
		}
		free := (items / group) * spec.GetQuantity
		amount = price.Mul(decimal.NewFromInt(int64(free))).Div(decimal.NewFromInt(int64(items)))
	case discount.PromotionFreeShipping:
		amount = price
	}
	if spec.MaxDiscountPerOrder.IsPositive() {
		amount = decimal.Min(amount, spec.MaxDiscountPerOrder)
	}
	return amount
}

func applySeasonal(run *discountRun, price kernel.Money, rules []discount.Rule) kernel.Money {
	for _, r := range rules {
		spec, ok := r.Spec().(discount.SeasonalSpec)
		if !ok || !run.eligible(r) {
			continue
		}
		pct, found := spec.Percentages[run.rc.Season()]
		if !found {
			continue
		}
		price, _ = run.discount(r, price, discount.Percent(price.Amount(), pct))
	}
	return price
}

func applyVolume(run *discountRun, price kernel.Money, rules []discount.Rule) kernel.Money {
	for _, r := range rules {
		spec, ok := r.Spec().(discount.VolumeSpec)
		if !ok || !run.eligible(r) {
			continue
		}
		customer, ok := run.customer(r)
		if !ok {
			continue
		}
		tier, found := discount.SelectVolumeTier(spec.Tiers, customer.MonthlyOrderCount, customer.MonthlySpend)
		if !found {
			continue
		}
		price, _ = run.discount(r, price, discount.Percent(price.Amount(), tier.Percent))
	}
	return price
}

func applyProgressive(run *discountRun, price kernel.Money, rules []discount.Rule) kernel.Money {
	for _, r := range rules {
		spec, ok := r.Spec().(discount.ProgressiveSpec)
		if !ok || !run.eligible(r) {
			continue
		}
		customer, ok := run.customer(r)
		if !ok {
			continue
		}
		tier, found := discount.SelectTier(spec.Tiers, customer.LifetimeValue)
		if !found {
			continue
		}
		price, _ = run.discount(r, price, discount.Percent(price.Amount(), tier.Percent))
	}
	return price
}
