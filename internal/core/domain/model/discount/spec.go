package discount

import (
	"fmt"
	"strings"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Spec is the variant part of a Rule. The set of implementations is closed;
// consumers dispatch with a type switch over the concrete types below.
type Spec interface {
	Kind() Kind
	isSpec()
}

// AdjustmentTrigger selects what a weight or dimension surcharge reacts to.
type AdjustmentTrigger string

const (
	// TriggerOverweight fires when chargeable weight exceeds ThresholdKg.
	TriggerOverweight AdjustmentTrigger = "overweight"
	// TriggerOversize fires when the longest side exceeds ThresholdCm.
	TriggerOversize AdjustmentTrigger = "oversize"
)

// AdjustmentSpec is a surcharge added to the base price before any discount.
// Only fixed and percentage shapes are meaningful.
type AdjustmentSpec struct {
	Trigger     AdjustmentTrigger
	ThresholdKg decimal.Decimal
	ThresholdCm decimal.Decimal
	Shape       Shape
}

func (AdjustmentSpec) Kind() Kind { return KindAdjustment }
func (AdjustmentSpec) isSpec()    {}

// ContractSpec is a customer-specific discount. When Tiers is non-empty the
// percentage is taken from the highest tier whose threshold does not exceed the
// current order value and Shape is ignored.
type ContractSpec struct {
	CustomerID string
	Shape      Shape
	Tiers      []Tier
}

func (ContractSpec) Kind() Kind { return KindContract }
func (ContractSpec) isSpec()    {}

// TieredSpec is an order-value tiered discount open to every customer. It is
// evaluated in the contract stage.
type TieredSpec struct {
	Tiers []Tier
}

func (TieredSpec) Kind() Kind { return KindTiered }
func (TieredSpec) isSpec()    {}

// PromotionType is the mechanic of a promotion.
type PromotionType string

const (
	PromotionPercentage   PromotionType = "percentage"
	PromotionFixed        PromotionType = "fixed"
	PromotionBuyXGetY     PromotionType = "buy_x_get_y"
	PromotionFreeShipping PromotionType = "free_shipping"
)

// ParsePromotionType normalizes s and checks it is a known mechanic.
func ParsePromotionType(s string) (PromotionType, error) {
	switch candidate := PromotionType(strings.ToLower(strings.TrimSpace(s))); candidate {
	case PromotionPercentage, PromotionFixed, PromotionBuyXGetY, PromotionFreeShipping:
		return candidate, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("promotionType", fmt.Errorf("unknown promotion type %q", s))
	}
}

// PromotionSpec is a time-boxed campaign. A promotion with a Code applies only
// when the caller supplies that code; one without a Code applies
// automatically. Campaigns sharing a Scope must not overlap in time.
//
// For buy-X-get-Y, every complete group of BuyQuantity+GetQuantity items earns
// GetQuantity free items, priced pro rata from the current price.
// MaxDiscountPerOrder caps the amount when positive.
type PromotionSpec struct {
	Code                string
	Scope               string
	Type                PromotionType
	Value               decimal.Decimal
	BuyQuantity         int
	GetQuantity         int
	MaxDiscountPerOrder decimal.Decimal
}

func (PromotionSpec) Kind() Kind { return KindPromotion }
func (PromotionSpec) isSpec()    {}

// SeasonalSpec grants a percentage keyed by calendar season. Seasons without
// an entry get nothing.
type SeasonalSpec struct {
	Percentages map[kernel.Season]decimal.Decimal
}

func (SeasonalSpec) Kind() Kind { return KindSeasonal }
func (SeasonalSpec) isSpec()    {}

// VolumeSpec grants a percentage by joint monthly order count and spend.
type VolumeSpec struct {
	Tiers []VolumeTier
}

func (VolumeSpec) Kind() Kind { return KindVolume }
func (VolumeSpec) isSpec()    {}

// ProgressiveSpec grants a percentage by the customer's lifetime order value.
type ProgressiveSpec struct {
	Tiers []Tier
}

func (ProgressiveSpec) Kind() Kind { return KindProgressive }
func (ProgressiveSpec) isSpec()    {}
