// Package discount contains the discount rule model evaluated by the discount
// engine.
//
// A Rule carries the eligibility filters every rule shares (active flag,
// validity window, service and zone allow-lists, minimum order value,
// priority and an optional condition expression) and a Spec describing what
// the rule does. Spec is a closed tagged variant: AdjustmentSpec,
// ContractSpec, TieredSpec, PromotionSpec, SeasonalSpec, VolumeSpec and
// ProgressiveSpec. Each variant belongs to exactly one engine Stage.
package discount
