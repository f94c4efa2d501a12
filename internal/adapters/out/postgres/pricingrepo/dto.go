// Package pricingrepo maps the pricing tables to snapshot documents. The
// tables are maintained by the back office; this service only reads them.
package pricingrepo

import (
	"time"

	"pricing/internal/adapters/out/snapshot"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ZoneDTO is a row of pricing_zones.
type ZoneDTO struct {
	Code         string                      `gorm:"type:varchar(32);primaryKey"`
	Type         string                      `gorm:"type:varchar(16);not null"`
	Countries    datatypes.JSONSlice[string] `gorm:"not null"`
	PostalRanges datatypes.JSONSlice[string] `gorm:"not null"`
	Active       bool                        `gorm:"not null;default:true"`
	Priority     int                         `gorm:"not null;default:0"`
	UpdatedAt    time.Time
}

func (ZoneDTO) TableName() string {
	return "pricing_zones"
}

// CarrierDTO is a row of carriers. Zero limits mean "no limit".
type CarrierDTO struct {
	Code              string                      `gorm:"type:varchar(32);primaryKey"`
	Name              string                      `gorm:"type:varchar(255);not null"`
	VolumetricDivisor decimal.Decimal             `gorm:"type:numeric(10,2);not null"`
	MaxWeightKg       decimal.Decimal             `gorm:"type:numeric(10,3);not null;default:0"`
	MaxLongestSideCm  decimal.Decimal             `gorm:"type:numeric(10,2);not null;default:0"`
	MaxGirthCm        decimal.Decimal             `gorm:"type:numeric(10,2);not null;default:0"`
	Zones             datatypes.JSONSlice[string] `gorm:"not null"`
	Services          datatypes.JSONSlice[string] `gorm:"not null"`
	Currency          string                      `gorm:"type:char(3);not null"`
	Active            bool                        `gorm:"not null;default:true"`
	UpdatedAt         time.Time
}

func (CarrierDTO) TableName() string {
	return "carriers"
}

// WeightRuleDTO is a row of weight_rules.
type WeightRuleDTO struct {
	ID            string              `gorm:"type:varchar(64);primaryKey"`
	Carrier       string              `gorm:"type:varchar(32);not null;index:idx_weight_rules_tariff"`
	ZoneCode      string              `gorm:"type:varchar(32);not null;index:idx_weight_rules_tariff"`
	ServiceType   string              `gorm:"type:varchar(16);not null;index:idx_weight_rules_tariff"`
	WeightFrom    decimal.Decimal     `gorm:"type:numeric(10,3);not null"`
	WeightTo      decimal.NullDecimal `gorm:"type:numeric(10,3)"`
	Method        string              `gorm:"type:varchar(16);not null"`
	BaseRate      decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0"`
	RatePerKg     decimal.Decimal     `gorm:"type:numeric(12,4);not null;default:0"`
	ThresholdKg   decimal.Decimal     `gorm:"type:numeric(10,3);not null;default:0"`
	MinimumCharge decimal.Decimal     `gorm:"type:numeric(12,2);not null;default:0"`
	Currency      string              `gorm:"type:char(3);not null"`
	UpdatedAt     time.Time
}

func (WeightRuleDTO) TableName() string {
	return "weight_rules"
}

// DiscountRuleDTO is a row of discount_rules. The family specific part of the
// rule lives in the Spec JSON column.
type DiscountRuleDTO struct {
	ID            string                               `gorm:"type:varchar(64);primaryKey"`
	Name          string                               `gorm:"type:varchar(255);not null"`
	Kind          string                               `gorm:"type:varchar(16);not null"`
	Active        bool                                 `gorm:"not null;default:true"`
	ValidFrom     *time.Time                           `gorm:"default:null"`
	ValidUntil    *time.Time                           `gorm:"default:null"`
	ServiceTypes  datatypes.JSONSlice[string]          `gorm:"not null"`
	Zones         datatypes.JSONSlice[string]          `gorm:"not null"`
	MinOrderValue decimal.Decimal                      `gorm:"type:numeric(12,2);not null;default:0"`
	Priority      int                                  `gorm:"not null;default:0"`
	Condition     string                               `gorm:"type:text;not null;default:''"`
	Spec          datatypes.JSONType[snapshot.SpecDoc] `gorm:"not null"`
	UpdatedAt     time.Time
}

func (DiscountRuleDTO) TableName() string {
	return "discount_rules"
}

// AdditionalServiceDTO is a row of additional_services.
type AdditionalServiceDTO struct {
	Code      string          `gorm:"type:varchar(32);primaryKey"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Method    string          `gorm:"type:varchar(32);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Percent   decimal.Decimal `gorm:"type:numeric(6,3);not null;default:0"`
	MinCharge decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Currency  string          `gorm:"type:char(3);not null"`
	UpdatedAt time.Time
}

func (AdditionalServiceDTO) TableName() string {
	return "additional_services"
}

// CustomerDTO is a row of customers as maintained by the billing system.
type CustomerDTO struct {
	ID                string          `gorm:"type:varchar(64);primaryKey"`
	Tier              string          `gorm:"type:varchar(16);not null;default:'bronze'"`
	MonthlyOrderCount int             `gorm:"not null;default:0"`
	MonthlySpend      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	LifetimeValue     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	IsFirstOrder      bool            `gorm:"not null;default:false"`
	UpdatedAt         time.Time
}

func (CustomerDTO) TableName() string {
	return "customers"
}

// Models lists every table of the schema, for migrations and test setup.
func Models() []any {
	return []any{
		&ZoneDTO{},
		&CarrierDTO{},
		&WeightRuleDTO{},
		&DiscountRuleDTO{},
		&AdditionalServiceDTO{},
		&CustomerDTO{},
	}
}

func (d ZoneDTO) toDoc() snapshot.ZoneDoc {
	active := d.Active
	return snapshot.ZoneDoc{
		Code:         d.Code,
		Type:         d.Type,
		Countries:    d.Countries,
		PostalRanges: d.PostalRanges,
		Active:       &active,
		Priority:     d.Priority,
	}
}

func (d CarrierDTO) toDoc() snapshot.CarrierDoc {
	active := d.Active
	return snapshot.CarrierDoc{
		Code:              d.Code,
		Name:              d.Name,
		VolumetricDivisor: d.VolumetricDivisor.String(),
		MaxWeightKg:       d.MaxWeightKg.String(),
		MaxLongestSideCm:  d.MaxLongestSideCm.String(),
		MaxGirthCm:        d.MaxGirthCm.String(),
		Zones:             d.Zones,
		Services:          d.Services,
		Currency:          d.Currency,
		Active:            &active,
	}
}

func (d WeightRuleDTO) toDoc() snapshot.WeightRuleDoc {
	doc := snapshot.WeightRuleDoc{
		ID:            d.ID,
		Carrier:       d.Carrier,
		Zone:          d.ZoneCode,
		Service:       d.ServiceType,
		WeightFrom:    d.WeightFrom.String(),
		Method:        d.Method,
		BaseRate:      d.BaseRate.String(),
		RatePerKg:     d.RatePerKg.String(),
		ThresholdKg:   d.ThresholdKg.String(),
		MinimumCharge: d.MinimumCharge.String(),
		Currency:      d.Currency,
	}
	if d.WeightTo.Valid {
		doc.WeightTo = d.WeightTo.Decimal.String()
	}
	return doc
}

func (d DiscountRuleDTO) toDoc() snapshot.DiscountRuleDoc {
	active := d.Active
	return snapshot.DiscountRuleDoc{
		ID:            d.ID,
		Name:          d.Name,
		Kind:          d.Kind,
		Active:        &active,
		ValidFrom:     formatTime(d.ValidFrom),
		ValidUntil:    formatTime(d.ValidUntil),
		ServiceTypes:  d.ServiceTypes,
		Zones:         d.Zones,
		MinOrderValue: d.MinOrderValue.String(),
		Priority:      d.Priority,
		Condition:     d.Condition,
		SpecDoc:       d.Spec.Data(),
	}
}

func (d AdditionalServiceDTO) toDoc() snapshot.ServiceDoc {
	return snapshot.ServiceDoc{
		Code:      d.Code,
		Name:      d.Name,
		Method:    d.Method,
		Amount:    d.Amount.String(),
		Percent:   d.Percent.String(),
		MinCharge: d.MinCharge.String(),
		Currency:  d.Currency,
	}
}

func (d CustomerDTO) toDoc() snapshot.CustomerDoc {
	return snapshot.CustomerDoc{
		ID:                d.ID,
		Tier:              d.Tier,
		MonthlyOrderCount: d.MonthlyOrderCount,
		MonthlySpend:      d.MonthlySpend.String(),
		LifetimeValue:     d.LifetimeValue.String(),
		IsFirstOrder:      d.IsFirstOrder,
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
