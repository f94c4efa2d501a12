package pricingrepo

import (
	"context"
	"fmt"

	"pricing/internal/adapters/out/snapshot"

	"gorm.io/gorm"
)

// GormPricingRepository reads the pricing tables.
type GormPricingRepository struct {
	db *gorm.DB
}

// NewGormPricingRepository creates a repository on db, which may be a
// transaction.
func NewGormPricingRepository(db *gorm.DB) *GormPricingRepository {
	return &GormPricingRepository{db: db}
}

// AutoMigrate creates or updates the pricing tables.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}

// Document reads every table into a snapshot document. Run it inside a
// transaction to get a consistent view.
func (r *GormPricingRepository) Document(ctx context.Context) (snapshot.Document, error) {
	var doc snapshot.Document

	zones, err := list[ZoneDTO](ctx, r.db, "priority DESC, code")
	if err != nil {
		return snapshot.Document{}, err
	}
	doc.Zones = convert(zones, ZoneDTO.toDoc)

	carriers, err := list[CarrierDTO](ctx, r.db, "code")
	if err != nil {
		return snapshot.Document{}, err
	}
	doc.Carriers = convert(carriers, CarrierDTO.toDoc)

	weightRules, err := list[WeightRuleDTO](ctx, r.db, "carrier, zone_code, service_type, weight_from")
	if err != nil {
		return snapshot.Document{}, err
	}
	doc.WeightRules = convert(weightRules, WeightRuleDTO.toDoc)

	discountRules, err := list[DiscountRuleDTO](ctx, r.db, "priority DESC, id")
	if err != nil {
		return snapshot.Document{}, err
	}
	doc.DiscountRules = convert(discountRules, DiscountRuleDTO.toDoc)

	services, err := list[AdditionalServiceDTO](ctx, r.db, "code")
	if err != nil {
		return snapshot.Document{}, err
	}
	doc.AdditionalServices = convert(services, AdditionalServiceDTO.toDoc)

	customers, err := list[CustomerDTO](ctx, r.db, "id")
	if err != nil {
		return snapshot.Document{}, err
	}
	doc.Customers = convert(customers, CustomerDTO.toDoc)

	return doc, nil
}

type tabler interface {
	TableName() string
}

func list[T tabler](ctx context.Context, db *gorm.DB, order string) ([]T, error) {
	var rows []T
	if err := db.WithContext(ctx).Order(order).Find(&rows).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("read %s: %w", zero.TableName(), err)
	}
	return rows, nil
}

func convert[T, D any](rows []T, toDoc func(T) D) []D {
	out := make([]D, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDoc(row))
	}
	return out
}
