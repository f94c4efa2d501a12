package pricingrepo_test

import (
	"path/filepath"
	"testing"
	"time"

	"pricing/internal/adapters/out/postgres/pricingrepo"
	"pricing/internal/adapters/out/snapshot"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pricing.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, pricingrepo.AutoMigrate(t.Context(), db))
	return db
}

func TestGormPricingRepository_Document(t *testing.T) {
	db := openDB(t)
	until := time.Date(2026, time.November, 30, 23, 59, 59, 0, time.UTC)

	require.NoError(t, db.Create([]pricingrepo.ZoneDTO{
		{Code: "world", Type: "world", Countries: datatypes.JSONSlice[string]{}, PostalRanges: datatypes.JSONSlice[string]{}, Active: true},
		{Code: "local", Type: "local", Countries: datatypes.JSONSlice[string]{"PL"}, PostalRanges: datatypes.JSONSlice[string]{"00-001..04-999"}, Active: true, Priority: 100},
	}).Error)
	require.NoError(t, db.Create(&pricingrepo.CarrierDTO{
		Code: "dpd", Name: "DPD", VolumetricDivisor: decimal.NewFromInt(5000), MaxWeightKg: decimal.RequireFromString("31.5"),
		Zones: datatypes.JSONSlice[string]{"local"}, Services: datatypes.JSONSlice[string]{"standard"}, Currency: "PLN", Active: true,
	}).Error)
	require.NoError(t, db.Create([]pricingrepo.WeightRuleDTO{
		{ID: "dpd-5", Carrier: "dpd", ZoneCode: "local", ServiceType: "standard", WeightFrom: decimal.NewFromInt(5),
			Method: "per_kg", RatePerKg: decimal.RequireFromString("2.5"), Currency: "PLN"},
		{ID: "dpd-0", Carrier: "dpd", ZoneCode: "local", ServiceType: "standard", WeightFrom: decimal.Zero,
			WeightTo: decimal.NewNullDecimal(decimal.NewFromInt(5)), Method: "flat", BaseRate: decimal.RequireFromString("12.99"), Currency: "PLN"},
	}).Error)
	require.NoError(t, db.Create(&pricingrepo.DiscountRuleDTO{
		ID: "bf", Name: "Black Friday", Kind: "seasonal", Active: true, ValidUntil: &until,
		ServiceTypes: datatypes.JSONSlice[string]{}, Zones: datatypes.JSONSlice[string]{"local"},
		Spec: datatypes.NewJSONType(snapshot.SpecDoc{Seasons: map[string]string{"black_friday": "25"}}),
	}).Error)
	require.NoError(t, db.Create(&pricingrepo.AdditionalServiceDTO{
		Code: "sms", Name: "SMS", Method: "flat", Amount: decimal.RequireFromString("0.5"), Currency: "PLN",
	}).Error)
	require.NoError(t, db.Create(&pricingrepo.CustomerDTO{
		ID: "acme", Tier: "gold", MonthlyOrderCount: 30, MonthlySpend: decimal.NewFromInt(2000), LifetimeValue: decimal.NewFromInt(12000),
	}).Error)

	doc, err := pricingrepo.NewGormPricingRepository(db).Document(t.Context())
	require.NoError(t, err)

	t.Run("zones by priority", func(t *testing.T) {
		require.Len(t, doc.Zones, 2)
		assert.Equal(t, "local", doc.Zones[0].Code)
		assert.Equal(t, []string{"00-001..04-999"}, doc.Zones[0].PostalRanges)
		require.NotNil(t, doc.Zones[0].Active)
		assert.True(t, *doc.Zones[0].Active)
	})

	t.Run("decimals travel as strings", func(t *testing.T) {
		require.Len(t, doc.Carriers, 1)
		assert.Equal(t, "5000", doc.Carriers[0].VolumetricDivisor)
		assert.Equal(t, "31.5", doc.Carriers[0].MaxWeightKg)
		assert.Equal(t, []string{"standard"}, doc.Carriers[0].Services)
	})

	t.Run("weight rules by band with open upper bound", func(t *testing.T) {
		require.Len(t, doc.WeightRules, 2)
		assert.Equal(t, "dpd-0", doc.WeightRules[0].ID)
		assert.Equal(t, "5", doc.WeightRules[0].WeightTo)
		assert.Equal(t, "12.99", doc.WeightRules[0].BaseRate)
		assert.Empty(t, doc.WeightRules[1].WeightTo)
	})

	t.Run("discount spec comes from the JSON column", func(t *testing.T) {
		require.Len(t, doc.DiscountRules, 1)
		rule := doc.DiscountRules[0]
		assert.Equal(t, map[string]string{"black_friday": "25"}, rule.Seasons)
		assert.Empty(t, rule.ValidFrom)
		assert.Equal(t, "2026-11-30T23:59:59Z", rule.ValidUntil)
	})

	t.Run("services and customers", func(t *testing.T) {
		require.Len(t, doc.AdditionalServices, 1)
		assert.Equal(t, "0.5", doc.AdditionalServices[0].Amount)
		require.Len(t, doc.Customers, 1)
		assert.Equal(t, "gold", doc.Customers[0].Tier)
		assert.Equal(t, 30, doc.Customers[0].MonthlyOrderCount)
	})

	t.Run("document builds", func(t *testing.T) {
		_, err := snapshot.Build(doc, "test")
		require.NoError(t, err)
	})
}

func TestGormPricingRepository_EmptyTables(t *testing.T) {
	doc, err := pricingrepo.NewGormPricingRepository(openDB(t)).Document(t.Context())

	require.NoError(t, err)
	assert.Empty(t, doc.Zones)
	assert.Empty(t, doc.Carriers)
	assert.Empty(t, doc.DiscountRules)
}
