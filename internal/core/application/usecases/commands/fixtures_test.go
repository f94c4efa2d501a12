package commands_test

import (
	"context"
	"testing"
	"time"

	"pricing/internal/adapters/out/snapshot"
	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/rate"
	"pricing/internal/core/domain/services"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var calculatedAt = time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

const pricingYAML = `
zones:
  - {code: local, type: local, countries: [PL], postalRanges: ["00-001..04-999"], priority: 100}
  - {code: domestic, type: domestic, countries: [PL], priority: 50}
carriers:
  - {code: dpd, volumetricDivisor: "5000", maxWeightKg: "31.5", currency: PLN}
  - {code: inpost, volumetricDivisor: "6000", maxWeightKg: "25", maxLongestSideCm: "64", currency: PLN}
  - {code: dhl, volumetricDivisor: "5000", maxWeightKg: "70", currency: PLN}
weightRules:
  - {id: dpd-dom-0, carrier: dpd, zone: domestic, service: standard, weightFrom: "0", weightTo: "5", method: flat, baseRate: "14.99", currency: PLN}
  - {id: dpd-dom-5, carrier: dpd, zone: domestic, service: standard, weightFrom: "5", method: tiered, baseRate: "14.99", thresholdKg: "5", ratePerKg: "1.20", currency: PLN}
  - {id: dpd-loc-0, carrier: dpd, zone: local, service: standard, weightFrom: "0", method: flat, baseRate: "12.99", currency: PLN}
  - {id: inp-dom-0, carrier: inpost, zone: domestic, service: standard, weightFrom: "0", method: flat, baseRate: "13.49", currency: PLN}
  - {id: dhl-dom-0, carrier: dhl, zone: domestic, service: standard, weightFrom: "0", method: flat, baseRate: "17.99", currency: PLN}
discountRules:
  - {id: contract-acme, kind: contract, customerId: acme, shape: {type: percentage, value: "10"}}
additionalServices:
  - {code: insurance, method: declared_value_percentage, percent: "1", minCharge: "2.00", currency: PLN}
  - {code: sms, method: flat, amount: "0.50", currency: PLN}
customers:
  - {id: acme, tier: gold, monthlyOrderCount: 30, monthlySpend: "2000", lifetimeValue: "12000"}
`

type MockSnapshotProvider struct{ mock.Mock }

func (m *MockSnapshotProvider) Current() ports.Snapshot {
	return m.Called().Get(0).(ports.Snapshot)
}

// MockSnapshot records which views a calculation opens.
type MockSnapshot struct{ mock.Mock }

func (m *MockSnapshot) Version() string { return m.Called().String(0) }

func (m *MockSnapshot) Zones() ports.ZoneCatalog {
	return m.Called().Get(0).(ports.ZoneCatalog)
}

func (m *MockSnapshot) WeightRules() ports.WeightRuleRepository {
	return m.Called().Get(0).(ports.WeightRuleRepository)
}

func (m *MockSnapshot) Carriers() ports.CarrierRepository {
	return m.Called().Get(0).(ports.CarrierRepository)
}

func (m *MockSnapshot) DiscountRules() ports.DiscountRuleRepository {
	return m.Called().Get(0).(ports.DiscountRuleRepository)
}

func (m *MockSnapshot) AdditionalServices() ports.AdditionalServiceCatalog {
	return m.Called().Get(0).(ports.AdditionalServiceCatalog)
}

func (m *MockSnapshot) Customers() ports.CustomerRepository {
	return m.Called().Get(0).(ports.CustomerRepository)
}

type MockCarrierRepository struct{ mock.Mock }

func (m *MockCarrierRepository) Get(ctx context.Context, code string) (rate.Carrier, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(rate.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) ListActive(ctx context.Context) ([]rate.Carrier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]rate.Carrier), args.Error(1)
}

type MockMetricsRecorder struct{ mock.Mock }

func (m *MockMetricsRecorder) ObserveCalculation(operation string, kind errs.Kind, elapsed time.Duration) {
	m.Called(operation, kind, elapsed)
}

func (m *MockMetricsRecorder) AddDiscount(kind string, amount decimal.Decimal) {
	m.Called(kind, amount)
}

func loadSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	s, err := snapshot.ParseYAML([]byte(pricingYAML), "test-v1")
	require.NoError(t, err)
	return s
}

func providerFor(s ports.Snapshot) *MockSnapshotProvider {
	p := &MockSnapshotProvider{}
	p.On("Current").Return(s)
	return p
}

// newPricer fills the unset dependencies with the fixture snapshot, a real
// condition evaluator and a clock stopped at calculatedAt.
func newPricer(t *testing.T, deps commands.ShipmentPricerDeps) *commands.ShipmentPricer {
	t.Helper()
	if deps.Snapshots == nil {
		deps.Snapshots = providerFor(loadSnapshot(t))
	}
	if deps.Conditions == nil {
		conditions, err := services.NewConditionEvaluator()
		require.NoError(t, err)
		deps.Conditions = conditions
	}
	if deps.Now == nil {
		deps.Now = func() time.Time { return calculatedAt }
	}
	pricer, err := commands.NewShipmentPricer(deps)
	require.NoError(t, err)
	return pricer
}

func domesticRequest(carrier, weightKg string) commands.ShipmentRequest {
	return commands.ShipmentRequest{
		Carrier:     carrier,
		ZoneCode:    "domestic",
		WeightKg:    weightKg,
		LengthCm:    "30",
		WidthCm:     "20",
		HeightCm:    "15",
		ServiceType: "standard",
	}
}

func pln(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), "PLN")
	require.NoError(t, err)
	return m
}

func assertMoney(t *testing.T, want string, got kernel.Money) {
	t.Helper()
	require.Equal(t, want, got.Amount().StringFixed(kernel.MoneyScale), "money %s", got)
}

func decimalOf(s string) decimal.Decimal { return decimal.RequireFromString(s) }
