package metrics_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveCalculation(t *testing.T) {
	registry := prometheus.NewRegistry()
	r := metrics.NewRecorder(registry)

	r.ObserveCalculation("calculate", "", 2*time.Millisecond)
	r.ObserveCalculation("calculate", errs.KindCapacity, time.Millisecond)
	r.ObserveCalculation("compare", "", time.Millisecond)

	assert.Equal(t, 2, count(t, registry, "pricing_calculation_duration_seconds"))

	expected := `
# HELP pricing_calculations_total Shipment calculations by operation and outcome
# TYPE pricing_calculations_total counter
pricing_calculations_total{operation="calculate",outcome="capacity"} 1
pricing_calculations_total{operation="calculate",outcome="ok"} 1
pricing_calculations_total{operation="compare",outcome="ok"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "pricing_calculations_total"))
}

func TestRecorder_AddDiscount(t *testing.T) {
	registry := prometheus.NewRegistry()
	r := metrics.NewRecorder(registry)

	r.AddDiscount("contract", decimal.RequireFromString("1.50"))
	r.AddDiscount("contract", decimal.RequireFromString("2.25"))
	r.AddDiscount("promotion", decimal.Zero)

	assert.Equal(t, 1, count(t, registry, "pricing_discount_amount_total"))
	expected := `
# HELP pricing_discount_amount_total Sum of granted discounts by rule family, in quote currency units
# TYPE pricing_discount_amount_total counter
pricing_discount_amount_total{kind="contract"} 3.75
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "pricing_discount_amount_total"))
}

func TestRecorder_ObserveSnapshotReload(t *testing.T) {
	registry := prometheus.NewRegistry()
	r := metrics.NewRecorder(registry)
	at := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)

	r.ObserveSnapshotReload(nil, at)
	r.ObserveSnapshotReload(errs.NewConfigurationError(errs.Scope{}, "broken"), at.Add(time.Minute))
	r.ObserveSnapshotReload(errors.New("disk gone"), at.Add(2*time.Minute))

	expected := `
# HELP pricing_snapshot_reloads_total Rule snapshot reload attempts by outcome
# TYPE pricing_snapshot_reloads_total counter
pricing_snapshot_reloads_total{outcome="configuration"} 1
pricing_snapshot_reloads_total{outcome="internal"} 1
pricing_snapshot_reloads_total{outcome="ok"} 1
# HELP pricing_snapshot_loaded_timestamp_seconds Unix time the current rule snapshot was published
# TYPE pricing_snapshot_loaded_timestamp_seconds gauge
pricing_snapshot_loaded_timestamp_seconds 1.7841168e+09
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"pricing_snapshot_reloads_total", "pricing_snapshot_loaded_timestamp_seconds"))
}

func TestRecorder_ObserveHTTP(t *testing.T) {
	registry := prometheus.NewRegistry()
	r := metrics.NewRecorder(registry)

	r.ObserveHTTP("POST", "/api/v1/quotes", 200, 3*time.Millisecond)
	r.ObserveHTTP("POST", "/api/v1/quotes", 422, time.Millisecond)

	assert.Equal(t, 2, count(t, registry, "pricing_http_requests_total"))
	assert.Equal(t, 1, count(t, registry, "pricing_http_request_duration_seconds"))
}

func TestNewRecorder_RegistersOnce(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics.NewRecorder(registry)
	assert.Panics(t, func() { metrics.NewRecorder(registry) })
}

func count(t *testing.T, registry *prometheus.Registry, name string) int {
	t.Helper()
	n, err := testutil.GatherAndCount(registry, name)
	require.NoError(t, err)
	return n
}
