// Package metrics exposes pricing telemetry as Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"pricing/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const namespace = "pricing"

// OutcomeOK labels calculations and reloads that succeeded.
const OutcomeOK = "ok"

// Recorder collects calculation, discount, snapshot and HTTP metrics.
type Recorder struct {
	calculations    *prometheus.CounterVec
	calcDuration    *prometheus.HistogramVec
	discountAmount  *prometheus.CounterVec
	snapshotReloads *prometheus.CounterVec
	snapshotLoaded  prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculations_total",
				Help:      "Shipment calculations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		calcDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "calculation_duration_seconds",
				Help:      "Time spent pricing a single shipment",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			},
			[]string{"operation"},
		),
		discountAmount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "discount_amount_total",
				Help:      "Sum of granted discounts by rule family, in quote currency units",
			},
			[]string{"kind"},
		),
		snapshotReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "snapshot_reloads_total",
				Help:      "Rule snapshot reload attempts by outcome",
			},
			[]string{"outcome"},
		),
		snapshotLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "snapshot_loaded_timestamp_seconds",
				Help:      "Unix time the current rule snapshot was published",
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
	}

	reg.MustRegister(
		r.calculations,
		r.calcDuration,
		r.discountAmount,
		r.snapshotReloads,
		r.snapshotLoaded,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

// ObserveCalculation counts one calculation. An empty kind is a success.
func (r *Recorder) ObserveCalculation(operation string, kind errs.Kind, elapsed time.Duration) {
	r.calculations.WithLabelValues(operation, outcome(kind)).Inc()
	r.calcDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// AddDiscount adds a granted discount amount.
func (r *Recorder) AddDiscount(kind string, amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	r.discountAmount.WithLabelValues(kind).Add(amount.InexactFloat64())
}

// ObserveSnapshotReload counts a reload attempt; a successful one also marks
// the publish time.
func (r *Recorder) ObserveSnapshotReload(err error, at time.Time) {
	r.snapshotReloads.WithLabelValues(outcome(errs.KindOf(err))).Inc()
	if err == nil {
		r.snapshotLoaded.Set(float64(at.Unix()))
	}
}

// ObserveHTTP records one served request. Route is the registered path
// pattern, not the raw URL.
func (r *Recorder) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func outcome(kind errs.Kind) string {
	if kind == "" {
		return OutcomeOK
	}
	return string(kind)
}
