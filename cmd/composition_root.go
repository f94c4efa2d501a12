package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "pricing/internal/adapters/in/http"
	"pricing/internal/adapters/out/postgres"
	"pricing/internal/adapters/out/snapshot"
	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/core/application/usecases/queries"
	"pricing/internal/core/domain/services"
	"pricing/internal/core/ports"
	"pricing/internal/jobs"
	"pricing/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	logger     *slog.Logger
	registry   *prometheus.Registry
	recorder   *metrics.Recorder
	conditions *services.ConditionEvaluator
	source     ports.SnapshotSource
	holder     *snapshot.Holder
	cache      *services.QuoteCache[commands.PriceQuote]
	pricer     *commands.ShipmentPricer
}

// NewCompositionRoot loads the first snapshot and wires the pricing core.
// gormDB is only used by the postgres snapshot source and may be nil otherwise.
func NewCompositionRoot(ctx context.Context, configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	source, err := newSnapshotSource(configs, gormDB)
	if err != nil {
		return nil, err
	}
	initial, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load initial pricing snapshot: %w", err)
	}

	conditions, err := services.NewConditionEvaluator()
	if err != nil {
		return nil, fmt.Errorf("create condition evaluator: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	holder := snapshot.NewHolder(initial)
	cache := services.NewQuoteCache[commands.PriceQuote](configs.QuoteCacheTTL, nil)
	taxRate := configs.TaxRatePercent
	pricer, err := commands.NewShipmentPricer(commands.ShipmentPricerDeps{
		Snapshots:       holder,
		Conditions:      conditions,
		DomesticCountry: configs.DomesticCountry,
		TaxRatePercent:  &taxRate,
		Cache:           cache,
		Metrics:         recorder,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Pricing snapshot loaded", "source", configs.SnapshotSource, "version", initial.Version())
	return &CompositionRoot{
		configs:    configs,
		logger:     logger,
		registry:   registry,
		recorder:   recorder,
		conditions: conditions,
		source:     source,
		holder:     holder,
		cache:      cache,
		pricer:     pricer,
	}, nil
}

func newSnapshotSource(configs Config, gormDB *gorm.DB) (ports.SnapshotSource, error) {
	switch configs.SnapshotSource {
	case SnapshotSourceFile:
		return snapshot.NewFileSource(configs.SnapshotFile), nil
	case SnapshotSourcePostgres:
		if gormDB == nil {
			return nil, errors.New("postgres snapshot source needs a database connection")
		}
		return postgres.NewSnapshotLoader(gormDB), nil
	default:
		return nil, fmt.Errorf("unknown snapshot source %q", configs.SnapshotSource)
	}
}

func (c *CompositionRoot) CreateCalculatePriceCommandHandler() commands.CalculatePriceCommandHandler {
	return commands.NewCalculatePriceCommandHandler(c.pricer)
}

func (c *CompositionRoot) CreateCompareCarriersCommandHandler() commands.CompareCarriersCommandHandler {
	return commands.NewCompareCarriersCommandHandler(c.pricer, c.configs.WorkerLimit)
}

func (c *CompositionRoot) CreateBulkCalculateCommandHandler() commands.BulkCalculateCommandHandler {
	return commands.NewBulkCalculateCommandHandler(c.pricer, c.configs.WorkerLimit, nil, c.logger)
}

func (c *CompositionRoot) CreateApplyDiscountsCommandHandler() commands.ApplyDiscountsCommandHandler {
	return commands.NewApplyDiscountsCommandHandler(c.pricer)
}

func (c *CompositionRoot) CreateRefreshSnapshotCommandHandler() (*commands.RefreshSnapshotCommandHandler, error) {
	return commands.NewRefreshSnapshotCommandHandler(c.source, c.holder, c.conditions, c.pricer, c.logger)
}

func (c *CompositionRoot) CreateResolveZoneQueryHandler() queries.ResolveZoneQueryHandler {
	return queries.NewResolveZoneQueryHandler(c.holder, c.configs.DomesticCountry, c.logger)
}

func (c *CompositionRoot) CreateListCarriersQueryHandler() queries.ListCarriersQueryHandler {
	return queries.NewListCarriersQueryHandler(c.holder)
}

func (c *CompositionRoot) CreateListZonesQueryHandler() queries.ListZonesQueryHandler {
	return queries.NewListZonesQueryHandler(c.holder)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		Calculate:    c.CreateCalculatePriceCommandHandler(),
		Compare:      c.CreateCompareCarriersCommandHandler(),
		Bulk:         c.CreateBulkCalculateCommandHandler(),
		Discounts:    c.CreateApplyDiscountsCommandHandler(),
		ResolveZone:  c.CreateResolveZoneQueryHandler(),
		ListCarriers: c.CreateListCarriersQueryHandler(),
		ListZones:    c.CreateListZonesQueryHandler(),
	}, c.holder.Version)
}

// CreateJobManager wires the background jobs. A job whose schedule is
// ScheduleDisabled is left out.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	var refresh *jobs.SnapshotRefreshJob
	if c.configs.SnapshotRefreshSchedule != ScheduleDisabled {
		handler, err := c.CreateRefreshSnapshotCommandHandler()
		if err != nil {
			return nil, err
		}
		refresh = jobs.NewSnapshotRefreshJob(handler, c.recorder, c.configs.SnapshotRefreshSchedule, c.logger)
	}

	var sweep *jobs.QuoteCacheSweepJob
	if c.configs.CacheSweepSchedule != ScheduleDisabled {
		sweep = jobs.NewQuoteCacheSweepJob(c.cache, c.configs.CacheSweepSchedule, c.logger)
	}
	return jobs.NewJobManager(refresh, sweep), nil
}

// Recorder is the metrics sink shared by the pricer, the jobs and the HTTP middleware.
func (c *CompositionRoot) Recorder() *metrics.Recorder {
	return c.recorder
}

// Gatherer serves /metrics.
func (c *CompositionRoot) Gatherer() prometheus.Gatherer {
	return c.registry
}

func (c *CompositionRoot) SnapshotVersion() string {
	return c.holder.Version()
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}
