package commands

import (
	"context"
	"fmt"
	"log/slog"

	"pricing/internal/core/domain/model/discount"
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/result"
	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const operationBulk = "bulk"

// AggregateDiscountSource names the batch discount in breakdowns.
const AggregateDiscountSource = "bulk-aggregate"

// AggregateTier grants Percent once a batch has MinItems successful items.
type AggregateTier struct {
	MinItems int
	Percent  decimal.Decimal
}

// DefaultAggregateTiers is the batch volume table, ascending.
func DefaultAggregateTiers() []AggregateTier {
	return []AggregateTier{
		{MinItems: 10, Percent: decimal.NewFromInt(3)},
		{MinItems: 25, Percent: decimal.NewFromInt(5)},
		{MinItems: 50, Percent: decimal.NewFromInt(7)},
		{MinItems: 100, Percent: decimal.NewFromInt(10)},
	}
}

// BulkItemResult is the outcome of one batch item.
type BulkItemResult struct {
	Index     int         `json:"index"`
	Status    string      `json:"status"`
	Quote     *PriceQuote `json:"quote,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind errs.Kind   `json:"errorKind,omitempty"`
}

// Bulk item statuses.
const (
	BulkStatusPriced  = "priced"
	BulkStatusFailed  = "failed"
	BulkStatusSkipped = "skipped"
)

// BulkCalculateResponse reports every item in request order.
type BulkCalculateResponse struct {
	BatchID                  kernel.UUID      `json:"batchId"`
	Items                    []BulkItemResult `json:"items"`
	Succeeded                int              `json:"succeeded"`
	Failed                   int              `json:"failed"`
	Skipped                  int              `json:"skipped"`
	AggregateDiscountPercent decimal.Decimal  `json:"aggregateDiscountPercent"`
	Totals                   []kernel.Money   `json:"totals"`
}

// BulkCalculateCommandHandler prices a batch item by item. Items are
// independent: a failed item never affects its siblings unless the command
// asks to stop on the first error, in which case the batch runs sequentially
// and the rest is skipped. Once the batch has enough successful items each
// of them gets the aggregate discount, applied before tax.
type BulkCalculateCommandHandler struct {
	pricer      *ShipmentPricer
	workerLimit int
	tiers       []AggregateTier
	logger      *slog.Logger
}

// NewBulkCalculateCommandHandler creates a handler. Non-positive limits use
// DefaultWorkerLimit; nil tiers use DefaultAggregateTiers.
func NewBulkCalculateCommandHandler(
	pricer *ShipmentPricer,
	workerLimit int,
	tiers []AggregateTier,
	logger *slog.Logger,
) BulkCalculateCommandHandler {
	if workerLimit <= 0 {
		workerLimit = DefaultWorkerLimit
	}
	if tiers == nil {
		tiers = DefaultAggregateTiers()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return BulkCalculateCommandHandler{
		pricer:      pricer,
		workerLimit: workerLimit,
		tiers:       tiers,
		logger:      logger.With("component", "bulk_calculate"),
	}
}

// Handle prices the batch against one snapshot.
func (h BulkCalculateCommandHandler) Handle(ctx context.Context, cmd BulkCalculateCommand) (BulkCalculateResponse, error) {
	if err := cmd.Validate(); err != nil {
		return BulkCalculateResponse{}, err
	}

	snapshot := h.pricer.Snapshot()
	items := cmd.Items()
	results := make([]BulkItemResult, len(items))

	if cmd.StopOnFirstError() {
		h.runSequential(ctx, snapshot, items, results)
	} else {
		h.runParallel(ctx, snapshot, items, results)
	}
	if err := ctx.Err(); err != nil {
		return BulkCalculateResponse{}, err
	}

	resp := BulkCalculateResponse{BatchID: kernel.NewUUID(), Items: results}
	for _, r := range results {
		switch r.Status {
		case BulkStatusPriced:
			resp.Succeeded++
		case BulkStatusFailed:
			resp.Failed++
		default:
			resp.Skipped++
		}
	}

	if tier, ok := h.aggregateTier(resp.Succeeded); ok {
		resp.AggregateDiscountPercent = tier.Percent
		for i := range resp.Items {
			if resp.Items[i].Quote == nil {
				continue
			}
			discounted, err := resp.Items[i].Quote.withAggregateDiscount(tier.Percent)
			if err != nil {
				return BulkCalculateResponse{}, fmt.Errorf("aggregate discount for item %d: %w", i, err)
			}
			resp.Items[i].Quote = &discounted
		}
	}
	resp.Totals = batchTotals(resp.Items)

	h.logger.InfoContext(ctx, "bulk batch priced",
		"batch_id", resp.BatchID.String(),
		"items", len(items), "succeeded", resp.Succeeded, "failed", resp.Failed, "skipped", resp.Skipped)
	return resp, nil
}

func (h BulkCalculateCommandHandler) runSequential(ctx context.Context, snapshot ports.Snapshot, items []BulkItem, results []BulkItemResult) {
	stopped := false
	for i, item := range items {
		if stopped || ctx.Err() != nil {
			results[i] = BulkItemResult{Index: i, Status: BulkStatusSkipped}
			continue
		}
		results[i] = h.priceItem(ctx, snapshot, i, item)
		stopped = results[i].Status == BulkStatusFailed
	}
}

func (h BulkCalculateCommandHandler) runParallel(ctx context.Context, snapshot ports.Snapshot, items []BulkItem, results []BulkItemResult) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workerLimit)
	for i, item := range items {
		g.Go(func() error {
			results[i] = h.priceItem(gctx, snapshot, i, item)
			return nil
		})
	}
	_ = g.Wait()
}

func (h BulkCalculateCommandHandler) priceItem(ctx context.Context, snapshot ports.Snapshot, i int, item BulkItem) BulkItemResult {
	err := item.Err
	var quote PriceQuote
	if err == nil {
		quote, err = h.pricer.Price(ctx, snapshot, item.Shipment, operationBulk)
	}
	if err != nil {
		return BulkItemResult{Index: i, Status: BulkStatusFailed, Error: err.Error(), ErrorKind: errs.KindOf(err)}
	}
	return BulkItemResult{Index: i, Status: BulkStatusPriced, Quote: &quote}
}

func (h BulkCalculateCommandHandler) aggregateTier(succeeded int) (AggregateTier, bool) {
	var (
		selected AggregateTier
		found    bool
	)
	for _, t := range h.tiers {
		if succeeded >= t.MinItems {
			selected, found = t, true
		}
	}
	return selected, found
}

// withAggregateDiscount returns a copy of q with the batch discount appended
// to its discount run and tax recomputed. The original quote is untouched.
func (q PriceQuote) withAggregateDiscount(percent decimal.Decimal) (PriceQuote, error) {
	scope := errs.Scope{Carrier: q.Carrier, Zone: q.Zone.Code, Service: string(q.ServiceType), RuleID: AggregateDiscountSource}
	running := q.Discounts.FinalPrice

	amount, err := kernel.NewMoney(decimal.Min(discount.Percent(running.Amount(), percent), running.Amount()), q.Currency)
	if err != nil {
		return PriceQuote{}, errs.NewCalculationError(scope, "aggregate discount", err)
	}
	if !amount.Amount().IsPositive() {
		return q, nil
	}
	final, err := running.Sub(amount)
	if err != nil {
		return PriceQuote{}, errs.NewCalculationError(scope, "aggregate discount", err)
	}
	total, err := q.Discounts.TotalDiscount.Add(amount)
	if err != nil {
		return PriceQuote{}, errs.NewCalculationError(scope, "aggregate discount", err)
	}

	d := q.Discounts
	d.DiscountBreakdown = append(append([]result.BreakdownEntry(nil), d.DiscountBreakdown...),
		result.BreakdownEntry{Type: discount.KindVolume, Source: AggregateDiscountSource, Amount: amount})
	d.AppliedRules = append(append([]string(nil), d.AppliedRules...), AggregateDiscountSource)
	d.FinalPrice = final
	d.TotalDiscount = total
	q.Discounts = d

	return q.withTax(scope)
}

// batchTotals sums item totals per currency in first-seen order.
func batchTotals(items []BulkItemResult) []kernel.Money {
	totals := []kernel.Money{}
	for _, it := range items {
		if it.Quote == nil {
			continue
		}
		found := false
		for j := range totals {
			if totals[j].Currency() == it.Quote.Currency {
				totals[j], _ = totals[j].Add(it.Quote.Total)
				found = true
				break
			}
		}
		if !found {
			totals = append(totals, it.Quote.Total)
		}
	}
	return totals
}
