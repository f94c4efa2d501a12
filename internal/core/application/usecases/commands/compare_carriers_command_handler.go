package commands

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const operationCompare = "compare"

// DefaultWorkerLimit bounds the fan-out of comparison and bulk runs.
const DefaultWorkerLimit = 8

// CarrierOption is one carrier's outcome in a comparison.
type CarrierOption struct {
	Carrier   string      `json:"carrier"`
	Available bool        `json:"available"`
	Quote     *PriceQuote `json:"quote,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	ErrorKind errs.Kind   `json:"errorKind,omitempty"`
}

// ComparisonSummary aggregates the available options.
type ComparisonSummary struct {
	Cheapest         string       `json:"cheapest"`
	MostExpensive    string       `json:"mostExpensive"`
	Average          kernel.Money `json:"average"`
	SavingsPotential kernel.Money `json:"savingsPotential"`
}

// CompareCarriersResponse lists available carriers by total ascending (carrier
// code breaks ties) followed by the unavailable ones by code.
type CompareCarriersResponse struct {
	Options  []CarrierOption    `json:"options"`
	Summary  *ComparisonSummary `json:"summary,omitempty"`
	Warnings []string           `json:"warnings"`
}

// CompareCarriersCommandHandler prices one shipment with every requested
// carrier. A carrier that fails is reported as unavailable with the reason;
// the comparison itself only fails when the carrier list cannot be loaded or
// the context ends.
//
// Example:
//
//	cmd, _ := NewCompareCarriersCommand(req, []string{"dpd", "inpost", "gls"})
//	resp, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Println("cheapest:", resp.Summary.Cheapest)
type CompareCarriersCommandHandler struct {
	pricer      *ShipmentPricer
	workerLimit int
}

// NewCompareCarriersCommandHandler creates a handler running at most
// workerLimit calculations at once. Non-positive limits use DefaultWorkerLimit.
func NewCompareCarriersCommandHandler(pricer *ShipmentPricer, workerLimit int) CompareCarriersCommandHandler {
	if workerLimit <= 0 {
		workerLimit = DefaultWorkerLimit
	}
	return CompareCarriersCommandHandler{pricer: pricer, workerLimit: workerLimit}
}

// Handle runs one isolated calculation per carrier over a single snapshot.
func (h CompareCarriersCommandHandler) Handle(ctx context.Context, cmd CompareCarriersCommand) (CompareCarriersResponse, error) {
	if err := cmd.Validate(); err != nil {
		return CompareCarriersResponse{}, err
	}

	snapshot := h.pricer.Snapshot()
	codes := cmd.Carriers()
	if len(codes) == 0 {
		carriers, err := snapshot.Carriers().ListActive(ctx)
		if err != nil {
			return CompareCarriersResponse{}, fmt.Errorf("list carriers: %w", err)
		}
		for _, c := range carriers {
			codes = append(codes, c.Code())
		}
	}

	options := make([]CarrierOption, len(codes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workerLimit)
	for i, code := range codes {
		g.Go(func() error {
			quote, err := h.pricer.Price(gctx, snapshot, cmd.Shipment().WithCarrier(code), operationCompare)
			if err != nil {
				options[i] = CarrierOption{Carrier: code, Reason: err.Error(), ErrorKind: errs.KindOf(err)}
				return nil
			}
			options[i] = CarrierOption{Carrier: code, Available: true, Quote: &quote}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return CompareCarriersResponse{}, err
	}

	slices.SortFunc(options, compareOptions)
	summary, warnings := summarize(options)
	return CompareCarriersResponse{Options: options, Summary: summary, Warnings: warnings}, nil
}

func compareOptions(a, b CarrierOption) int {
	if a.Available != b.Available {
		if a.Available {
			return -1
		}
		return 1
	}
	if a.Available {
		if c := a.Quote.Total.Amount().Cmp(b.Quote.Total.Amount()); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Carrier, b.Carrier)
}

// summarize computes the summary over available options quoted in the
// cheapest option's currency. Options must already be sorted.
func summarize(options []CarrierOption) (*ComparisonSummary, []string) {
	warnings := []string{}
	var priced []*PriceQuote
	for _, o := range options {
		if !o.Available {
			continue
		}
		if len(priced) > 0 && o.Quote.Currency != priced[0].Currency {
			warnings = append(warnings, fmt.Sprintf("carrier %s quotes in %s and is left out of the summary", o.Carrier, o.Quote.Currency))
			continue
		}
		priced = append(priced, o.Quote)
	}
	if len(priced) == 0 {
		return nil, warnings
	}

	cheapest, dearest := priced[0], priced[len(priced)-1]
	sum := decimal.Zero
	for _, q := range priced {
		sum = sum.Add(q.Total.Amount())
	}
	average, _ := kernel.NewMoney(sum.Div(decimal.NewFromInt(int64(len(priced)))), cheapest.Currency)
	savings, _ := dearest.Total.Sub(cheapest.Total)

	return &ComparisonSummary{
		Cheapest:         cheapest.Carrier,
		MostExpensive:    dearest.Carrier,
		Average:          average,
		SavingsPotential: savings,
	}, warnings
}
