package ports

import "context"

// SnapshotProvider hands out the current rule snapshot. Each calculation
// takes one snapshot and reads everything from it, so a reload that happens
// mid-calculation is never observed half-way.
type SnapshotProvider interface {
	Current() Snapshot
}

// SnapshotSource loads a fresh snapshot from wherever the pricing data lives.
type SnapshotSource interface {
	Load(ctx context.Context) (Snapshot, error)
}

// SnapshotPublisher makes a snapshot current for new calculations.
type SnapshotPublisher interface {
	SnapshotProvider

	// Replace publishes next and reports whether its version differs from
	// the one it replaced.
	Replace(next Snapshot) bool
}

// Snapshot is an immutable, consistent view of the pricing data.
//
// Example:
//
//	snapshot := provider.Current()
//	carrier, err := snapshot.Carriers().Get(ctx, "dpd")
//	if err != nil {
//	    return err
//	}
//	rules, err := snapshot.WeightRules().ListForTariff(ctx, carrier.Code(), "domestic", kernel.ServiceStandard)
type Snapshot interface {
	// Version identifies the loaded data, e.g. a file hash or load timestamp.
	Version() string

	Zones() ZoneCatalog
	WeightRules() WeightRuleRepository
	Carriers() CarrierRepository
	DiscountRules() DiscountRuleRepository
	AdditionalServices() AdditionalServiceCatalog
	Customers() CustomerRepository
}
