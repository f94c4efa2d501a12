// Package snapshot holds the immutable in-memory pricing data the core reads
// through its ports.
//
// A Snapshot is built from a Document, which the YAML file source and the
// PostgreSQL loader both produce. The Holder publishes the current snapshot
// and the refresh job swaps in new ones:
//
//	snap, err := snapshot.NewFileSource("configs/pricing.yaml").Load(ctx)
//	if err != nil {
//	    return err
//	}
//	holder := snapshot.NewHolder(snap)
//	pricer, err := commands.NewShipmentPricer(commands.ShipmentPricerDeps{Snapshots: holder})
package snapshot
