// Package commands contains the pricing operations.
//
// Every operation follows the same pattern: a command is built and validated
// by its constructor, then handed to a handler that reads one rule snapshot
// and prices against it. Handlers share a ShipmentPricer, which owns the
// single-shipment pricing path; comparison and bulk handlers fan it out over
// carriers or batch items with a bounded worker pool. RefreshSnapshotCommand
// is the one command that changes state: it publishes a freshly loaded
// snapshot and drops cached quotes when the version changed.
//
// Example:
//
//	pricer, err := commands.NewShipmentPricer(commands.ShipmentPricerDeps{
//	    Snapshots:  holder,
//	    Conditions: conditions,
//	})
//	if err != nil {
//	    return err
//	}
//	cmd, err := commands.NewCalculatePriceCommand(req)
//	if err != nil {
//	    return err
//	}
//	quote, err := commands.NewCalculatePriceCommandHandler(pricer).Handle(ctx, cmd)
package commands
