package commands

import (
	"errors"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

var ErrRefreshSnapshotCommandIsNotConstructed = errors.New(
	"RefreshSnapshotCommand must be created via NewRefreshSnapshotCommand constructor",
)

// RefreshSnapshotCommand reloads the pricing data. Trigger names who asked for
// it, e.g. "schedule" or "startup", and only shows up in logs.
type RefreshSnapshotCommand struct { //nolint:recvcheck //using for validation
	trigger string

	guard guard.ConstructorGuard
}

func NewRefreshSnapshotCommand(trigger string) (RefreshSnapshotCommand, error) {
	if trigger == "" {
		return RefreshSnapshotCommand{}, errs.NewValidationError(errs.Violation{Field: "trigger", Message: "is required"})
	}
	return RefreshSnapshotCommand{
		trigger: trigger,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RefreshSnapshotCommand) Validate() error {
	return c.guard.Validate(ErrRefreshSnapshotCommandIsNotConstructed)
}

func (c RefreshSnapshotCommand) Trigger() string {
	return c.trigger
}
