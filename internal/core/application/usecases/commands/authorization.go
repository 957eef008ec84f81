package commands

import (
	"context"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"
)

// ensureManager rejects actors the staff directory does not know as
// managers.
func ensureManager(ctx context.Context, staff ports.StaffDirectory, action string, managerID kernel.UUID) error {
	ok, err := staff.IsManager(ctx, managerID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewUnauthorizedError(action, managerID.String())
	}
	return nil
}
