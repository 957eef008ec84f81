package commands

import (
	"context"

	"restoonline/internal/core/domain/model/assignment"
	"restoonline/internal/pkg/errs"
)

// RecordLocationCommandHandler appends one location update to an
// assignment's trail. It shares no status guard with the transition path:
// the append only checks that the actor holds the assignment.
type RecordLocationCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewRecordLocationCommandHandler creates a handler for location ingestion.
func NewRecordLocationCommandHandler(uowFactory AssignmentUoWFactory) RecordLocationCommandHandler {
	return RecordLocationCommandHandler{uowFactory: uowFactory}
}

// Handle validates the coordinates and appends the update.
func (h RecordLocationCommandHandler) Handle(ctx context.Context, cmd RecordLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	update, err := assignment.NewLocationUpdate(
		cmd.LocationID(), cmd.AssignmentID(),
		cmd.Latitude(), cmd.Longitude(), cmd.Accuracy())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	assignmentRepo := uow.AssignmentRepository()
	loaded, err := assignmentRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return err
	}
	if !loaded.IsHeldBy(cmd.DeliveryPersonID()) {
		return errs.NewUnauthorizedError("record location", cmd.DeliveryPersonID().String())
	}

	if err = assignmentRepo.AddLocation(ctx, &update); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
