package commands

import (
	"context"

	"restoonline/internal/pkg/errs"
)

// AcceptAssignmentCommandHandler moves an assignment from assigned to
// accepted. Only the assigned delivery person may do it.
type AcceptAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
}

// NewAcceptAssignmentCommandHandler creates a handler for assignment acceptance.
func NewAcceptAssignmentCommandHandler(uowFactory AssignmentUoWFactory) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{uowFactory: uowFactory}
}

// Handle performs the assigned to accepted transition.
func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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
		return errs.NewUnauthorizedError("accept assignment", cmd.DeliveryPersonID().String())
	}

	prev := loaded.Status()
	if err = loaded.Accept(); err != nil {
		return err
	}

	if err = assignmentRepo.UpdateTransition(ctx, loaded, prev); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
