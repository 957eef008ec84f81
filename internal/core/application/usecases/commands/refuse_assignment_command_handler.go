package commands

import (
	"context"

	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"
)

// RefuseAssignmentCommandHandler refuses an assignment and releases the
// order back to ready so a manager can reassign it. Both writes run in one
// transaction; staff gets a broadcast afterwards.
type RefuseAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewRefuseAssignmentCommandHandler creates a handler for assignment refusal.
func NewRefuseAssignmentCommandHandler(
	uowFactory AssignmentUoWFactory,
	dispatcher ports.NotificationDispatcher,
) RefuseAssignmentCommandHandler {
	return RefuseAssignmentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle refuses the assignment and cascades the order back to ready.
func (h RefuseAssignmentCommandHandler) Handle(ctx context.Context, cmd RefuseAssignmentCommand) error {
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
		return errs.NewUnauthorizedError("refuse assignment", cmd.DeliveryPersonID().String())
	}

	prev := loaded.Status()
	if err = loaded.Refuse(cmd.Reason()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	linkedOrder, err := orderRepo.Get(ctx, loaded.OrderID())
	if err != nil {
		return err
	}

	prevOrder := linkedOrder.Status()
	if err = linkedOrder.Release(); err != nil {
		return err
	}

	if err = assignmentRepo.UpdateTransition(ctx, loaded, prev); err != nil {
		return err
	}
	if err = orderRepo.UpdateTransition(ctx, linkedOrder, prevOrder); err != nil {
		return err
	}

	deliveryPerson, err := uow.CourierRepository().Get(ctx, cmd.DeliveryPersonID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	title, message, data := assignmentRefusedStaffTexts(
		linkedOrder.Number(), deliveryPerson.Name(), cmd.Reason())
	h.dispatcher.BroadcastToStaff(ctx, notification.TypeAssignment, title, message, data)

	return nil
}
