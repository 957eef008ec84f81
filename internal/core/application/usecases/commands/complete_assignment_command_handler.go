package commands

import (
	"context"

	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"
)

// CompleteAssignmentCommandHandler finishes a delivery: assignment to
// delivered, order to delivered, courier delivery counter incremented, all
// in one transaction. Device and staff are notified afterwards, the staff
// message carrying the delivery duration.
type CompleteAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewCompleteAssignmentCommandHandler creates a handler for delivery completion.
func NewCompleteAssignmentCommandHandler(
	uowFactory AssignmentUoWFactory,
	dispatcher ports.NotificationDispatcher,
) CompleteAssignmentCommandHandler {
	return CompleteAssignmentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle completes the assignment and cascades the order to delivered.
func (h CompleteAssignmentCommandHandler) Handle(ctx context.Context, cmd CompleteAssignmentCommand) error {
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
		return errs.NewUnauthorizedError("complete assignment", cmd.DeliveryPersonID().String())
	}

	prev := loaded.Status()
	if err = loaded.Complete(); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	linkedOrder, err := orderRepo.Get(ctx, loaded.OrderID())
	if err != nil {
		return err
	}

	prevOrder := linkedOrder.Status()
	if err = linkedOrder.Deliver(); err != nil {
		return err
	}

	courierRepo := uow.CourierRepository()
	deliveryPerson, err := courierRepo.Get(ctx, cmd.DeliveryPersonID())
	if err != nil {
		return err
	}
	deliveryPerson.IncrementDeliveries()

	if err = assignmentRepo.UpdateTransition(ctx, loaded, prev); err != nil {
		return err
	}
	if err = orderRepo.UpdateTransition(ctx, linkedOrder, prevOrder); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, deliveryPerson); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	title, message, data := orderDeliveredTexts(linkedOrder.Number())
	h.dispatcher.Send(ctx, notification.DeviceRecipient(linkedOrder.DeviceID().String()),
		notification.TypeDeliveryStatus, title, message, data)

	duration, hasDuration := loaded.DeliveryDuration()
	title, message, data = deliveryCompletedStaffTexts(
		linkedOrder.Number(), deliveryPerson.Name(), duration, hasDuration)
	h.dispatcher.BroadcastToStaff(ctx, notification.TypeDeliveryStatus, title, message, data)

	return nil
}
