package commands

import (
	"context"

	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"
)

// PickupAssignmentCommandHandler records the pickup and cascades the order
// into delivery, then notifies the customer device.
type PickupAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewPickupAssignmentCommandHandler creates a handler for pickup reporting.
func NewPickupAssignmentCommandHandler(
	uowFactory AssignmentUoWFactory,
	dispatcher ports.NotificationDispatcher,
) PickupAssignmentCommandHandler {
	return PickupAssignmentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle moves the assignment to picked up and the order to in delivery.
func (h PickupAssignmentCommandHandler) Handle(ctx context.Context, cmd PickupAssignmentCommand) error {
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
		return errs.NewUnauthorizedError("pickup assignment", cmd.DeliveryPersonID().String())
	}

	prev := loaded.Status()
	if err = loaded.Pickup(); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	linkedOrder, err := orderRepo.Get(ctx, loaded.OrderID())
	if err != nil {
		return err
	}

	prevOrder := linkedOrder.Status()
	if err = linkedOrder.StartDelivery(); err != nil {
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

	title, message, data := orderInDeliveryTexts(linkedOrder.Number(), deliveryPerson.Name())
	h.dispatcher.Send(ctx, notification.DeviceRecipient(linkedOrder.DeviceID().String()),
		notification.TypeDeliveryStatus, title, message, data)

	return nil
}
