package commands

import (
	"context"

	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order from any non-terminal,
// non-delivered status, then notifies the device and broadcasts to staff.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	staff      ports.StaffDirectory
	dispatcher ports.NotificationDispatcher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	staff ports.StaffDirectory,
	dispatcher ports.NotificationDispatcher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		staff:      staff,
		dispatcher: dispatcher,
	}
}

// Handle performs the transition to cancelled.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := ensureManager(ctx, h.staff, "cancel order", cmd.ManagerID()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	loaded, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	prev := loaded.Status()
	if err = loaded.Cancel(cmd.Reason()); err != nil {
		return err
	}

	if err = orderRepo.UpdateTransition(ctx, loaded, prev); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	title, message, data := orderCancelledTexts(loaded.Number(), cmd.Reason())
	h.dispatcher.Send(ctx, notification.DeviceRecipient(loaded.DeviceID().String()),
		notification.TypeOrderStatus, title, message, data)

	title, message, data = orderCancelledStaffTexts(loaded.Number(), cmd.Reason())
	h.dispatcher.BroadcastToStaff(ctx, notification.TypeOrderStatus, title, message, data)

	return nil
}
