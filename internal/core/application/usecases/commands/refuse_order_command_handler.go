package commands

import (
	"context"

	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/ports"
)

// RefuseOrderCommandHandler moves a pending order to refused and notifies
// the customer device with the reason.
type RefuseOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	staff      ports.StaffDirectory
	dispatcher ports.NotificationDispatcher
}

// NewRefuseOrderCommandHandler creates a handler for order refusal.
func NewRefuseOrderCommandHandler(
	uowFactory OrderUoWFactory,
	staff ports.StaffDirectory,
	dispatcher ports.NotificationDispatcher,
) RefuseOrderCommandHandler {
	return RefuseOrderCommandHandler{
		uowFactory: uowFactory,
		staff:      staff,
		dispatcher: dispatcher,
	}
}

// Handle performs the pending to refused transition.
func (h RefuseOrderCommandHandler) Handle(ctx context.Context, cmd RefuseOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := ensureManager(ctx, h.staff, "refuse order", cmd.ManagerID()); err != nil {
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
	if err = loaded.Refuse(cmd.ManagerID(), cmd.Reason()); err != nil {
		return err
	}

	if err = orderRepo.UpdateTransition(ctx, loaded, prev); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	title, message, data := orderRefusedTexts(loaded.Number(), cmd.Reason())
	h.dispatcher.Send(ctx, notification.DeviceRecipient(loaded.DeviceID().String()),
		notification.TypeOrderStatus, title, message, data)

	return nil
}
