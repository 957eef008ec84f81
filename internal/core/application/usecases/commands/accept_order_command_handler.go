package commands

import (
	"context"

	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/domain/model/order"
	"restoonline/internal/core/ports"
)

// AcceptOrderCommandHandler moves a pending order to accepted on behalf of
// a manager and notifies the customer device.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	staff      ports.StaffDirectory
	dispatcher ports.NotificationDispatcher
}

// NewAcceptOrderCommandHandler creates a handler for manual order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory,
	staff ports.StaffDirectory,
	dispatcher ports.NotificationDispatcher,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		staff:      staff,
		dispatcher: dispatcher,
	}
}

// Handle performs the pending to accepted transition guarded on the status
// the order held when loaded.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := ensureManager(ctx, h.staff, "accept order", cmd.ManagerID()); err != nil {
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
	managerID := cmd.ManagerID()
	if err = loaded.Accept(&managerID); err != nil {
		return err
	}

	if err = orderRepo.UpdateTransition(ctx, loaded, prev); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, loaded)
	return nil
}

func (h AcceptOrderCommandHandler) notify(ctx context.Context, accepted *order.Order) {
	title, message, data := orderAcceptedTexts(accepted.Number())
	h.dispatcher.Send(ctx, notification.DeviceRecipient(accepted.DeviceID().String()),
		notification.TypeOrderStatus, title, message, data)
}
