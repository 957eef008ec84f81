package commands

import (
	"context"

	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/ports"
)

// StartPreparingCommandHandler moves an accepted order to preparing.
type StartPreparingCommandHandler struct {
	uowFactory OrderUoWFactory
	staff      ports.StaffDirectory
	dispatcher ports.NotificationDispatcher
}

// NewStartPreparingCommandHandler creates a handler for starting preparation.
func NewStartPreparingCommandHandler(
	uowFactory OrderUoWFactory,
	staff ports.StaffDirectory,
	dispatcher ports.NotificationDispatcher,
) StartPreparingCommandHandler {
	return StartPreparingCommandHandler{
		uowFactory: uowFactory,
		staff:      staff,
		dispatcher: dispatcher,
	}
}

// Handle performs the accepted to preparing transition.
func (h StartPreparingCommandHandler) Handle(ctx context.Context, cmd StartPreparingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := ensureManager(ctx, h.staff, "start preparing", cmd.ManagerID()); err != nil {
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
	if err = loaded.StartPreparing(); err != nil {
		return err
	}

	if err = orderRepo.UpdateTransition(ctx, loaded, prev); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	title, message, data := orderPreparingTexts(loaded.Number())
	h.dispatcher.Send(ctx, notification.DeviceRecipient(loaded.DeviceID().String()),
		notification.TypeOrderStatus, title, message, data)

	return nil
}
