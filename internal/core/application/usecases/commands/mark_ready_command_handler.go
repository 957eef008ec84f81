package commands

import (
	"context"

	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/ports"
)

// MarkReadyCommandHandler moves a preparing order to ready.
type MarkReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	staff      ports.StaffDirectory
	dispatcher ports.NotificationDispatcher
}

// NewMarkReadyCommandHandler creates a handler for marking orders ready.
func NewMarkReadyCommandHandler(
	uowFactory OrderUoWFactory,
	staff ports.StaffDirectory,
	dispatcher ports.NotificationDispatcher,
) MarkReadyCommandHandler {
	return MarkReadyCommandHandler{
		uowFactory: uowFactory,
		staff:      staff,
		dispatcher: dispatcher,
	}
}

// Handle performs the preparing to ready transition.
func (h MarkReadyCommandHandler) Handle(ctx context.Context, cmd MarkReadyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := ensureManager(ctx, h.staff, "mark ready", cmd.ManagerID()); err != nil {
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
	if err = loaded.MarkReady(); err != nil {
		return err
	}

	if err = orderRepo.UpdateTransition(ctx, loaded, prev); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	title, message, data := orderReadyTexts(loaded.Number())
	h.dispatcher.Send(ctx, notification.DeviceRecipient(loaded.DeviceID().String()),
		notification.TypeOrderStatus, title, message, data)

	return nil
}
