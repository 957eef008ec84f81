package commands

import (
	"context"
	"errors"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/domain/model/order"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"
)

// orderNumberAttempts bounds the regeneration loop on number collisions.
const orderNumberAttempts = 5

// CreateOrderCommandHandler registers a new pending order with a generated
// order number and notifies the device plus the staff.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle creates the order. Number collisions are resolved by regenerating
// within a bounded number of attempts; each attempt runs in its own
// transaction so a collision leaves no partial state behind.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var created *order.Order
	var lastErr error
	for range orderNumberAttempts {
		newOrder, err := order.NewOrder(
			cmd.OrderID(), kernel.NewOrderNumber(), cmd.DeviceID(),
			cmd.Subtotal(), cmd.DeliveryFee(), cmd.Notes())
		if err != nil {
			return err
		}

		lastErr = h.add(ctx, newOrder)
		if lastErr == nil {
			created = newOrder
			break
		}
		if !errors.Is(lastErr, errs.ErrDuplicate) {
			return lastErr
		}
	}
	if created == nil {
		return lastErr
	}

	title, message, data := orderCreatedTexts(created.Number(), created.Total())
	h.dispatcher.Send(ctx, notification.DeviceRecipient(created.DeviceID().String()),
		notification.TypeOrderStatus, title, message, data)

	title, message, data = newOrderStaffTexts(created.Number(), created.Total())
	h.dispatcher.BroadcastToStaff(ctx, notification.TypeNewOrder, title, message, data)

	return nil
}

func (h CreateOrderCommandHandler) add(ctx context.Context, newOrder *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
