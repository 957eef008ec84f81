package commands

import (
	"context"
	"errors"

	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/domain/model/order"
	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"
)

// providerStatusResult describes what a provider status application did.
type providerStatusResult struct {
	// applied is false when the payment already held the target status.
	applied bool
	// linkedOrder is loaded when a completed status was applied, for the
	// notifications owed afterwards.
	linkedOrder *order.Order
	// cascaded reports that the completed application moved the linked
	// order from pending to accepted.
	cascaded bool
}

// applyProviderStatus is the single path through which provider-reported
// statuses reach a payment, shared by webhook ingestion and polling
// confirmation. The caller owns the transaction.
//
// The application is idempotent: a status the payment already holds returns
// applied=false with no writes. The first completed application cascades the
// order from pending to accepted through the same guarded update as manual
// transitions; a Conflict there means the order moved on and the cascade is
// skipped, not failed.
func applyProviderStatus(
	ctx context.Context,
	paymentRepo ports.PaymentRepository,
	orderRepo ports.OrderRepository,
	pay *payment.Payment,
	target payment.Status,
	transactionID string,
) (providerStatusResult, error) {
	prev := pay.Status()
	applied, err := pay.ApplyProviderStatus(target, transactionID)
	if err != nil || !applied {
		return providerStatusResult{applied: applied}, err
	}

	if err = paymentRepo.UpdateTransition(ctx, pay, prev); err != nil {
		return providerStatusResult{}, err
	}

	if target != payment.Completed {
		return providerStatusResult{applied: true}, nil
	}

	linkedOrder, err := orderRepo.Get(ctx, pay.OrderID())
	if err != nil {
		return providerStatusResult{}, err
	}
	if linkedOrder.Status() != order.Pending {
		return providerStatusResult{applied: true, linkedOrder: linkedOrder}, nil
	}

	prevOrder := linkedOrder.Status()
	if err = linkedOrder.Accept(nil); err != nil {
		return providerStatusResult{}, err
	}
	err = orderRepo.UpdateTransition(ctx, linkedOrder, prevOrder)
	if errors.Is(err, errs.ErrConflict) {
		return providerStatusResult{applied: true, linkedOrder: linkedOrder}, nil
	}
	if err != nil {
		return providerStatusResult{}, err
	}

	return providerStatusResult{applied: true, linkedOrder: linkedOrder, cascaded: true}, nil
}

// notifyProviderStatusOutcome sends the device notifications owed after a
// completed application: the payment receipt and, when the cascade accepted
// the order, the acceptance message.
func notifyProviderStatusOutcome(
	ctx context.Context,
	dispatcher ports.NotificationDispatcher,
	pay *payment.Payment,
	result providerStatusResult,
) {
	if !result.applied || result.linkedOrder == nil {
		return
	}

	device := notification.DeviceRecipient(result.linkedOrder.DeviceID().String())

	title, message, data := paymentReceivedTexts(result.linkedOrder.Number(), pay.Amount())
	dispatcher.Send(ctx, device, notification.TypePaymentStatus, title, message, data)

	if result.cascaded {
		title, message, data = orderAcceptedTexts(result.linkedOrder.Number())
		dispatcher.Send(ctx, device, notification.TypeOrderStatus, title, message, data)
	}
}
