package commands

import (
	"context"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"
)

// ConfirmPaymentCommandHandler polls the provider for an invoice status and
// applies the answer through the same idempotent path as the webhook, so a
// webhook landing between the poll and the application cannot double-apply.
type ConfirmPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	provider   ports.PaymentProvider
	dispatcher ports.NotificationDispatcher
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmation.
func NewConfirmPaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	provider ports.PaymentProvider,
	dispatcher ports.NotificationDispatcher,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
		provider:   provider,
		dispatcher: dispatcher,
	}
}

// Handle asks the provider and applies the reported status.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	token, err := h.loadToken(ctx, cmd.PaymentID())
	if err != nil {
		return err
	}

	target, transactionID, err := h.provider.ConfirmInvoice(ctx, token)
	if err != nil {
		return err
	}
	if target == payment.Pending || target == payment.Processing {
		// Still awaiting the customer; nothing to apply.
		return nil
	}

	pay, result, err := h.apply(ctx, cmd, target, transactionID)
	if err != nil {
		return err
	}

	notifyProviderStatusOutcome(ctx, h.dispatcher, pay, result)
	return nil
}

func (h ConfirmPaymentCommandHandler) loadToken(ctx context.Context, paymentID kernel.UUID) (string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pay, err := uow.PaymentRepository().Get(ctx, paymentID)
	if err != nil {
		return "", err
	}
	if pay.Token() == "" {
		return "", errs.NewValueIsRequiredError("provider token")
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}
	return pay.Token(), nil
}

func (h ConfirmPaymentCommandHandler) apply(
	ctx context.Context,
	cmd ConfirmPaymentCommand,
	target payment.Status,
	transactionID string,
) (*payment.Payment, providerStatusResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, providerStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	pay, err := paymentRepo.Get(ctx, cmd.PaymentID())
	if err != nil {
		return nil, providerStatusResult{}, err
	}

	result, err := applyProviderStatus(
		ctx, paymentRepo, uow.OrderRepository(), pay, target, transactionID)
	if err != nil {
		return nil, providerStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, providerStatusResult{}, err
	}
	return pay, result, nil
}
