package commands

import (
	"context"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/core/ports"
)

// CreatePaymentCommandHandler opens the provider checkout for an order.
//
// The pending payment row is committed before the provider call so the
// one-payment-per-order rule is settled atomically; the provider outcome is
// then applied in a second transaction guarded on the pending status. A
// failed invoice creation leaves the payment failed with the diagnostic
// stored, and the slot stays occupied: there is no automatic retry.
type CreatePaymentCommandHandler struct {
	uowFactory  PaymentUoWFactory
	provider    ports.PaymentProvider
	callbackURL string
}

// NewCreatePaymentCommandHandler creates a handler for payment creation.
func NewCreatePaymentCommandHandler(
	uowFactory PaymentUoWFactory,
	provider ports.PaymentProvider,
	callbackURL string,
) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{
		uowFactory:  uowFactory,
		provider:    provider,
		callbackURL: callbackURL,
	}
}

// Handle creates the payment and requests the provider invoice.
func (h CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pay, reference, err := h.createPending(ctx, cmd)
	if err != nil {
		return err
	}

	token, redirectURL, providerErr := h.provider.CreateInvoice(
		ctx, pay.Amount(), reference, h.callbackURL)

	return h.applyInvoiceOutcome(ctx, cmd.PaymentID(), token, redirectURL, providerErr)
}

func (h CreatePaymentCommandHandler) createPending(
	ctx context.Context,
	cmd CreatePaymentCommand,
) (*payment.Payment, string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loaded, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, "", err
	}

	pay, err := payment.NewPayment(cmd.PaymentID(), cmd.OrderID(), loaded.Total())
	if err != nil {
		return nil, "", err
	}

	if err = uow.PaymentRepository().Add(ctx, pay); err != nil {
		return nil, "", err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, "", err
	}

	return pay, loaded.Number().String(), nil
}

func (h CreatePaymentCommandHandler) applyInvoiceOutcome(
	ctx context.Context,
	paymentID kernel.UUID,
	token, redirectURL string,
	providerErr error,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	pay, err := paymentRepo.Get(ctx, paymentID)
	if err != nil {
		return err
	}

	prev := pay.Status()
	if providerErr != nil {
		if err = pay.MarkFailed(providerErr.Error()); err != nil {
			return err
		}
	} else if err = pay.MarkProcessing(token, redirectURL); err != nil {
		return err
	}

	if err = paymentRepo.UpdateTransition(ctx, pay, prev); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return providerErr
}
