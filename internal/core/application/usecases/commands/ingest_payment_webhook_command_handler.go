package commands

import (
	"context"

	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/core/ports"
)

// IngestPaymentWebhookCommandHandler processes provider callbacks.
//
// The raw record is committed before anything else so every callback leaves
// an audit trail. Processing failures are written back onto the record and
// the error is returned to the caller, which answers the provider with a
// non-success status so it retries. A token that matches no payment is such
// a failure: the payment may simply not be visible yet.
type IngestPaymentWebhookCommandHandler struct {
	uowFactory WebhookUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewIngestPaymentWebhookCommandHandler creates a handler for webhook ingestion.
func NewIngestPaymentWebhookCommandHandler(
	uowFactory WebhookUoWFactory,
	dispatcher ports.NotificationDispatcher,
) IngestPaymentWebhookCommandHandler {
	return IngestPaymentWebhookCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle records the callback and applies it to the matched payment.
func (h IngestPaymentWebhookCommandHandler) Handle(ctx context.Context, cmd IngestPaymentWebhookCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	record, err := payment.NewWebhookRecord(
		cmd.RecordID(), cmd.Token(), cmd.ProviderStatus(), cmd.TransactionID())
	if err != nil {
		return err
	}
	if err = h.persistRecord(ctx, record); err != nil {
		return err
	}

	target, err := payment.StatusFromProviderString(cmd.ProviderStatus())
	if err != nil {
		return h.fail(ctx, record, err)
	}

	pay, result, err := h.apply(ctx, record, target, cmd)
	if err != nil {
		return h.fail(ctx, record, err)
	}

	notifyProviderStatusOutcome(ctx, h.dispatcher, pay, result)
	return nil
}

// apply matches the payment by token and applies the status inside one
// transaction, marking the record processed on success.
func (h IngestPaymentWebhookCommandHandler) apply(
	ctx context.Context,
	record *payment.WebhookRecord,
	target payment.Status,
	cmd IngestPaymentWebhookCommand,
) (*payment.Payment, providerStatusResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, providerStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	paymentRepo := uow.PaymentRepository()
	pay, err := paymentRepo.GetByToken(ctx, cmd.Token())
	if err != nil {
		return nil, providerStatusResult{}, err
	}
	if err = record.AttachPayment(pay.ID()); err != nil {
		return nil, providerStatusResult{}, err
	}

	result, err := applyProviderStatus(
		ctx, paymentRepo, uow.OrderRepository(), pay, target, cmd.TransactionID())
	if err != nil {
		return nil, providerStatusResult{}, err
	}

	record.MarkProcessed()
	if err = uow.WebhookRepository().Update(ctx, record); err != nil {
		return nil, providerStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, providerStatusResult{}, err
	}
	return pay, result, nil
}

func (h IngestPaymentWebhookCommandHandler) persistRecord(ctx context.Context, record *payment.WebhookRecord) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.WebhookRepository().Add(ctx, record); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

// fail stores the diagnostic on the record and hands the original error
// back so the provider retries.
func (h IngestPaymentWebhookCommandHandler) fail(ctx context.Context, record *payment.WebhookRecord, cause error) error {
	record.RecordFailure(cause.Error())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return cause
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.WebhookRepository().Update(ctx, record); err != nil {
		return cause
	}
	_ = uow.Commit(ctx)

	return cause
}
