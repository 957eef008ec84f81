package commands_test

import (
	"errors"
	"testing"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/order"
	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentCommandHandler(t *testing.T) {
	t.Run("stores token and moves to processing", func(t *testing.T) {
		store := newFakeStore()
		created := seedOrder(t, store, kernel.NewUUID())
		provider := &fakeProvider{token: "tok-123", redirectURL: "https://pay.example/tok-123"}

		cmd, err := commands.NewCreatePaymentCommand(kernel.NewUUID(), created.ID())
		require.NoError(t, err)

		h := commands.NewCreatePaymentCommandHandler(
			paymentUoWFactory{store}, provider, "https://api.example/webhooks/paydunya")
		require.NoError(t, h.Handle(t.Context(), cmd))

		pay, err := fakePaymentRepo{store}.Get(t.Context(), cmd.PaymentID())
		require.NoError(t, err)
		assert.Equal(t, payment.Processing, pay.Status())
		assert.Equal(t, "tok-123", pay.Token())
		assert.Equal(t, created.Total(), pay.Amount())
	})

	t.Run("provider failure leaves the payment failed", func(t *testing.T) {
		store := newFakeStore()
		created := seedOrder(t, store, kernel.NewUUID())
		provider := &fakeProvider{createErr: errors.New("invoice rejected")}

		cmd, err := commands.NewCreatePaymentCommand(kernel.NewUUID(), created.ID())
		require.NoError(t, err)

		h := commands.NewCreatePaymentCommandHandler(paymentUoWFactory{store}, provider, "")
		require.Error(t, h.Handle(t.Context(), cmd))

		pay, err := fakePaymentRepo{store}.Get(t.Context(), cmd.PaymentID())
		require.NoError(t, err)
		assert.Equal(t, payment.Failed, pay.Status())
		assert.Equal(t, "invoice rejected", pay.FailureReason())
	})

	t.Run("second payment for the order is a duplicate", func(t *testing.T) {
		store := newFakeStore()
		created := seedOrder(t, store, kernel.NewUUID())
		provider := &fakeProvider{createErr: errors.New("invoice rejected")}

		h := commands.NewCreatePaymentCommandHandler(paymentUoWFactory{store}, provider, "")

		first, err := commands.NewCreatePaymentCommand(kernel.NewUUID(), created.ID())
		require.NoError(t, err)
		require.Error(t, h.Handle(t.Context(), first))

		// The failed payment keeps the slot.
		second, err := commands.NewCreatePaymentCommand(kernel.NewUUID(), created.ID())
		require.NoError(t, err)
		require.ErrorIs(t, h.Handle(t.Context(), second), errs.ErrDuplicate)
		assert.Equal(t, 1, provider.createCalls)
	})
}

// paymentFixture drives an order plus processing payment through the real
// handlers, ready for webhook ingestion.
type paymentFixture struct {
	store      *fakeStore
	dispatcher *fakeDispatcher
	orderID    kernel.UUID
	paymentID  kernel.UUID
	token      string
}

func setupProcessingPayment(t *testing.T) paymentFixture {
	t.Helper()

	store := newFakeStore()
	created := seedOrder(t, store, kernel.NewUUID())
	provider := &fakeProvider{token: "tok-123", redirectURL: "https://pay.example/tok-123"}

	cmd, err := commands.NewCreatePaymentCommand(kernel.NewUUID(), created.ID())
	require.NoError(t, err)
	h := commands.NewCreatePaymentCommandHandler(paymentUoWFactory{store}, provider, "")
	require.NoError(t, h.Handle(t.Context(), cmd))

	return paymentFixture{
		store:      store,
		dispatcher: &fakeDispatcher{},
		orderID:    created.ID(),
		paymentID:  cmd.PaymentID(),
		token:      "tok-123",
	}
}

func (f paymentFixture) ingest(t *testing.T, token, status, transactionID string) error {
	t.Helper()
	cmd, err := commands.NewIngestPaymentWebhookCommand(kernel.NewUUID(), token, status, transactionID)
	require.NoError(t, err)

	h := commands.NewIngestPaymentWebhookCommandHandler(webhookUoWFactory{f.store}, f.dispatcher)
	return h.Handle(t.Context(), cmd)
}

func TestIngestPaymentWebhookCommandHandler(t *testing.T) {
	t.Run("completed cascades the order to accepted", func(t *testing.T) {
		f := setupProcessingPayment(t)

		require.NoError(t, f.ingest(t, f.token, "completed", "txn-42"))

		pay, err := fakePaymentRepo{f.store}.Get(t.Context(), f.paymentID)
		require.NoError(t, err)
		assert.Equal(t, payment.Completed, pay.Status())
		assert.Equal(t, "txn-42", pay.TransactionID())
		require.NotNil(t, pay.CompletedAt())

		o, err := fakeOrderRepo{f.store}.Get(t.Context(), f.orderID)
		require.NoError(t, err)
		assert.Equal(t, order.Accepted, o.Status())
		assert.Nil(t, o.Manager())

		assert.Equal(t, 1, f.dispatcher.countTitled("Paiement reçu"))
		assert.Equal(t, 1, f.dispatcher.countTitled("Commande acceptée"))
	})

	t.Run("re-ingesting the same payload is a no-op", func(t *testing.T) {
		f := setupProcessingPayment(t)

		require.NoError(t, f.ingest(t, f.token, "completed", "txn-42"))
		pay, err := fakePaymentRepo{f.store}.Get(t.Context(), f.paymentID)
		require.NoError(t, err)
		firstCompletedAt := *pay.CompletedAt()

		require.NoError(t, f.ingest(t, f.token, "completed", "txn-other"))

		pay, err = fakePaymentRepo{f.store}.Get(t.Context(), f.paymentID)
		require.NoError(t, err)
		assert.Equal(t, "txn-42", pay.TransactionID())
		assert.Equal(t, firstCompletedAt, *pay.CompletedAt())

		o, err := fakeOrderRepo{f.store}.Get(t.Context(), f.orderID)
		require.NoError(t, err)
		assert.Equal(t, order.Accepted, o.Status())

		// Single cascade, single notification.
		assert.Equal(t, 1, f.dispatcher.countTitled("Paiement reçu"))
		assert.Equal(t, 1, f.dispatcher.countTitled("Commande acceptée"))

		// Both callbacks are on record, both processed.
		assert.Len(t, f.store.webhooks, 2)
		for _, w := range f.store.webhooks {
			assert.True(t, w.Processed())
		}
	})

	t.Run("unknown token records the failure and returns not found", func(t *testing.T) {
		f := setupProcessingPayment(t)

		err := f.ingest(t, "tok-unknown", "completed", "txn-42")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		require.Len(t, f.store.webhooks, 1)
		for _, w := range f.store.webhooks {
			assert.False(t, w.Processed())
			assert.NotEmpty(t, w.ProcessingError())
			assert.Nil(t, w.PaymentID())
		}
	})

	t.Run("unparseable status recorded as failure", func(t *testing.T) {
		f := setupProcessingPayment(t)

		err := f.ingest(t, f.token, "paid", "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		for _, w := range f.store.webhooks {
			assert.False(t, w.Processed())
			assert.NotEmpty(t, w.ProcessingError())
		}
	})

	t.Run("cascade skipped when the order moved on", func(t *testing.T) {
		f := setupProcessingPayment(t)

		// A manager accepted manually before the payment confirmation.
		managerID := kernel.NewUUID()
		staff := newFakeStaff(managerID)
		acceptCmd, err := commands.NewAcceptOrderCommand(f.orderID, managerID)
		require.NoError(t, err)
		acceptH := commands.NewAcceptOrderCommandHandler(orderUoWFactory{f.store}, staff, &fakeDispatcher{})
		require.NoError(t, acceptH.Handle(t.Context(), acceptCmd))

		require.NoError(t, f.ingest(t, f.token, "completed", "txn-42"))

		o, err := fakeOrderRepo{f.store}.Get(t.Context(), f.orderID)
		require.NoError(t, err)
		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.Manager())

		// Payment receipt is sent, but no second acceptance message.
		assert.Equal(t, 1, f.dispatcher.countTitled("Paiement reçu"))
		assert.Equal(t, 0, f.dispatcher.countTitled("Commande acceptée"))
	})
}

func TestConfirmPaymentCommandHandler(t *testing.T) {
	t.Run("applies a completed poll result", func(t *testing.T) {
		f := setupProcessingPayment(t)
		provider := &fakeProvider{confirmStatus: payment.Completed, confirmTxnID: "txn-42"}

		cmd, err := commands.NewConfirmPaymentCommand(f.paymentID)
		require.NoError(t, err)

		h := commands.NewConfirmPaymentCommandHandler(paymentUoWFactory{f.store}, provider, f.dispatcher)
		require.NoError(t, h.Handle(t.Context(), cmd))

		pay, err := fakePaymentRepo{f.store}.Get(t.Context(), f.paymentID)
		require.NoError(t, err)
		assert.Equal(t, payment.Completed, pay.Status())

		o, err := fakeOrderRepo{f.store}.Get(t.Context(), f.orderID)
		require.NoError(t, err)
		assert.Equal(t, order.Accepted, o.Status())
	})

	t.Run("poll after webhook does not double-apply", func(t *testing.T) {
		f := setupProcessingPayment(t)
		require.NoError(t, f.ingest(t, f.token, "completed", "txn-42"))

		provider := &fakeProvider{confirmStatus: payment.Completed, confirmTxnID: "txn-late"}
		cmd, err := commands.NewConfirmPaymentCommand(f.paymentID)
		require.NoError(t, err)

		h := commands.NewConfirmPaymentCommandHandler(paymentUoWFactory{f.store}, provider, f.dispatcher)
		require.NoError(t, h.Handle(t.Context(), cmd))

		pay, err := fakePaymentRepo{f.store}.Get(t.Context(), f.paymentID)
		require.NoError(t, err)
		assert.Equal(t, "txn-42", pay.TransactionID())
		assert.Equal(t, 1, f.dispatcher.countTitled("Paiement reçu"))
	})

	t.Run("still-processing answer applies nothing", func(t *testing.T) {
		f := setupProcessingPayment(t)
		provider := &fakeProvider{confirmStatus: payment.Processing}

		cmd, err := commands.NewConfirmPaymentCommand(f.paymentID)
		require.NoError(t, err)

		h := commands.NewConfirmPaymentCommandHandler(paymentUoWFactory{f.store}, provider, f.dispatcher)
		require.NoError(t, h.Handle(t.Context(), cmd))

		pay, err := fakePaymentRepo{f.store}.Get(t.Context(), f.paymentID)
		require.NoError(t, err)
		assert.Equal(t, payment.Processing, pay.Status())
	})
}
