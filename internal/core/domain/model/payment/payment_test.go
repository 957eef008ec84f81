package payment_test

import (
	"testing"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayment(t *testing.T) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), 5500)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		p := newPayment(t)

		assert.Equal(t, payment.Pending, p.Status())
		assert.Equal(t, int64(5500), p.Amount())
		assert.Empty(t, p.Token())
		assert.Nil(t, p.CompletedAt())
		assert.NoError(t, p.Validate())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), -100)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestPaymentMarkProcessing(t *testing.T) {
	t.Run("stores token and invoice url", func(t *testing.T) {
		p := newPayment(t)

		require.NoError(t, p.MarkProcessing("tok-123", "https://pay.example/tok-123"))
		assert.Equal(t, payment.Processing, p.Status())
		assert.Equal(t, "tok-123", p.Token())
		assert.Equal(t, "https://pay.example/tok-123", p.InvoiceURL())
	})

	t.Run("requires a token", func(t *testing.T) {
		p := newPayment(t)

		err := p.MarkProcessing("", "https://pay.example/x")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, payment.Pending, p.Status())
	})

	t.Run("fails when not pending", func(t *testing.T) {
		p := newPayment(t)
		require.NoError(t, p.MarkProcessing("tok-123", ""))

		err := p.MarkProcessing("tok-456", "")
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, "tok-123", p.Token())
	})
}

func TestPaymentMarkFailed(t *testing.T) {
	p := newPayment(t)

	require.NoError(t, p.MarkFailed("invoice creation rejected"))
	assert.Equal(t, payment.Failed, p.Status())
	assert.Equal(t, "invoice creation rejected", p.FailureReason())

	require.ErrorIs(t, p.MarkFailed("again"), errs.ErrInvalidTransition)
}

func TestPaymentApplyProviderStatus(t *testing.T) {
	processing := func(t *testing.T) *payment.Payment {
		t.Helper()
		p := newPayment(t)
		require.NoError(t, p.MarkProcessing("tok-123", ""))
		return p
	}

	t.Run("completed sets transaction id and timestamp", func(t *testing.T) {
		p := processing(t)

		applied, err := p.ApplyProviderStatus(payment.Completed, "txn-42")
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, payment.Completed, p.Status())
		assert.Equal(t, "txn-42", p.TransactionID())
		require.NotNil(t, p.CompletedAt())
	})

	t.Run("reapplying completed is a no-op", func(t *testing.T) {
		p := processing(t)

		applied, err := p.ApplyProviderStatus(payment.Completed, "txn-42")
		require.NoError(t, err)
		require.True(t, applied)
		firstCompletedAt := *p.CompletedAt()

		applied, err = p.ApplyProviderStatus(payment.Completed, "txn-other")
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, "txn-42", p.TransactionID())
		assert.Equal(t, firstCompletedAt, *p.CompletedAt())
	})

	t.Run("refunded only from completed", func(t *testing.T) {
		p := processing(t)

		_, err := p.ApplyProviderStatus(payment.Refunded, "")
		require.ErrorIs(t, err, errs.ErrInvalidTransition)

		_, err = p.ApplyProviderStatus(payment.Completed, "txn-42")
		require.NoError(t, err)

		applied, err := p.ApplyProviderStatus(payment.Refunded, "")
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, payment.Refunded, p.Status())
	})

	t.Run("rejects non-provider targets", func(t *testing.T) {
		p := processing(t)

		_, err := p.ApplyProviderStatus(payment.Pending, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = p.ApplyProviderStatus(payment.Processing, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("failed and cancelled from processing", func(t *testing.T) {
		for _, target := range []payment.Status{payment.Failed, payment.Cancelled} {
			p := processing(t)
			applied, err := p.ApplyProviderStatus(target, "")
			require.NoError(t, err)
			assert.True(t, applied)
			assert.Equal(t, target, p.Status())
			assert.True(t, p.Status().IsTerminal())
		}
	})
}

func TestStatusFromProviderString(t *testing.T) {
	for s, want := range map[string]payment.Status{
		"completed": payment.Completed,
		"failed":    payment.Failed,
		"cancelled": payment.Cancelled,
		"refunded":  payment.Refunded,
	} {
		got, err := payment.StatusFromProviderString(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := payment.StatusFromProviderString("paid")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestWebhookRecord(t *testing.T) {
	t.Run("capture and process", func(t *testing.T) {
		w, err := payment.NewWebhookRecord(kernel.NewUUID(), "tok-123", "completed", "txn-42")
		require.NoError(t, err)
		assert.False(t, w.Processed())
		assert.Nil(t, w.PaymentID())
		assert.False(t, w.ReceivedAt().IsZero())

		paymentID := kernel.NewUUID()
		require.NoError(t, w.AttachPayment(paymentID))
		require.NotNil(t, w.PaymentID())
		assert.True(t, w.PaymentID().IsEqual(paymentID))

		w.MarkProcessed()
		assert.True(t, w.Processed())
		require.NotNil(t, w.ProcessedAt())
		assert.Empty(t, w.ProcessingError())
	})

	t.Run("failure keeps record unprocessed", func(t *testing.T) {
		w, err := payment.NewWebhookRecord(kernel.NewUUID(), "tok-missing", "completed", "")
		require.NoError(t, err)

		w.RecordFailure("no payment matches token")
		assert.False(t, w.Processed())
		assert.Equal(t, "no payment matches token", w.ProcessingError())
	})
}
