package payment

import (
	"errors"
	"time"

	"restoonline/internal/core/domain/model/kernel"
)

// ErrWebhookRecordIsNotConstructed is returned when a WebhookRecord was not
// created through NewWebhookRecord or RestoreWebhookRecord.
var ErrWebhookRecordIsNotConstructed = errors.New(
	"WebhookRecord must be created via NewWebhookRecord or RestoreWebhookRecord")

// WebhookRecord is the immutable log entry for one raw inbound provider
// callback. The record is persisted before any processing so an audit trail
// exists even when matching or application fails; only the processing
// outcome fields change afterwards.
type WebhookRecord struct {
	id        kernel.UUID
	paymentID *kernel.UUID

	token         string
	status        string
	transactionID string

	processed       bool
	processingError string

	receivedAt  time.Time
	processedAt *time.Time

	guard kernel.ConstructorGuard
}

// NewWebhookRecord captures a raw provider callback as received. The status
// string is stored verbatim; parsing happens later so unparseable payloads
// are still logged.
func NewWebhookRecord(id kernel.UUID, token, status, transactionID string) (*WebhookRecord, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &WebhookRecord{
		id:            id,
		token:         token,
		status:        status,
		transactionID: transactionID,
		receivedAt:    time.Now().UTC(),
		guard:         kernel.NewConstructorGuard(),
	}, nil
}

// RestoreWebhookRecord reconstructs a record from persistence.
func RestoreWebhookRecord(
	id kernel.UUID,
	paymentID *kernel.UUID,
	token, status, transactionID string,
	processed bool,
	processingError string,
	receivedAt time.Time,
	processedAt *time.Time,
) (*WebhookRecord, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &WebhookRecord{
		id:              id,
		paymentID:       paymentID,
		token:           token,
		status:          status,
		transactionID:   transactionID,
		processed:       processed,
		processingError: processingError,
		receivedAt:      receivedAt,
		processedAt:     processedAt,
		guard:           kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the record was created via a constructor.
func (w *WebhookRecord) Validate() error {
	if w == nil {
		return ErrWebhookRecordIsNotConstructed
	}
	return w.guard.Validate(ErrWebhookRecordIsNotConstructed)
}

func (w *WebhookRecord) ID() kernel.UUID          { return w.id }
func (w *WebhookRecord) PaymentID() *kernel.UUID  { return w.paymentID }
func (w *WebhookRecord) Token() string            { return w.token }
func (w *WebhookRecord) ProviderStatus() string   { return w.status }
func (w *WebhookRecord) TransactionID() string    { return w.transactionID }
func (w *WebhookRecord) Processed() bool          { return w.processed }
func (w *WebhookRecord) ProcessingError() string  { return w.processingError }
func (w *WebhookRecord) ReceivedAt() time.Time    { return w.receivedAt }
func (w *WebhookRecord) ProcessedAt() *time.Time  { return w.processedAt }

// AttachPayment links the record to the payment matched by token.
func (w *WebhookRecord) AttachPayment(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}
	w.paymentID = &paymentID
	return nil
}

// MarkProcessed records a successful application of the callback.
func (w *WebhookRecord) MarkProcessed() {
	now := time.Now().UTC()
	w.processed = true
	w.processingError = ""
	w.processedAt = &now
}

// RecordFailure stores why processing failed. The record stays unprocessed
// so the provider's retry (or an operator) can pick it up again.
func (w *WebhookRecord) RecordFailure(reason string) {
	w.processingError = reason
}
