package ports

import (
	"context"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payments.
type PaymentRepository interface {
	// Add persists a new payment. Storage enforces one payment per order;
	// a violation surfaces as a DuplicateError.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment by id.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByOrder retrieves the payment of an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)

	// GetByToken retrieves the payment matching a provider token.
	GetByToken(ctx context.Context, token string) (*payment.Payment, error)

	// GetAllProcessing retrieves payments awaiting provider confirmation.
	// Used by the polling job.
	GetAllProcessing(ctx context.Context) ([]*payment.Payment, error)

	// UpdateTransition persists the aggregate guarded on its previous
	// status. Returns a ConflictError when the stored status moved on.
	UpdateTransition(ctx context.Context, aggregate *payment.Payment, prev payment.Status) error
}

// WebhookRepository defines the persistence contract for raw provider
// callback records.
type WebhookRepository interface {
	// Add persists a webhook record before any processing happens.
	Add(ctx context.Context, record *payment.WebhookRecord) error

	// Update persists the processing outcome of a record.
	Update(ctx context.Context, record *payment.WebhookRecord) error
}
