package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command execution, keeping
// concurrent commands isolated.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the business transaction boundary. Client code manages the
// transaction lifecycle explicitly; repositories obtained from it are bound
// to the transaction started by Begin.
type UnitOfWork interface {
	// Begin starts a database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// commit; it is a no-op once the transaction finished.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the transaction.
	OrderRepository() OrderRepository

	// AssignmentRepository returns an AssignmentRepository bound to the transaction.
	AssignmentRepository() AssignmentRepository

	// PaymentRepository returns a PaymentRepository bound to the transaction.
	PaymentRepository() PaymentRepository

	// WebhookRepository returns a WebhookRepository bound to the transaction.
	WebhookRepository() WebhookRepository

	// CourierRepository returns a CourierRepository bound to the transaction.
	CourierRepository() CourierRepository

	// RatingRepository returns a RatingRepository bound to the transaction.
	RatingRepository() RatingRepository
}
