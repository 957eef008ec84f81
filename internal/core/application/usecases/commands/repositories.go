// Package commands contains the write-side operations of the orchestrator.
// Every operation is a command plus handler pair: the command validates its
// input in the constructor, the handler runs the domain transition inside a
// unit of work and persists it with a status-guarded update.
package commands

import (
	"context"

	"restoonline/internal/core/ports"
)

// Unit of Work interfaces narrow ports.UnitOfWork to what each handler
// actually touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AssignmentRepoFactory provides the assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// PaymentRepoFactory provides the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// WebhookRepoFactory provides the webhook repository within a transaction.
	WebhookRepoFactory interface {
		WebhookRepository() ports.WebhookRepository
	}

	// CourierRepoFactory provides the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// RatingRepoFactory provides the rating repository within a transaction.
	RatingRepoFactory interface {
		RatingRepository() ports.RatingRepository
	}

	// OrderUoW serves commands that only touch orders.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates OrderUoW instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AssignmentUoW serves assignment commands, which cascade into orders
	// and bump courier counters.
	AssignmentUoW interface {
		TxManager
		AssignmentRepoFactory
		OrderRepoFactory
		CourierRepoFactory
	}

	// AssignmentUoWFactory creates AssignmentUoW instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// PaymentUoW serves payment commands, which read orders and cascade
	// acceptance into them.
	PaymentUoW interface {
		TxManager
		PaymentRepoFactory
		OrderRepoFactory
	}

	// PaymentUoWFactory creates PaymentUoW instances.
	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// WebhookUoW serves webhook ingestion, which records callbacks and
	// applies them to payments and orders.
	WebhookUoW interface {
		TxManager
		WebhookRepoFactory
		PaymentRepoFactory
		OrderRepoFactory
	}

	// WebhookUoWFactory creates WebhookUoW instances.
	WebhookUoWFactory interface {
		Create() WebhookUoW
	}

	// RatingUoW serves rating submission, which reads orders, writes
	// ratings and updates aggregates.
	RatingUoW interface {
		TxManager
		RatingRepoFactory
		OrderRepoFactory
		CourierRepoFactory
	}

	// RatingUoWFactory creates RatingUoW instances.
	RatingUoWFactory interface {
		Create() RatingUoW
	}
)
