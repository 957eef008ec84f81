package ports

import (
	"context"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns an ObjectNotFoundError when
	// no order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its public number.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// UpdateTransition persists the aggregate's current state guarded on
	// the status it held before the in-memory transition. When the stored
	// status no longer matches prev, nothing is written and a
	// ConflictError is returned.
	UpdateTransition(ctx context.Context, aggregate *order.Order, prev order.Status) error
}
