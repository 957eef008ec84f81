package ports

import (
	"context"

	"restoonline/internal/core/domain/model/assignment"
	"restoonline/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for delivery
// assignments and their location trail.
type AssignmentRepository interface {
	// Add persists a new assignment. Storage enforces at most one
	// non-refused assignment per order; a violation surfaces as a
	// DuplicateError.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves an assignment by id.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetActiveByOrder retrieves the non-refused assignment of an order,
	// if any.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*assignment.Assignment, error)

	// UpdateTransition persists the aggregate guarded on its previous
	// status. Returns a ConflictError when the stored status moved on.
	UpdateTransition(ctx context.Context, aggregate *assignment.Assignment, prev assignment.Status) error

	// AddLocation appends a location update to the assignment's trail.
	AddLocation(ctx context.Context, location *assignment.LocationUpdate) error
}
