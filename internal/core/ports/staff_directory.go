package ports

import (
	"context"

	"restoonline/internal/core/domain/model/kernel"
)

// StaffDirectory answers role questions about staff users. Authentication
// happens upstream; handlers only check that an acting user holds the role
// an operation demands.
type StaffDirectory interface {
	// IsManager reports whether the user may manage orders.
	IsManager(ctx context.Context, userID kernel.UUID) (bool, error)

	// ListStaff returns the ids of all users notified on staff broadcasts.
	ListStaff(ctx context.Context) ([]kernel.UUID, error)
}
