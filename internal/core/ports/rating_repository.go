package ports

import (
	"context"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/rating"
)

// RatingAggregate is the mean and count recomputed over all stored ratings
// of one subject.
type RatingAggregate struct {
	Average float64
	Count   int
}

// RatingRepository defines the persistence contract for write-once ratings
// and their aggregate recomputation.
type RatingRepository interface {
	// AddDeliveryRating persists a delivery rating. Storage enforces
	// uniqueness per (order, delivery person); a violation surfaces as a
	// DuplicateError.
	AddDeliveryRating(ctx context.Context, r *rating.DeliveryRating) error

	// AddMenuItemRating persists a menu item rating. Storage enforces
	// uniqueness per (order item, device); a violation surfaces as a
	// DuplicateError.
	AddMenuItemRating(ctx context.Context, r *rating.MenuItemRating) error

	// ComputeDeliveryAggregate scans all delivery ratings of one delivery
	// person and returns mean and count.
	ComputeDeliveryAggregate(ctx context.Context, deliveryPersonID kernel.UUID) (RatingAggregate, error)

	// ComputeMenuItemAggregate scans all ratings of one menu item and
	// returns mean and count.
	ComputeMenuItemAggregate(ctx context.Context, menuItemID kernel.UUID) (RatingAggregate, error)

	// UpdateMenuItemAggregate writes the aggregate columns of a menu item.
	UpdateMenuItemAggregate(ctx context.Context, menuItemID kernel.UUID, agg RatingAggregate) error
}
