package ports

import (
	"context"

	"restoonline/internal/core/domain/model/courier"
	"restoonline/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for delivery persons.
type CourierRepository interface {
	// Add persists a new delivery person.
	Add(ctx context.Context, aggregate *courier.DeliveryPerson) error

	// Get retrieves a delivery person by id.
	Get(ctx context.Context, id kernel.UUID) (*courier.DeliveryPerson, error)

	// Update persists counter and aggregate changes.
	Update(ctx context.Context, aggregate *courier.DeliveryPerson) error
}
