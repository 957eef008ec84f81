// Package orderrepo persists order aggregates. It maps between the order
// domain model and the relational orders table, converting statuses to their
// string form so the table is readable and queryable without the Go enum.
package orderrepo

import (
	"time"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number           string     `gorm:"type:varchar(12);uniqueIndex"`
	DeviceID         uuid.UUID  `gorm:"type:uuid;index"`
	ManagerID        *uuid.UUID `gorm:"type:uuid"`
	DeliveryPersonID *uuid.UUID `gorm:"type:uuid;index"`

	Subtotal    int64
	DeliveryFee int64
	Total       int64

	Status string `gorm:"type:varchar(16);index"`
	Notes  string

	CancellationReason string
	RefusalReason      string

	CreatedAt   time.Time
	AcceptedAt  *time.Time
	ReadyAt     *time.Time
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var managerID *uuid.UUID
	if id := aggregate.Manager(); id != nil {
		raw := id.Bytes()
		managerID = &raw
	}

	var deliveryPersonID *uuid.UUID
	if id := aggregate.DeliveryPerson(); id != nil {
		raw := id.Bytes()
		deliveryPersonID = &raw
	}

	return OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		Number:             aggregate.Number().String(),
		DeviceID:           aggregate.DeviceID().Bytes(),
		ManagerID:          managerID,
		DeliveryPersonID:   deliveryPersonID,
		Subtotal:           aggregate.Subtotal(),
		DeliveryFee:        aggregate.DeliveryFee(),
		Total:              aggregate.Total(),
		Status:             aggregate.Status().String(),
		Notes:              aggregate.Notes(),
		CancellationReason: aggregate.CancellationReason(),
		RefusalReason:      aggregate.RefusalReason(),
		CreatedAt:          aggregate.CreatedAt(),
		AcceptedAt:         aggregate.AcceptedAt(),
		ReadyAt:            aggregate.ReadyAt(),
		AssignedAt:         aggregate.AssignedAt(),
		PickedUpAt:         aggregate.PickedUpAt(),
		DeliveredAt:        aggregate.DeliveredAt(),
		CancelledAt:        aggregate.CancelledAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := kernel.OrderNumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	deviceID, err := kernel.UUIDFromBytes(dto.DeviceID[:])
	if err != nil {
		return nil, err
	}

	managerID, err := optionalUUID(dto.ManagerID)
	if err != nil {
		return nil, err
	}

	deliveryPersonID, err := optionalUUID(dto.DeliveryPersonID)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, number, deviceID,
		managerID, deliveryPersonID,
		dto.Subtotal, dto.DeliveryFee, dto.Total,
		status,
		dto.Notes, dto.CancellationReason, dto.RefusalReason,
		dto.CreatedAt,
		dto.AcceptedAt, dto.ReadyAt, dto.AssignedAt,
		dto.PickedUpAt, dto.DeliveredAt, dto.CancelledAt,
	)
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
