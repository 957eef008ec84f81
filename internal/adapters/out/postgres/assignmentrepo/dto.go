// Package assignmentrepo persists delivery assignments and their location
// trail. A partial unique index on (order_id) WHERE status <> 'refused'
// backs the one-active-assignment-per-order rule; see RunMigrations.
package assignmentrepo

import (
	"time"

	"restoonline/internal/core/domain/model/assignment"
	"restoonline/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for delivery assignments.
type AssignmentDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID  `gorm:"type:uuid;index"`
	DeliveryPersonID uuid.UUID  `gorm:"type:uuid;index"`
	AssignedByID     *uuid.UUID `gorm:"type:uuid"`

	Status string `gorm:"type:varchar(16);index"`

	AssignedAt  time.Time
	AcceptedAt  *time.Time
	RefusedAt   *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time

	RefusalReason string
	Notes         string
}

// TableName specifies the database table name for assignments.
func (AssignmentDTO) TableName() string {
	return "delivery_assignments"
}

// LocationUpdateDTO represents one point of the delivery position stream.
type LocationUpdateDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssignmentID uuid.UUID `gorm:"type:uuid;index"`
	Latitude     float64
	Longitude    float64
	Accuracy     *float64
	RecordedAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for location updates.
func (LocationUpdateDTO) TableName() string {
	return "location_updates"
}

func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	var assignedByID *uuid.UUID
	if id := aggregate.AssignedBy(); id != nil {
		raw := id.Bytes()
		assignedByID = &raw
	}

	return AssignmentDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		DeliveryPersonID: aggregate.DeliveryPerson().Bytes(),
		AssignedByID:     assignedByID,
		Status:           aggregate.Status().String(),
		AssignedAt:       aggregate.AssignedAt(),
		AcceptedAt:       aggregate.AcceptedAt(),
		RefusedAt:        aggregate.RefusedAt(),
		PickedUpAt:       aggregate.PickedUpAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		RefusalReason:    aggregate.RefusalReason(),
		Notes:            aggregate.Notes(),
	}
}

func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	deliveryPersonID, err := kernel.UUIDFromBytes(dto.DeliveryPersonID[:])
	if err != nil {
		return nil, err
	}

	var assignedByID *kernel.UUID
	if dto.AssignedByID != nil {
		byID, byErr := kernel.UUIDFromBytes((*dto.AssignedByID)[:])
		if byErr != nil {
			return nil, byErr
		}
		assignedByID = &byID
	}

	status, err := assignment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id, orderID, deliveryPersonID, assignedByID,
		status,
		dto.AssignedAt,
		dto.AcceptedAt, dto.RefusedAt, dto.PickedUpAt, dto.DeliveredAt,
		dto.RefusalReason,
		dto.Notes,
	)
}

func locationFromDomain(location *assignment.LocationUpdate) LocationUpdateDTO {
	return LocationUpdateDTO{
		ID:           location.ID().Bytes(),
		AssignmentID: location.AssignmentID().Bytes(),
		Latitude:     location.Latitude(),
		Longitude:    location.Longitude(),
		Accuracy:     location.Accuracy(),
		RecordedAt:   location.RecordedAt(),
	}
}
