// Package courierrepo persists delivery persons with their denormalized
// performance counters.
package courierrepo

import (
	"restoonline/internal/core/domain/model/courier"
	"restoonline/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryPersonDTO represents the database structure for delivery persons.
type DeliveryPersonDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Phone string

	Available bool `gorm:"index"`

	TotalDeliveries int
	AverageRating   float64
	RatingCount     int
}

// TableName specifies the database table name for delivery persons.
func (DeliveryPersonDTO) TableName() string {
	return "delivery_persons"
}

func fromDomain(aggregate *courier.DeliveryPerson) DeliveryPersonDTO {
	return DeliveryPersonDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		Phone:           aggregate.Phone(),
		Available:       aggregate.IsAvailable(),
		TotalDeliveries: aggregate.TotalDeliveries(),
		AverageRating:   aggregate.AverageRating(),
		RatingCount:     aggregate.RatingCount(),
	}
}

func toDomain(dto DeliveryPersonDTO) (*courier.DeliveryPerson, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.RestoreDeliveryPerson(
		id, dto.Name, dto.Phone,
		dto.Available,
		dto.TotalDeliveries, dto.AverageRating, dto.RatingCount,
	)
}
