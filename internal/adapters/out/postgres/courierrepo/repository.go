package courierrepo

import (
	"context"
	"errors"

	"restoonline/internal/core/domain/model/courier"
	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add saves a new delivery person.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.DeliveryPerson) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateError("delivery person", aggregate.ID().String())
		}
		return err
	}

	return nil
}

// Get retrieves a delivery person by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.DeliveryPerson, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryPersonDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery person", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update writes counter and availability changes.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.DeliveryPerson) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryPersonDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery person", aggregate.ID().String())
	}

	return nil
}
