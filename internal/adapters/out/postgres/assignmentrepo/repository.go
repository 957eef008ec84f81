package assignmentrepo

import (
	"context"
	"errors"

	"restoonline/internal/core/domain/model/assignment"
	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements ports.AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add saves a new assignment. The partial unique index on non-refused
// assignments rejects a second active assignment for the same order; the
// violation surfaces as a DuplicateError.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *assignment.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateError("active assignment", aggregate.OrderID().String())
		}
		return err
	}

	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByOrder retrieves the non-refused assignment of an order.
func (r *GormAssignmentRepository) GetActiveByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*assignment.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND status <> ?", orderID.Bytes(), assignment.Refused.String()).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("active assignment", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateTransition writes the aggregate guarded on its previous status.
func (r *GormAssignmentRepository) UpdateTransition(
	ctx context.Context,
	aggregate *assignment.Assignment,
	prev assignment.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ? AND status = ?", dto.ID, prev.String()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("assignment", aggregate.ID().String())
	}

	return nil
}

// AddLocation appends a location update to the assignment's trail.
func (r *GormAssignmentRepository) AddLocation(ctx context.Context, location *assignment.LocationUpdate) error {
	if location == nil {
		return errs.NewValueIsRequiredError("location update")
	}

	dto := locationFromDomain(location)
	return r.db.WithContext(ctx).Create(&dto).Error
}
