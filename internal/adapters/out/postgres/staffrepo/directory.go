package staffrepo

import (
	"context"
	"errors"

	"restoonline/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormStaffDirectory implements ports.StaffDirectory using GORM.
type GormStaffDirectory struct {
	db *gorm.DB
}

// NewGormStaffDirectory creates a new GORM staff directory.
func NewGormStaffDirectory(db *gorm.DB) *GormStaffDirectory {
	return &GormStaffDirectory{db: db}
}

// IsManager reports whether the user is an active manager. An unknown user
// is simply not a manager, not an error.
func (d *GormStaffDirectory) IsManager(ctx context.Context, userID kernel.UUID) (bool, error) {
	if err := userID.Validate(); err != nil {
		return false, err
	}

	var dto StaffUserDTO
	err := d.db.WithContext(ctx).
		First(&dto, "id = ? AND role = ? AND active = true", userID.Bytes(), RoleManager).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// ListStaff returns the ids of all active staff users.
func (d *GormStaffDirectory) ListStaff(ctx context.Context) ([]kernel.UUID, error) {
	var dtos []StaffUserDTO
	if err := d.db.WithContext(ctx).Find(&dtos, "active = true").Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
