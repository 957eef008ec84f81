package notificationrepo

import (
	"context"
	"errors"

	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository stores dispatched notifications.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add saves a dispatched notification.
func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(n)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateError("notification", n.ID().String())
		}
		return err
	}

	return nil
}

// ListByDevice returns a device's notifications, newest first.
func (r *GormNotificationRepository) ListByDevice(
	ctx context.Context,
	deviceID string,
	limit int,
) ([]*notification.Notification, error) {
	if deviceID == "" {
		return nil, errs.NewValueIsRequiredError("device id")
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("created_at DESC").
		Limit(limit).
		Find(&dtos).
		Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// MarkRead marks a stored notification read.
func (r *GormNotificationRepository) MarkRead(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(n)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{"is_read": dto.IsRead, "read_at": dto.ReadAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", n.ID().String())
	}

	return nil
}
