// Package notificationrepo persists dispatched notifications so clients can
// fetch their history. The event payload is serialized to a JSON column.
package notificationrepo

import (
	"encoding/json"
	"time"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for notifications.
type NotificationDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DeviceID string     `gorm:"index"`
	UserID   *uuid.UUID `gorm:"type:uuid;index"`

	Kind    string `gorm:"type:varchar(32)"`
	Title   string
	Message string
	Data    string `gorm:"type:jsonb;default:'{}'"`

	IsRead bool `gorm:"index"`
	ReadAt *time.Time

	CreatedAt time.Time
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) (NotificationDTO, error) {
	data := n.Data()
	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return NotificationDTO{}, err
	}

	var userID *uuid.UUID
	if id := n.Recipient().UserID; id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	return NotificationDTO{
		ID:        n.ID().Bytes(),
		DeviceID:  n.Recipient().DeviceID,
		UserID:    userID,
		Kind:      string(n.Kind()),
		Title:     n.Title(),
		Message:   n.Message(),
		Data:      string(payload),
		IsRead:    n.IsRead(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}, nil
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipient := notification.DeviceRecipient(dto.DeviceID)
	if dto.UserID != nil {
		userID, userErr := kernel.UUIDFromBytes((*dto.UserID)[:])
		if userErr != nil {
			return nil, userErr
		}
		recipient = notification.UserRecipient(userID)
	}

	var data map[string]any
	if dto.Data != "" {
		if err = json.Unmarshal([]byte(dto.Data), &data); err != nil {
			return nil, err
		}
	}

	return notification.RestoreNotification(
		id, recipient,
		notification.Type(dto.Kind),
		dto.Title, dto.Message, data,
		dto.IsRead, dto.ReadAt, dto.CreatedAt,
	)
}
