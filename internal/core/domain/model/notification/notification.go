package notification

import (
	"errors"
	"time"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"
)

// Type classifies a notification by the event that produced it.
type Type string

const (
	TypeOrderStatus    Type = "order_status"
	TypePaymentStatus  Type = "payment_status"
	TypeDeliveryStatus Type = "delivery_status"
	TypeNewOrder       Type = "new_order"
	TypeAssignment     Type = "assignment"
)

// Validate checks that the Type is one of the defined notification types.
func (t Type) Validate() error {
	switch t {
	case TypeOrderStatus, TypePaymentStatus, TypeDeliveryStatus, TypeNewOrder, TypeAssignment:
		return nil
	default:
		return errs.NewValueIsInvalidError("notification type")
	}
}

// Recipient addresses a notification: a customer device or a staff user,
// exactly one of which must be set.
type Recipient struct {
	DeviceID string
	UserID   *kernel.UUID
}

// DeviceRecipient addresses a customer device.
func DeviceRecipient(deviceID string) Recipient {
	return Recipient{DeviceID: deviceID}
}

// UserRecipient addresses a staff user.
func UserRecipient(userID kernel.UUID) Recipient {
	return Recipient{UserID: &userID}
}

// Validate checks that exactly one addressing field is set.
func (r Recipient) Validate() error {
	if r.DeviceID == "" && r.UserID == nil {
		return errs.NewValueIsRequiredError("recipient")
	}
	if r.DeviceID != "" && r.UserID != nil {
		return errs.NewValueIsInvalidError("recipient")
	}
	if r.UserID != nil {
		return r.UserID.Validate()
	}
	return nil
}

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification")

// Notification is a persisted message for one recipient. Data carries
// event-specific payload serialized as JSON by the storage layer.
type Notification struct {
	id        kernel.UUID
	recipient Recipient

	kind    Type
	title   string
	message string
	data    map[string]any

	isRead bool
	readAt *time.Time

	createdAt time.Time

	guard kernel.ConstructorGuard
}

// NewNotification creates an unread notification.
func NewNotification(
	id kernel.UUID,
	recipient Recipient,
	kind Type,
	title, message string,
	data map[string]any,
) (*Notification, error) {
	if err := errors.Join(
		id.Validate(),
		recipient.Validate(),
		kind.Validate(),
	); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}

	return &Notification{
		id:        id,
		recipient: recipient,
		kind:      kind,
		title:     title,
		message:   message,
		data:      data,
		createdAt: time.Now().UTC(),
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	recipient Recipient,
	kind Type,
	title, message string,
	data map[string]any,
	isRead bool,
	readAt *time.Time,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, recipient, kind, title, message, data)
	if err != nil {
		return nil, err
	}
	n.isRead = isRead
	n.readAt = readAt
	n.createdAt = createdAt
	return n, nil
}

// Validate ensures the Notification was created via a constructor.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID      { return n.id }
func (n *Notification) Recipient() Recipient { return n.recipient }
func (n *Notification) Kind() Type           { return n.kind }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) Data() map[string]any { return n.data }
func (n *Notification) IsRead() bool         { return n.isRead }
func (n *Notification) ReadAt() *time.Time   { return n.readAt }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// MarkRead marks the notification read. Idempotent.
func (n *Notification) MarkRead() {
	if n.isRead {
		return
	}
	now := time.Now().UTC()
	n.isRead = true
	n.readAt = &now
}
