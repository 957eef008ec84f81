package ports

import (
	"context"

	"restoonline/internal/core/domain/model/notification"
)

// NotificationDispatcher fans lifecycle notifications out to recipients.
// Both methods are fire and forget: delivery happens asynchronously and
// failures are logged by the dispatcher, never returned to the caller's
// business flow.
type NotificationDispatcher interface {
	// Send queues one notification for a single recipient.
	Send(ctx context.Context, recipient notification.Recipient, kind notification.Type,
		title, message string, data map[string]any)

	// BroadcastToStaff queues the notification for every staff user the
	// staff directory knows.
	BroadcastToStaff(ctx context.Context, kind notification.Type,
		title, message string, data map[string]any)
}
