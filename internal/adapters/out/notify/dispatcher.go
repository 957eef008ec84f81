// Package notify implements the notification dispatcher port. Dispatch is
// asynchronous: Send and BroadcastToStaff only enqueue, a single worker
// goroutine persists the notifications, and failures are logged instead of
// surfacing into the caller's business flow.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/ports"
)

const (
	queueCapacity  = 256
	deliverTimeout = 5 * time.Second
)

// Store persists dispatched notifications.
type Store interface {
	Add(ctx context.Context, n *notification.Notification) error
}

// AsyncDispatcher implements ports.NotificationDispatcher with a buffered
// queue and one delivery worker. When the queue is full the notification is
// dropped and logged; a lifecycle notification is advisory, never worth
// blocking a command for.
type AsyncDispatcher struct {
	store  Store
	staff  ports.StaffDirectory
	logger *slog.Logger

	queue chan *notification.Notification
	wg    sync.WaitGroup
}

// NewAsyncDispatcher creates a dispatcher. Call Start before use and Stop
// on shutdown to drain the queue.
func NewAsyncDispatcher(store Store, staff ports.StaffDirectory, logger *slog.Logger) *AsyncDispatcher {
	return &AsyncDispatcher{
		store:  store,
		staff:  staff,
		logger: logger.With("component", "notification_dispatcher"),
		queue:  make(chan *notification.Notification, queueCapacity),
	}
}

// Start launches the delivery worker.
func (d *AsyncDispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

// Stop closes the queue and waits until every enqueued notification was
// delivered or logged.
func (d *AsyncDispatcher) Stop() {
	close(d.queue)
	d.wg.Wait()
}

// Send queues one notification for a single recipient.
func (d *AsyncDispatcher) Send(
	ctx context.Context,
	recipient notification.Recipient,
	kind notification.Type,
	title, message string,
	data map[string]any,
) {
	n, err := notification.NewNotification(kernel.NewUUID(), recipient, kind, title, message, data)
	if err != nil {
		d.logger.ErrorContext(ctx, "Dropping malformed notification", "title", title, "error", err)
		return
	}

	select {
	case d.queue <- n:
	default:
		d.logger.WarnContext(ctx, "Notification queue full, dropping", "title", title)
	}
}

// BroadcastToStaff queues the notification for every staff user.
func (d *AsyncDispatcher) BroadcastToStaff(
	ctx context.Context,
	kind notification.Type,
	title, message string,
	data map[string]any,
) {
	staff, err := d.staff.ListStaff(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "Staff broadcast failed to resolve recipients", "error", err)
		return
	}

	for _, userID := range staff {
		d.Send(ctx, notification.UserRecipient(userID), kind, title, message, data)
	}
}

func (d *AsyncDispatcher) run() {
	defer d.wg.Done()

	for n := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		if err := d.store.Add(ctx, n); err != nil {
			d.logger.ErrorContext(ctx, "Notification delivery failed",
				"id", n.ID().String(), "title", n.Title(), "error", err)
		}
		cancel()
	}
}
