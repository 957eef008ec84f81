package notify_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"restoonline/internal/adapters/out/notify"
	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu    sync.Mutex
	saved []*notification.Notification
}

func (s *memoryStore) Add(_ context.Context, n *notification.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, n)
	return nil
}

func (s *memoryStore) all() []*notification.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*notification.Notification(nil), s.saved...)
}

type staticStaff struct {
	ids []kernel.UUID
}

func (s staticStaff) IsManager(_ context.Context, _ kernel.UUID) (bool, error) {
	return false, nil
}

func (s staticStaff) ListStaff(_ context.Context) ([]kernel.UUID, error) {
	return s.ids, nil
}

func TestSendDeliversThroughTheWorker(t *testing.T) {
	store := &memoryStore{}
	dispatcher := notify.NewAsyncDispatcher(store, staticStaff{}, slog.Default())
	dispatcher.Start()

	dispatcher.Send(context.Background(), notification.DeviceRecipient("device-1"),
		notification.TypeOrderStatus, "Commande créée", "Votre commande ORD-1A2B3C4D a été créée.",
		map[string]any{"order_number": "ORD-1A2B3C4D"})
	dispatcher.Stop()

	saved := store.all()
	require.Len(t, saved, 1)
	assert.Equal(t, "Commande créée", saved[0].Title())
	assert.Equal(t, "device-1", saved[0].Recipient().DeviceID)
	assert.Equal(t, notification.TypeOrderStatus, saved[0].Kind())
	assert.Equal(t, "ORD-1A2B3C4D", saved[0].Data()["order_number"])
	assert.False(t, saved[0].IsRead())
}

func TestBroadcastReachesEveryStaffUser(t *testing.T) {
	store := &memoryStore{}
	staff := staticStaff{ids: []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}}
	dispatcher := notify.NewAsyncDispatcher(store, staff, slog.Default())
	dispatcher.Start()

	dispatcher.BroadcastToStaff(context.Background(), notification.TypeNewOrder,
		"Nouvelle commande", "Commande ORD-1A2B3C4D en attente.", nil)
	dispatcher.Stop()

	saved := store.all()
	require.Len(t, saved, 3)
	seen := make(map[string]bool)
	for _, n := range saved {
		require.NotNil(t, n.Recipient().UserID)
		seen[n.Recipient().UserID.String()] = true
	}
	assert.Len(t, seen, 3)
}

func TestMalformedNotificationIsDroppedNotDelivered(t *testing.T) {
	store := &memoryStore{}
	dispatcher := notify.NewAsyncDispatcher(store, staticStaff{}, slog.Default())
	dispatcher.Start()

	// Empty title fails domain validation; the dispatcher logs and drops.
	dispatcher.Send(context.Background(), notification.DeviceRecipient("device-1"),
		notification.TypeOrderStatus, "", "message", nil)
	dispatcher.Stop()

	assert.Empty(t, store.all())
}
