package commands_test

import (
	"errors"
	"sync"
	"testing"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/order"
	"restoonline/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedOrder creates a pending order through the real handler and returns it.
func seedOrder(t *testing.T, store *fakeStore, deviceID kernel.UUID) *order.Order {
	t.Helper()

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, deviceID, 5000, 500, "")
	require.NoError(t, err)

	h := commands.NewCreateOrderCommandHandler(orderUoWFactory{store}, &fakeDispatcher{})
	require.NoError(t, h.Handle(t.Context(), cmd))

	created, err := fakeOrderRepo{store}.Get(t.Context(), orderID)
	require.NoError(t, err)
	return created
}

func TestCreateOrderCommandHandler(t *testing.T) {
	store := newFakeStore()
	dispatcher := &fakeDispatcher{}
	deviceID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), deviceID, 5000, 500, "sans oignons")
	require.NoError(t, err)

	h := commands.NewCreateOrderCommandHandler(orderUoWFactory{store}, dispatcher)
	require.NoError(t, h.Handle(t.Context(), cmd))

	created, err := fakeOrderRepo{store}.Get(t.Context(), cmd.OrderID())
	require.NoError(t, err)
	assert.Equal(t, order.Pending, created.Status())
	assert.Equal(t, int64(5500), created.Total())
	assert.NoError(t, created.Number().Validate())

	assert.Equal(t, 1, dispatcher.countTitled("Commande créée"))
	assert.Equal(t, 1, dispatcher.countTitled("Nouvelle commande"))
}

func TestAcceptOrderCommandHandler(t *testing.T) {
	t.Run("accepts pending order", func(t *testing.T) {
		store := newFakeStore()
		managerID := kernel.NewUUID()
		staff := newFakeStaff(managerID)
		dispatcher := &fakeDispatcher{}
		created := seedOrder(t, store, kernel.NewUUID())

		cmd, err := commands.NewAcceptOrderCommand(created.ID(), managerID)
		require.NoError(t, err)

		h := commands.NewAcceptOrderCommandHandler(orderUoWFactory{store}, staff, dispatcher)
		require.NoError(t, h.Handle(t.Context(), cmd))

		updated, err := fakeOrderRepo{store}.Get(t.Context(), created.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Accepted, updated.Status())
		require.NotNil(t, updated.Manager())
		assert.True(t, updated.Manager().IsEqual(managerID))
		require.NotNil(t, updated.AcceptedAt())
		assert.Equal(t, 1, dispatcher.countTitled("Commande acceptée"))
	})

	t.Run("rejects non-manager", func(t *testing.T) {
		store := newFakeStore()
		staff := newFakeStaff(kernel.NewUUID())
		created := seedOrder(t, store, kernel.NewUUID())

		cmd, err := commands.NewAcceptOrderCommand(created.ID(), kernel.NewUUID())
		require.NoError(t, err)

		h := commands.NewAcceptOrderCommandHandler(orderUoWFactory{store}, staff, &fakeDispatcher{})
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrUnauthorized)
	})

	t.Run("rejects illegal transition", func(t *testing.T) {
		store := newFakeStore()
		managerID := kernel.NewUUID()
		staff := newFakeStaff(managerID)
		created := seedOrder(t, store, kernel.NewUUID())

		cmd, err := commands.NewAcceptOrderCommand(created.ID(), managerID)
		require.NoError(t, err)

		h := commands.NewAcceptOrderCommandHandler(orderUoWFactory{store}, staff, &fakeDispatcher{})
		require.NoError(t, h.Handle(t.Context(), cmd))
		require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrInvalidTransition)
	})
}

// Two managers race on the same pending order: exactly one acceptance wins,
// the other observes the stale status as a conflict.
func TestAcceptOrderConcurrentConflict(t *testing.T) {
	store := newFakeStore()
	managerID := kernel.NewUUID()
	staff := newFakeStaff(managerID)
	created := seedOrder(t, store, kernel.NewUUID())

	h := commands.NewAcceptOrderCommandHandler(orderUoWFactory{store}, staff, &fakeDispatcher{})
	cmd, err := commands.NewAcceptOrderCommand(created.ID(), managerID)
	require.NoError(t, err)

	// Both handlers load the pending order before either writes.
	start := make(chan struct{})
	results := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for range 2 {
		go func() {
			defer wg.Done()
			<-start
			results <- h.Handle(t.Context(), cmd)
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrInvalidTransition):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	updated, err := fakeOrderRepo{store}.Get(t.Context(), created.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Accepted, updated.Status())
}

func TestRefuseOrderCommandHandler(t *testing.T) {
	store := newFakeStore()
	managerID := kernel.NewUUID()
	staff := newFakeStaff(managerID)
	dispatcher := &fakeDispatcher{}
	created := seedOrder(t, store, kernel.NewUUID())

	_, err := commands.NewRefuseOrderCommand(created.ID(), managerID, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewRefuseOrderCommand(created.ID(), managerID, "rupture de stock")
	require.NoError(t, err)

	h := commands.NewRefuseOrderCommandHandler(orderUoWFactory{store}, staff, dispatcher)
	require.NoError(t, h.Handle(t.Context(), cmd))

	updated, err := fakeOrderRepo{store}.Get(t.Context(), created.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Refused, updated.Status())
	assert.Equal(t, "rupture de stock", updated.RefusalReason())
	assert.Equal(t, 1, dispatcher.countTitled("Commande refusée"))
}

func TestCancelOrderCommandHandler(t *testing.T) {
	store := newFakeStore()
	managerID := kernel.NewUUID()
	staff := newFakeStaff(managerID)
	dispatcher := &fakeDispatcher{}
	created := seedOrder(t, store, kernel.NewUUID())

	cmd, err := commands.NewCancelOrderCommand(created.ID(), managerID, "client injoignable")
	require.NoError(t, err)

	h := commands.NewCancelOrderCommandHandler(orderUoWFactory{store}, staff, dispatcher)
	require.NoError(t, h.Handle(t.Context(), cmd))

	updated, err := fakeOrderRepo{store}.Get(t.Context(), created.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	assert.Equal(t, "client injoignable", updated.CancellationReason())
	// Device message plus staff broadcast.
	assert.Equal(t, 2, dispatcher.countTitled("Commande annulée"))

	// Terminal: a second cancellation is illegal.
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrInvalidTransition)
}

func TestStartPreparingAndMarkReady(t *testing.T) {
	store := newFakeStore()
	managerID := kernel.NewUUID()
	staff := newFakeStaff(managerID)
	created := seedOrder(t, store, kernel.NewUUID())

	acceptCmd, err := commands.NewAcceptOrderCommand(created.ID(), managerID)
	require.NoError(t, err)
	acceptH := commands.NewAcceptOrderCommandHandler(orderUoWFactory{store}, staff, &fakeDispatcher{})
	require.NoError(t, acceptH.Handle(t.Context(), acceptCmd))

	prepCmd, err := commands.NewStartPreparingCommand(created.ID(), managerID)
	require.NoError(t, err)
	prepH := commands.NewStartPreparingCommandHandler(orderUoWFactory{store}, staff, &fakeDispatcher{})
	require.NoError(t, prepH.Handle(t.Context(), prepCmd))

	readyCmd, err := commands.NewMarkReadyCommand(created.ID(), managerID)
	require.NoError(t, err)
	readyH := commands.NewMarkReadyCommandHandler(orderUoWFactory{store}, staff, &fakeDispatcher{})
	require.NoError(t, readyH.Handle(t.Context(), readyCmd))

	updated, err := fakeOrderRepo{store}.Get(t.Context(), created.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Ready, updated.Status())
	require.NotNil(t, updated.ReadyAt())
}
