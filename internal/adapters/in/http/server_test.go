package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/domain/model/order"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"required value", errs.NewValueIsRequiredError("reason"), http.StatusBadRequest},
		{"invalid value", errs.NewValueIsInvalidError("limit"), http.StatusBadRequest},
		{"unauthorized", errs.NewUnauthorizedError("accept order", "u1"), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("order", "o1"), http.StatusNotFound},
		{"conflict", errs.NewConflictError("order", "o1"), http.StatusConflict},
		{"duplicate", errs.NewDuplicateError("payment", "o1"), http.StatusConflict},
		{"invalid transition", errs.NewInvalidTransitionError("order", "pending", "ready"),
			http.StatusUnprocessableEntity},
		{"provider", errs.NewProviderError("create invoice", errors.New("declined")),
			http.StatusBadGateway},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

// orderStore backs the order transition endpoints with an in-memory map.
type orderStore struct {
	mu     sync.Mutex
	orders map[kernel.UUID]*order.Order
}

func newOrderStore() *orderStore {
	return &orderStore{orders: make(map[kernel.UUID]*order.Order)}
}

func (s *orderStore) put(o *order.Order) { s.orders[o.ID()] = o }

type orderStoreUoW struct {
	s *orderStore
}

func (u orderStoreUoW) Begin(context.Context) error    { return nil }
func (u orderStoreUoW) Commit(context.Context) error   { return nil }
func (u orderStoreUoW) Rollback(context.Context) error { return nil }

func (u orderStoreUoW) OrderRepository() ports.OrderRepository { return orderStoreRepo{u.s} }

type orderStoreUoWFactory struct {
	s *orderStore
}

func (f orderStoreUoWFactory) Create() commands.OrderUoW { return orderStoreUoW{f.s} }

type orderStoreRepo struct {
	s *orderStore
}

func (r orderStoreRepo) Add(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID()] = o
	return nil
}

func (r orderStoreRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (r orderStoreRepo) GetByNumber(_ context.Context, number kernel.OrderNumber) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.Number().String() == number.String() {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", number.String())
}

func (r orderStoreRepo) UpdateTransition(_ context.Context, o *order.Order, _ order.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID()] = o
	return nil
}

type fixedStaff struct {
	manager bool
}

func (s fixedStaff) IsManager(context.Context, kernel.UUID) (bool, error) { return s.manager, nil }
func (s fixedStaff) ListStaff(context.Context) ([]kernel.UUID, error)     { return nil, nil }

type silentDispatcher struct{}

func (silentDispatcher) Send(context.Context, notification.Recipient, notification.Type,
	string, string, map[string]any) {
}

func (silentDispatcher) BroadcastToStaff(context.Context, notification.Type,
	string, string, map[string]any) {
}

func newTestServer(t *testing.T, store *orderStore, staff fixedStaff) *echo.Echo {
	t.Helper()

	factory := orderStoreUoWFactory{store}
	handlers := Handlers{
		AcceptOrder:    commands.NewAcceptOrderCommandHandler(factory, staff, silentDispatcher{}),
		StartPreparing: commands.NewStartPreparingCommandHandler(factory, staff, silentDispatcher{}),
	}

	e := echo.New()
	NewServer(handlers, NewMetrics()).RegisterRoutes(e)
	return e
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewOrderNumber(), kernel.NewUUID(),
		4500, 1000, "")
	require.NoError(t, err)
	return o
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAcceptOrderEndpoint(t *testing.T) {
	store := newOrderStore()
	o := pendingOrder(t)
	store.put(o)
	e := newTestServer(t, store, fixedStaff{manager: true})

	rec := postJSON(e, "/api/v1/orders/"+o.ID().String()+"/accept",
		fmt.Sprintf(`{"manager_id": %q}`, kernel.NewUUID().String()))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, order.Accepted, store.orders[o.ID()].Status())
}

func TestAcceptOrderRequiresManagerRole(t *testing.T) {
	store := newOrderStore()
	o := pendingOrder(t)
	store.put(o)
	e := newTestServer(t, store, fixedStaff{manager: false})

	rec := postJSON(e, "/api/v1/orders/"+o.ID().String()+"/accept",
		fmt.Sprintf(`{"manager_id": %q}`, kernel.NewUUID().String()))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, order.Pending, store.orders[o.ID()].Status())
}

func TestAcceptOrderRejectsMalformedID(t *testing.T) {
	e := newTestServer(t, newOrderStore(), fixedStaff{manager: true})

	rec := postJSON(e, "/api/v1/orders/not-a-uuid/accept",
		fmt.Sprintf(`{"manager_id": %q}`, kernel.NewUUID().String()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAcceptOrderUnknownIDIsNotFound(t *testing.T) {
	e := newTestServer(t, newOrderStore(), fixedStaff{manager: true})

	rec := postJSON(e, "/api/v1/orders/"+kernel.NewUUID().String()+"/accept",
		fmt.Sprintf(`{"manager_id": %q}`, kernel.NewUUID().String()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPrepareBeforeAcceptIsRejected(t *testing.T) {
	store := newOrderStore()
	o := pendingOrder(t)
	store.put(o)
	e := newTestServer(t, store, fixedStaff{manager: true})

	// Preparing requires an accepted order; a pending one must not move.
	rec := postJSON(e, "/api/v1/orders/"+o.ID().String()+"/prepare",
		fmt.Sprintf(`{"manager_id": %q}`, kernel.NewUUID().String()))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, order.Pending, store.orders[o.ID()].Status())
}

func TestWebhookWithoutTokenIsRejected(t *testing.T) {
	e := newTestServer(t, newOrderStore(), fixedStaff{})

	rec := postJSON(e, "/api/v1/payments/webhook", `{"status": "completed"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t, newOrderStore(), fixedStaff{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestMetricsEndpointServesCounters(t *testing.T) {
	e := newTestServer(t, newOrderStore(), fixedStaff{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	e.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
