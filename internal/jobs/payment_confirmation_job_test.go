package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/domain/model/order"
	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sweepStore holds one order and one payment behind the narrow unit of work
// the confirmation handler needs.
type sweepStore struct {
	mu      sync.Mutex
	order   *order.Order
	payment *payment.Payment
}

type sweepUoW struct {
	s *sweepStore
}

func (u sweepUoW) Begin(context.Context) error    { return nil }
func (u sweepUoW) Commit(context.Context) error   { return nil }
func (u sweepUoW) Rollback(context.Context) error { return nil }

func (u sweepUoW) PaymentRepository() ports.PaymentRepository { return sweepPaymentRepo{u.s} }
func (u sweepUoW) OrderRepository() ports.OrderRepository     { return sweepOrderRepo{u.s} }

type sweepUoWFactory struct {
	s *sweepStore
}

func (f sweepUoWFactory) Create() commands.PaymentUoW { return sweepUoW{f.s} }

type sweepPaymentRepo struct {
	s *sweepStore
}

func (r sweepPaymentRepo) Add(context.Context, *payment.Payment) error { return nil }

func (r sweepPaymentRepo) Get(_ context.Context, id kernel.UUID) (*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.payment == nil || !r.s.payment.ID().IsEqual(id) {
		return nil, errs.NewObjectNotFoundError("payment", id.String())
	}
	return r.s.payment, nil
}

func (r sweepPaymentRepo) GetByOrder(context.Context, kernel.UUID) (*payment.Payment, error) {
	return nil, errs.NewObjectNotFoundError("payment", "unused")
}

func (r sweepPaymentRepo) GetByToken(context.Context, string) (*payment.Payment, error) {
	return nil, errs.NewObjectNotFoundError("payment", "unused")
}

func (r sweepPaymentRepo) GetAllProcessing(context.Context) ([]*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.payment != nil && r.s.payment.Status() == payment.Processing {
		return []*payment.Payment{r.s.payment}, nil
	}
	return nil, nil
}

func (r sweepPaymentRepo) UpdateTransition(
	_ context.Context, aggregate *payment.Payment, prev payment.Status,
) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.payment == nil || !r.s.payment.ID().IsEqual(aggregate.ID()) {
		return errs.NewObjectNotFoundError("payment", aggregate.ID().String())
	}
	_ = prev
	r.s.payment = aggregate
	return nil
}

type sweepOrderRepo struct {
	s *sweepStore
}

func (r sweepOrderRepo) Add(context.Context, *order.Order) error { return nil }

func (r sweepOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.order == nil || !r.s.order.ID().IsEqual(id) {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return r.s.order, nil
}

func (r sweepOrderRepo) GetByNumber(context.Context, kernel.OrderNumber) (*order.Order, error) {
	return nil, errs.NewObjectNotFoundError("order", "unused")
}

func (r sweepOrderRepo) UpdateTransition(_ context.Context, aggregate *order.Order, _ order.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.order = aggregate
	return nil
}

type sweepProvider struct {
	status        payment.Status
	transactionID string
}

func (p sweepProvider) CreateInvoice(context.Context, int64, string, string) (string, string, error) {
	return "", "", errs.NewProviderError("create invoice", errors.New("unused"))
}

func (p sweepProvider) ConfirmInvoice(context.Context, string) (payment.Status, string, error) {
	return p.status, p.transactionID, nil
}

type noopDispatcher struct{}

func (noopDispatcher) Send(context.Context, notification.Recipient, notification.Type,
	string, string, map[string]any) {
}

func (noopDispatcher) BroadcastToStaff(context.Context, notification.Type,
	string, string, map[string]any) {
}

func newSweepStore(t *testing.T) *sweepStore {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewOrderNumber(), kernel.NewUUID(),
		4500, 1000, "")
	require.NoError(t, err)

	p, err := payment.NewPayment(kernel.NewUUID(), o.ID(), o.Total())
	require.NoError(t, err)
	require.NoError(t, p.MarkProcessing("tok-1", "https://pay.example/tok-1"))

	return &sweepStore{order: o, payment: p}
}

func TestRunOnceConfirmsProcessingPayments(t *testing.T) {
	store := newSweepStore(t)
	handler := commands.NewConfirmPaymentCommandHandler(
		sweepUoWFactory{store},
		sweepProvider{status: payment.Completed, transactionID: "txn-9"},
		noopDispatcher{},
	)

	job := NewPaymentConfirmationJob(handler, func(ctx context.Context) ([]*payment.Payment, error) {
		return sweepPaymentRepo{store}.GetAllProcessing(ctx)
	}, "", slog.Default())

	job.RunOnce(context.Background())

	assert.Equal(t, payment.Completed, store.payment.Status())
	assert.Equal(t, "txn-9", store.payment.TransactionID())
	// A completed payment also accepts the pending order.
	assert.Equal(t, order.Accepted, store.order.Status())

	// The sweep is idempotent: nothing is processing anymore.
	job.RunOnce(context.Background())
	assert.Equal(t, payment.Completed, store.payment.Status())
}

func TestRunOnceLeavesStillPendingPaymentsAlone(t *testing.T) {
	store := newSweepStore(t)
	handler := commands.NewConfirmPaymentCommandHandler(
		sweepUoWFactory{store},
		sweepProvider{status: payment.Processing},
		noopDispatcher{},
	)

	job := NewPaymentConfirmationJob(handler, func(ctx context.Context) ([]*payment.Payment, error) {
		return sweepPaymentRepo{store}.GetAllProcessing(ctx)
	}, "", slog.Default())

	job.RunOnce(context.Background())

	assert.Equal(t, payment.Processing, store.payment.Status())
	assert.Equal(t, order.Pending, store.order.Status())
}

func TestRunOnceSurvivesListingFailure(t *testing.T) {
	handler := commands.NewConfirmPaymentCommandHandler(
		sweepUoWFactory{&sweepStore{}},
		sweepProvider{status: payment.Completed},
		noopDispatcher{},
	)

	job := NewPaymentConfirmationJob(handler, func(context.Context) ([]*payment.Payment, error) {
		return nil, errors.New("database offline")
	}, "", slog.Default())

	// Must log and return, not panic.
	job.RunOnce(context.Background())
}
