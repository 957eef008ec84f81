package commands_test

import (
	"context"
	"sync"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/domain/model/assignment"
	"restoonline/internal/core/domain/model/courier"
	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/domain/model/order"
	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/core/domain/model/rating"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"
)

// fakeStore is an in-memory backend with the same contract the postgres
// adapter provides: guarded compare-and-set updates, duplicate detection,
// copies handed out on every read so concurrent handlers race on the store
// instead of sharing aggregate state.
type fakeStore struct {
	mu sync.Mutex

	orders      map[kernel.UUID]*order.Order
	assignments map[kernel.UUID]*assignment.Assignment
	locations   []*assignment.LocationUpdate
	payments    map[kernel.UUID]*payment.Payment
	webhooks    map[kernel.UUID]*payment.WebhookRecord
	couriers    map[kernel.UUID]*courier.DeliveryPerson

	deliveryRatings map[string]int // "orderID|personID" -> score
	menuRatings     map[string]int // "orderItemID|deviceID" -> score
	menuRatingItems map[string]kernel.UUID
	menuAggregates  map[kernel.UUID]ports.RatingAggregate
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:          make(map[kernel.UUID]*order.Order),
		assignments:     make(map[kernel.UUID]*assignment.Assignment),
		payments:        make(map[kernel.UUID]*payment.Payment),
		webhooks:        make(map[kernel.UUID]*payment.WebhookRecord),
		couriers:        make(map[kernel.UUID]*courier.DeliveryPerson),
		deliveryRatings: make(map[string]int),
		menuRatings:     make(map[string]int),
		menuRatingItems: make(map[string]kernel.UUID),
		menuAggregates:  make(map[kernel.UUID]ports.RatingAggregate),
	}
}

func cloneOrder(o *order.Order) *order.Order {
	clone, err := order.RestoreOrder(
		o.ID(), o.Number(), o.DeviceID(), o.Manager(), o.DeliveryPerson(),
		o.Subtotal(), o.DeliveryFee(), o.Total(), o.Status(),
		o.Notes(), o.CancellationReason(), o.RefusalReason(),
		o.CreatedAt(), o.AcceptedAt(), o.ReadyAt(), o.AssignedAt(),
		o.PickedUpAt(), o.DeliveredAt(), o.CancelledAt())
	if err != nil {
		panic(err)
	}
	return clone
}

func cloneAssignment(a *assignment.Assignment) *assignment.Assignment {
	clone, err := assignment.RestoreAssignment(
		a.ID(), a.OrderID(), a.DeliveryPerson(), a.AssignedBy(), a.Status(),
		a.AssignedAt(), a.AcceptedAt(), a.RefusedAt(), a.PickedUpAt(), a.DeliveredAt(),
		a.RefusalReason(), a.Notes())
	if err != nil {
		panic(err)
	}
	return clone
}

func clonePayment(p *payment.Payment) *payment.Payment {
	clone, err := payment.RestorePayment(
		p.ID(), p.OrderID(), p.Token(), p.InvoiceURL(), p.Amount(), p.Status(),
		p.TransactionID(), p.FailureReason(), p.CreatedAt(), p.CompletedAt())
	if err != nil {
		panic(err)
	}
	return clone
}

func cloneCourier(d *courier.DeliveryPerson) *courier.DeliveryPerson {
	clone, err := courier.RestoreDeliveryPerson(
		d.ID(), d.Name(), d.Phone(), d.IsAvailable(),
		d.TotalDeliveries(), d.AverageRating(), d.RatingCount())
	if err != nil {
		panic(err)
	}
	return clone
}

type fakeOrderRepo struct{ s *fakeStore }

func (r fakeOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.orders {
		if existing.Number().IsEqual(o.Number()) {
			return errs.NewDuplicateError("order", o.Number().String())
		}
	}
	r.s.orders[o.ID()] = cloneOrder(o)
	return nil
}

func (r fakeOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return cloneOrder(stored), nil
}

func (r fakeOrderRepo) GetByNumber(_ context.Context, number kernel.OrderNumber) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, stored := range r.s.orders {
		if stored.Number().IsEqual(number) {
			return cloneOrder(stored), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", number.String())
}

func (r fakeOrderRepo) UpdateTransition(_ context.Context, o *order.Order, prev order.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.orders[o.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	if stored.Status() != prev {
		return errs.NewConflictError("order", o.ID().String())
	}
	r.s.orders[o.ID()] = cloneOrder(o)
	return nil
}

type fakeAssignmentRepo struct{ s *fakeStore }

func (r fakeAssignmentRepo) Add(_ context.Context, a *assignment.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.assignments {
		if existing.OrderID().IsEqual(a.OrderID()) && existing.Status() != assignment.Refused {
			return errs.NewDuplicateError("assignment", a.OrderID().String())
		}
	}
	r.s.assignments[a.ID()] = cloneAssignment(a)
	return nil
}

func (r fakeAssignmentRepo) Get(_ context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.assignments[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("assignment", id)
	}
	return cloneAssignment(stored), nil
}

func (r fakeAssignmentRepo) GetActiveByOrder(_ context.Context, orderID kernel.UUID) (*assignment.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, stored := range r.s.assignments {
		if stored.OrderID().IsEqual(orderID) && stored.Status() != assignment.Refused {
			return cloneAssignment(stored), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("assignment", orderID)
}

func (r fakeAssignmentRepo) UpdateTransition(_ context.Context, a *assignment.Assignment, prev assignment.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.assignments[a.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("assignment", a.ID())
	}
	if stored.Status() != prev {
		return errs.NewConflictError("assignment", a.ID().String())
	}
	r.s.assignments[a.ID()] = cloneAssignment(a)
	return nil
}

func (r fakeAssignmentRepo) AddLocation(_ context.Context, l *assignment.LocationUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locations = append(r.s.locations, l)
	return nil
}

type fakePaymentRepo struct{ s *fakeStore }

func (r fakePaymentRepo) Add(_ context.Context, p *payment.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.payments {
		if existing.OrderID().IsEqual(p.OrderID()) {
			return errs.NewDuplicateError("payment", p.OrderID().String())
		}
	}
	r.s.payments[p.ID()] = clonePayment(p)
	return nil
}

func (r fakePaymentRepo) Get(_ context.Context, id kernel.UUID) (*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.payments[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("payment", id)
	}
	return clonePayment(stored), nil
}

func (r fakePaymentRepo) GetByOrder(_ context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, stored := range r.s.payments {
		if stored.OrderID().IsEqual(orderID) {
			return clonePayment(stored), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("payment", orderID)
}

func (r fakePaymentRepo) GetByToken(_ context.Context, token string) (*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, stored := range r.s.payments {
		if stored.Token() == token && token != "" {
			return clonePayment(stored), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("payment", token)
}

func (r fakePaymentRepo) GetAllProcessing(_ context.Context) ([]*payment.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*payment.Payment
	for _, stored := range r.s.payments {
		if stored.Status() == payment.Processing {
			out = append(out, clonePayment(stored))
		}
	}
	return out, nil
}

func (r fakePaymentRepo) UpdateTransition(_ context.Context, p *payment.Payment, prev payment.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.payments[p.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("payment", p.ID())
	}
	if stored.Status() != prev {
		return errs.NewConflictError("payment", p.ID().String())
	}
	r.s.payments[p.ID()] = clonePayment(p)
	return nil
}

type fakeWebhookRepo struct{ s *fakeStore }

func (r fakeWebhookRepo) Add(_ context.Context, w *payment.WebhookRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.webhooks[w.ID()] = w
	return nil
}

func (r fakeWebhookRepo) Update(_ context.Context, w *payment.WebhookRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.webhooks[w.ID()] = w
	return nil
}

type fakeCourierRepo struct{ s *fakeStore }

func (r fakeCourierRepo) Add(_ context.Context, d *courier.DeliveryPerson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.couriers[d.ID()] = cloneCourier(d)
	return nil
}

func (r fakeCourierRepo) Get(_ context.Context, id kernel.UUID) (*courier.DeliveryPerson, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.couriers[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery person", id)
	}
	return cloneCourier(stored), nil
}

func (r fakeCourierRepo) Update(_ context.Context, d *courier.DeliveryPerson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.couriers[d.ID()]; !ok {
		return errs.NewObjectNotFoundError("delivery person", d.ID())
	}
	r.s.couriers[d.ID()] = cloneCourier(d)
	return nil
}

type fakeRatingRepo struct{ s *fakeStore }

func (r fakeRatingRepo) AddDeliveryRating(_ context.Context, dr *rating.DeliveryRating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := dr.OrderID().String() + "|" + dr.DeliveryPersonID().String()
	if _, ok := r.s.deliveryRatings[key]; ok {
		return errs.NewDuplicateError("delivery rating", key)
	}
	r.s.deliveryRatings[key] = dr.Score()
	return nil
}

func (r fakeRatingRepo) AddMenuItemRating(_ context.Context, mr *rating.MenuItemRating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := mr.OrderItemID().String() + "|" + mr.DeviceID()
	if _, ok := r.s.menuRatings[key]; ok {
		return errs.NewDuplicateError("menu item rating", key)
	}
	r.s.menuRatings[key] = mr.Score()
	r.s.menuRatingItems[key] = mr.MenuItemID()
	return nil
}

func (r fakeRatingRepo) ComputeDeliveryAggregate(_ context.Context, deliveryPersonID kernel.UUID) (ports.RatingAggregate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	suffix := "|" + deliveryPersonID.String()
	sum, count := 0, 0
	for key, score := range r.s.deliveryRatings {
		if len(key) > len(suffix) && key[len(key)-len(suffix):] == suffix {
			sum += score
			count++
		}
	}
	if count == 0 {
		return ports.RatingAggregate{}, nil
	}
	return ports.RatingAggregate{Average: float64(sum) / float64(count), Count: count}, nil
}

func (r fakeRatingRepo) ComputeMenuItemAggregate(_ context.Context, menuItemID kernel.UUID) (ports.RatingAggregate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum, count := 0, 0
	for key, itemID := range r.s.menuRatingItems {
		if itemID.IsEqual(menuItemID) {
			sum += r.s.menuRatings[key]
			count++
		}
	}
	if count == 0 {
		return ports.RatingAggregate{}, nil
	}
	return ports.RatingAggregate{Average: float64(sum) / float64(count), Count: count}, nil
}

func (r fakeRatingRepo) UpdateMenuItemAggregate(_ context.Context, menuItemID kernel.UUID, agg ports.RatingAggregate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.menuAggregates[menuItemID] = agg
	return nil
}

// fakeUoW applies writes directly to the store; transaction demarcation is a
// no-op since the store's own locking provides the atomicity the tests need.
type fakeUoW struct{ s *fakeStore }

func (u fakeUoW) Begin(context.Context) error    { return nil }
func (u fakeUoW) Commit(context.Context) error   { return nil }
func (u fakeUoW) Rollback(context.Context) error { return nil }

func (u fakeUoW) OrderRepository() ports.OrderRepository           { return fakeOrderRepo{u.s} }
func (u fakeUoW) AssignmentRepository() ports.AssignmentRepository { return fakeAssignmentRepo{u.s} }
func (u fakeUoW) PaymentRepository() ports.PaymentRepository       { return fakePaymentRepo{u.s} }
func (u fakeUoW) WebhookRepository() ports.WebhookRepository       { return fakeWebhookRepo{u.s} }
func (u fakeUoW) CourierRepository() ports.CourierRepository       { return fakeCourierRepo{u.s} }
func (u fakeUoW) RatingRepository() ports.RatingRepository         { return fakeRatingRepo{u.s} }

// Narrowed factories for each handler family.
type orderUoWFactory struct{ s *fakeStore }

func (f orderUoWFactory) Create() commands.OrderUoW { return fakeUoW{f.s} }

type assignmentUoWFactory struct{ s *fakeStore }

func (f assignmentUoWFactory) Create() commands.AssignmentUoW { return fakeUoW{f.s} }

type paymentUoWFactory struct{ s *fakeStore }

func (f paymentUoWFactory) Create() commands.PaymentUoW { return fakeUoW{f.s} }

type webhookUoWFactory struct{ s *fakeStore }

func (f webhookUoWFactory) Create() commands.WebhookUoW { return fakeUoW{f.s} }

type ratingUoWFactory struct{ s *fakeStore }

func (f ratingUoWFactory) Create() commands.RatingUoW { return fakeUoW{f.s} }

// fakeStaff marks a fixed set of users as managers.
type fakeStaff struct {
	managers map[kernel.UUID]bool
	staff    []kernel.UUID
}

func newFakeStaff(managers ...kernel.UUID) *fakeStaff {
	s := &fakeStaff{managers: make(map[kernel.UUID]bool)}
	for _, id := range managers {
		s.managers[id] = true
		s.staff = append(s.staff, id)
	}
	return s
}

func (s *fakeStaff) IsManager(_ context.Context, userID kernel.UUID) (bool, error) {
	return s.managers[userID], nil
}

func (s *fakeStaff) ListStaff(context.Context) ([]kernel.UUID, error) {
	return s.staff, nil
}

// sentNotification captures one dispatched notification.
type sentNotification struct {
	recipient notification.Recipient
	kind      notification.Type
	title     string
	broadcast bool
}

// fakeDispatcher records every dispatched notification synchronously.
type fakeDispatcher struct {
	mu   sync.Mutex
	sent []sentNotification
}

func (d *fakeDispatcher) Send(_ context.Context, recipient notification.Recipient,
	kind notification.Type, title, _ string, _ map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentNotification{recipient: recipient, kind: kind, title: title})
}

func (d *fakeDispatcher) BroadcastToStaff(_ context.Context,
	kind notification.Type, title, _ string, _ map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentNotification{kind: kind, title: title, broadcast: true})
}

func (d *fakeDispatcher) countTitled(title string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, s := range d.sent {
		if s.title == title {
			n++
		}
	}
	return n
}

// fakeProvider answers invoice calls with canned results.
type fakeProvider struct {
	mu sync.Mutex

	createErr     error
	token         string
	redirectURL   string
	confirmStatus payment.Status
	confirmTxnID  string
	confirmErr    error

	createCalls int
}

func (p *fakeProvider) CreateInvoice(_ context.Context, _ int64, _, _ string) (string, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.createCalls++
	if p.createErr != nil {
		return "", "", p.createErr
	}
	return p.token, p.redirectURL, nil
}

func (p *fakeProvider) ConfirmInvoice(_ context.Context, _ string) (payment.Status, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.confirmErr != nil {
		return payment.Unknown, "", p.confirmErr
	}
	return p.confirmStatus, p.confirmTxnID, nil
}
