package order

import (
	"errors"
	"fmt"
	"time"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrReasonIsRequired is returned when refusing or cancelling without a reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// Order is the aggregate root for a customer purchase request. It owns the
// order status state machine and the pricing invariant
// total == subtotal + delivery_fee, which is fixed at creation.
//
// The delivery-person reference is set exactly while an active (non-refused)
// delivery assignment exists for the order; on assignment refusal the
// reference is cleared together with the assigned -> ready transition.
//
// All mutations go through guarded transition methods; on any error the
// aggregate is left unchanged.
type Order struct {
	id       kernel.UUID
	number   kernel.OrderNumber
	deviceID kernel.UUID

	managerID        *kernel.UUID
	deliveryPersonID *kernel.UUID

	subtotal    int64
	deliveryFee int64
	total       int64

	status Status
	notes  string

	cancellationReason string
	refusalReason      string

	createdAt   time.Time
	acceptedAt  *time.Time
	readyAt     *time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	guard kernel.ConstructorGuard
}

// NewOrder creates a pending order. Amounts are minor currency units;
// subtotal must be positive, deliveryFee non-negative. The total is derived
// here and never recomputed afterwards.
func NewOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	deviceID kernel.UUID,
	subtotal int64,
	deliveryFee int64,
	notes string,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		notes:     notes,
		createdAt: time.Now().UTC(),
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setDeviceID(deviceID),
		o.setAmounts(subtotal, deliveryFee),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. Unlike NewOrder it
// accepts any valid status and the audit timestamps as stored.
func RestoreOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	deviceID kernel.UUID,
	managerID *kernel.UUID,
	deliveryPersonID *kernel.UUID,
	subtotal int64,
	deliveryFee int64,
	total int64,
	status Status,
	notes string,
	cancellationReason string,
	refusalReason string,
	createdAt time.Time,
	acceptedAt, readyAt, assignedAt, pickedUpAt, deliveredAt, cancelledAt *time.Time,
) (*Order, error) {
	o := &Order{
		managerID:          managerID,
		deliveryPersonID:   deliveryPersonID,
		notes:              notes,
		cancellationReason: cancellationReason,
		refusalReason:      refusalReason,
		createdAt:          createdAt,
		acceptedAt:         acceptedAt,
		readyAt:            readyAt,
		assignedAt:         assignedAt,
		pickedUpAt:         pickedUpAt,
		deliveredAt:        deliveredAt,
		cancelledAt:        cancelledAt,
		guard:              kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setDeviceID(deviceID),
		o.setAmounts(subtotal, deliveryFee),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if total != o.total {
		return nil, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%d does not equal subtotal %d + delivery fee %d", total, subtotal, deliveryFee))
	}
	o.status = status

	return o, nil
}

// Validate ensures the Order was created via a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID             { return o.id }
func (o *Order) Number() kernel.OrderNumber  { return o.number }
func (o *Order) DeviceID() kernel.UUID       { return o.deviceID }
func (o *Order) Manager() *kernel.UUID       { return o.managerID }
func (o *Order) DeliveryPerson() *kernel.UUID { return o.deliveryPersonID }
func (o *Order) Subtotal() int64             { return o.subtotal }
func (o *Order) DeliveryFee() int64          { return o.deliveryFee }
func (o *Order) Total() int64                { return o.total }
func (o *Order) Status() Status              { return o.status }
func (o *Order) Notes() string               { return o.notes }
func (o *Order) CancellationReason() string  { return o.cancellationReason }
func (o *Order) RefusalReason() string       { return o.refusalReason }
func (o *Order) CreatedAt() time.Time        { return o.createdAt }
func (o *Order) AcceptedAt() *time.Time      { return o.acceptedAt }
func (o *Order) ReadyAt() *time.Time         { return o.readyAt }
func (o *Order) AssignedAt() *time.Time      { return o.assignedAt }
func (o *Order) PickedUpAt() *time.Time      { return o.pickedUpAt }
func (o *Order) DeliveredAt() *time.Time     { return o.deliveredAt }
func (o *Order) CancelledAt() *time.Time     { return o.cancelledAt }

// Accept moves the order from pending to accepted on behalf of a manager.
// A nil managerID records an acceptance triggered by a completed payment.
func (o *Order) Accept(managerID *kernel.UUID) error {
	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.managerID = managerID
	o.acceptedAt = &now
	return nil
}

// Refuse moves the order from pending to refused. A reason is required.
func (o *Order) Refuse(managerID kernel.UUID, reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	newStatus, err := o.status.Refuse()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.managerID = &managerID
	o.refusalReason = reason
	return nil
}

// StartPreparing moves the order from accepted to preparing.
func (o *Order) StartPreparing() error {
	newStatus, err := o.status.StartPreparing()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkReady moves the order from preparing to ready.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.MarkReady()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.readyAt = &now
	return nil
}

// AssignTo moves the order from ready to assigned and records the delivery
// person. Called only by the assignment creation cascade.
func (o *Order) AssignTo(deliveryPersonID kernel.UUID) error {
	if err := deliveryPersonID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.deliveryPersonID = &deliveryPersonID
	o.assignedAt = &now
	return nil
}

// Release moves the order from assigned back to ready and clears the
// delivery-person reference. Called by the assignment refusal cascade.
func (o *Order) Release() error {
	newStatus, err := o.status.Release()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveryPersonID = nil
	return nil
}

// StartDelivery moves the order from assigned to in_delivery. Called by the
// assignment pickup cascade.
func (o *Order) StartDelivery() error {
	newStatus, err := o.status.StartDelivery()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.pickedUpAt = &now
	return nil
}

// Deliver moves the order from in_delivery to delivered. Called by the
// assignment completion cascade.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.deliveredAt = &now
	return nil
}

// Cancel moves the order from any non-terminal status to cancelled.
// A reason is required.
func (o *Order) Cancel(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	o.status = newStatus
	o.cancellationReason = reason
	o.cancelledAt = &now
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setDeviceID(deviceID kernel.UUID) error {
	if err := deviceID.Validate(); err != nil {
		return err
	}
	o.deviceID = deviceID
	return nil
}

func (o *Order) setAmounts(subtotal, deliveryFee int64) error {
	if subtotal <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%d is not greater than 0", subtotal))
	}
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee",
			fmt.Errorf("%d is negative", deliveryFee))
	}
	o.subtotal = subtotal
	o.deliveryFee = deliveryFee
	o.total = subtotal + deliveryFee
	return nil
}
