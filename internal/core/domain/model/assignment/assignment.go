package assignment

import (
	"errors"
	"time"

	"restoonline/internal/core/domain/model/kernel"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment was not
// created through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment")

// Assignment binds an order to a delivery person for one delivery attempt.
// Audit timestamps are retained for the whole life of the instance,
// including after refusal; refusal only adds refused_at and the reason.
type Assignment struct {
	id               kernel.UUID
	orderID          kernel.UUID
	deliveryPersonID kernel.UUID
	assignedByID     *kernel.UUID

	status Status

	assignedAt  time.Time
	acceptedAt  *time.Time
	refusedAt   *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	refusalReason string
	notes         string

	guard kernel.ConstructorGuard
}

// NewAssignment creates an assignment in the assigned status. assignedByID
// identifies the manager who created it and may be nil for automatic
// dispatch.
func NewAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	deliveryPersonID kernel.UUID,
	assignedByID *kernel.UUID,
	notes string,
) (*Assignment, error) {
	a := &Assignment{
		assignedByID: assignedByID,
		status:       Assigned,
		assignedAt:   time.Now().UTC(),
		notes:        notes,
		guard:        kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setDeliveryPersonID(deliveryPersonID),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	deliveryPersonID kernel.UUID,
	assignedByID *kernel.UUID,
	status Status,
	assignedAt time.Time,
	acceptedAt, refusedAt, pickedUpAt, deliveredAt *time.Time,
	refusalReason string,
	notes string,
) (*Assignment, error) {
	a := &Assignment{
		assignedByID:  assignedByID,
		assignedAt:    assignedAt,
		acceptedAt:    acceptedAt,
		refusedAt:     refusedAt,
		pickedUpAt:    pickedUpAt,
		deliveredAt:   deliveredAt,
		refusalReason: refusalReason,
		notes:         notes,
		guard:         kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setOrderID(orderID),
		a.setDeliveryPersonID(deliveryPersonID),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	a.status = status

	return a, nil
}

// Validate ensures the Assignment was created via a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) ID() kernel.UUID               { return a.id }
func (a *Assignment) OrderID() kernel.UUID          { return a.orderID }
func (a *Assignment) DeliveryPerson() kernel.UUID   { return a.deliveryPersonID }
func (a *Assignment) AssignedBy() *kernel.UUID      { return a.assignedByID }
func (a *Assignment) Status() Status                { return a.status }
func (a *Assignment) AssignedAt() time.Time         { return a.assignedAt }
func (a *Assignment) AcceptedAt() *time.Time        { return a.acceptedAt }
func (a *Assignment) RefusedAt() *time.Time         { return a.refusedAt }
func (a *Assignment) PickedUpAt() *time.Time        { return a.pickedUpAt }
func (a *Assignment) DeliveredAt() *time.Time       { return a.deliveredAt }
func (a *Assignment) RefusalReason() string         { return a.refusalReason }
func (a *Assignment) Notes() string                 { return a.notes }

// IsHeldBy reports whether the given user is the assigned delivery person.
func (a *Assignment) IsHeldBy(deliveryPersonID kernel.UUID) bool {
	return a.deliveryPersonID.IsEqual(deliveryPersonID)
}

// Accept moves the assignment from assigned to accepted.
func (a *Assignment) Accept() error {
	newStatus, err := a.status.Accept()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	a.status = newStatus
	a.acceptedAt = &now
	return nil
}

// Refuse moves the assignment from assigned to refused and stores the
// reason. The reason may be empty.
func (a *Assignment) Refuse(reason string) error {
	newStatus, err := a.status.Refuse()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	a.status = newStatus
	a.refusedAt = &now
	a.refusalReason = reason
	return nil
}

// Pickup moves the assignment from accepted to picked_up.
func (a *Assignment) Pickup() error {
	newStatus, err := a.status.Pickup()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	a.status = newStatus
	a.pickedUpAt = &now
	return nil
}

// Complete moves the assignment from picked_up to delivered.
func (a *Assignment) Complete() error {
	newStatus, err := a.status.Complete()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	a.status = newStatus
	a.deliveredAt = &now
	return nil
}

// DeliveryDuration derives how long the delivery took from the pickup and
// delivery timestamps. Used for reporting only; it is not an invariant.
func (a *Assignment) DeliveryDuration() (time.Duration, bool) {
	if a.pickedUpAt == nil || a.deliveredAt == nil {
		return 0, false
	}
	return a.deliveredAt.Sub(*a.pickedUpAt), true
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Assignment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	a.orderID = orderID
	return nil
}

func (a *Assignment) setDeliveryPersonID(deliveryPersonID kernel.UUID) error {
	if err := deliveryPersonID.Validate(); err != nil {
		return err
	}
	a.deliveryPersonID = deliveryPersonID
	return nil
}
