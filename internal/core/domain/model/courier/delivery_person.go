package courier

import (
	"errors"
	"fmt"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"
)

var (
	// ErrNameIsRequired is returned when creating a delivery person without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")

	// ErrPhoneIsRequired is returned when creating a delivery person without a phone number.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")

	// ErrDeliveryPersonIsNotConstructed is returned when a DeliveryPerson was not
	// created through NewDeliveryPerson or RestoreDeliveryPerson.
	ErrDeliveryPersonIsNotConstructed = errors.New(
		"DeliveryPerson must be created via NewDeliveryPerson or RestoreDeliveryPerson")
)

// DeliveryPerson is the aggregate for a courier on the roster.
//
// totalDeliveries, averageRating and ratingCount are denormalized values
// owned by this aggregate but recomputed by the application layer from the
// assignment and rating tables, not incremented blindly by callers.
type DeliveryPerson struct {
	id    kernel.UUID
	name  string
	phone string

	available bool

	totalDeliveries int
	averageRating   float64
	ratingCount     int

	guard kernel.ConstructorGuard
}

// NewDeliveryPerson creates a delivery person with zeroed performance
// counters, available for assignments.
func NewDeliveryPerson(id kernel.UUID, name, phone string) (*DeliveryPerson, error) {
	d := &DeliveryPerson{
		available: true,
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setPhone(phone),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDeliveryPerson reconstructs a delivery person from persistence.
func RestoreDeliveryPerson(
	id kernel.UUID,
	name, phone string,
	available bool,
	totalDeliveries int,
	averageRating float64,
	ratingCount int,
) (*DeliveryPerson, error) {
	d := &DeliveryPerson{
		available: available,
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setPhone(phone),
	); err != nil {
		return nil, err
	}

	if totalDeliveries < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("total deliveries",
			fmt.Errorf("%d is negative", totalDeliveries))
	}
	if err := validateAggregate(averageRating, ratingCount); err != nil {
		return nil, err
	}
	d.totalDeliveries = totalDeliveries
	d.averageRating = averageRating
	d.ratingCount = ratingCount

	return d, nil
}

// Validate ensures the DeliveryPerson was created via a constructor.
func (d *DeliveryPerson) Validate() error {
	if d == nil {
		return ErrDeliveryPersonIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryPersonIsNotConstructed)
}

func (d *DeliveryPerson) ID() kernel.UUID        { return d.id }
func (d *DeliveryPerson) Name() string           { return d.name }
func (d *DeliveryPerson) Phone() string          { return d.phone }
func (d *DeliveryPerson) IsAvailable() bool      { return d.available }
func (d *DeliveryPerson) TotalDeliveries() int   { return d.totalDeliveries }
func (d *DeliveryPerson) AverageRating() float64 { return d.averageRating }
func (d *DeliveryPerson) RatingCount() int       { return d.ratingCount }

// SetAvailable toggles whether the person may receive new assignments.
func (d *DeliveryPerson) SetAvailable(available bool) {
	d.available = available
}

// IncrementDeliveries bumps the completed-delivery counter. Called by the
// application after an assignment reaches delivered.
func (d *DeliveryPerson) IncrementDeliveries() {
	d.totalDeliveries++
}

// ApplyRatingAggregate replaces the rating aggregate with freshly computed
// values. The average is rounded by the caller; here it only has to be
// consistent with the count.
func (d *DeliveryPerson) ApplyRatingAggregate(average float64, count int) error {
	if err := validateAggregate(average, count); err != nil {
		return err
	}
	d.averageRating = average
	d.ratingCount = count
	return nil
}

func validateAggregate(average float64, count int) error {
	if count < 0 {
		return errs.NewValueIsInvalidErrorWithCause("rating count",
			fmt.Errorf("%d is negative", count))
	}
	if count == 0 && average != 0 {
		return errs.NewValueIsInvalidErrorWithCause("average rating",
			fmt.Errorf("%g with no ratings", average))
	}
	if count > 0 && (average < 1 || average > 5) {
		return errs.NewValueIsInvalidErrorWithCause("average rating",
			fmt.Errorf("%g is outside [1, 5]", average))
	}
	return nil
}

func (d *DeliveryPerson) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *DeliveryPerson) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *DeliveryPerson) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	d.phone = phone
	return nil
}
