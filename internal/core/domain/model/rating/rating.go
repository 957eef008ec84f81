package rating

import (
	"errors"
	"fmt"
	"time"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"
)

const (
	// MinScore is the lowest accepted rating value.
	MinScore = 1
	// MaxScore is the highest accepted rating value.
	MaxScore = 5
)

var (
	// ErrDeliveryRatingIsNotConstructed is returned when a DeliveryRating was
	// not created through a constructor.
	ErrDeliveryRatingIsNotConstructed = errors.New(
		"DeliveryRating must be created via NewDeliveryRating or RestoreDeliveryRating")

	// ErrMenuItemRatingIsNotConstructed is returned when a MenuItemRating was
	// not created through a constructor.
	ErrMenuItemRatingIsNotConstructed = errors.New(
		"MenuItemRating must be created via NewMenuItemRating or RestoreMenuItemRating")
)

func validateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return errs.NewValueIsInvalidErrorWithCause("rating",
			fmt.Errorf("%d is outside [%d, %d]", score, MinScore, MaxScore))
	}
	return nil
}

// DeliveryRating is a write-once score a customer device gives the delivery
// person of one delivered order. Uniqueness per (order, delivery person) is
// enforced by storage.
type DeliveryRating struct {
	id               kernel.UUID
	orderID          kernel.UUID
	deliveryPersonID kernel.UUID
	deviceID         string

	score   int
	comment string

	createdAt time.Time

	guard kernel.ConstructorGuard
}

// NewDeliveryRating creates a delivery rating with score in [1, 5].
func NewDeliveryRating(
	id, orderID, deliveryPersonID kernel.UUID,
	deviceID string,
	score int,
	comment string,
) (*DeliveryRating, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		deliveryPersonID.Validate(),
		validateScore(score),
	); err != nil {
		return nil, err
	}
	if deviceID == "" {
		return nil, errs.NewValueIsRequiredError("device id")
	}

	return &DeliveryRating{
		id:               id,
		orderID:          orderID,
		deliveryPersonID: deliveryPersonID,
		deviceID:         deviceID,
		score:            score,
		comment:          comment,
		createdAt:        time.Now().UTC(),
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryRating reconstructs a delivery rating from persistence.
func RestoreDeliveryRating(
	id, orderID, deliveryPersonID kernel.UUID,
	deviceID string,
	score int,
	comment string,
	createdAt time.Time,
) (*DeliveryRating, error) {
	r, err := NewDeliveryRating(id, orderID, deliveryPersonID, deviceID, score, comment)
	if err != nil {
		return nil, err
	}
	r.createdAt = createdAt
	return r, nil
}

// Validate ensures the DeliveryRating was created via a constructor.
func (r *DeliveryRating) Validate() error {
	if r == nil {
		return ErrDeliveryRatingIsNotConstructed
	}
	return r.guard.Validate(ErrDeliveryRatingIsNotConstructed)
}

func (r *DeliveryRating) ID() kernel.UUID               { return r.id }
func (r *DeliveryRating) OrderID() kernel.UUID          { return r.orderID }
func (r *DeliveryRating) DeliveryPersonID() kernel.UUID { return r.deliveryPersonID }
func (r *DeliveryRating) DeviceID() string              { return r.deviceID }
func (r *DeliveryRating) Score() int                    { return r.score }
func (r *DeliveryRating) Comment() string               { return r.comment }
func (r *DeliveryRating) CreatedAt() time.Time          { return r.createdAt }

// MenuItemRating is a write-once score a customer device gives one ordered
// menu item. Uniqueness per (order item, device) is enforced by storage.
type MenuItemRating struct {
	id          kernel.UUID
	menuItemID  kernel.UUID
	orderItemID kernel.UUID
	deviceID    string

	score   int
	comment string

	createdAt time.Time

	guard kernel.ConstructorGuard
}

// NewMenuItemRating creates a menu item rating with score in [1, 5].
func NewMenuItemRating(
	id, menuItemID, orderItemID kernel.UUID,
	deviceID string,
	score int,
	comment string,
) (*MenuItemRating, error) {
	if err := errors.Join(
		id.Validate(),
		menuItemID.Validate(),
		orderItemID.Validate(),
		validateScore(score),
	); err != nil {
		return nil, err
	}
	if deviceID == "" {
		return nil, errs.NewValueIsRequiredError("device id")
	}

	return &MenuItemRating{
		id:          id,
		menuItemID:  menuItemID,
		orderItemID: orderItemID,
		deviceID:    deviceID,
		score:       score,
		comment:     comment,
		createdAt:   time.Now().UTC(),
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// RestoreMenuItemRating reconstructs a menu item rating from persistence.
func RestoreMenuItemRating(
	id, menuItemID, orderItemID kernel.UUID,
	deviceID string,
	score int,
	comment string,
	createdAt time.Time,
) (*MenuItemRating, error) {
	r, err := NewMenuItemRating(id, menuItemID, orderItemID, deviceID, score, comment)
	if err != nil {
		return nil, err
	}
	r.createdAt = createdAt
	return r, nil
}

// Validate ensures the MenuItemRating was created via a constructor.
func (r *MenuItemRating) Validate() error {
	if r == nil {
		return ErrMenuItemRatingIsNotConstructed
	}
	return r.guard.Validate(ErrMenuItemRatingIsNotConstructed)
}

func (r *MenuItemRating) ID() kernel.UUID          { return r.id }
func (r *MenuItemRating) MenuItemID() kernel.UUID  { return r.menuItemID }
func (r *MenuItemRating) OrderItemID() kernel.UUID { return r.orderItemID }
func (r *MenuItemRating) DeviceID() string         { return r.deviceID }
func (r *MenuItemRating) Score() int               { return r.score }
func (r *MenuItemRating) Comment() string          { return r.comment }
func (r *MenuItemRating) CreatedAt() time.Time     { return r.createdAt }
