package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/rating"
	"restoonline/internal/pkg/errs"
)

var ErrSubmitDeliveryRatingCommandIsNotConstructed = errors.New(
	"SubmitDeliveryRatingCommand must be created via NewSubmitDeliveryRatingCommand constructor")

// SubmitDeliveryRatingCommand is a customer device's score for the delivery
// of one order.
type SubmitDeliveryRatingCommand struct { //nolint:recvcheck //using for validation
	ratingID kernel.UUID
	orderID  kernel.UUID
	deviceID kernel.UUID
	score    int
	comment  string

	guard kernel.ConstructorGuard
}

// NewSubmitDeliveryRatingCommand validates and creates the command.
func NewSubmitDeliveryRatingCommand(
	ratingID, orderID, deviceID kernel.UUID,
	score int,
	comment string,
) (SubmitDeliveryRatingCommand, error) {
	if err := errors.Join(
		ratingID.Validate(),
		orderID.Validate(),
		deviceID.Validate(),
	); err != nil {
		return SubmitDeliveryRatingCommand{}, err
	}
	if score < rating.MinScore || score > rating.MaxScore {
		return SubmitDeliveryRatingCommand{}, errs.NewValueIsInvalidError("rating")
	}

	return SubmitDeliveryRatingCommand{
		ratingID: ratingID,
		orderID:  orderID,
		deviceID: deviceID,
		score:    score,
		comment:  comment,
		guard:    kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitDeliveryRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitDeliveryRatingCommandIsNotConstructed)
}

func (c SubmitDeliveryRatingCommand) RatingID() kernel.UUID { return c.ratingID }
func (c SubmitDeliveryRatingCommand) OrderID() kernel.UUID  { return c.orderID }
func (c SubmitDeliveryRatingCommand) DeviceID() kernel.UUID { return c.deviceID }
func (c SubmitDeliveryRatingCommand) Score() int            { return c.score }
func (c SubmitDeliveryRatingCommand) Comment() string       { return c.comment }
