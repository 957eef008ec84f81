package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/rating"
	"restoonline/internal/pkg/errs"
)

var ErrSubmitMenuItemRatingCommandIsNotConstructed = errors.New(
	"SubmitMenuItemRatingCommand must be created via NewSubmitMenuItemRatingCommand constructor")

// SubmitMenuItemRatingCommand is a customer device's score for one ordered
// menu item.
type SubmitMenuItemRatingCommand struct { //nolint:recvcheck //using for validation
	ratingID    kernel.UUID
	menuItemID  kernel.UUID
	orderItemID kernel.UUID
	deviceID    kernel.UUID
	score       int
	comment     string

	guard kernel.ConstructorGuard
}

// NewSubmitMenuItemRatingCommand validates and creates the command.
func NewSubmitMenuItemRatingCommand(
	ratingID, menuItemID, orderItemID, deviceID kernel.UUID,
	score int,
	comment string,
) (SubmitMenuItemRatingCommand, error) {
	if err := errors.Join(
		ratingID.Validate(),
		menuItemID.Validate(),
		orderItemID.Validate(),
		deviceID.Validate(),
	); err != nil {
		return SubmitMenuItemRatingCommand{}, err
	}
	if score < rating.MinScore || score > rating.MaxScore {
		return SubmitMenuItemRatingCommand{}, errs.NewValueIsInvalidError("rating")
	}

	return SubmitMenuItemRatingCommand{
		ratingID:    ratingID,
		menuItemID:  menuItemID,
		orderItemID: orderItemID,
		deviceID:    deviceID,
		score:       score,
		comment:     comment,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitMenuItemRatingCommand) Validate() error {
	return c.guard.Validate(ErrSubmitMenuItemRatingCommandIsNotConstructed)
}

func (c SubmitMenuItemRatingCommand) RatingID() kernel.UUID    { return c.ratingID }
func (c SubmitMenuItemRatingCommand) MenuItemID() kernel.UUID  { return c.menuItemID }
func (c SubmitMenuItemRatingCommand) OrderItemID() kernel.UUID { return c.orderItemID }
func (c SubmitMenuItemRatingCommand) DeviceID() kernel.UUID    { return c.deviceID }
func (c SubmitMenuItemRatingCommand) Score() int               { return c.score }
func (c SubmitMenuItemRatingCommand) Comment() string          { return c.comment }
