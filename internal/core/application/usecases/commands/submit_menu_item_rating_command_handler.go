package commands

import (
	"context"

	"restoonline/internal/core/domain/model/rating"
	"restoonline/internal/pkg/keylock"
)

// SubmitMenuItemRatingCommandHandler stores a menu item rating and
// recomputes the item's aggregate columns under the per-item lock.
type SubmitMenuItemRatingCommandHandler struct {
	uowFactory RatingUoWFactory
	locks      *keylock.KeyLock
}

// NewSubmitMenuItemRatingCommandHandler creates a handler for menu item ratings.
func NewSubmitMenuItemRatingCommandHandler(
	uowFactory RatingUoWFactory,
	locks *keylock.KeyLock,
) SubmitMenuItemRatingCommandHandler {
	return SubmitMenuItemRatingCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
	}
}

// Handle stores the rating and refreshes the menu item aggregate.
func (h SubmitMenuItemRatingCommandHandler) Handle(ctx context.Context, cmd SubmitMenuItemRatingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newRating, err := rating.NewMenuItemRating(
		cmd.RatingID(), cmd.MenuItemID(), cmd.OrderItemID(),
		cmd.DeviceID().String(), cmd.Score(), cmd.Comment())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ratingRepo := uow.RatingRepository()
	if err = ratingRepo.AddMenuItemRating(ctx, newRating); err != nil {
		return err
	}

	key := "menuitem:" + cmd.MenuItemID().String()
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	agg, err := ratingRepo.ComputeMenuItemAggregate(ctx, cmd.MenuItemID())
	if err != nil {
		return err
	}
	agg.Average = roundAverage(agg.Average)

	if err = ratingRepo.UpdateMenuItemAggregate(ctx, cmd.MenuItemID(), agg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
