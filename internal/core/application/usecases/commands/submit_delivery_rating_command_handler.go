package commands

import (
	"context"
	"math"

	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/domain/model/order"
	"restoonline/internal/core/domain/model/rating"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"
	"restoonline/internal/pkg/keylock"
)

// SubmitDeliveryRatingCommandHandler stores a delivery rating and
// recomputes the courier's aggregate from a full scan. Recomputation
// serializes per courier through the key lock; ratings for different
// couriers proceed independently.
type SubmitDeliveryRatingCommandHandler struct {
	uowFactory RatingUoWFactory
	locks      *keylock.KeyLock
	dispatcher ports.NotificationDispatcher
}

// NewSubmitDeliveryRatingCommandHandler creates a handler for delivery ratings.
func NewSubmitDeliveryRatingCommandHandler(
	uowFactory RatingUoWFactory,
	locks *keylock.KeyLock,
	dispatcher ports.NotificationDispatcher,
) SubmitDeliveryRatingCommandHandler {
	return SubmitDeliveryRatingCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		dispatcher: dispatcher,
	}
}

// Handle stores the rating and refreshes the courier aggregate.
func (h SubmitDeliveryRatingCommandHandler) Handle(ctx context.Context, cmd SubmitDeliveryRatingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loaded, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !loaded.DeviceID().IsEqual(cmd.DeviceID()) {
		return errs.NewUnauthorizedError("rate delivery", cmd.DeviceID().String())
	}
	if loaded.Status() != order.Delivered {
		return errs.NewValueIsInvalidError("order status")
	}
	deliveryPersonRef := loaded.DeliveryPerson()
	if deliveryPersonRef == nil {
		return errs.NewValueIsInvalidError("order delivery person")
	}

	newRating, err := rating.NewDeliveryRating(
		cmd.RatingID(), cmd.OrderID(), *deliveryPersonRef,
		cmd.DeviceID().String(), cmd.Score(), cmd.Comment())
	if err != nil {
		return err
	}

	ratingRepo := uow.RatingRepository()
	if err = ratingRepo.AddDeliveryRating(ctx, newRating); err != nil {
		return err
	}

	key := "courier:" + deliveryPersonRef.String()
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	agg, err := ratingRepo.ComputeDeliveryAggregate(ctx, *deliveryPersonRef)
	if err != nil {
		return err
	}

	courierRepo := uow.CourierRepository()
	deliveryPerson, err := courierRepo.Get(ctx, *deliveryPersonRef)
	if err != nil {
		return err
	}
	if err = deliveryPerson.ApplyRatingAggregate(roundAverage(agg.Average), agg.Count); err != nil {
		return err
	}
	if err = courierRepo.Update(ctx, deliveryPerson); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	title, message, data := ratingReceivedTexts(loaded.Number(), cmd.Score())
	h.dispatcher.Send(ctx, notification.UserRecipient(*deliveryPersonRef),
		notification.TypeDeliveryStatus, title, message, data)

	return nil
}

// roundAverage keeps stored averages at two decimals.
func roundAverage(avg float64) float64 {
	return math.Round(avg*100) / 100
}
