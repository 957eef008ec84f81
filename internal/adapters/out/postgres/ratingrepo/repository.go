package ratingrepo

import (
	"context"
	"errors"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/rating"
	"restoonline/internal/core/ports"
	"restoonline/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRatingRepository implements ports.RatingRepository using GORM.
type GormRatingRepository struct {
	db *gorm.DB
}

// NewGormRatingRepository creates a new GORM rating repository.
func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

// AddDeliveryRating saves a delivery rating. The composite unique index on
// (order_id, delivery_person_id) rejects a second rating for the same pair.
func (r *GormRatingRepository) AddDeliveryRating(ctx context.Context, aggregate *rating.DeliveryRating) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := deliveryFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateError("delivery rating", aggregate.OrderID().String())
		}
		return err
	}

	return nil
}

// AddMenuItemRating saves a menu item rating. The composite unique index on
// (order_item_id, device_id) rejects a second rating for the same pair.
func (r *GormRatingRepository) AddMenuItemRating(ctx context.Context, aggregate *rating.MenuItemRating) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := menuItemFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateError("menu item rating", aggregate.OrderItemID().String())
		}
		return err
	}

	return nil
}

// ComputeDeliveryAggregate scans all delivery ratings of one delivery person.
func (r *GormRatingRepository) ComputeDeliveryAggregate(
	ctx context.Context,
	deliveryPersonID kernel.UUID,
) (ports.RatingAggregate, error) {
	if err := deliveryPersonID.Validate(); err != nil {
		return ports.RatingAggregate{}, err
	}

	return r.computeAggregate(ctx, `
		SELECT COALESCE(AVG(score), 0), COUNT(*)
		FROM delivery_ratings
		WHERE delivery_person_id = ?
	`, deliveryPersonID.Bytes())
}

// ComputeMenuItemAggregate scans all ratings of one menu item.
func (r *GormRatingRepository) ComputeMenuItemAggregate(
	ctx context.Context,
	menuItemID kernel.UUID,
) (ports.RatingAggregate, error) {
	if err := menuItemID.Validate(); err != nil {
		return ports.RatingAggregate{}, err
	}

	return r.computeAggregate(ctx, `
		SELECT COALESCE(AVG(score), 0), COUNT(*)
		FROM menu_item_ratings
		WHERE menu_item_id = ?
	`, menuItemID.Bytes())
}

// UpdateMenuItemAggregate upserts the aggregate columns of a menu item.
func (r *GormRatingRepository) UpdateMenuItemAggregate(
	ctx context.Context,
	menuItemID kernel.UUID,
	agg ports.RatingAggregate,
) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}

	dto := MenuItemStatsDTO{
		MenuItemID:    menuItemID.Bytes(),
		AverageRating: agg.Average,
		RatingCount:   agg.Count,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "menu_item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"average_rating", "rating_count"}),
		}).
		Create(&dto).
		Error
}

func (r *GormRatingRepository) computeAggregate(
	ctx context.Context,
	query string,
	args ...any,
) (ports.RatingAggregate, error) {
	row := r.db.WithContext(ctx).Raw(query, args...).Row()

	var agg ports.RatingAggregate
	if err := row.Scan(&agg.Average, &agg.Count); err != nil {
		return ports.RatingAggregate{}, err
	}

	return agg, nil
}
