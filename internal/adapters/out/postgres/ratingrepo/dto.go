// Package ratingrepo persists write-once ratings and recomputes their
// aggregates with SQL. Uniqueness of delivery ratings per (order, delivery
// person) and menu item ratings per (order item, device) is enforced with
// composite unique indexes.
package ratingrepo

import (
	"time"

	"restoonline/internal/core/domain/model/rating"

	"github.com/google/uuid"
)

// DeliveryRatingDTO represents the database structure for delivery ratings.
type DeliveryRatingDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_delivery_rating_order_person"`
	DeliveryPersonID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_delivery_rating_order_person;index"`
	DeviceID         string

	Score   int
	Comment string

	CreatedAt time.Time
}

// TableName specifies the database table name for delivery ratings.
func (DeliveryRatingDTO) TableName() string {
	return "delivery_ratings"
}

// MenuItemRatingDTO represents the database structure for menu item ratings.
type MenuItemRatingDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MenuItemID  uuid.UUID `gorm:"type:uuid;index"`
	OrderItemID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_menu_rating_item_device"`
	DeviceID    string    `gorm:"uniqueIndex:idx_menu_rating_item_device"`

	Score   int
	Comment string

	CreatedAt time.Time
}

// TableName specifies the database table name for menu item ratings.
func (MenuItemRatingDTO) TableName() string {
	return "menu_item_ratings"
}

// MenuItemStatsDTO holds the denormalized rating aggregate of a menu item.
// The menu catalog itself lives outside this service; only the aggregate
// columns are kept here, keyed by the catalog's menu item id.
type MenuItemStatsDTO struct {
	MenuItemID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	AverageRating float64
	RatingCount   int
}

// TableName specifies the database table name for menu item aggregates.
func (MenuItemStatsDTO) TableName() string {
	return "menu_item_stats"
}

func deliveryFromDomain(r *rating.DeliveryRating) DeliveryRatingDTO {
	return DeliveryRatingDTO{
		ID:               r.ID().Bytes(),
		OrderID:          r.OrderID().Bytes(),
		DeliveryPersonID: r.DeliveryPersonID().Bytes(),
		DeviceID:         r.DeviceID(),
		Score:            r.Score(),
		Comment:          r.Comment(),
		CreatedAt:        r.CreatedAt(),
	}
}

func menuItemFromDomain(r *rating.MenuItemRating) MenuItemRatingDTO {
	return MenuItemRatingDTO{
		ID:          r.ID().Bytes(),
		MenuItemID:  r.MenuItemID().Bytes(),
		OrderItemID: r.OrderItemID().Bytes(),
		DeviceID:    r.DeviceID(),
		Score:       r.Score(),
		Comment:     r.Comment(),
		CreatedAt:   r.CreatedAt(),
	}
}
