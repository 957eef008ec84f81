// Package queries contains the read side: raw SQL read models that bypass
// the aggregates entirely.
package queries

import (
	"errors"
	"time"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor")

// GetOrderTrackingQuery retrieves the tracking view of one order: its
// status, the active assignment if any, and the latest reported location.
type GetOrderTrackingQuery struct {
	orderNumber kernel.OrderNumber

	guard kernel.ConstructorGuard
}

// NewGetOrderTrackingQuery validates and creates the query.
func NewGetOrderTrackingQuery(orderNumber kernel.OrderNumber) (GetOrderTrackingQuery, error) {
	if err := orderNumber.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	return GetOrderTrackingQuery{
		orderNumber: orderNumber,
		guard:       kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderNumber returns the public number of the order to track.
func (q GetOrderTrackingQuery) OrderNumber() kernel.OrderNumber { return q.orderNumber }

// TrackingLocation is the latest position the delivery person reported.
type TrackingLocation struct {
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
}

// GetOrderTrackingQueryResponse is the tracking read model.
type GetOrderTrackingQueryResponse struct {
	OrderID          kernel.UUID
	OrderNumber      string
	OrderStatus      string
	AssignmentStatus string
	DeliveryPerson   string
	LatestLocation   *TrackingLocation
}
