package queries

import (
	"errors"
	"time"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrGetOrderStatusQueryIsNotConstructed = errors.New(
	"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor")

// GetOrderStatusQuery retrieves the current state of one order by id. This
// is the read the ordering device polls; staff and couriers use the tracking
// view instead.
type GetOrderStatusQuery struct {
	orderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetOrderStatusQuery validates and creates the query.
func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, err
	}

	return GetOrderStatusQuery{
		orderID: orderID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderStatusQueryResponse is the order state in the read model.
type GetOrderStatusQueryResponse struct {
	OrderNumber string
	Status      string
	Subtotal    int64
	DeliveryFee int64
	Total       int64
	Notes       string
	CreatedAt   time.Time
}
