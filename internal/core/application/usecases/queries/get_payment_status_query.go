package queries

import (
	"errors"
	"time"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrGetPaymentStatusQueryIsNotConstructed = errors.New(
	"GetPaymentStatusQuery must be created via NewGetPaymentStatusQuery constructor")

// GetPaymentStatusQuery retrieves the payment attached to an order, keyed by
// the order id since payments are one-to-one with orders.
type GetPaymentStatusQuery struct {
	orderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetPaymentStatusQuery validates and creates the query.
func NewGetPaymentStatusQuery(orderID kernel.UUID) (GetPaymentStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPaymentStatusQuery{}, err
	}

	return GetPaymentStatusQuery{
		orderID: orderID,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentStatusQueryIsNotConstructed)
}

func (q GetPaymentStatusQuery) OrderID() kernel.UUID { return q.orderID }

// GetPaymentStatusQueryResponse is the payment state in the read model. The
// invoice URL is where the customer completes the checkout while the payment
// is processing.
type GetPaymentStatusQueryResponse struct {
	PaymentID     kernel.UUID
	Status        string
	InvoiceURL    string
	Amount        int64
	TransactionID string
	FailureReason string
	CreatedAt     time.Time
	CompletedAt   *time.Time
}
