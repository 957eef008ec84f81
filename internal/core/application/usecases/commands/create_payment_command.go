package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrCreatePaymentCommandIsNotConstructed = errors.New(
	"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor")

// CreatePaymentCommand is a request to open the provider checkout for an
// order. The amount is taken from the order, never from the caller.
type CreatePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	orderID   kernel.UUID

	guard kernel.ConstructorGuard
}

// NewCreatePaymentCommand validates and creates the command.
func NewCreatePaymentCommand(paymentID, orderID kernel.UUID) (CreatePaymentCommand, error) {
	if err := errors.Join(paymentID.Validate(), orderID.Validate()); err != nil {
		return CreatePaymentCommand{}, err
	}

	return CreatePaymentCommand{
		paymentID: paymentID,
		orderID:   orderID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

func (c CreatePaymentCommand) PaymentID() kernel.UUID { return c.paymentID }
func (c CreatePaymentCommand) OrderID() kernel.UUID   { return c.orderID }
