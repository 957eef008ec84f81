package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor")

// ConfirmPaymentCommand asks the provider for the current invoice status of
// a processing payment. Issued by the polling job and by explicit checks.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewConfirmPaymentCommand validates and creates the command.
func NewConfirmPaymentCommand(paymentID kernel.UUID) (ConfirmPaymentCommand, error) {
	if err := paymentID.Validate(); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		paymentID: paymentID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }
