package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor")

// CancelOrderCommand is a manager's request to cancel an order that is not
// yet delivered. A reason is mandatory.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	managerID kernel.UUID
	reason    string

	guard kernel.ConstructorGuard
}

// NewCancelOrderCommand validates and creates the command.
func NewCancelOrderCommand(orderID, managerID kernel.UUID, reason string) (CancelOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), managerID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}
	if reason == "" {
		return CancelOrderCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return CancelOrderCommand{
		orderID:   orderID,
		managerID: managerID,
		reason:    reason,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c CancelOrderCommand) ManagerID() kernel.UUID { return c.managerID }
func (c CancelOrderCommand) Reason() string         { return c.reason }
