package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor")

// AcceptOrderCommand is a manager's request to accept a pending order.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	managerID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewAcceptOrderCommand validates and creates the command.
func NewAcceptOrderCommand(orderID, managerID kernel.UUID) (AcceptOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), managerID.Validate()); err != nil {
		return AcceptOrderCommand{}, err
	}

	return AcceptOrderCommand{
		orderID:   orderID,
		managerID: managerID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c AcceptOrderCommand) ManagerID() kernel.UUID { return c.managerID }
