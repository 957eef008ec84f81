package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrStartPreparingCommandIsNotConstructed = errors.New(
	"StartPreparingCommand must be created via NewStartPreparingCommand constructor")

// StartPreparingCommand is a manager's request to move an accepted order
// into preparation.
type StartPreparingCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	managerID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewStartPreparingCommand validates and creates the command.
func NewStartPreparingCommand(orderID, managerID kernel.UUID) (StartPreparingCommand, error) {
	if err := errors.Join(orderID.Validate(), managerID.Validate()); err != nil {
		return StartPreparingCommand{}, err
	}

	return StartPreparingCommand{
		orderID:   orderID,
		managerID: managerID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c StartPreparingCommand) Validate() error {
	return c.guard.Validate(ErrStartPreparingCommandIsNotConstructed)
}

func (c StartPreparingCommand) OrderID() kernel.UUID   { return c.orderID }
func (c StartPreparingCommand) ManagerID() kernel.UUID { return c.managerID }
