package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrMarkReadyCommandIsNotConstructed = errors.New(
	"MarkReadyCommand must be created via NewMarkReadyCommand constructor")

// MarkReadyCommand is a manager's request to mark a preparing order ready
// for pickup by a delivery person.
type MarkReadyCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	managerID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewMarkReadyCommand validates and creates the command.
func NewMarkReadyCommand(orderID, managerID kernel.UUID) (MarkReadyCommand, error) {
	if err := errors.Join(orderID.Validate(), managerID.Validate()); err != nil {
		return MarkReadyCommand{}, err
	}

	return MarkReadyCommand{
		orderID:   orderID,
		managerID: managerID,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyCommandIsNotConstructed)
}

func (c MarkReadyCommand) OrderID() kernel.UUID   { return c.orderID }
func (c MarkReadyCommand) ManagerID() kernel.UUID { return c.managerID }
