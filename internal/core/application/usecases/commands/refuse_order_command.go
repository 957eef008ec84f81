package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"
)

var ErrRefuseOrderCommandIsNotConstructed = errors.New(
	"RefuseOrderCommand must be created via NewRefuseOrderCommand constructor")

// RefuseOrderCommand is a manager's request to refuse a pending order.
// A reason is mandatory.
type RefuseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	managerID kernel.UUID
	reason    string

	guard kernel.ConstructorGuard
}

// NewRefuseOrderCommand validates and creates the command.
func NewRefuseOrderCommand(orderID, managerID kernel.UUID, reason string) (RefuseOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), managerID.Validate()); err != nil {
		return RefuseOrderCommand{}, err
	}
	if reason == "" {
		return RefuseOrderCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return RefuseOrderCommand{
		orderID:   orderID,
		managerID: managerID,
		reason:    reason,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefuseOrderCommand) Validate() error {
	return c.guard.Validate(ErrRefuseOrderCommandIsNotConstructed)
}

func (c RefuseOrderCommand) OrderID() kernel.UUID   { return c.orderID }
func (c RefuseOrderCommand) ManagerID() kernel.UUID { return c.managerID }
func (c RefuseOrderCommand) Reason() string         { return c.reason }
