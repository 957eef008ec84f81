package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrCreateAssignmentCommandIsNotConstructed = errors.New(
	"CreateAssignmentCommand must be created via NewCreateAssignmentCommand constructor")

// CreateAssignmentCommand is a manager's request to hand a ready order to a
// delivery person.
type CreateAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID     kernel.UUID
	orderID          kernel.UUID
	deliveryPersonID kernel.UUID
	managerID        kernel.UUID
	notes            string

	guard kernel.ConstructorGuard
}

// NewCreateAssignmentCommand validates and creates the command.
func NewCreateAssignmentCommand(
	assignmentID, orderID, deliveryPersonID, managerID kernel.UUID,
	notes string,
) (CreateAssignmentCommand, error) {
	if err := errors.Join(
		assignmentID.Validate(),
		orderID.Validate(),
		deliveryPersonID.Validate(),
		managerID.Validate(),
	); err != nil {
		return CreateAssignmentCommand{}, err
	}

	return CreateAssignmentCommand{
		assignmentID:     assignmentID,
		orderID:          orderID,
		deliveryPersonID: deliveryPersonID,
		managerID:        managerID,
		notes:            notes,
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateAssignmentCommandIsNotConstructed)
}

func (c CreateAssignmentCommand) AssignmentID() kernel.UUID     { return c.assignmentID }
func (c CreateAssignmentCommand) OrderID() kernel.UUID          { return c.orderID }
func (c CreateAssignmentCommand) DeliveryPersonID() kernel.UUID { return c.deliveryPersonID }
func (c CreateAssignmentCommand) ManagerID() kernel.UUID        { return c.managerID }
func (c CreateAssignmentCommand) Notes() string                 { return c.notes }
