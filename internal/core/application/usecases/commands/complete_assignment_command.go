package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrCompleteAssignmentCommandIsNotConstructed = errors.New(
	"CompleteAssignmentCommand must be created via NewCompleteAssignmentCommand constructor")

// CompleteAssignmentCommand is a delivery person's report that the order was
// handed to the customer.
type CompleteAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID     kernel.UUID
	deliveryPersonID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewCompleteAssignmentCommand validates and creates the command.
func NewCompleteAssignmentCommand(assignmentID, deliveryPersonID kernel.UUID) (CompleteAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), deliveryPersonID.Validate()); err != nil {
		return CompleteAssignmentCommand{}, err
	}

	return CompleteAssignmentCommand{
		assignmentID:     assignmentID,
		deliveryPersonID: deliveryPersonID,
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCompleteAssignmentCommandIsNotConstructed)
}

func (c CompleteAssignmentCommand) AssignmentID() kernel.UUID     { return c.assignmentID }
func (c CompleteAssignmentCommand) DeliveryPersonID() kernel.UUID { return c.deliveryPersonID }
