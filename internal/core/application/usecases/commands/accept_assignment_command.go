package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor")

// AcceptAssignmentCommand is a delivery person's request to accept their
// assignment.
type AcceptAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID     kernel.UUID
	deliveryPersonID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewAcceptAssignmentCommand validates and creates the command.
func NewAcceptAssignmentCommand(assignmentID, deliveryPersonID kernel.UUID) (AcceptAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), deliveryPersonID.Validate()); err != nil {
		return AcceptAssignmentCommand{}, err
	}

	return AcceptAssignmentCommand{
		assignmentID:     assignmentID,
		deliveryPersonID: deliveryPersonID,
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

func (c AcceptAssignmentCommand) AssignmentID() kernel.UUID     { return c.assignmentID }
func (c AcceptAssignmentCommand) DeliveryPersonID() kernel.UUID { return c.deliveryPersonID }
