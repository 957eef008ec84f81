package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrRefuseAssignmentCommandIsNotConstructed = errors.New(
	"RefuseAssignmentCommand must be created via NewRefuseAssignmentCommand constructor")

// RefuseAssignmentCommand is a delivery person's request to refuse their
// assignment. The reason may be empty.
type RefuseAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID     kernel.UUID
	deliveryPersonID kernel.UUID
	reason           string

	guard kernel.ConstructorGuard
}

// NewRefuseAssignmentCommand validates and creates the command.
func NewRefuseAssignmentCommand(assignmentID, deliveryPersonID kernel.UUID, reason string) (RefuseAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), deliveryPersonID.Validate()); err != nil {
		return RefuseAssignmentCommand{}, err
	}

	return RefuseAssignmentCommand{
		assignmentID:     assignmentID,
		deliveryPersonID: deliveryPersonID,
		reason:           reason,
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefuseAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRefuseAssignmentCommandIsNotConstructed)
}

func (c RefuseAssignmentCommand) AssignmentID() kernel.UUID     { return c.assignmentID }
func (c RefuseAssignmentCommand) DeliveryPersonID() kernel.UUID { return c.deliveryPersonID }
func (c RefuseAssignmentCommand) Reason() string                { return c.reason }
