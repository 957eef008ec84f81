package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrPickupAssignmentCommandIsNotConstructed = errors.New(
	"PickupAssignmentCommand must be created via NewPickupAssignmentCommand constructor")

// PickupAssignmentCommand is a delivery person's report that they picked the
// order up at the restaurant.
type PickupAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID     kernel.UUID
	deliveryPersonID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewPickupAssignmentCommand validates and creates the command.
func NewPickupAssignmentCommand(assignmentID, deliveryPersonID kernel.UUID) (PickupAssignmentCommand, error) {
	if err := errors.Join(assignmentID.Validate(), deliveryPersonID.Validate()); err != nil {
		return PickupAssignmentCommand{}, err
	}

	return PickupAssignmentCommand{
		assignmentID:     assignmentID,
		deliveryPersonID: deliveryPersonID,
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PickupAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrPickupAssignmentCommandIsNotConstructed)
}

func (c PickupAssignmentCommand) AssignmentID() kernel.UUID     { return c.assignmentID }
func (c PickupAssignmentCommand) DeliveryPersonID() kernel.UUID { return c.deliveryPersonID }
