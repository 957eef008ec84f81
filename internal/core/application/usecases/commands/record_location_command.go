package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrRecordLocationCommandIsNotConstructed = errors.New(
	"RecordLocationCommand must be created via NewRecordLocationCommand constructor")

// RecordLocationCommand carries one position report from the delivery
// person's device. Coordinate validation happens in the domain constructor
// when the handler builds the LocationUpdate.
type RecordLocationCommand struct { //nolint:recvcheck //using for validation
	locationID       kernel.UUID
	assignmentID     kernel.UUID
	deliveryPersonID kernel.UUID
	latitude         float64
	longitude        float64
	accuracy         *float64

	guard kernel.ConstructorGuard
}

// NewRecordLocationCommand validates and creates the command.
func NewRecordLocationCommand(
	locationID, assignmentID, deliveryPersonID kernel.UUID,
	latitude, longitude float64,
	accuracy *float64,
) (RecordLocationCommand, error) {
	if err := errors.Join(
		locationID.Validate(),
		assignmentID.Validate(),
		deliveryPersonID.Validate(),
	); err != nil {
		return RecordLocationCommand{}, err
	}

	return RecordLocationCommand{
		locationID:       locationID,
		assignmentID:     assignmentID,
		deliveryPersonID: deliveryPersonID,
		latitude:         latitude,
		longitude:        longitude,
		accuracy:         accuracy,
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordLocationCommand) Validate() error {
	return c.guard.Validate(ErrRecordLocationCommandIsNotConstructed)
}

func (c RecordLocationCommand) LocationID() kernel.UUID       { return c.locationID }
func (c RecordLocationCommand) AssignmentID() kernel.UUID     { return c.assignmentID }
func (c RecordLocationCommand) DeliveryPersonID() kernel.UUID { return c.deliveryPersonID }
func (c RecordLocationCommand) Latitude() float64             { return c.latitude }
func (c RecordLocationCommand) Longitude() float64            { return c.longitude }
func (c RecordLocationCommand) Accuracy() *float64            { return c.accuracy }
