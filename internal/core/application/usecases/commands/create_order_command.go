package commands

import (
	"errors"
	"fmt"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor")

// CreateOrderCommand is a request to register a new order for a customer
// device. Amounts are minor currency units.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	deviceID    kernel.UUID
	subtotal    int64
	deliveryFee int64
	notes       string

	guard kernel.ConstructorGuard
}

// NewCreateOrderCommand validates and creates the command. Subtotal must be
// positive, delivery fee non-negative.
func NewCreateOrderCommand(
	orderID, deviceID kernel.UUID,
	subtotal, deliveryFee int64,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes: notes,
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDeviceID(deviceID),
		cmd.setAmounts(subtotal, deliveryFee),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID  { return c.orderID }
func (c CreateOrderCommand) DeviceID() kernel.UUID { return c.deviceID }
func (c CreateOrderCommand) Subtotal() int64       { return c.subtotal }
func (c CreateOrderCommand) DeliveryFee() int64    { return c.deliveryFee }
func (c CreateOrderCommand) Notes() string         { return c.notes }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDeviceID(deviceID kernel.UUID) error {
	if err := deviceID.Validate(); err != nil {
		return err
	}
	c.deviceID = deviceID
	return nil
}

func (c *CreateOrderCommand) setAmounts(subtotal, deliveryFee int64) error {
	if subtotal <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%d is not greater than 0", subtotal))
	}
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("delivery fee",
			fmt.Errorf("%d is negative", deliveryFee))
	}
	c.subtotal = subtotal
	c.deliveryFee = deliveryFee
	return nil
}
