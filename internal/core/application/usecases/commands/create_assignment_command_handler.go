package commands

import (
	"context"

	"restoonline/internal/core/domain/model/assignment"
	"restoonline/internal/core/domain/model/notification"
	"restoonline/internal/core/ports"
)

// CreateAssignmentCommandHandler hands a ready order to a delivery person.
// The assignment insert and the order's ready to assigned cascade run in one
// transaction, so a concurrent second assignment loses on either the
// duplicate check or the status guard.
type CreateAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
	staff      ports.StaffDirectory
	dispatcher ports.NotificationDispatcher
}

// NewCreateAssignmentCommandHandler creates a handler for assignment creation.
func NewCreateAssignmentCommandHandler(
	uowFactory AssignmentUoWFactory,
	staff ports.StaffDirectory,
	dispatcher ports.NotificationDispatcher,
) CreateAssignmentCommandHandler {
	return CreateAssignmentCommandHandler{
		uowFactory: uowFactory,
		staff:      staff,
		dispatcher: dispatcher,
	}
}

// Handle creates the assignment and cascades the order to assigned.
func (h CreateAssignmentCommandHandler) Handle(ctx context.Context, cmd CreateAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := ensureManager(ctx, h.staff, "create assignment", cmd.ManagerID()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryPerson, err := uow.CourierRepository().Get(ctx, cmd.DeliveryPersonID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	loaded, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	prev := loaded.Status()
	if err = loaded.AssignTo(cmd.DeliveryPersonID()); err != nil {
		return err
	}

	managerID := cmd.ManagerID()
	created, err := assignment.NewAssignment(
		cmd.AssignmentID(), cmd.OrderID(), cmd.DeliveryPersonID(), &managerID, cmd.Notes())
	if err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Add(ctx, created); err != nil {
		return err
	}
	if err = orderRepo.UpdateTransition(ctx, loaded, prev); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	title, message, data := assignmentCreatedTexts(loaded.Number())
	h.dispatcher.Send(ctx, notification.UserRecipient(cmd.DeliveryPersonID()),
		notification.TypeAssignment, title, message, data)

	title, message, data = orderAssignedTexts(loaded.Number(), deliveryPerson.Name())
	h.dispatcher.Send(ctx, notification.DeviceRecipient(loaded.DeviceID().String()),
		notification.TypeDeliveryStatus, title, message, data)

	return nil
}
