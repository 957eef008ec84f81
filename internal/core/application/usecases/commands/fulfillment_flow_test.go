package commands_test

import (
	"testing"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/domain/model/assignment"
	"restoonline/internal/core/domain/model/courier"
	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/order"
	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFullFulfillmentFlow drives one order end to end through the real
// handlers: checkout, payment confirmation cascade, kitchen, delivery,
// rating. Every intermediate status and audit field is checked along the
// way.
func TestFullFulfillmentFlow(t *testing.T) {
	ctx := t.Context()
	store := newFakeStore()
	dispatcher := &fakeDispatcher{}
	locks := keylock.New()

	managerID := kernel.NewUUID()
	staff := newFakeStaff(managerID)
	deviceID := kernel.NewUUID()

	deliveryPerson, err := courier.NewDeliveryPerson(kernel.NewUUID(), "Ayo Kone", "+22997000001")
	require.NoError(t, err)
	require.NoError(t, fakeCourierRepo{store}.Add(ctx, deliveryPerson))

	// Checkout: order created pending.
	orderID := kernel.NewUUID()
	createCmd, err := commands.NewCreateOrderCommand(orderID, deviceID, 4500, 1000, "immeuble bleu")
	require.NoError(t, err)
	require.NoError(t, commands.NewCreateOrderCommandHandler(
		orderUoWFactory{store}, dispatcher).Handle(ctx, createCmd))

	o, err := fakeOrderRepo{store}.Get(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, order.Pending, o.Status())
	require.Equal(t, int64(5500), o.Total())

	// Payment: invoice created, customer pays, webhook confirms.
	paymentID := kernel.NewUUID()
	payCmd, err := commands.NewCreatePaymentCommand(paymentID, orderID)
	require.NoError(t, err)
	provider := &fakeProvider{token: "tok-e2e", redirectURL: "https://pay.example/tok-e2e"}
	require.NoError(t, commands.NewCreatePaymentCommandHandler(
		paymentUoWFactory{store}, provider, "https://api.example/webhooks/paydunya").Handle(ctx, payCmd))

	webhookCmd, err := commands.NewIngestPaymentWebhookCommand(
		kernel.NewUUID(), "tok-e2e", "completed", "txn-e2e")
	require.NoError(t, err)
	require.NoError(t, commands.NewIngestPaymentWebhookCommandHandler(
		webhookUoWFactory{store}, dispatcher).Handle(ctx, webhookCmd))

	pay, err := fakePaymentRepo{store}.Get(ctx, paymentID)
	require.NoError(t, err)
	require.Equal(t, payment.Completed, pay.Status())

	o, err = fakeOrderRepo{store}.Get(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, order.Accepted, o.Status())
	require.Nil(t, o.Manager())

	// Kitchen.
	prepCmd, err := commands.NewStartPreparingCommand(orderID, managerID)
	require.NoError(t, err)
	require.NoError(t, commands.NewStartPreparingCommandHandler(
		orderUoWFactory{store}, staff, dispatcher).Handle(ctx, prepCmd))

	readyCmd, err := commands.NewMarkReadyCommand(orderID, managerID)
	require.NoError(t, err)
	require.NoError(t, commands.NewMarkReadyCommandHandler(
		orderUoWFactory{store}, staff, dispatcher).Handle(ctx, readyCmd))

	// Delivery.
	assignmentID := kernel.NewUUID()
	assignCmd, err := commands.NewCreateAssignmentCommand(
		assignmentID, orderID, deliveryPerson.ID(), managerID, "")
	require.NoError(t, err)
	require.NoError(t, commands.NewCreateAssignmentCommandHandler(
		assignmentUoWFactory{store}, staff, dispatcher).Handle(ctx, assignCmd))

	acceptCmd, err := commands.NewAcceptAssignmentCommand(assignmentID, deliveryPerson.ID())
	require.NoError(t, err)
	require.NoError(t, commands.NewAcceptAssignmentCommandHandler(
		assignmentUoWFactory{store}).Handle(ctx, acceptCmd))

	pickupCmd, err := commands.NewPickupAssignmentCommand(assignmentID, deliveryPerson.ID())
	require.NoError(t, err)
	require.NoError(t, commands.NewPickupAssignmentCommandHandler(
		assignmentUoWFactory{store}, dispatcher).Handle(ctx, pickupCmd))

	accuracy := 10.0
	locCmd, err := commands.NewRecordLocationCommand(
		kernel.NewUUID(), assignmentID, deliveryPerson.ID(), 6.3703, 2.3912, &accuracy)
	require.NoError(t, err)
	require.NoError(t, commands.NewRecordLocationCommandHandler(
		assignmentUoWFactory{store}).Handle(ctx, locCmd))

	completeCmd, err := commands.NewCompleteAssignmentCommand(assignmentID, deliveryPerson.ID())
	require.NoError(t, err)
	require.NoError(t, commands.NewCompleteAssignmentCommandHandler(
		assignmentUoWFactory{store}, dispatcher).Handle(ctx, completeCmd))

	o, err = fakeOrderRepo{store}.Get(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, order.Delivered, o.Status())
	require.NotNil(t, o.DeliveredAt())

	a, err := fakeAssignmentRepo{store}.Get(ctx, assignmentID)
	require.NoError(t, err)
	require.Equal(t, assignment.Delivered, a.Status())

	// Rating.
	ratingCmd, err := commands.NewSubmitDeliveryRatingCommand(
		kernel.NewUUID(), orderID, deviceID, 5, "parfait")
	require.NoError(t, err)
	require.NoError(t, commands.NewSubmitDeliveryRatingCommandHandler(
		ratingUoWFactory{store}, locks, dispatcher).Handle(ctx, ratingCmd))

	ratedPerson, err := fakeCourierRepo{store}.Get(ctx, deliveryPerson.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, ratedPerson.TotalDeliveries())
	assert.InDelta(t, 5.0, ratedPerson.AverageRating(), 1e-9)
	assert.Equal(t, 1, ratedPerson.RatingCount())

	// One of each customer-facing milestone message.
	for _, title := range []string{
		"Commande créée", "Paiement reçu", "Commande acceptée",
		"Commande en préparation", "Commande prête", "Livreur assigné",
		"Commande en livraison", "Commande livrée",
	} {
		assert.Equal(t, 1, dispatcher.countTitled(title), title)
	}
}
