package cmd

import (
	"context"
	"log/slog"

	httpin "restoonline/internal/adapters/in/http"
	"restoonline/internal/adapters/out/notify"
	"restoonline/internal/adapters/out/paydunya"
	"restoonline/internal/adapters/out/postgres"
	"restoonline/internal/adapters/out/postgres/notificationrepo"
	"restoonline/internal/adapters/out/postgres/paymentrepo"
	"restoonline/internal/adapters/out/postgres/staffrepo"
	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/application/usecases/queries"
	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/core/ports"
	"restoonline/internal/jobs"
	"restoonline/internal/pkg/keylock"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. Everything hangs off
// one database handle, one payment provider client and one notification
// dispatcher.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	provider   ports.PaymentProvider
	dispatcher *notify.AsyncDispatcher
	staff      ports.StaffDirectory
	ratingLock *keylock.KeyLock
	config     Config
}

// NewCompositionRoot assembles the shared dependencies.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	staff := staffrepo.NewGormStaffDirectory(gormDB)
	dispatcher := notify.NewAsyncDispatcher(
		notificationrepo.NewGormNotificationRepository(gormDB), staff, logger)

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		provider: paydunya.NewClient(paydunya.Config{
			BaseURL:    config.PayDunyaBaseURL,
			MasterKey:  config.PayDunyaMasterKey,
			PrivateKey: config.PayDunyaPrivateKey,
			Token:      config.PayDunyaToken,
			StoreName:  config.PayDunyaStoreName,
		}),
		dispatcher: dispatcher,
		staff:      staff,
		ratingLock: keylock.New(),
		config:     config,
	}
}

// Dispatcher exposes the notification worker for lifecycle management.
func (c *CompositionRoot) Dispatcher() *notify.AsyncDispatcher {
	return c.dispatcher
}

// The ports.UnitOfWork returned by the factory satisfies every narrow UoW
// interface, but the factory itself does not satisfy the narrow factory
// interfaces; these func adapters bridge the return types.
type (
	FuncOrderUoWFactory      func() commands.OrderUoW
	FuncAssignmentUoWFactory func() commands.AssignmentUoW
	FuncPaymentUoWFactory    func() commands.PaymentUoW
	FuncWebhookUoWFactory    func() commands.WebhookUoW
	FuncRatingUoWFactory     func() commands.RatingUoW
)

func (f FuncOrderUoWFactory) Create() commands.OrderUoW           { return f() }
func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW { return f() }
func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW       { return f() }
func (f FuncWebhookUoWFactory) Create() commands.WebhookUoW       { return f() }
func (f FuncRatingUoWFactory) Create() commands.RatingUoW         { return f() }

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) webhookUoWFactory() commands.WebhookUoWFactory {
	return FuncWebhookUoWFactory(func() commands.WebhookUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) ratingUoWFactory() commands.RatingUoWFactory {
	return FuncRatingUoWFactory(func() commands.RatingUoW { return c.uowFactory.Create() })
}

// CreateHTTPHandlers builds the full handler set the HTTP server routes to.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder: commands.NewCreateOrderCommandHandler(
			c.orderUoWFactory(), c.dispatcher),
		AcceptOrder: commands.NewAcceptOrderCommandHandler(
			c.orderUoWFactory(), c.staff, c.dispatcher),
		RefuseOrder: commands.NewRefuseOrderCommandHandler(
			c.orderUoWFactory(), c.staff, c.dispatcher),
		StartPreparing: commands.NewStartPreparingCommandHandler(
			c.orderUoWFactory(), c.staff, c.dispatcher),
		MarkReady: commands.NewMarkReadyCommandHandler(
			c.orderUoWFactory(), c.staff, c.dispatcher),
		CancelOrder: commands.NewCancelOrderCommandHandler(
			c.orderUoWFactory(), c.staff, c.dispatcher),

		CreateAssignment: commands.NewCreateAssignmentCommandHandler(
			c.assignmentUoWFactory(), c.staff, c.dispatcher),
		AcceptAssignment: commands.NewAcceptAssignmentCommandHandler(
			c.assignmentUoWFactory()),
		RefuseAssignment: commands.NewRefuseAssignmentCommandHandler(
			c.assignmentUoWFactory(), c.dispatcher),
		PickupAssignment: commands.NewPickupAssignmentCommandHandler(
			c.assignmentUoWFactory(), c.dispatcher),
		CompleteAssignment: commands.NewCompleteAssignmentCommandHandler(
			c.assignmentUoWFactory(), c.dispatcher),
		RecordLocation: commands.NewRecordLocationCommandHandler(
			c.assignmentUoWFactory()),

		CreatePayment: commands.NewCreatePaymentCommandHandler(
			c.paymentUoWFactory(), c.provider, c.config.PaymentCallbackURL),
		IngestWebhook: commands.NewIngestPaymentWebhookCommandHandler(
			c.webhookUoWFactory(), c.dispatcher),
		ConfirmPayment: c.createConfirmPaymentCommandHandler(),

		SubmitDeliveryRating: commands.NewSubmitDeliveryRatingCommandHandler(
			c.ratingUoWFactory(), c.ratingLock, c.dispatcher),
		SubmitMenuItemRating: commands.NewSubmitMenuItemRatingCommandHandler(
			c.ratingUoWFactory(), c.ratingLock),

		OrderStatus:         queries.NewGetOrderStatusQueryHandler(c.gormDB),
		OrderTracking:       queries.NewGetOrderTrackingQueryHandler(c.gormDB),
		PaymentStatus:       queries.NewGetPaymentStatusQueryHandler(c.gormDB),
		RecentLocations:     queries.NewGetRecentLocationsQueryHandler(c.gormDB),
		UnprocessedWebhooks: queries.NewGetUnprocessedWebhooksQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) createConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(
		c.paymentUoWFactory(), c.provider, c.dispatcher)
}

// CreateJobManager builds the scheduled jobs.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	source := func(ctx context.Context) ([]*payment.Payment, error) {
		return paymentrepo.NewGormPaymentRepository(c.gormDB).GetAllProcessing(ctx)
	}

	job := jobs.NewPaymentConfirmationJob(
		c.createConfirmPaymentCommandHandler(), source, c.config.PaymentPollSpec, logger)

	return jobs.NewJobManager(job)
}
