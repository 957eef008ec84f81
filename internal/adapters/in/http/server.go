// Package http exposes the fulfillment operations over an echo HTTP API.
// Handlers translate JSON requests into commands and queries; every failure
// goes through the single error-to-status mapping in errors.go.
package http

import (
	"net/http"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/application/usecases/queries"
	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the command and query handlers the server routes to.
type Handlers struct {
	CreateOrder    commands.CreateOrderCommandHandler
	AcceptOrder    commands.AcceptOrderCommandHandler
	RefuseOrder    commands.RefuseOrderCommandHandler
	StartPreparing commands.StartPreparingCommandHandler
	MarkReady      commands.MarkReadyCommandHandler
	CancelOrder    commands.CancelOrderCommandHandler

	CreateAssignment   commands.CreateAssignmentCommandHandler
	AcceptAssignment   commands.AcceptAssignmentCommandHandler
	RefuseAssignment   commands.RefuseAssignmentCommandHandler
	PickupAssignment   commands.PickupAssignmentCommandHandler
	CompleteAssignment commands.CompleteAssignmentCommandHandler
	RecordLocation     commands.RecordLocationCommandHandler

	CreatePayment  commands.CreatePaymentCommandHandler
	IngestWebhook  commands.IngestPaymentWebhookCommandHandler
	ConfirmPayment commands.ConfirmPaymentCommandHandler

	SubmitDeliveryRating commands.SubmitDeliveryRatingCommandHandler
	SubmitMenuItemRating commands.SubmitMenuItemRatingCommandHandler

	OrderStatus         queries.GetOrderStatusQueryHandler
	OrderTracking       queries.GetOrderTrackingQueryHandler
	PaymentStatus       queries.GetPaymentStatusQueryHandler
	RecentLocations     queries.GetRecentLocationsQueryHandler
	UnprocessedWebhooks queries.GetUnprocessedWebhooksQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	metrics  *Metrics
}

// NewServer creates the HTTP server over the given use case handlers.
func NewServer(handlers Handlers, metrics *Metrics) *Server {
	return &Server{handlers: handlers, metrics: metrics}
}

// RegisterRoutes mounts every endpoint on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(s.metrics.Middleware())

	e.GET("/health", s.Health)
	e.GET("/metrics", s.metrics.Handler())

	api := e.Group("/api/v1")

	api.POST("/orders", s.PostOrder)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/accept", s.PostOrderAccept)
	api.POST("/orders/:orderID/refuse", s.PostOrderRefuse)
	api.POST("/orders/:orderID/prepare", s.PostOrderPrepare)
	api.POST("/orders/:orderID/ready", s.PostOrderReady)
	api.POST("/orders/:orderID/cancel", s.PostOrderCancel)
	api.GET("/tracking/:orderNumber", s.GetOrderTracking)

	api.POST("/orders/:orderID/payment", s.PostOrderPayment)
	api.GET("/orders/:orderID/payment", s.GetOrderPayment)
	api.POST("/payments/webhook", s.PostPaymentWebhook)
	api.POST("/payments/:paymentID/confirm", s.PostPaymentConfirm)
	api.GET("/payments/webhooks/unprocessed", s.GetUnprocessedWebhooks)

	api.POST("/assignments", s.PostAssignment)
	api.POST("/assignments/:assignmentID/accept", s.PostAssignmentAccept)
	api.POST("/assignments/:assignmentID/refuse", s.PostAssignmentRefuse)
	api.POST("/assignments/:assignmentID/pickup", s.PostAssignmentPickup)
	api.POST("/assignments/:assignmentID/complete", s.PostAssignmentComplete)
	api.POST("/assignments/:assignmentID/locations", s.PostAssignmentLocation)
	api.GET("/assignments/:assignmentID/locations", s.GetAssignmentLocations)

	api.POST("/ratings/delivery", s.PostDeliveryRating)
	api.POST("/ratings/menu-items", s.PostMenuItemRating)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// pathUUID parses a UUID path parameter; failures surface as 400s through
// the error mapper.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// bodyUUID parses a UUID carried in a request body field.
func bodyUUID(name, value string) (kernel.UUID, error) {
	if value == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(name)
	}
	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

// bindRequest decodes the JSON body; failures surface as 400s.
func bindRequest(ctx echo.Context, target any) error {
	if err := ctx.Bind(target); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}
