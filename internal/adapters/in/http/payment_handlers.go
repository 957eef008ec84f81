package http

import (
	"net/http"
	"time"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/application/usecases/queries"
	"restoonline/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// PaymentResponse is the payment read model returned by creation and lookup.
type PaymentResponse struct {
	PaymentID     string     `json:"payment_id"`
	Status        string     `json:"status"`
	InvoiceURL    string     `json:"invoice_url,omitempty"`
	Amount        int64      `json:"amount"`
	TransactionID string     `json:"transaction_id,omitempty"`
	FailureReason string     `json:"failure_reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// PostOrderPayment handles POST /api/v1/orders/:orderID/payment. On success
// the response carries the invoice URL the customer pays at.
func (s *Server) PostOrderPayment(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	paymentID := kernel.NewUUID()
	cmd, err := commands.NewCreatePaymentCommand(paymentID, orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CreatePayment.Handle(ctx.Request().Context(), cmd); err != nil {
		// The payment row exists either way; a provider failure left it
		// failed and surfaces as a 502.
		return respondError(ctx, err)
	}

	return s.respondPayment(ctx, http.StatusCreated, orderID)
}

// GetOrderPayment handles GET /api/v1/orders/:orderID/payment.
func (s *Server) GetOrderPayment(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	return s.respondPayment(ctx, http.StatusOK, orderID)
}

func (s *Server) respondPayment(ctx echo.Context, code int, orderID kernel.UUID) error {
	query, err := queries.NewGetPaymentStatusQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.handlers.PaymentStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(code, PaymentResponse{
		PaymentID:     view.PaymentID.String(),
		Status:        view.Status,
		InvoiceURL:    view.InvoiceURL,
		Amount:        view.Amount,
		TransactionID: view.TransactionID,
		FailureReason: view.FailureReason,
		CreatedAt:     view.CreatedAt,
		CompletedAt:   view.CompletedAt,
	})
}

// PaymentWebhookRequest is the provider callback body. The status string is
// recorded verbatim; unknown values are kept on the webhook record.
type PaymentWebhookRequest struct {
	Token         string `json:"token"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// PostPaymentWebhook handles POST /api/v1/payments/webhook. A 404 tells the
// provider no payment matches the token yet and it should retry; the raw
// callback is recorded regardless.
func (s *Server) PostPaymentWebhook(ctx echo.Context) error {
	var request PaymentWebhookRequest
	if err := bindRequest(ctx, &request); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewIngestPaymentWebhookCommand(kernel.NewUUID(),
		request.Token, request.Status, request.TransactionID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.IngestWebhook.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PostPaymentConfirm handles POST /api/v1/payments/:paymentID/confirm, the
// manual counterpart of the polling job.
func (s *Server) PostPaymentConfirm(ctx echo.Context) error {
	paymentID, err := pathUUID(ctx, "paymentID")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(paymentID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.ConfirmPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// WebhookRecordResponse is one stuck callback in the operator view.
type WebhookRecordResponse struct {
	ID              string    `json:"id"`
	Token           string    `json:"token"`
	ProviderStatus  string    `json:"provider_status"`
	ProcessingError string    `json:"processing_error,omitempty"`
	ReceivedAt      time.Time `json:"received_at"`
}

// GetUnprocessedWebhooks handles GET /api/v1/payments/webhooks/unprocessed.
func (s *Server) GetUnprocessedWebhooks(ctx echo.Context) error {
	query := queries.NewGetUnprocessedWebhooksQuery()

	views, err := s.handlers.UnprocessedWebhooks.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]WebhookRecordResponse, len(views))
	for i, view := range views {
		response[i] = WebhookRecordResponse{
			ID:              view.ID.String(),
			Token:           view.Token,
			ProviderStatus:  view.ProviderStatus,
			ProcessingError: view.ProcessingError,
			ReceivedAt:      view.ReceivedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
