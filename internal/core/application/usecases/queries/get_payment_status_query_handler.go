package queries

import (
	"context"
	"database/sql"
	"errors"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPaymentStatusQueryHandler reads the payment of an order straight from
// the database.
type GetPaymentStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetPaymentStatusQueryHandler creates a handler for payment status queries.
func NewGetPaymentStatusQueryHandler(db *gorm.DB) GetPaymentStatusQueryHandler {
	return GetPaymentStatusQueryHandler{db: db}
}

// Handle executes the query.
func (h GetPaymentStatusQueryHandler) Handle(
	ctx context.Context,
	query GetPaymentStatusQuery,
) (GetPaymentStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, status, invoice_url, amount, transaction_id, failure_reason,
			created_at, completed_at
		FROM payments
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id          uuid.UUID
		response    GetPaymentStatusQueryResponse
		completedAt sql.NullTime
	)
	err := row.Scan(&id, &response.Status, &response.InvoiceURL,
		&response.Amount, &response.TransactionID, &response.FailureReason,
		&response.CreatedAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetPaymentStatusQueryResponse{},
			errs.NewObjectNotFoundError("payment for order", query.OrderID().String())
	}
	if err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}

	paymentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetPaymentStatusQueryResponse{}, err
	}
	response.PaymentID = paymentID
	response.CreatedAt = response.CreatedAt.UTC()
	if completedAt.Valid {
		utc := completedAt.Time.UTC()
		response.CompletedAt = &utc
	}

	return response, nil
}
