package queries

import (
	"context"
	"database/sql"
	"errors"

	"restoonline/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderStatusQueryHandler reads one order row straight from the database.
type GetOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatusQueryHandler creates a handler for order status queries.
func NewGetOrderStatusQueryHandler(db *gorm.DB) GetOrderStatusQueryHandler {
	return GetOrderStatusQueryHandler{db: db}
}

// Handle executes the query.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	var response GetOrderStatusQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT number, status, subtotal, delivery_fee, total, notes, created_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&response.OrderNumber, &response.Status,
		&response.Subtotal, &response.DeliveryFee, &response.Total,
		&response.Notes, &response.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderStatusQueryResponse{},
			errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	response.CreatedAt = response.CreatedAt.UTC()
	return response, nil
}
