package queries

import (
	"context"

	"restoonline/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnprocessedWebhooksQueryHandler reads the stuck webhook records,
// oldest first so the longest-waiting callback surfaces on top.
type GetUnprocessedWebhooksQueryHandler struct {
	db *gorm.DB
}

// NewGetUnprocessedWebhooksQueryHandler creates a handler for the operator view.
func NewGetUnprocessedWebhooksQueryHandler(db *gorm.DB) GetUnprocessedWebhooksQueryHandler {
	return GetUnprocessedWebhooksQueryHandler{db: db}
}

// Handle executes the query.
func (h GetUnprocessedWebhooksQueryHandler) Handle(
	ctx context.Context,
	query GetUnprocessedWebhooksQuery,
) ([]GetUnprocessedWebhooksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			token,
			status,
			processing_error,
			received_at
		FROM payment_webhooks
		WHERE processed = false
		ORDER BY received_at ASC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]GetUnprocessedWebhooksQueryResponse, 0)
	for rows.Next() {
		var record GetUnprocessedWebhooksQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &record.Token, &record.ProviderStatus,
			&record.ProcessingError, &record.ReceivedAt); err != nil {
			return nil, err
		}

		recordID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		record.ID = recordID
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
