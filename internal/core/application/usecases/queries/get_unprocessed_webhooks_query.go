package queries

import (
	"errors"
	"time"

	"restoonline/internal/core/domain/model/kernel"
)

var ErrGetUnprocessedWebhooksQueryIsNotConstructed = errors.New(
	"GetUnprocessedWebhooksQuery must be created via NewGetUnprocessedWebhooksQuery constructor")

// GetUnprocessedWebhooksQuery lists callback records that never completed
// processing, for operators chasing stuck payments.
type GetUnprocessedWebhooksQuery struct {
	guard kernel.ConstructorGuard
}

// NewGetUnprocessedWebhooksQuery creates the parameterless query.
func NewGetUnprocessedWebhooksQuery() GetUnprocessedWebhooksQuery {
	return GetUnprocessedWebhooksQuery{guard: kernel.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnprocessedWebhooksQuery) Validate() error {
	return q.guard.Validate(ErrGetUnprocessedWebhooksQueryIsNotConstructed)
}

// GetUnprocessedWebhooksQueryResponse is one stuck webhook record.
type GetUnprocessedWebhooksQueryResponse struct {
	ID              kernel.UUID
	Token           string
	ProviderStatus  string
	ProcessingError string
	ReceivedAt      time.Time
}
