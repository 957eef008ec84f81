package commands

import (
	"errors"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"
)

var ErrIngestPaymentWebhookCommandIsNotConstructed = errors.New(
	"IngestPaymentWebhookCommand must be created via NewIngestPaymentWebhookCommand constructor")

// IngestPaymentWebhookCommand carries one raw provider callback. The status
// string stays unparsed here so unparseable payloads still get recorded.
type IngestPaymentWebhookCommand struct { //nolint:recvcheck //using for validation
	recordID      kernel.UUID
	token         string
	status        string
	transactionID string

	guard kernel.ConstructorGuard
}

// NewIngestPaymentWebhookCommand validates and creates the command.
func NewIngestPaymentWebhookCommand(
	recordID kernel.UUID,
	token, status, transactionID string,
) (IngestPaymentWebhookCommand, error) {
	if err := recordID.Validate(); err != nil {
		return IngestPaymentWebhookCommand{}, err
	}
	if token == "" {
		return IngestPaymentWebhookCommand{}, errs.NewValueIsRequiredError("token")
	}

	return IngestPaymentWebhookCommand{
		recordID:      recordID,
		token:         token,
		status:        status,
		transactionID: transactionID,
		guard:         kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c IngestPaymentWebhookCommand) Validate() error {
	return c.guard.Validate(ErrIngestPaymentWebhookCommandIsNotConstructed)
}

func (c IngestPaymentWebhookCommand) RecordID() kernel.UUID { return c.recordID }
func (c IngestPaymentWebhookCommand) Token() string         { return c.token }
func (c IngestPaymentWebhookCommand) ProviderStatus() string { return c.status }
func (c IngestPaymentWebhookCommand) TransactionID() string { return c.transactionID }
