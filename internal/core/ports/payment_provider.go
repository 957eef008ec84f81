package ports

import (
	"context"

	"restoonline/internal/core/domain/model/payment"
)

// PaymentProvider abstracts the external payment gateway. Failures surface
// as ProviderError so handlers can map them uniformly.
type PaymentProvider interface {
	// CreateInvoice registers a checkout invoice for amount, labeled with
	// the order reference. Returns the provider token identifying the
	// invoice and the redirect URL the customer pays at.
	CreateInvoice(ctx context.Context, amount int64, reference, callbackURL string) (token, redirectURL string, err error)

	// ConfirmInvoice asks the provider for the current status of an
	// invoice. Used by explicit confirmation and the polling job.
	ConfirmInvoice(ctx context.Context, token string) (status payment.Status, transactionID string, err error)
}
