package payment

import (
	"errors"
	"fmt"
	"time"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment was not created
	// through NewPayment or RestorePayment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

	// ErrTokenIsRequired is returned when marking a payment processing
	// without a provider token.
	ErrTokenIsRequired = errs.NewValueIsRequiredError("provider token")
)

// Payment is the monetary settlement record tied one-to-one to an order.
// Its amount equals the order total at creation and never changes.
type Payment struct {
	id      kernel.UUID
	orderID kernel.UUID

	token      string
	invoiceURL string

	amount        int64
	status        Status
	transactionID string
	failureReason string

	createdAt   time.Time
	completedAt *time.Time

	guard kernel.ConstructorGuard
}

// NewPayment creates a pending payment for an order. The amount must equal
// the order total; the caller passes it from the loaded order.
func NewPayment(id kernel.UUID, orderID kernel.UUID, amount int64) (*Payment, error) {
	p := &Payment{
		status:    Pending,
		createdAt: time.Now().UTC(),
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePayment reconstructs a payment from persistence.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	token string,
	invoiceURL string,
	amount int64,
	status Status,
	transactionID string,
	failureReason string,
	createdAt time.Time,
	completedAt *time.Time,
) (*Payment, error) {
	p := &Payment{
		token:         token,
		invoiceURL:    invoiceURL,
		transactionID: transactionID,
		failureReason: failureReason,
		createdAt:     createdAt,
		completedAt:   completedAt,
		guard:         kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmount(amount),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	p.status = status

	return p, nil
}

// Validate ensures the Payment was created via a constructor.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID         { return p.id }
func (p *Payment) OrderID() kernel.UUID    { return p.orderID }
func (p *Payment) Token() string           { return p.token }
func (p *Payment) InvoiceURL() string      { return p.invoiceURL }
func (p *Payment) Amount() int64           { return p.amount }
func (p *Payment) Status() Status          { return p.status }
func (p *Payment) TransactionID() string   { return p.transactionID }
func (p *Payment) FailureReason() string   { return p.failureReason }
func (p *Payment) CreatedAt() time.Time    { return p.createdAt }
func (p *Payment) CompletedAt() *time.Time { return p.completedAt }

// MarkProcessing records a successful provider invoice creation: stores the
// token plus redirect URL and moves pending -> processing.
func (p *Payment) MarkProcessing(token, invoiceURL string) error {
	if token == "" {
		return ErrTokenIsRequired
	}
	if p.status != Pending {
		return errs.NewInvalidTransitionError("payment", p.status.String(), Processing.String())
	}

	p.status = Processing
	p.token = token
	p.invoiceURL = invoiceURL
	return nil
}

// MarkFailed records a failed provider invoice creation: stores the
// diagnostic and moves pending -> failed.
func (p *Payment) MarkFailed(reason string) error {
	if p.status != Pending {
		return errs.NewInvalidTransitionError("payment", p.status.String(), Failed.String())
	}

	p.status = Failed
	p.failureReason = reason
	return nil
}

// ApplyProviderStatus ingests a status reported by the provider, via
// webhook or polling. It is idempotent: if the payment already holds the
// target status nothing changes — in particular the completion timestamp
// and transaction id keep their original values — and applied is false.
//
// Legal applications: completed from processing; failed and cancelled from
// processing; refunded from completed. Anything else is an
// InvalidTransitionError and leaves the payment unchanged.
func (p *Payment) ApplyProviderStatus(target Status, transactionID string) (applied bool, err error) {
	switch target {
	case Completed, Failed, Cancelled, Refunded:
	default:
		return false, errs.NewValueIsInvalidErrorWithCause("provider status",
			fmt.Errorf("%s cannot be reported by the provider", target))
	}

	if p.status == target {
		return false, nil
	}

	legal := map[Status]Status{
		Completed: Processing,
		Failed:    Processing,
		Cancelled: Processing,
		Refunded:  Completed,
	}
	if p.status != legal[target] {
		return false, errs.NewInvalidTransitionError("payment", p.status.String(), target.String())
	}

	p.status = target
	if target == Completed {
		now := time.Now().UTC()
		p.transactionID = transactionID
		p.completedAt = &now
	}
	return true, nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}
	p.amount = amount
	return nil
}
