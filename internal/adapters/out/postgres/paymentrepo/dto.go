// Package paymentrepo persists payments and the raw webhook records of the
// payment provider. One payment per order is enforced with a unique index on
// order_id.
package paymentrepo

import (
	"time"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// PaymentDTO represents the database structure for payments.
type PaymentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	Token      string `gorm:"index"`
	InvoiceURL string

	Amount        int64
	Status        string `gorm:"type:varchar(16);index"`
	TransactionID string
	FailureReason string

	CreatedAt   time.Time
	CompletedAt *time.Time
}

// TableName specifies the database table name for payments.
func (PaymentDTO) TableName() string {
	return "payments"
}

// WebhookDTO represents the database structure for raw provider callbacks.
// The provider status is stored verbatim, even when unparseable.
type WebhookDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PaymentID *uuid.UUID `gorm:"type:uuid;index"`

	Token         string
	Status        string
	TransactionID string

	Processed       bool `gorm:"index"`
	ProcessingError string

	ReceivedAt  time.Time
	ProcessedAt *time.Time
}

// TableName specifies the database table name for webhook records.
func (WebhookDTO) TableName() string {
	return "payment_webhooks"
}

func fromDomain(aggregate *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.OrderID().Bytes(),
		Token:         aggregate.Token(),
		InvoiceURL:    aggregate.InvoiceURL(),
		Amount:        aggregate.Amount(),
		Status:        aggregate.Status().String(),
		TransactionID: aggregate.TransactionID(),
		FailureReason: aggregate.FailureReason(),
		CreatedAt:     aggregate.CreatedAt(),
		CompletedAt:   aggregate.CompletedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := payment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id, orderID,
		dto.Token, dto.InvoiceURL,
		dto.Amount, status,
		dto.TransactionID, dto.FailureReason,
		dto.CreatedAt, dto.CompletedAt,
	)
}

func webhookFromDomain(record *payment.WebhookRecord) WebhookDTO {
	var paymentID *uuid.UUID
	if id := record.PaymentID(); id != nil {
		raw := id.Bytes()
		paymentID = &raw
	}

	return WebhookDTO{
		ID:              record.ID().Bytes(),
		PaymentID:       paymentID,
		Token:           record.Token(),
		Status:          record.ProviderStatus(),
		TransactionID:   record.TransactionID(),
		Processed:       record.Processed(),
		ProcessingError: record.ProcessingError(),
		ReceivedAt:      record.ReceivedAt(),
		ProcessedAt:     record.ProcessedAt(),
	}
}

func webhookToDomain(dto WebhookDTO) (*payment.WebhookRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var paymentID *kernel.UUID
	if dto.PaymentID != nil {
		pID, pErr := kernel.UUIDFromBytes((*dto.PaymentID)[:])
		if pErr != nil {
			return nil, pErr
		}
		paymentID = &pID
	}

	return payment.RestoreWebhookRecord(
		id, paymentID,
		dto.Token, dto.Status, dto.TransactionID,
		dto.Processed, dto.ProcessingError,
		dto.ReceivedAt, dto.ProcessedAt,
	)
}
