package paymentrepo

import (
	"context"
	"errors"

	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWebhookRepository implements ports.WebhookRepository using GORM.
type GormWebhookRepository struct {
	db *gorm.DB
}

// NewGormWebhookRepository creates a new GORM webhook record repository.
func NewGormWebhookRepository(db *gorm.DB) *GormWebhookRepository {
	return &GormWebhookRepository{db: db}
}

// Add saves a raw webhook record before any processing happens.
func (r *GormWebhookRepository) Add(ctx context.Context, record *payment.WebhookRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := webhookFromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateError("webhook record", record.ID().String())
		}
		return err
	}

	return nil
}

// Update writes the processing outcome of a record.
func (r *GormWebhookRepository) Update(ctx context.Context, record *payment.WebhookRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := webhookFromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&WebhookDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("webhook record", record.ID().String())
	}

	return nil
}
