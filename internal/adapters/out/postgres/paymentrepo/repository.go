package paymentrepo

import (
	"context"
	"errors"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/core/domain/model/payment"
	"restoonline/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Add saves a new payment. The unique index on order_id rejects a second
// payment for the same order; the violation surfaces as a DuplicateError.
func (r *GormPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewDuplicateError("payment", aggregate.OrderID().String())
		}
		return err
	}

	return nil
}

// Get retrieves a payment by ID.
func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves the payment of an order.
func (r *GormPaymentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByToken retrieves the payment matching a provider token.
func (r *GormPaymentRepository) GetByToken(ctx context.Context, token string) (*payment.Payment, error) {
	if token == "" {
		return nil, errs.NewValueIsRequiredError("token")
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment", token)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllProcessing retrieves payments awaiting provider confirmation.
func (r *GormPaymentRepository) GetAllProcessing(ctx context.Context) ([]*payment.Payment, error) {
	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ?", payment.Processing.String()).
		Error
	if err != nil {
		return nil, err
	}

	payments := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, nil
}

// UpdateTransition writes the aggregate guarded on its previous status.
func (r *GormPaymentRepository) UpdateTransition(
	ctx context.Context,
	aggregate *payment.Payment,
	prev payment.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PaymentDTO{}).
		Where("id = ? AND status = ?", dto.ID, prev.String()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("payment", aggregate.ID().String())
	}

	return nil
}
