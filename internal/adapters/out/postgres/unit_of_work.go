// Package postgres provides the GORM-based Unit of Work used by command
// handlers. A unit of work owns one database transaction; repositories
// obtained from it are bound to that transaction, so a command's reads,
// guarded updates and inserts commit or roll back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op, which keeps the deferred
// rollback idiom safe. Each concurrent command must use its own instance.
package postgres

import (
	"context"

	"restoonline/internal/adapters/out/postgres/assignmentrepo"
	"restoonline/internal/adapters/out/postgres/courierrepo"
	"restoonline/internal/adapters/out/postgres/notificationrepo"
	"restoonline/internal/adapters/out/postgres/orderrepo"
	"restoonline/internal/adapters/out/postgres/paymentrepo"
	"restoonline/internal/adapters/out/postgres/ratingrepo"
	"restoonline/internal/adapters/out/postgres/staffrepo"
	"restoonline/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// database handle. Each Create call returns a fresh instance with its own
// transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given database.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork implements ports.UnitOfWork on a GORM transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a database transaction. Calling Begin again on an instance
// with an open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx

	return nil
}

// Commit finalizes the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction. Once the transaction finished,
// via Commit or an earlier Rollback, this is a no-op so it can be deferred
// unconditionally.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an order repository bound to the transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// AssignmentRepository returns an assignment repository bound to the transaction.
func (uow *GormUnitOfWork) AssignmentRepository() ports.AssignmentRepository {
	return assignmentrepo.NewGormAssignmentRepository(uow.conn())
}

// PaymentRepository returns a payment repository bound to the transaction.
func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn())
}

// WebhookRepository returns a webhook record repository bound to the transaction.
func (uow *GormUnitOfWork) WebhookRepository() ports.WebhookRepository {
	return paymentrepo.NewGormWebhookRepository(uow.conn())
}

// CourierRepository returns a courier repository bound to the transaction.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn())
}

// RatingRepository returns a rating repository bound to the transaction.
func (uow *GormUnitOfWork) RatingRepository() ports.RatingRepository {
	return ratingrepo.NewGormRatingRepository(uow.conn())
}

// RunMigrations creates or updates the schema for every table this service
// owns, plus the partial unique index AutoMigrate cannot express: at most
// one non-refused assignment per order.
//
// The database handle must be opened with TranslateError enabled so unique
// violations surface as gorm.ErrDuplicatedKey.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&assignmentrepo.LocationUpdateDTO{},
		&paymentrepo.PaymentDTO{},
		&paymentrepo.WebhookDTO{},
		&courierrepo.DeliveryPersonDTO{},
		&ratingrepo.DeliveryRatingDTO{},
		&ratingrepo.MenuItemRatingDTO{},
		&ratingrepo.MenuItemStatsDTO{},
		&notificationrepo.NotificationDTO{},
		&staffrepo.StaffUserDTO{},
	); err != nil {
		return err
	}

	return db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_assignments_one_active_per_order
		ON delivery_assignments (order_id)
		WHERE status <> 'refused'
	`).Error
}
