package reconcile

import (
	"context"
	"time"

	"github.com/FelixBrandt/ShopFox/app/models"
	"gorm.io/gorm"
)

// Repository provides DB operations used by the reconciliation service.
// WithTransaction hands the callback a repository scoped to the transaction,
// so payment and order updates commit or roll back together.
type Repository interface {
	FindStalePayments(ctx context.Context, olderThan time.Time, limit int) ([]models.Payment, error)
	UpdatePaymentStatusIfCurrent(ctx context.Context, paymentID uint, currentStatus, newStatus string) (bool, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, newStatus string) error
	WithTransaction(ctx context.Context, fn func(tx Repository) error) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a reconciliation repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindStalePayments(ctx context.Context, olderThan time.Time, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("status IN ? AND external_reference IS NOT NULL AND external_reference <> '' AND updated_at < ?",
			[]string{models.PaymentStatusPending, models.PaymentStatusProcessing}, olderThan).
		Order("updated_at ASC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdatePaymentStatusIfCurrent performs the optimistic guarded update: the
// status only changes if it still matches what the scan saw. Zero affected
// rows means a concurrent actor got there first.
func (r *gormRepository) UpdatePaymentStatusIfCurrent(ctx context.Context, paymentID uint, currentStatus, newStatus string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", paymentID, currentStatus).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *gormRepository) UpdateOrderStatus(ctx context.Context, orderID uint, newStatus string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": time.Now(),
		}).Error
}

func (r *gormRepository) WithTransaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}
