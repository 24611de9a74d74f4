package repositories

import (
	"context"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/core/domain"

	"gorm.io/gorm"
)

// commissionRepository implements CommissionRepository interface
type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new commission repository
func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepository{db: db}
}

// Create creates a new ledger entry
func (r *commissionRepository) Create(ctx context.Context, tx *models.CommissionTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// GetByID gets a ledger entry by ID
func (r *commissionRepository) GetByID(ctx context.Context, id uint) (*models.CommissionTransaction, error) {
	var tx models.CommissionTransaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetPendingByOrderID gets the unique pending commission for an order.
// At most one such entry exists per order.
func (r *commissionRepository) GetPendingByOrderID(ctx context.Context, orderID uint) (*models.CommissionTransaction, error) {
	var tx models.CommissionTransaction
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID, string(domain.CommissionPending)).
		First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListByUser lists a user's ledger entries, newest first
func (r *commissionRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.CommissionTransaction, int64, error) {
	var txs []*models.CommissionTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CommissionTransaction{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&txs).Error; err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

// ListByStatus lists ledger entries in a given status (admin view)
func (r *commissionRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.CommissionTransaction, int64, error) {
	var txs []*models.CommissionTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CommissionTransaction{}).Where("status = ?", status)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&txs).Error; err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

// Update updates a ledger entry
func (r *commissionRepository) Update(ctx context.Context, tx *models.CommissionTransaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// SumByUserAndStatus sums a user's commission credits in a status.
// Withdrawal rows carry negative amounts and are excluded; a processed
// withdrawal must not shrink the earned total.
func (r *commissionRepository) SumByUserAndStatus(ctx context.Context, userID uint, status string) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).Model(&models.CommissionTransaction{}).
		Where("user_id = ? AND status = ? AND amount > 0", userID, status).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

// SumByStatus sums all commission credits in a status, excluding
// withdrawal rows as in SumByUserAndStatus
func (r *commissionRepository) SumByStatus(ctx context.Context, status string) (float64, error) {
	var sum *float64
	err := r.db.WithContext(ctx).Model(&models.CommissionTransaction{}).
		Where("status = ? AND amount > 0", status).
		Select("SUM(amount)").
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}
