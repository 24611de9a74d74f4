package repositories

import (
	"context"

	"synergy-shop/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// bankAccountRepository implements BankAccountRepository interface
type bankAccountRepository struct {
	db *gorm.DB
}

// NewBankAccountRepository creates a new bank account repository
func NewBankAccountRepository(db *gorm.DB) BankAccountRepository {
	return &bankAccountRepository{db: db}
}

// Create creates a new bank account
func (r *bankAccountRepository) Create(ctx context.Context, account *models.BankAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// GetByID gets a bank account by ID
func (r *bankAccountRepository) GetByID(ctx context.Context, id uint) (*models.BankAccount, error) {
	var account models.BankAccount
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListByUser lists a user's bank accounts
func (r *bankAccountRepository) ListByUser(ctx context.Context, userID uint) ([]*models.BankAccount, error) {
	var accounts []*models.BankAccount
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&accounts).Error
	return accounts, err
}

// CountByUser counts a user's bank accounts
func (r *bankAccountRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BankAccount{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// Delete soft deletes a bank account
func (r *bankAccountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.BankAccount{}, id).Error
}
