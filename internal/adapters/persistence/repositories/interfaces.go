package repositories

import (
	"context"

	"synergy-shop/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByReferralCode(ctx context.Context, code string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	CountReferrals(ctx context.Context, userID uint) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByReferralCode(ctx context.Context, code string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// ProductRepository defines product repository interface
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context, offset, limit int) ([]*models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	IncrementSold(ctx context.Context, id uint, quantity int) error
	TopSold(ctx context.Context, limit int) ([]*models.Product, error)
}

// CouponRepository defines coupon repository interface
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	Create(ctx context.Context, coupon *models.Coupon) error
	List(ctx context.Context) ([]*models.Coupon, error)
}

// CartRepository defines cart repository interface
type CartRepository interface {
	GetItems(ctx context.Context, userID uint) ([]*models.CartItem, error)
	GetItem(ctx context.Context, userID, productID uint) (*models.CartItem, error)
	Upsert(ctx context.Context, item *models.CartItem) error
	Remove(ctx context.Context, userID, productID uint) error
	Clear(ctx context.Context, userID uint) error
}

// OrderRepository defines order repository interface
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Order, int64, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.Order, int64, error)
	Update(ctx context.Context, order *models.Order) error
	UpdateTimelineStep(ctx context.Context, step *models.OrderTimelineStep) error
	ExistsByOrderNo(ctx context.Context, orderNo string) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// CommissionRepository defines commission ledger repository interface
type CommissionRepository interface {
	Create(ctx context.Context, tx *models.CommissionTransaction) error
	GetByID(ctx context.Context, id uint) (*models.CommissionTransaction, error)
	GetPendingByOrderID(ctx context.Context, orderID uint) (*models.CommissionTransaction, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.CommissionTransaction, int64, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*models.CommissionTransaction, int64, error)
	Update(ctx context.Context, tx *models.CommissionTransaction) error
	SumByUserAndStatus(ctx context.Context, userID uint, status string) (float64, error)
	SumByStatus(ctx context.Context, status string) (float64, error)
}

// NotificationRepository defines notification repository interface
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	ListForUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, id uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

// AddressRepository defines address repository interface
type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	GetByID(ctx context.Context, id uint) (*models.Address, error)
	GetDefault(ctx context.Context, userID uint) (*models.Address, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id uint) error
	ClearDefault(ctx context.Context, userID uint) error
}

// BankAccountRepository defines bank account repository interface
type BankAccountRepository interface {
	Create(ctx context.Context, account *models.BankAccount) error
	GetByID(ctx context.Context, id uint) (*models.BankAccount, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.BankAccount, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}
