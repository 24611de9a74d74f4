package models

import (
	"time"

	"gorm.io/gorm"

	"synergy-shop/internal/core/domain"
)

// ============================================================
// Auth & Account Tables
// ============================================================

// User represents users table: identity plus the affiliate financial
// account (tier, accumulated sales, wallet).
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Email             string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Name              string         `gorm:"size:100;not null" json:"name"`
	Phone             string         `gorm:"size:20" json:"phone"`
	Password          string         `gorm:"size:255;not null" json:"-"`
	PinHash           string         `gorm:"size:255" json:"-"`
	Role              string         `gorm:"size:20;default:'USER'" json:"role"`
	Tier              string         `gorm:"size:20;default:'STARTER'" json:"tier"`
	AccumulatedSales  float64        `gorm:"type:decimal(15,2);default:0" json:"accumulated_sales"`
	WalletBalance     float64        `gorm:"type:decimal(15,2);default:0" json:"wallet_balance"`
	TeamIncomeExpiry  *time.Time     `json:"team_income_expiry"`
	ReferralCode      string         `gorm:"uniqueIndex;size:12;not null" json:"referral_code"`
	ReferredBy        *uint          `gorm:"index" json:"referred_by"`
	KycStatus         string         `gorm:"size:20;default:'UNVERIFIED'" json:"kyc_status"`
	AppliedCouponCode *string        `gorm:"size:30" json:"applied_coupon_code"`
	IsActive          bool           `json:"is_active"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// HasPin reports whether the user has set a wallet PIN.
func (u *User) HasPin() bool {
	return u.PinHash != ""
}

// UserResponse DTO
type UserResponse struct {
	ID               uint       `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone"`
	Role             string     `json:"role"`
	Tier             string     `json:"tier"`
	AccumulatedSales float64    `json:"accumulated_sales"`
	WalletBalance    float64    `json:"wallet_balance"`
	TeamIncomeExpiry *time.Time `json:"team_income_expiry"`
	ReferralCode     string     `json:"referral_code"`
	KycStatus        string     `json:"kyc_status"`
	CommissionRate   float64    `json:"commission_rate"`
	DiscountRate     float64    `json:"discount_rate"`
	NextTierTarget   float64    `json:"next_tier_target"`
	HasPin           bool       `json:"has_pin"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	tier := domain.Tier(u.Tier)
	return &UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Phone:            u.Phone,
		Role:             u.Role,
		Tier:             u.Tier,
		AccumulatedSales: u.AccumulatedSales,
		WalletBalance:    u.WalletBalance,
		TeamIncomeExpiry: u.TeamIncomeExpiry,
		ReferralCode:     u.ReferralCode,
		KycStatus:        u.KycStatus,
		CommissionRate:   domain.CommissionRate(tier),
		DiscountRate:     domain.MemberDiscountRate(tier),
		NextTierTarget:   domain.NextTierTarget(u.AccumulatedSales),
		HasPin:           u.HasPin(),
		CreatedAt:        u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Shipping & Payout Destinations
// ============================================================

// Address represents shipping addresses. Checkout snapshots the
// selected address onto the order.
type Address struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"index;not null" json:"user_id"`
	RecipientName string         `gorm:"size:100;not null" json:"recipient_name"`
	Phone         string         `gorm:"size:20;not null" json:"phone"`
	AddressLine   string         `gorm:"size:255;not null" json:"address_line"`
	IsDefault     bool           `gorm:"default:false" json:"is_default"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Address) TableName() string {
	return "addresses"
}

// BankAccount represents withdrawal destinations (capped at 2 per user).
type BankAccount struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"index;not null" json:"user_id"`
	BankName      string         `gorm:"size:100;not null" json:"bank_name"`
	AccountNumber string         `gorm:"size:30;not null" json:"account_number"`
	AccountName   string         `gorm:"size:100;not null" json:"account_name"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Address{},
		&BankAccount{},
		&Product{},
		&Coupon{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&OrderTimelineStep{},
		&CommissionTransaction{},
		&Notification{},
	)
}
