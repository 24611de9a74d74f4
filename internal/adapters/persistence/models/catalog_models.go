package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Catalog Tables
// ============================================================

// Product represents products table. Sold counts are advanced by
// checkout only.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:150;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"type:decimal(15,2);not null" json:"price"`
	Image       string         `gorm:"size:255" json:"image"`
	Sold        int            `gorm:"default:0" json:"sold"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// Coupon represents coupons table. At most one coupon is applied to a
// cart at a time; it is cleared on checkout or explicit removal.
type Coupon struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Code        string         `gorm:"uniqueIndex;size:30;not null" json:"code"`
	Type        string         `gorm:"size:10;not null" json:"type"`
	Value       float64        `gorm:"type:decimal(15,2);not null" json:"value"`
	Description string         `gorm:"size:255" json:"description"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// CartItem represents cart_items table: the live cart, consumed on
// successful checkout.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_cart_user_product,unique;not null" json:"user_id"`
	ProductID uint      `gorm:"index:idx_cart_user_product,unique;not null" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
