package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Order & Ledger Tables
// ============================================================

// Order represents orders table. Line items and the shipping address
// are snapshots taken at purchase time; they never reference the live
// cart or address rows.
type Order struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderNo     string         `gorm:"uniqueIndex;size:20;not null" json:"order_no"`
	UserID      uint           `gorm:"index;not null" json:"user_id"`
	Status      string         `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	PaymentType string         `gorm:"size:20;not null" json:"payment_type"`
	Total       float64        `gorm:"type:decimal(15,2);not null" json:"total"`
	Recipient   string         `gorm:"size:100;not null" json:"recipient"`
	Phone       string         `gorm:"size:20" json:"phone"`
	AddressLine string         `gorm:"size:255;not null" json:"address_line"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User     *User               `gorm:"foreignKey:UserID" json:"-"`
	Items    []OrderItem         `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Timeline []OrderTimelineStep `gorm:"foreignKey:OrderID" json:"timeline,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem represents order_items table: a snapshot of a cart line at
// purchase time.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index;not null" json:"order_id"`
	ProductID   uint    `gorm:"not null" json:"product_id"`
	ProductName string  `gorm:"size:150;not null" json:"product_name"`
	Price       float64 `gorm:"type:decimal(15,2);not null" json:"price"`
	Image       string  `gorm:"size:255" json:"image"`
	Quantity    int     `gorm:"not null" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderTimelineStep represents order_timeline_steps table. Step count
// and labels are fixed at order creation; completion follows the
// fulfillment state machine.
type OrderTimelineStep struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OrderID     uint       `gorm:"index;not null" json:"order_id"`
	StepOrder   int        `gorm:"not null" json:"step_order"`
	Label       string     `gorm:"size:50;not null" json:"label"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (OrderTimelineStep) TableName() string {
	return "order_timeline_steps"
}

// CommissionTransaction represents commission_transactions table: the
// signed wallet ledger. Positive amounts are earned commissions;
// negative amounts are withdrawal debits. At most one PENDING entry
// exists per order.
type CommissionTransaction struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	UserID  uint    `gorm:"index;not null" json:"user_id"`
	OrderID *uint   `gorm:"index" json:"order_id"`
	Amount  float64 `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status  string  `gorm:"size:20;not null;index" json:"status"`
	Source  string  `gorm:"size:255" json:"source"`

	// Withdrawal fields: structured payout destination snapshot plus
	// the fee/tax breakdown behind the displayed net amount. The
	// wallet debit stays the gross Amount.
	BankAccountID *uint   `json:"bank_account_id,omitempty"`
	BankName      string  `gorm:"size:100" json:"bank_name,omitempty"`
	AccountNumber string  `gorm:"size:30" json:"account_number,omitempty"`
	Fee           float64 `gorm:"type:decimal(15,2);default:0" json:"fee"`
	Tax           float64 `gorm:"type:decimal(15,2);default:0" json:"tax"`
	Net           float64 `gorm:"type:decimal(15,2);default:0" json:"net"`

	PaidAt      *time.Time `json:"paid_at"`
	ProcessedAt *time.Time `json:"processed_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	User  *User  `gorm:"foreignKey:UserID" json:"-"`
	Order *Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (CommissionTransaction) TableName() string {
	return "commission_transactions"
}

// Notification represents notifications table. A nil UserID is a
// global broadcast visible to every user.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	Link      string    `gorm:"size:100" json:"link"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
