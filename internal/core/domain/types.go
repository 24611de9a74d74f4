package domain

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// OrderStatus represents the fulfillment state of an order.
// Progression is strictly linear; there is no cancellation state.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderToShip    OrderStatus = "TO_SHIP"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
)

// orderStatusRank orders the fulfillment states for transition checks.
var orderStatusRank = map[OrderStatus]int{
	OrderPending:   0,
	OrderToShip:    1,
	OrderShipped:   2,
	OrderDelivered: 3,
}

// IsValidOrderStatus reports whether the value is a known status.
func IsValidOrderStatus(s OrderStatus) bool {
	_, ok := orderStatusRank[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// the next. Only single forward steps are allowed; skipping ahead or
// moving backward is rejected.
func CanTransition(from, to OrderStatus) bool {
	f, ok1 := orderStatusRank[from]
	t, ok2 := orderStatusRank[to]
	if !ok1 || !ok2 {
		return false
	}
	return t == f+1
}

// Timeline step labels, fixed at order creation.
const (
	StepPaymentVerified = "Payment Verified"
	StepPreparingShip   = "Preparing Ship"
	StepShipped         = "Shipped"
	StepDelivered       = "Delivered"
)

// TimelineLabels returns the fulfillment step labels in order.
func TimelineLabels() []string {
	return []string{StepPaymentVerified, StepPreparingShip, StepShipped, StepDelivered}
}

// TimelineStepFor returns the timeline step label completed by moving
// into the given status. OrderPending has no corresponding step (the
// "Payment Verified" step is completed at checkout).
func TimelineStepFor(status OrderStatus) string {
	switch status {
	case OrderToShip:
		return StepPreparingShip
	case OrderShipped:
		return StepShipped
	case OrderDelivered:
		return StepDelivered
	}
	return ""
}

// PaymentType represents how an order is paid.
type PaymentType string

const (
	PaymentWallet     PaymentType = "WALLET"
	PaymentCOD        PaymentType = "COD"
	PaymentPromptPay  PaymentType = "PROMPTPAY"
	PaymentCreditCard PaymentType = "CARD"
)

// IsValidPaymentType reports whether the value is a known payment type.
func IsValidPaymentType(p PaymentType) bool {
	switch p {
	case PaymentWallet, PaymentCOD, PaymentPromptPay, PaymentCreditCard:
		return true
	}
	return false
}

// KycStatus represents the identity-verification gate. Only VERIFIED
// users may withdraw funds.
type KycStatus string

const (
	KycUnverified KycStatus = "UNVERIFIED"
	KycPending    KycStatus = "PENDING"
	KycVerified   KycStatus = "VERIFIED"
)

// CommissionStatus represents the state of a ledger entry.
// WAITING is used for withdrawal requests awaiting processing.
type CommissionStatus string

const (
	CommissionPending CommissionStatus = "PENDING"
	CommissionPaid    CommissionStatus = "PAID"
	CommissionWaiting CommissionStatus = "WAITING"
)

// CouponType represents how a coupon discount is applied.
type CouponType string

const (
	CouponPercent CouponType = "PERCENT"
	CouponFlat    CouponType = "FLAT"
)

// NotificationType categorises in-app notifications.
type NotificationType string

const (
	NotificationOrder  NotificationType = "ORDER"
	NotificationPromo  NotificationType = "PROMO"
	NotificationSystem NotificationType = "SYSTEM"
)
