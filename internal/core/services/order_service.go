package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/core/domain"
	"synergy-shop/internal/pkg/money"

	"gorm.io/gorm"
)

// Order service errors
var (
	ErrOrderNotFound            = errors.New("order not found")
	ErrEmptyCart                = errors.New("cart is empty")
	ErrNoShippingAddress        = errors.New("no shipping address selected")
	ErrInsufficientBalance      = errors.New("insufficient wallet balance")
	ErrInvalidPaymentType       = errors.New("invalid payment type")
	ErrInvalidOrderStatus       = errors.New("invalid order status")
	ErrInvalidStatusTransition  = errors.New("invalid order status transition")
	ErrOrderNumberExhausted     = errors.New("could not generate a unique order number")
)

const (
	orderNoPrefix     = "SYN-"
	orderNoMaxRetries = 5
	teamIncomeWindow  = 30 * 24 * time.Hour
)

// OrderService runs checkout and the fulfillment state machine. Every
// checkout and status advance commits as a single database transaction.
type OrderService struct {
	db                  *gorm.DB
	orderRepo           repositories.OrderRepository
	cartRepo            repositories.CartRepository
	userRepo            repositories.UserRepository
	addressRepo         repositories.AddressRepository
	couponRepo          repositories.CouponRepository
	commissionService   *CommissionService
	notificationService *NotificationService
}

// NewOrderService creates a new order service
func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	userRepo repositories.UserRepository,
	addressRepo repositories.AddressRepository,
	couponRepo repositories.CouponRepository,
	commissionService *CommissionService,
	notificationService *NotificationService,
) *OrderService {
	return &OrderService{
		db:                  db,
		orderRepo:           orderRepo,
		cartRepo:            cartRepo,
		userRepo:            userRepo,
		addressRepo:         addressRepo,
		couponRepo:          couponRepo,
		commissionService:   commissionService,
		notificationService: notificationService,
	}
}

// CheckoutInput represents checkout input
type CheckoutInput struct {
	PaymentType string `json:"payment_type" validate:"required"`
	AddressID   *uint  `json:"address_id"`
}

// Checkout converts the user's cart into an order. Preconditions are
// checked in a fixed sequence: shipping address, cart contents, then
// wallet balance. On success everything commits in one transaction:
// the order with its item snapshots and timeline, the wallet debit for
// wallet payments, the sales/tier advance, product sold counters, the
// pending commission, and the cart/coupon clear.
func (s *OrderService) Checkout(ctx context.Context, userID uint, input *CheckoutInput) (*models.Order, error) {
	paymentType := domain.PaymentType(input.PaymentType)
	if !domain.IsValidPaymentType(paymentType) {
		return nil, ErrInvalidPaymentType
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	address, err := s.resolveAddress(ctx, userID, input.AddressID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	coupon, err := s.loadAppliedCoupon(ctx, user)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.CartLine{
			Price:    item.Product.Price,
			Quantity: item.Quantity,
		})
	}

	// Tier at purchase time drives both the commission rate and the
	// team-income extension, even when this order advances the tier.
	purchaseTier := domain.Tier(user.Tier)
	totals := domain.CartTotals(lines, purchaseTier, coupon)

	if paymentType == domain.PaymentWallet && user.WalletBalance < totals.Total {
		return nil, ErrInsufficientBalance
	}

	var order *models.Order
	err = s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepository(tx)
		cartRepo := repositories.NewCartRepository(tx)
		userRepo := repositories.NewUserRepository(tx)
		productRepo := repositories.NewProductRepository(tx)
		commissionRepo := repositories.NewCommissionRepository(tx)

		orderNo, err := s.generateOrderNo(ctx, orderRepo)
		if err != nil {
			return err
		}

		now := time.Now()
		order = &models.Order{
			OrderNo:     orderNo,
			UserID:      user.ID,
			Status:      string(domain.OrderPending),
			PaymentType: string(paymentType),
			Total:       totals.Total,
			Recipient:   address.RecipientName,
			Phone:       address.Phone,
			AddressLine: address.AddressLine,
		}
		for _, item := range items {
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Price:       item.Product.Price,
				Image:       item.Product.Image,
				Quantity:    item.Quantity,
			})
		}
		for i, label := range domain.TimelineLabels() {
			step := models.OrderTimelineStep{
				StepOrder: i + 1,
				Label:     label,
			}
			if label == domain.StepPaymentVerified {
				step.Completed = true
				step.CompletedAt = &now
			}
			order.Timeline = append(order.Timeline, step)
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}

		if paymentType == domain.PaymentWallet {
			user.WalletBalance = money.Sub(user.WalletBalance, totals.Total)
		}

		user.AccumulatedSales = money.Add(user.AccumulatedSales, totals.Total)
		user.Tier = string(domain.ResolveTier(user.AccumulatedSales))

		if purchaseTier != domain.TierStarter {
			base := now
			if user.TeamIncomeExpiry != nil && user.TeamIncomeExpiry.After(now) {
				base = *user.TeamIncomeExpiry
			}
			expiry := base.Add(teamIncomeWindow)
			user.TeamIncomeExpiry = &expiry
		}

		user.AppliedCouponCode = nil
		if err := userRepo.Update(ctx, user); err != nil {
			return err
		}

		for _, item := range items {
			if err := productRepo.IncrementSold(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		commission := &models.CommissionTransaction{
			UserID:  user.ID,
			OrderID: &order.ID,
			Amount:  domain.CalculateCommission(totals.Total, purchaseTier),
			Status:  string(domain.CommissionPending),
			Source:  fmt.Sprintf("ค่าคอมมิชชั่นจากคำสั่งซื้อ %s", orderNo),
		}
		if err := commissionRepo.Create(ctx, commission); err != nil {
			return err
		}

		return cartRepo.Clear(ctx, userID)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🛒 Order placed: %s user=%d total=%.2f payment=%s", order.OrderNo, user.ID, order.Total, order.PaymentType)

	if s.notificationService != nil {
		s.notificationService.NotifyOrderPlaced(ctx, user.ID, order.OrderNo, order.Total)
	}

	return order, nil
}

// GetOrder returns one of the user's orders with items and timeline
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// OrderListOutput represents a page of orders
type OrderListOutput struct {
	Orders []*models.Order `json:"orders"`
	Total  int64           `json:"total"`
}

// ListOrders lists a user's orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, userID uint, offset, limit int) (*OrderListOutput, error) {
	orders, total, err := s.orderRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	return &OrderListOutput{Orders: orders, Total: total}, nil
}

// ListAllOrders lists orders across all users, optionally filtered by status
func (s *OrderService) ListAllOrders(ctx context.Context, status string, offset, limit int) (*OrderListOutput, error) {
	if status != "" && !domain.IsValidOrderStatus(domain.OrderStatus(status)) {
		return nil, ErrInvalidOrderStatus
	}
	orders, total, err := s.orderRepo.List(ctx, status, offset, limit)
	if err != nil {
		return nil, err
	}
	return &OrderListOutput{Orders: orders, Total: total}, nil
}

// UpdateStatus advances an order one step through the fulfillment
// chain. Re-applying the current status is a no-op; skipping ahead or
// moving backward is rejected. Reaching DELIVERED settles the pending
// commission in the same transaction.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, newStatus domain.OrderStatus) (*models.Order, error) {
	if !domain.IsValidOrderStatus(newStatus) {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	current := domain.OrderStatus(order.Status)
	if current == newStatus {
		return order, nil
	}
	if !domain.CanTransition(current, newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepository(tx)

		order.Status = string(newStatus)
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}

		label := domain.TimelineStepFor(newStatus)
		now := time.Now()
		for i := range order.Timeline {
			if order.Timeline[i].Label != label || order.Timeline[i].Completed {
				continue
			}
			order.Timeline[i].Completed = true
			order.Timeline[i].CompletedAt = &now
			if err := orderRepo.UpdateTimelineStep(ctx, &order.Timeline[i]); err != nil {
				return err
			}
		}

		if newStatus == domain.OrderDelivered {
			return s.commissionService.SettleInTx(ctx, tx, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📦 Order %s status updated: %s → %s", order.OrderNo, current, newStatus)

	if s.notificationService != nil {
		s.notificationService.NotifyOrderStatus(ctx, order.UserID, order.OrderNo, newStatus)
	}

	return order, nil
}

// resolveAddress returns the requested shipping address, falling back
// to the user's default
func (s *OrderService) resolveAddress(ctx context.Context, userID uint, addressID *uint) (*models.Address, error) {
	if addressID != nil {
		address, err := s.addressRepo.GetByID(ctx, *addressID)
		if err != nil || address.UserID != userID {
			return nil, ErrNoShippingAddress
		}
		return address, nil
	}

	address, err := s.addressRepo.GetDefault(ctx, userID)
	if err != nil {
		return nil, ErrNoShippingAddress
	}
	return address, nil
}

func (s *OrderService) loadAppliedCoupon(ctx context.Context, user *models.User) (*domain.AppliedCoupon, error) {
	if user.AppliedCouponCode == nil {
		return nil, nil
	}

	coupon, err := s.couponRepo.GetByCode(ctx, *user.AppliedCouponCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !coupon.IsActive {
		return nil, nil
	}

	return &domain.AppliedCoupon{
		Type:  domain.CouponType(coupon.Type),
		Value: coupon.Value,
	}, nil
}

// generateOrderNo builds order numbers like SYN-483920, retrying on
// the rare collision
func (s *OrderService) generateOrderNo(ctx context.Context, orderRepo repositories.OrderRepository) (string, error) {
	for attempt := 0; attempt < orderNoMaxRetries; attempt++ {
		orderNo := fmt.Sprintf("%s%06d", orderNoPrefix, rand.Intn(1000000))
		exists, err := orderRepo.ExistsByOrderNo(ctx, orderNo)
		if err != nil {
			return "", err
		}
		if !exists {
			return orderNo, nil
		}
	}
	return "", ErrOrderNumberExhausted
}
