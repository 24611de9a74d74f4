package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/core/domain"

	"gorm.io/gorm"
)

func TestCheckoutWalletPayment(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orderService, _ := newTestOrderService(db)

	user := createTestUser(t, db, "buyer@test.local", testUserOpts{wallet: 2000})
	createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "คอลลาเจน", 1070)
	addToCart(t, db, user.ID, product.ID, 1)

	order, err := orderService.Checkout(ctx, user.ID, &CheckoutInput{PaymentType: "WALLET"})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if !strings.HasPrefix(order.OrderNo, "SYN-") {
		t.Errorf("OrderNo = %q, want SYN- prefix", order.OrderNo)
	}
	if order.Status != string(domain.OrderPending) {
		t.Errorf("Status = %q, want PENDING", order.Status)
	}
	if order.Total != 1070 {
		t.Errorf("Total = %.2f, want 1070.00", order.Total)
	}
	if len(order.Items) != 1 || order.Items[0].ProductName != "คอลลาเจน" {
		t.Errorf("unexpected order items: %+v", order.Items)
	}
	if len(order.Timeline) != 4 {
		t.Fatalf("Timeline has %d steps, want 4", len(order.Timeline))
	}
	if !order.Timeline[0].Completed || order.Timeline[0].CompletedAt == nil {
		t.Error("Payment Verified step should be completed at checkout")
	}
	for _, step := range order.Timeline[1:] {
		if step.Completed {
			t.Errorf("step %q should not be completed yet", step.Label)
		}
	}

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if fresh.WalletBalance != 930 {
		t.Errorf("WalletBalance = %.2f, want 930.00", fresh.WalletBalance)
	}
	if fresh.AccumulatedSales != 1070 {
		t.Errorf("AccumulatedSales = %.2f, want 1070.00", fresh.AccumulatedSales)
	}
	if fresh.Tier != string(domain.TierStarter) {
		t.Errorf("Tier = %q, want STARTER", fresh.Tier)
	}
	if fresh.TeamIncomeExpiry != nil {
		t.Error("starter purchase should not set team income expiry")
	}

	// Starter rate on the VAT-exclusive total: 1070/1.07*0.05.
	var commission models.CommissionTransaction
	if err := db.Where("order_id = ?", order.ID).First(&commission).Error; err != nil {
		t.Fatalf("commission not created: %v", err)
	}
	if commission.Amount != 50.00 {
		t.Errorf("commission Amount = %.2f, want 50.00", commission.Amount)
	}
	if commission.Status != string(domain.CommissionPending) {
		t.Errorf("commission Status = %q, want PENDING", commission.Status)
	}

	var freshProduct models.Product
	if err := db.First(&freshProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if freshProduct.Sold != 1 {
		t.Errorf("Sold = %d, want 1", freshProduct.Sold)
	}

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	if cartCount != 0 {
		t.Errorf("cart has %d items after checkout, want 0", cartCount)
	}
}

func TestCheckoutInsufficientBalanceLeavesNoTrace(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orderService, _ := newTestOrderService(db)

	user := createTestUser(t, db, "broke@test.local", testUserOpts{wallet: 500})
	createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "เซรั่ม", 1290)
	addToCart(t, db, user.ID, product.ID, 1)

	_, err := orderService.Checkout(ctx, user.ID, &CheckoutInput{PaymentType: "WALLET"})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("Checkout() error = %v, want ErrInsufficientBalance", err)
	}

	var orderCount, commissionCount, cartCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.CommissionTransaction{}).Count(&commissionCount)
	db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount)
	if orderCount != 0 || commissionCount != 0 {
		t.Errorf("failed checkout wrote rows: orders=%d commissions=%d", orderCount, commissionCount)
	}
	if cartCount != 1 {
		t.Errorf("cart has %d items, want 1 (untouched)", cartCount)
	}

	var fresh models.User
	db.First(&fresh, user.ID)
	if fresh.WalletBalance != 500 {
		t.Errorf("WalletBalance = %.2f, want 500.00 (untouched)", fresh.WalletBalance)
	}
}

func TestCheckoutPreconditionOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orderService, _ := newTestOrderService(db)

	// No address and no cart: the address check fires first.
	user := createTestUser(t, db, "bare@test.local", testUserOpts{})
	_, err := orderService.Checkout(ctx, user.ID, &CheckoutInput{PaymentType: "WALLET"})
	if !errors.Is(err, ErrNoShippingAddress) {
		t.Errorf("Checkout() error = %v, want ErrNoShippingAddress", err)
	}

	// With an address but an empty cart.
	createTestAddress(t, db, user.ID)
	_, err = orderService.Checkout(ctx, user.ID, &CheckoutInput{PaymentType: "WALLET"})
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("Checkout() error = %v, want ErrEmptyCart", err)
	}

	// Unknown payment types are rejected before anything else.
	_, err = orderService.Checkout(ctx, user.ID, &CheckoutInput{PaymentType: "BITCOIN"})
	if !errors.Is(err, ErrInvalidPaymentType) {
		t.Errorf("Checkout() error = %v, want ErrInvalidPaymentType", err)
	}
}

func TestCheckoutTierAdvanceUsesPurchaseTimeRate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orderService, _ := newTestOrderService(db)

	// 2500 accumulated; this 1070 order crosses the 3000 threshold.
	user := createTestUser(t, db, "riser@test.local", testUserOpts{sales: 2500})
	createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "กาแฟ", 1070)
	addToCart(t, db, user.ID, product.ID, 1)

	order, err := orderService.Checkout(ctx, user.ID, &CheckoutInput{PaymentType: "COD"})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	var fresh models.User
	db.First(&fresh, user.ID)
	if fresh.Tier != string(domain.TierMarketer) {
		t.Errorf("Tier = %q, want MARKETER after crossing 3000", fresh.Tier)
	}
	if fresh.TeamIncomeExpiry != nil {
		t.Error("expiry must not extend when the purchase was made as STARTER")
	}

	// Commission uses the tier held before checkout, not the new one.
	var commission models.CommissionTransaction
	if err := db.Where("order_id = ?", order.ID).First(&commission).Error; err != nil {
		t.Fatalf("commission not created: %v", err)
	}
	if commission.Amount != 50.00 {
		t.Errorf("commission Amount = %.2f, want 50.00 (STARTER rate)", commission.Amount)
	}
}

func TestCheckoutExtendsTeamIncomeExpiry(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orderService, _ := newTestOrderService(db)

	user := createTestUser(t, db, "member@test.local", testUserOpts{tier: domain.TierMarketer, sales: 5000})
	createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "กันแดด", 690)
	addToCart(t, db, user.ID, product.ID, 1)

	before := time.Now()
	if _, err := orderService.Checkout(ctx, user.ID, &CheckoutInput{PaymentType: "COD"}); err != nil {
		t.Fatalf("first Checkout() error = %v", err)
	}

	var fresh models.User
	db.First(&fresh, user.ID)
	if fresh.TeamIncomeExpiry == nil {
		t.Fatal("expected team income expiry to be set")
	}
	first := *fresh.TeamIncomeExpiry
	if first.Before(before.Add(30*24*time.Hour-time.Minute)) || first.After(time.Now().Add(30*24*time.Hour+time.Minute)) {
		t.Errorf("first expiry = %v, want roughly now+30d", first)
	}

	// A second purchase stacks another 30 days on top of the future expiry.
	addToCart(t, db, user.ID, product.ID, 1)
	if _, err := orderService.Checkout(ctx, user.ID, &CheckoutInput{PaymentType: "COD"}); err != nil {
		t.Fatalf("second Checkout() error = %v", err)
	}
	db.First(&fresh, user.ID)
	second := *fresh.TeamIncomeExpiry
	if diff := second.Sub(first); diff < 30*24*time.Hour-time.Minute || diff > 30*24*time.Hour+time.Minute {
		t.Errorf("second expiry extends by %v, want 30 days on top of the first", diff)
	}
}

func TestCheckoutConsumesCoupon(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orderService, _ := newTestOrderService(db)

	user := createTestUser(t, db, "saver@test.local", testUserOpts{tier: domain.TierMarketer, sales: 4000, wallet: 2000})
	createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "โปรตีน", 1000)
	addToCart(t, db, user.ID, product.ID, 1)

	coupon := &models.Coupon{Code: "SAVE5", Type: string(domain.CouponPercent), Value: 5, IsActive: true}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon: %v", err)
	}
	code := coupon.Code
	db.Model(&models.User{}).Where("id = ?", user.ID).Update("applied_coupon_code", code)

	// 1000 - 100 member - 50 coupon = 850.
	order, err := orderService.Checkout(ctx, user.ID, &CheckoutInput{PaymentType: "WALLET"})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if order.Total != 850 {
		t.Errorf("Total = %.2f, want 850.00", order.Total)
	}

	var fresh models.User
	db.First(&fresh, user.ID)
	if fresh.AppliedCouponCode != nil {
		t.Errorf("AppliedCouponCode = %v, want cleared", *fresh.AppliedCouponCode)
	}
	if fresh.WalletBalance != 1150 {
		t.Errorf("WalletBalance = %.2f, want 1150.00", fresh.WalletBalance)
	}
}

func checkoutTestOrder(t *testing.T, db *gorm.DB, orderService *OrderService, email string) *models.Order {
	t.Helper()
	ctx := context.Background()

	user := createTestUser(t, db, email, testUserOpts{wallet: 5000})
	createTestAddress(t, db, user.ID)
	product := createTestProduct(t, db, "วิตามินซี", 450)
	addToCart(t, db, user.ID, product.ID, 1)

	order, err := orderService.Checkout(ctx, user.ID, &CheckoutInput{PaymentType: "WALLET"})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	return order
}

func TestUpdateStatusStrictProgression(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orderService, _ := newTestOrderService(db)
	order := checkoutTestOrder(t, db, orderService, "ship@test.local")

	// Skipping ahead is rejected.
	if _, err := orderService.UpdateStatus(ctx, order.ID, domain.OrderShipped); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("PENDING→SHIPPED error = %v, want ErrInvalidStatusTransition", err)
	}

	// Unknown statuses are rejected outright.
	if _, err := orderService.UpdateStatus(ctx, order.ID, domain.OrderStatus("CANCELLED")); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Errorf("unknown status error = %v, want ErrInvalidOrderStatus", err)
	}

	// The single forward step succeeds and completes its timeline step.
	updated, err := orderService.UpdateStatus(ctx, order.ID, domain.OrderToShip)
	if err != nil {
		t.Fatalf("PENDING→TO_SHIP error = %v", err)
	}
	if updated.Status != string(domain.OrderToShip) {
		t.Errorf("Status = %q, want TO_SHIP", updated.Status)
	}
	var completed bool
	for _, step := range updated.Timeline {
		if step.Label == domain.StepPreparingShip {
			completed = step.Completed
		}
	}
	if !completed {
		t.Error("Preparing Ship timeline step should be completed")
	}

	// Repeating the same status is a no-op, not an error.
	again, err := orderService.UpdateStatus(ctx, order.ID, domain.OrderToShip)
	if err != nil {
		t.Fatalf("same-status update error = %v", err)
	}
	if again.Status != string(domain.OrderToShip) {
		t.Errorf("Status = %q after no-op, want TO_SHIP", again.Status)
	}

	// Moving backward is rejected.
	if _, err := orderService.UpdateStatus(ctx, order.ID, domain.OrderPending); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("TO_SHIP→PENDING error = %v, want ErrInvalidStatusTransition", err)
	}
}

func TestDeliverySettlesCommissionOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orderService, commissionService := newTestOrderService(db)
	order := checkoutTestOrder(t, db, orderService, "deliver@test.local")

	for _, status := range []domain.OrderStatus{domain.OrderToShip, domain.OrderShipped, domain.OrderDelivered} {
		if _, err := orderService.UpdateStatus(ctx, order.ID, status); err != nil {
			t.Fatalf("UpdateStatus(%s) error = %v", status, err)
		}
	}

	var commission models.CommissionTransaction
	if err := db.Where("order_id = ?", order.ID).First(&commission).Error; err != nil {
		t.Fatalf("commission not found: %v", err)
	}
	if commission.Status != string(domain.CommissionPaid) {
		t.Errorf("commission Status = %q, want PAID", commission.Status)
	}
	if commission.PaidAt == nil {
		t.Error("PaidAt should be set on settlement")
	}

	// 450/1.07*0.05 = 21.03, credited on top of 5000-450 = 4550.
	var fresh models.User
	db.First(&fresh, order.UserID)
	if fresh.WalletBalance != 4571.03 {
		t.Errorf("WalletBalance = %.2f, want 4571.03", fresh.WalletBalance)
	}

	// Settling an already settled order changes nothing.
	if err := commissionService.Settle(ctx, order.ID); err != nil {
		t.Fatalf("repeat Settle() error = %v", err)
	}
	db.First(&fresh, order.UserID)
	if fresh.WalletBalance != 4571.03 {
		t.Errorf("WalletBalance = %.2f after repeat settle, want 4571.03", fresh.WalletBalance)
	}
}

func TestGetOrderOwnership(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	orderService, _ := newTestOrderService(db)
	order := checkoutTestOrder(t, db, orderService, "owner@test.local")

	other := createTestUser(t, db, "other@test.local", testUserOpts{})
	if _, err := orderService.GetOrder(ctx, other.ID, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("GetOrder() by non-owner error = %v, want ErrOrderNotFound", err)
	}

	got, err := orderService.GetOrder(ctx, order.UserID, order.ID)
	if err != nil {
		t.Fatalf("GetOrder() by owner error = %v", err)
	}
	if got.OrderNo != order.OrderNo {
		t.Errorf("OrderNo = %q, want %q", got.OrderNo, order.OrderNo)
	}
}
