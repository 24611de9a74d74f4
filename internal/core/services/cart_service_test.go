package services

import (
	"context"
	"errors"
	"testing"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/core/domain"

	"gorm.io/gorm"
)

func newTestCartService(db *gorm.DB) *CartService {
	return NewCartService(
		repositories.NewCartRepository(db),
		repositories.NewProductRepository(db),
		repositories.NewCouponRepository(db),
		repositories.NewUserRepository(db),
	)
}

func TestAddItemMergesQuantity(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	cartService := newTestCartService(db)

	user := createTestUser(t, db, "shopper@test.local", testUserOpts{})
	product := createTestProduct(t, db, "คอลลาเจน", 890)

	if err := cartService.AddItem(ctx, user.ID, product.ID, 2); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if err := cartService.AddItem(ctx, user.ID, product.ID, 3); err != nil {
		t.Fatalf("AddItem() again error = %v", err)
	}

	var item models.CartItem
	if err := db.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&item).Error; err != nil {
		t.Fatalf("cart item not found: %v", err)
	}
	if item.Quantity != 5 {
		t.Errorf("Quantity = %d, want 5", item.Quantity)
	}
}

func TestAddItemRejections(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	cartService := newTestCartService(db)

	user := createTestUser(t, db, "picky@test.local", testUserOpts{})
	product := createTestProduct(t, db, "เซรั่ม", 1290)

	inactive := &models.Product{Name: "เลิกขาย", Price: 100, IsActive: false}
	if err := db.Create(inactive).Error; err != nil {
		t.Fatalf("create inactive product: %v", err)
	}

	if err := cartService.AddItem(ctx, user.ID, product.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity error = %v, want ErrInvalidQuantity", err)
	}
	if err := cartService.AddItem(ctx, user.ID, 9999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("unknown product error = %v, want ErrProductNotFound", err)
	}
	if err := cartService.AddItem(ctx, user.ID, inactive.ID, 1); !errors.Is(err, ErrProductUnavailable) {
		t.Errorf("inactive product error = %v, want ErrProductUnavailable", err)
	}
}

func TestGetCartBreakdown(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	cartService := newTestCartService(db)

	user := createTestUser(t, db, "builder@test.local", testUserOpts{tier: domain.TierBuilder, sales: 10000})
	product := createTestProduct(t, db, "โปรตีน", 250)
	addToCart(t, db, user.ID, product.ID, 4)

	coupon := &models.Coupon{Code: "TEAM5", Type: string(domain.CouponPercent), Value: 5, IsActive: true}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon: %v", err)
	}
	if err := cartService.ApplyCoupon(ctx, user.ID, "team5"); err != nil {
		t.Fatalf("ApplyCoupon() error = %v", err)
	}

	cart, err := cartService.GetCart(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}

	if cart.Subtotal != 1000 {
		t.Errorf("Subtotal = %.2f, want 1000.00", cart.Subtotal)
	}
	if cart.MemberDiscount != 200 {
		t.Errorf("MemberDiscount = %.2f, want 200.00", cart.MemberDiscount)
	}
	if cart.CouponDiscount != 50 {
		t.Errorf("CouponDiscount = %.2f, want 50.00", cart.CouponDiscount)
	}
	if cart.Total != 750 {
		t.Errorf("Total = %.2f, want 750.00", cart.Total)
	}
	if cart.Vat != 49.07 {
		t.Errorf("Vat = %.2f, want 49.07", cart.Vat)
	}
	if cart.AppliedCoupon == nil || *cart.AppliedCoupon != "TEAM5" {
		t.Errorf("AppliedCoupon = %v, want TEAM5", cart.AppliedCoupon)
	}
}

func TestApplyCouponRejectsInactive(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	cartService := newTestCartService(db)

	user := createTestUser(t, db, "hopeful@test.local", testUserOpts{})

	dead := &models.Coupon{Code: "EXPIRED1", Type: string(domain.CouponFlat), Value: 100, IsActive: false}
	if err := db.Create(dead).Error; err != nil {
		t.Fatalf("create coupon: %v", err)
	}

	if err := cartService.ApplyCoupon(ctx, user.ID, "EXPIRED1"); !errors.Is(err, ErrInvalidCoupon) {
		t.Errorf("inactive coupon error = %v, want ErrInvalidCoupon", err)
	}
	if err := cartService.ApplyCoupon(ctx, user.ID, "NOSUCH"); !errors.Is(err, ErrInvalidCoupon) {
		t.Errorf("unknown coupon error = %v, want ErrInvalidCoupon", err)
	}

	var fresh models.User
	db.First(&fresh, user.ID)
	if fresh.AppliedCouponCode != nil {
		t.Errorf("AppliedCouponCode = %v, want nil after rejected coupons", *fresh.AppliedCouponCode)
	}
}

func TestDeactivatedCouponDroppedFromPricing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	cartService := newTestCartService(db)

	user := createTestUser(t, db, "latecomer@test.local", testUserOpts{})
	product := createTestProduct(t, db, "กาแฟ", 350)
	addToCart(t, db, user.ID, product.ID, 1)

	coupon := &models.Coupon{Code: "FLASH100", Type: string(domain.CouponFlat), Value: 100, IsActive: true}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon: %v", err)
	}
	if err := cartService.ApplyCoupon(ctx, user.ID, "FLASH100"); err != nil {
		t.Fatalf("ApplyCoupon() error = %v", err)
	}

	// The campaign ends while the coupon is still attached to the cart.
	db.Model(&models.Coupon{}).Where("id = ?", coupon.ID).Update("is_active", false)

	cart, err := cartService.GetCart(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if cart.CouponDiscount != 0 {
		t.Errorf("CouponDiscount = %.2f, want 0 for a deactivated coupon", cart.CouponDiscount)
	}
	if cart.Total != 350 {
		t.Errorf("Total = %.2f, want 350.00", cart.Total)
	}
}
