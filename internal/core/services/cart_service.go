package services

import (
	"context"
	"errors"
	"strings"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/core/domain"

	"gorm.io/gorm"
)

// Cart service errors
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidCoupon      = errors.New("invalid coupon code")
)

// CartService handles cart items, coupon application and price preview
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	couponRepo  repositories.CouponRepository
	userRepo    repositories.UserRepository
}

// NewCartService creates a new cart service
func NewCartService(
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	couponRepo repositories.CouponRepository,
	userRepo repositories.UserRepository,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		userRepo:    userRepo,
	}
}

// CartItemResponse represents one line in the cart
type CartItemResponse struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// CartResponse represents the cart with its price breakdown
type CartResponse struct {
	Items          []CartItemResponse `json:"items"`
	AppliedCoupon  *string            `json:"applied_coupon"`
	Subtotal       float64            `json:"subtotal"`
	MemberDiscount float64            `json:"member_discount"`
	CouponDiscount float64            `json:"coupon_discount"`
	Discount       float64            `json:"discount"`
	Vat            float64            `json:"vat"`
	Total          float64            `json:"total"`
}

// AddItem adds a product to the cart, or increases its quantity when the
// product is already there
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if !product.IsActive {
		return ErrProductUnavailable
	}

	existing, err := s.cartRepo.GetItem(ctx, userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if existing != nil {
		item.Quantity = existing.Quantity + quantity
	}

	return s.cartRepo.Upsert(ctx, item)
}

// UpdateItem sets the quantity of a cart line
func (s *CartService) UpdateItem(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if _, err := s.cartRepo.GetItem(ctx, userID, productID); err != nil {
		return ErrCartItemNotFound
	}

	return s.cartRepo.Upsert(ctx, &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// RemoveItem removes a product from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uint) error {
	if _, err := s.cartRepo.GetItem(ctx, userID, productID); err != nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.Remove(ctx, userID, productID)
}

// ApplyCoupon attaches a coupon code to the user. An unknown code leaves
// the cart untouched.
func (s *CartService) ApplyCoupon(ctx context.Context, userID uint, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))

	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCoupon
		}
		return err
	}
	if !coupon.IsActive {
		return ErrInvalidCoupon
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	user.AppliedCouponCode = &coupon.Code
	return s.userRepo.Update(ctx, user)
}

// RemoveCoupon detaches any applied coupon from the user
func (s *CartService) RemoveCoupon(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	user.AppliedCouponCode = nil
	return s.userRepo.Update(ctx, user)
}

// GetCart returns the cart lines with the full price breakdown for the
// user's current tier and applied coupon
func (s *CartService) GetCart(ctx context.Context, userID uint) (*CartResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	items, err := s.cartRepo.GetItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.CartLine, 0, len(items))
	responses := make([]CartItemResponse, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.CartLine{
			Price:    item.Product.Price,
			Quantity: item.Quantity,
		})
		responses = append(responses, CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Image:     item.Product.Image,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			LineTotal: float64(item.Quantity) * item.Product.Price,
		})
	}

	coupon, err := s.resolveCoupon(ctx, user)
	if err != nil {
		return nil, err
	}

	totals := domain.CartTotals(lines, domain.Tier(user.Tier), coupon)

	response := &CartResponse{
		Items:          responses,
		Subtotal:       totals.Subtotal,
		MemberDiscount: totals.MemberDiscount,
		CouponDiscount: totals.CouponDiscount,
		Discount:       totals.Discount,
		Vat:            totals.VAT,
		Total:          totals.Total,
	}
	if user.AppliedCouponCode != nil {
		response.AppliedCoupon = user.AppliedCouponCode
	}

	return response, nil
}

// resolveCoupon loads the user's applied coupon. A coupon that has been
// deactivated since it was applied is silently dropped from pricing.
func (s *CartService) resolveCoupon(ctx context.Context, user *models.User) (*domain.AppliedCoupon, error) {
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
