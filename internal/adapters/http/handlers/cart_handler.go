package handlers

import (
	"errors"
	"strconv"

	"synergy-shop/internal/core/services"
	"synergy-shop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *services.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// CartItemRequest represents add/update cart item body
type CartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// CouponRequest represents coupon application body
type CouponRequest struct {
	Code string `json:"code"`
}

// Get handles cart retrieval with price breakdown
// @Summary Get cart
// @Description Get cart items with the full price breakdown for the user's tier and coupon
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	cart, err := h.cartService.GetCart(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get cart")
	}

	return response.Success(c, "Cart retrieved successfully", cart)
}

// AddItem handles adding a product to the cart
// @Summary Add cart item
// @Description Add a product to the cart or increase its quantity
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CartItemRequest true "Item data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	err := h.cartService.AddItem(c.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be at least 1")
		case errors.Is(err, services.ErrProductNotFound):
			return response.NotFound(c, "Product not found")
		case errors.Is(err, services.ErrProductUnavailable):
			return response.BadRequest(c, "Product is not available")
		default:
			return response.InternalServerError(c, "Failed to add item to cart")
		}
	}

	return response.Success(c, "Item added to cart", nil)
}

// UpdateItem handles setting the quantity of a cart line
// @Summary Update cart item
// @Description Set the quantity of a cart line
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Param body body CartItemRequest true "Item data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	productID, err := strconv.ParseUint(c.Params("productId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	err = h.cartService.UpdateItem(c.Context(), userID, uint(productID), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be at least 1")
		case errors.Is(err, services.ErrCartItemNotFound):
			return response.NotFound(c, "Cart item not found")
		default:
			return response.InternalServerError(c, "Failed to update cart item")
		}
	}

	return response.Success(c, "Cart item updated", nil)
}

// RemoveItem handles removing a product from the cart
// @Summary Remove cart item
// @Description Remove a product from the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	productID, err := strconv.ParseUint(c.Params("productId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product ID")
	}

	if err := h.cartService.RemoveItem(c.Context(), userID, uint(productID)); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			return response.NotFound(c, "Cart item not found")
		}
		return response.InternalServerError(c, "Failed to remove cart item")
	}

	return response.Success(c, "Item removed from cart", nil)
}

// ApplyCoupon handles coupon application
// @Summary Apply coupon
// @Description Apply a coupon code to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CouponRequest true "Coupon code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /cart/coupon [post]
func (h *CartHandler) ApplyCoupon(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CouponRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.cartService.ApplyCoupon(c.Context(), userID, req.Code); err != nil {
		if errors.Is(err, services.ErrInvalidCoupon) {
			return response.BadRequest(c, "Invalid coupon code")
		}
		return response.InternalServerError(c, "Failed to apply coupon")
	}

	return response.Success(c, "Coupon applied successfully", nil)
}

// RemoveCoupon handles coupon removal
// @Summary Remove coupon
// @Description Remove the applied coupon from the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /cart/coupon [delete]
func (h *CartHandler) RemoveCoupon(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.cartService.RemoveCoupon(c.Context(), userID); err != nil {
		return response.InternalServerError(c, "Failed to remove coupon")
	}

	return response.Success(c, "Coupon removed", nil)
}
