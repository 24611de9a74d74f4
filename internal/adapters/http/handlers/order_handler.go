package handlers

import (
	"errors"
	"strconv"

	"synergy-shop/internal/core/domain"
	"synergy-shop/internal/core/services"
	"synergy-shop/internal/pkg/pagination"
	"synergy-shop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles checkout and order endpoints
type OrderHandler struct {
	orderService *services.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// UpdateStatusRequest represents status update body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Checkout handles order placement
// @Summary Checkout
// @Description Convert the cart into an order as one atomic transaction
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CheckoutInput true "Checkout data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /orders/checkout [post]
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	order, err := h.orderService.Checkout(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPaymentType):
			return response.BadRequest(c, "Invalid payment type")
		case errors.Is(err, services.ErrNoShippingAddress):
			return response.BadRequest(c, "No shipping address selected")
		case errors.Is(err, services.ErrEmptyCart):
			return response.BadRequest(c, "Cart is empty")
		case errors.Is(err, services.ErrInsufficientBalance):
			return response.BadRequest(c, "Insufficient wallet balance")
		default:
			return response.InternalServerError(c, "Failed to place order")
		}
	}

	return response.Created(c, "Order placed successfully", order)
}

// List handles order listing for the current user
// @Summary List my orders
// @Description List the current user's orders, newest first
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	result, err := h.orderService.ListOrders(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list orders")
	}

	return response.Success(c, "Orders retrieved successfully",
		pagination.NewResponse(result.Orders, params, result.Total))
}

// Get handles single order retrieval
// @Summary Get order
// @Description Get one of the current user's orders with items and timeline
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid order ID")
	}

	order, err := h.orderService.GetOrder(c.Context(), userID, uint(id))
	if err != nil {
		return response.NotFound(c, "Order not found")
	}

	return response.Success(c, "Order retrieved successfully", order)
}

// ListAll handles order listing across users (admin)
// @Summary List all orders
// @Description List orders across all users, optionally filtered by status
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Order status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	result, err := h.orderService.ListAllOrders(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidOrderStatus) {
			return response.BadRequest(c, "Invalid order status")
		}
		return response.InternalServerError(c, "Failed to list orders")
	}

	return response.Success(c, "Orders retrieved successfully",
		pagination.NewResponse(result.Orders, params, result.Total))
}

// UpdateStatus handles fulfillment status updates (admin)
// @Summary Update order status
// @Description Advance an order one step through the fulfillment chain
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid order ID")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	order, err := h.orderService.UpdateStatus(c.Context(), uint(id), domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOrderStatus):
			return response.BadRequest(c, "Invalid order status")
		case errors.Is(err, services.ErrOrderNotFound):
			return response.NotFound(c, "Order not found")
		case errors.Is(err, services.ErrInvalidStatusTransition):
			return response.Conflict(c, "Order status can only advance one step at a time")
		default:
			return response.InternalServerError(c, "Failed to update order status")
		}
	}

	return response.Success(c, "Order status updated", order)
}
