package handlers

import (
	"errors"
	"strconv"

	"synergy-shop/internal/core/services"
	"synergy-shop/internal/pkg/pagination"
	"synergy-shop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// BroadcastRequest represents admin broadcast body
type BroadcastRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// List handles notification listing
// @Summary List notifications
// @Description List the user's notifications including global broadcasts
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	result, err := h.notificationService.List(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return response.Success(c, "Notifications retrieved successfully", fiber.Map{
		"notifications": result.Notifications,
		"unread_count":  result.Unread,
		"meta":          pagination.GetMeta(params, result.Total),
	})
}

// MarkRead handles marking a notification as read
// @Summary Mark notification read
// @Description Mark one of the user's notifications as read
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification ID")
	}

	if err := h.notificationService.MarkRead(c.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to mark notification read")
	}

	return response.Success(c, "Notification marked as read", nil)
}

// Broadcast handles global promo broadcast (admin)
// @Summary Broadcast notification
// @Description Send a global promo notification to all users
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body BroadcastRequest true "Broadcast content"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/notifications/broadcast [post]
func (h *NotificationHandler) Broadcast(c *fiber.Ctx) error {
	var req BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title == "" || req.Message == "" {
		return response.BadRequest(c, "Title and message are required")
	}

	if err := h.notificationService.Broadcast(c.Context(), req.Title, req.Message); err != nil {
		return response.InternalServerError(c, "Failed to broadcast notification")
	}

	return response.Created(c, "Broadcast sent", nil)
}
