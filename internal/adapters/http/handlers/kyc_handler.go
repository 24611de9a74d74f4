package handlers

import (
	"errors"

	"synergy-shop/internal/core/services"
	"synergy-shop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// KycHandler handles identity verification endpoints
type KycHandler struct {
	kycService *services.KycService
}

// NewKycHandler creates a new KYC handler
func NewKycHandler(kycService *services.KycService) *KycHandler {
	return &KycHandler{kycService: kycService}
}

// ConfirmKycRequest represents verification code body
type ConfirmKycRequest struct {
	Code string `json:"code"`
}

// Request handles verification code issuance
// @Summary Request KYC verification
// @Description Issue a one-time verification code for identity verification
// @Tags KYC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /kyc/request [post]
func (h *KycHandler) Request(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.kycService.RequestVerification(c.Context(), userID); err != nil {
		if errors.Is(err, services.ErrKycAlreadyVerified) {
			return response.Conflict(c, "KYC already verified")
		}
		return response.InternalServerError(c, "Failed to request verification")
	}

	return response.Success(c, "Verification code sent", nil)
}

// Confirm handles verification code confirmation
// @Summary Confirm KYC verification
// @Description Confirm the one-time code and mark the user verified
// @Tags KYC
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ConfirmKycRequest true "Verification code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /kyc/confirm [post]
func (h *KycHandler) Confirm(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req ConfirmKycRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	err := h.kycService.ConfirmVerification(c.Context(), userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOtpNotFound):
			return response.BadRequest(c, "No verification code requested")
		case errors.Is(err, services.ErrOtpExpired):
			return response.BadRequest(c, "Verification code expired")
		case errors.Is(err, services.ErrOtpMismatch):
			return response.BadRequest(c, "Incorrect verification code")
		case errors.Is(err, services.ErrOtpTooManyAttempts):
			return response.BadRequest(c, "Too many attempts, request a new code")
		default:
			return response.InternalServerError(c, "Failed to confirm verification")
		}
	}

	return response.Success(c, "KYC verified successfully", nil)
}
