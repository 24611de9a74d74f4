package handlers

import (
	"errors"
	"strconv"

	"synergy-shop/internal/core/services"
	"synergy-shop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile, address, bank account and referral endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// SetReferrerRequest represents referrer linking body
type SetReferrerRequest struct {
	ReferrerCode string `json:"referrer_code"`
}

// GetProfile handles profile retrieval
// @Summary Get profile
// @Description Get the current user's profile with tier and wallet info
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "Profile retrieved successfully", profile)
}

// UpdateProfile handles profile update
// @Summary Update profile
// @Description Update the current user's name or phone
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Profile data"
// @Success 200 {object} response.Response
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.userService.UpdateProfile(c.Context(), userID, &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to update profile")
	}

	return response.Success(c, "Profile updated successfully", profile)
}

// SetReferrer handles post-signup referrer linking
// @Summary Set referrer
// @Description Link a referrer to the current user (write-once)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SetReferrerRequest true "Referrer code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/referrer [post]
func (h *UserHandler) SetReferrer(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req SetReferrerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	err := h.userService.SetReferrer(c.Context(), userID, req.ReferrerCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyReferred):
			return response.Conflict(c, "Referrer already set")
		case errors.Is(err, services.ErrInvalidReferrerCode):
			return response.BadRequest(c, "Referrer code not found")
		case errors.Is(err, services.ErrSelfReferral):
			return response.BadRequest(c, "Cannot use your own referral code")
		default:
			return response.InternalServerError(c, "Failed to set referrer")
		}
	}

	return response.Success(c, "Referrer linked successfully", nil)
}

// ReferralStats handles referral stats retrieval
// @Summary Referral stats
// @Description Get the current user's referral code, team size and tier progress
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/referral [get]
func (h *UserHandler) ReferralStats(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	stats, err := h.userService.GetReferralStats(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get referral stats")
	}

	return response.Success(c, "Referral stats retrieved successfully", stats)
}

// ListAddresses handles address listing
// @Summary List addresses
// @Description List the current user's shipping addresses
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/addresses [get]
func (h *UserHandler) ListAddresses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	addresses, err := h.userService.ListAddresses(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list addresses")
	}

	return response.Success(c, "Addresses retrieved successfully", addresses)
}

// AddAddress handles address creation
// @Summary Add address
// @Description Add a shipping address; the first one becomes the default
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AddressInput true "Address data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/addresses [post]
func (h *UserHandler) AddAddress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.AddressInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.RecipientName == "" || input.Phone == "" || input.AddressLine == "" {
		return response.BadRequest(c, "Recipient name, phone and address are required")
	}

	address, err := h.userService.AddAddress(c.Context(), userID, &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to add address")
	}

	return response.Created(c, "Address added successfully", address)
}

// SetDefaultAddress handles default address selection
// @Summary Set default address
// @Description Mark one of the user's addresses as the default
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Address ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/addresses/{id}/default [patch]
func (h *UserHandler) SetDefaultAddress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid address ID")
	}

	if err := h.userService.SetDefaultAddress(c.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			return response.NotFound(c, "Address not found")
		}
		return response.InternalServerError(c, "Failed to set default address")
	}

	return response.Success(c, "Default address updated", nil)
}

// DeleteAddress handles address deletion
// @Summary Delete address
// @Description Remove one of the user's shipping addresses
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Address ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/addresses/{id} [delete]
func (h *UserHandler) DeleteAddress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid address ID")
	}

	if err := h.userService.DeleteAddress(c.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, services.ErrAddressNotFound) {
			return response.NotFound(c, "Address not found")
		}
		return response.InternalServerError(c, "Failed to delete address")
	}

	return response.Success(c, "Address deleted", nil)
}

// ListBankAccounts handles bank account listing
// @Summary List bank accounts
// @Description List the current user's payout destinations
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /users/bank-accounts [get]
func (h *UserHandler) ListBankAccounts(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	accounts, err := h.userService.ListBankAccounts(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list bank accounts")
	}

	return response.Success(c, "Bank accounts retrieved successfully", accounts)
}

// AddBankAccount handles bank account creation
// @Summary Add bank account
// @Description Add a payout destination (maximum 2 per user)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BankAccountInput true "Bank account data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /users/bank-accounts [post]
func (h *UserHandler) AddBankAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.BankAccountInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.BankName == "" || input.AccountNumber == "" || input.AccountName == "" {
		return response.BadRequest(c, "Bank name, account number and account name are required")
	}

	account, err := h.userService.AddBankAccount(c.Context(), userID, &input)
	if err != nil {
		if errors.Is(err, services.ErrMaxBankAccounts) {
			return response.Conflict(c, "Maximum of 2 bank accounts allowed")
		}
		return response.InternalServerError(c, "Failed to add bank account")
	}

	return response.Created(c, "Bank account added successfully", account)
}

// DeleteBankAccount handles bank account deletion
// @Summary Delete bank account
// @Description Remove one of the user's payout destinations
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bank account ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /users/bank-accounts/{id} [delete]
func (h *UserHandler) DeleteBankAccount(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid bank account ID")
	}

	if err := h.userService.DeleteBankAccount(c.Context(), userID, uint(id)); err != nil {
		if errors.Is(err, services.ErrBankAccountNotFound) {
			return response.NotFound(c, "Bank account not found")
		}
		return response.InternalServerError(c, "Failed to delete bank account")
	}

	return response.Success(c, "Bank account deleted", nil)
}
