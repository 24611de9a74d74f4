package handlers

import (
	"errors"
	"strconv"

	"synergy-shop/internal/core/services"
	"synergy-shop/internal/pkg/pagination"
	"synergy-shop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WalletHandler handles wallet, commission and withdrawal endpoints
type WalletHandler struct {
	walletService     *services.WalletService
	commissionService *services.CommissionService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(
	walletService *services.WalletService,
	commissionService *services.CommissionService,
) *WalletHandler {
	return &WalletHandler{
		walletService:     walletService,
		commissionService: commissionService,
	}
}

// Summary handles wallet summary retrieval
// @Summary Wallet summary
// @Description Get wallet balance with pending and paid commission totals
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /wallet [get]
func (h *WalletHandler) Summary(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	summary, err := h.commissionService.Summary(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get wallet summary")
	}

	return response.Success(c, "Wallet summary retrieved successfully", summary)
}

// Transactions handles ledger listing
// @Summary List wallet transactions
// @Description List the user's commission and withdrawal ledger entries
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /wallet/transactions [get]
func (h *WalletHandler) Transactions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	result, err := h.commissionService.ListByUser(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list transactions")
	}

	return response.Success(c, "Transactions retrieved successfully",
		pagination.NewResponse(result.Transactions, params, result.Total))
}

// Quote handles withdrawal fee preview
// @Summary Quote withdrawal
// @Description Preview the fee/tax breakdown for a withdrawal amount
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param amount query number true "Withdrawal amount"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /wallet/withdraw/quote [get]
func (h *WalletHandler) Quote(c *fiber.Ctx) error {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount <= 0 {
		return response.BadRequest(c, "Invalid amount")
	}

	return response.Success(c, "Withdrawal quote", h.walletService.Quote(amount))
}

// Withdraw handles withdrawal requests
// @Summary Request withdrawal
// @Description Debit the wallet and queue a bank transfer
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.WithdrawInput true "Withdrawal data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /wallet/withdraw [post]
func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.WithdrawInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	withdrawal, err := h.walletService.Withdraw(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrKycNotVerified):
			return response.Forbidden(c, "KYC verification required before withdrawing")
		case errors.Is(err, services.ErrBankAccountNotFound):
			return response.NotFound(c, "Bank account not found")
		case errors.Is(err, services.ErrWithdrawalTooSmall):
			return response.BadRequest(c, "Minimum withdrawal is 100 baht")
		case errors.Is(err, services.ErrWithdrawalExceeds):
			return response.BadRequest(c, "Withdrawal amount exceeds wallet balance")
		case errors.Is(err, services.ErrPinNotSet):
			return response.BadRequest(c, "Wallet PIN must be set before withdrawing")
		case errors.Is(err, services.ErrInvalidPin):
			return response.Unauthorized(c, "Incorrect PIN")
		default:
			return response.InternalServerError(c, "Failed to request withdrawal")
		}
	}

	return response.Created(c, "Withdrawal requested successfully", withdrawal)
}

// ListWithdrawals handles the admin withdrawal queue
// @Summary List withdrawals
// @Description List withdrawal requests by status
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Withdrawal status"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/withdrawals [get]
func (h *WalletHandler) ListWithdrawals(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.walletService.ListWithdrawals(c.Context(), c.Query("status"), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list withdrawals")
	}

	return response.Success(c, "Withdrawals retrieved successfully",
		pagination.NewResponse(result.Transactions, params, result.Total))
}

// CompleteWithdrawal handles withdrawal processing (admin)
// @Summary Complete withdrawal
// @Description Mark a waiting withdrawal as paid after the bank transfer
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Withdrawal ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/withdrawals/{id}/complete [post]
func (h *WalletHandler) CompleteWithdrawal(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid withdrawal ID")
	}

	withdrawal, err := h.walletService.CompleteWithdrawal(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWithdrawalNotFound):
			return response.NotFound(c, "Withdrawal not found")
		case errors.Is(err, services.ErrWithdrawalNotWaiting):
			return response.Conflict(c, "Withdrawal is not awaiting processing")
		default:
			return response.InternalServerError(c, "Failed to complete withdrawal")
		}
	}

	return response.Success(c, "Withdrawal completed", withdrawal)
}
