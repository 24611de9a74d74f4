package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/core/domain"
	"synergy-shop/internal/pkg/money"

	"gorm.io/gorm"
)

// Commission service errors
var (
	ErrCommissionNotFound = errors.New("commission transaction not found")
)

// CommissionService settles pending commissions into wallet balances
// and reports on the ledger
type CommissionService struct {
	db                  *gorm.DB
	commissionRepo      repositories.CommissionRepository
	userRepo            repositories.UserRepository
	notificationService *NotificationService
}

// NewCommissionService creates a new commission service
func NewCommissionService(
	db *gorm.DB,
	commissionRepo repositories.CommissionRepository,
	userRepo repositories.UserRepository,
	notificationService *NotificationService,
) *CommissionService {
	return &CommissionService{
		db:                  db,
		commissionRepo:      commissionRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

// Settle pays out the pending commission attached to an order, if any.
// Settling an order with no pending commission is a no-op, so it is
// safe to call more than once per order.
func (s *CommissionService) Settle(ctx context.Context, orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.SettleInTx(ctx, tx, orderID)
	})
}

// SettleInTx runs settlement inside an existing transaction so order
// fulfillment can flip the commission in the same commit.
func (s *CommissionService) SettleInTx(ctx context.Context, tx *gorm.DB, orderID uint) error {
	commissionRepo := repositories.NewCommissionRepository(tx)
	userRepo := repositories.NewUserRepository(tx)
	orderRepo := repositories.NewOrderRepository(tx)

	commission, err := commissionRepo.GetPendingByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	earner, err := userRepo.GetByID(ctx, commission.UserID)
	if err != nil {
		return fmt.Errorf("load commission earner: %w", err)
	}

	now := time.Now()
	commission.Status = string(domain.CommissionPaid)
	commission.PaidAt = &now
	if err := commissionRepo.Update(ctx, commission); err != nil {
		return err
	}

	earner.WalletBalance = money.Add(earner.WalletBalance, commission.Amount)
	if err := userRepo.Update(ctx, earner); err != nil {
		return err
	}

	log.Printf("💰 Commission settled: order=%d user=%d amount=%.2f", orderID, earner.ID, commission.Amount)

	if s.notificationService != nil {
		order, err := orderRepo.GetByID(ctx, orderID)
		if err != nil {
			log.Printf("⚠️ Failed to load order %d for commission notification: %v", orderID, err)
			return nil
		}
		s.notificationService.NotifyCommissionPaid(ctx, earner.ID, order.OrderNo, commission.Amount)
	}

	return nil
}

// CommissionListOutput represents a page of ledger entries
type CommissionListOutput struct {
	Transactions []*models.CommissionTransaction `json:"transactions"`
	Total        int64                           `json:"total"`
}

// ListByUser lists a user's ledger entries, newest first
func (s *CommissionService) ListByUser(ctx context.Context, userID uint, offset, limit int) (*CommissionListOutput, error) {
	transactions, total, err := s.commissionRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	return &CommissionListOutput{Transactions: transactions, Total: total}, nil
}

// CommissionSummary represents a user's wallet overview
type CommissionSummary struct {
	WalletBalance     float64 `json:"wallet_balance"`
	PendingCommission float64 `json:"pending_commission"`
	TotalEarned       float64 `json:"total_earned"`
}

// Summary returns a user's wallet balance alongside pending and paid
// commission totals
func (s *CommissionService) Summary(ctx context.Context, userID uint) (*CommissionSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	pending, err := s.commissionRepo.SumByUserAndStatus(ctx, userID, string(domain.CommissionPending))
	if err != nil {
		return nil, err
	}

	paid, err := s.commissionRepo.SumByUserAndStatus(ctx, userID, string(domain.CommissionPaid))
	if err != nil {
		return nil, err
	}

	return &CommissionSummary{
		WalletBalance:     user.WalletBalance,
		PendingCommission: pending,
		TotalEarned:       paid,
	}, nil
}
