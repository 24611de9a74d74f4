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
	"synergy-shop/internal/pkg/password"

	"gorm.io/gorm"
)

// Wallet service errors
var (
	ErrKycNotVerified       = errors.New("KYC verification required")
	ErrWithdrawalTooSmall   = errors.New("withdrawal amount below minimum")
	ErrWithdrawalExceeds    = errors.New("withdrawal amount exceeds wallet balance")
	ErrPinNotSet            = errors.New("withdrawal PIN not set")
	ErrWithdrawalNotFound   = errors.New("withdrawal not found")
	ErrWithdrawalNotWaiting = errors.New("withdrawal is not awaiting processing")
)

// WalletService handles withdrawal requests and processing. All
// preconditions live here so the engine is safe to call from any
// surface, not just the validated HTTP layer.
type WalletService struct {
	db                  *gorm.DB
	commissionRepo      repositories.CommissionRepository
	userRepo            repositories.UserRepository
	bankAccountRepo     repositories.BankAccountRepository
	notificationService *NotificationService
}

// NewWalletService creates a new wallet service
func NewWalletService(
	db *gorm.DB,
	commissionRepo repositories.CommissionRepository,
	userRepo repositories.UserRepository,
	bankAccountRepo repositories.BankAccountRepository,
	notificationService *NotificationService,
) *WalletService {
	return &WalletService{
		db:                  db,
		commissionRepo:      commissionRepo,
		userRepo:            userRepo,
		bankAccountRepo:     bankAccountRepo,
		notificationService: notificationService,
	}
}

// Quote returns the fee/tax breakdown for a withdrawal amount without
// touching the wallet
func (s *WalletService) Quote(amount float64) domain.WithdrawalQuote {
	return domain.QuoteWithdrawal(amount)
}

// WithdrawInput represents a withdrawal request
type WithdrawInput struct {
	Amount        float64 `json:"amount" validate:"required"`
	BankAccountID uint    `json:"bank_account_id" validate:"required"`
	Pin           string  `json:"pin" validate:"required"`
}

// Withdraw debits the wallet and records a WAITING ledger entry with
// the destination snapshot and fee/tax breakdown. Preconditions, in
// order: verified KYC, owned bank account, amount within bounds, PIN
// match. The wallet is debited by the gross amount at request time;
// the net amount is what gets wired once processed.
func (s *WalletService) Withdraw(ctx context.Context, userID uint, input *WithdrawInput) (*models.CommissionTransaction, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if user.KycStatus != string(domain.KycVerified) {
		return nil, ErrKycNotVerified
	}

	bankAccount, err := s.bankAccountRepo.GetByID(ctx, input.BankAccountID)
	if err != nil || bankAccount.UserID != userID {
		return nil, ErrBankAccountNotFound
	}

	if input.Amount < domain.MinWithdrawal {
		return nil, ErrWithdrawalTooSmall
	}
	if input.Amount > user.WalletBalance {
		return nil, ErrWithdrawalExceeds
	}

	if !user.HasPin() {
		return nil, ErrPinNotSet
	}
	if !password.Verify(input.Pin, user.PinHash) {
		return nil, ErrInvalidPin
	}

	quote := domain.QuoteWithdrawal(input.Amount)

	var withdrawal *models.CommissionTransaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		commissionRepo := repositories.NewCommissionRepository(tx)
		userRepo := repositories.NewUserRepository(tx)

		withdrawal = &models.CommissionTransaction{
			UserID:        user.ID,
			Amount:        -input.Amount,
			Status:        string(domain.CommissionWaiting),
			Source:        fmt.Sprintf("ถอนเงินเข้าบัญชี %s %s", bankAccount.BankName, bankAccount.AccountNumber),
			BankAccountID: &bankAccount.ID,
			BankName:      bankAccount.BankName,
			AccountNumber: bankAccount.AccountNumber,
			Fee:           quote.Fee,
			Tax:           quote.Tax,
			Net:           quote.Net,
		}
		if err := commissionRepo.Create(ctx, withdrawal); err != nil {
			return err
		}

		user.WalletBalance = money.Sub(user.WalletBalance, input.Amount)
		return userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🏦 Withdrawal requested: user=%d amount=%.2f net=%.2f bank=%s", user.ID, input.Amount, quote.Net, bankAccount.BankName)

	if s.notificationService != nil {
		s.notificationService.NotifyWithdrawalRequested(ctx, user.ID, input.Amount, quote.Net, bankAccount.BankName)
	}

	return withdrawal, nil
}

// CompleteWithdrawal marks a WAITING withdrawal as PAID after the bank
// transfer. Admin only; the wallet was already debited at request time.
func (s *WalletService) CompleteWithdrawal(ctx context.Context, withdrawalID uint) (*models.CommissionTransaction, error) {
	withdrawal, err := s.commissionRepo.GetByID(ctx, withdrawalID)
	if err != nil {
		return nil, ErrWithdrawalNotFound
	}
	if withdrawal.Status != string(domain.CommissionWaiting) || withdrawal.Amount >= 0 {
		return nil, ErrWithdrawalNotWaiting
	}

	now := time.Now()
	withdrawal.Status = string(domain.CommissionPaid)
	withdrawal.ProcessedAt = &now
	if err := s.commissionRepo.Update(ctx, withdrawal); err != nil {
		return nil, err
	}

	log.Printf("✅ Withdrawal processed: id=%d user=%d amount=%.2f", withdrawal.ID, withdrawal.UserID, -withdrawal.Amount)

	if s.notificationService != nil {
		s.notificationService.NotifyWithdrawalCompleted(ctx, withdrawal.UserID, -withdrawal.Amount, withdrawal.BankName)
	}

	return withdrawal, nil
}

// ListWithdrawals lists withdrawal requests by status, for the admin
// processing queue
func (s *WalletService) ListWithdrawals(ctx context.Context, status string, offset, limit int) (*CommissionListOutput, error) {
	if status == "" {
		status = string(domain.CommissionWaiting)
	}
	transactions, total, err := s.commissionRepo.ListByStatus(ctx, status, offset, limit)
	if err != nil {
		return nil, err
	}
	return &CommissionListOutput{Transactions: transactions, Total: total}, nil
}
