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

// User service errors
var (
	ErrAddressNotFound     = errors.New("address not found")
	ErrBankAccountNotFound = errors.New("bank account not found")
	ErrMaxBankAccounts     = errors.New("maximum number of bank accounts reached")
	ErrAlreadyReferred     = errors.New("referrer already set")
	ErrSelfReferral        = errors.New("cannot use your own referral code")
)

// MaxBankAccounts caps payout destinations per user.
const MaxBankAccounts = 2

// UserService handles profile, address, bank account and referral logic
type UserService struct {
	userRepo        repositories.UserRepository
	addressRepo     repositories.AddressRepository
	bankAccountRepo repositories.BankAccountRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	addressRepo repositories.AddressRepository,
	bankAccountRepo repositories.BankAccountRepository,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		addressRepo:     addressRepo,
		bankAccountRepo: bankAccountRepo,
	}
}

// GetProfile gets a user's profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateProfileInput represents update profile input
type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// UpdateProfile updates a user's profile
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// SetReferrer links a referrer to a user after signup. The link is
// write-once and may not point at the user themselves.
func (s *UserService) SetReferrer(ctx context.Context, userID uint, referrerCode string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if user.ReferredBy != nil {
		return ErrAlreadyReferred
	}

	referrer, err := s.userRepo.GetByReferralCode(ctx, strings.ToUpper(referrerCode))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidReferrerCode
		}
		return err
	}

	if referrer.ID == user.ID {
		return ErrSelfReferral
	}

	user.ReferredBy = &referrer.ID
	return s.userRepo.Update(ctx, user)
}

// ReferralStats summarises a user's affiliate standing
type ReferralStats struct {
	ReferralCode     string  `json:"referral_code"`
	TeamSize         int64   `json:"team_size"`
	Tier             string  `json:"tier"`
	AccumulatedSales float64 `json:"accumulated_sales"`
	NextTierTarget   float64 `json:"next_tier_target"`
	CommissionRate   float64 `json:"commission_rate"`
	TeamIncomeExpiry *string `json:"team_income_expiry"`
}

// GetReferralStats returns a user's referral statistics
func (s *UserService) GetReferralStats(ctx context.Context, userID uint) (*ReferralStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	teamSize, err := s.userRepo.CountReferrals(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &ReferralStats{
		ReferralCode:     user.ReferralCode,
		TeamSize:         teamSize,
		Tier:             user.Tier,
		AccumulatedSales: user.AccumulatedSales,
		NextTierTarget:   domain.NextTierTarget(user.AccumulatedSales),
		CommissionRate:   domain.CommissionRate(domain.Tier(user.Tier)),
	}
	if user.TeamIncomeExpiry != nil {
		formatted := user.TeamIncomeExpiry.Format("2006-01-02 15:04:05")
		stats.TeamIncomeExpiry = &formatted
	}

	return stats, nil
}

// ============================================================
// Addresses
// ============================================================

// AddressInput represents address create/update input
type AddressInput struct {
	RecipientName string `json:"recipient_name" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	AddressLine   string `json:"address_line" validate:"required"`
	IsDefault     bool   `json:"is_default"`
}

// AddAddress creates a shipping address. The first address becomes the
// default automatically.
func (s *UserService) AddAddress(ctx context.Context, userID uint, input *AddressInput) (*models.Address, error) {
	existing, err := s.addressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	isDefault := input.IsDefault || len(existing) == 0
	if isDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	address := &models.Address{
		UserID:        userID,
		RecipientName: input.RecipientName,
		Phone:         input.Phone,
		AddressLine:   input.AddressLine,
		IsDefault:     isDefault,
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, err
	}

	return address, nil
}

// ListAddresses lists a user's addresses
func (s *UserService) ListAddresses(ctx context.Context, userID uint) ([]*models.Address, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}

// SetDefaultAddress marks one of the user's addresses as default
func (s *UserService) SetDefaultAddress(ctx context.Context, userID, addressID uint) error {
	address, err := s.addressRepo.GetByID(ctx, addressID)
	if err != nil || address.UserID != userID {
		return ErrAddressNotFound
	}

	if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
		return err
	}

	address.IsDefault = true
	return s.addressRepo.Update(ctx, address)
}

// DeleteAddress removes one of the user's addresses
func (s *UserService) DeleteAddress(ctx context.Context, userID, addressID uint) error {
	address, err := s.addressRepo.GetByID(ctx, addressID)
	if err != nil || address.UserID != userID {
		return ErrAddressNotFound
	}
	return s.addressRepo.Delete(ctx, addressID)
}

// ============================================================
// Bank accounts
// ============================================================

// BankAccountInput represents bank account input
type BankAccountInput struct {
	BankName      string `json:"bank_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	AccountName   string `json:"account_name" validate:"required"`
}

// AddBankAccount adds a payout destination, capped at MaxBankAccounts
func (s *UserService) AddBankAccount(ctx context.Context, userID uint, input *BankAccountInput) (*models.BankAccount, error) {
	count, err := s.bankAccountRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= MaxBankAccounts {
		return nil, ErrMaxBankAccounts
	}

	account := &models.BankAccount{
		UserID:        userID,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		AccountName:   input.AccountName,
	}

	if err := s.bankAccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// ListBankAccounts lists a user's payout destinations
func (s *UserService) ListBankAccounts(ctx context.Context, userID uint) ([]*models.BankAccount, error) {
	return s.bankAccountRepo.ListByUser(ctx, userID)
}

// DeleteBankAccount removes one of the user's payout destinations
func (s *UserService) DeleteBankAccount(ctx context.Context, userID, accountID uint) error {
	account, err := s.bankAccountRepo.GetByID(ctx, accountID)
	if err != nil || account.UserID != userID {
		return ErrBankAccountNotFound
	}
	return s.bankAccountRepo.Delete(ctx, accountID)
}
