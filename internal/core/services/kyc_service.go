package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"sync"
	"time"

	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/core/domain"
)

// KYC service errors
var (
	ErrKycAlreadyVerified = errors.New("KYC already verified")
	ErrOtpNotFound        = errors.New("no verification code requested")
	ErrOtpExpired         = errors.New("verification code expired")
	ErrOtpMismatch        = errors.New("incorrect verification code")
	ErrOtpTooManyAttempts = errors.New("too many verification attempts")
)

const (
	otpTTL         = 5 * time.Minute
	otpMaxAttempts = 5
)

type otpEntry struct {
	code      string
	expiresAt time.Time
	attempts  int
}

// KycService verifies identity through a one-time code. Codes live in
// memory only; a restart just means re-requesting a code.
type KycService struct {
	userRepo repositories.UserRepository

	mu    sync.Mutex
	codes map[uint]*otpEntry
}

// NewKycService creates a new KYC service and starts its cleanup loop
func NewKycService(userRepo repositories.UserRepository) *KycService {
	s := &KycService{
		userRepo: userRepo,
		codes:    make(map[uint]*otpEntry),
	}
	go s.cleanupLoop()
	return s
}

// RequestVerification issues a 6-digit code for the user and moves
// their KYC status to PENDING. In production the code goes out via
// SMS; here it is logged.
func (s *KycService) RequestVerification(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if user.KycStatus == string(domain.KycVerified) {
		return ErrKycAlreadyVerified
	}

	code, err := generateOtpCode()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.codes[userID] = &otpEntry{
		code:      code,
		expiresAt: time.Now().Add(otpTTL),
	}
	s.mu.Unlock()

	if user.KycStatus != string(domain.KycPending) {
		user.KycStatus = string(domain.KycPending)
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
	}

	// TODO: send through an SMS gateway once one is provisioned
	log.Printf("📱 KYC verification code for user %d: %s", userID, code)
	return nil
}

// ConfirmVerification checks the code and marks the user VERIFIED
func (s *KycService) ConfirmVerification(ctx context.Context, userID uint, code string) error {
	s.mu.Lock()
	entry, ok := s.codes[userID]
	if !ok {
		s.mu.Unlock()
		return ErrOtpNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.codes, userID)
		s.mu.Unlock()
		return ErrOtpExpired
	}
	entry.attempts++
	if entry.attempts > otpMaxAttempts {
		delete(s.codes, userID)
		s.mu.Unlock()
		return ErrOtpTooManyAttempts
	}
	if entry.code != code {
		s.mu.Unlock()
		return ErrOtpMismatch
	}
	delete(s.codes, userID)
	s.mu.Unlock()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	user.KycStatus = string(domain.KycVerified)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ KYC verified for user %d", userID)
	return nil
}

func (s *KycService) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for userID, entry := range s.codes {
			if now.After(entry.expiresAt) {
				delete(s.codes, userID)
			}
		}
		s.mu.Unlock()
	}
}

func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
