package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/core/domain"
)

func TestKycVerificationFlow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	kycService := NewKycService(repositories.NewUserRepository(db))

	user := createTestUser(t, db, "kyc@test.local", testUserOpts{})

	if err := kycService.ConfirmVerification(ctx, user.ID, "000000"); !errors.Is(err, ErrOtpNotFound) {
		t.Errorf("confirm without request error = %v, want ErrOtpNotFound", err)
	}

	if err := kycService.RequestVerification(ctx, user.ID); err != nil {
		t.Fatalf("RequestVerification() error = %v", err)
	}

	var fresh models.User
	db.First(&fresh, user.ID)
	if fresh.KycStatus != string(domain.KycPending) {
		t.Errorf("KycStatus = %q, want PENDING after request", fresh.KycStatus)
	}

	kycService.mu.Lock()
	code := kycService.codes[user.ID].code
	kycService.mu.Unlock()

	if err := kycService.ConfirmVerification(ctx, user.ID, "999999"); !errors.Is(err, ErrOtpMismatch) {
		t.Errorf("wrong code error = %v, want ErrOtpMismatch", err)
	}
	if err := kycService.ConfirmVerification(ctx, user.ID, code); err != nil {
		t.Fatalf("ConfirmVerification() error = %v", err)
	}

	db.First(&fresh, user.ID)
	if fresh.KycStatus != string(domain.KycVerified) {
		t.Errorf("KycStatus = %q, want VERIFIED", fresh.KycStatus)
	}

	// Verified users cannot re-enter the flow.
	if err := kycService.RequestVerification(ctx, user.ID); !errors.Is(err, ErrKycAlreadyVerified) {
		t.Errorf("re-request error = %v, want ErrKycAlreadyVerified", err)
	}
}

func TestKycCodeExpiry(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	kycService := NewKycService(repositories.NewUserRepository(db))

	user := createTestUser(t, db, "slow@test.local", testUserOpts{})
	if err := kycService.RequestVerification(ctx, user.ID); err != nil {
		t.Fatalf("RequestVerification() error = %v", err)
	}

	kycService.mu.Lock()
	entry := kycService.codes[user.ID]
	code := entry.code
	entry.expiresAt = time.Now().Add(-time.Second)
	kycService.mu.Unlock()

	if err := kycService.ConfirmVerification(ctx, user.ID, code); !errors.Is(err, ErrOtpExpired) {
		t.Errorf("expired code error = %v, want ErrOtpExpired", err)
	}
	// The expired entry is gone; retrying reports not found.
	if err := kycService.ConfirmVerification(ctx, user.ID, code); !errors.Is(err, ErrOtpNotFound) {
		t.Errorf("after expiry error = %v, want ErrOtpNotFound", err)
	}
}

func TestKycAttemptLimit(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	kycService := NewKycService(repositories.NewUserRepository(db))

	user := createTestUser(t, db, "bruteforce@test.local", testUserOpts{})
	if err := kycService.RequestVerification(ctx, user.ID); err != nil {
		t.Fatalf("RequestVerification() error = %v", err)
	}

	for i := 0; i < otpMaxAttempts; i++ {
		if err := kycService.ConfirmVerification(ctx, user.ID, "wrong0"); !errors.Is(err, ErrOtpMismatch) {
			t.Fatalf("attempt %d error = %v, want ErrOtpMismatch", i+1, err)
		}
	}
	if err := kycService.ConfirmVerification(ctx, user.ID, "wrong0"); !errors.Is(err, ErrOtpTooManyAttempts) {
		t.Errorf("over-limit error = %v, want ErrOtpTooManyAttempts", err)
	}
}
