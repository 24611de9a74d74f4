package services

import (
	"context"
	"errors"
	"testing"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/config"

	"gorm.io/gorm"
)

func newTestAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessTokenMins = 15
	cfg.JWT.RefreshTokenDays = 7

	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	authService := newTestAuthService(db)

	resp, err := authService.Register(ctx, &RegisterInput{
		Email:    "New.User@Test.Local",
		Name:     "สมศรี มีสุข",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.User.Email != "new.user@test.local" {
		t.Errorf("Email = %q, want lowercased", resp.User.Email)
	}
	if len(resp.User.ReferralCode) != 8 {
		t.Errorf("ReferralCode = %q, want 8 characters", resp.User.ReferralCode)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("expected both tokens on registration")
	}

	if _, err := authService.Register(ctx, &RegisterInput{
		Email:    "new.user@test.local",
		Name:     "ซ้ำ",
		Password: "password123",
	}); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate Register() error = %v, want ErrUserAlreadyExists", err)
	}

	if _, err := authService.Register(ctx, &RegisterInput{
		Email:    "weak@test.local",
		Name:     "อ่อน",
		Password: "short",
	}); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("weak password error = %v, want ErrWeakPassword", err)
	}

	login, err := authService.Login(ctx, &LoginInput{Email: "NEW.USER@test.local", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("logged in as user %d, want %d", login.User.ID, resp.User.ID)
	}

	if _, err := authService.Login(ctx, &LoginInput{Email: "new.user@test.local", Password: "wrongpass1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterWithReferrerCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	authService := newTestAuthService(db)

	sponsor := createTestUser(t, db, "upline@test.local", testUserOpts{referral: "UPLINE01"})

	resp, err := authService.Register(ctx, &RegisterInput{
		Email:        "downline@test.local",
		Name:         "ลูกทีม",
		Password:     "password123",
		ReferrerCode: "upline01",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	var fresh models.User
	db.First(&fresh, resp.User.ID)
	if fresh.ReferredBy == nil || *fresh.ReferredBy != sponsor.ID {
		t.Errorf("ReferredBy = %v, want %d", fresh.ReferredBy, sponsor.ID)
	}

	// An unknown code blocks registration instead of being dropped.
	if _, err := authService.Register(ctx, &RegisterInput{
		Email:        "orphan@test.local",
		Name:         "กำพร้า",
		Password:     "password123",
		ReferrerCode: "NOSUCH01",
	}); !errors.Is(err, ErrInvalidReferrerCode) {
		t.Errorf("unknown referrer error = %v, want ErrInvalidReferrerCode", err)
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	authService := newTestAuthService(db)

	resp, err := authService.Register(ctx, &RegisterInput{
		Email:    "rotate@test.local",
		Name:     "หมุนเวียน",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	refreshed, err := authService.RefreshToken(ctx, resp.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if refreshed.RefreshToken == resp.RefreshToken {
		t.Error("rotation should issue a new refresh token")
	}

	// The old token was revoked by the rotation.
	if _, err := authService.RefreshToken(ctx, resp.RefreshToken); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("reused token error = %v, want ErrTokenRevoked", err)
	}
}

func TestSetAndVerifyPin(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	authService := newTestAuthService(db)

	user := createTestUser(t, db, "pin@test.local", testUserOpts{})

	if err := authService.SetPin(ctx, user.ID, "12ab56"); !errors.Is(err, ErrInvalidPin) {
		t.Errorf("non-numeric pin error = %v, want ErrInvalidPin", err)
	}
	if err := authService.SetPin(ctx, user.ID, "123456"); err != nil {
		t.Fatalf("SetPin() error = %v", err)
	}
	if err := authService.VerifyPin(ctx, user.ID, "123456"); err != nil {
		t.Errorf("VerifyPin() error = %v", err)
	}
	if err := authService.VerifyPin(ctx, user.ID, "654321"); !errors.Is(err, ErrInvalidPin) {
		t.Errorf("wrong pin error = %v, want ErrInvalidPin", err)
	}
}
