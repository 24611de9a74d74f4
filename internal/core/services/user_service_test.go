package services

import (
	"context"
	"errors"
	"testing"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/core/domain"

	"gorm.io/gorm"
)

func newTestUserService(db *gorm.DB) *UserService {
	return NewUserService(
		repositories.NewUserRepository(db),
		repositories.NewAddressRepository(db),
		repositories.NewBankAccountRepository(db),
	)
}

func TestSetReferrerWriteOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userService := newTestUserService(db)

	sponsor := createTestUser(t, db, "sponsor@test.local", testUserOpts{referral: "SPONSOR1"})
	second := createTestUser(t, db, "second@test.local", testUserOpts{referral: "SECOND01"})
	rookie := createTestUser(t, db, "rookie@test.local", testUserOpts{referral: "ROOKIE01"})

	if err := userService.SetReferrer(ctx, rookie.ID, "sponsor1"); err != nil {
		t.Fatalf("SetReferrer() error = %v", err)
	}

	var fresh models.User
	db.First(&fresh, rookie.ID)
	if fresh.ReferredBy == nil || *fresh.ReferredBy != sponsor.ID {
		t.Errorf("ReferredBy = %v, want %d", fresh.ReferredBy, sponsor.ID)
	}

	// The linkage is permanent; a second code is rejected.
	if err := userService.SetReferrer(ctx, rookie.ID, second.ReferralCode); !errors.Is(err, ErrAlreadyReferred) {
		t.Errorf("second SetReferrer() error = %v, want ErrAlreadyReferred", err)
	}
	db.First(&fresh, rookie.ID)
	if fresh.ReferredBy == nil || *fresh.ReferredBy != sponsor.ID {
		t.Errorf("ReferredBy changed to %v, want %d", fresh.ReferredBy, sponsor.ID)
	}
}

func TestSetReferrerRejectsSelfAndUnknown(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userService := newTestUserService(db)

	user := createTestUser(t, db, "loner@test.local", testUserOpts{referral: "LONER001"})

	if err := userService.SetReferrer(ctx, user.ID, "LONER001"); !errors.Is(err, ErrSelfReferral) {
		t.Errorf("self referral error = %v, want ErrSelfReferral", err)
	}
	if err := userService.SetReferrer(ctx, user.ID, "NOSUCH99"); !errors.Is(err, ErrInvalidReferrerCode) {
		t.Errorf("unknown code error = %v, want ErrInvalidReferrerCode", err)
	}
}

func TestReferralStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userService := newTestUserService(db)

	sponsor := createTestUser(t, db, "leader@test.local", testUserOpts{
		referral: "LEADER01",
		tier:     domain.TierMarketer,
		sales:    4500,
	})
	for _, email := range []string{"m1@test.local", "m2@test.local", "m3@test.local"} {
		member := createTestUser(t, db, email, testUserOpts{})
		if err := userService.SetReferrer(ctx, member.ID, "LEADER01"); err != nil {
			t.Fatalf("SetReferrer(%s) error = %v", email, err)
		}
	}

	stats, err := userService.GetReferralStats(ctx, sponsor.ID)
	if err != nil {
		t.Fatalf("GetReferralStats() error = %v", err)
	}
	if stats.TeamSize != 3 {
		t.Errorf("TeamSize = %d, want 3", stats.TeamSize)
	}
	if stats.ReferralCode != "LEADER01" {
		t.Errorf("ReferralCode = %q, want LEADER01", stats.ReferralCode)
	}
	if stats.CommissionRate != 0.10 {
		t.Errorf("CommissionRate = %.2f, want 0.10", stats.CommissionRate)
	}
	if stats.NextTierTarget != 9000 {
		t.Errorf("NextTierTarget = %.2f, want 9000", stats.NextTierTarget)
	}
}

func TestFirstAddressBecomesDefault(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userService := newTestUserService(db)

	user := createTestUser(t, db, "mover@test.local", testUserOpts{})

	first, err := userService.AddAddress(ctx, user.ID, &AddressInput{
		RecipientName: "สมชาย ใจดี",
		Phone:         "0812345678",
		AddressLine:   "1/1 ถ.พระราม 4",
	})
	if err != nil {
		t.Fatalf("AddAddress() error = %v", err)
	}
	if !first.IsDefault {
		t.Error("first address should be default")
	}

	second, err := userService.AddAddress(ctx, user.ID, &AddressInput{
		RecipientName: "สมชาย ใจดี",
		Phone:         "0812345678",
		AddressLine:   "2/2 ถ.สีลม",
		IsDefault:     true,
	})
	if err != nil {
		t.Fatalf("AddAddress() error = %v", err)
	}
	if !second.IsDefault {
		t.Error("second address requested default")
	}

	// Only one default at a time.
	var fresh models.Address
	db.First(&fresh, first.ID)
	if fresh.IsDefault {
		t.Error("first address should lose default when a new default is added")
	}
}

func TestDeleteAddressOwnership(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userService := newTestUserService(db)

	owner := createTestUser(t, db, "addrowner@test.local", testUserOpts{})
	intruder := createTestUser(t, db, "intruder@test.local", testUserOpts{})
	address := createTestAddress(t, db, owner.ID)

	if err := userService.DeleteAddress(ctx, intruder.ID, address.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Errorf("DeleteAddress() by non-owner error = %v, want ErrAddressNotFound", err)
	}
	if err := userService.DeleteAddress(ctx, owner.ID, address.ID); err != nil {
		t.Errorf("DeleteAddress() by owner error = %v", err)
	}
}
