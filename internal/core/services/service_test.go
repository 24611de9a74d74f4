package services

import (
	"context"
	"testing"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/core/domain"
	"synergy-shop/internal/pkg/password"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

type testUserOpts struct {
	tier     domain.Tier
	sales    float64
	wallet   float64
	kyc      domain.KycStatus
	pin      string
	referral string
}

func createTestUser(t *testing.T, db *gorm.DB, email string, opts testUserOpts) *models.User {
	t.Helper()

	if opts.tier == "" {
		opts.tier = domain.TierStarter
	}
	if opts.kyc == "" {
		opts.kyc = domain.KycUnverified
	}
	if opts.referral == "" {
		// Referral codes are unique; derive from the email so fixtures
		// never collide within a test database.
		opts.referral = "R-" + email
	}

	hashed, err := password.Hash("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:            email,
		Name:             "Test User",
		Password:         hashed,
		Role:             string(domain.RoleUser),
		Tier:             string(opts.tier),
		AccumulatedSales: opts.sales,
		WalletBalance:    opts.wallet,
		ReferralCode:     opts.referral,
		KycStatus:        string(opts.kyc),
		IsActive:         true,
	}
	if opts.pin != "" {
		pinHash, err := password.Hash(opts.pin)
		if err != nil {
			t.Fatalf("failed to hash pin: %v", err)
		}
		user.PinHash = pinHash
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:     name,
		Price:    price,
		IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

func createTestAddress(t *testing.T, db *gorm.DB, userID uint) *models.Address {
	t.Helper()

	address := &models.Address{
		UserID:        userID,
		RecipientName: "สมชาย ใจดี",
		Phone:         "0812345678",
		AddressLine:   "99/1 ถ.สุขุมวิท กรุงเทพฯ 10110",
		IsDefault:     true,
	}
	if err := db.Create(address).Error; err != nil {
		t.Fatalf("failed to create test address: %v", err)
	}
	return address
}

func createTestBankAccount(t *testing.T, db *gorm.DB, userID uint) *models.BankAccount {
	t.Helper()

	account := &models.BankAccount{
		UserID:        userID,
		BankName:      "กสิกรไทย",
		AccountNumber: "1234567890",
		AccountName:   "สมชาย ใจดี",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test bank account: %v", err)
	}
	return account
}

func addToCart(t *testing.T, db *gorm.DB, userID, productID uint, quantity int) {
	t.Helper()

	cartRepo := repositories.NewCartRepository(db)
	err := cartRepo.Upsert(context.Background(), &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	})
	if err != nil {
		t.Fatalf("failed to add cart item: %v", err)
	}
}

func newTestOrderService(db *gorm.DB) (*OrderService, *CommissionService) {
	notificationService := NewNotificationService(repositories.NewNotificationRepository(db))
	commissionService := NewCommissionService(
		db,
		repositories.NewCommissionRepository(db),
		repositories.NewUserRepository(db),
		notificationService,
	)
	orderService := NewOrderService(
		db,
		repositories.NewOrderRepository(db),
		repositories.NewCartRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewAddressRepository(db),
		repositories.NewCouponRepository(db),
		commissionService,
		notificationService,
	)
	return orderService, commissionService
}

func newTestWalletService(db *gorm.DB) *WalletService {
	notificationService := NewNotificationService(repositories.NewNotificationRepository(db))
	return NewWalletService(
		db,
		repositories.NewCommissionRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewBankAccountRepository(db),
		notificationService,
	)
}
