package services

import (
	"context"
	"testing"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/core/domain"
)

func TestSummaryExcludesProcessedWithdrawals(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, commissionService := newTestOrderService(db)

	user := createTestUser(t, db, "earner@test.local", testUserOpts{wallet: 300})

	rows := []*models.CommissionTransaction{
		{UserID: user.ID, Amount: 100, Status: string(domain.CommissionPaid)},
		{UserID: user.ID, Amount: 200, Status: string(domain.CommissionPaid)},
		{UserID: user.ID, Amount: 75, Status: string(domain.CommissionPending)},
		// A processed withdrawal shares the PAID status but is not earnings.
		{UserID: user.ID, Amount: -500, Status: string(domain.CommissionPaid), Fee: 25, Tax: 15, Net: 460},
		{UserID: user.ID, Amount: -150, Status: string(domain.CommissionWaiting), Fee: 25, Tax: 4.5, Net: 120.5},
	}
	for _, row := range rows {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("create ledger row: %v", err)
		}
	}

	summary, err := commissionService.Summary(ctx, user.ID)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.TotalEarned != 300 {
		t.Errorf("TotalEarned = %.2f, want 300.00 (credits only)", summary.TotalEarned)
	}
	if summary.PendingCommission != 75 {
		t.Errorf("PendingCommission = %.2f, want 75.00", summary.PendingCommission)
	}
	if summary.WalletBalance != 300 {
		t.Errorf("WalletBalance = %.2f, want 300.00", summary.WalletBalance)
	}
}
