package services

import (
	"context"
	"testing"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
)

func TestCreateProductKeepsInactiveFlag(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	productService := NewProductService(repositories.NewProductRepository(db))

	inactive := false
	created, err := productService.Create(ctx, &ProductInput{
		Name:     "สินค้าเตรียมเปิดตัว",
		Price:    990,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var stored models.Product
	if err := db.First(&stored, created.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if stored.IsActive {
		t.Error("product created with is_active=false was stored as active")
	}

	// Omitting the flag defaults to active.
	defaulted, err := productService.Create(ctx, &ProductInput{Name: "สินค้าปกติ", Price: 450})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	stored = models.Product{}
	db.First(&stored, defaulted.ID)
	if !stored.IsActive {
		t.Error("product created without the flag should default to active")
	}
}

func TestUpdateDeactivatedProduct(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	productService := NewProductService(repositories.NewProductRepository(db))

	product := createTestProduct(t, db, "เซรั่ม", 1290)

	off := false
	if _, err := productService.Update(ctx, product.ID, &ProductInput{
		Name:     product.Name,
		Price:    product.Price,
		IsActive: &off,
	}); err != nil {
		t.Fatalf("deactivating Update() error = %v", err)
	}

	// A deactivated product stays reachable for admin edits.
	on := true
	updated, err := productService.Update(ctx, product.ID, &ProductInput{
		Name:     product.Name,
		Price:    1490,
		IsActive: &on,
	})
	if err != nil {
		t.Fatalf("reactivating Update() error = %v", err)
	}
	if !updated.IsActive || updated.Price != 1490 {
		t.Errorf("updated product = active %v price %.2f, want active at 1490.00", updated.IsActive, updated.Price)
	}
}
