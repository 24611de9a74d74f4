package services

import (
	"context"
	"errors"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// ProductService handles the product catalog
type ProductService struct {
	productRepo repositories.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repositories.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductListOutput represents a page of products
type ProductListOutput struct {
	Products []*models.Product `json:"products"`
	Total    int64             `json:"total"`
}

// List lists active products with pagination
func (s *ProductService) List(ctx context.Context, offset, limit int) (*ProductListOutput, error) {
	products, total, err := s.productRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return &ProductListOutput{Products: products, Total: total}, nil
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ProductInput represents product create/update input
type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required"`
	Image       string  `json:"image"`
	IsActive    *bool   `json:"is_active"`
}

// Create adds a product to the catalog. Admin only.
func (s *ProductService) Create(ctx context.Context, input *ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		IsActive:    true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update modifies a product. Admin only.
func (s *ProductService) Update(ctx context.Context, id uint, input *ProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	if input.Image != "" {
		product.Image = input.Image
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}
