package services

import (
	"context"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService aggregates storefront statistics for the admin
type DashboardService struct {
	db             *gorm.DB
	orderRepo      repositories.OrderRepository
	commissionRepo repositories.CommissionRepository
	productRepo    repositories.ProductRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		db:             db,
		orderRepo:      repositories.NewOrderRepository(db),
		commissionRepo: repositories.NewCommissionRepository(db),
		productRepo:    repositories.NewProductRepository(db),
	}
}

// DashboardStats represents the admin overview
type DashboardStats struct {
	TotalUsers        int64             `json:"total_users"`
	TotalRevenue      float64           `json:"total_revenue"`
	OrdersByStatus    map[string]int64  `json:"orders_by_status"`
	PendingCommission float64           `json:"pending_commission"`
	PaidCommission    float64           `json:"paid_commission"`
	UsersByTier       map[string]int64  `json:"users_by_tier"`
	TopProducts       []*models.Product `json:"top_products"`
}

// GetStats builds the admin dashboard overview
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[string]int64),
		UsersByTier:    make(map[string]int64),
	}

	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", string(domain.RoleUser)).
		Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}

	var revenue *float64
	if err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("SUM(total)").
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	ordersByStatus, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	stats.OrdersByStatus = ordersByStatus

	pending, err := s.commissionRepo.SumByStatus(ctx, string(domain.CommissionPending))
	if err != nil {
		return nil, err
	}
	stats.PendingCommission = pending

	paid, err := s.commissionRepo.SumByStatus(ctx, string(domain.CommissionPaid))
	if err != nil {
		return nil, err
	}
	stats.PaidCommission = paid

	type tierCount struct {
		Tier  string
		Count int64
	}
	var tierCounts []tierCount
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Select("tier, COUNT(*) as count").
		Where("role = ?", string(domain.RoleUser)).
		Group("tier").
		Scan(&tierCounts).Error; err != nil {
		return nil, err
	}
	for _, tc := range tierCounts {
		stats.UsersByTier[tc.Tier] = tc.Count
	}

	topProducts, err := s.productRepo.TopSold(ctx, 5)
	if err != nil {
		return nil, err
	}
	stats.TopProducts = topProducts

	return stats, nil
}
