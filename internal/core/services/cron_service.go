package services

import (
	"context"
	"log"
	"time"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/core/domain"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	db                  *gorm.DB
	refreshTokenRepo    repositories.RefreshTokenRepository
	notificationService *NotificationService
	cron                *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(
	db *gorm.DB,
	refreshTokenRepo repositories.RefreshTokenRepository,
	notificationService *NotificationService,
) *CronService {
	return &CronService{
		db:                  db,
		refreshTokenRepo:    refreshTokenRepo,
		notificationService: notificationService,
		cron:                cron.New(),
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	// Daily at 03:00: purge expired refresh tokens
	if _, err := s.cron.AddFunc("0 3 * * *", s.cleanupExpiredTokens); err != nil {
		return err
	}

	// Daily at 09:00: remind users whose team income window closes soon
	if _, err := s.cron.AddFunc("0 9 * * *", s.remindExpiringTeamIncome); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("⏰ Cron service started")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("⏰ Cron service stopped")
}

func (s *CronService) cleanupExpiredTokens() {
	ctx := context.Background()
	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("⚠️ Failed to cleanup expired refresh tokens: %v", err)
		return
	}
	log.Println("🧹 Expired refresh tokens cleaned up")
}

// remindExpiringTeamIncome notifies users whose teamIncomeExpiry falls
// within the next 3 days, nudging them toward an order that extends it
func (s *CronService) remindExpiringTeamIncome() {
	ctx := context.Background()
	now := time.Now()
	cutoff := now.Add(3 * 24 * time.Hour)

	var users []*models.User
	if err := s.db.WithContext(ctx).
		Where("team_income_expiry IS NOT NULL").
		Where("team_income_expiry BETWEEN ? AND ?", now, cutoff).
		Where("tier <> ?", string(domain.TierStarter)).
		Find(&users).Error; err != nil {
		log.Printf("⚠️ Failed to load users with expiring team income: %v", err)
		return
	}

	for _, user := range users {
		s.notificationService.NotifyTeamIncomeExpiring(ctx, user.ID, *user.TeamIncomeExpiry)
	}

	if len(users) > 0 {
		log.Printf("📣 Sent %d team income expiry reminders", len(users))
	}
}
