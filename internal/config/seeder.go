package config

import (
	"log"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/core/domain"
	"synergy-shop/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedProducts(); err != nil {
		log.Printf("⚠️ Product seeder skipped: %v", err)
	}
	if err := s.seedCoupons(); err != nil {
		log.Printf("⚠️ Coupon seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds default admin user
// This is for development/testing only
// In production, create admin through secure process
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        "admin@synergyshop.co.th",
		Name:         "Administrator",
		Password:     hashedPassword,
		Role:         string(domain.RoleAdmin),
		Tier:         string(domain.TierStarter),
		KycStatus:    string(domain.KycUnverified),
		ReferralCode: "ADMIN001",
		IsActive:     true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("👤 Admin user seeded (admin@synergyshop.co.th)")
	return nil
}

// seedProducts seeds the demo catalog
func (s *Seeder) seedProducts() error {
	var count int64
	s.db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "คอลลาเจนพรีเมียม", Description: "คอลลาเจนไดเปปไทด์จากญี่ปุ่น ขนาด 120 กรัม", Price: 890, Image: "/images/collagen.jpg", IsActive: true},
		{Name: "วิตามินซี 1000 มก.", Description: "วิตามินซีเข้มข้น 30 เม็ด", Price: 450, Image: "/images/vitamin-c.jpg", IsActive: true},
		{Name: "เซรั่มบำรุงผิวหน้า", Description: "เซรั่มไฮยาลูรอน 30 มล.", Price: 1290, Image: "/images/serum.jpg", IsActive: true},
		{Name: "กาแฟลดน้ำหนัก", Description: "กาแฟอาราบิก้าผสมสารสกัดธรรมชาติ 10 ซอง", Price: 350, Image: "/images/coffee.jpg", IsActive: true},
		{Name: "ครีมกันแดด SPF50+", Description: "ครีมกันแดดสูตรกันน้ำ 50 กรัม", Price: 690, Image: "/images/sunscreen.jpg", IsActive: true},
		{Name: "โปรตีนพืช", Description: "โปรตีนจากพืช 5 ชนิด รสวานิลลา 500 กรัม", Price: 1190, Image: "/images/protein.jpg", IsActive: true},
	}

	if err := s.db.Create(&products).Error; err != nil {
		return err
	}

	log.Printf("🛍️ Seeded %d products", len(products))
	return nil
}

// seedCoupons seeds demo coupons
func (s *Seeder) seedCoupons() error {
	var count int64
	s.db.Model(&models.Coupon{}).Count(&count)
	if count > 0 {
		return nil
	}

	coupons := []models.Coupon{
		{Code: "SYNERGY2026", Type: string(domain.CouponPercent), Value: 5, Description: "ส่วนลด 5% ทุกคำสั่งซื้อ", IsActive: true},
		{Code: "WELCOME100", Type: string(domain.CouponFlat), Value: 100, Description: "ส่วนลด 100 บาท สำหรับสมาชิกใหม่", IsActive: true},
	}

	if err := s.db.Create(&coupons).Error; err != nil {
		return err
	}

	log.Printf("🎟️ Seeded %d coupons", len(coupons))
	return nil
}
