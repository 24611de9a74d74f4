package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"synergy-shop/internal/adapters/persistence/models"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/core/domain"
)

// Notification service errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationService handles in-app notifications
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// NotifyOrderPlaced notifies a buyer that their order was created
func (s *NotificationService) NotifyOrderPlaced(ctx context.Context, userID uint, orderNo string, total float64) {
	n := &models.Notification{
		UserID:  &userID,
		Type:    string(domain.NotificationOrder),
		Title:   "สั่งซื้อสำเร็จ",
		Message: fmt.Sprintf("คำสั่งซื้อ %s ยอดรวม %.2f บาท กำลังดำเนินการ", orderNo, total),
		Link:    "/orders/" + orderNo,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to create order notification: %v", err)
	}
}

// NotifyOrderStatus notifies a buyer of a fulfillment status change
func (s *NotificationService) NotifyOrderStatus(ctx context.Context, userID uint, orderNo string, status domain.OrderStatus) {
	n := &models.Notification{
		UserID:  &userID,
		Type:    string(domain.NotificationOrder),
		Title:   "อัปเดตสถานะคำสั่งซื้อ",
		Message: fmt.Sprintf("คำสั่งซื้อ %s เปลี่ยนสถานะเป็น %s", orderNo, status),
		Link:    "/orders/" + orderNo,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to create status notification: %v", err)
	}
}

// NotifyCommissionPaid notifies an earner that a commission was settled
// into their wallet
func (s *NotificationService) NotifyCommissionPaid(ctx context.Context, userID uint, orderNo string, amount float64) {
	n := &models.Notification{
		UserID:  &userID,
		Type:    string(domain.NotificationPromo),
		Title:   "ได้รับค่าคอมมิชชั่น",
		Message: fmt.Sprintf("ค่าคอมมิชชั่น %.2f บาท จากคำสั่งซื้อ %s เข้ากระเป๋าเงินแล้ว", amount, orderNo),
		Link:    "/wallet",
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to create commission notification: %v", err)
	}
}

// NotifyWithdrawalRequested notifies a user that their withdrawal is queued
func (s *NotificationService) NotifyWithdrawalRequested(ctx context.Context, userID uint, amount, net float64, bankName string) {
	n := &models.Notification{
		UserID:  &userID,
		Type:    string(domain.NotificationSystem),
		Title:   "คำขอถอนเงิน",
		Message: fmt.Sprintf("คำขอถอนเงิน %.2f บาท ไปยัง %s อยู่ระหว่างดำเนินการ (ยอดสุทธิ %.2f บาท)", amount, bankName, net),
		Link:    "/wallet",
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to create withdrawal notification: %v", err)
	}
}

// NotifyWithdrawalCompleted notifies a user that their withdrawal was processed
func (s *NotificationService) NotifyWithdrawalCompleted(ctx context.Context, userID uint, amount float64, bankName string) {
	n := &models.Notification{
		UserID:  &userID,
		Type:    string(domain.NotificationSystem),
		Title:   "ถอนเงินสำเร็จ",
		Message: fmt.Sprintf("โอนเงิน %.2f บาท ไปยัง %s เรียบร้อยแล้ว", amount, bankName),
		Link:    "/wallet",
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to create withdrawal notification: %v", err)
	}
}

// NotifyTeamIncomeExpiring reminds a user that their team income
// window closes soon
func (s *NotificationService) NotifyTeamIncomeExpiring(ctx context.Context, userID uint, expiry time.Time) {
	n := &models.Notification{
		UserID:  &userID,
		Type:    string(domain.NotificationSystem),
		Title:   "รายได้ทีมใกล้หมดอายุ",
		Message: fmt.Sprintf("สิทธิ์รายได้ทีมของคุณจะหมดอายุวันที่ %s สั่งซื้อสินค้าเพื่อต่ออายุ", expiry.Format("02/01/2006")),
		Link:    "/referral",
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to create team income notification: %v", err)
	}
}

// Broadcast creates a global promo notification visible to all users
func (s *NotificationService) Broadcast(ctx context.Context, title, message string) error {
	n := &models.Notification{
		UserID:  nil, // global
		Type:    string(domain.NotificationPromo),
		Title:   title,
		Message: message,
	}
	return s.notificationRepo.Create(ctx, n)
}

// ListOutput represents a page of notifications
type NotificationListOutput struct {
	Notifications []*models.Notification `json:"notifications"`
	Total         int64                  `json:"total"`
	Unread        int64                  `json:"unread"`
}

// List lists a user's notifications including global broadcasts
func (s *NotificationService) List(ctx context.Context, userID uint, offset, limit int) (*NotificationListOutput, error) {
	notifications, total, err := s.notificationRepo.ListForUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &NotificationListOutput{
		Notifications: notifications,
		Total:         total,
		Unread:        unread,
	}, nil
}

// MarkRead marks a notification as read. Users may only mark their own
// notifications or global broadcasts.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return ErrNotificationNotFound
	}
	if n.UserID != nil && *n.UserID != userID {
		return ErrNotificationNotFound
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}
