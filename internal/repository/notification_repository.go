package repository

import (
	"gorm.io/gorm"

	"github.com/amaan1133/eagle/internal/models"
)

// GormNotificationRepository is a GORM implementation of
// NotificationRepository.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Store appends a notification row.
func (r *GormNotificationRepository) Store(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ListByUser lists a user's notifications newest first.
func (r *GormNotificationRepository) ListByUser(userID uint64, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// ReplaceSubscription swaps the user's push subscription in one transaction.
func (r *GormNotificationRepository) ReplaceSubscription(sub *models.PushSubscription) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", sub.UserID).Delete(&models.PushSubscription{}).Error; err != nil {
			return err
		}
		return tx.Create(sub).Error
	})
}

// FindSubscription returns the user's push subscription, if any.
func (r *GormNotificationRepository) FindSubscription(userID uint64) (*models.PushSubscription, error) {
	var sub models.PushSubscription
	if err := r.db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}
