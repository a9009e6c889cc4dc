package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"vfxworks_backend/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	CreateNotification(db *gorm.DB, notification *models.Notification) error
	FindNotificationsByUser(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(db *gorm.DB, id, userID string) error
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) CreateNotification(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindNotificationsByUser(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error) {
	query := db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}
	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) MarkRead(db *gorm.DB, id, userID string) error {
	now := time.Now()
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
