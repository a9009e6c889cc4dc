package services

import (
	"errors"

	"gorm.io/gorm"

	"vfxworks_backend/internal/models"
	"vfxworks_backend/internal/repositories"
	"vfxworks_backend/pkg/apperrors"
)

type NotificationService interface {
	ListNotifications(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(db *gorm.DB, notificationID, userID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) ListNotifications(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.FindNotificationsByUser(db, userID, unreadOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(db *gorm.DB, notificationID, userID string) error {
	err := s.notificationRepo.MarkRead(db, notificationID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err, "notification")
		}
		return apperrors.InternalError(err)
	}
	return nil
}
