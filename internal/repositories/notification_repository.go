package repositories

import (
	"cityscope-backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByUsername(username string) ([]models.Notification, error)
	GetUnreadCount(username string) (int64, error)
	MarkAsRead(notificationID uint) error
	MarkAllAsRead(username string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByUsername(username string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("username = ?", username).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(username string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("username = ? AND is_read = false", username).Count(&count).Error
	return count, err
}

// MarkAsRead is idempotent: marking an already-read notification changes nothing.
func (r *postgresNotificationRepository) MarkAsRead(notificationID uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", notificationID).Update("is_read", true).Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(username string) error {
	return r.db.Model(&models.Notification{}).Where("username = ? AND is_read = false", username).Update("is_read", true).Error
}
