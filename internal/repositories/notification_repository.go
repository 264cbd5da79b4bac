package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(n *models.Notification) error
	CreateBulk(items []*models.Notification) error
	FindByID(id string) (*models.Notification, error)
	ListByUser(userID string, unreadOnly bool, offset, limit int) ([]models.Notification, error)
	MarkAsRead(id string, at time.Time) error
	MarkAllAsRead(userID string, at time.Time) error
	UnreadCount(userID string) (int64, error)
	DeleteReadOlderThan(cutoff time.Time) (int64, error)
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepositoryImpl) CreateBulk(items []*models.Notification) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.Create(items).Error
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepositoryImpl) ListByUser(userID string, unreadOnly bool, offset, limit int) ([]models.Notification, error) {
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}
	var items []models.Notification
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(id string, at time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", at).Error
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string, at time.Time) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at).Error
}

func (r *NotificationRepositoryImpl) UnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

// DeleteReadOlderThan prunes read notifications past the retention
// window; used by the maintenance worker.
func (r *NotificationRepositoryImpl) DeleteReadOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.
		Where("read_at IS NOT NULL AND read_at < ?", cutoff).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
