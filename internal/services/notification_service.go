package services

import (
	"encoding/json"
	"time"

	"cloudedumatch_backend/internal/logger"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

type NotificationService interface {
	// Notify is best-effort; a failed insert is logged and swallowed so
	// the triggering operation never fails on notification delivery.
	Notify(userID, notifType string, payload map[string]interface{})
	NotifyMany(userIDs []string, notifType string, payload map[string]interface{})

	List(userID string, unreadOnly bool, offset, limit int) ([]*dto.NotificationResponse, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) error
	UnreadCount(userID string) (int64, error)
}

type notificationService struct {
	notifications repositories.NotificationRepository
}

func NewNotificationService(notifications repositories.NotificationRepository) NotificationService {
	return &notificationService{notifications: notifications}
}

func encodePayload(payload map[string]interface{}) []byte {
	if payload == nil {
		return []byte("{}")
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return []byte("{}")
	}
	return out
}

func (s *notificationService) Notify(userID, notifType string, payload map[string]interface{}) {
	n := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Payload: encodePayload(payload),
	}
	if err := s.notifications.Create(n); err != nil {
		logger.WithError(err).Warn("notification insert failed",
			"user_id", userID, "type", notifType)
	}
}

func (s *notificationService) NotifyMany(userIDs []string, notifType string, payload map[string]interface{}) {
	if len(userIDs) == 0 {
		return
	}
	raw := encodePayload(payload)
	items := make([]*models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		items = append(items, &models.Notification{
			UserID:  id,
			Type:    notifType,
			Payload: raw,
		})
	}
	if err := s.notifications.CreateBulk(items); err != nil {
		logger.WithError(err).Warn("bulk notification insert failed",
			"type", notifType, "count", len(items))
	}
}

func (s *notificationService) List(userID string, unreadOnly bool, offset, limit int) ([]*dto.NotificationResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.notifications.ListByUser(userID, unreadOnly, offset, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.NotificationResponse, 0, len(items))
	for i := range items {
		n := items[i]
		var payload map[string]interface{}
		if len(n.Payload) > 0 {
			_ = json.Unmarshal(n.Payload, &payload)
		}
		out = append(out, &dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Payload:   payload,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

func (s *notificationService) MarkRead(userID, notificationID string) error {
	n, err := s.notifications.FindByID(notificationID)
	if err != nil {
		if err == repositories.ErrNotificationNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if n.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}
	if err := s.notifications.MarkAsRead(notificationID, time.Now()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(userID string) error {
	if err := s.notifications.MarkAllAsRead(userID, time.Now()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) UnreadCount(userID string) (int64, error) {
	count, err := s.notifications.UnreadCount(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
