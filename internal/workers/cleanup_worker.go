package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/logger"
	"cloudedumatch_backend/internal/repositories"
)

const notificationRetention = 30 * 24 * time.Hour

// CleanupWorker prunes rows that only decay over time: pool entries
// whose owner is no longer an eligible teacher, and read notifications
// past the retention window.
type CleanupWorker struct {
	db            *gorm.DB
	notifications repositories.NotificationRepository
}

func NewCleanupWorker(db *gorm.DB) *CleanupWorker {
	return &CleanupWorker{
		db:            db,
		notifications: repositories.NewNotificationRepository(db),
	}
}

func (w *CleanupWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *CleanupWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup worker stopped")
			return
		case <-ticker.C:
			w.reapStalePoolEntries()
			w.pruneNotifications()
		}
	}
}

func (w *CleanupWorker) reapStalePoolEntries() {
	result := w.db.Exec(`
		DELETE FROM teacher_pool_entries
		WHERE user_id IN (
			SELECT id FROM users
			WHERE is_active = false OR role <> 'volunteer_teacher'
		)
	`)
	if result.Error != nil {
		logger.WorkerLog("cleanup", "reap_stale_pool_entries", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Info("Removed stale teacher pool entries", "count", result.RowsAffected)
	}
}

func (w *CleanupWorker) pruneNotifications() {
	cutoff := time.Now().Add(-notificationRetention)
	deleted, err := w.notifications.DeleteReadOlderThan(cutoff)
	if err != nil {
		logger.WorkerLog("cleanup", "prune_notifications", err)
		return
	}
	if deleted > 0 {
		logger.Info("Pruned read notifications", "count", deleted)
	}
}
