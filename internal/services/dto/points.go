package dto

import (
	"time"

	"cloudedumatch_backend/internal/models"
)

type PointsBalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

type PointTxnResponse struct {
	ID        string              `json:"id"`
	Type      models.PointTxnType `json:"type"`
	Title     string              `json:"title"`
	Points    int                 `json:"points"`
	CreatedAt time.Time           `json:"created_at"`
}

func NewPointTxnResponse(t *models.PointTxn) *PointTxnResponse {
	return &PointTxnResponse{
		ID:        t.ID,
		Type:      t.Type,
		Title:     t.Title,
		Points:    t.Points,
		CreatedAt: t.CreatedAt,
	}
}
