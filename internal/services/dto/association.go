package dto

import (
	"time"

	"cloudedumatch_backend/internal/models"
)

type CreateTaskRequest struct {
	Title           string  `json:"title" validate:"required"`
	Description     string  `json:"description"`
	RewardHours     float64 `json:"reward_hours" validate:"gte=0"`
	MaxParticipants int     `json:"max_participants" validate:"gte=0"`
}

type UpdateTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status" validate:"omitempty,oneof=open in_progress completed closed"`
	RewardHours *float64 `json:"reward_hours" validate:"omitempty,gte=0"`
}

type TaskResponse struct {
	ID              string            `json:"id"`
	SchoolID        string            `json:"school_id"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Status          models.TaskStatus `json:"status"`
	RewardHours     float64           `json:"reward_hours"`
	MaxParticipants int               `json:"max_participants"`
	CreatedBy       string            `json:"created_by"`
	CreatedAt       time.Time         `json:"created_at"`
}

func NewTaskResponse(t *models.AssociationTask) *TaskResponse {
	return &TaskResponse{
		ID:              t.ID,
		SchoolID:        t.SchoolID,
		Title:           t.Title,
		Description:     t.Description,
		Status:          t.Status,
		RewardHours:     t.RewardHours,
		MaxParticipants: t.MaxParticipants,
		CreatedBy:       t.CreatedBy,
		CreatedAt:       t.CreatedAt,
	}
}

type SaveRuleSetRequest struct {
	ExchangeRate float64 `json:"exchange_rate" validate:"required,gt=0"`
	Version      string  `json:"version"`
}

type RuleSetResponse struct {
	SchoolID     string  `json:"school_id"`
	ExchangeRate float64 `json:"exchange_rate"`
	Version      string  `json:"version"`
}

type GrantHoursRequest struct {
	UserID     string  `json:"user_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Reason     string  `json:"reason"`
	SourceType string  `json:"source_type" validate:"omitempty,oneof=task manual rollback"`
	SourceID   string  `json:"source_id"`
}

type HourGrantResponse struct {
	ID         string    `json:"id"`
	SchoolID   string    `json:"school_id"`
	UserID     string    `json:"user_id"`
	Amount     float64   `json:"amount"`
	Reason     string    `json:"reason"`
	SourceType string    `json:"source_type"`
	SourceID   string    `json:"source_id"`
	GrantedBy  string    `json:"granted_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewHourGrantResponse(g *models.VolunteerHourGrant) *HourGrantResponse {
	return &HourGrantResponse{
		ID:         g.ID,
		SchoolID:   g.SchoolID,
		UserID:     g.UserID,
		Amount:     g.Amount,
		Reason:     g.Reason,
		SourceType: g.SourceType,
		SourceID:   g.SourceID,
		GrantedBy:  g.GrantedBy,
		CreatedAt:  g.CreatedAt,
	}
}

type HoursSummaryResponse struct {
	UserID string  `json:"user_id"`
	Total  float64 `json:"total"`
}
