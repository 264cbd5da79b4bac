package dto

import (
	"time"

	"cloudedumatch_backend/internal/models"
)

type CreateAnnouncementRequest struct {
	Title          string `json:"title" validate:"required"`
	Content        string `json:"content" validate:"required"`
	Scope          string `json:"scope" validate:"required,is-announcement-scope"`
	Audience       string `json:"audience" validate:"required,is-audience"`
	SchoolID       string `json:"school_id"`
	OrganizationID string `json:"organization_id"`
	Pinned         bool   `json:"pinned"`
	Version        string `json:"version"`
}

type UpdateAnnouncementRequest struct {
	Pinned *bool `json:"pinned" validate:"required"`
}

type AnnouncementResponse struct {
	ID             string                   `json:"id"`
	Title          string                   `json:"title"`
	Content        string                   `json:"content"`
	Scope          models.AnnouncementScope `json:"scope"`
	Audience       models.Audience          `json:"audience"`
	SchoolID       string                   `json:"school_id"`
	OrganizationID string                   `json:"organization_id"`
	Pinned         bool                     `json:"pinned"`
	CreatedBy      string                   `json:"created_by"`
	Version        string                   `json:"version"`
	CreatedAt      time.Time                `json:"created_at"`
}

func NewAnnouncementResponse(a *models.Announcement) *AnnouncementResponse {
	return &AnnouncementResponse{
		ID:             a.ID,
		Title:          a.Title,
		Content:        a.Content,
		Scope:          a.Scope,
		Audience:       a.Audience,
		SchoolID:       a.SchoolID,
		OrganizationID: a.OrganizationID,
		Pinned:         a.Pinned,
		CreatedBy:      a.CreatedBy,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
	}
}
