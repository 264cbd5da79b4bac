package dto

import (
	"time"

	"cloudedumatch_backend/internal/models"
)

type CreateOrganizationRequest struct {
	Type        string `json:"type" validate:"required,is-org-type"`
	DisplayName string `json:"display_name"`
	SchoolID    string `json:"school_id"`
	AidSchoolID string `json:"aid_school_id"`
	Certified   bool   `json:"certified"`
}

type UpdateOrganizationRequest struct {
	DisplayName *string `json:"display_name"`
	Certified   *bool   `json:"certified"`
}

type OrganizationResponse struct {
	ID          string         `json:"id"`
	Type        models.OrgType `json:"type"`
	DisplayName string         `json:"display_name"`
	SchoolID    string         `json:"school_id"`
	AidSchoolID string         `json:"aid_school_id"`
	Certified   bool           `json:"certified"`
	CreatedAt   time.Time      `json:"created_at"`
}

func NewOrganizationResponse(org *models.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:          org.ID,
		Type:        org.Type,
		DisplayName: org.DisplayName,
		SchoolID:    org.SchoolID,
		AidSchoolID: org.AidSchoolID,
		Certified:   org.Certified,
		CreatedAt:   org.CreatedAt,
	}
}

type CreateTagRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required,oneof=subject grade role skill"`
}

type UpdateTagRequest struct {
	Name    *string `json:"name"`
	Enabled *bool   `json:"enabled"`
}

type TagResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Enabled  bool   `json:"enabled"`
}

func NewTagResponse(tag *models.Tag) *TagResponse {
	return &TagResponse{
		ID:       tag.ID,
		Name:     tag.Name,
		Category: tag.Category,
		Enabled:  tag.Enabled,
	}
}
