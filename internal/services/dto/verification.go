package dto

import (
	"time"

	"cloudedumatch_backend/internal/models"
)

type CreateVerificationRequest struct {
	Type                 string        `json:"type" validate:"required,is-verification-type"`
	TargetSchoolID       string        `json:"target_school_id"`
	TargetOrganizationID string        `json:"target_organization_id"`
	EvidenceRefs         []interface{} `json:"evidence_refs"`
	Note                 string        `json:"note"`
}

type ReviewVerificationRequest struct {
	Status         string `json:"status" validate:"required,is-review-status"`
	RejectedReason string `json:"rejected_reason"`
}

type VerificationResponse struct {
	ID                   string                  `json:"id"`
	Type                 models.VerificationType `json:"type"`
	ApplicantID          string                  `json:"applicant_id"`
	ApplicantName        string                  `json:"applicant_name"`
	TargetSchoolID       string                  `json:"target_school_id"`
	TargetOrganizationID string                  `json:"target_organization_id"`
	Note                 string                  `json:"note"`
	Status               models.RequestStatus    `json:"status"`
	ReviewedBy           string                  `json:"reviewed_by"`
	ReviewedAt           *time.Time              `json:"reviewed_at"`
	RejectedReason       string                  `json:"rejected_reason"`
	CreatedAt            time.Time               `json:"created_at"`
}

func NewVerificationResponse(req *models.VerificationRequest) *VerificationResponse {
	return &VerificationResponse{
		ID:                   req.ID,
		Type:                 req.Type,
		ApplicantID:          req.ApplicantID,
		ApplicantName:        req.ApplicantName,
		TargetSchoolID:       req.TargetSchoolID,
		TargetOrganizationID: req.TargetOrganizationID,
		Note:                 req.Note,
		Status:               req.Status,
		ReviewedBy:           req.ReviewedBy,
		ReviewedAt:           req.ReviewedAt,
		RejectedReason:       req.RejectedReason,
		CreatedAt:            req.CreatedAt,
	}
}

type ReviewOnboardingRequest struct {
	Status         string `json:"status" validate:"required,is-review-status"`
	RejectedReason string `json:"rejected_reason"`
}

type OnboardingResponse struct {
	ID              string               `json:"id"`
	OrgType         models.OrgType       `json:"org_type"`
	SchoolName      string               `json:"school_name"`
	AssociationName string               `json:"association_name"`
	ContactName     string               `json:"contact_name"`
	ContactEmail    string               `json:"contact_email"`
	ContactPhone    string               `json:"contact_phone"`
	UserID          string               `json:"user_id"`
	Status          models.RequestStatus `json:"status"`
	ReviewedBy      string               `json:"reviewed_by"`
	ReviewedAt      *time.Time           `json:"reviewed_at"`
	RejectedReason  string               `json:"rejected_reason"`
	CreatedAt       time.Time            `json:"created_at"`
}

func NewOnboardingResponse(req *models.OnboardingRequest) *OnboardingResponse {
	return &OnboardingResponse{
		ID:              req.ID,
		OrgType:         req.OrgType,
		SchoolName:      req.SchoolName,
		AssociationName: req.AssociationName,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		UserID:          req.UserID,
		Status:          req.Status,
		ReviewedBy:      req.ReviewedBy,
		ReviewedAt:      req.ReviewedAt,
		RejectedReason:  req.RejectedReason,
		CreatedAt:       req.CreatedAt,
	}
}
