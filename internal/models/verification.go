package models

import (
	"time"

	"gorm.io/datatypes"
)

// VerificationRequest is a user's claim to a role against a target school
// or organization. Lifecycle: pending -> approved | rejected.
type VerificationRequest struct {
	BaseModel
	Type VerificationType `gorm:"type:varchar(32);index" json:"type"`

	ApplicantID   string `gorm:"index;not null" json:"applicant_id"`
	ApplicantName string `json:"applicant_name"`

	TargetSchoolID       string `gorm:"index" json:"target_school_id"`
	TargetOrganizationID string `gorm:"index" json:"target_organization_id"`

	// Opaque evidence payload. For volunteer_teacher requests the first
	// element may carry tags and timeSlots used to seed the teacher pool.
	EvidenceRefs datatypes.JSON `json:"evidence_refs"`
	Note         string         `gorm:"type:text" json:"note"`

	Status RequestStatus `gorm:"type:varchar(16);default:'pending';index" json:"status"`

	ReviewedBy     string     `json:"reviewed_by"`
	ReviewedAt     *time.Time `json:"reviewed_at"`
	RejectedReason string     `json:"rejected_reason"`
}

// OnboardingRequest is an organization's application to join the platform,
// reviewed by HQ or a superuser.
type OnboardingRequest struct {
	BaseModel
	OrgType OrgType `gorm:"type:varchar(32);index" json:"org_type"`

	SchoolName      string `json:"school_name"`
	AssociationName string `json:"association_name"`

	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`

	UserID string `gorm:"index" json:"user_id"`

	EvidenceRefs datatypes.JSON `json:"evidence_refs"`

	Status RequestStatus `gorm:"type:varchar(16);default:'pending';index" json:"status"`

	ReviewedBy     string     `json:"reviewed_by"`
	ReviewedAt     *time.Time `json:"reviewed_at"`
	RejectedReason string     `json:"rejected_reason"`
}
