package dto

import (
	"time"

	"cloudedumatch_backend/internal/authz"
	"cloudedumatch_backend/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=40"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name"`

	// Set for organization-account applicants; triggers an onboarding
	// request reviewed by HQ.
	OrgType         string `json:"org_type" validate:"omitempty,is-org-type"`
	SchoolName      string `json:"school_name"`
	AssociationName string `json:"association_name"`
	ContactPhone    string `json:"contact_phone"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	User        *UserResponse `json:"user,omitempty"`
}

type AdminRoleInfo struct {
	RoleCode       models.RoleCode `json:"role_code"`
	OrganizationID string          `json:"organization_id"`
}

type UserResponse struct {
	ID               string               `json:"id"`
	Username         string               `json:"username"`
	Email            string               `json:"email"`
	FullName         string               `json:"full_name"`
	Role             models.UserRole      `json:"role"`
	SchoolID         string               `json:"school_id"`
	OrganizationID   string               `json:"organization_id"`
	IsActive         bool                 `json:"is_active"`
	IsSuperuser      bool                 `json:"is_superuser"`
	OnboardingStatus models.RequestStatus `json:"onboarding_status"`
	Profile          models.Profile       `json:"profile"`
	AdminRoles       []AdminRoleInfo      `json:"admin_roles"`
	Capabilities     authz.Capabilities   `json:"capabilities"`
	CreatedAt        time.Time            `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// NewUserResponse projects a model user (with preloaded grants) onto
// the API shape, computing capabilities on the fly.
func NewUserResponse(user *models.User) *UserResponse {
	resp := &UserResponse{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		FullName:         user.FullName,
		Role:             user.Role,
		SchoolID:         user.SchoolID,
		OrganizationID:   user.OrganizationID,
		IsActive:         user.IsActive,
		IsSuperuser:      user.IsSuperuser,
		OnboardingStatus: user.OnboardingStatus,
		Profile:          models.ParseProfile(user.Profile),
		Capabilities:     authz.ComputeCapabilities(user),
		CreatedAt:        user.CreatedAt,
	}
	resp.AdminRoles = make([]AdminRoleInfo, 0, len(user.AdminRoles))
	for _, g := range user.AdminRoles {
		resp.AdminRoles = append(resp.AdminRoles, AdminRoleInfo{
			RoleCode:       g.RoleCode,
			OrganizationID: g.OrganizationID,
		})
	}
	return resp
}
