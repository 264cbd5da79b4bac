package models

import (
	"gorm.io/datatypes"
)

type User struct {
	BaseModel
	Username     string   `gorm:"uniqueIndex;not null" json:"username"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	FullName     string   `json:"full_name"`
	Role         UserRole `gorm:"type:varchar(32);default:'guest';index" json:"role"`

	// Home organization context. SchoolID for university students and
	// volunteer teachers, OrganizationID for aid students.
	SchoolID       string `gorm:"index" json:"school_id"`
	OrganizationID string `gorm:"index" json:"organization_id"`

	IsActive    bool `gorm:"default:true" json:"is_active"`
	IsSuperuser bool `gorm:"default:false" json:"is_superuser"`

	OnboardingStatus RequestStatus `gorm:"type:varchar(16);default:'approved'" json:"onboarding_status"`

	// Free-form extended profile, including the verification map.
	Profile datatypes.JSON `json:"profile"`

	AdminRoles []AdminRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"admin_roles,omitempty"`
}

// AdminRole is an organization-scoped management grant. A user may hold
// several grants with different role codes and organizations.
type AdminRole struct {
	BaseModel
	UserID         string   `gorm:"not null;index" json:"user_id"`
	RoleCode       RoleCode `gorm:"type:varchar(40);index" json:"role_code"`
	OrganizationID string   `gorm:"index" json:"organization_id"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

// HasGrant reports whether the user holds any grant with the given role code.
func (u *User) HasGrant(code RoleCode) bool {
	for _, g := range u.AdminRoles {
		if g.RoleCode == code {
			return true
		}
	}
	return false
}
