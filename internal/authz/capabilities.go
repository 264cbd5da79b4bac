package authz

import (
	"cloudedumatch_backend/internal/models"
)

// Capabilities is the front-end-facing flag set derived from a user's
// role and grants. It is recomputed on every identity fetch and never
// persisted.
type Capabilities struct {
	CanAccessAdminPanel  bool            `json:"can_access_admin_panel"`
	CanAccessCampus      bool            `json:"can_access_campus"`
	CanAccessAssociation bool            `json:"can_access_association"`
	CanManageAssociation bool            `json:"can_manage_association"`
	CanManageUniversity  bool            `json:"can_manage_university"`
	CanManageAid         bool            `json:"can_manage_aid"`
	CanManagePlatform    bool            `json:"can_manage_platform"`
	CanAuditCrossCampus  bool            `json:"can_audit_cross_campus"`
	RoleDisplay          models.UserRole `json:"role_display"`
}

// ComputeCapabilities projects role and grants onto capability flags.
// A superuser gets the maximal governance set and skips the per-grant
// walk entirely.
func ComputeCapabilities(user *models.User) Capabilities {
	caps := Capabilities{RoleDisplay: user.Role}

	if user.IsSuperuser {
		caps.CanAccessAdminPanel = true
		caps.CanManagePlatform = true
		caps.CanAuditCrossCampus = true
		return caps
	}

	for _, g := range user.AdminRoles {
		switch g.RoleCode {
		case models.RoleCodeAssociationHQ:
			caps.CanAccessAdminPanel = true
			caps.CanManagePlatform = true
			caps.CanAuditCrossCampus = true
		case models.RoleCodeUniversityAdmin:
			caps.CanAccessAdminPanel = true
			caps.CanAccessCampus = true
			caps.CanManageUniversity = true
		case models.RoleCodeAssociationAdmin:
			caps.CanAccessAdminPanel = true
			caps.CanAccessCampus = true
			caps.CanAccessAssociation = true
			caps.CanManageAssociation = true
		case models.RoleCodeAidSchoolAdmin:
			caps.CanAccessAdminPanel = true
			caps.CanManageAid = true
		}
	}

	switch user.Role {
	case models.UserRoleUniversityStudent:
		caps.CanAccessCampus = true
	case models.UserRoleVolunteerTeacher:
		// Verification state is authoritative for teachers: a lapsed
		// student verification revokes campus access even when a grant
		// branch above switched it on.
		verification := models.ParseProfile(user.Profile).Verification
		studentOK := verification.Student == models.VerificationStateVerified
		teacherOK := verification.Teacher == models.VerificationStateVerified
		caps.CanAccessCampus = studentOK
		caps.CanAccessAssociation = studentOK && teacherOK
	}

	return caps
}
