// Package authz holds the permission predicates. Every predicate is a
// pure function over a user whose AdminRoles (and their Organizations)
// have been preloaded; none of them touch the database.
package authz

import (
	"cloudedumatch_backend/internal/models"
)

// IsSuperuser short-circuits every other check.
func IsSuperuser(user *models.User) bool {
	return user.IsSuperuser
}

// IsHQ reports whether the user holds the platform-wide governance grant.
func IsHQ(user *models.User) bool {
	for _, g := range user.AdminRoles {
		if g.RoleCode == models.RoleCodeAssociationHQ {
			return true
		}
	}
	return false
}

// CanManageForSchool reports whether the user holds a grant with the
// given role code whose organization resolves to schoolID. The grant
// stores an organization id only, so the organization must be preloaded
// on the grant.
func CanManageForSchool(user *models.User, roleCode models.RoleCode, schoolID string) bool {
	if user.IsSuperuser {
		return true
	}
	if schoolID == "" {
		return false
	}
	for _, g := range user.AdminRoles {
		if g.RoleCode != roleCode || g.Organization == nil {
			continue
		}
		if g.Organization.SchoolID != "" && g.Organization.SchoolID == schoolID {
			return true
		}
	}
	return false
}

// CanManageAid reports whether the user may manage the given aid school.
// Aid-school admins are scoped by their own school_id rather than a
// grant-to-organization join; see the note on that asymmetry in the
// repository design doc.
func CanManageAid(user *models.User, targetAidSchoolID string) bool {
	if user.IsSuperuser {
		return true
	}
	if targetAidSchoolID == "" {
		return false
	}
	if IsHQ(user) {
		return true
	}
	return user.SchoolID == targetAidSchoolID
}

// CanReviewVerification routes the reviewer check by request type.
// Unknown types are never reviewable.
func CanReviewVerification(user *models.User, req *models.VerificationRequest) bool {
	switch req.Type {
	case models.VerificationUniversityStudent:
		return CanManageForSchool(user, models.RoleCodeUniversityAdmin, req.TargetSchoolID)
	case models.VerificationVolunteerTeacher:
		return CanManageForSchool(user, models.RoleCodeAssociationAdmin, req.TargetSchoolID)
	case models.VerificationSpecialAid:
		return CanManageAid(user, req.TargetSchoolID)
	case models.VerificationGeneralBasic:
		return user.IsSuperuser || IsHQ(user)
	}
	return false
}

// CanReviewOnboarding: organization onboarding is decided by HQ or a
// superuser only.
func CanReviewOnboarding(user *models.User) bool {
	return user.IsSuperuser || IsHQ(user)
}

// CanAccessCampus reports whether the user may read a school's campus
// forum: platform governance, or membership in that school.
func CanAccessCampus(user *models.User, schoolID string) bool {
	if user.IsSuperuser || IsHQ(user) {
		return true
	}
	return user.SchoolID != "" && user.SchoolID == schoolID
}

// CanManageCampus reports whether the user may moderate a school's
// campus forum: platform governance, or a university_admin grant holder
// belonging to that school.
func CanManageCampus(user *models.User, schoolID string) bool {
	if user.IsSuperuser || IsHQ(user) {
		return true
	}
	if user.SchoolID == "" || user.SchoolID != schoolID {
		return false
	}
	return user.HasGrant(models.RoleCodeUniversityAdmin)
}
