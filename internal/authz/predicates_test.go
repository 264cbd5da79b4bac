package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cloudedumatch_backend/internal/authz"
	"cloudedumatch_backend/internal/models"
)

func grantFor(code models.RoleCode, schoolID string) models.AdminRole {
	return models.AdminRole{
		RoleCode:     code,
		Organization: &models.Organization{SchoolID: schoolID},
	}
}

func TestCanManageForSchool(t *testing.T) {
	admin := &models.User{
		AdminRoles: []models.AdminRole{grantFor(models.RoleCodeUniversityAdmin, "sch-1")},
	}

	assert.True(t, authz.CanManageForSchool(admin, models.RoleCodeUniversityAdmin, "sch-1"))
	assert.False(t, authz.CanManageForSchool(admin, models.RoleCodeUniversityAdmin, "sch-2"))
	assert.False(t, authz.CanManageForSchool(admin, models.RoleCodeAssociationAdmin, "sch-1"))

	t.Run("empty target school never matches", func(t *testing.T) {
		assert.False(t, authz.CanManageForSchool(admin, models.RoleCodeUniversityAdmin, ""))
	})

	t.Run("grant without preloaded organization is skipped", func(t *testing.T) {
		u := &models.User{AdminRoles: []models.AdminRole{{RoleCode: models.RoleCodeUniversityAdmin}}}
		assert.False(t, authz.CanManageForSchool(u, models.RoleCodeUniversityAdmin, "sch-1"))
	})

	t.Run("superuser bypasses grants", func(t *testing.T) {
		u := &models.User{IsSuperuser: true}
		assert.True(t, authz.CanManageForSchool(u, models.RoleCodeUniversityAdmin, "sch-1"))
	})
}

func TestCanManageAid(t *testing.T) {
	aidAdmin := &models.User{SchoolID: "aid-1"}

	assert.True(t, authz.CanManageAid(aidAdmin, "aid-1"))
	assert.False(t, authz.CanManageAid(aidAdmin, "aid-2"))
	assert.False(t, authz.CanManageAid(aidAdmin, ""))

	hq := &models.User{AdminRoles: []models.AdminRole{{RoleCode: models.RoleCodeAssociationHQ}}}
	assert.True(t, authz.CanManageAid(hq, "aid-2"))
}

func TestCanReviewVerification(t *testing.T) {
	uniAdmin := &models.User{
		AdminRoles: []models.AdminRole{grantFor(models.RoleCodeUniversityAdmin, "sch-1")},
	}
	assocAdmin := &models.User{
		AdminRoles: []models.AdminRole{grantFor(models.RoleCodeAssociationAdmin, "sch-1")},
	}

	studentReq := &models.VerificationRequest{
		Type:           models.VerificationUniversityStudent,
		TargetSchoolID: "sch-1",
	}
	teacherReq := &models.VerificationRequest{
		Type:           models.VerificationVolunteerTeacher,
		TargetSchoolID: "sch-1",
	}

	assert.True(t, authz.CanReviewVerification(uniAdmin, studentReq))
	assert.False(t, authz.CanReviewVerification(uniAdmin, teacherReq))
	assert.True(t, authz.CanReviewVerification(assocAdmin, teacherReq))
	assert.False(t, authz.CanReviewVerification(assocAdmin, studentReq))

	t.Run("general basic needs platform governance", func(t *testing.T) {
		req := &models.VerificationRequest{Type: models.VerificationGeneralBasic}
		assert.False(t, authz.CanReviewVerification(uniAdmin, req))
		hq := &models.User{AdminRoles: []models.AdminRole{{RoleCode: models.RoleCodeAssociationHQ}}}
		assert.True(t, authz.CanReviewVerification(hq, req))
	})

	t.Run("unknown type is never reviewable", func(t *testing.T) {
		req := &models.VerificationRequest{Type: "mystery", TargetSchoolID: "sch-1"}
		super := &models.User{IsSuperuser: true}
		assert.False(t, authz.CanReviewVerification(super, req))
	})
}

func TestCampusAccess(t *testing.T) {
	student := &models.User{Role: models.UserRoleUniversityStudent, SchoolID: "sch-1"}
	assert.True(t, authz.CanAccessCampus(student, "sch-1"))
	assert.False(t, authz.CanAccessCampus(student, "sch-2"))

	outsider := &models.User{}
	assert.False(t, authz.CanAccessCampus(outsider, "sch-1"))

	t.Run("moderation needs the admin grant in the same school", func(t *testing.T) {
		assert.False(t, authz.CanManageCampus(student, "sch-1"))

		admin := &models.User{
			SchoolID:   "sch-1",
			AdminRoles: []models.AdminRole{grantFor(models.RoleCodeUniversityAdmin, "sch-1")},
		}
		assert.True(t, authz.CanManageCampus(admin, "sch-1"))
		assert.False(t, authz.CanManageCampus(admin, "sch-2"))
	})
}
