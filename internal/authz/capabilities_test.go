package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cloudedumatch_backend/internal/authz"
	"cloudedumatch_backend/internal/models"
)

func TestComputeCapabilities_Superuser(t *testing.T) {
	caps := authz.ComputeCapabilities(&models.User{
		Role:        models.UserRoleGovernance,
		IsSuperuser: true,
		// Grants must not matter once the superuser branch fires.
		AdminRoles: []models.AdminRole{{RoleCode: models.RoleCodeAidSchoolAdmin}},
	})

	assert.True(t, caps.CanAccessAdminPanel)
	assert.True(t, caps.CanManagePlatform)
	assert.True(t, caps.CanAuditCrossCampus)
	assert.False(t, caps.CanManageAid)
	assert.Equal(t, models.UserRoleGovernance, caps.RoleDisplay)
}

func TestComputeCapabilities_Grants(t *testing.T) {
	caps := authz.ComputeCapabilities(&models.User{
		Role: models.UserRoleGovernance,
		AdminRoles: []models.AdminRole{
			{RoleCode: models.RoleCodeUniversityAdmin},
			{RoleCode: models.RoleCodeAssociationAdmin},
		},
	})

	assert.True(t, caps.CanAccessAdminPanel)
	assert.True(t, caps.CanAccessCampus)
	assert.True(t, caps.CanManageUniversity)
	assert.True(t, caps.CanManageAssociation)
	assert.True(t, caps.CanAccessAssociation)
	assert.False(t, caps.CanManagePlatform)
}

func TestComputeCapabilities_VolunteerTeacher(t *testing.T) {
	t.Run("both credentials verified", func(t *testing.T) {
		caps := authz.ComputeCapabilities(&models.User{
			Role:    models.UserRoleVolunteerTeacher,
			Profile: []byte(`{"verification":{"student":"verified","teacher":"verified"}}`),
		})
		assert.True(t, caps.CanAccessCampus)
		assert.True(t, caps.CanAccessAssociation)
	})

	t.Run("student credential only", func(t *testing.T) {
		caps := authz.ComputeCapabilities(&models.User{
			Role:    models.UserRoleVolunteerTeacher,
			Profile: []byte(`{"verification":{"student":"verified"}}`),
		})
		assert.True(t, caps.CanAccessCampus)
		assert.False(t, caps.CanAccessAssociation)
	})

	t.Run("nothing verified", func(t *testing.T) {
		caps := authz.ComputeCapabilities(&models.User{Role: models.UserRoleVolunteerTeacher})
		assert.False(t, caps.CanAccessCampus)
		assert.False(t, caps.CanAccessAssociation)
	})

	t.Run("lapsed student verification revokes grant access", func(t *testing.T) {
		caps := authz.ComputeCapabilities(&models.User{
			Role:       models.UserRoleVolunteerTeacher,
			Profile:    []byte(`{"verification":{"student":"rejected","teacher":"verified"}}`),
			AdminRoles: []models.AdminRole{{RoleCode: models.RoleCodeAssociationAdmin}},
		})
		assert.False(t, caps.CanAccessCampus)
		assert.False(t, caps.CanAccessAssociation)
		assert.True(t, caps.CanAccessAdminPanel)
		assert.True(t, caps.CanManageAssociation)
	})
}

func TestComputeCapabilities_UniversityStudent(t *testing.T) {
	caps := authz.ComputeCapabilities(&models.User{Role: models.UserRoleUniversityStudent})
	assert.True(t, caps.CanAccessCampus)
	assert.False(t, caps.CanAccessAdminPanel)
}
