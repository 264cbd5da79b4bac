package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

func superuser(id string) *models.User {
	return &models.User{
		BaseModel:   models.BaseModel{ID: id},
		Username:    "root",
		Role:        models.UserRoleGovernance,
		IsActive:    true,
		IsSuperuser: true,
	}
}

func TestOrganizationCreate(t *testing.T) {
	users := newFakeUserRepo(superuser("root"), &models.User{
		BaseModel: models.BaseModel{ID: "pleb"},
		IsActive:  true,
	})
	orgs := &fakeOrgRepo{}
	svc := services.NewOrganizationService(orgs, users)

	resp, err := svc.Create("root", &dto.CreateOrganizationRequest{
		Type:        string(models.OrgTypeUniversity),
		DisplayName: "First University",
		SchoolID:    "sch-1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrgTypeUniversity, resp.Type)

	t.Run("duplicate school id conflicts", func(t *testing.T) {
		_, err := svc.Create("root", &dto.CreateOrganizationRequest{
			Type:        string(models.OrgTypeUniversity),
			DisplayName: "Second Name",
			SchoolID:    "sch-1",
		})
		assert.ErrorIs(t, err, apperrors.ErrOrganizationExists)
	})

	t.Run("duplicate display name conflicts", func(t *testing.T) {
		_, err := svc.Create("root", &dto.CreateOrganizationRequest{
			Type:        string(models.OrgTypeUniversity),
			DisplayName: "First University",
			SchoolID:    "sch-2",
		})
		assert.ErrorIs(t, err, apperrors.ErrOrganizationExists)
	})

	t.Run("same school id under another type is fine", func(t *testing.T) {
		_, err := svc.Create("root", &dto.CreateOrganizationRequest{
			Type:        string(models.OrgTypeAssociation),
			DisplayName: "First Association",
			SchoolID:    "sch-1",
		})
		assert.NoError(t, err)
	})

	t.Run("university requires a school id", func(t *testing.T) {
		_, err := svc.Create("root", &dto.CreateOrganizationRequest{
			Type:        string(models.OrgTypeUniversity),
			DisplayName: "No Scope",
		})
		assert.ErrorIs(t, err, apperrors.ErrMissingScopeID)
	})

	t.Run("aid school requires an aid school id", func(t *testing.T) {
		_, err := svc.Create("root", &dto.CreateOrganizationRequest{
			Type:        string(models.OrgTypeAidSchool),
			DisplayName: "Aid Without Scope",
		})
		assert.ErrorIs(t, err, apperrors.ErrMissingScopeID)
	})

	t.Run("non-superuser forbidden", func(t *testing.T) {
		_, err := svc.Create("pleb", &dto.CreateOrganizationRequest{
			Type:     string(models.OrgTypeUniversity),
			SchoolID: "sch-9",
		})
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	})
}

func TestOrganizationResolve(t *testing.T) {
	users := newFakeUserRepo(superuser("root"))
	orgs := &fakeOrgRepo{}
	svc := services.NewOrganizationService(orgs, users)

	_, err := svc.Create("root", &dto.CreateOrganizationRequest{
		Type:        string(models.OrgTypeAidSchool),
		DisplayName: "Hope School",
		AidSchoolID: "aid-1",
	})
	require.NoError(t, err)

	resp, err := svc.Resolve(string(models.OrgTypeAidSchool), "", "aid-1")
	require.NoError(t, err)
	assert.Equal(t, "Hope School", resp.DisplayName)

	t.Run("unknown type", func(t *testing.T) {
		_, err := svc.Resolve("circus", "sch-1", "")
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("missing scope id", func(t *testing.T) {
		_, err := svc.Resolve(string(models.OrgTypeUniversity), "", "")
		assert.ErrorIs(t, err, apperrors.ErrMissingScopeID)
	})
}
