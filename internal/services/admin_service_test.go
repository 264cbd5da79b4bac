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

func newAdminFixture(users *fakeUserRepo) services.AdminService {
	return services.NewAdminService(nil, users, &fakeOrgRepo{}, newFakeVerificationRepo(), &fakeNotifier{})
}

func TestAdminCreateOrgAdmin(t *testing.T) {
	root := &models.User{
		BaseModel:   models.BaseModel{ID: "root"},
		Username:    "root",
		Role:        models.UserRoleGovernance,
		IsSuperuser: true,
	}
	users := newFakeUserRepo(root)
	svc := newAdminFixture(users)

	req := &dto.CreateOrgAdminRequest{
		Username: "platform-ops",
		Password: "long-enough-secret",
		RoleCode: string(models.RoleCodeSuperadmin),
	}

	resp, err := svc.CreateOrgAdmin("root", req)
	require.NoError(t, err)
	assert.True(t, resp.Created)

	provisioned := users.users[resp.UserID]
	require.NotNil(t, provisioned)
	assert.Equal(t, models.UserRoleGovernance, provisioned.Role)
	assert.True(t, provisioned.IsSuperuser)
	require.Len(t, users.grants, 1)
	assert.Equal(t, models.RoleCodeSuperadmin, users.grants[0].RoleCode)

	t.Run("provisioning again reuses the grant", func(t *testing.T) {
		again, err := svc.CreateOrgAdmin("root", req)
		require.NoError(t, err)
		assert.False(t, again.Created)
		assert.Equal(t, resp.UserID, again.UserID)
		assert.Len(t, users.grants, 1)
	})

	t.Run("unknown role code", func(t *testing.T) {
		_, err := svc.CreateOrgAdmin("root", &dto.CreateOrgAdminRequest{
			Username: "someone",
			Password: "long-enough-secret",
			RoleCode: "janitor",
		})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("only superusers provision admins", func(t *testing.T) {
		_, err := svc.CreateOrgAdmin(resp.UserID, req)
		assert.NoError(t, err)

		plain := &models.User{BaseModel: models.BaseModel{ID: "plain"}, Username: "plain"}
		users.users["plain"] = plain
		_, err = svc.CreateOrgAdmin("plain", req)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	})
}
