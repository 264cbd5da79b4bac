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

func uniAdmin(id, schoolID string) *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: id},
		Username:  "uadmin-" + id,
		SchoolID:  schoolID,
		IsActive:  true,
		AdminRoles: []models.AdminRole{{
			RoleCode:     models.RoleCodeUniversityAdmin,
			Organization: &models.Organization{SchoolID: schoolID},
		}},
	}
}

func campusRequest(schoolID, audience string) *dto.CreateAnnouncementRequest {
	return &dto.CreateAnnouncementRequest{
		Title:    "Exam week",
		Content:  "Library hours extended",
		Scope:    string(models.ScopeCampus),
		Audience: audience,
		SchoolID: schoolID,
	}
}

func TestAnnouncementCreate_PermissionMatrix(t *testing.T) {
	admin := uniAdmin("ua", "sch-1")
	assocA := assocAdmin("aa", "sch-1")
	plain := &models.User{BaseModel: models.BaseModel{ID: "pleb"}, IsActive: true}

	users := newFakeUserRepo(admin, assocA, plain)
	announcements := newFakeAnnouncementRepo()
	svc := services.NewAnnouncementService(announcements, users, &fakeNotifier{})

	t.Run("university admin publishes campus-wide", func(t *testing.T) {
		resp, err := svc.Create("ua", campusRequest("sch-1", string(models.AudienceCampusAll)))
		require.NoError(t, err)
		assert.Equal(t, models.ScopeCampus, resp.Scope)
	})

	t.Run("university admin cannot publish into another school", func(t *testing.T) {
		_, err := svc.Create("ua", campusRequest("sch-2", string(models.AudienceCampusAll)))
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	})

	t.Run("association admin reaches teachers only", func(t *testing.T) {
		_, err := svc.Create("aa", campusRequest("sch-1", string(models.AudienceAssociationTeachers)))
		assert.NoError(t, err)

		_, err = svc.Create("aa", campusRequest("sch-1", string(models.AudienceCampusAll)))
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	})

	t.Run("campus scope requires a school id", func(t *testing.T) {
		_, err := svc.Create("ua", campusRequest("", string(models.AudienceCampusAll)))
		assert.ErrorIs(t, err, apperrors.ErrMissingScopeID)
	})

	t.Run("campus scope rejects the public audience", func(t *testing.T) {
		_, err := svc.Create("ua", campusRequest("sch-1", string(models.AudiencePublicAll)))
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("plain users cannot publish anywhere", func(t *testing.T) {
		_, err := svc.Create("pleb", &dto.CreateAnnouncementRequest{
			Title:    "Hi",
			Content:  "There",
			Scope:    string(models.ScopePublic),
			Audience: string(models.AudiencePublicAll),
		})
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	})
}

func TestAnnouncementCreate_CampusFanOut(t *testing.T) {
	admin := uniAdmin("ua", "sch-1")
	teacher := verifiedTeacher("t1", "sch-1")
	student := &models.User{
		BaseModel: models.BaseModel{ID: "s1"},
		Role:      models.UserRoleUniversityStudent,
		SchoolID:  "sch-1",
		IsActive:  true,
	}
	inactive := &models.User{
		BaseModel: models.BaseModel{ID: "s2"},
		Role:      models.UserRoleUniversityStudent,
		SchoolID:  "sch-1",
	}
	outsider := &models.User{
		BaseModel: models.BaseModel{ID: "s3"},
		SchoolID:  "sch-2",
		IsActive:  true,
	}

	users := newFakeUserRepo(admin, teacher, student, inactive, outsider)
	notifier := &fakeNotifier{}
	svc := services.NewAnnouncementService(newFakeAnnouncementRepo(), users, notifier)

	admin.SchoolID = "sch-1"
	_, err := svc.Create("ua", campusRequest("sch-1", string(models.AudienceCampusAll)))
	require.NoError(t, err)

	// The author, inactive members and other schools are skipped.
	assert.Len(t, notifier.sentTo("t1"), 1)
	assert.Len(t, notifier.sentTo("s1"), 1)
	assert.Empty(t, notifier.sentTo("ua"))
	assert.Empty(t, notifier.sentTo("s2"))
	assert.Empty(t, notifier.sentTo("s3"))

	t.Run("teachers-only audience filters by role", func(t *testing.T) {
		notifier.sent = nil
		assocA := assocAdmin("aa", "sch-1")
		users.users["aa"] = assocA

		_, err := svc.Create("aa", campusRequest("sch-1", string(models.AudienceAssociationTeachers)))
		require.NoError(t, err)

		assert.Len(t, notifier.sentTo("t1"), 1)
		assert.Empty(t, notifier.sentTo("s1"))
	})
}

func TestAnnouncementUpdateAndDelete(t *testing.T) {
	admin := uniAdmin("ua", "sch-1")
	author := uniAdmin("author", "sch-1")
	users := newFakeUserRepo(admin, author, superuser("root"))
	announcements := newFakeAnnouncementRepo()
	svc := services.NewAnnouncementService(announcements, users, &fakeNotifier{})

	created, err := svc.Create("author", campusRequest("sch-1", string(models.AudienceCampusAll)))
	require.NoError(t, err)

	pinned := true
	resp, err := svc.Update("author", created.ID, &dto.UpdateAnnouncementRequest{Pinned: &pinned})
	require.NoError(t, err)
	assert.True(t, resp.Pinned)

	t.Run("non-author without governance cannot modify", func(t *testing.T) {
		_, err := svc.Update("ua", created.ID, &dto.UpdateAnnouncementRequest{Pinned: &pinned})
		assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
	})

	t.Run("governance can delete any announcement", func(t *testing.T) {
		require.NoError(t, svc.Delete("root", created.ID))
		_, err := svc.Update("author", created.ID, &dto.UpdateAnnouncementRequest{Pinned: &pinned})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	})
}
