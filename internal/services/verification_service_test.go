package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

func assocAdmin(id, schoolID string) *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: id},
		Username:  "admin-" + id,
		SchoolID:  schoolID,
		IsActive:  true,
		AdminRoles: []models.AdminRole{{
			RoleCode:     models.RoleCodeAssociationAdmin,
			Organization: &models.Organization{SchoolID: schoolID},
		}},
	}
}

func pendingTeacherRequest(verifications *fakeVerificationRepo, applicantID, schoolID string) *models.VerificationRequest {
	record := &models.VerificationRequest{
		Type:           models.VerificationVolunteerTeacher,
		ApplicantID:    applicantID,
		TargetSchoolID: schoolID,
		EvidenceRefs:   []byte(`[{"tags":["math","english"],"timeSlots":["sat_am"]}]`),
		Status:         models.RequestStatusPending,
	}
	_ = verifications.Create(record)
	return record
}

func TestVerificationSubmit(t *testing.T) {
	applicant := &models.User{
		BaseModel: models.BaseModel{ID: "u1"},
		Username:  "nameless",
		IsActive:  true,
	}
	users := newFakeUserRepo(applicant)
	verifications := newFakeVerificationRepo()
	svc := services.NewVerificationService(verifications, users, &fakeOrgRepo{}, &fakePoolRepo{}, &fakeNotifier{})

	resp, err := svc.Submit("u1", &dto.CreateVerificationRequest{
		Type:           string(models.VerificationUniversityStudent),
		TargetSchoolID: "sch-1",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusPending, resp.Status)
	// Falls back to the username when the full name is empty.
	assert.Equal(t, "nameless", resp.ApplicantName)
}

func TestVerificationSubmit_RequiresTargetSchool(t *testing.T) {
	applicant := &models.User{BaseModel: models.BaseModel{ID: "u1"}, IsActive: true}
	users := newFakeUserRepo(applicant)
	svc := services.NewVerificationService(newFakeVerificationRepo(), users, &fakeOrgRepo{}, &fakePoolRepo{}, &fakeNotifier{})

	for _, vType := range []models.VerificationType{
		models.VerificationUniversityStudent,
		models.VerificationVolunteerTeacher,
		models.VerificationSpecialAid,
	} {
		_, err := svc.Submit("u1", &dto.CreateVerificationRequest{Type: string(vType)})
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok, "type %s", vType)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode, "type %s", vType)
	}
}

func TestVerificationSubmit_TeacherNeedsStudentVerification(t *testing.T) {
	// A guest with no school binding cannot apply as a teacher anywhere.
	guest := &models.User{
		BaseModel: models.BaseModel{ID: "guest"},
		Role:      models.UserRoleGuest,
		IsActive:  true,
	}
	// A school-bound user whose student credential was never verified is
	// rejected too.
	unverified := &models.User{
		BaseModel: models.BaseModel{ID: "unv"},
		Role:      models.UserRoleGeneralStudent,
		SchoolID:  "sch-1",
		IsActive:  true,
	}
	users := newFakeUserRepo(guest, unverified)
	svc := services.NewVerificationService(newFakeVerificationRepo(), users, &fakeOrgRepo{}, &fakePoolRepo{}, &fakeNotifier{})

	req := &dto.CreateVerificationRequest{
		Type:           string(models.VerificationVolunteerTeacher),
		TargetSchoolID: "some-other-school",
	}
	_, err := svc.Submit("guest", req)
	assert.ErrorIs(t, err, apperrors.ErrStudentVerificationRequired)

	req.TargetSchoolID = "sch-1"
	_, err = svc.Submit("unv", req)
	assert.ErrorIs(t, err, apperrors.ErrStudentVerificationRequired)
}

func TestVerificationSubmit_TeacherCrossSchoolRejected(t *testing.T) {
	student := &models.User{
		BaseModel: models.BaseModel{ID: "stu"},
		Role:      models.UserRoleUniversityStudent,
		SchoolID:  "sch-1",
		IsActive:  true,
	}
	users := newFakeUserRepo(student)
	svc := services.NewVerificationService(newFakeVerificationRepo(), users, &fakeOrgRepo{}, &fakePoolRepo{}, &fakeNotifier{})

	_, err := svc.Submit("stu", &dto.CreateVerificationRequest{
		Type:           string(models.VerificationVolunteerTeacher),
		TargetSchoolID: "sch-2",
	})
	assert.ErrorIs(t, err, apperrors.ErrCrossSchoolApplication)
}

func TestVerificationSubmit_TeacherNeedsAssociationOrg(t *testing.T) {
	student := &models.User{
		BaseModel: models.BaseModel{ID: "stu"},
		Role:      models.UserRoleUniversityStudent,
		SchoolID:  "sch-1",
		IsActive:  true,
	}
	users := newFakeUserRepo(student)
	orgs := &fakeOrgRepo{}
	_ = orgs.Create(&models.Organization{Type: models.OrgTypeUniversity, SchoolID: "sch-1"})
	_ = orgs.Create(&models.Organization{Type: models.OrgTypeAssociation, SchoolID: "sch-2"})
	_ = orgs.Create(&models.Organization{Type: models.OrgTypeAssociation, SchoolID: "sch-1"})
	verifications := newFakeVerificationRepo()
	svc := services.NewVerificationService(verifications, users, orgs, &fakePoolRepo{}, &fakeNotifier{})

	req := &dto.CreateVerificationRequest{
		Type:           string(models.VerificationVolunteerTeacher),
		TargetSchoolID: "sch-1",
	}

	// Missing organization id.
	_, err := svc.Submit("stu", req)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

	// Wrong type and wrong school both fail.
	req.TargetOrganizationID = "org-1"
	_, err = svc.Submit("stu", req)
	require.Error(t, err)
	req.TargetOrganizationID = "org-2"
	_, err = svc.Submit("stu", req)
	require.Error(t, err)

	// The school's own association is accepted.
	req.TargetOrganizationID = "org-3"
	resp, err := svc.Submit("stu", req)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, resp.Status)
}

func TestVerificationReview_ApproveTeacher(t *testing.T) {
	reviewer := assocAdmin("rev", "sch-1")
	applicant := &models.User{
		BaseModel: models.BaseModel{ID: "app"},
		Username:  "applicant",
		Role:      models.UserRoleGeneralStudent,
		IsActive:  true,
	}
	users := newFakeUserRepo(reviewer, applicant)
	verifications := newFakeVerificationRepo()
	pool := &fakePoolRepo{}
	notifier := &fakeNotifier{}
	record := pendingTeacherRequest(verifications, "app", "sch-1")

	svc := services.NewVerificationService(verifications, users, &fakeOrgRepo{}, pool, notifier)

	resp, err := svc.Review("rev", record.ID, &dto.ReviewVerificationRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, resp.Status)
	assert.Equal(t, "rev", resp.ReviewedBy)
	require.NotNil(t, resp.ReviewedAt)

	// Applicant was promoted and bound to the school.
	assert.Equal(t, models.UserRoleVolunteerTeacher, applicant.Role)
	assert.Equal(t, "sch-1", applicant.SchoolID)
	profile := models.ParseProfile(applicant.Profile)
	assert.Equal(t, models.VerificationStateVerified, profile.Verification.Teacher)

	// Pool entry was seeded from the evidence payload.
	entry, err := pool.FindByUserAndSchool("app", "sch-1")
	require.NoError(t, err)
	assert.True(t, entry.InPool)
	assert.Equal(t, []string{"math", "english"}, models.ParseStringList(entry.Tags))
	assert.Equal(t, []string{"sat_am"}, models.ParseStringList(entry.TimeSlots))

	sent := notifier.sentTo("app")
	require.Len(t, sent, 1)
	assert.Equal(t, models.NotifyVerificationApproved, sent[0].Type)
}

func TestVerificationReview_ApproveTwiceRefreshesPoolEntry(t *testing.T) {
	reviewer := assocAdmin("rev", "sch-1")
	applicant := &models.User{
		BaseModel: models.BaseModel{ID: "app"},
		Username:  "applicant",
		IsActive:  true,
	}
	users := newFakeUserRepo(reviewer, applicant)
	verifications := newFakeVerificationRepo()
	pool := &fakePoolRepo{}
	pool.add(&models.TeacherPoolEntry{
		UserID:   "app",
		SchoolID: "sch-1",
		Tags:     models.StringList([]string{"old"}),
		InPool:   false,
	})
	record := pendingTeacherRequest(verifications, "app", "sch-1")

	svc := services.NewVerificationService(verifications, users, &fakeOrgRepo{}, pool, &fakeNotifier{})
	_, err := svc.Review("rev", record.ID, &dto.ReviewVerificationRequest{Status: "approved"})
	require.NoError(t, err)

	entry, err := pool.FindByUserAndSchool("app", "sch-1")
	require.NoError(t, err)
	assert.True(t, entry.InPool)
	assert.Equal(t, []string{"math", "english"}, models.ParseStringList(entry.Tags))
	// Still one entry per (user, school).
	assert.Len(t, pool.entries, 1)
}

func TestVerificationReview_Reject(t *testing.T) {
	reviewer := assocAdmin("rev", "sch-1")
	applicant := &models.User{
		BaseModel: models.BaseModel{ID: "app"},
		Role:      models.UserRoleGeneralStudent,
		IsActive:  true,
	}
	users := newFakeUserRepo(reviewer, applicant)
	verifications := newFakeVerificationRepo()
	notifier := &fakeNotifier{}
	record := pendingTeacherRequest(verifications, "app", "sch-1")

	svc := services.NewVerificationService(verifications, users, &fakeOrgRepo{}, &fakePoolRepo{}, notifier)

	resp, err := svc.Review("rev", record.ID, &dto.ReviewVerificationRequest{
		Status:         "rejected",
		RejectedReason: "insufficient evidence",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, resp.Status)
	assert.Equal(t, "insufficient evidence", resp.RejectedReason)

	// Rejection marks the credential but never promotes.
	assert.Equal(t, models.UserRoleGeneralStudent, applicant.Role)
	profile := models.ParseProfile(applicant.Profile)
	assert.Equal(t, models.VerificationStateRejected, profile.Verification.Teacher)

	sent := notifier.sentTo("app")
	require.Len(t, sent, 1)
	assert.Equal(t, models.NotifyVerificationRejected, sent[0].Type)
	assert.Equal(t, "insufficient evidence", sent[0].Payload["rejected_reason"])
}

func TestVerificationReview_AlreadyReviewed(t *testing.T) {
	reviewer := assocAdmin("rev", "sch-1")
	applicant := &models.User{BaseModel: models.BaseModel{ID: "app"}, IsActive: true}
	users := newFakeUserRepo(reviewer, applicant)
	verifications := newFakeVerificationRepo()
	record := pendingTeacherRequest(verifications, "app", "sch-1")

	svc := services.NewVerificationService(verifications, users, &fakeOrgRepo{}, &fakePoolRepo{}, &fakeNotifier{})

	_, err := svc.Review("rev", record.ID, &dto.ReviewVerificationRequest{Status: "approved"})
	require.NoError(t, err)

	_, err = svc.Review("rev", record.ID, &dto.ReviewVerificationRequest{Status: "rejected"})
	assert.ErrorIs(t, err, apperrors.ErrRequestAlreadyReviewed)
}

func TestVerificationReview_WrongReviewer(t *testing.T) {
	// An association admin for another school must not review.
	reviewer := assocAdmin("rev", "sch-2")
	applicant := &models.User{BaseModel: models.BaseModel{ID: "app"}, IsActive: true}
	users := newFakeUserRepo(reviewer, applicant)
	verifications := newFakeVerificationRepo()
	record := pendingTeacherRequest(verifications, "app", "sch-1")

	svc := services.NewVerificationService(verifications, users, &fakeOrgRepo{}, &fakePoolRepo{}, &fakeNotifier{})

	_, err := svc.Review("rev", record.ID, &dto.ReviewVerificationRequest{Status: "approved"})
	assert.ErrorIs(t, err, apperrors.ErrReviewNotAllowed)
}

func TestVerificationReview_UnknownRequest(t *testing.T) {
	reviewer := assocAdmin("rev", "sch-1")
	users := newFakeUserRepo(reviewer)
	svc := services.NewVerificationService(newFakeVerificationRepo(), users, &fakeOrgRepo{}, &fakePoolRepo{}, &fakeNotifier{})

	_, err := svc.Review("rev", "missing", &dto.ReviewVerificationRequest{Status: "approved"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}

func TestVerificationList_ScopedReviewerPinnedToOwnSchool(t *testing.T) {
	reviewer := assocAdmin("rev", "sch-1")
	users := newFakeUserRepo(reviewer)
	verifications := newFakeVerificationRepo()
	pendingTeacherRequest(verifications, "a1", "sch-1")
	pendingTeacherRequest(verifications, "a2", "sch-2")

	svc := services.NewVerificationService(verifications, users, &fakeOrgRepo{}, &fakePoolRepo{}, &fakeNotifier{})

	// Asking for another school is refused, not silently narrowed.
	_, err := svc.List("rev", repositories.VerificationFilter{TargetSchoolID: "sch-2"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	items, err := svc.List("rev", repositories.VerificationFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "sch-1", items[0].TargetSchoolID)
}

func TestVerificationList_ScopedReviewerPinnedToGrantType(t *testing.T) {
	reviewer := assocAdmin("rev", "sch-1")
	users := newFakeUserRepo(reviewer)
	verifications := newFakeVerificationRepo()
	_ = verifications.Create(&models.VerificationRequest{
		Type:           models.VerificationUniversityStudent,
		ApplicantID:    "a1",
		TargetSchoolID: "sch-1",
		Status:         models.RequestStatusPending,
	})
	pendingTeacherRequest(verifications, "a2", "sch-1")

	svc := services.NewVerificationService(verifications, users, &fakeOrgRepo{}, &fakePoolRepo{}, &fakeNotifier{})

	// An association admin reviews teacher applications only, even with
	// an empty filter.
	items, err := svc.List("rev", repositories.VerificationFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.VerificationVolunteerTeacher, items[0].Type)
}
