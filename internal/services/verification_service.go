package services

import (
	"encoding/json"
	"errors"
	"time"

	"cloudedumatch_backend/internal/authz"
	"cloudedumatch_backend/internal/logger"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

type VerificationService interface {
	Submit(applicantID string, req *dto.CreateVerificationRequest) (*dto.VerificationResponse, error)
	ListMine(applicantID string) ([]*dto.VerificationResponse, error)
	List(reviewerID string, filter repositories.VerificationFilter) ([]*dto.VerificationResponse, error)
	Review(reviewerID, requestID string, req *dto.ReviewVerificationRequest) (*dto.VerificationResponse, error)
	// GetApplicant exposes the applicant profile behind a request to its
	// eligible reviewer.
	GetApplicant(reviewerID, requestID string) (*dto.UserResponse, error)
}

type verificationService struct {
	verifications repositories.VerificationRepository
	users         repositories.UserRepository
	organizations repositories.OrganizationRepository
	pool          repositories.TeacherPoolRepository
	notifier      NotificationService
}

func NewVerificationService(
	verifications repositories.VerificationRepository,
	users repositories.UserRepository,
	organizations repositories.OrganizationRepository,
	pool repositories.TeacherPoolRepository,
	notifier NotificationService,
) VerificationService {
	return &verificationService{
		verifications: verifications,
		users:         users,
		organizations: organizations,
		pool:          pool,
		notifier:      notifier,
	}
}

func (s *verificationService) Submit(applicantID string, req *dto.CreateVerificationRequest) (*dto.VerificationResponse, error) {
	applicant, err := s.users.FindByID(applicantID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.checkSubmitPreconditions(applicant, req); err != nil {
		return nil, err
	}

	applicantName := applicant.FullName
	if applicantName == "" {
		applicantName = applicant.Username
	}

	var evidence []byte
	if req.EvidenceRefs != nil {
		evidence, _ = json.Marshal(req.EvidenceRefs)
	}

	record := &models.VerificationRequest{
		Type:                 models.VerificationType(req.Type),
		ApplicantID:          applicant.ID,
		ApplicantName:        applicantName,
		TargetSchoolID:       req.TargetSchoolID,
		TargetOrganizationID: req.TargetOrganizationID,
		EvidenceRefs:         evidence,
		Note:                 req.Note,
		Status:               models.RequestStatusPending,
	}
	if err := s.verifications.Create(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("verification submitted",
		"request_id", record.ID, "type", record.Type, "applicant_id", applicant.ID)
	return dto.NewVerificationResponse(record), nil
}

// checkSubmitPreconditions gates school-scoped request types. Teacher
// applicants must already be a verified student of the target school
// and name a valid association organization there.
func (s *verificationService) checkSubmitPreconditions(applicant *models.User, req *dto.CreateVerificationRequest) error {
	vType := models.VerificationType(req.Type)
	switch vType {
	case models.VerificationUniversityStudent, models.VerificationSpecialAid:
		if req.TargetSchoolID == "" {
			return apperrors.NewBadRequestError("target_school_id required")
		}
	case models.VerificationVolunteerTeacher:
		if req.TargetSchoolID == "" {
			return apperrors.NewBadRequestError("target_school_id required")
		}
		if applicant.SchoolID == "" {
			return apperrors.ErrStudentVerificationRequired
		}
		profile := models.ParseProfile(applicant.Profile)
		if profile.Verification.Student != models.VerificationStateVerified &&
			applicant.Role != models.UserRoleUniversityStudent &&
			applicant.Role != models.UserRoleVolunteerTeacher {
			return apperrors.ErrStudentVerificationRequired
		}
		if req.TargetSchoolID != applicant.SchoolID {
			return apperrors.ErrCrossSchoolApplication
		}
		if req.TargetOrganizationID == "" {
			return apperrors.NewBadRequestError("organization_id required")
		}
		org, err := s.organizations.FindByID(req.TargetOrganizationID)
		if err != nil {
			if errors.Is(err, repositories.ErrOrganizationNotFound) {
				return apperrors.NewBadRequestError("Invalid association organization for school")
			}
			return apperrors.InternalError(err)
		}
		if org.Type != models.OrgTypeAssociation || org.SchoolID != applicant.SchoolID {
			return apperrors.NewBadRequestError("Invalid association organization for school")
		}
	}
	return nil
}

func (s *verificationService) ListMine(applicantID string) ([]*dto.VerificationResponse, error) {
	items, err := s.verifications.List(repositories.VerificationFilter{ApplicantID: applicantID})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toVerificationResponses(items), nil
}

// List is the reviewer-side listing. Platform governance sees everything;
// scoped admins are pinned to their own school and their grant's request
// type, and asking for another school is refused outright.
func (s *verificationService) List(reviewerID string, filter repositories.VerificationFilter) ([]*dto.VerificationResponse, error) {
	reviewer, err := s.users.FindByIDWithGrants(reviewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !authz.IsSuperuser(reviewer) && !authz.IsHQ(reviewer) {
		if len(reviewer.AdminRoles) == 0 {
			return nil, apperrors.ErrInsufficientPermissions
		}
		if reviewer.SchoolID == "" {
			return nil, apperrors.ErrInsufficientPermissions
		}
		if filter.TargetSchoolID != "" && filter.TargetSchoolID != reviewer.SchoolID {
			return nil, apperrors.ErrInsufficientPermissions
		}
		filter.TargetSchoolID = reviewer.SchoolID

		// Each grant reviews exactly one request type.
		switch {
		case reviewer.HasGrant(models.RoleCodeUniversityAdmin):
			filter.Type = models.VerificationUniversityStudent
		case reviewer.HasGrant(models.RoleCodeAssociationAdmin):
			filter.Type = models.VerificationVolunteerTeacher
		case reviewer.HasGrant(models.RoleCodeAidSchoolAdmin):
			filter.Type = models.VerificationSpecialAid
		}
	}

	items, err := s.verifications.List(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toVerificationResponses(items), nil
}

func (s *verificationService) GetApplicant(reviewerID, requestID string) (*dto.UserResponse, error) {
	reviewer, err := s.users.FindByIDWithGrants(reviewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	record, err := s.verifications.FindByID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrVerificationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !authz.CanReviewVerification(reviewer, record) {
		return nil, apperrors.ErrReviewNotAllowed
	}

	applicant, err := s.users.FindByIDWithGrants(record.ApplicantID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(applicant), nil
}

func (s *verificationService) Review(reviewerID, requestID string, req *dto.ReviewVerificationRequest) (*dto.VerificationResponse, error) {
	reviewer, err := s.users.FindByIDWithGrants(reviewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	record, err := s.verifications.FindByID(requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrVerificationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !authz.CanReviewVerification(reviewer, record) {
		return nil, apperrors.ErrReviewNotAllowed
	}
	if record.Status != models.RequestStatusPending {
		return nil, apperrors.ErrRequestAlreadyReviewed
	}

	now := time.Now()
	record.Status = models.RequestStatus(req.Status)
	record.ReviewedBy = reviewer.ID
	record.ReviewedAt = &now
	record.RejectedReason = ""
	if record.Status == models.RequestStatusRejected {
		record.RejectedReason = req.RejectedReason
	}
	if err := s.verifications.Update(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.applyReviewOutcome(record); err != nil {
		return nil, err
	}

	notifType := models.NotifyVerificationApproved
	payload := map[string]interface{}{
		"request_id": record.ID,
		"type":       string(record.Type),
	}
	if record.Status == models.RequestStatusRejected {
		notifType = models.NotifyVerificationRejected
		payload["rejected_reason"] = record.RejectedReason
	}
	s.notifier.Notify(record.ApplicantID, notifType, payload)

	logger.Info("verification reviewed",
		"request_id", record.ID, "status", record.Status, "reviewer_id", reviewer.ID)
	return dto.NewVerificationResponse(record), nil
}

// applyReviewOutcome mutates the applicant's profile, role and school
// binding to match the review decision.
func (s *verificationService) applyReviewOutcome(record *models.VerificationRequest) error {
	applicant, err := s.users.FindByID(record.ApplicantID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// The applicant vanished between submit and review; the
			// request record alone keeps the audit trail.
			return nil
		}
		return apperrors.InternalError(err)
	}

	state := models.VerificationStateVerified
	if record.Status == models.RequestStatusRejected {
		state = models.VerificationStateRejected
	}
	approved := record.Status == models.RequestStatusApproved

	switch record.Type {
	case models.VerificationUniversityStudent:
		applicant.Profile = models.SetProfileVerification(applicant.Profile, "student", state)
		if approved {
			applicant.Role = models.UserRoleUniversityStudent
			applicant.SchoolID = record.TargetSchoolID
		}

	case models.VerificationVolunteerTeacher:
		applicant.Profile = models.SetProfileVerification(applicant.Profile, "teacher", state)
		if approved {
			applicant.Role = models.UserRoleVolunteerTeacher
			applicant.SchoolID = record.TargetSchoolID
			if err := s.upsertPoolEntry(applicant, record); err != nil {
				return err
			}
		}

	case models.VerificationGeneralBasic:
		applicant.Profile = models.SetProfileVerification(applicant.Profile, "generalBasic", state)

	case models.VerificationSpecialAid:
		applicant.Profile = models.SetProfileVerification(applicant.Profile, "aid", state)
		if approved {
			applicant.Role = models.UserRoleSpecialAidStudent
			applicant.SchoolID = record.TargetSchoolID
		}
	}

	if err := s.users.Update(applicant); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// upsertPoolEntry seeds or refreshes the pool record from the evidence
// payload on teacher approval.
func (s *verificationService) upsertPoolEntry(applicant *models.User, record *models.VerificationRequest) error {
	evidence := models.ParseTeacherEvidence(record.EvidenceRefs)

	entry, err := s.pool.FindByUserAndSchool(applicant.ID, record.TargetSchoolID)
	if err != nil {
		if !errors.Is(err, repositories.ErrPoolEntryNotFound) {
			return apperrors.InternalError(err)
		}
		entry = &models.TeacherPoolEntry{
			UserID:    applicant.ID,
			SchoolID:  record.TargetSchoolID,
			Tags:      models.StringList(evidence.Tags),
			TimeSlots: models.StringList(evidence.TimeSlots),
			InPool:    true,
		}
		if err := s.pool.Create(entry); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	}

	entry.Tags = models.StringList(evidence.Tags)
	entry.TimeSlots = models.StringList(evidence.TimeSlots)
	entry.InPool = true
	if err := s.pool.Update(entry); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func toVerificationResponses(items []models.VerificationRequest) []*dto.VerificationResponse {
	out := make([]*dto.VerificationResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewVerificationResponse(&items[i]))
	}
	return out
}
