package services

import (
	"errors"

	"cloudedumatch_backend/internal/authz"
	"cloudedumatch_backend/internal/logger"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

// AidService manages special-aid students on behalf of their school.
type AidService interface {
	ListStudents(callerID, schoolID string) ([]*dto.UserResponse, error)
	// RevokeStudent withdraws the aid verification and demotes the
	// student back to a general account.
	RevokeStudent(callerID, studentID string) (*dto.UserResponse, error)
}

type aidService struct {
	users    repositories.UserRepository
	notifier NotificationService
}

func NewAidService(users repositories.UserRepository, notifier NotificationService) AidService {
	return &aidService{users: users, notifier: notifier}
}

func (s *aidService) loadAidAdmin(callerID string) (*models.User, bool, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, false, apperrors.ErrNotFound(err)
		}
		return nil, false, apperrors.InternalError(err)
	}

	governance := authz.IsSuperuser(caller) || authz.IsHQ(caller)
	if !governance && !caller.HasGrant(models.RoleCodeAidSchoolAdmin) {
		return nil, false, apperrors.ErrInsufficientPermissions
	}
	return caller, governance, nil
}

func (s *aidService) ListStudents(callerID, schoolID string) ([]*dto.UserResponse, error) {
	caller, governance, err := s.loadAidAdmin(callerID)
	if err != nil {
		return nil, err
	}

	target := schoolID
	if !governance {
		// Aid admins only see their own school, whatever was asked for.
		target = caller.SchoolID
	}
	if target == "" {
		return nil, apperrors.ErrMissingScopeID
	}

	students, _, err := s.users.List(repositories.UserFilter{
		Role:     models.UserRoleSpecialAidStudent,
		SchoolID: target,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.UserResponse, 0, len(students))
	for i := range students {
		if !students[i].IsActive {
			continue
		}
		out = append(out, dto.NewUserResponse(&students[i]))
	}
	return out, nil
}

func (s *aidService) RevokeStudent(callerID, studentID string) (*dto.UserResponse, error) {
	caller, governance, err := s.loadAidAdmin(callerID)
	if err != nil {
		return nil, err
	}

	student, err := s.users.FindByID(studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if student.Role != models.UserRoleSpecialAidStudent {
		return nil, apperrors.ErrInvalidOperation("aid", "User is not a special aid student")
	}
	if !governance && student.SchoolID != caller.SchoolID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	student.Profile = models.SetProfileVerification(student.Profile, "aid", models.VerificationStateNone)
	student.Role = models.UserRoleGeneralStudent
	student.SchoolID = ""
	if err := s.users.Update(student); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.Notify(student.ID, models.NotifyVerificationRevoked, map[string]interface{}{
		"verification_type": string(models.VerificationSpecialAid),
		"reason":            "revoked",
	})

	logger.Info("aid verification revoked", "student_id", student.ID, "by", caller.ID)
	return dto.NewUserResponse(student), nil
}
