package services

import (
	"errors"

	"cloudedumatch_backend/internal/algorithms"
	"cloudedumatch_backend/internal/authz"
	"cloudedumatch_backend/internal/logger"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

type TeacherPoolService interface {
	// ListTeachers returns the pool for one school, reaping entries whose
	// owner no longer qualifies.
	ListTeachers(callerID, schoolID string) ([]*dto.PoolTeacher, error)
	SetInPool(callerID, teacherUserID string, inPool bool) (*dto.PoolTeacher, error)
}

type teacherPoolService struct {
	pool  repositories.TeacherPoolRepository
	users repositories.UserRepository
}

func NewTeacherPoolService(pool repositories.TeacherPoolRepository, users repositories.UserRepository) TeacherPoolService {
	return &teacherPoolService{pool: pool, users: users}
}

func (s *teacherPoolService) ListTeachers(callerID, schoolID string) ([]*dto.PoolTeacher, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	target := schoolID
	if target == "" {
		target = caller.SchoolID
	}
	if target == "" {
		return nil, apperrors.ErrMissingScopeID
	}

	allowed := authz.IsSuperuser(caller) ||
		authz.IsHQ(caller) ||
		authz.CanManageForSchool(caller, models.RoleCodeAssociationAdmin, target)
	if !allowed {
		return nil, apperrors.ErrInsufficientPermissions
	}

	entries, err := s.pool.ListBySchool(target)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	userIDs := make([]string, 0, len(entries))
	for i := range entries {
		userIDs = append(userIDs, entries[i].UserID)
	}
	users, err := s.users.FindByIDs(userIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	out := make([]*dto.PoolTeacher, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		owner := byID[entry.UserID]
		if s.entryIsStale(entry, owner, target) {
			if err := s.pool.Delete(entry.ID); err != nil {
				logger.WithError(err).Warn("stale pool entry delete failed", "entry_id", entry.ID)
			}
			continue
		}
		out = append(out, dto.NewPoolTeacher(entry, owner))
	}
	return out, nil
}

func (s *teacherPoolService) SetInPool(callerID, teacherUserID string, inPool bool) (*dto.PoolTeacher, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if caller.SchoolID == "" {
		return nil, apperrors.ErrMissingScopeID
	}
	if !authz.IsSuperuser(caller) &&
		!authz.CanManageForSchool(caller, models.RoleCodeAssociationAdmin, caller.SchoolID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	entry, err := s.pool.FindByUserAndSchool(teacherUserID, caller.SchoolID)
	if err != nil {
		if errors.Is(err, repositories.ErrPoolEntryNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	entry.InPool = inPool
	if err := s.pool.Update(entry); err != nil {
		return nil, apperrors.InternalError(err)
	}

	owner, err := s.users.FindByID(teacherUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewPoolTeacher(entry, owner), nil
}

// entryIsStale reports whether a pool record no longer matches its owner:
// owner gone, inactive, rebound to another school, demoted, or with the
// teacher verification withdrawn.
func (s *teacherPoolService) entryIsStale(entry *models.TeacherPoolEntry, owner *models.User, schoolID string) bool {
	if owner == nil || !owner.IsActive {
		return true
	}
	if owner.SchoolID != schoolID {
		return true
	}
	if owner.Role != models.UserRoleVolunteerTeacher {
		return true
	}
	return !algorithms.EligibleTeacher(owner)
}
