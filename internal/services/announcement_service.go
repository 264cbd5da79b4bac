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

// fanoutLimit caps announcement notification fan-out; a larger audience
// publishes the announcement without per-user notifications.
const fanoutLimit = 1000

type AnnouncementService interface {
	Create(callerID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	List(callerID string, filter repositories.AnnouncementFilter) ([]*dto.AnnouncementResponse, error)
	Update(callerID, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	Delete(callerID, id string) error
}

type announcementService struct {
	announcements repositories.AnnouncementRepository
	users         repositories.UserRepository
	notifier      NotificationService
}

func NewAnnouncementService(
	announcements repositories.AnnouncementRepository,
	users repositories.UserRepository,
	notifier NotificationService,
) AnnouncementService {
	return &announcementService{
		announcements: announcements,
		users:         users,
		notifier:      notifier,
	}
}

func (s *announcementService) Create(callerID string, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	scope := models.AnnouncementScope(req.Scope)
	audience := models.Audience(req.Audience)
	if err := s.authorizePublish(caller, scope, audience, req); err != nil {
		return nil, err
	}

	record := &models.Announcement{
		Title:          req.Title,
		Content:        req.Content,
		Scope:          scope,
		Audience:       audience,
		SchoolID:       req.SchoolID,
		OrganizationID: req.OrganizationID,
		Pinned:         req.Pinned,
		CreatedBy:      caller.ID,
		Version:        req.Version,
	}
	if err := s.announcements.Create(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.fanOut(caller, record)

	logger.Info("announcement published",
		"announcement_id", record.ID, "scope", record.Scope, "audience", record.Audience)
	return dto.NewAnnouncementResponse(record), nil
}

// authorizePublish applies the scope and audience matrix. Campus admins
// publish only into their own school, and association admins only to
// their teachers.
func (s *announcementService) authorizePublish(caller *models.User, scope models.AnnouncementScope, audience models.Audience, req *dto.CreateAnnouncementRequest) error {
	governance := authz.IsSuperuser(caller) || authz.IsHQ(caller)

	switch scope {
	case models.ScopePublic:
		if audience != models.AudiencePublicAll {
			return apperrors.NewBadRequestError("public announcements target the public_all audience")
		}
		if governance ||
			caller.HasGrant(models.RoleCodeUniversityAdmin) ||
			caller.HasGrant(models.RoleCodeAssociationAdmin) {
			return nil
		}
		return apperrors.ErrInsufficientPermissions

	case models.ScopeCampus:
		if req.SchoolID == "" {
			return apperrors.ErrMissingScopeID
		}
		if audience != models.AudienceCampusAll && audience != models.AudienceAssociationTeachers {
			return apperrors.NewBadRequestError("campus announcements target campus_all or association_teachers_only")
		}
		if governance {
			return nil
		}
		if caller.SchoolID != req.SchoolID {
			return apperrors.ErrInsufficientPermissions
		}
		if authz.CanManageForSchool(caller, models.RoleCodeUniversityAdmin, req.SchoolID) {
			return nil
		}
		if authz.CanManageForSchool(caller, models.RoleCodeAssociationAdmin, req.SchoolID) {
			// Association admins only reach their own teachers.
			if audience != models.AudienceAssociationTeachers {
				return apperrors.ErrInsufficientPermissions
			}
			return nil
		}
		return apperrors.ErrInsufficientPermissions

	case models.ScopeAid:
		if req.OrganizationID == "" {
			return apperrors.ErrMissingScopeID
		}
		if audience != models.AudienceAidSchool {
			return apperrors.NewBadRequestError("aid announcements target the aid_school_only audience")
		}
		if governance || caller.HasGrant(models.RoleCodeAidSchoolAdmin) {
			return nil
		}
		return apperrors.ErrInsufficientPermissions
	}
	return apperrors.NewBadRequestError("unknown announcement scope")
}

// fanOut delivers notifications for campus-scoped announcements. Public
// and aid announcements rely on listings alone.
func (s *announcementService) fanOut(author *models.User, record *models.Announcement) {
	if record.Scope != models.ScopeCampus {
		return
	}

	filter := repositories.UserFilter{SchoolID: record.SchoolID}
	if record.Audience == models.AudienceAssociationTeachers {
		filter.Role = models.UserRoleVolunteerTeacher
	}
	recipients, _, err := s.users.List(filter)
	if err != nil {
		logger.WithError(err).Warn("announcement fan-out listing failed", "announcement_id", record.ID)
		return
	}

	ids := make([]string, 0, len(recipients))
	for i := range recipients {
		if recipients[i].ID == author.ID || !recipients[i].IsActive {
			continue
		}
		ids = append(ids, recipients[i].ID)
	}
	if len(ids) == 0 || len(ids) > fanoutLimit {
		return
	}

	publisherName := author.FullName
	if publisherName == "" {
		publisherName = author.Username
	}
	s.notifier.NotifyMany(ids, models.NotifyAnnouncement, map[string]interface{}{
		"announcement_id": record.ID,
		"title":           record.Title,
		"scope":           string(record.Scope),
		"publisher_id":    author.ID,
		"publisher_name":  publisherName,
	})
}

func (s *announcementService) List(callerID string, filter repositories.AnnouncementFilter) ([]*dto.AnnouncementResponse, error) {
	if filter.Scope == models.ScopeCampus {
		caller, err := s.users.FindByIDWithGrants(callerID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		if filter.SchoolID == "" {
			filter.SchoolID = caller.SchoolID
		}
		if !authz.CanAccessCampus(caller, filter.SchoolID) {
			return nil, apperrors.ErrInsufficientPermissions
		}
	}

	items, err := s.announcements.List(filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.AnnouncementResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewAnnouncementResponse(&items[i]))
	}
	return out, nil
}

func (s *announcementService) Update(callerID, id string, req *dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	record, err := s.findForModify(callerID, id)
	if err != nil {
		return nil, err
	}

	if req.Pinned != nil {
		record.Pinned = *req.Pinned
	}
	if err := s.announcements.Update(record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewAnnouncementResponse(record), nil
}

func (s *announcementService) Delete(callerID, id string) error {
	record, err := s.findForModify(callerID, id)
	if err != nil {
		return err
	}
	if err := s.announcements.Delete(record.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// findForModify loads the announcement and checks the modify permission:
// platform governance or the original publisher.
func (s *announcementService) findForModify(callerID, id string) (*models.Announcement, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	record, err := s.announcements.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !authz.IsSuperuser(caller) && !authz.IsHQ(caller) && record.CreatedBy != caller.ID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return record, nil
}
