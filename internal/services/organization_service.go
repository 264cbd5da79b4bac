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

type OrganizationService interface {
	Create(callerID string, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error)
	Get(id string) (*dto.OrganizationResponse, error)
	// Resolve finds an organization by type plus its scope id.
	Resolve(orgType, schoolID, aidSchoolID string) (*dto.OrganizationResponse, error)
	List(orgType string) ([]*dto.OrganizationResponse, error)
	Update(callerID, id string, req *dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error)

	CreateTag(callerID string, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	ListTags(category string, enabledOnly bool) ([]*dto.TagResponse, error)
	UpdateTag(callerID, id string, req *dto.UpdateTagRequest) (*dto.TagResponse, error)
}

type organizationService struct {
	organizations repositories.OrganizationRepository
	users         repositories.UserRepository
}

func NewOrganizationService(organizations repositories.OrganizationRepository, users repositories.UserRepository) OrganizationService {
	return &organizationService{organizations: organizations, users: users}
}

func (s *organizationService) requireSuperuser(callerID string) (*models.User, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !authz.IsSuperuser(caller) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return caller, nil
}

func (s *organizationService) Create(callerID string, req *dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if _, err := s.requireSuperuser(callerID); err != nil {
		return nil, err
	}

	orgType := models.OrgType(req.Type)
	if err := s.checkUniqueness(orgType, req.SchoolID, req.AidSchoolID, req.DisplayName); err != nil {
		return nil, err
	}

	org := &models.Organization{
		Type:        orgType,
		DisplayName: req.DisplayName,
		SchoolID:    req.SchoolID,
		AidSchoolID: req.AidSchoolID,
		Certified:   req.Certified,
	}
	if err := s.organizations.Create(org); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("organization created", "org_id", org.ID, "type", org.Type)
	return dto.NewOrganizationResponse(org), nil
}

// checkUniqueness enforces one organization per scope id per type, and a
// unique display name per type.
func (s *organizationService) checkUniqueness(orgType models.OrgType, schoolID, aidSchoolID, displayName string) error {
	switch orgType {
	case models.OrgTypeUniversity, models.OrgTypeAssociation:
		if schoolID == "" {
			return apperrors.ErrMissingScopeID
		}
		if _, err := s.organizations.FindByTypeAndSchoolID(orgType, schoolID); err == nil {
			return apperrors.ErrOrganizationExists
		} else if !errors.Is(err, repositories.ErrOrganizationNotFound) {
			return apperrors.InternalError(err)
		}
	case models.OrgTypeAidSchool:
		if aidSchoolID == "" {
			return apperrors.ErrMissingScopeID
		}
		if _, err := s.organizations.FindByTypeAndAidSchoolID(orgType, aidSchoolID); err == nil {
			return apperrors.ErrOrganizationExists
		} else if !errors.Is(err, repositories.ErrOrganizationNotFound) {
			return apperrors.InternalError(err)
		}
	}

	if displayName != "" {
		if _, err := s.organizations.FindByTypeAndDisplayName(orgType, displayName); err == nil {
			return apperrors.ErrOrganizationExists
		} else if !errors.Is(err, repositories.ErrOrganizationNotFound) {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *organizationService) Get(id string) (*dto.OrganizationResponse, error) {
	org, err := s.organizations.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrganizationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewOrganizationResponse(org), nil
}

func (s *organizationService) Resolve(orgType, schoolID, aidSchoolID string) (*dto.OrganizationResponse, error) {
	t := models.OrgType(orgType)
	if !models.ValidOrgType(t) {
		return nil, apperrors.NewBadRequestError("unknown organization type")
	}

	var (
		org *models.Organization
		err error
	)
	switch t {
	case models.OrgTypeAidSchool:
		if aidSchoolID == "" {
			return nil, apperrors.ErrMissingScopeID
		}
		org, err = s.organizations.FindByTypeAndAidSchoolID(t, aidSchoolID)
	default:
		if schoolID == "" {
			return nil, apperrors.ErrMissingScopeID
		}
		org, err = s.organizations.FindByTypeAndSchoolID(t, schoolID)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrOrganizationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewOrganizationResponse(org), nil
}

func (s *organizationService) List(orgType string) ([]*dto.OrganizationResponse, error) {
	items, err := s.organizations.List(models.OrgType(orgType))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.OrganizationResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewOrganizationResponse(&items[i]))
	}
	return out, nil
}

func (s *organizationService) Update(callerID, id string, req *dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	if _, err := s.requireSuperuser(callerID); err != nil {
		return nil, err
	}

	org, err := s.organizations.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrganizationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.DisplayName != nil && *req.DisplayName != org.DisplayName {
		if _, err := s.organizations.FindByTypeAndDisplayName(org.Type, *req.DisplayName); err == nil {
			return nil, apperrors.ErrOrganizationExists
		} else if !errors.Is(err, repositories.ErrOrganizationNotFound) {
			return nil, apperrors.InternalError(err)
		}
		org.DisplayName = *req.DisplayName
	}
	if req.Certified != nil {
		org.Certified = *req.Certified
	}

	if err := s.organizations.Update(org); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewOrganizationResponse(org), nil
}

func (s *organizationService) CreateTag(callerID string, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	if _, err := s.requireSuperuser(callerID); err != nil {
		return nil, err
	}
	tag := &models.Tag{
		Name:     req.Name,
		Category: req.Category,
		Enabled:  true,
	}
	if err := s.organizations.CreateTag(tag); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTagResponse(tag), nil
}

func (s *organizationService) ListTags(category string, enabledOnly bool) ([]*dto.TagResponse, error) {
	items, err := s.organizations.ListTags(category, enabledOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.TagResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewTagResponse(&items[i]))
	}
	return out, nil
}

func (s *organizationService) UpdateTag(callerID, id string, req *dto.UpdateTagRequest) (*dto.TagResponse, error) {
	if _, err := s.requireSuperuser(callerID); err != nil {
		return nil, err
	}
	tag, err := s.organizations.FindTagByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTagNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if req.Name != nil {
		tag.Name = *req.Name
	}
	if req.Enabled != nil {
		tag.Enabled = *req.Enabled
	}
	if err := s.organizations.UpdateTag(tag); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTagResponse(tag), nil
}
