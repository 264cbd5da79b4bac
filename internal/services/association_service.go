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

// AssociationService covers the volunteer association's own operations:
// task postings, the per-school rule set and volunteer hour grants.
type AssociationService interface {
	CreateTask(callerID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateTask(callerID, taskID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	ListTasks(callerID, schoolID, status string) ([]*dto.TaskResponse, error)

	GetRules(callerID, schoolID string) (*dto.RuleSetResponse, error)
	SaveRules(callerID string, req *dto.SaveRuleSetRequest) (*dto.RuleSetResponse, error)

	GrantHours(callerID string, req *dto.GrantHoursRequest) (*dto.HourGrantResponse, error)
	ListHourGrants(callerID, schoolID, userID string) ([]*dto.HourGrantResponse, error)
	MyHours(userID string) (*dto.HoursSummaryResponse, error)
}

type associationService struct {
	associations repositories.AssociationRepository
	users        repositories.UserRepository
	notifier     NotificationService
}

func NewAssociationService(
	associations repositories.AssociationRepository,
	users repositories.UserRepository,
	notifier NotificationService,
) AssociationService {
	return &associationService{
		associations: associations,
		users:        users,
		notifier:     notifier,
	}
}

// loadAssociationAdmin resolves the caller and the school they manage.
func (s *associationService) loadAssociationAdmin(callerID string) (*models.User, string, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", apperrors.ErrNotFound(err)
		}
		return nil, "", apperrors.InternalError(err)
	}
	if caller.SchoolID == "" {
		return nil, "", apperrors.ErrMissingScopeID
	}
	allowed := authz.IsSuperuser(caller) ||
		authz.IsHQ(caller) ||
		authz.CanManageForSchool(caller, models.RoleCodeAssociationAdmin, caller.SchoolID)
	if !allowed {
		return nil, "", apperrors.ErrInsufficientPermissions
	}
	return caller, caller.SchoolID, nil
}

func (s *associationService) CreateTask(callerID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	caller, schoolID, err := s.loadAssociationAdmin(callerID)
	if err != nil {
		return nil, err
	}

	task := &models.AssociationTask{
		SchoolID:        schoolID,
		Title:           req.Title,
		Description:     req.Description,
		Status:          models.TaskStatusOpen,
		RewardHours:     req.RewardHours,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       caller.ID,
	}
	if err := s.associations.CreateTask(task); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTaskResponse(task), nil
}

func (s *associationService) UpdateTask(callerID, taskID string, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	_, schoolID, err := s.loadAssociationAdmin(callerID)
	if err != nil {
		return nil, err
	}

	task, err := s.associations.FindTaskByID(taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrTaskNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if task.SchoolID != schoolID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if task.Status == models.TaskStatusClosed {
		return nil, apperrors.ErrInvalidStatus("association", "Task is closed")
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.RewardHours != nil {
		task.RewardHours = *req.RewardHours
	}
	if err := s.associations.UpdateTask(task); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTaskResponse(task), nil
}

func (s *associationService) ListTasks(callerID, schoolID, status string) ([]*dto.TaskResponse, error) {
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
	if !authz.CanAccessCampus(caller, target) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	tasks, err := s.associations.ListTasks(target, models.TaskStatus(status))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, dto.NewTaskResponse(&tasks[i]))
	}
	return out, nil
}

func (s *associationService) GetRules(callerID, schoolID string) (*dto.RuleSetResponse, error) {
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

	rules, err := s.associations.FindRuleSet(target)
	if err != nil {
		if errors.Is(err, repositories.ErrRuleSetNotFound) {
			// Unset rules read as the 1:1 default.
			return &dto.RuleSetResponse{SchoolID: target, ExchangeRate: 1}, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return &dto.RuleSetResponse{
		SchoolID:     rules.SchoolID,
		ExchangeRate: rules.ExchangeRate,
		Version:      rules.Version,
	}, nil
}

func (s *associationService) SaveRules(callerID string, req *dto.SaveRuleSetRequest) (*dto.RuleSetResponse, error) {
	_, schoolID, err := s.loadAssociationAdmin(callerID)
	if err != nil {
		return nil, err
	}

	rules, err := s.associations.FindRuleSet(schoolID)
	if err != nil {
		if !errors.Is(err, repositories.ErrRuleSetNotFound) {
			return nil, apperrors.InternalError(err)
		}
		rules = &models.AssociationRuleSet{SchoolID: schoolID}
	}
	rules.ExchangeRate = req.ExchangeRate
	rules.Version = req.Version
	if err := s.associations.SaveRuleSet(rules); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.RuleSetResponse{
		SchoolID:     rules.SchoolID,
		ExchangeRate: rules.ExchangeRate,
		Version:      rules.Version,
	}, nil
}

func (s *associationService) GrantHours(callerID string, req *dto.GrantHoursRequest) (*dto.HourGrantResponse, error) {
	caller, schoolID, err := s.loadAssociationAdmin(callerID)
	if err != nil {
		return nil, err
	}

	recipient, err := s.users.FindByID(req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if recipient.SchoolID != schoolID {
		return nil, apperrors.ErrInvalidOperation("association", "Recipient does not belong to this school")
	}

	sourceType := req.SourceType
	if sourceType == "" {
		sourceType = "manual"
	}
	grant := &models.VolunteerHourGrant{
		SchoolID:   schoolID,
		UserID:     recipient.ID,
		Amount:     req.Amount,
		Reason:     req.Reason,
		SourceType: sourceType,
		SourceID:   req.SourceID,
		GrantedBy:  caller.ID,
	}
	if err := s.associations.CreateHourGrant(grant); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifier.Notify(recipient.ID, models.NotifyHoursGranted, map[string]interface{}{
		"grant_id": grant.ID,
		"amount":   grant.Amount,
		"reason":   grant.Reason,
	})

	logger.Info("volunteer hours granted",
		"grant_id", grant.ID, "user_id", recipient.ID, "amount", grant.Amount)
	return dto.NewHourGrantResponse(grant), nil
}

func (s *associationService) ListHourGrants(callerID, schoolID, userID string) ([]*dto.HourGrantResponse, error) {
	_, managedSchool, err := s.loadAssociationAdmin(callerID)
	if err != nil {
		return nil, err
	}
	target := schoolID
	if target == "" {
		target = managedSchool
	}

	grants, err := s.associations.ListHourGrants(target, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.HourGrantResponse, 0, len(grants))
	for i := range grants {
		out = append(out, dto.NewHourGrantResponse(&grants[i]))
	}
	return out, nil
}

func (s *associationService) MyHours(userID string) (*dto.HoursSummaryResponse, error) {
	total, err := s.associations.SumHoursByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.HoursSummaryResponse{UserID: userID, Total: total}, nil
}
