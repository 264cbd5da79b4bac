package services

import (
	"encoding/json"
	"errors"

	"cloudedumatch_backend/internal/auth"
	"cloudedumatch_backend/internal/logger"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
	Me(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type authService struct {
	users         repositories.UserRepository
	verifications repositories.VerificationRepository
}

func NewAuthService(users repositories.UserRepository, verifications repositories.VerificationRepository) AuthService {
	return &authService{users: users, verifications: verifications}
}

func (s *authService) Register(req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	if _, err := s.users.FindByUsername(req.Username); err == nil {
		return nil, apperrors.ErrAlreadyExists(repositories.ErrUserAlreadyExists)
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:         req.Username,
		Email:            req.Email,
		PasswordHash:     hash,
		FullName:         req.FullName,
		Role:             models.UserRoleGuest,
		IsActive:         true,
		OnboardingStatus: models.RequestStatusApproved,
		Profile:          models.ResetProfileVerification(nil),
	}

	// Organization applicants start in a pending state until HQ reviews
	// their onboarding request.
	orgApplicant := req.OrgType != ""
	if orgApplicant {
		if !models.ValidOrgType(models.OrgType(req.OrgType)) {
			return nil, apperrors.NewBadRequestError("unknown organization type")
		}
		user.OnboardingStatus = models.RequestStatusPending
	}

	if err := s.users.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if orgApplicant {
		contactName := req.FullName
		if contactName == "" {
			contactName = req.Username
		}
		onboarding := &models.OnboardingRequest{
			OrgType:         models.OrgType(req.OrgType),
			SchoolName:      req.SchoolName,
			AssociationName: req.AssociationName,
			ContactName:     contactName,
			ContactEmail:    req.Email,
			ContactPhone:    req.ContactPhone,
			UserID:          user.ID,
			Status:          models.RequestStatusPending,
		}
		if err := s.verifications.CreateOnboarding(onboarding); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user registered", "user_id", user.ID, "username", user.Username, "org_applicant", orgApplicant)
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.FindByLogin(req.Login)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	s.hydrateSchoolID(user)

	token, err := auth.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user logged in", "user_id", user.ID)
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *authService) Me(userID string) (*dto.UserResponse, error) {
	user, err := s.users.FindByIDWithGrants(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	s.hydrateSchoolID(user)
	return dto.NewUserResponse(user), nil
}

func (s *authService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByIDWithGrants(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Bio != nil || req.AvatarURL != nil {
		var obj map[string]interface{}
		if len(user.Profile) > 0 {
			if err := json.Unmarshal(user.Profile, &obj); err != nil {
				obj = nil
			}
		}
		if obj == nil {
			obj = map[string]interface{}{}
		}
		if req.Bio != nil {
			obj["bio"] = *req.Bio
		}
		if req.AvatarURL != nil {
			obj["avatarUrl"] = *req.AvatarURL
		}
		if out, err := json.Marshal(obj); err == nil {
			user.Profile = out
		}
	}

	if err := s.users.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// hydrateSchoolID backfills a governance user's school_id from their
// first university or association grant, so scoped checks work for
// accounts created before the grant carried a school.
func (s *authService) hydrateSchoolID(user *models.User) {
	if user.SchoolID != "" {
		return
	}
	for _, g := range user.AdminRoles {
		if g.Organization == nil || g.Organization.SchoolID == "" {
			continue
		}
		if g.RoleCode != models.RoleCodeUniversityAdmin && g.RoleCode != models.RoleCodeAssociationAdmin {
			continue
		}
		user.SchoolID = g.Organization.SchoolID
		if err := s.users.UpdateFields(user.ID, map[string]interface{}{"school_id": user.SchoolID}); err != nil {
			logger.WithError(err).Warn("school_id backfill failed", "user_id", user.ID)
		}
		return
	}
}
