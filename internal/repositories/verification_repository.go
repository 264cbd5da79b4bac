package repositories

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var (
	ErrVerificationNotFound = errors.New("verification request not found")
	ErrOnboardingNotFound   = errors.New("onboarding request not found")
)

type VerificationFilter struct {
	Type           models.VerificationType
	Status         models.RequestStatus
	TargetSchoolID string
	ApplicantID    string
}

type VerificationRepository interface {
	Create(req *models.VerificationRequest) error
	FindByID(id string) (*models.VerificationRequest, error)
	Update(req *models.VerificationRequest) error
	List(filter VerificationFilter) ([]models.VerificationRequest, error)

	// Onboarding requests share the review lifecycle but a separate table.
	CreateOnboarding(req *models.OnboardingRequest) error
	FindOnboardingByID(id string) (*models.OnboardingRequest, error)
	UpdateOnboarding(req *models.OnboardingRequest) error
	ListOnboarding(status models.RequestStatus) ([]models.OnboardingRequest, error)
}

type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) Create(req *models.VerificationRequest) error {
	return r.db.Create(req).Error
}

func (r *VerificationRepositoryImpl) FindByID(id string) (*models.VerificationRequest, error) {
	var req models.VerificationRequest
	if err := r.db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *VerificationRepositoryImpl) Update(req *models.VerificationRequest) error {
	return r.db.Save(req).Error
}

func (r *VerificationRepositoryImpl) List(filter VerificationFilter) ([]models.VerificationRequest, error) {
	query := r.db.Model(&models.VerificationRequest{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TargetSchoolID != "" {
		query = query.Where("target_school_id = ?", filter.TargetSchoolID)
	}
	if filter.ApplicantID != "" {
		query = query.Where("applicant_id = ?", filter.ApplicantID)
	}

	var reqs []models.VerificationRequest
	err := query.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *VerificationRepositoryImpl) CreateOnboarding(req *models.OnboardingRequest) error {
	return r.db.Create(req).Error
}

func (r *VerificationRepositoryImpl) FindOnboardingByID(id string) (*models.OnboardingRequest, error) {
	var req models.OnboardingRequest
	if err := r.db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOnboardingNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *VerificationRepositoryImpl) UpdateOnboarding(req *models.OnboardingRequest) error {
	return r.db.Save(req).Error
}

func (r *VerificationRepositoryImpl) ListOnboarding(status models.RequestStatus) ([]models.OnboardingRequest, error) {
	query := r.db.Model(&models.OnboardingRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var reqs []models.OnboardingRequest
	err := query.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}
