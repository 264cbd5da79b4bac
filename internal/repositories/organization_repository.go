package repositories

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrTagNotFound          = errors.New("tag not found")
)

type OrganizationRepository interface {
	FindByID(id string) (*models.Organization, error)
	FindByTypeAndSchoolID(orgType models.OrgType, schoolID string) (*models.Organization, error)
	FindByTypeAndAidSchoolID(orgType models.OrgType, aidSchoolID string) (*models.Organization, error)
	FindByTypeAndDisplayName(orgType models.OrgType, displayName string) (*models.Organization, error)
	FindUniversitiesBySchoolIDs(schoolIDs []string) ([]models.Organization, error)
	Create(org *models.Organization) error
	Update(org *models.Organization) error
	Delete(id string) error
	List(orgType models.OrgType) ([]models.Organization, error)

	// Tag dictionary
	CreateTag(tag *models.Tag) error
	FindTagByID(id string) (*models.Tag, error)
	ListTags(category string, enabledOnly bool) ([]models.Tag, error)
	UpdateTag(tag *models.Tag) error
}

type OrganizationRepositoryImpl struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &OrganizationRepositoryImpl{db: db}
}

func (r *OrganizationRepositoryImpl) FindByID(id string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepositoryImpl) FindByTypeAndSchoolID(orgType models.OrgType, schoolID string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.Where("type = ? AND school_id = ?", orgType, schoolID).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepositoryImpl) FindByTypeAndAidSchoolID(orgType models.OrgType, aidSchoolID string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.Where("type = ? AND aid_school_id = ?", orgType, aidSchoolID).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepositoryImpl) FindByTypeAndDisplayName(orgType models.OrgType, displayName string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.Where("type = ? AND display_name = ?", orgType, displayName).First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *OrganizationRepositoryImpl) FindUniversitiesBySchoolIDs(schoolIDs []string) ([]models.Organization, error) {
	var orgs []models.Organization
	if len(schoolIDs) == 0 {
		return orgs, nil
	}
	err := r.db.
		Where("type = ? AND school_id IN ?", models.OrgTypeUniversity, schoolIDs).
		Find(&orgs).Error
	return orgs, err
}

func (r *OrganizationRepositoryImpl) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

func (r *OrganizationRepositoryImpl) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

func (r *OrganizationRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Organization{}, "id = ?", id).Error
}

func (r *OrganizationRepositoryImpl) List(orgType models.OrgType) ([]models.Organization, error) {
	var orgs []models.Organization
	query := r.db.Order("created_at ASC")
	if orgType != "" {
		query = query.Where("type = ?", orgType)
	}
	err := query.Find(&orgs).Error
	return orgs, err
}

func (r *OrganizationRepositoryImpl) CreateTag(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *OrganizationRepositoryImpl) FindTagByID(id string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *OrganizationRepositoryImpl) ListTags(category string, enabledOnly bool) ([]models.Tag, error) {
	var tags []models.Tag
	query := r.db.Order("name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	err := query.Find(&tags).Error
	return tags, err
}

func (r *OrganizationRepositoryImpl) UpdateTag(tag *models.Tag) error {
	return r.db.Save(tag).Error
}
