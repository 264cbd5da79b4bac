package repositories

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

type AnnouncementFilter struct {
	Scope          models.AnnouncementScope
	SchoolID       string
	OrganizationID string
}

type AnnouncementRepository interface {
	Create(a *models.Announcement) error
	FindByID(id string) (*models.Announcement, error)
	Update(a *models.Announcement) error
	Delete(id string) error
	List(filter AnnouncementFilter) ([]models.Announcement, error)
}

type AnnouncementRepositoryImpl struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &AnnouncementRepositoryImpl{db: db}
}

func (r *AnnouncementRepositoryImpl) Create(a *models.Announcement) error {
	return r.db.Create(a).Error
}

func (r *AnnouncementRepositoryImpl) FindByID(id string) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementRepositoryImpl) Update(a *models.Announcement) error {
	return r.db.Save(a).Error
}

func (r *AnnouncementRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.Announcement{}, "id = ?", id).Error
}

func (r *AnnouncementRepositoryImpl) List(filter AnnouncementFilter) ([]models.Announcement, error) {
	query := r.db.Model(&models.Announcement{})

	if filter.Scope != "" {
		query = query.Where("scope = ?", filter.Scope)
	}
	if filter.SchoolID != "" {
		query = query.Where("school_id = ?", filter.SchoolID)
	}
	if filter.OrganizationID != "" {
		query = query.Where("organization_id = ?", filter.OrganizationID)
	}

	var items []models.Announcement
	err := query.Order("pinned DESC, created_at DESC").Find(&items).Error
	return items, err
}
