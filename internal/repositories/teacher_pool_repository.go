package repositories

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var ErrPoolEntryNotFound = errors.New("teacher pool entry not found")

type TeacherPoolRepository interface {
	FindByID(id string) (*models.TeacherPoolEntry, error)
	FindByUserAndSchool(userID, schoolID string) (*models.TeacherPoolEntry, error)
	Create(entry *models.TeacherPoolEntry) error
	Update(entry *models.TeacherPoolEntry) error
	Delete(id string) error
	DeleteByUser(userID string) error
	// ListInPool returns entries in creation order, which the matcher
	// relies on for deterministic tiebreaks.
	ListInPool() ([]models.TeacherPoolEntry, error)
	ListBySchool(schoolID string) ([]models.TeacherPoolEntry, error)
	ListAll() ([]models.TeacherPoolEntry, error)
}

type TeacherPoolRepositoryImpl struct {
	db *gorm.DB
}

func NewTeacherPoolRepository(db *gorm.DB) TeacherPoolRepository {
	return &TeacherPoolRepositoryImpl{db: db}
}

func (r *TeacherPoolRepositoryImpl) FindByID(id string) (*models.TeacherPoolEntry, error) {
	var entry models.TeacherPoolEntry
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPoolEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *TeacherPoolRepositoryImpl) FindByUserAndSchool(userID, schoolID string) (*models.TeacherPoolEntry, error) {
	var entry models.TeacherPoolEntry
	err := r.db.Where("user_id = ? AND school_id = ?", userID, schoolID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPoolEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *TeacherPoolRepositoryImpl) Create(entry *models.TeacherPoolEntry) error {
	return r.db.Create(entry).Error
}

func (r *TeacherPoolRepositoryImpl) Update(entry *models.TeacherPoolEntry) error {
	return r.db.Save(entry).Error
}

func (r *TeacherPoolRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.TeacherPoolEntry{}, "id = ?", id).Error
}

func (r *TeacherPoolRepositoryImpl) DeleteByUser(userID string) error {
	return r.db.Delete(&models.TeacherPoolEntry{}, "user_id = ?", userID).Error
}

func (r *TeacherPoolRepositoryImpl) ListInPool() ([]models.TeacherPoolEntry, error) {
	var entries []models.TeacherPoolEntry
	err := r.db.Where("in_pool = ?", true).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *TeacherPoolRepositoryImpl) ListBySchool(schoolID string) ([]models.TeacherPoolEntry, error) {
	var entries []models.TeacherPoolEntry
	err := r.db.Where("school_id = ?", schoolID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *TeacherPoolRepositoryImpl) ListAll() ([]models.TeacherPoolEntry, error) {
	var entries []models.TeacherPoolEntry
	err := r.db.Order("created_at ASC").Find(&entries).Error
	return entries, err
}
