package repositories

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var ErrFileNotFound = errors.New("file not found")

type FileRepository interface {
	Create(f *models.FileAsset) error
	FindByID(id string) (*models.FileAsset, error)
	ListByUploader(uploaderID string) ([]models.FileAsset, error)
	Delete(id string) error
}

type FileRepositoryImpl struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) FileRepository {
	return &FileRepositoryImpl{db: db}
}

func (r *FileRepositoryImpl) Create(f *models.FileAsset) error {
	return r.db.Create(f).Error
}

func (r *FileRepositoryImpl) FindByID(id string) (*models.FileAsset, error) {
	var f models.FileAsset
	if err := r.db.First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FileRepositoryImpl) ListByUploader(uploaderID string) ([]models.FileAsset, error) {
	var files []models.FileAsset
	err := r.db.Where("uploader_id = ?", uploaderID).Order("created_at DESC").Find(&files).Error
	return files, err
}

func (r *FileRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.FileAsset{}, "id = ?", id).Error
}
