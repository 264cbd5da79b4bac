package dto

import (
	"time"

	"cloudedumatch_backend/internal/models"
)

type FileAssetResponse struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewFileAssetResponse(f *models.FileAsset, url string) *FileAssetResponse {
	return &FileAssetResponse{
		ID:           f.ID,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		URL:          url,
		CreatedAt:    f.CreatedAt,
	}
}
