package models

type FileAsset struct {
	BaseModel
	UploaderID   string `gorm:"index;not null" json:"uploader_id"`
	OriginalName string `json:"original_name"`
	StoragePath  string `gorm:"not null" json:"-"`
	MimeType     string `json:"mime_type"`
	Size         int64  `gorm:"default:0" json:"size"`
}
