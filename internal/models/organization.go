package models

type Organization struct {
	BaseModel
	Type        OrgType `gorm:"type:varchar(32);index" json:"type"`
	DisplayName string  `gorm:"not null" json:"display_name"`

	// SchoolID is shared between a university and its association.
	// AidSchoolID is unique per aid school.
	SchoolID    string `gorm:"index" json:"school_id"`
	AidSchoolID string `gorm:"index" json:"aid_school_id"`

	Certified bool `gorm:"default:false" json:"certified"`
}

// Tag is the global dictionary entry used for content classification
// and matching. Category is one of subject, grade, role, skill.
type Tag struct {
	BaseModel
	Name     string `gorm:"index;not null" json:"name"`
	Category string `gorm:"type:varchar(20);index" json:"category"`
	Enabled  bool   `gorm:"default:true" json:"enabled"`
}

type Announcement struct {
	BaseModel
	Title   string `gorm:"not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`

	Scope    AnnouncementScope `gorm:"type:varchar(16);index" json:"scope"`
	Audience Audience          `gorm:"type:varchar(32)" json:"audience"`

	SchoolID       string `gorm:"index" json:"school_id"`
	OrganizationID string `gorm:"index" json:"organization_id"`

	Pinned    bool   `gorm:"default:false" json:"pinned"`
	CreatedBy string `gorm:"index" json:"created_by"`
	Version   string `json:"version"`
}
