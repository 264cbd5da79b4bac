package models

// AssociationTask is posted by a university association; volunteers who
// complete it are granted volunteer hours.
type AssociationTask struct {
	BaseModel
	SchoolID    string `gorm:"index;not null" json:"school_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Status TaskStatus `gorm:"type:varchar(16);default:'open';index" json:"status"`

	RewardHours     float64 `gorm:"default:0" json:"reward_hours"`
	MaxParticipants int     `json:"max_participants"`

	CreatedBy string `gorm:"index" json:"created_by"`
}

// AssociationRuleSet holds per-school operational rules, one row per school.
type AssociationRuleSet struct {
	BaseModel
	SchoolID     string  `gorm:"uniqueIndex;not null" json:"school_id"`
	ExchangeRate float64 `json:"exchange_rate"`
	Version      string  `json:"version"`
}

// VolunteerHourGrant is an audit row for granted volunteer hours.
// SourceType is task, manual or rollback.
type VolunteerHourGrant struct {
	BaseModel
	SchoolID string  `gorm:"index;not null" json:"school_id"`
	UserID   string  `gorm:"index;not null" json:"user_id"`
	Amount   float64 `json:"amount"`
	Reason   string  `json:"reason"`

	SourceType string `gorm:"type:varchar(16)" json:"source_type"`
	SourceID   string `json:"source_id"`

	GrantedBy string `gorm:"index" json:"granted_by"`
}
