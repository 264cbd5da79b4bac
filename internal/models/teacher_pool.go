package models

import (
	"gorm.io/datatypes"
)

// TeacherPoolEntry is the derived record per verified volunteer teacher
// per school. Entries go stale when the underlying user's role, school
// or verification changes; stale entries are reaped lazily on reads.
type TeacherPoolEntry struct {
	BaseModel
	UserID   string `gorm:"index;not null" json:"user_id"`
	SchoolID string `gorm:"index;not null" json:"school_id"`

	Tags      datatypes.JSON `json:"tags"`
	TimeSlots datatypes.JSON `json:"time_slots"`

	InPool bool `gorm:"default:true" json:"in_pool"`
}
