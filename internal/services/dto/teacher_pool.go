package dto

import (
	"time"

	"cloudedumatch_backend/internal/models"
)

type SetInPoolRequest struct {
	InPool *bool `json:"in_pool" validate:"required"`
}

// PoolTeacher joins a pool entry with the owning teacher's identity.
type PoolTeacher struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	SchoolID  string    `json:"school_id"`
	Tags      []string  `json:"tags"`
	TimeSlots []string  `json:"time_slots"`
	InPool    bool      `json:"in_pool"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPoolTeacher(entry *models.TeacherPoolEntry, user *models.User) *PoolTeacher {
	return &PoolTeacher{
		UserID:    user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		SchoolID:  entry.SchoolID,
		Tags:      models.ParseStringList(entry.Tags),
		TimeSlots: models.ParseStringList(entry.TimeSlots),
		InPool:    entry.InPool,
		UpdatedAt: entry.UpdatedAt,
	}
}
