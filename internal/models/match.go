package models

import (
	"gorm.io/datatypes"
)

// MatchRequest is a student's help request. The matcher scores pool
// entries against its tags.
type MatchRequest struct {
	BaseModel
	StudentID string `gorm:"index;not null" json:"student_id"`

	Tags datatypes.JSON `json:"tags"`

	// Channel: text, voice, video. TimeMode: now or schedule.
	Channel   string         `gorm:"type:varchar(16)" json:"channel"`
	TimeMode  string         `gorm:"type:varchar(16)" json:"time_mode"`
	TimeSlots datatypes.JSON `json:"time_slots"`
	Note      string         `gorm:"type:text" json:"note"`

	Status MatchRequestStatus `gorm:"type:varchar(16);default:'pending';index" json:"status"`
}

// MatchOffer is extended to one candidate teacher. At most one offer per
// request ends up accepted; accepting one declines the other pending ones.
type MatchOffer struct {
	BaseModel
	RequestID string `gorm:"index;not null" json:"request_id"`
	StudentID string `gorm:"index;not null" json:"student_id"`
	TeacherID string `gorm:"index;not null" json:"teacher_id"`

	Status OfferStatus `gorm:"type:varchar(16);default:'pending';index" json:"status"`
}

// PointTxn is one row of the append-only points ledger. Balances are
// aggregates over the ledger, never stored.
type PointTxn struct {
	BaseModel
	UserID string       `gorm:"index;not null" json:"user_id"`
	Type   PointTxnType `gorm:"type:varchar(20);index" json:"type"`
	Title  string       `json:"title"`

	// Positive for income, negative for spend.
	Points int            `json:"points"`
	Meta   datatypes.JSON `json:"meta"`
}
