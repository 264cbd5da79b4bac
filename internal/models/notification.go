package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"index;not null" json:"user_id"`
	Type    string         `gorm:"type:varchar(40);index" json:"type"`
	Payload datatypes.JSON `json:"payload"`
	ReadAt  *time.Time     `json:"read_at"`
}

// Well-known notification types.
const (
	NotifyVerificationApproved = "verification_approved"
	NotifyVerificationRejected = "verification_rejected"
	NotifyVerificationRevoked  = "verification_revoked"
	NotifyMatchOffer           = "match_offer"
	NotifyMatchAccepted        = "match_accepted"
	NotifyAnswerAccepted       = "answer_accepted"
	NotifyAnnouncement         = "announcement"
	NotifyNewMessage           = "new_message"
	NotifyHoursGranted         = "hours_granted"
)
