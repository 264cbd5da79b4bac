package models

import (
	"time"
)

type Conversation struct {
	BaseModel
	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
}

type ConversationParticipant struct {
	BaseModel
	ConversationID string     `gorm:"index;not null" json:"conversation_id"`
	UserID         string     `gorm:"index;not null" json:"user_id"`
	LastReadAt     *time.Time `json:"last_read_at"`
}

type Message struct {
	BaseModel
	ConversationID string `gorm:"index;not null" json:"conversation_id"`
	SenderID       string `gorm:"index;not null" json:"sender_id"`
	Content        string `gorm:"type:text" json:"content"`
}
