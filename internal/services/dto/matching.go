package dto

import (
	"time"

	"cloudedumatch_backend/internal/models"
)

type CreateMatchRequest struct {
	Tags      []string `json:"tags" validate:"required,min=1"`
	Channel   string   `json:"channel" validate:"required,is-channel"`
	TimeMode  string   `json:"time_mode" validate:"required,is-time-mode"`
	TimeSlots []string `json:"time_slots"`
	Note      string   `json:"note"`
}

type MatchRequestResponse struct {
	ID        string                    `json:"id"`
	StudentID string                    `json:"student_id"`
	Tags      []string                  `json:"tags"`
	Channel   string                    `json:"channel"`
	TimeMode  string                    `json:"time_mode"`
	TimeSlots []string                  `json:"time_slots"`
	Note      string                    `json:"note"`
	Status    models.MatchRequestStatus `json:"status"`
	CreatedAt time.Time                 `json:"created_at"`
}

func NewMatchRequestResponse(req *models.MatchRequest) *MatchRequestResponse {
	return &MatchRequestResponse{
		ID:        req.ID,
		StudentID: req.StudentID,
		Tags:      models.ParseStringList(req.Tags),
		Channel:   req.Channel,
		TimeMode:  req.TimeMode,
		TimeSlots: models.ParseStringList(req.TimeSlots),
		Note:      req.Note,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
	}
}

// MatchCandidate is one ranked entry in the candidate listing.
type MatchCandidate struct {
	UserID            string   `json:"user_id"`
	Username          string   `json:"username"`
	FullName          string   `json:"full_name"`
	SchoolID          string   `json:"school_id"`
	SchoolDisplayName string   `json:"school_display_name"`
	Tags              []string `json:"tags"`
	TimeSlots         []string `json:"time_slots"`
	InPool            bool     `json:"in_pool"`
	Explain           string   `json:"explain"`
}

type CreateOfferRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
}

type MatchOfferResponse struct {
	ID        string             `json:"id"`
	RequestID string             `json:"request_id"`
	StudentID string             `json:"student_id"`
	TeacherID string             `json:"teacher_id"`
	Status    models.OfferStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func NewMatchOfferResponse(offer *models.MatchOffer) *MatchOfferResponse {
	return &MatchOfferResponse{
		ID:        offer.ID,
		RequestID: offer.RequestID,
		StudentID: offer.StudentID,
		TeacherID: offer.TeacherID,
		Status:    offer.Status,
		CreatedAt: offer.CreatedAt,
		UpdatedAt: offer.UpdatedAt,
	}
}

// OfferInboxItem joins a pending offer with its request and student.
type OfferInboxItem struct {
	MatchOfferResponse
	Request *MatchRequestResponse `json:"request"`
	Student *PeerInfo             `json:"student"`
}

type PeerInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

type AcceptOfferResponse struct {
	Status         models.OfferStatus `json:"status"`
	ConversationID string             `json:"conversation_id"`
}
