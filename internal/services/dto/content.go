package dto

import (
	"time"

	"cloudedumatch_backend/internal/models"
)

// Community feed.

type CreateCommunityPostRequest struct {
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

type CommunityPostResponse struct {
	ID            string    `json:"id"`
	AuthorID      string    `json:"author_id"`
	Content       string    `json:"content"`
	Tags          []string  `json:"tags"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	SharesCount   int       `json:"shares_count"`
	Hidden        bool      `json:"hidden"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewCommunityPostResponse(p *models.CommunityPost) *CommunityPostResponse {
	return &CommunityPostResponse{
		ID:            p.ID,
		AuthorID:      p.AuthorID,
		Content:       p.Content,
		Tags:          models.ParseStringList(p.Tags),
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		SharesCount:   p.SharesCount,
		Hidden:        p.Hidden,
		CreatedAt:     p.CreatedAt,
	}
}

type SetPostVisibilityRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	Content    string    `json:"content"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Campus board.

type CreateCampusTopicRequest struct {
	Name string `json:"name" validate:"required"`
}

type CampusTopicResponse struct {
	ID       string `json:"id"`
	SchoolID string `json:"school_id"`
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
}

func NewCampusTopicResponse(t *models.CampusTopic) *CampusTopicResponse {
	return &CampusTopicResponse{
		ID:       t.ID,
		SchoolID: t.SchoolID,
		Name:     t.Name,
		Enabled:  t.Enabled,
	}
}

type SetTopicEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type CreateCampusPostRequest struct {
	Content  string   `json:"content" validate:"required"`
	TopicIDs []string `json:"topic_ids"`
}

type ModerateCampusPostRequest struct {
	Pinned     *bool   `json:"pinned"`
	Visibility *string `json:"visibility" validate:"omitempty,oneof=visible hidden"`
}

type CampusPostResponse struct {
	ID            string            `json:"id"`
	SchoolID      string            `json:"school_id"`
	AuthorID      string            `json:"author_id"`
	Content       string            `json:"content"`
	TopicIDs      []string          `json:"topic_ids"`
	Pinned        bool              `json:"pinned"`
	Visibility    models.Visibility `json:"visibility"`
	LikesCount    int               `json:"likes_count"`
	CommentsCount int               `json:"comments_count"`
	CreatedAt     time.Time         `json:"created_at"`
}

func NewCampusPostResponse(p *models.CampusPost) *CampusPostResponse {
	return &CampusPostResponse{
		ID:            p.ID,
		SchoolID:      p.SchoolID,
		AuthorID:      p.AuthorID,
		Content:       p.Content,
		TopicIDs:      models.ParseStringList(p.TopicIDs),
		Pinned:        p.Pinned,
		Visibility:    p.Visibility,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		CreatedAt:     p.CreatedAt,
	}
}

// Q&A.

type CreateQuestionRequest struct {
	Subject      string   `json:"subject"`
	Title        string   `json:"title" validate:"required"`
	Content      string   `json:"content" validate:"required"`
	Tags         []string `json:"tags"`
	RewardPoints int      `json:"reward_points" validate:"gte=0"`
}

type QuestionResponse struct {
	ID               string    `json:"id"`
	AuthorID         string    `json:"author_id"`
	Subject          string    `json:"subject"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	Tags             []string  `json:"tags"`
	RewardPoints     int       `json:"reward_points"`
	Views            int       `json:"views"`
	AnswersCount     int       `json:"answers_count"`
	Solved           bool      `json:"solved"`
	AcceptedAnswerID string    `json:"accepted_answer_id"`
	Hidden           bool      `json:"hidden"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewQuestionResponse(q *models.QaQuestion) *QuestionResponse {
	return &QuestionResponse{
		ID:               q.ID,
		AuthorID:         q.AuthorID,
		Subject:          q.Subject,
		Title:            q.Title,
		Content:          q.Content,
		Tags:             models.ParseStringList(q.Tags),
		RewardPoints:     q.RewardPoints,
		Views:            q.Views,
		AnswersCount:     q.AnswersCount,
		Solved:           q.Solved,
		AcceptedAnswerID: q.AcceptedAnswerID,
		Hidden:           q.Hidden,
		CreatedAt:        q.CreatedAt,
	}
}

type CreateAnswerRequest struct {
	Content string `json:"content" validate:"required"`
}

type AnswerResponse struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	AuthorID   string    `json:"author_id"`
	Content    string    `json:"content"`
	Accepted   bool      `json:"accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewAnswerResponse(a *models.QaAnswer, accepted bool) *AnswerResponse {
	return &AnswerResponse{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		AuthorID:   a.AuthorID,
		Content:    a.Content,
		Accepted:   accepted,
		CreatedAt:  a.CreatedAt,
	}
}
