package models

import (
	"gorm.io/datatypes"
)

type CommunityPost struct {
	BaseModel
	AuthorID string         `gorm:"index;not null" json:"author_id"`
	Content  string         `gorm:"type:text" json:"content"`
	Tags     datatypes.JSON `json:"tags"`

	LikesCount    int `gorm:"default:0" json:"likes_count"`
	CommentsCount int `gorm:"default:0" json:"comments_count"`
	SharesCount   int `gorm:"default:0" json:"shares_count"`

	Hidden bool `gorm:"default:false" json:"hidden"`
}

type CommunityComment struct {
	BaseModel
	PostID   string `gorm:"index;not null" json:"post_id"`
	AuthorID string `gorm:"index;not null" json:"author_id"`
	Content  string `gorm:"type:text" json:"content"`

	LikesCount int `gorm:"default:0" json:"likes_count"`
}

// CampusTopic is a per-school topic category maintained by the
// university admin.
type CampusTopic struct {
	BaseModel
	SchoolID string `gorm:"index;not null" json:"school_id"`
	Name     string `gorm:"not null" json:"name"`
	Enabled  bool   `gorm:"default:true" json:"enabled"`
}

type CampusPost struct {
	BaseModel
	SchoolID string         `gorm:"index;not null" json:"school_id"`
	AuthorID string         `gorm:"index;not null" json:"author_id"`
	Content  string         `gorm:"type:text" json:"content"`
	TopicIDs datatypes.JSON `json:"topic_ids"`

	Pinned     bool       `gorm:"default:false" json:"pinned"`
	Visibility Visibility `gorm:"type:varchar(16);default:'visible'" json:"visibility"`

	LikesCount    int `gorm:"default:0" json:"likes_count"`
	CommentsCount int `gorm:"default:0" json:"comments_count"`
}

type CampusPostComment struct {
	BaseModel
	PostID   string `gorm:"index;not null" json:"post_id"`
	SchoolID string `gorm:"index;not null" json:"school_id"`
	AuthorID string `gorm:"index;not null" json:"author_id"`
	Content  string `gorm:"type:text" json:"content"`

	LikesCount int `gorm:"default:0" json:"likes_count"`
}

type QaQuestion struct {
	BaseModel
	AuthorID string         `gorm:"index;not null" json:"author_id"`
	Subject  string         `json:"subject"`
	Title    string         `gorm:"not null" json:"title"`
	Content  string         `gorm:"type:text" json:"content"`
	Tags     datatypes.JSON `json:"tags"`

	RewardPoints int `gorm:"default:0" json:"reward_points"`
	Views        int `gorm:"default:0" json:"views"`
	AnswersCount int `gorm:"default:0" json:"answers_count"`

	Solved           bool   `gorm:"default:false" json:"solved"`
	AcceptedAnswerID string `json:"accepted_answer_id"`

	Hidden bool `gorm:"default:false" json:"hidden"`
}

type QaAnswer struct {
	BaseModel
	QuestionID string `gorm:"index;not null" json:"question_id"`
	AuthorID   string `gorm:"index;not null" json:"author_id"`
	Content    string `gorm:"type:text" json:"content"`

	LikesCount int `gorm:"default:0" json:"likes_count"`
}
