package repositories

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var ErrTopicNotFound = errors.New("campus topic not found")

type CampusRepository interface {
	CreateTopic(topic *models.CampusTopic) error
	FindTopicByID(id string) (*models.CampusTopic, error)
	UpdateTopic(topic *models.CampusTopic) error
	ListTopics(schoolID string, enabledOnly bool) ([]models.CampusTopic, error)

	CreatePost(post *models.CampusPost) error
	FindPostByID(id string) (*models.CampusPost, error)
	UpdatePost(post *models.CampusPost) error
	DeletePost(id string) error
	ListPosts(schoolID string, includeHidden bool, offset, limit int) ([]models.CampusPost, error)
	IncrementPostCounter(postID, column string, delta int) error

	CreateComment(comment *models.CampusPostComment) error
	FindCommentByID(id string) (*models.CampusPostComment, error)
	ListComments(postID string) ([]models.CampusPostComment, error)
	DeleteComment(id string) error
}

type CampusRepositoryImpl struct {
	db *gorm.DB
}

func NewCampusRepository(db *gorm.DB) CampusRepository {
	return &CampusRepositoryImpl{db: db}
}

func (r *CampusRepositoryImpl) CreateTopic(topic *models.CampusTopic) error {
	return r.db.Create(topic).Error
}

func (r *CampusRepositoryImpl) FindTopicByID(id string) (*models.CampusTopic, error) {
	var topic models.CampusTopic
	if err := r.db.First(&topic, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	return &topic, nil
}

func (r *CampusRepositoryImpl) UpdateTopic(topic *models.CampusTopic) error {
	return r.db.Save(topic).Error
}

func (r *CampusRepositoryImpl) ListTopics(schoolID string, enabledOnly bool) ([]models.CampusTopic, error) {
	query := r.db.Where("school_id = ?", schoolID).Order("created_at ASC")
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	var topics []models.CampusTopic
	err := query.Find(&topics).Error
	return topics, err
}

func (r *CampusRepositoryImpl) CreatePost(post *models.CampusPost) error {
	return r.db.Create(post).Error
}

func (r *CampusRepositoryImpl) FindPostByID(id string) (*models.CampusPost, error) {
	var post models.CampusPost
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *CampusRepositoryImpl) UpdatePost(post *models.CampusPost) error {
	return r.db.Save(post).Error
}

func (r *CampusRepositoryImpl) DeletePost(id string) error {
	return r.db.Delete(&models.CampusPost{}, "id = ?", id).Error
}

func (r *CampusRepositoryImpl) ListPosts(schoolID string, includeHidden bool, offset, limit int) ([]models.CampusPost, error) {
	query := r.db.Where("school_id = ?", schoolID)
	if !includeHidden {
		query = query.Where("visibility = ?", models.VisibilityVisible)
	}
	var posts []models.CampusPost
	err := query.Order("pinned DESC, created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *CampusRepositoryImpl) IncrementPostCounter(postID, column string, delta int) error {
	return r.db.Model(&models.CampusPost{}).
		Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

func (r *CampusRepositoryImpl) CreateComment(comment *models.CampusPostComment) error {
	return r.db.Create(comment).Error
}

func (r *CampusRepositoryImpl) FindCommentByID(id string) (*models.CampusPostComment, error) {
	var comment models.CampusPostComment
	if err := r.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CampusRepositoryImpl) ListComments(postID string) ([]models.CampusPostComment, error) {
	var comments []models.CampusPostComment
	err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *CampusRepositoryImpl) DeleteComment(id string) error {
	return r.db.Delete(&models.CampusPostComment{}, "id = ?", id).Error
}
