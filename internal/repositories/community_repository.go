package repositories

import (
	"errors"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
)

type CommunityRepository interface {
	CreatePost(post *models.CommunityPost) error
	FindPostByID(id string) (*models.CommunityPost, error)
	UpdatePost(post *models.CommunityPost) error
	DeletePost(id string) error
	ListPosts(includeHidden bool, offset, limit int) ([]models.CommunityPost, error)
	IncrementPostCounter(postID, column string, delta int) error

	CreateComment(comment *models.CommunityComment) error
	FindCommentByID(id string) (*models.CommunityComment, error)
	ListComments(postID string) ([]models.CommunityComment, error)
	DeleteComment(id string) error
}

type CommunityRepositoryImpl struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &CommunityRepositoryImpl{db: db}
}

func (r *CommunityRepositoryImpl) CreatePost(post *models.CommunityPost) error {
	return r.db.Create(post).Error
}

func (r *CommunityRepositoryImpl) FindPostByID(id string) (*models.CommunityPost, error) {
	var post models.CommunityPost
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *CommunityRepositoryImpl) UpdatePost(post *models.CommunityPost) error {
	return r.db.Save(post).Error
}

func (r *CommunityRepositoryImpl) DeletePost(id string) error {
	return r.db.Delete(&models.CommunityPost{}, "id = ?", id).Error
}

func (r *CommunityRepositoryImpl) ListPosts(includeHidden bool, offset, limit int) ([]models.CommunityPost, error) {
	query := r.db.Model(&models.CommunityPost{})
	if !includeHidden {
		query = query.Where("hidden = ?", false)
	}
	var posts []models.CommunityPost
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *CommunityRepositoryImpl) IncrementPostCounter(postID, column string, delta int) error {
	return r.db.Model(&models.CommunityPost{}).
		Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

func (r *CommunityRepositoryImpl) CreateComment(comment *models.CommunityComment) error {
	return r.db.Create(comment).Error
}

func (r *CommunityRepositoryImpl) FindCommentByID(id string) (*models.CommunityComment, error) {
	var comment models.CommunityComment
	if err := r.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommunityRepositoryImpl) ListComments(postID string) ([]models.CommunityComment, error) {
	var comments []models.CommunityComment
	err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

func (r *CommunityRepositoryImpl) DeleteComment(id string) error {
	return r.db.Delete(&models.CommunityComment{}, "id = ?", id).Error
}
