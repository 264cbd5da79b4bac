package services

import (
	"errors"

	"cloudedumatch_backend/internal/authz"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

// CampusService is the per-school forum. Reads require membership in
// the school, moderation requires the university admin grant.
type CampusService interface {
	CreateTopic(callerID, schoolID string, req *dto.CreateCampusTopicRequest) (*dto.CampusTopicResponse, error)
	ListTopics(callerID, schoolID string, enabledOnly bool) ([]*dto.CampusTopicResponse, error)
	SetTopicEnabled(callerID, topicID string, enabled bool) (*dto.CampusTopicResponse, error)

	CreatePost(authorID, schoolID string, req *dto.CreateCampusPostRequest) (*dto.CampusPostResponse, error)
	ListPosts(callerID, schoolID string, offset, limit int) ([]*dto.CampusPostResponse, error)
	ModeratePost(callerID, postID string, req *dto.ModerateCampusPostRequest) (*dto.CampusPostResponse, error)
	DeletePost(callerID, postID string) error
	LikePost(callerID, postID string) error

	CreateComment(authorID, postID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(callerID, postID string) ([]*dto.CommentResponse, error)
}

type campusService struct {
	campus repositories.CampusRepository
	users  repositories.UserRepository
}

func NewCampusService(campus repositories.CampusRepository, users repositories.UserRepository) CampusService {
	return &campusService{campus: campus, users: users}
}

func (s *campusService) loadCaller(callerID string) (*models.User, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return caller, nil
}

func (s *campusService) resolveSchool(caller *models.User, schoolID string) (string, error) {
	if schoolID == "" {
		schoolID = caller.SchoolID
	}
	if schoolID == "" {
		return "", apperrors.ErrMissingScopeID
	}
	return schoolID, nil
}

func (s *campusService) CreateTopic(callerID, schoolID string, req *dto.CreateCampusTopicRequest) (*dto.CampusTopicResponse, error) {
	caller, err := s.loadCaller(callerID)
	if err != nil {
		return nil, err
	}
	schoolID, err = s.resolveSchool(caller, schoolID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageCampus(caller, schoolID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	topic := &models.CampusTopic{
		SchoolID: schoolID,
		Name:     req.Name,
		Enabled:  true,
	}
	if err := s.campus.CreateTopic(topic); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCampusTopicResponse(topic), nil
}

func (s *campusService) ListTopics(callerID, schoolID string, enabledOnly bool) ([]*dto.CampusTopicResponse, error) {
	caller, err := s.loadCaller(callerID)
	if err != nil {
		return nil, err
	}
	schoolID, err = s.resolveSchool(caller, schoolID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessCampus(caller, schoolID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	topics, err := s.campus.ListTopics(schoolID, enabledOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.CampusTopicResponse, 0, len(topics))
	for i := range topics {
		out = append(out, dto.NewCampusTopicResponse(&topics[i]))
	}
	return out, nil
}

func (s *campusService) SetTopicEnabled(callerID, topicID string, enabled bool) (*dto.CampusTopicResponse, error) {
	caller, err := s.loadCaller(callerID)
	if err != nil {
		return nil, err
	}
	topic, err := s.campus.FindTopicByID(topicID)
	if err != nil {
		if errors.Is(err, repositories.ErrTopicNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !authz.CanManageCampus(caller, topic.SchoolID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	topic.Enabled = enabled
	if err := s.campus.UpdateTopic(topic); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCampusTopicResponse(topic), nil
}

func (s *campusService) CreatePost(authorID, schoolID string, req *dto.CreateCampusPostRequest) (*dto.CampusPostResponse, error) {
	caller, err := s.loadCaller(authorID)
	if err != nil {
		return nil, err
	}
	schoolID, err = s.resolveSchool(caller, schoolID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessCampus(caller, schoolID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	post := &models.CampusPost{
		SchoolID:   schoolID,
		AuthorID:   caller.ID,
		Content:    req.Content,
		TopicIDs:   models.StringList(req.TopicIDs),
		Visibility: models.VisibilityVisible,
	}
	if err := s.campus.CreatePost(post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCampusPostResponse(post), nil
}

func (s *campusService) ListPosts(callerID, schoolID string, offset, limit int) ([]*dto.CampusPostResponse, error) {
	caller, err := s.loadCaller(callerID)
	if err != nil {
		return nil, err
	}
	schoolID, err = s.resolveSchool(caller, schoolID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessCampus(caller, schoolID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	includeHidden := authz.CanManageCampus(caller, schoolID)

	posts, err := s.campus.ListPosts(schoolID, includeHidden, offset, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.CampusPostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, dto.NewCampusPostResponse(&posts[i]))
	}
	return out, nil
}

func (s *campusService) ModeratePost(callerID, postID string, req *dto.ModerateCampusPostRequest) (*dto.CampusPostResponse, error) {
	caller, err := s.loadCaller(callerID)
	if err != nil {
		return nil, err
	}
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageCampus(caller, post.SchoolID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Pinned != nil {
		post.Pinned = *req.Pinned
	}
	if req.Visibility != nil {
		post.Visibility = models.Visibility(*req.Visibility)
	}
	if err := s.campus.UpdatePost(post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCampusPostResponse(post), nil
}

func (s *campusService) DeletePost(callerID, postID string) error {
	caller, err := s.loadCaller(callerID)
	if err != nil {
		return err
	}
	post, err := s.findPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != caller.ID && !authz.CanManageCampus(caller, post.SchoolID) {
		return apperrors.ErrNotContentAuthor
	}
	if err := s.campus.DeletePost(postID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *campusService) LikePost(callerID, postID string) error {
	caller, err := s.loadCaller(callerID)
	if err != nil {
		return err
	}
	post, err := s.findPost(postID)
	if err != nil {
		return err
	}
	if !authz.CanAccessCampus(caller, post.SchoolID) {
		return apperrors.ErrInsufficientPermissions
	}
	if err := s.campus.IncrementPostCounter(postID, "likes_count", 1); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *campusService) CreateComment(authorID, postID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	caller, err := s.loadCaller(authorID)
	if err != nil {
		return nil, err
	}
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessCampus(caller, post.SchoolID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	comment := &models.CampusPostComment{
		PostID:   post.ID,
		SchoolID: post.SchoolID,
		AuthorID: caller.ID,
		Content:  req.Content,
	}
	if err := s.campus.CreateComment(comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.campus.IncrementPostCounter(post.ID, "comments_count", 1); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return campusCommentResponse(comment), nil
}

func (s *campusService) ListComments(callerID, postID string) ([]*dto.CommentResponse, error) {
	caller, err := s.loadCaller(callerID)
	if err != nil {
		return nil, err
	}
	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	if !authz.CanAccessCampus(caller, post.SchoolID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	comments, err := s.campus.ListComments(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, campusCommentResponse(&comments[i]))
	}
	return out, nil
}

func (s *campusService) findPost(id string) (*models.CampusPost, error) {
	post, err := s.campus.FindPostByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

func campusCommentResponse(c *models.CampusPostComment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		Content:    c.Content,
		LikesCount: c.LikesCount,
		CreatedAt:  c.CreatedAt,
	}
}
