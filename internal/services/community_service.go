package services

import (
	"errors"

	"cloudedumatch_backend/internal/authz"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

type CommunityService interface {
	CreatePost(authorID string, req *dto.CreateCommunityPostRequest) (*dto.CommunityPostResponse, error)
	GetPost(id string) (*dto.CommunityPostResponse, error)
	ListPosts(callerID string, offset, limit int) ([]*dto.CommunityPostResponse, error)
	DeletePost(callerID, postID string) error
	LikePost(postID string) error
	SetPostHidden(callerID, postID string, hidden bool) (*dto.CommunityPostResponse, error)

	CreateComment(authorID, postID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(postID string) ([]*dto.CommentResponse, error)
	DeleteComment(callerID, commentID string) error
}

type communityService struct {
	community repositories.CommunityRepository
	users     repositories.UserRepository
}

func NewCommunityService(community repositories.CommunityRepository, users repositories.UserRepository) CommunityService {
	return &communityService{community: community, users: users}
}

func (s *communityService) isModerator(callerID string) (bool, error) {
	caller, err := s.users.FindByIDWithGrants(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return false, apperrors.ErrNotFound(err)
		}
		return false, apperrors.InternalError(err)
	}
	return authz.IsSuperuser(caller) || authz.IsHQ(caller), nil
}

func (s *communityService) CreatePost(authorID string, req *dto.CreateCommunityPostRequest) (*dto.CommunityPostResponse, error) {
	post := &models.CommunityPost{
		AuthorID: authorID,
		Content:  req.Content,
		Tags:     models.StringList(req.Tags),
	}
	if err := s.community.CreatePost(post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCommunityPostResponse(post), nil
}

func (s *communityService) GetPost(id string) (*dto.CommunityPostResponse, error) {
	post, err := s.findPost(id)
	if err != nil {
		return nil, err
	}
	return dto.NewCommunityPostResponse(post), nil
}

func (s *communityService) ListPosts(callerID string, offset, limit int) ([]*dto.CommunityPostResponse, error) {
	includeHidden, err := s.isModerator(callerID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := s.community.ListPosts(includeHidden, offset, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.CommunityPostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, dto.NewCommunityPostResponse(&posts[i]))
	}
	return out, nil
}

func (s *communityService) DeletePost(callerID, postID string) error {
	post, err := s.findPost(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != callerID {
		moderator, err := s.isModerator(callerID)
		if err != nil {
			return err
		}
		if !moderator {
			return apperrors.ErrNotContentAuthor
		}
	}
	if err := s.community.DeletePost(postID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *communityService) LikePost(postID string) error {
	if _, err := s.findPost(postID); err != nil {
		return err
	}
	if err := s.community.IncrementPostCounter(postID, "likes_count", 1); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *communityService) SetPostHidden(callerID, postID string, hidden bool) (*dto.CommunityPostResponse, error) {
	moderator, err := s.isModerator(callerID)
	if err != nil {
		return nil, err
	}
	if !moderator {
		return nil, apperrors.ErrInsufficientPermissions
	}

	post, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}
	post.Hidden = hidden
	if err := s.community.UpdatePost(post); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCommunityPostResponse(post), nil
}

func (s *communityService) CreateComment(authorID, postID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}

	comment := &models.CommunityComment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if err := s.community.CreateComment(comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.community.IncrementPostCounter(postID, "comments_count", 1); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return communityCommentResponse(comment), nil
}

func (s *communityService) ListComments(postID string) ([]*dto.CommentResponse, error) {
	if _, err := s.findPost(postID); err != nil {
		return nil, err
	}
	comments, err := s.community.ListComments(postID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, communityCommentResponse(&comments[i]))
	}
	return out, nil
}

func (s *communityService) DeleteComment(callerID, commentID string) error {
	comment, err := s.community.FindCommentByID(commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if comment.AuthorID != callerID {
		moderator, err := s.isModerator(callerID)
		if err != nil {
			return err
		}
		if !moderator {
			return apperrors.ErrNotContentAuthor
		}
	}
	if err := s.community.DeleteComment(commentID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.community.IncrementPostCounter(comment.PostID, "comments_count", -1); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *communityService) findPost(id string) (*models.CommunityPost, error) {
	post, err := s.community.FindPostByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return post, nil
}

func communityCommentResponse(c *models.CommunityComment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorID:   c.AuthorID,
		Content:    c.Content,
		LikesCount: c.LikesCount,
		CreatedAt:  c.CreatedAt,
	}
}
