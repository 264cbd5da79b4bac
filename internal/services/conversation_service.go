package services

import (
	"errors"
	"time"

	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/pkg/apperrors"
)

type ConversationService interface {
	ListMine(userID string) ([]*dto.ConversationResponse, error)
	// OpenWith finds or creates the pairwise conversation with a peer.
	OpenWith(userID, peerID string) (*dto.ConversationResponse, error)
	SendMessage(userID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	ListMessages(userID, conversationID string, offset, limit int) ([]*dto.MessageResponse, error)
	MarkRead(userID, conversationID string) error
	// UnreadCount sums unread messages across all of the user's
	// conversations.
	UnreadCount(userID string) (int64, error)
}

type conversationService struct {
	conversations repositories.ConversationRepository
	users         repositories.UserRepository
	notifier      NotificationService
}

func NewConversationService(
	conversations repositories.ConversationRepository,
	users repositories.UserRepository,
	notifier NotificationService,
) ConversationService {
	return &conversationService{
		conversations: conversations,
		users:         users,
		notifier:      notifier,
	}
}

func (s *conversationService) ListMine(userID string) ([]*dto.ConversationResponse, error) {
	items, err := s.conversations.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.ConversationResponse, 0, len(items))
	for i := range items {
		resp, err := s.toResponse(&items[i], userID)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

func (s *conversationService) OpenWith(userID, peerID string) (*dto.ConversationResponse, error) {
	if userID == peerID {
		return nil, apperrors.NewBadRequestError("cannot open a conversation with yourself")
	}
	if _, err := s.users.FindByID(peerID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	conv, err := s.conversations.FindPairwise(userID, peerID)
	if err != nil {
		if !errors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.InternalError(err)
		}
		conv = &models.Conversation{}
		if err := s.conversations.Create(conv); err != nil {
			return nil, apperrors.InternalError(err)
		}
		for _, id := range []string{userID, peerID} {
			p := &models.ConversationParticipant{ConversationID: conv.ID, UserID: id}
			if err := s.conversations.AddParticipant(p); err != nil {
				return nil, apperrors.InternalError(err)
			}
		}
		reloaded, err := s.conversations.FindByID(conv.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		conv = reloaded
	}
	return s.toResponse(conv, userID)
}

func (s *conversationService) SendMessage(userID, conversationID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	conv, err := s.requireParticipant(userID, conversationID)
	if err != nil {
		return nil, err
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       userID,
		Content:        req.Content,
	}
	if err := s.conversations.CreateMessage(msg); err != nil {
		return nil, apperrors.InternalError(err)
	}

	for _, p := range conv.Participants {
		if p.UserID == userID {
			continue
		}
		s.notifier.Notify(p.UserID, models.NotifyNewMessage, map[string]interface{}{
			"conversation_id": conv.ID,
			"message_id":      msg.ID,
			"sender_id":       userID,
		})
	}
	return dto.NewMessageResponse(msg), nil
}

func (s *conversationService) ListMessages(userID, conversationID string, offset, limit int) ([]*dto.MessageResponse, error) {
	if _, err := s.requireParticipant(userID, conversationID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.conversations.ListMessages(conversationID, offset, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.MessageResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewMessageResponse(&items[i]))
	}
	return out, nil
}

func (s *conversationService) MarkRead(userID, conversationID string) error {
	if _, err := s.requireParticipant(userID, conversationID); err != nil {
		return err
	}
	if err := s.conversations.UpdateLastRead(conversationID, userID, time.Now()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *conversationService) UnreadCount(userID string) (int64, error) {
	items, err := s.conversations.ListByUser(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	var total int64
	for i := range items {
		var lastRead *time.Time
		for _, p := range items[i].Participants {
			if p.UserID == userID {
				lastRead = p.LastReadAt
			}
		}
		count, err := s.conversations.CountMessagesSince(items[i].ID, userID, lastRead)
		if err != nil {
			return 0, apperrors.InternalError(err)
		}
		total += count
	}
	return total, nil
}

func (s *conversationService) requireParticipant(userID, conversationID string) (*models.Conversation, error) {
	conv, err := s.conversations.FindByID(conversationID)
	if err != nil {
		if errors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	for _, p := range conv.Participants {
		if p.UserID == userID {
			return conv, nil
		}
	}
	return nil, apperrors.ErrNotParticipant
}

func (s *conversationService) toResponse(conv *models.Conversation, forUserID string) (*dto.ConversationResponse, error) {
	ids := make([]string, 0, len(conv.Participants))
	var lastRead *time.Time
	for _, p := range conv.Participants {
		ids = append(ids, p.UserID)
		if p.UserID == forUserID {
			lastRead = p.LastReadAt
		}
	}
	users, err := s.users.FindByIDs(ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	peers := make([]dto.PeerInfo, 0, len(users))
	for i := range users {
		peers = append(peers, dto.PeerInfo{
			ID:       users[i].ID,
			Username: users[i].Username,
			FullName: users[i].FullName,
		})
	}

	last, err := s.conversations.LastMessage(conv.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.conversations.CountMessagesSince(conv.ID, forUserID, lastRead)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ConversationResponse{
		ID:           conv.ID,
		Participants: peers,
		UnreadCount:  unread,
		CreatedAt:    conv.CreatedAt,
	}
	if last != nil {
		resp.LastMessage = dto.NewMessageResponse(last)
	}
	return resp, nil
}
