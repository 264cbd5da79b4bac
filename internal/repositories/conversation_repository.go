package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"cloudedumatch_backend/internal/models"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ConversationRepository interface {
	Create(conv *models.Conversation) error
	FindByID(id string) (*models.Conversation, error)
	// FindPairwise locates the conversation both users participate in.
	FindPairwise(userID, peerUserID string) (*models.Conversation, error)
	ListByUser(userID string) ([]models.Conversation, error)
	AddParticipant(p *models.ConversationParticipant) error
	IsParticipant(conversationID, userID string) (bool, error)
	UpdateLastRead(conversationID, userID string, at time.Time) error

	CreateMessage(msg *models.Message) error
	ListMessages(conversationID string, offset, limit int) ([]models.Message, error)
	LastMessage(conversationID string) (*models.Message, error)
	// CountMessagesSince counts messages from other senders newer than
	// since; a nil since counts them all.
	CountMessagesSince(conversationID, excludeSenderID string, since *time.Time) (int64, error)
}

type ConversationRepositoryImpl struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &ConversationRepositoryImpl{db: db}
}

func (r *ConversationRepositoryImpl) Create(conv *models.Conversation) error {
	return r.db.Create(conv).Error
}

func (r *ConversationRepositoryImpl) FindByID(id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.Preload("Participants").First(&conv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepositoryImpl) FindPairwise(userID, peerUserID string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.
		Where("id IN (?)",
			r.db.Model(&models.ConversationParticipant{}).
				Select("conversation_id").
				Where("user_id = ?", userID),
		).
		Where("id IN (?)",
			r.db.Model(&models.ConversationParticipant{}).
				Select("conversation_id").
				Where("user_id = ?", peerUserID),
		).
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepositoryImpl) ListByUser(userID string) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.
		Where("id IN (?)",
			r.db.Model(&models.ConversationParticipant{}).
				Select("conversation_id").
				Where("user_id = ?", userID),
		).
		Preload("Participants").
		Order("created_at DESC").
		Find(&convs).Error
	return convs, err
}

func (r *ConversationRepositoryImpl) AddParticipant(p *models.ConversationParticipant) error {
	return r.db.Create(p).Error
}

func (r *ConversationRepositoryImpl) IsParticipant(conversationID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ConversationRepositoryImpl) UpdateLastRead(conversationID, userID string, at time.Time) error {
	return r.db.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("last_read_at", at).Error
}

func (r *ConversationRepositoryImpl) CreateMessage(msg *models.Message) error {
	return r.db.Create(msg).Error
}

func (r *ConversationRepositoryImpl) ListMessages(conversationID string, offset, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (r *ConversationRepositoryImpl) LastMessage(conversationID string) (*models.Message, error) {
	var msg models.Message
	err := r.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

func (r *ConversationRepositoryImpl) CountMessagesSince(conversationID, excludeSenderID string, since *time.Time) (int64, error) {
	query := r.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ?", conversationID, excludeSenderID)
	if since != nil {
		query = query.Where("created_at > ?", *since)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}
