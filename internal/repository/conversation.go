package repository

import (
	"context"
	"errors"
	"time"

	"gatormarket/internal/models"

	"gorm.io/gorm"
)

// ConversationStats carries per-conversation counters for one viewer.
type ConversationStats struct {
	ConversationID uint
	MessageCount   int64
	UnreadCount    int64
}

// ConversationRepository defines persistence operations for message threads.
type ConversationRepository interface {
	FindActiveBetween(ctx context.Context, productID, userA, userB uint) (*models.Conversation, error)
	Create(ctx context.Context, conv *models.Conversation) error
	GetByID(ctx context.Context, id uint) (*models.Conversation, error)
	IsParticipant(ctx context.Context, convID, userID uint) (bool, error)
	AddMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, convID uint, limit, offset int) ([]models.Message, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Conversation, error)
	Stats(ctx context.Context, userID uint, convIDs []uint) (map[uint]ConversationStats, error)
	LastMessages(ctx context.Context, convIDs []uint) (map[uint]models.Message, error)
	UnreadCount(ctx context.Context, convID, userID uint) (int64, error)
	TotalUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, convID, userID uint, at time.Time) error
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository returns a new ConversationRepository implementation.
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// unreadCondition matches messages the viewing participant cp has not read.
const unreadCondition = "m.sender_id <> cp.user_id AND (cp.last_read_at IS NULL OR m.sent_at > cp.last_read_at)"

// FindActiveBetween returns the active conversation about productID whose
// participants are exactly userA and userB, with participants loaded, or nil, nil.
func (r *conversationRepository) FindActiveBetween(ctx context.Context, productID, userA, userB uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Preload("Participants.User").
		Joins("JOIN conversation_participants cp_a ON cp_a.conversation_id = conversations.id AND cp_a.user_id = ?", userA).
		Joins("JOIN conversation_participants cp_b ON cp_b.conversation_id = conversations.id AND cp_b.user_id = ?", userB).
		Where("conversations.product_id = ? AND conversations.status = ?", productID, models.ConversationActive).
		Where("NOT EXISTS (SELECT 1 FROM conversation_participants cp_x WHERE cp_x.conversation_id = conversations.id AND cp_x.user_id NOT IN (?, ?))", userA, userB).
		Order("conversations.id ASC").
		First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

func (r *conversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *conversationRepository) GetByID(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.WithContext(ctx).
		Preload("Participants.User").
		Preload("Product.Images", orderedImages).
		First(&conv, id).Error
	if err != nil {
		return nil, notFoundOr(err, "Conversation", id)
	}
	return &conv, nil
}

func (r *conversationRepository) IsParticipant(ctx context.Context, convID, userID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

// AddMessage stores msg and bumps the conversation's last_updated_at to its sent time.
func (r *conversationRepository) AddMessage(ctx context.Context, msg *models.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", msg.ConversationID).
			Update("last_updated_at", msg.SentAt).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListMessages returns messages oldest first.
func (r *conversationRepository) ListMessages(ctx context.Context, convID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Preload("Sender").
		Order("sent_at ASC, id ASC").
		Limit(clampLimit(limit, 100, 500)).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// ListForUser returns every conversation userID participates in, newest activity first.
func (r *conversationRepository) ListForUser(ctx context.Context, userID uint) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.db.WithContext(ctx).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id AND cp.user_id = ?", userID).
		Preload("Participants.User").
		Preload("Product.Images", orderedImages).
		Order("conversations.last_updated_at DESC, conversations.id DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return conversations, nil
}

// Stats returns message and unread counts for each conversation as seen by userID.
func (r *conversationRepository) Stats(ctx context.Context, userID uint, convIDs []uint) (map[uint]ConversationStats, error) {
	out := make(map[uint]ConversationStats, len(convIDs))
	if len(convIDs) == 0 {
		return out, nil
	}

	var rows []ConversationStats
	err := r.db.WithContext(ctx).
		Table("messages AS m").
		Select("m.conversation_id AS conversation_id, COUNT(*) AS message_count, "+
			"SUM(CASE WHEN "+unreadCondition+" THEN 1 ELSE 0 END) AS unread_count").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = m.conversation_id AND cp.user_id = ?", userID).
		Where("m.conversation_id IN ?", convIDs).
		Group("m.conversation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, row := range rows {
		out[row.ConversationID] = row
	}
	return out, nil
}

// LastMessages returns the most recent message of each conversation.
func (r *conversationRepository) LastMessages(ctx context.Context, convIDs []uint) (map[uint]models.Message, error) {
	out := make(map[uint]models.Message, len(convIDs))
	if len(convIDs) == 0 {
		return out, nil
	}

	latest := r.db.Model(&models.Message{}).
		Select("MAX(id)").
		Where("conversation_id IN ?", convIDs).
		Group("conversation_id")

	var messages []models.Message
	if err := r.db.WithContext(ctx).Where("id IN (?)", latest).Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, m := range messages {
		out[m.ConversationID] = m
	}
	return out, nil
}

func (r *conversationRepository) UnreadCount(ctx context.Context, convID, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("messages AS m").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = m.conversation_id AND cp.user_id = ?", userID).
		Where("m.conversation_id = ?", convID).
		Where(unreadCondition).
		Count(&n).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *conversationRepository) TotalUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("messages AS m").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = m.conversation_id AND cp.user_id = ?", userID).
		Where(unreadCondition).
		Count(&n).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// MarkRead moves userID's read marker in convID to at.
func (r *conversationRepository) MarkRead(ctx context.Context, convID, userID uint, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Update("last_read_at", at)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewForbiddenError("Not a participant in this conversation")
	}
	return nil
}
