package service

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"gatormarket/internal/middleware"
	"gatormarket/internal/models"
	"gatormarket/internal/repository"

	"gorm.io/gorm"
)

// MaxMessageLength is the ceiling on a single message body, in characters.
const MaxMessageLength = 1000

// ConversationService implements buyer/seller messaging.
type ConversationService struct {
	db            *gorm.DB
	conversations repository.ConversationRepository
	products      repository.ProductRepository
	users         repository.UserRepository
	now           func() time.Time
}

// NewConversationService returns a new ConversationService.
func NewConversationService(
	db *gorm.DB,
	conversations repository.ConversationRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
) *ConversationService {
	return &ConversationService{
		db:            db,
		conversations: conversations,
		products:      products,
		users:         users,
		now:           utcNow,
	}
}

// StartConversationInput opens or continues a thread about a product.
type StartConversationInput struct {
	BuyerID        uint   `json:"-"`
	ProductID      uint   `json:"product_id"`
	RecipientID    uint   `json:"recipient_id"`
	Subject        string `json:"subject"`
	InitialMessage string `json:"initial_message"`
}

// StartResult reports the thread used and whether it was newly created.
type StartResult struct {
	Conversation *models.Conversation
	Message      *models.Message
	Created      bool
}

func validateMessage(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", models.NewValidationError("Message text is required")
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return "", models.NewValidationError("Message is too long")
	}
	return text, nil
}

// Start appends to the active conversation between the two users about the
// product, or creates one with both participants and the first message.
func (s *ConversationService) Start(ctx context.Context, in StartConversationInput) (*StartResult, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	switch {
	case in.ProductID == 0:
		return nil, models.NewValidationError("Missing required field: product_id")
	case in.RecipientID == 0:
		return nil, models.NewValidationError("Missing required field: recipient_id")
	case in.Subject == "":
		return nil, models.NewValidationError("Missing required field: subject")
	case strings.TrimSpace(in.InitialMessage) == "":
		return nil, models.NewValidationError("Missing required field: initial_message")
	}
	body, err := validateMessage(in.InitialMessage)
	if err != nil {
		return nil, err
	}
	if in.RecipientID == in.BuyerID {
		return nil, models.NewValidationError("You cannot message yourself")
	}

	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, in.RecipientID); err != nil {
		return nil, err
	}

	var result StartResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conversations := repository.NewConversationRepository(tx)
		now := s.now()

		existing, err := conversations.FindActiveBetween(ctx, in.ProductID, in.BuyerID, in.RecipientID)
		if err != nil {
			return err
		}
		if existing != nil {
			msg := &models.Message{ConversationID: existing.ID, SenderID: in.BuyerID, Body: body, SentAt: now}
			if err := conversations.AddMessage(ctx, msg); err != nil {
				return err
			}
			existing.LastUpdatedAt = now
			result = StartResult{Conversation: existing, Message: msg}
			return nil
		}

		conv := &models.Conversation{
			ProductID:     in.ProductID,
			Subject:       in.Subject,
			Status:        models.ConversationActive,
			CreatedAt:     now,
			LastUpdatedAt: now,
			Participants: []models.ConversationParticipant{
				{UserID: in.BuyerID, Role: models.ParticipantBuyer, JoinedAt: now},
				{UserID: in.RecipientID, Role: models.ParticipantSeller, JoinedAt: now},
			},
			Messages: []models.Message{
				{SenderID: in.BuyerID, Body: body, SentAt: now},
			},
		}
		if err := conversations.Create(ctx, conv); err != nil {
			return err
		}
		result = StartResult{Conversation: conv, Message: &conv.Messages[0], Created: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	middleware.MessagesSent.Inc()
	middleware.Logger.InfoContext(ctx, "conversation message sent",
		slog.Uint64("conversation_id", uint64(result.Conversation.ID)),
		slog.Bool("created", result.Created),
	)
	return &result, nil
}

// Get returns the conversation if userID participates in it. Unknown ids
// answer the same as conversations the caller is not part of.
func (s *ConversationService) Get(ctx context.Context, userID, convID uint) (*models.Conversation, error) {
	if err := s.requireParticipant(ctx, userID, convID); err != nil {
		return nil, err
	}
	return s.conversations.GetByID(ctx, convID)
}

// ListMessages returns the thread oldest first.
func (s *ConversationService) ListMessages(ctx context.Context, userID, convID uint, limit, offset int) ([]models.Message, error) {
	if err := s.requireParticipant(ctx, userID, convID); err != nil {
		return nil, err
	}
	return s.conversations.ListMessages(ctx, convID, limit, offset)
}

// Send appends a message from userID.
func (s *ConversationService) Send(ctx context.Context, userID, convID uint, text string) (*models.Message, error) {
	body, err := validateMessage(text)
	if err != nil {
		return nil, err
	}
	if err := s.requireParticipant(ctx, userID, convID); err != nil {
		return nil, err
	}

	msg := &models.Message{ConversationID: convID, SenderID: userID, Body: body, SentAt: s.now()}
	if err := s.conversations.AddMessage(ctx, msg); err != nil {
		return nil, err
	}
	middleware.MessagesSent.Inc()
	return msg, nil
}

// MarkRead moves userID's read marker to now.
func (s *ConversationService) MarkRead(ctx context.Context, userID, convID uint) error {
	return s.conversations.MarkRead(ctx, convID, userID, s.now())
}

// List builds the inbox for userID, newest activity first.
func (s *ConversationService) List(ctx context.Context, userID uint) ([]models.ConversationSummary, error) {
	conversations, err := s.conversations.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(conversations))
	for _, c := range conversations {
		ids = append(ids, c.ID)
	}
	stats, err := s.conversations.Stats(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	last, err := s.conversations.LastMessages(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.ConversationSummary, 0, len(conversations))
	for i := range conversations {
		c := &conversations[i]
		summary := models.ConversationSummary{
			ConversationID: c.ID,
			Subject:        c.Subject,
			Status:         c.Status,
			LastUpdatedAt:  c.LastUpdatedAt,
			UnreadCount:    stats[c.ID].UnreadCount,
			MessageCount:   stats[c.ID].MessageCount,
		}
		if c.Product != nil {
			p := models.NewProductSummary(c.Product)
			summary.Product = &p
		}
		if other := c.Counterpart(userID); other != nil {
			p := models.NewParticipantResponse(other)
			summary.OtherParticipant = &p
		}
		if m, ok := last[c.ID]; ok {
			sentAt := m.SentAt
			summary.LastMessage = m.Body
			summary.LastMessageAt = &sentAt
		}
		out = append(out, summary)
	}
	return out, nil
}

// UnreadCount totals unread messages across userID's conversations.
func (s *ConversationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.conversations.TotalUnread(ctx, userID)
}

func (s *ConversationService) requireParticipant(ctx context.Context, userID, convID uint) error {
	ok, err := s.conversations.IsParticipant(ctx, convID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return errNotParticipant()
	}
	return nil
}

func errNotParticipant() *models.AppError {
	return models.NewForbiddenError("You are not a participant in this conversation")
}
