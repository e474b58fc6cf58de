package models

import "time"

// ConversationStatus marks whether a thread still accepts new contact.
type ConversationStatus string

const (
	ConversationActive ConversationStatus = "active"
	ConversationClosed ConversationStatus = "closed"
)

// ParticipantRole is fixed when the conversation is created.
type ParticipantRole string

const (
	ParticipantBuyer  ParticipantRole = "buyer"
	ParticipantSeller ParticipantRole = "seller"
)

// Conversation is a buyer/seller thread about one product.
type Conversation struct {
	ID            uint                      `gorm:"primaryKey" json:"conversation_id"`
	ProductID     uint                      `gorm:"not null;index" json:"product_id"`
	Product       *Product                  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Subject       string                    `gorm:"size:255;not null" json:"subject"`
	Status        ConversationStatus        `gorm:"size:16;not null;default:'active';index" json:"status"`
	CreatedAt     time.Time                 `json:"created_at"`
	LastUpdatedAt time.Time                 `gorm:"index" json:"last_updated_at"`
	Participants  []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
	Messages      []Message                 `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// ConversationParticipant tracks one user's membership and read position.
type ConversationParticipant struct {
	ConversationID uint            `gorm:"primaryKey" json:"conversation_id"`
	UserID         uint            `gorm:"primaryKey;index" json:"user_id"`
	User           *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role           ParticipantRole `gorm:"size:16;not null" json:"role"`
	LastReadAt     *time.Time      `json:"last_read_at"`
	JoinedAt       time.Time       `gorm:"autoCreateTime" json:"joined_at"`
}

// Message is a single entry in a conversation thread.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"message_id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null;index" json:"sender_id"`
	Sender         *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Body           string    `gorm:"type:text;not null" json:"message_text"`
	SentAt         time.Time `gorm:"not null;index" json:"sent_at"`
}

// HasParticipant reports whether userID is attached to the conversation.
func (c *Conversation) HasParticipant(userID uint) bool {
	for _, p := range c.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// Participant returns the membership row for userID, if any.
func (c *Conversation) Participant(userID uint) *ConversationParticipant {
	for i := range c.Participants {
		if c.Participants[i].UserID == userID {
			return &c.Participants[i]
		}
	}
	return nil
}

// Counterpart returns the membership row of the other participant.
func (c *Conversation) Counterpart(userID uint) *ConversationParticipant {
	for i := range c.Participants {
		if c.Participants[i].UserID != userID {
			return &c.Participants[i]
		}
	}
	return nil
}
