package models

import "time"

// UserResponse is the account owner's view of their own record.
type UserResponse struct {
	UserID             uint               `json:"user_id"`
	Username           string             `json:"username"`
	Email              string             `json:"email"`
	FirstName          string             `json:"first_name"`
	LastName           string             `json:"last_name"`
	Role               UserRole           `json:"user_role"`
	AccountStatus      AccountStatus      `json:"account_status"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	ProfilePictureURL  string             `json:"profile_picture_url,omitempty"`
	DateJoined         time.Time          `json:"date_joined"`
	LastLogin          *time.Time         `json:"last_login,omitempty"`
}

// NewUserResponse converts u for its owner or an administrator.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		UserID:             u.ID,
		Username:           u.Username,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Role:               u.Role,
		AccountStatus:      u.AccountStatus,
		VerificationStatus: u.VerificationStatus,
		ProfilePictureURL:  u.ProfilePictureURL,
		DateJoined:         u.DateJoined,
		LastLogin:          u.LastLogin,
	}
}

// PublicUserResponse omits contact and account state.
type PublicUserResponse struct {
	UserID            uint      `json:"user_id"`
	Username          string    `json:"username"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty"`
	DateJoined        time.Time `json:"date_joined"`
	SellerRating      *float64  `json:"seller_rating"`
	ReviewCount       int64     `json:"review_count"`
}

// NewPublicUserResponse converts u with its aggregated seller rating.
func NewPublicUserResponse(u *User, rating SellerRating) PublicUserResponse {
	return PublicUserResponse{
		UserID:            u.ID,
		Username:          u.Username,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		ProfilePictureURL: u.ProfilePictureURL,
		DateJoined:        u.DateJoined,
		SellerRating:      rating.Average,
		ReviewCount:       rating.Count,
	}
}

// SellerRating aggregates a seller's reviews. Average is nil with no reviews.
type SellerRating struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}

// ProductResponse is the public listing view.
type ProductResponse struct {
	ProductID      uint           `json:"product_id"`
	UserID         uint           `json:"user_id"`
	SellerUsername string         `json:"seller_username,omitempty"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	Condition      string         `json:"condition"`
	CategoryID     *uint          `json:"category_id"`
	CategoryName   string         `json:"category_name,omitempty"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	Status         ProductStatus  `json:"status"`
	Images         []string       `json:"images"`
	SellerRating   *float64       `json:"seller_rating,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewProductResponse converts p. Seller, Category and Images are used when preloaded.
func NewProductResponse(p *Product) ProductResponse {
	resp := ProductResponse{
		ProductID:      p.ID,
		UserID:         p.UserID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Condition:      p.Condition,
		CategoryID:     p.CategoryID,
		ApprovalStatus: p.ApprovalStatus,
		Status:         p.Status,
		Images:         make([]string, 0, len(p.Images)),
		CreatedAt:      p.CreatedAt,
	}
	if p.Seller != nil {
		resp.SellerUsername = p.Seller.Username
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	for _, img := range p.Images {
		resp.Images = append(resp.Images, img.ImageURL)
	}
	return resp
}

// ProductSummary is the compact listing reference embedded in other views.
type ProductSummary struct {
	ProductID uint          `json:"product_id"`
	Name      string        `json:"name"`
	Price     float64       `json:"price"`
	Status    ProductStatus `json:"status"`
	ImageURL  string        `json:"image_url,omitempty"`
}

// NewProductSummary converts p, using its first image when preloaded.
func NewProductSummary(p *Product) ProductSummary {
	s := ProductSummary{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Status:    p.Status,
	}
	if len(p.Images) > 0 {
		s.ImageURL = p.Images[0].ImageURL
	}
	return s
}

// ParticipantResponse is one member of a conversation.
type ParticipantResponse struct {
	UserID     uint            `json:"user_id"`
	Username   string          `json:"username,omitempty"`
	Role       ParticipantRole `json:"role"`
	LastReadAt *time.Time      `json:"last_read_at"`
}

// NewParticipantResponse converts p. Username is set when User is preloaded.
func NewParticipantResponse(p *ConversationParticipant) ParticipantResponse {
	r := ParticipantResponse{
		UserID:     p.UserID,
		Role:       p.Role,
		LastReadAt: p.LastReadAt,
	}
	if p.User != nil {
		r.Username = p.User.Username
	}
	return r
}

// MessageResponse is one message in a thread.
type MessageResponse struct {
	MessageID      uint      `json:"message_id"`
	ConversationID uint      `json:"conversation_id"`
	SenderID       uint      `json:"sender_id"`
	SenderUsername string    `json:"sender_username,omitempty"`
	MessageText    string    `json:"message_text"`
	SentAt         time.Time `json:"sent_at"`
}

// NewMessageResponse converts m. SenderUsername is set when Sender is preloaded.
func NewMessageResponse(m *Message) MessageResponse {
	r := MessageResponse{
		MessageID:      m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		MessageText:    m.Body,
		SentAt:         m.SentAt,
	}
	if m.Sender != nil {
		r.SenderUsername = m.Sender.Username
	}
	return r
}

// ConversationResponse is a single conversation with its members.
type ConversationResponse struct {
	ConversationID uint                  `json:"conversation_id"`
	Subject        string                `json:"subject"`
	Status         ConversationStatus    `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
	LastUpdatedAt  time.Time             `json:"last_updated_at"`
	Product        *ProductSummary       `json:"product,omitempty"`
	Participants   []ParticipantResponse `json:"participants"`
}

// NewConversationResponse converts c with whatever associations are preloaded.
func NewConversationResponse(c *Conversation) ConversationResponse {
	r := ConversationResponse{
		ConversationID: c.ID,
		Subject:        c.Subject,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		LastUpdatedAt:  c.LastUpdatedAt,
		Participants:   make([]ParticipantResponse, 0, len(c.Participants)),
	}
	if c.Product != nil {
		summary := NewProductSummary(c.Product)
		r.Product = &summary
	}
	for i := range c.Participants {
		r.Participants = append(r.Participants, NewParticipantResponse(&c.Participants[i]))
	}
	return r
}

// ConversationSummary is one row of a user's inbox.
type ConversationSummary struct {
	ConversationID   uint                 `json:"conversation_id"`
	Subject          string               `json:"subject"`
	Status           ConversationStatus   `json:"status"`
	LastUpdatedAt    time.Time            `json:"last_updated_at"`
	Product          *ProductSummary      `json:"product,omitempty"`
	OtherParticipant *ParticipantResponse `json:"other_participant,omitempty"`
	UnreadCount      int64                `json:"unread_count"`
	MessageCount     int64                `json:"message_count"`
	LastMessage      string               `json:"last_message,omitempty"`
	LastMessageAt    *time.Time           `json:"last_message_at,omitempty"`
}

// WishlistItemResponse is one wishlisted product.
type WishlistItemResponse struct {
	WishlistID uint          `json:"wishlist_id"`
	ProductID  uint          `json:"product_id"`
	Name       string        `json:"name"`
	Price      float64       `json:"price"`
	Status     ProductStatus `json:"status"`
	ImageURL   string        `json:"image_url,omitempty"`
	Archived   bool          `json:"archived"`
	AddedAt    time.Time     `json:"added_at"`
}

// NewWishlistItemResponse converts e. Product must be preloaded.
func NewWishlistItemResponse(e *WishlistEntry) WishlistItemResponse {
	r := WishlistItemResponse{
		WishlistID: e.ID,
		ProductID:  e.ProductID,
		Archived:   e.Archived,
		AddedAt:    e.AddedAt,
	}
	if e.Product != nil {
		r.Name = e.Product.Name
		r.Price = e.Product.Price
		r.Status = e.Product.Status
		if len(e.Product.Images) > 0 {
			r.ImageURL = e.Product.Images[0].ImageURL
		}
	}
	return r
}

// ReviewResponse is one seller review.
type ReviewResponse struct {
	ReviewID         uint      `json:"review_id"`
	SellerID         uint      `json:"seller_id"`
	ReviewerID       uint      `json:"reviewer_id"`
	ReviewerUsername string    `json:"reviewer_username,omitempty"`
	Rating           int       `json:"rating"`
	Comment          string    `json:"comment"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewReviewResponse converts r. ReviewerUsername is set when Reviewer is preloaded.
func NewReviewResponse(r *Review) ReviewResponse {
	resp := ReviewResponse{
		ReviewID:   r.ID,
		SellerID:   r.SellerID,
		ReviewerID: r.ReviewerID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
	if r.Reviewer != nil {
		resp.ReviewerUsername = r.Reviewer.Username
	}
	return resp
}
