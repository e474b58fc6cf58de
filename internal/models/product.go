package models

import "time"

// ApprovalStatus is the moderation gate for a listing.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ProductStatus tracks whether a listing is still for sale.
type ProductStatus string

const (
	ProductActive ProductStatus = "active"
	ProductSold   ProductStatus = "sold"
)

// Product is a listing owned by exactly one seller.
type Product struct {
	ID             uint           `gorm:"primaryKey" json:"product_id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Seller         *User          `gorm:"foreignKey:UserID" json:"-"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Price          float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	Condition      string         `gorm:"size:32" json:"condition"`
	CategoryID     *uint          `gorm:"index" json:"category_id"`
	Category       *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ApprovalStatus ApprovalStatus `gorm:"size:16;not null;default:'pending';index" json:"approval_status"`
	Status         ProductStatus  `gorm:"size:16;not null;default:'active';index" json:"status"`
	Images         []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ProductImage is one stored image reference, ordered by Position.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"image_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	ImageURL  string    `gorm:"size:512;not null" json:"image_url"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// Category groups listings for browsing.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"category_id"`
	Name string `gorm:"size:64;uniqueIndex;not null" json:"name"`
}
