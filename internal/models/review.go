package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a buyer's rating of a seller. A reviewer may post many.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"review_id"`
	SellerID   uint      `gorm:"not null;index" json:"seller_id"`
	ReviewerID uint      `gorm:"not null;index" json:"reviewer_id"`
	Reviewer   *User     `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
