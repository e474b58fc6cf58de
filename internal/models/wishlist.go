package models

import "time"

// WishlistEntry records a user's interest in a product.
type WishlistEntry struct {
	ID        uint      `gorm:"primaryKey" json:"wishlist_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Archived  bool      `gorm:"not null;default:false" json:"archived"`
	Notified  bool      `gorm:"not null;default:false" json:"notified"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// TableName keeps the historical table name.
func (WishlistEntry) TableName() string {
	return "wishlist"
}
