package repository

import (
	"context"

	"gatormarket/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository defines persistence operations for wishlist entries.
type WishlistRepository interface {
	Add(ctx context.Context, userID, productID uint) (bool, error)
	Remove(ctx context.Context, userID, productID uint) (bool, error)
	Archive(ctx context.Context, userID, productID uint) (bool, error)
	Exists(ctx context.Context, userID, productID uint) (bool, error)
	List(ctx context.Context, userID uint, archived bool) ([]models.WishlistEntry, error)
	ConsumeSoldNotifications(ctx context.Context, userID uint) ([]models.WishlistEntry, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository returns a new WishlistRepository implementation.
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// Add inserts the entry and reports whether a new row was written.
func (r *wishlistRepository) Add(ctx context.Context, userID, productID uint) (bool, error) {
	entry := models.WishlistEntry{UserID: userID, ProductID: productID}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(&entry)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistEntry{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *wishlistRepository) Archive(ctx context.Context, userID, productID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.WishlistEntry{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("archived", true)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *wishlistRepository) Exists(ctx context.Context, userID, productID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.WishlistEntry{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&n).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}

func (r *wishlistRepository) List(ctx context.Context, userID uint, archived bool) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND archived = ?", userID, archived).
		Preload("Product.Images", orderedImages).
		Order("added_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

// ConsumeSoldNotifications returns entries whose product sold since the last
// call and marks them delivered in the same transaction.
func (r *wishlistRepository) ConsumeSoldNotifications(ctx context.Context, userID uint) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.WishlistEntry{}).
			Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "wishlist"}}).
			Joins("JOIN products ON products.id = wishlist.product_id").
			Where("wishlist.user_id = ? AND wishlist.notified = ?", userID, false).
			Where("products.status = ?", models.ProductSold).
			Order("wishlist.id ASC").
			Pluck("wishlist.id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Model(&models.WishlistEntry{}).
			Where("id IN ?", ids).
			Update("notified", true).Error; err != nil {
			return err
		}

		return tx.Where("id IN ?", ids).
			Preload("Product.Images", orderedImages).
			Order("id ASC").
			Find(&entries).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}
