package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"gatormarket/internal/middleware"
	"gatormarket/internal/models"
	"gatormarket/internal/repository"

	"gorm.io/gorm"
)

// WishlistService tracks products users are watching.
type WishlistService struct {
	wishlist repository.WishlistRepository
	products repository.ProductRepository
}

// NewWishlistService returns a new WishlistService.
func NewWishlistService(wishlist repository.WishlistRepository, products repository.ProductRepository) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

// Add puts an approved product on userID's wishlist. Repeating it is a no-op
// and reports created=false.
func (s *WishlistService) Add(ctx context.Context, userID, productID uint) (bool, error) {
	if productID == 0 {
		return false, models.NewValidationError("Product ID is required")
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if product.ApprovalStatus != models.ApprovalApproved {
		return false, models.NewValidationError("Product is not available")
	}
	return s.wishlist.Add(ctx, userID, productID)
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID uint) error {
	removed, err := s.wishlist.Remove(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFoundMessage("Item not found in wishlist")
	}
	return nil
}

func (s *WishlistService) Archive(ctx context.Context, userID, productID uint) error {
	archived, err := s.wishlist.Archive(ctx, userID, productID)
	if err != nil {
		return err
	}
	if !archived {
		return models.NewNotFoundMessage("Item not found in wishlist")
	}
	return nil
}

// List returns active entries, or archived ones when archived is set.
func (s *WishlistService) List(ctx context.Context, userID uint, archived bool) ([]models.WishlistEntry, error) {
	return s.wishlist.List(ctx, userID, archived)
}

// Notifications returns wishlisted products sold since the previous call.
func (s *WishlistService) Notifications(ctx context.Context, userID uint) ([]models.WishlistEntry, error) {
	return s.wishlist.ConsumeSoldNotifications(ctx, userID)
}

// Contains reports whether productID is on userID's wishlist.
func (s *WishlistService) Contains(ctx context.Context, userID, productID uint) (bool, error) {
	return s.wishlist.Exists(ctx, userID, productID)
}

// MigrateLegacyBookmarks moves product IDs from the old users.bookmarks JSON
// column into the wishlist table and clears the column. Unknown products
// are skipped. It returns the number of entries created.
func MigrateLegacyBookmarks(ctx context.Context, db *gorm.DB) (int, error) {
	var users []models.User
	if err := db.WithContext(ctx).
		Select("id", "bookmarks").
		Where("bookmarks IS NOT NULL AND bookmarks <> ?", "").
		Find(&users).Error; err != nil {
		return 0, models.NewInternalError(err)
	}

	created := 0
	for _, u := range users {
		ids, err := parseLegacyBookmarks(u.LegacyBookmarks)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "skipping unreadable bookmarks",
				slog.Uint64("user_id", uint64(u.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			wishlist := repository.NewWishlistRepository(tx)
			for _, productID := range ids {
				var n int64
				if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&n).Error; err != nil {
					return err
				}
				if n == 0 {
					continue
				}
				ok, err := wishlist.Add(ctx, u.ID, productID)
				if err != nil {
					return err
				}
				if ok {
					created++
				}
			}
			return tx.Model(&models.User{}).Where("id = ?", u.ID).Update("bookmarks", "").Error
		})
		if err != nil {
			return created, models.NewInternalError(err)
		}
	}

	if created > 0 {
		middleware.Logger.InfoContext(ctx, "migrated legacy bookmarks", slog.Int("entries", created))
	}
	return created, nil
}

// parseLegacyBookmarks accepts a JSON array of numbers or numeric strings.
func parseLegacyBookmarks(raw string) ([]uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var values []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		s := strings.Trim(string(v), `"`)
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
