package repository

import (
	"context"
	"database/sql"

	"gatormarket/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines persistence operations for seller reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListBySeller(ctx context.Context, sellerID uint) ([]models.Review, error)
	SellerRating(ctx context.Context, sellerID uint) (models.SellerRating, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) ListBySeller(ctx context.Context, sellerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Preload("Reviewer").
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

// SellerRating averages every review of sellerID.
func (r *reviewRepository) SellerRating(ctx context.Context, sellerID uint) (models.SellerRating, error) {
	var row struct {
		Average sql.NullFloat64
		Count   int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("seller_id = ?", sellerID).
		Scan(&row).Error
	if err != nil {
		return models.SellerRating{}, models.NewInternalError(err)
	}

	rating := models.SellerRating{Count: row.Count}
	if row.Average.Valid && row.Count > 0 {
		avg := row.Average.Float64
		rating.Average = &avg
	}
	return rating, nil
}
