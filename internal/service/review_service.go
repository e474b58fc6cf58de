package service

import (
	"context"
	"fmt"
	"strings"

	"gatormarket/internal/models"
	"gatormarket/internal/repository"
)

// ReviewService records seller reviews and aggregates ratings.
type ReviewService struct {
	reviews repository.ReviewRepository
	users   repository.UserRepository
}

// NewReviewService returns a new ReviewService.
func NewReviewService(reviews repository.ReviewRepository, users repository.UserRepository) *ReviewService {
	return &ReviewService{reviews: reviews, users: users}
}

// CreateReviewInput is a rating left by ReviewerID for SellerID.
type CreateReviewInput struct {
	ReviewerID uint   `json:"-"`
	SellerID   uint   `json:"seller_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

func (s *ReviewService) Create(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	if in.SellerID == 0 {
		return nil, models.NewValidationError("Missing field: seller_id")
	}
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return nil, models.NewValidationError(fmt.Sprintf("Rating must be between %d and %d", models.MinRating, models.MaxRating))
	}
	if in.SellerID == in.ReviewerID {
		return nil, models.NewValidationError("You cannot review yourself")
	}
	if _, err := s.users.GetByID(ctx, in.SellerID); err != nil {
		return nil, err
	}

	review := &models.Review{
		SellerID:   in.SellerID,
		ReviewerID: in.ReviewerID,
		Rating:     in.Rating,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// List returns sellerID's reviews newest first with the aggregate rating.
func (s *ReviewService) List(ctx context.Context, sellerID uint) ([]models.Review, models.SellerRating, error) {
	reviews, err := s.reviews.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, models.SellerRating{}, err
	}
	rating, err := s.reviews.SellerRating(ctx, sellerID)
	if err != nil {
		return nil, models.SellerRating{}, err
	}
	return reviews, rating, nil
}
