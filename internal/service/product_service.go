package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gatormarket/internal/config"
	"gatormarket/internal/middleware"
	"gatormarket/internal/models"
	"gatormarket/internal/repository"
)

// DefaultMaxActiveProducts caps unsold listings per seller.
const DefaultMaxActiveProducts = 100

// ProductService implements listing creation, search and owner actions.
type ProductService struct {
	products  repository.ProductRepository
	reviews   repository.ReviewRepository
	images    *ImageService
	maxActive int64
}

// NewProductService returns a new ProductService.
func NewProductService(
	products repository.ProductRepository,
	reviews repository.ReviewRepository,
	images *ImageService,
	cfg *config.Config,
) *ProductService {
	maxActive := int64(DefaultMaxActiveProducts)
	if cfg != nil && cfg.MaxActiveProducts > 0 {
		maxActive = int64(cfg.MaxActiveProducts)
	}
	return &ProductService{
		products:  products,
		reviews:   reviews,
		images:    images,
		maxActive: maxActive,
	}
}

// CreateProductInput is a new listing with its uploaded images.
type CreateProductInput struct {
	UserID      uint
	Name        string
	Description string
	Price       float64
	Condition   string
	CategoryID  *uint
	Images      []UploadImageInput
}

// UpdateProductInput holds the editable listing fields. Nil fields are left unchanged.
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Condition   *string  `json:"condition"`
	CategoryID  *uint    `json:"category_id"`
}

// ProductDetail is a listing with its seller's aggregate rating.
type ProductDetail struct {
	Product *models.Product
	Rating  models.SellerRating
}

// Create stores a pending listing. Every image is validated before any is
// written, and written files are removed if the listing cannot be saved.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, models.NewValidationError("Product name is required")
	}
	if in.Price < 0 {
		return nil, models.NewValidationError("Price must not be negative")
	}
	if len(in.Images) == 0 {
		return nil, models.NewValidationError("At least one image is required for the product")
	}

	active, err := s.products.CountActiveByUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if active >= s.maxActive {
		return nil, models.NewValidationError(fmt.Sprintf("You have reached the maximum limit of %d active products", s.maxActive))
	}

	if in.CategoryID != nil {
		if err := s.requireCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}

	for _, img := range in.Images {
		if err := s.images.Validate(img); err != nil {
			return nil, err
		}
	}

	product := &models.Product{
		UserID:         in.UserID,
		Name:           in.Name,
		Description:    strings.TrimSpace(in.Description),
		Price:          in.Price,
		Condition:      strings.TrimSpace(in.Condition),
		CategoryID:     in.CategoryID,
		ApprovalStatus: models.ApprovalPending,
		Status:         models.ProductActive,
	}

	stored := make([]string, 0, len(in.Images))
	discard := func() {
		for _, url := range stored {
			s.images.Discard(url)
		}
	}
	for i, img := range in.Images {
		img.UserID = in.UserID
		saved, err := s.images.Store(ctx, img)
		if err != nil {
			discard()
			return nil, err
		}
		stored = append(stored, saved.URL)
		product.Images = append(product.Images, models.ProductImage{ImageURL: saved.URL, Position: i})
	}

	if err := s.products.Create(ctx, product); err != nil {
		discard()
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "product created",
		slog.Uint64("product_id", uint64(product.ID)),
		slog.Uint64("user_id", uint64(in.UserID)),
		slog.Int("images", len(stored)),
	)
	return product, nil
}

// UploadImage stores a single validated image outside any listing.
func (s *ProductService) UploadImage(ctx context.Context, in UploadImageInput) (*StoredImage, error) {
	return s.images.Store(ctx, in)
}

// Get returns a listing with its seller rating.
func (s *ProductService) Get(ctx context.Context, id uint) (*ProductDetail, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rating, err := s.reviews.SellerRating(ctx, product.UserID)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: product, Rating: rating}, nil
}

// Search lists approved listings matching f.
func (s *ProductService) Search(ctx context.Context, f repository.ProductFilter) ([]models.Product, int64, error) {
	return s.products.Search(ctx, f)
}

// Categories lists every category by name.
func (s *ProductService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.products.ListCategories(ctx)
}

// Update applies in to a listing owned by userID.
func (s *ProductService) Update(ctx context.Context, userID, productID uint, in UpdateProductInput) (*models.Product, error) {
	if _, err := s.ownedProduct(ctx, userID, productID, "update"); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Product name is required")
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, models.NewValidationError("Price must not be negative")
		}
		fields["price"] = *in.Price
	}
	if in.Condition != nil {
		fields["condition"] = strings.TrimSpace(*in.Condition)
	}
	if in.CategoryID != nil {
		if err := s.requireCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *in.CategoryID
	}

	if len(fields) > 0 {
		if err := s.products.Update(ctx, productID, fields); err != nil {
			return nil, err
		}
	}
	return s.products.GetByID(ctx, productID)
}

// Delete removes a listing owned by userID and everything attached to it.
func (s *ProductService) Delete(ctx context.Context, userID, productID uint) error {
	product, err := s.ownedProduct(ctx, userID, productID, "delete")
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}
	for _, img := range product.Images {
		s.images.Discard(img.ImageURL)
	}
	middleware.Logger.InfoContext(ctx, "product deleted", slog.Uint64("product_id", uint64(productID)))
	return nil
}

// MarkSold flags a listing owned by userID as sold.
func (s *ProductService) MarkSold(ctx context.Context, userID, productID uint) error {
	if _, err := s.ownedProduct(ctx, userID, productID, "mark"); err != nil {
		return err
	}
	return s.products.MarkSold(ctx, productID)
}

func (s *ProductService) ownedProduct(ctx context.Context, userID, productID uint, verb string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.UserID != userID {
		return nil, models.NewForbiddenError(fmt.Sprintf("Unauthorized to %s this product", verb))
	}
	return product, nil
}

func (s *ProductService) requireCategory(ctx context.Context, id uint) error {
	ok, err := s.products.CategoryExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewValidationError("Invalid category")
	}
	return nil
}
