package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"gatormarket/internal/models"

	"gorm.io/gorm"
)

// ProductFilter narrows a catalog search. Zero values mean "any".
type ProductFilter struct {
	Term       string
	CategoryID uint
	UserID     uint
	Limit      int
	Offset     int
}

// ProductRepository defines persistence operations for listings.
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Search(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	CountActiveByUser(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	ListPending(ctx context.Context, limit, offset int) ([]models.Product, error)
	MarkSold(ctx context.Context, id uint) error
	ApprovalForImage(ctx context.Context, imageURL string) (models.ApprovalStatus, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CategoryExists(ctx context.Context, id uint) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository returns a new ProductRepository implementation.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Seller").
		Preload("Category").
		Preload("Images", orderedImages).
		First(&product, id).Error
	if err != nil {
		return nil, notFoundOr(err, "Product", id)
	}
	return &product, nil
}

// Search returns approved listings. Without a user filter only active
// listings are returned; a seller's page also shows sold items.
func (r *productRepository) Search(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("products.approval_status = ?", models.ApprovalApproved)
		if f.UserID != 0 {
			db = db.Where("products.user_id = ?", f.UserID)
		} else {
			db = db.Where("products.status = ?", models.ProductActive)
		}
		if f.CategoryID != 0 {
			db = db.Where("products.category_id = ?", f.CategoryID)
		}
		if term := strings.TrimSpace(f.Term); term != "" {
			like := "%" + strings.ToLower(term) + "%"
			db = db.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", like, like)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var products []models.Product
	err := r.db.WithContext(ctx).
		Scopes(filter).
		Preload("Seller").
		Preload("Category").
		Preload("Images", orderedImages).
		Order("products.created_at DESC, products.id DESC").
		Limit(clampLimit(f.Limit, 20, 100)).
		Offset(f.Offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return products, total, nil
}

// CountActiveByUser counts unsold listings regardless of approval state.
func (r *productRepository) CountActiveByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("user_id = ? AND status = ?", userID, models.ProductActive).
		Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *productRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Product", id)
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteProducts(tx, []uint{id})
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// deleteProducts removes listings along with their wishlist entries,
// conversations, reports and images. Callers own the transaction.
func deleteProducts(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("product_id IN ?", ids).Delete(&models.WishlistEntry{}).Error; err != nil {
		return err
	}

	convIDs := tx.Model(&models.Conversation{}).Select("id").Where("product_id IN ?", ids)
	if err := tx.Where("conversation_id IN (?)", convIDs).Delete(&models.Message{}).Error; err != nil {
		return err
	}
	if err := tx.Where("conversation_id IN (?)", convIDs).Delete(&models.ConversationParticipant{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id IN ?", ids).Delete(&models.Conversation{}).Error; err != nil {
		return err
	}

	if err := tx.Where("product_id IN ?", ids).Delete(&models.ListingReport{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id IN ?", ids).Delete(&models.ProductImage{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Product{}).Error
}

func (r *productRepository) ListPending(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("approval_status = ?", models.ApprovalPending).
		Preload("Seller").
		Preload("Category").
		Preload("Images", orderedImages).
		Order("created_at ASC, id ASC").
		Limit(clampLimit(limit, 50, 100)).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return products, nil
}

// MarkSold flips the listing to sold and re-arms wishlist notifications.
// Marking an already sold listing again is a no-op.
func (r *productRepository) MarkSold(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND status <> ?", id, models.ProductSold).
			Update("status", models.ProductSold)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		}
		return tx.Model(&models.WishlistEntry{}).
			Where("product_id = ?", id).
			Update("notified", false).Error
	})
	if err != nil {
		return notFoundOr(err, "Product", id)
	}
	return nil
}

// ApprovalForImage returns the approval state of the listing that owns imageURL.
func (r *productRepository) ApprovalForImage(ctx context.Context, imageURL string) (models.ApprovalStatus, error) {
	var status string
	err := r.db.WithContext(ctx).
		Model(&models.ProductImage{}).
		Select("products.approval_status").
		Joins("JOIN products ON products.id = product_images.product_id").
		Where("product_images.image_url = ?", imageURL).
		Limit(1).
		Row().Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", models.NewNotFoundMessage("Image not found")
		}
		return "", models.NewInternalError(err)
	}
	return models.ApprovalStatus(status), nil
}

func (r *productRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *productRepository) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return n > 0, nil
}
