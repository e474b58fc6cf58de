package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gatormarket/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	LockByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByVerificationToken(ctx context.Context, token string, forUpdate bool) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	ListExpiredUnverified(ctx context.Context, cutoff time.Time) ([]uint, error)
	LockExpiredUnverified(ctx context.Context, id uint, cutoff time.Time) (*models.User, error)
	DeleteWithContent(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFoundOr(err, "User", id)
	}
	return &user, nil
}

func (r *userRepository) findOne(ctx context.Context, query string, arg interface{}, forUpdate bool) (*models.User, error) {
	var user models.User
	q := r.db.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetByEmail returns nil, nil when no account uses email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "LOWER(email) = ?", strings.ToLower(email), false)
}

// LockByEmail is GetByEmail holding a row lock until the surrounding
// transaction ends.
func (r *userRepository) LockByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "LOWER(email) = ?", strings.ToLower(email), true)
}

// GetByUsername returns nil, nil when the username is free.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username = ?", username, false)
}

// GetByVerificationToken returns nil, nil for an unknown token. Pass
// forUpdate inside a transaction to hold the row until commit.
func (r *userRepository) GetByVerificationToken(ctx context.Context, token string, forUpdate bool) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	return r.findOne(ctx, "verification_token = ?", token, forUpdate)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			msg := strings.ToLower(err.Error())
			switch {
			case strings.Contains(msg, "email"):
				return models.NewConflictError("Email already exists")
			case strings.Contains(msg, "username"):
				return models.NewConflictError("Username already exists")
			}
			return models.NewConflictError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(clampLimit(limit, 50, 100)).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// expiredTokenClause matches a token issued before cutoff, or no token at all
// on an account that joined before cutoff.
const expiredTokenClause = "(token_created_at < ? OR (token_created_at IS NULL AND date_joined < ?))"

// ListExpiredUnverified returns unverified accounts whose token predates cutoff.
func (r *userRepository) ListExpiredUnverified(ctx context.Context, cutoff time.Time) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("verification_status = ?", models.VerificationUnverified).
		Where(expiredTokenClause, cutoff, cutoff).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// LockExpiredUnverified re-reads id under a row lock and returns nil, nil if
// it no longer qualifies for removal.
func (r *userRepository) LockExpiredUnverified(ctx context.Context, id uint, cutoff time.Time) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Where("verification_status = ?", models.VerificationUnverified).
		Where(expiredTokenClause, cutoff, cutoff).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// DeleteWithContent removes the user and every row that references them.
func (r *userRepository) DeleteWithContent(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.WishlistEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.ConversationParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reporter_id = ? OR reported_user_id = ?", id, id).Delete(&models.UserReport{}).Error; err != nil {
			return err
		}
		if err := tx.Where("seller_id = ? OR reviewer_id = ?", id, id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("reporter_id = ?", id).Delete(&models.ListingReport{}).Error; err != nil {
			return err
		}

		var productIDs []uint
		if err := tx.Model(&models.Product{}).Where("user_id = ?", id).Pluck("id", &productIDs).Error; err != nil {
			return err
		}
		if err := deleteProducts(tx, productIDs); err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return notFoundOr(err, "User", id)
	}
	return nil
}
