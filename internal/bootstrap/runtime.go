// Package bootstrap wires the datastore and Redis connections and performs
// one-time startup work.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gatormarket/internal/cache"
	"gatormarket/internal/config"
	"gatormarket/internal/database"
	"gatormarket/internal/middleware"
	"gatormarket/internal/models"
	"gatormarket/internal/seed"
	"gatormarket/internal/service"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	Migrate        bool
	SeedCategories bool
}

// InitRuntime connects to the database and Redis, migrates the schema and
// runs startup data fixes. A nil Redis client means Redis was unreachable.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.Migrate {
		if err := database.Migrate(db); err != nil {
			return nil, nil, err
		}
	}

	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "continuing without redis", slog.String("error", err.Error()))
		rdb = nil
	}

	if err := Prepare(ctx, cfg, db, opts); err != nil {
		return nil, nil, err
	}
	return db, rdb, nil
}

// Prepare runs startup data work against an open database.
func Prepare(ctx context.Context, cfg *config.Config, db *gorm.DB, opts Options) error {
	if err := ensureDevRootAdmin(cfg, db); err != nil {
		return fmt.Errorf("failed to bootstrap development root admin: %w", err)
	}
	if opts.SeedCategories {
		if err := seed.Categories(db); err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
	}
	if _, err := service.MigrateLegacyBookmarks(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate legacy bookmarks: %w", err)
	}
	return nil
}

// ensureDevRootAdmin creates or promotes a verified admin account in
// development when DEV_BOOTSTRAP_ROOT is set.
func ensureDevRootAdmin(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return nil
	}

	username := strings.TrimSpace(cfg.DevRootUsername)
	if username == "" {
		username = "gator_root"
	}
	email := strings.TrimSpace(strings.ToLower(cfg.DevRootEmail))
	if email == "" {
		email = "root@" + cfg.AllowedEmailDomain
	}
	if cfg.DevRootPassword == "" {
		return errors.New("DEV_ROOT_PASSWORD must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.DevRootPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var root models.User
		findErr := tx.Where("username = ?", username).First(&root).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.User{
				Username:           username,
				Email:              email,
				Password:           string(hashedPassword),
				FirstName:          "Gator",
				LastName:           "Root",
				Role:               models.RoleAdmin,
				AccountStatus:      models.AccountActive,
				VerificationStatus: models.VerificationVerified,
			}
			return tx.Create(&root).Error
		case findErr != nil:
			return findErr
		default:
			return tx.Model(&models.User{}).Where("id = ?", root.ID).Updates(map[string]interface{}{
				"role":                models.RoleAdmin,
				"account_status":      models.AccountActive,
				"verification_status": models.VerificationVerified,
			}).Error
		}
	})
	if err != nil {
		return err
	}

	middleware.Logger.Info("development root admin ensured", slog.String("username", username))
	return nil
}
