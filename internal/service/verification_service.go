package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gatormarket/internal/config"
	"gatormarket/internal/mailer"
	"gatormarket/internal/middleware"
	"gatormarket/internal/models"
	"gatormarket/internal/observability"
	"gatormarket/internal/repository"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

const (
	// VerificationTokenTTL bounds how long a verification link stays usable.
	VerificationTokenTTL = 24 * time.Hour
	// ResendCooldown is the minimum gap between two verification emails.
	ResendCooldown = 90 * time.Second

	mailWarning = "Verification email could not be sent. Please request a new one later."
)

// VerificationService owns the email verification lifecycle and the sweep of
// accounts that never completed it.
type VerificationService struct {
	db             *gorm.DB
	users          repository.UserRepository
	mailer         mailer.Mailer
	frontendOrigin string
	now            func() time.Time

	sweeping atomic.Bool
	wg       sync.WaitGroup
}

// NewVerificationService returns a new VerificationService.
func NewVerificationService(db *gorm.DB, users repository.UserRepository, m mailer.Mailer, cfg *config.Config) *VerificationService {
	origin := "http://localhost:5173"
	if cfg != nil && cfg.FrontendOrigin != "" {
		origin = cfg.FrontendOrigin
	}
	return &VerificationService{
		db:             db,
		users:          users,
		mailer:         m,
		frontendOrigin: origin,
		now:            utcNow,
	}
}

// SendResult carries a non-fatal delivery warning.
type SendResult struct {
	Warning string
}

// Send issues a fresh token for email and mails the links. The throttle is
// checked and the new token stored under a row lock, so concurrent requests
// for one account send at most one email per cooldown.
func (s *VerificationService) Send(ctx context.Context, email string) (*SendResult, error) {
	s.TriggerSweep(ctx)

	if email == "" {
		return nil, models.NewValidationError("Email is required")
	}

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		locked, err := users.LockByEmail(ctx, email)
		if err != nil {
			return err
		}
		if locked == nil {
			return models.NewNotFoundMessage("User not found")
		}
		if locked.IsVerified() {
			return models.NewValidationError("Email already verified")
		}
		if locked.TokenCreatedAt != nil && s.now().Sub(*locked.TokenCreatedAt) < ResendCooldown {
			return models.NewRateLimitedError("Please wait a few minutes before requesting another email")
		}
		if err := s.reserve(ctx, users, locked); err != nil {
			return err
		}
		user = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SendResult{Warning: s.deliver(ctx, user)}, nil
}

// issue stores a new token on user and mails it. A delivery failure is
// returned as a warning string, not an error.
func (s *VerificationService) issue(ctx context.Context, user *models.User) (string, error) {
	if err := s.reserve(ctx, s.users, user); err != nil {
		return "", err
	}
	return s.deliver(ctx, user), nil
}

func (s *VerificationService) reserve(ctx context.Context, users repository.UserRepository, user *models.User) error {
	token := uuid.NewString()
	issuedAt := s.now()
	if err := users.UpdateFields(ctx, user.ID, map[string]interface{}{
		"verification_token": token,
		"token_created_at":   issuedAt,
	}); err != nil {
		return err
	}
	user.VerificationToken = &token
	user.TokenCreatedAt = &issuedAt
	return nil
}

func (s *VerificationService) deliver(ctx context.Context, user *models.User) string {
	verifyURL, deleteURL := mailer.VerificationLinks(s.frontendOrigin, *user.VerificationToken)
	msg, err := mailer.VerificationEmail(user.Email, user.FirstName, verifyURL, deleteURL)
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		middleware.VerificationEmails.WithLabelValues("failed").Inc()
		middleware.Logger.WarnContext(ctx, "verification email not sent",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()),
		)
		return mailWarning
	}

	middleware.VerificationEmails.WithLabelValues("sent").Inc()
	return ""
}

func (s *VerificationService) expired(u *models.User) bool {
	return u.TokenCreatedAt == nil || s.now().Sub(*u.TokenCreatedAt) > VerificationTokenTTL
}

// Confirm marks the token's account verified. The token is single use.
func (s *VerificationService) Confirm(ctx context.Context, token string) error {
	if token == "" {
		return models.NewValidationError("Token is required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		user, err := users.GetByVerificationToken(ctx, token, true)
		if err != nil {
			return err
		}
		if user == nil {
			return models.NewValidationError("Invalid token")
		}
		if user.IsVerified() {
			return models.NewValidationError("Email already verified")
		}
		if s.expired(user) {
			return models.NewValidationError("Token has expired")
		}

		if err := users.UpdateFields(ctx, user.ID, map[string]interface{}{
			"verification_status": models.VerificationVerified,
			"verification_token":  nil,
			"token_created_at":    nil,
		}); err != nil {
			return err
		}
		middleware.Logger.InfoContext(ctx, "email verified", slog.Uint64("user_id", uint64(user.ID)))
		return nil
	})
}

// DeleteUnverified removes the account that owns token, provided it was never verified.
func (s *VerificationService) DeleteUnverified(ctx context.Context, token string) error {
	if token == "" {
		return models.NewValidationError("Token is required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		user, err := users.GetByVerificationToken(ctx, token, true)
		if err != nil {
			return err
		}
		if user == nil {
			return models.NewValidationError("Invalid or expired token")
		}
		if user.IsVerified() {
			return models.NewForbiddenError("Cannot delete verified accounts through this method")
		}
		if s.expired(user) {
			return models.NewValidationError("Token has expired")
		}

		if err := users.DeleteWithContent(ctx, user.ID); err != nil {
			return err
		}
		middleware.Logger.InfoContext(ctx, "unverified account deleted by owner", slog.Uint64("user_id", uint64(user.ID)))
		return nil
	})
}

// TriggerSweep starts SweepExpired in the background unless one is already
// running. Failures are logged and never reach the caller.
func (s *VerificationService) TriggerSweep(ctx context.Context) {
	if !s.sweeping.CompareAndSwap(false, true) {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.sweeping.Store(false)

		sweepCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Minute)
		defer cancel()
		if _, err := s.SweepExpired(sweepCtx); err != nil {
			middleware.Logger.ErrorContext(sweepCtx, "unverified account sweep failed", slog.String("error", err.Error()))
		}
	}()
}

// Wait blocks until background sweeps have finished.
func (s *VerificationService) Wait() {
	s.wg.Wait()
}

// SweepExpired deletes unverified accounts whose token is older than
// VerificationTokenTTL. Each account is removed in its own transaction.
func (s *VerificationService) SweepExpired(ctx context.Context) (deleted int, err error) {
	ctx, span := observability.StartSpan(ctx, "verification", "sweep")
	defer func() {
		span.SetAttributes(attribute.Int("sweep.deleted", deleted))
		observability.EndSpan(span, err)
	}()

	cutoff := s.now().Add(-VerificationTokenTTL)
	ids, err := s.users.ListExpiredUnverified(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	var failures []error
	for _, id := range ids {
		removed := false
		txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			users := repository.NewUserRepository(tx)
			user, err := users.LockExpiredUnverified(ctx, id, cutoff)
			if err != nil || user == nil {
				return err
			}
			if err := users.DeleteWithContent(ctx, id); err != nil {
				return err
			}
			removed = true
			return nil
		})
		if txErr != nil {
			middleware.Logger.WarnContext(ctx, "failed to remove unverified account",
				slog.Uint64("user_id", uint64(id)),
				slog.String("error", txErr.Error()),
			)
			failures = append(failures, txErr)
			continue
		}
		if removed {
			deleted++
			middleware.SweepDeletedUsers.Inc()
		}
	}

	if deleted > 0 {
		middleware.Logger.InfoContext(ctx, "removed expired unverified accounts", slog.Int("count", deleted))
	}
	return deleted, errors.Join(failures...)
}
