// Package service provides application business logic for accounts, listings,
// messaging, wishlists and moderation.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"gatormarket/internal/auth"
	"gatormarket/internal/config"
	"gatormarket/internal/middleware"
	"gatormarket/internal/models"
	"gatormarket/internal/repository"
	"gatormarket/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and session tokens.
type AuthService struct {
	users        repository.UserRepository
	reviews      repository.ReviewRepository
	tokens       *auth.TokenManager
	verification *VerificationService
	emailDomain  string
	bcryptCost   int
	now          func() time.Time
}

// NewAuthService returns a new AuthService.
func NewAuthService(
	users repository.UserRepository,
	reviews repository.ReviewRepository,
	tokens *auth.TokenManager,
	verification *VerificationService,
	cfg *config.Config,
) *AuthService {
	domain := "sfsu.edu"
	if cfg != nil && cfg.AllowedEmailDomain != "" {
		domain = cfg.AllowedEmailDomain
	}
	return &AuthService{
		users:        users,
		reviews:      reviews,
		tokens:       tokens,
		verification: verification,
		emailDomain:  domain,
		bcryptCost:   bcrypt.DefaultCost,
		now:          utcNow,
	}
}

// RegisterResult is a created account plus an optional delivery warning.
type RegisterResult struct {
	User    *models.User
	Warning string
}

// LoginResult is a freshly issued session.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Register validates in, creates an unverified account and sends the
// verification email.
func (s *AuthService) Register(ctx context.Context, in validation.Registration) (*RegisterResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if errs := in.Validate(s.emailDomain); errs != nil {
		return nil, FieldErrors(errs)
	}

	existing, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Username already exists")
	}
	existing, err = s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:           in.Username,
		Email:              in.Email,
		Password:           string(hash),
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		Role:               models.RoleUser,
		AccountStatus:      models.AccountActive,
		VerificationStatus: models.VerificationUnverified,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "user registered", slog.Uint64("user_id", uint64(user.ID)))

	result := &RegisterResult{User: user}
	if s.verification == nil {
		return result, nil
	}
	warning, err := s.verification.issue(ctx, user)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "failed to store verification token",
			slog.Uint64("user_id", uint64(user.ID)),
			slog.String("error", err.Error()),
		)
		warning = mailWarning
	}
	result.Warning = warning
	return result, nil
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if !user.IsActive() {
		return nil, errAccountInactive()
	}
	if !user.IsVerified() {
		return nil, errEmailNotVerified()
	}

	now := s.now()
	if err := s.users.UpdateFields(ctx, user.ID, map[string]interface{}{"last_login": now}); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	return s.issueSession(user)
}

// Refresh reissues a token for an already authenticated user.
func (s *AuthService) Refresh(_ context.Context, user *models.User) (*LoginResult, error) {
	if !user.IsActive() {
		return nil, errAccountInactive()
	}
	if !user.IsVerified() {
		return nil, errEmailNotVerified()
	}
	return s.issueSession(user)
}

// TokenForVerifiedEmail issues a session for a verified account identified
// only by email. It backs the legacy post-verification sign-in flow.
func (s *AuthService) TokenForVerifiedEmail(ctx context.Context, email string) (*LoginResult, error) {
	if email == "" {
		return nil, models.NewValidationError("Email is required")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundMessage("User not found")
	}
	if !user.IsVerified() {
		return nil, models.NewForbiddenError("Email not verified")
	}
	if !user.IsActive() {
		return nil, errAccountInactive()
	}
	return s.issueSession(user)
}

func (s *AuthService) issueSession(user *models.User) (*LoginResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// PublicProfile returns userID's public record with the seller rating.
func (s *AuthService) PublicProfile(ctx context.Context, userID uint) (*models.User, models.SellerRating, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, models.SellerRating{}, err
	}
	if user.AccountStatus == models.AccountDeleted {
		return nil, models.SellerRating{}, models.NewNotFoundError("User", userID)
	}
	rating, err := s.reviews.SellerRating(ctx, userID)
	if err != nil {
		return nil, models.SellerRating{}, err
	}
	return user, rating, nil
}
