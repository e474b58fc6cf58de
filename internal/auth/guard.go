package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gatormarket/internal/models"
)

// Denial codes returned to clients.
const (
	CodeNoToken          = "NO_TOKEN"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeTokenExpired     = "TOKEN_EXPIRED"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeAccountInactive  = "ACCOUNT_INACTIVE"
	CodeEmailNotVerified = "EMAIL_NOT_VERIFIED"
	CodeAdminRequired    = "ADMIN_REQUIRED"
	CodeAuthFailed       = "AUTH_FAILED"
)

// ActionLogout tells the client to discard its session.
const ActionLogout = "logout"

// UserLookup loads the live user record for a token subject.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// Denial describes why a request was refused.
type Denial struct {
	Status  int
	Code    string
	Message string
	Action  string
}

// Decision is the outcome of Authorize. Exactly one of User or Denial is set.
type Decision struct {
	User   *models.User
	Claims *Claims
	Denial *Denial
}

// Authorized reports whether the request may proceed.
func (d Decision) Authorized() bool {
	return d.Denial == nil && d.User != nil
}

// Requirement is an extra predicate evaluated against the live user.
type Requirement func(u *models.User) *Denial

// RequireVerified denies accounts that have not confirmed their email.
func RequireVerified(u *models.User) *Denial {
	if u.IsVerified() {
		return nil
	}
	return &Denial{
		Status:  http.StatusForbidden,
		Code:    CodeEmailNotVerified,
		Message: "Email verification required",
	}
}

// RequireAdmin denies accounts without the admin role.
func RequireAdmin(u *models.User) *Denial {
	if u.IsAdmin() {
		return nil
	}
	return &Denial{
		Status:  http.StatusForbidden,
		Code:    CodeAdminRequired,
		Message: "Admin access required",
	}
}

// Guard resolves the bearer token on a request to a live, active user.
type Guard struct {
	tokens *TokenManager
	users  UserLookup
}

// NewGuard returns a Guard backed by tokens and users.
func NewGuard(tokens *TokenManager, users UserLookup) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// ExtractToken accepts "Bearer <token>" or a bare token.
// It returns "" for an empty header and ok=false for a malformed one.
func ExtractToken(header string) (token string, ok bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", true
	}
	parts := strings.Fields(header)
	switch len(parts) {
	case 1:
		return parts[0], true
	case 2:
		if strings.EqualFold(parts[0], "Bearer") {
			return parts[1], true
		}
	}
	return "", false
}

func deny(status int, code, message, action string) Decision {
	return Decision{Denial: &Denial{Status: status, Code: code, Message: message, Action: action}}
}

// Authorize validates the header, loads the user fresh and applies reqs in order.
func (g *Guard) Authorize(ctx context.Context, header string, reqs ...Requirement) Decision {
	raw, ok := ExtractToken(header)
	if !ok {
		return deny(http.StatusUnauthorized, CodeInvalidToken, "Invalid authorization header format", "")
	}
	if raw == "" {
		return deny(http.StatusUnauthorized, CodeNoToken, "Authentication required", "")
	}

	claims, err := g.tokens.Validate(raw)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return deny(http.StatusUnauthorized, CodeTokenExpired, "Token has expired", ActionLogout)
		}
		return deny(http.StatusUnauthorized, CodeInvalidToken, "Invalid token", ActionLogout)
	}

	userID, err := claims.UserID()
	if err != nil {
		return deny(http.StatusUnauthorized, CodeInvalidToken, "Invalid token", ActionLogout)
	}

	user, err := g.users.GetByID(ctx, userID)
	if err != nil {
		if models.ErrorCode(err) == models.CodeNotFound {
			return deny(http.StatusUnauthorized, CodeUserNotFound, "User not found", ActionLogout)
		}
		return deny(http.StatusInternalServerError, CodeAuthFailed, "Authentication failed", "")
	}
	if user == nil {
		return deny(http.StatusUnauthorized, CodeUserNotFound, "User not found", ActionLogout)
	}
	if !user.IsActive() {
		return deny(http.StatusUnauthorized, CodeAccountInactive, "Account is not active", ActionLogout)
	}

	for _, req := range reqs {
		if d := req(user); d != nil {
			return Decision{Denial: d}
		}
	}
	return Decision{User: user, Claims: claims}
}
