package server

import (
	"net/http"
	"testing"
	"time"

	"gatormarket/internal/auth"
	"gatormarket/internal/models"
	"gatormarket/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)
	cfg := ts.config

	active := testutil.CreateUser(t, ts.db)
	inactive := testutil.CreateUser(t, ts.db, func(u *models.User) {
		u.AccountStatus = models.AccountBanned
	})

	expiredToken, _, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience).
		WithClock(func() time.Time { return time.Now().Add(-5 * time.Hour) }).
		Issue(active.ID, active.Username, string(active.Role))
	require.NoError(t, err)

	foreignToken, _, err := auth.NewTokenManager("another-secret-another-secret-another", cfg.JWTIssuer, cfg.JWTAudience).
		Issue(active.ID, active.Username, string(active.Role))
	require.NoError(t, err)

	ghostToken, _, err := ts.tokens.Issue(99999, "ghost", string(models.RoleUser))
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantCode   string
		wantAction string
	}{
		{"missing token", "", http.StatusUnauthorized, auth.CodeNoToken, ""},
		{"garbage token", "not-a-jwt", http.StatusUnauthorized, auth.CodeInvalidToken, "logout"},
		{"wrong signing key", foreignToken, http.StatusUnauthorized, auth.CodeInvalidToken, "logout"},
		{"expired token", expiredToken, http.StatusUnauthorized, auth.CodeTokenExpired, "logout"},
		{"deleted user", ghostToken, http.StatusUnauthorized, auth.CodeUserNotFound, "logout"},
		{"inactive account", ts.tokenFor(t, inactive), http.StatusUnauthorized, auth.CodeAccountInactive, "logout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ts.do(t, http.MethodGet, "/api/auth/profile", nil, tt.token)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body["code"])
			if tt.wantAction != "" {
				assert.Equal(t, tt.wantAction, body["action"])
			} else {
				assert.NotContains(t, body, "action")
			}
		})
	}

	t.Run("valid token", func(t *testing.T) {
		status, body := ts.do(t, http.MethodGet, "/api/auth/profile", nil, ts.tokenFor(t, active))
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, active.Username, body["username"])
		assert.NotContains(t, body, "password")
	})
}

func TestVerifiedRequired(t *testing.T) {
	ts := newTestServer(t)

	seller := testutil.CreateUser(t, ts.db)
	unverified := testutil.CreateUser(t, ts.db, func(u *models.User) {
		u.VerificationStatus = models.VerificationUnverified
	})

	review := map[string]any{"seller_id": seller.ID, "rating": 5}

	status, body := ts.do(t, http.MethodPost, "/api/reviews", review, ts.tokenFor(t, unverified))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, auth.CodeEmailNotVerified, body["code"])

	// Unverified accounts can still use routes that only need a session.
	status, _ = ts.do(t, http.MethodGet, "/api/messaging/unread-count", nil, ts.tokenFor(t, unverified))
	assert.Equal(t, http.StatusOK, status)
}

func TestAdminRequired(t *testing.T) {
	ts := newTestServer(t)

	user := testutil.CreateUser(t, ts.db)
	moderator := testutil.CreateUser(t, ts.db, func(u *models.User) { u.Role = models.RoleModerator })
	admin := testutil.CreateUser(t, ts.db, func(u *models.User) { u.Role = models.RoleAdmin })

	status, body := ts.do(t, http.MethodGet, "/api/admin/dashboard", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.CodeNoToken, body["code"])

	for _, u := range []*models.User{user, moderator} {
		status, body = ts.do(t, http.MethodGet, "/api/admin/dashboard", nil, ts.tokenFor(t, u))
		assert.Equal(t, http.StatusForbidden, status, u.Role)
		assert.Equal(t, auth.CodeAdminRequired, body["code"])
	}

	status, _ = ts.do(t, http.MethodGet, "/api/admin/dashboard", nil, ts.tokenFor(t, admin))
	assert.Equal(t, http.StatusOK, status)
}

func TestRoleComesFromDatabaseNotToken(t *testing.T) {
	ts := newTestServer(t)

	user := testutil.CreateUser(t, ts.db)
	forged, _, err := ts.tokens.Issue(user.ID, user.Username, string(models.RoleAdmin))
	require.NoError(t, err)

	status, body := ts.do(t, http.MethodGet, "/api/admin/dashboard", nil, forged)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, auth.CodeAdminRequired, body["code"])
}
