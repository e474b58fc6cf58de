package server

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"gatormarket/internal/models"
	"gatormarket/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) storedUser(t *testing.T, username string) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, ts.db.Where("username = ?", username).First(&u).Error)
	return u
}

func TestSendVerificationThrottle(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.do(t, http.MethodPost, "/api/auth/register", registration(), "")
	require.Equal(t, http.StatusCreated, status, body)
	require.Equal(t, 1, ts.mail.count())

	resend := map[string]any{"email": "alberta_g@sfsu.edu"}

	status, body = ts.do(t, http.MethodPost, "/api/verify/send", resend, "")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, models.CodeRateLimited, body["code"])
	assert.Equal(t, 1, ts.mail.count())

	before := ts.storedUser(t, "alberta_g")
	require.NoError(t, ts.db.Model(&models.User{}).Where("id = ?", before.ID).
		Update("token_created_at", time.Now().Add(-2*time.Minute)).Error)

	status, body = ts.do(t, http.MethodPost, "/api/verify/send", resend, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Verification email sent", body["message"])
	assert.Equal(t, 2, ts.mail.count())

	after := ts.storedUser(t, "alberta_g")
	require.NotNil(t, after.VerificationToken)
	assert.NotEqual(t, *before.VerificationToken, *after.VerificationToken)

	status, _ = ts.do(t, http.MethodPost, "/api/verify/send", map[string]any{"email": "nobody@sfsu.edu"}, "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body = ts.do(t, http.MethodPost, "/api/verify/send", map[string]any{}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email is required", body["error"])
}

func TestSendVerificationAlreadyVerified(t *testing.T) {
	ts := newTestServer(t)
	user := testutil.CreateUser(t, ts.db)

	status, body := ts.do(t, http.MethodPost, "/api/verify/send", map[string]any{"email": user.Email}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Email already verified", body["error"])
	assert.Zero(t, ts.mail.count())
}

func TestDeleteUnverifiedAccountByLink(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.do(t, http.MethodPost, "/api/auth/register", registration(), "")
	require.Equal(t, http.StatusCreated, status, body)
	stored := ts.storedUser(t, "alberta_g")
	require.NotNil(t, stored.VerificationToken)

	status, body = ts.do(t, http.MethodGet, "/api/verify/delete-account?token=unknown", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid or expired token", body["error"])

	status, body = ts.do(t, http.MethodGet,
		"/api/verify/delete-account?token="+url.QueryEscape(*stored.VerificationToken), nil, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Account deleted successfully", body["message"])

	var count int64
	require.NoError(t, ts.db.Model(&models.User{}).Where("id = ?", stored.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteAccountLinkRefusesVerifiedAccounts(t *testing.T) {
	ts := newTestServer(t)
	token := "kept-token"
	issued := time.Now()
	user := testutil.CreateUser(t, ts.db, func(u *models.User) {
		u.VerificationToken = &token
		u.TokenCreatedAt = &issued
	})

	status, _ := ts.do(t, http.MethodGet, "/api/verify/delete-account?token="+token, nil, "")
	assert.Equal(t, http.StatusForbidden, status)

	var count int64
	require.NoError(t, ts.db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
