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

func TestModerationIsAudited(t *testing.T) {
	ts := newTestServer(t)
	admin := testutil.CreateUser(t, ts.db, func(u *models.User) { u.Role = models.RoleAdmin })
	seller := testutil.CreateUser(t, ts.db)
	pending := testutil.CreateProduct(t, ts.db, seller.ID, func(p *models.Product) {
		p.ApprovalStatus = models.ApprovalPending
	})
	token := ts.tokenFor(t, admin)

	queue := ts.list(t, "/api/admin/products/pending", token)
	require.Len(t, queue, 1)
	assert.Equal(t, float64(pending.ID), queue[0]["product_id"])

	moderate := "/api/admin/products/" + itoa(pending.ID) + "/moderate"

	status, body := ts.do(t, http.MethodPut, moderate, map[string]any{"status": "maybe"}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid status value", body["error"])

	status, body = ts.do(t, http.MethodPut, moderate, map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Status field is required", body["error"])

	status, body = ts.do(t, http.MethodPut, moderate, map[string]any{"status": "rejected"}, token)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Product rejected successfully", body["message"])

	assert.Empty(t, ts.list(t, "/api/admin/products/pending", token))

	actions := ts.list(t, "/api/admin/actions", token)
	require.Len(t, actions, 1)
	assert.Equal(t, models.ActionProductModeration, actions[0]["action_type"])
	assert.Equal(t, float64(admin.ID), actions[0]["admin_id"])
	assert.Equal(t, float64(pending.ID), actions[0]["target_id"])

	// Rejected listings stop serving images entirely.
	status, _ = ts.do(t, http.MethodGet, pending.Images[0].ImageURL, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListingReportWorkflow(t *testing.T) {
	ts := newTestServer(t)
	admin := testutil.CreateUser(t, ts.db, func(u *models.User) { u.Role = models.RoleAdmin })
	seller := testutil.CreateUser(t, ts.db)
	reporter := testutil.CreateUser(t, ts.db)
	product := testutil.CreateProduct(t, ts.db, seller.ID)
	token := ts.tokenFor(t, admin)

	status, body := ts.do(t, http.MethodPost, "/api/reports/listings",
		map[string]any{"product_id": product.ID, "reason": "Wrong category"}, ts.tokenFor(t, reporter))
	require.Equal(t, http.StatusCreated, status, body)
	reportID := uint(body["report_id"].(float64))

	status, body = ts.do(t, http.MethodPost, "/api/reports/users",
		map[string]any{"reported_user_id": seller.ID, "reason": "Rude"}, ts.tokenFor(t, reporter))
	require.Equal(t, http.StatusCreated, status, body)

	assert.Len(t, ts.list(t, "/api/admin/reports?status=pending", token), 1)
	assert.Len(t, ts.list(t, "/api/admin/user-reports", token), 1)

	status, _ = ts.do(t, http.MethodGet, "/api/admin/reports?status=bogus", nil, token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = ts.do(t, http.MethodPut, "/api/admin/reports/"+itoa(reportID),
		map[string]any{"status": string(models.ReportResolved)}, token)
	require.Equal(t, http.StatusOK, status, body)

	assert.Empty(t, ts.list(t, "/api/admin/reports?status=pending", token))
	resolved := ts.list(t, "/api/admin/reports?status=resolved", token)
	require.Len(t, resolved, 1)
	assert.Equal(t, float64(reportID), resolved[0]["report_id"])

	actions := ts.list(t, "/api/admin/actions", token)
	require.Len(t, actions, 1)
	assert.Equal(t, models.ActionReportUpdate, actions[0]["action_type"])

	_, body = ts.do(t, http.MethodGet, "/api/admin/dashboard", nil, token)
	assert.Equal(t, float64(3), body["total_users"])
	assert.Equal(t, float64(0), body["pending_reports"])
	assert.Equal(t, float64(1), body["pending_user_reports"])
}

func TestAdminUserManagement(t *testing.T) {
	ts := newTestServer(t)
	admin := testutil.CreateUser(t, ts.db, func(u *models.User) { u.Role = models.RoleAdmin })
	member := testutil.CreateUser(t, ts.db)
	token := ts.tokenFor(t, admin)
	memberToken := ts.tokenFor(t, member)

	users := ts.list(t, "/api/admin/users", token)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "password")
	}

	status, body := ts.do(t, http.MethodPut, "/api/admin/users/"+itoa(admin.ID)+"/role",
		map[string]any{"role": "user"}, token)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "You cannot change your own role", body["error"])

	status, _ = ts.do(t, http.MethodPut, "/api/admin/users/"+itoa(member.ID)+"/role",
		map[string]any{"role": "superuser"}, token)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = ts.do(t, http.MethodPut, "/api/admin/users/"+itoa(member.ID)+"/role",
		map[string]any{"role": "moderator"}, token)
	require.Equal(t, http.StatusOK, status)

	status, _ = ts.do(t, http.MethodPut, "/api/admin/users/"+itoa(member.ID)+"/status",
		map[string]any{"status": "banned"}, token)
	require.Equal(t, http.StatusOK, status)

	// The member's existing token stops working on the next request.
	status, body = ts.do(t, http.MethodGet, "/api/auth/profile", nil, memberToken)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.CodeAccountInactive, body["code"])

	var stored models.User
	require.NoError(t, ts.db.First(&stored, member.ID).Error)
	assert.Equal(t, models.RoleModerator, stored.Role)
	assert.Equal(t, models.AccountBanned, stored.AccountStatus)

	assert.Len(t, ts.list(t, "/api/admin/actions", token), 2)
}

func TestAdminCleanupUnverified(t *testing.T) {
	ts := newTestServer(t)
	admin := testutil.CreateUser(t, ts.db, func(u *models.User) { u.Role = models.RoleAdmin })

	stale := time.Now().Add(-48 * time.Hour)
	staleToken := "stale-token"
	expired := testutil.CreateUser(t, ts.db, func(u *models.User) {
		u.VerificationStatus = models.VerificationUnverified
		u.VerificationToken = &staleToken
		u.TokenCreatedAt = &stale
	})

	fresh := time.Now()
	freshToken := "fresh-token"
	testutil.CreateUser(t, ts.db, func(u *models.User) {
		u.VerificationStatus = models.VerificationUnverified
		u.VerificationToken = &freshToken
		u.TokenCreatedAt = &fresh
	})

	status, body := ts.do(t, http.MethodPost, "/api/admin/cleanup-unverified", nil, ts.tokenFor(t, admin))
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(1), body["deleted_count"])

	var count int64
	require.NoError(t, ts.db.Model(&models.User{}).Where("id = ?", expired.ID).Count(&count).Error)
	assert.Zero(t, count)

	actions := ts.list(t, "/api/admin/actions", ts.tokenFor(t, admin))
	require.Len(t, actions, 1)
	assert.Equal(t, models.ActionCleanupUnverified, actions[0]["action_type"])
}
