package service

import (
	"context"
	"testing"
	"time"

	"gatormarket/internal/models"
	"gatormarket/internal/repository"
	"gatormarket/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(env *testEnv) *AdminService {
	return NewAdminService(
		env.db,
		repository.NewAdminRepository(env.db),
		env.products,
		repository.NewReportRepository(env.db),
		env.users,
		env.verification,
	)
}

func TestAdminService_ModerateProductIsAudited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newAdminService(env)
	admin := testutil.CreateUser(t, env.db, func(u *models.User) { u.Role = models.RoleAdmin })
	seller := testutil.CreateUser(t, env.db)
	product := testutil.CreateProduct(t, env.db, seller.ID, func(p *models.Product) {
		p.ApprovalStatus = models.ApprovalPending
	})

	pending, err := svc.PendingProducts(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	assertAppCode(t, svc.ModerateProduct(ctx, admin.ID, product.ID, ""), models.CodeValidation)
	assertAppCode(t, svc.ModerateProduct(ctx, admin.ID, product.ID, "maybe"), models.CodeValidation)
	assertAppCode(t, svc.ModerateProduct(ctx, admin.ID, 9999, models.ApprovalApproved), models.CodeNotFound)

	actions, err := svc.Actions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, actions, "failed changes must not be audited")

	require.NoError(t, svc.ModerateProduct(ctx, admin.ID, product.ID, models.ApprovalApproved))
	stored, err := env.products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, stored.ApprovalStatus)

	actions, err = svc.Actions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, models.ActionProductModeration, actions[0].ActionType)
	assert.Equal(t, product.ID, actions[0].TargetID)
	assert.Equal(t, admin.ID, actions[0].AdminID)
}

func TestAdminService_Reports(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newAdminService(env)
	reports := NewReportService(repository.NewReportRepository(env.db), env.users, env.products)

	admin := testutil.CreateUser(t, env.db, func(u *models.User) { u.Role = models.RoleAdmin })
	reporter := testutil.CreateUser(t, env.db)
	seller := testutil.CreateUser(t, env.db)
	product := testutil.CreateProduct(t, env.db, seller.ID)

	_, err := reports.ReportListing(ctx, ReportListingInput{ReporterID: reporter.ID, ProductID: product.ID})
	assertAppCode(t, err, models.CodeValidation)
	_, err = reports.ReportListing(ctx, ReportListingInput{ReporterID: reporter.ID, ProductID: 9999, Reason: "spam"})
	assertAppCode(t, err, models.CodeNotFound)

	report, err := reports.ReportListing(ctx, ReportListingInput{ReporterID: reporter.ID, ProductID: product.ID, Reason: "spam"})
	require.NoError(t, err)
	assert.Equal(t, models.ReportPending, report.Status)

	_, err = reports.ReportUser(ctx, ReportUserInput{ReporterID: reporter.ID, ReportedUserID: reporter.ID, Reason: "me"})
	assertAppCode(t, err, models.CodeValidation)
	_, err = reports.ReportUser(ctx, ReportUserInput{ReporterID: reporter.ID, ReportedUserID: seller.ID, Reason: "rude"})
	require.NoError(t, err)

	_, err = svc.ListReports(ctx, "bogus", 0, 0)
	assertAppCode(t, err, models.CodeValidation)

	assertAppCode(t, svc.UpdateReportStatus(ctx, admin.ID, report.ID, "closed"), models.CodeValidation)
	assertAppCode(t, svc.UpdateReportStatus(ctx, admin.ID, 9999, models.ReportResolved), models.CodeNotFound)
	require.NoError(t, svc.UpdateReportStatus(ctx, admin.ID, report.ID, models.ReportResolved))

	resolved, err := svc.ListReports(ctx, models.ReportResolved, 0, 0)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	pending, err := svc.ListReports(ctx, models.ReportPending, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)

	userReports, err := svc.ListUserReports(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, userReports, 1)
	assert.Equal(t, seller.ID, userReports[0].ReportedUserID)

	stats, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, stats.PendingReports)
	assert.EqualValues(t, 1, stats.PendingUserReports)
}

func TestAdminService_UserManagement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newAdminService(env)
	admin := testutil.CreateUser(t, env.db, func(u *models.User) { u.Role = models.RoleAdmin })
	member := testutil.CreateUser(t, env.db)

	assertAppCode(t, svc.SetUserRole(ctx, admin.ID, admin.ID, models.RoleUser), models.CodeValidation)
	assertAppCode(t, svc.SetUserRole(ctx, admin.ID, member.ID, "overlord"), models.CodeValidation)
	assertAppCode(t, svc.SetUserStatus(ctx, admin.ID, admin.ID, models.AccountBanned), models.CodeValidation)
	assertAppCode(t, svc.SetUserStatus(ctx, admin.ID, 9999, models.AccountBanned), models.CodeNotFound)

	require.NoError(t, svc.SetUserRole(ctx, admin.ID, member.ID, models.RoleModerator))
	require.NoError(t, svc.SetUserStatus(ctx, admin.ID, member.ID, models.AccountBanned))

	stored, err := env.users.GetByID(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleModerator, stored.Role)
	assert.Equal(t, models.AccountBanned, stored.AccountStatus)

	users, err := svc.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	actions, err := svc.Actions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	assert.Equal(t, models.ActionUserStatusUpdate, actions[0].ActionType)
}

func TestAdminService_CleanupUnverified(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newAdminService(env)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env.verification.now = fixedClock(now)

	admin := testutil.CreateUser(t, env.db, func(u *models.User) { u.Role = models.RoleAdmin })
	pendingUser(t, env.db, "cleanup-1", now.Add(-25*time.Hour))
	pendingUser(t, env.db, "cleanup-2", now.Add(-90*time.Hour))
	pendingUser(t, env.db, "cleanup-keep", now.Add(-time.Hour))

	res, err := svc.CleanupUnverified(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Deleted)

	actions, err := svc.Actions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, models.ActionCleanupUnverified, actions[0].ActionType)
	assert.Equal(t, models.TargetSystem, actions[0].TargetType)
}

func TestReviewService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewReviewService(env.reviews, env.users)
	seller := testutil.CreateUser(t, env.db)
	buyer := testutil.CreateUser(t, env.db)

	_, err := svc.Create(ctx, CreateReviewInput{ReviewerID: buyer.ID, SellerID: seller.ID, Rating: 6})
	assertAppCode(t, err, models.CodeValidation)
	_, err = svc.Create(ctx, CreateReviewInput{ReviewerID: buyer.ID, SellerID: buyer.ID, Rating: 5})
	assertAppCode(t, err, models.CodeValidation)
	_, err = svc.Create(ctx, CreateReviewInput{ReviewerID: buyer.ID, SellerID: 9999, Rating: 5})
	assertAppCode(t, err, models.CodeNotFound)

	for _, rating := range []int{5, 3} {
		_, err := svc.Create(ctx, CreateReviewInput{ReviewerID: buyer.ID, SellerID: seller.ID, Rating: rating, Comment: "ok"})
		require.NoError(t, err)
	}

	reviews, rating, err := svc.List(ctx, seller.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	require.NotNil(t, rating.Average)
	assert.InDelta(t, 4.0, *rating.Average, 0.001)
}
