package repository

import (
	"context"

	"gatormarket/internal/models"

	"gorm.io/gorm"
)

// DashboardStats are the headline counts on the admin dashboard.
type DashboardStats struct {
	TotalUsers         int64 `json:"total_users"`
	ActiveUsers        int64 `json:"active_users"`
	UnverifiedUsers    int64 `json:"unverified_users"`
	TotalProducts      int64 `json:"total_products"`
	PendingProducts    int64 `json:"pending_products"`
	ApprovedProducts   int64 `json:"approved_products"`
	SoldProducts       int64 `json:"sold_products"`
	PendingReports     int64 `json:"pending_reports"`
	PendingUserReports int64 `json:"pending_user_reports"`
	TotalConversations int64 `json:"total_conversations"`
	TotalMessages      int64 `json:"total_messages"`
}

// AdminRepository defines persistence operations for the audit log and dashboard.
type AdminRepository interface {
	RecordAction(ctx context.Context, action *models.AdminAction) error
	ListActions(ctx context.Context, limit int) ([]models.AdminAction, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository returns a new AdminRepository implementation.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// RecordAction appends an audit entry. Entries are never updated or removed.
func (r *adminRepository) RecordAction(ctx context.Context, action *models.AdminAction) error {
	if err := r.db.WithContext(ctx).Create(action).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *adminRepository) ListActions(ctx context.Context, limit int) ([]models.AdminAction, error) {
	var actions []models.AdminAction
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(clampLimit(limit, 100, 100)).
		Find(&actions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return actions, nil
}

func (r *adminRepository) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	db := r.db.WithContext(ctx)
	stats := &DashboardStats{}

	counts := []struct {
		dest  *int64
		model interface{}
		where []interface{}
	}{
		{&stats.TotalUsers, &models.User{}, nil},
		{&stats.ActiveUsers, &models.User{}, []interface{}{"account_status = ?", models.AccountActive}},
		{&stats.UnverifiedUsers, &models.User{}, []interface{}{"verification_status = ?", models.VerificationUnverified}},
		{&stats.TotalProducts, &models.Product{}, nil},
		{&stats.PendingProducts, &models.Product{}, []interface{}{"approval_status = ?", models.ApprovalPending}},
		{&stats.ApprovedProducts, &models.Product{}, []interface{}{"approval_status = ?", models.ApprovalApproved}},
		{&stats.SoldProducts, &models.Product{}, []interface{}{"status = ?", models.ProductSold}},
		{&stats.PendingReports, &models.ListingReport{}, []interface{}{"status = ?", models.ReportPending}},
		{&stats.PendingUserReports, &models.UserReport{}, []interface{}{"status = ?", models.ReportPending}},
		{&stats.TotalConversations, &models.Conversation{}, nil},
		{&stats.TotalMessages, &models.Message{}, nil},
	}

	for _, c := range counts {
		q := db.Model(c.model)
		if len(c.where) > 0 {
			q = q.Where(c.where[0], c.where[1:]...)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	return stats, nil
}
