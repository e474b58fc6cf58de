package service

import (
	"context"
	"fmt"
	"log/slog"

	"gatormarket/internal/middleware"
	"gatormarket/internal/models"
	"gatormarket/internal/repository"

	"gorm.io/gorm"
)

// AdminService implements moderation. Every state change is written to the
// audit log in the same transaction.
type AdminService struct {
	db           *gorm.DB
	admin        repository.AdminRepository
	products     repository.ProductRepository
	reports      repository.ReportRepository
	users        repository.UserRepository
	verification *VerificationService
}

// NewAdminService returns a new AdminService.
func NewAdminService(
	db *gorm.DB,
	admin repository.AdminRepository,
	products repository.ProductRepository,
	reports repository.ReportRepository,
	users repository.UserRepository,
	verification *VerificationService,
) *AdminService {
	return &AdminService{
		db:           db,
		admin:        admin,
		products:     products,
		reports:      reports,
		users:        users,
		verification: verification,
	}
}

// CleanupResult reports a synchronous sweep.
type CleanupResult struct {
	Deleted int `json:"deleted_count"`
}

func (s *AdminService) PendingProducts(ctx context.Context, limit, offset int) ([]models.Product, error) {
	return s.products.ListPending(ctx, limit, offset)
}

// ModerateProduct approves or rejects a listing.
func (s *AdminService) ModerateProduct(ctx context.Context, adminID, productID uint, status models.ApprovalStatus) error {
	if status == "" {
		return models.NewValidationError("Status field is required")
	}
	if status != models.ApprovalApproved && status != models.ApprovalRejected {
		return models.NewValidationError("Invalid status value")
	}

	return s.audited(ctx, func(tx *gorm.DB) (*models.AdminAction, error) {
		if err := repository.NewProductRepository(tx).Update(ctx, productID, map[string]interface{}{
			"approval_status": status,
		}); err != nil {
			return nil, err
		}
		return &models.AdminAction{
			AdminID:     adminID,
			ActionType:  models.ActionProductModeration,
			TargetType:  models.TargetProduct,
			TargetID:    productID,
			Description: fmt.Sprintf("Product %d %s", productID, status),
		}, nil
	})
}

// ListReports returns listing reports, optionally filtered by status.
func (s *AdminService) ListReports(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.ListingReport, error) {
	if status != "" && !status.Valid() {
		return nil, models.NewValidationError("Invalid status value")
	}
	return s.reports.ListListingReports(ctx, status, limit, offset)
}

func (s *AdminService) UpdateReportStatus(ctx context.Context, adminID, reportID uint, status models.ReportStatus) error {
	if status == "" {
		return models.NewValidationError("Status field is required")
	}
	if !status.Valid() {
		return models.NewValidationError("Invalid status value")
	}

	return s.audited(ctx, func(tx *gorm.DB) (*models.AdminAction, error) {
		if err := repository.NewReportRepository(tx).UpdateListingReportStatus(ctx, reportID, status); err != nil {
			return nil, err
		}
		return &models.AdminAction{
			AdminID:     adminID,
			ActionType:  models.ActionReportUpdate,
			TargetType:  models.TargetReport,
			TargetID:    reportID,
			Description: fmt.Sprintf("Report %d marked %s", reportID, status),
		}, nil
	})
}

func (s *AdminService) ListUserReports(ctx context.Context, limit, offset int) ([]models.UserReport, error) {
	return s.reports.ListUserReports(ctx, limit, offset)
}

// Actions returns the most recent audit entries.
func (s *AdminService) Actions(ctx context.Context, limit int) ([]models.AdminAction, error) {
	return s.admin.ListActions(ctx, limit)
}

func (s *AdminService) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	return s.admin.DashboardStats(ctx)
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.users.List(ctx, limit, offset)
}

// SetUserRole changes another account's role.
func (s *AdminService) SetUserRole(ctx context.Context, adminID, userID uint, role models.UserRole) error {
	if !role.Valid() {
		return models.NewValidationError("Invalid role")
	}
	if adminID == userID {
		return models.NewValidationError("You cannot change your own role")
	}

	return s.audited(ctx, func(tx *gorm.DB) (*models.AdminAction, error) {
		if err := repository.NewUserRepository(tx).UpdateFields(ctx, userID, map[string]interface{}{"role": role}); err != nil {
			return nil, err
		}
		return &models.AdminAction{
			AdminID:     adminID,
			ActionType:  models.ActionUserRoleUpdate,
			TargetType:  models.TargetUser,
			TargetID:    userID,
			Description: fmt.Sprintf("User %d role set to %s", userID, role),
		}, nil
	})
}

// SetUserStatus changes another account's status. Non-active accounts lose
// access on their next request.
func (s *AdminService) SetUserStatus(ctx context.Context, adminID, userID uint, status models.AccountStatus) error {
	if !status.Valid() {
		return models.NewValidationError("Invalid account status")
	}
	if adminID == userID {
		return models.NewValidationError("You cannot change your own status")
	}

	return s.audited(ctx, func(tx *gorm.DB) (*models.AdminAction, error) {
		if err := repository.NewUserRepository(tx).UpdateFields(ctx, userID, map[string]interface{}{"account_status": status}); err != nil {
			return nil, err
		}
		return &models.AdminAction{
			AdminID:     adminID,
			ActionType:  models.ActionUserStatusUpdate,
			TargetType:  models.TargetUser,
			TargetID:    userID,
			Description: fmt.Sprintf("User %d status set to %s", userID, status),
		}, nil
	})
}

// CleanupUnverified runs the unverified-account sweep now and records it.
func (s *AdminService) CleanupUnverified(ctx context.Context, adminID uint) (*CleanupResult, error) {
	deleted, sweepErr := s.verification.SweepExpired(ctx)
	if sweepErr != nil {
		middleware.Logger.WarnContext(ctx, "cleanup finished with failures", slog.String("error", sweepErr.Error()))
	}

	err := s.admin.RecordAction(ctx, &models.AdminAction{
		AdminID:     adminID,
		ActionType:  models.ActionCleanupUnverified,
		TargetType:  models.TargetSystem,
		Description: fmt.Sprintf("Removed %d expired unverified accounts", deleted),
	})
	if err != nil {
		return nil, err
	}
	if sweepErr != nil && deleted == 0 {
		return nil, models.NewInternalError(sweepErr)
	}
	return &CleanupResult{Deleted: deleted}, nil
}

// audited runs change and records the action it returns in one transaction.
func (s *AdminService) audited(ctx context.Context, change func(tx *gorm.DB) (*models.AdminAction, error)) error {
	var action *models.AdminAction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		action, err = change(tx)
		if err != nil {
			return err
		}
		return repository.NewAdminRepository(tx).RecordAction(ctx, action)
	})
	if err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "admin action recorded",
		slog.Uint64("admin_id", uint64(action.AdminID)),
		slog.String("action_type", action.ActionType),
		slog.Uint64("target_id", uint64(action.TargetID)),
	)
	return nil
}
