package service

import (
	"context"
	"strings"

	"gatormarket/internal/models"
	"gatormarket/internal/repository"
)

// ReportService files user and listing reports for moderators.
type ReportService struct {
	reports  repository.ReportRepository
	users    repository.UserRepository
	products repository.ProductRepository
}

// NewReportService returns a new ReportService.
func NewReportService(reports repository.ReportRepository, users repository.UserRepository, products repository.ProductRepository) *ReportService {
	return &ReportService{reports: reports, users: users, products: products}
}

// ReportUserInput is a complaint about another account.
type ReportUserInput struct {
	ReporterID         uint   `json:"-"`
	ReportedUserID     uint   `json:"reported_user_id"`
	Reason             string `json:"reason"`
	AdditionalComments string `json:"additional_comments"`
}

// ReportListingInput flags a listing.
type ReportListingInput struct {
	ReporterID uint   `json:"-"`
	ProductID  uint   `json:"product_id"`
	Reason     string `json:"reason"`
	Details    string `json:"details"`
}

func (s *ReportService) ReportUser(ctx context.Context, in ReportUserInput) (*models.UserReport, error) {
	reason := strings.TrimSpace(in.Reason)
	if in.ReportedUserID == 0 || reason == "" {
		return nil, models.NewValidationError("Missing required fields")
	}
	if in.ReportedUserID == in.ReporterID {
		return nil, models.NewValidationError("You cannot report yourself")
	}
	if _, err := s.users.GetByID(ctx, in.ReportedUserID); err != nil {
		return nil, err
	}

	report := &models.UserReport{
		ReporterID:         in.ReporterID,
		ReportedUserID:     in.ReportedUserID,
		Reason:             reason,
		AdditionalComments: strings.TrimSpace(in.AdditionalComments),
		Status:             models.ReportPending,
	}
	if err := s.reports.CreateUserReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) ReportListing(ctx context.Context, in ReportListingInput) (*models.ListingReport, error) {
	reason := strings.TrimSpace(in.Reason)
	if in.ProductID == 0 || reason == "" {
		return nil, models.NewValidationError("Missing required fields")
	}
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}

	report := &models.ListingReport{
		ProductID:  in.ProductID,
		ReporterID: in.ReporterID,
		Reason:     reason,
		Details:    strings.TrimSpace(in.Details),
		Status:     models.ReportPending,
	}
	if err := s.reports.CreateListingReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
