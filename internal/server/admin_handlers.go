package server

import (
	"gatormarket/internal/models"

	"github.com/gofiber/fiber/v2"
)

type statusRequest struct {
	Status string `json:"status"`
}

func parseStatus(c *fiber.Ctx) (string, error) {
	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		_ = invalidBody(c)
		return "", errResponseWritten
	}
	return req.Status, nil
}

// GetPendingProducts handles GET /api/admin/products/pending
// @Summary Listings awaiting moderation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ProductResponse
// @Router /admin/products/pending [get]
func (s *Server) GetPendingProducts(c *fiber.Ctx) error {
	page := parsePagination(c, 50)
	products, err := s.adminService.PendingProducts(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]models.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, models.NewProductResponse(&products[i]))
	}
	return c.JSON(resp)
}

// ModerateProduct handles PUT /api/admin/products/:id/moderate
// @Summary Approve or reject a listing
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body object{status=string} true "approved or rejected"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/products/{id}/moderate [put]
func (s *Server) ModerateProduct(c *fiber.Ctx) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	status, err := parseStatus(c)
	if err != nil {
		return nil
	}

	if err := s.adminService.ModerateProduct(c.UserContext(), currentUserID(c), productID, models.ApprovalStatus(status)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product " + status + " successfully"})
}

// GetListingReports handles GET /api/admin/reports
// @Summary Listing reports
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, reviewed or resolved"
// @Success 200 {array} models.ListingReport
// @Router /admin/reports [get]
func (s *Server) GetListingReports(c *fiber.Ctx) error {
	page := parsePagination(c, maxPaginationLimit)
	reports, err := s.adminService.ListReports(c.UserContext(), models.ReportStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if reports == nil {
		reports = []models.ListingReport{}
	}
	return c.JSON(reports)
}

// UpdateReportStatus handles PUT /api/admin/reports/:id
// @Summary Change a listing report's status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Report ID"
// @Param request body object{status=string} true "pending, reviewed or resolved"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/reports/{id} [put]
func (s *Server) UpdateReportStatus(c *fiber.Ctx) error {
	reportID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	status, err := parseStatus(c)
	if err != nil {
		return nil
	}

	if err := s.adminService.UpdateReportStatus(c.UserContext(), currentUserID(c), reportID, models.ReportStatus(status)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report status updated successfully"})
}

// GetUserReports handles GET /api/admin/user-reports
// @Summary Reports filed against users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserReport
// @Router /admin/user-reports [get]
func (s *Server) GetUserReports(c *fiber.Ctx) error {
	page := parsePagination(c, maxPaginationLimit)
	reports, err := s.adminService.ListUserReports(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	if reports == nil {
		reports = []models.UserReport{}
	}
	return c.JSON(reports)
}

// GetAdminActions handles GET /api/admin/actions
// @Summary Moderation audit log, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AdminAction
// @Router /admin/actions [get]
func (s *Server) GetAdminActions(c *fiber.Ctx) error {
	actions, err := s.adminService.Actions(c.UserContext(), maxPaginationLimit)
	if err != nil {
		return respondError(c, err)
	}
	if actions == nil {
		actions = []models.AdminAction{}
	}
	return c.JSON(actions)
}

// GetDashboard handles GET /api/admin/dashboard
// @Summary Marketplace counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} repository.DashboardStats
// @Router /admin/dashboard [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	stats, err := s.adminService.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// GetUsers handles GET /api/admin/users
// @Summary List accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserResponse
// @Router /admin/users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	page := parsePagination(c, maxPaginationLimit)
	users, err := s.adminService.ListUsers(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]models.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, models.NewUserResponse(&users[i]))
	}
	return c.JSON(resp)
}

// UpdateUserRole handles PUT /api/admin/users/:id/role
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body object{role=string} true "user, moderator or admin"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (s *Server) UpdateUserRole(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	if err := s.adminService.SetUserRole(c.UserContext(), currentUserID(c), userID, models.UserRole(req.Role)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User role updated successfully"})
}

// UpdateUserStatus handles PUT /api/admin/users/:id/status
// @Summary Change a user's account status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body object{status=string} true "active, inactive, banned or deleted"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/users/{id}/status [put]
func (s *Server) UpdateUserStatus(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	status, err := parseStatus(c)
	if err != nil {
		return nil
	}

	if err := s.adminService.SetUserStatus(c.UserContext(), currentUserID(c), userID, models.AccountStatus(status)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User status updated successfully"})
}

// CleanupUnverified handles POST /api/admin/cleanup-unverified
// @Summary Delete expired unverified accounts now
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.CleanupResult
// @Router /admin/cleanup-unverified [post]
func (s *Server) CleanupUnverified(c *fiber.Ctx) error {
	result, err := s.adminService.CleanupUnverified(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":       "Unverified account cleanup completed",
		"deleted_count": result.Deleted,
	})
}
