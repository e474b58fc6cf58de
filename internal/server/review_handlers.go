package server

import (
	"gatormarket/internal/models"
	"gatormarket/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReview handles POST /api/reviews
// @Summary Review a seller
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateReviewInput true "Review"
// @Success 201 {object} models.ReviewResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	var req service.CreateReviewInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	req.ReviewerID = currentUserID(c)

	review, err := s.reviewService.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewReviewResponse(review))
}

// GetReviews handles GET /api/reviews/:sellerId
// @Summary Reviews received by a seller
// @Tags reviews
// @Produce json
// @Param sellerId path int true "Seller ID"
// @Success 200 {object} object{reviews=[]models.ReviewResponse,rating=models.SellerRating}
// @Router /reviews/{sellerId} [get]
func (s *Server) GetReviews(c *fiber.Ctx) error {
	return s.sellerReviews(c, "sellerId")
}

// GetSellerReviews handles GET /api/auth/reviews/:id, the older path for GetReviews.
// @Summary Reviews received by a seller
// @Tags auth
// @Produce json
// @Param id path int true "Seller ID"
// @Success 200 {object} object{reviews=[]models.ReviewResponse,rating=models.SellerRating}
// @Router /auth/reviews/{id} [get]
func (s *Server) GetSellerReviews(c *fiber.Ctx) error {
	return s.sellerReviews(c, "id")
}

func (s *Server) sellerReviews(c *fiber.Ctx, param string) error {
	sellerID, err := parseID(c, param)
	if err != nil {
		return nil
	}

	reviews, rating, err := s.reviewService.List(c.UserContext(), sellerID)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]models.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, models.NewReviewResponse(&reviews[i]))
	}
	return c.JSON(fiber.Map{
		"reviews": resp,
		"rating":  rating,
	})
}

// ReportUser handles POST /api/reports/users
// @Summary Report another user
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ReportUserInput true "Report"
// @Success 201 {object} object{message=string,report_id=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reports/users [post]
func (s *Server) ReportUser(c *fiber.Ctx) error {
	var req service.ReportUserInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	req.ReporterID = currentUserID(c)

	report, err := s.reportService.ReportUser(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Report submitted successfully",
		"report_id": report.ID,
	})
}

// ReportListing handles POST /api/reports/listings
// @Summary Report a listing
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ReportListingInput true "Report"
// @Success 201 {object} object{message=string,report_id=int}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reports/listings [post]
func (s *Server) ReportListing(c *fiber.Ctx) error {
	var req service.ReportListingInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	req.ReporterID = currentUserID(c)

	report, err := s.reportService.ReportListing(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Report submitted successfully",
		"report_id": report.ID,
	})
}
