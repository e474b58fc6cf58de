package server

import (
	"strings"

	"gatormarket/internal/models"

	"github.com/gofiber/fiber/v2"
)

type emailRequest struct {
	Email string `json:"email"`
}

func parseEmail(c *fiber.Ctx) (string, error) {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		_ = invalidBody(c)
		return "", errResponseWritten
	}
	return strings.ToLower(strings.TrimSpace(req.Email)), nil
}

// SendVerification handles POST /api/verify/send
// @Summary Send a verification email
// @Description Issues a new 24h token. Limited to one email every 90 seconds.
// @Tags verify
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Account email"
// @Success 200 {object} object{message=string,warning=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /verify/send [post]
func (s *Server) SendVerification(c *fiber.Ctx) error {
	email, err := parseEmail(c)
	if err != nil {
		return nil
	}

	result, err := s.verificationService.Send(c.UserContext(), email)
	if err != nil {
		return respondError(c, err)
	}

	resp := fiber.Map{"message": "Verification email sent"}
	if result.Warning != "" {
		resp["warning"] = result.Warning
	}
	return c.JSON(resp)
}

// ConfirmEmail handles GET /api/verify/confirm?token=
// @Summary Confirm an email address
// @Tags verify
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /verify/confirm [get]
func (s *Server) ConfirmEmail(c *fiber.Ctx) error {
	if err := s.verificationService.Confirm(c.UserContext(), c.Query("token")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Email verified successfully"})
}

// DeleteUnverifiedAccount handles GET /api/verify/delete-account?token=
// @Summary Delete an account that was registered without consent
// @Tags verify
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /verify/delete-account [get]
func (s *Server) DeleteUnverifiedAccount(c *fiber.Ctx) error {
	if err := s.verificationService.DeleteUnverified(c.UserContext(), c.Query("token")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted successfully"})
}

// GetTokenAfterVerification handles POST /api/verify/get-token
// @Summary Sign in after verifying an email
// @Description Returns a session only once the account is verified.
// @Tags verify
// @Accept json
// @Produce json
// @Param request body object{email=string} true "Account email"
// @Success 200 {object} object{token=string,expires_at=string,user=models.UserResponse}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /verify/get-token [post]
func (s *Server) GetTokenAfterVerification(c *fiber.Ctx) error {
	email, err := parseEmail(c)
	if err != nil {
		return nil
	}

	result, err := s.authService.TokenForVerifiedEmail(c.UserContext(), email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       models.NewUserResponse(result.User),
	})
}
