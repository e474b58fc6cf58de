package server

import (
	"gatormarket/internal/auth"
	"gatormarket/internal/middleware"
	"gatormarket/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired admits requests carrying a valid token for an active account.
func (s *Server) AuthRequired() fiber.Handler {
	return s.authorize()
}

// VerifiedRequired is AuthRequired plus a confirmed email address.
func (s *Server) VerifiedRequired() fiber.Handler {
	return s.authorize(auth.RequireVerified)
}

// AdminRequired is AuthRequired plus the admin role.
func (s *Server) AdminRequired() fiber.Handler {
	return s.authorize(auth.RequireAdmin)
}

func (s *Server) authorize(reqs ...auth.Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := s.guard.Authorize(c.UserContext(), c.Get(fiber.HeaderAuthorization), reqs...)
		if !decision.Authorized() {
			return denyRequest(c, decision.Denial)
		}

		user := decision.User
		c.Locals("userID", user.ID)
		c.Locals("user", user)
		// Sync to UserContext for logging and downstream services
		c.SetUserContext(middleware.WithUserID(c.UserContext(), user.ID))
		return c.Next()
	}
}

func denyRequest(c *fiber.Ctx, d *auth.Denial) error {
	middleware.AuthDenials.WithLabelValues(d.Code).Inc()
	return c.Status(d.Status).JSON(models.ErrorResponse{
		Error:  d.Message,
		Code:   d.Code,
		Action: d.Action,
	})
}
