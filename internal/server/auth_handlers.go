package server

import (
	"gatormarket/internal/auth"
	"gatormarket/internal/models"
	"gatormarket/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
// @Summary Register an account
// @Description Create an unverified account and send the verification email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.Registration true "Registration request"
// @Success 201 {object} object{message=string,user=models.UserResponse,warning=string}
// @Failure 400 {object} object{errors=map[string]string}
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req validation.Registration
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	result, err := s.authService.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	resp := fiber.Map{
		"message": "User registered successfully. Please check your email to verify your account.",
		"user":    models.NewUserResponse(result.User),
	}
	if result.Warning != "" {
		resp["warning"] = result.Warning
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate by username and return a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{message=string,token=string,expires_at=string,user=models.UserResponse}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	result, err := s.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if models.ErrorCode(err) == auth.CodeEmailNotVerified {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":            "Your email is not verified. Please check your email for verification link.",
				"code":             auth.CodeEmailNotVerified,
				"unverified_email": true,
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Login successful",
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       models.NewUserResponse(result.User),
	})
}

// RefreshToken handles POST /api/auth/refresh-token
// @Summary Refresh session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string,token=string,expires_at=string,user=models.UserResponse}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh-token [post]
func (s *Server) RefreshToken(c *fiber.Ctx) error {
	result, err := s.authService.Refresh(c.UserContext(), currentUser(c))
	if err != nil {
		code := models.ErrorCode(err)
		if code == auth.CodeAccountInactive || code == auth.CodeEmailNotVerified {
			return denyRequest(c, &auth.Denial{
				Status:  fiber.StatusUnauthorized,
				Code:    code,
				Message: err.Error(),
				Action:  auth.ActionLogout,
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Token refreshed successfully",
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       models.NewUserResponse(result.User),
	})
}

// VerifyToken handles GET /api/auth/verify-token
// @Summary Check that the bearer token is still valid
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{valid=bool,user_id=int,username=string,role=string}
// @Router /auth/verify-token [get]
func (s *Server) VerifyToken(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.JSON(fiber.Map{
		"valid":    true,
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// GetProfile handles GET /api/auth/profile
// @Summary Current user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Router /auth/profile [get]
func (s *Server) GetProfile(c *fiber.Ctx) error {
	return c.JSON(models.NewUserResponse(currentUser(c)))
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so the client
// discards its copy.
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Successfully logged out"})
}

// GetPublicProfile handles GET /api/auth/users/:id
// @Summary Public user profile with seller rating
// @Tags auth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.PublicUserResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /auth/users/{id} [get]
func (s *Server) GetPublicProfile(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	user, rating, err := s.authService.PublicProfile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.NewPublicUserResponse(user, rating))
}
