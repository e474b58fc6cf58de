package server

import (
	"gatormarket/internal/models"

	"github.com/gofiber/fiber/v2"
)

type productRequest struct {
	ProductID uint `json:"product_id"`
}

func wishlistItems(entries []models.WishlistEntry) []models.WishlistItemResponse {
	items := make([]models.WishlistItemResponse, 0, len(entries))
	for i := range entries {
		items = append(items, models.NewWishlistItemResponse(&entries[i]))
	}
	return items
}

// AddToWishlist handles POST /api/wishlist/add
// @Summary Add an approved listing to the wishlist
// @Tags wishlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{product_id=int} true "Product"
// @Success 200 {object} object{message=string}
// @Success 201 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /wishlist/add [post]
func (s *Server) AddToWishlist(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	created, err := s.wishlistService.Add(c.UserContext(), currentUserID(c), req.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	if !created {
		return c.JSON(fiber.Map{"message": "Product already in wishlist"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product added to wishlist"})
}

// RemoveFromWishlist handles DELETE /api/wishlist/remove/:productId
// @Summary Remove a listing from the wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /wishlist/remove/{productId} [delete]
func (s *Server) RemoveFromWishlist(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return nil
	}

	if err := s.wishlistService.Remove(c.UserContext(), currentUserID(c), productID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product removed from wishlist"})
}

// GetWishlist handles GET /api/wishlist/user
// @Summary Active wishlist entries
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.WishlistItemResponse
// @Router /wishlist/user [get]
func (s *Server) GetWishlist(c *fiber.Ctx) error {
	return s.listWishlist(c, false)
}

// GetArchivedWishlist handles GET /api/wishlist/archived
// @Summary Archived wishlist entries
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.WishlistItemResponse
// @Router /wishlist/archived [get]
func (s *Server) GetArchivedWishlist(c *fiber.Ctx) error {
	return s.listWishlist(c, true)
}

func (s *Server) listWishlist(c *fiber.Ctx, archived bool) error {
	entries, err := s.wishlistService.List(c.UserContext(), currentUserID(c), archived)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wishlistItems(entries))
}

// GetWishlistNotifications handles GET /api/wishlist/notifications
// @Summary Wishlisted listings sold since the last call
// @Description Each sold listing is reported once.
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.WishlistItemResponse
// @Router /wishlist/notifications [get]
func (s *Server) GetWishlistNotifications(c *fiber.Ctx) error {
	entries, err := s.wishlistService.Notifications(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(wishlistItems(entries))
}

// ArchiveWishlistItem handles PUT /api/wishlist/archive/:productId
// @Summary Archive a wishlist entry
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /wishlist/archive/{productId} [put]
func (s *Server) ArchiveWishlistItem(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return nil
	}

	if err := s.wishlistService.Archive(c.UserContext(), currentUserID(c), productID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Wishlist item archived"})
}

// AddBookmark handles POST /api/auth/bookmarks
// @Summary Bookmark a listing (wishlist alias)
// @Tags bookmarks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{product_id=int} true "Product"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/bookmarks [post]
func (s *Server) AddBookmark(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.ProductID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Missing product_id"))
	}

	if _, err := s.wishlistService.Add(c.UserContext(), currentUserID(c), req.ProductID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product bookmarked successfully"})
}

// RemoveBookmark handles DELETE /api/auth/bookmarks/:productId
// @Summary Remove a bookmark (wishlist alias)
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} object{message=string}
// @Router /auth/bookmarks/{productId} [delete]
func (s *Server) RemoveBookmark(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return nil
	}

	if err := s.wishlistService.Remove(c.UserContext(), currentUserID(c), productID); err != nil {
		if models.ErrorCode(err) != models.CodeNotFound {
			return respondError(c, err)
		}
	}
	return c.JSON(fiber.Map{"message": "Bookmark removed successfully"})
}

// GetBookmarks handles GET /api/auth/bookmarks
// @Summary Bookmarked listings (wishlist alias)
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.WishlistItemResponse
// @Router /auth/bookmarks [get]
func (s *Server) GetBookmarks(c *fiber.Ctx) error {
	return s.listWishlist(c, false)
}

// CheckBookmark handles GET /api/auth/bookmarks/check/:productId
// @Summary Whether a listing is bookmarked
// @Tags bookmarks
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} object{is_bookmarked=bool}
// @Router /auth/bookmarks/check/{productId} [get]
func (s *Server) CheckBookmark(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return nil
	}

	ok, err := s.wishlistService.Contains(c.UserContext(), currentUserID(c), productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"is_bookmarked": ok})
}
