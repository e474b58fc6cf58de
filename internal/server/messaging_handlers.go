package server

import (
	"gatormarket/internal/models"
	"gatormarket/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUnreadCount handles GET /api/messaging/unread-count
// @Summary Total unread messages across conversations
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{unread_count=int}
// @Router /messaging/unread-count [get]
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.conversationService.UnreadCount(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}

// GetConversations handles GET /api/messaging/conversations
// @Summary Inbox for the current user
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ConversationSummary
// @Router /messaging/conversations [get]
func (s *Server) GetConversations(c *fiber.Ctx) error {
	summaries, err := s.conversationService.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if summaries == nil {
		summaries = []models.ConversationSummary{}
	}
	return c.JSON(summaries)
}

// StartConversation handles POST /api/messaging/conversations
// @Summary Start or continue a conversation about a listing
// @Description Reuses the active thread between the same two users on the same product.
// @Tags messaging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.StartConversationInput true "First message"
// @Success 200 {object} object{created=bool,conversation=models.ConversationResponse,message=models.MessageResponse}
// @Success 201 {object} object{created=bool,conversation=models.ConversationResponse,message=models.MessageResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /messaging/conversations [post]
func (s *Server) StartConversation(c *fiber.Ctx) error {
	var req service.StartConversationInput
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	req.BuyerID = currentUserID(c)

	result, err := s.conversationService.Start(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	status := fiber.StatusOK
	if result.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"created":      result.Created,
		"conversation": models.NewConversationResponse(result.Conversation),
		"message":      models.NewMessageResponse(result.Message),
	})
}

// GetConversation handles GET /api/messaging/conversations/:id
// @Summary Conversation with participants
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Success 200 {object} models.ConversationResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /messaging/conversations/{id} [get]
func (s *Server) GetConversation(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	conv, err := s.conversationService.Get(c.UserContext(), currentUserID(c), convID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.NewConversationResponse(conv))
}

// GetMessages handles GET /api/messaging/conversations/:id/messages
// @Summary Messages in a conversation, oldest first
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.MessageResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /messaging/conversations/{id}/messages [get]
func (s *Server) GetMessages(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, maxPaginationLimit)

	messages, err := s.conversationService.ListMessages(c.UserContext(), currentUserID(c), convID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, models.NewMessageResponse(&messages[i]))
	}
	return c.JSON(resp)
}

// SendMessage handles POST /api/messaging/conversations/:id/messages
// @Summary Send a message
// @Tags messaging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param request body object{message_text=string} true "Message"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /messaging/conversations/{id}/messages [post]
func (s *Server) SendMessage(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		MessageText string `json:"message_text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	msg, err := s.conversationService.Send(c.UserContext(), currentUserID(c), convID, req.MessageText)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewMessageResponse(msg))
}

// MarkConversationRead handles POST /api/messaging/conversations/:id/read
// @Summary Mark a conversation read for the current user
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Router /messaging/conversations/{id}/read [post]
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	convID, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.conversationService.MarkRead(c.UserContext(), currentUserID(c), convID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Conversation marked as read"})
}
