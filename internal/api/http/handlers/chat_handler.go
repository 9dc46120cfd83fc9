package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-portal/internal/api/dto"
	"github.com/spec-kit/support-portal/internal/chat"
	"github.com/spec-kit/support-portal/internal/domain"
	"github.com/spec-kit/support-portal/internal/richtext"
	"github.com/spec-kit/support-portal/internal/session"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// ChatHandler manages the collaborator intake conversation.
type ChatHandler struct {
	chat     *chat.Service
	renderer *richtext.Renderer
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *chat.Service, renderer *richtext.Renderer) *ChatHandler {
	return &ChatHandler{chat: chatService, renderer: renderer}
}

// Submit POST /chat.
func (h *ChatHandler) Submit(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.ChatSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return apperrors.NewValidationError("message required", nil)
	}

	conv, err := h.chat.Submit(c.UserContext(), principal.SessionID, principal.BackendToken, message)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.conversationResponse(conv)})
}

// History GET /chat/history.
func (h *ChatHandler) History(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	conv, err := h.chat.History(c.UserContext(), principal.SessionID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.conversationResponse(conv)})
}

// Reset POST /chat/reset.
func (h *ChatHandler) Reset(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	if err := h.chat.Reset(c.UserContext(), principal.SessionID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"reset": true}})
}

func (h *ChatHandler) conversationResponse(conv *domain.Conversation) dto.ConversationResponse {
	messages := make([]dto.ChatMessageResponse, 0, len(conv.Messages))
	for _, msg := range conv.Messages {
		out := dto.ChatMessageResponse{
			ID:                 msg.ID,
			Role:               string(msg.Role),
			Content:            msg.Content,
			ShowFeedback:       msg.ShowFeedback,
			ShowContactSupport: msg.ShowContactSupport,
		}
		if msg.Role == domain.ChatRoleAssistant {
			if html, err := h.renderer.Render(msg.Content); err == nil {
				out.HTML = html
			}
		}
		messages = append(messages, out)
	}

	resp := dto.ConversationResponse{
		ThreadID:     conv.ThreadID,
		Messages:     messages,
		Locked:       conv.Locked,
		OfferNewChat: conv.OfferNewChat,
	}
	if conv.CreatedTicket != nil {
		card := dto.TicketCardResponse(*conv.CreatedTicket)
		resp.CreatedTicket = &card
	}
	return resp
}
