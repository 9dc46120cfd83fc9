package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-portal/internal/api/dto"
	"github.com/spec-kit/support-portal/internal/domain"
	"github.com/spec-kit/support-portal/internal/richtext"
	"github.com/spec-kit/support-portal/internal/service"
	"github.com/spec-kit/support-portal/internal/session"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// AnalystHandler manages the triage dashboard endpoints.
type AnalystHandler struct {
	analyst  *service.AnalystService
	renderer *richtext.Renderer
}

// NewAnalystHandler constructs handler.
func NewAnalystHandler(analyst *service.AnalystService, renderer *richtext.Renderer) *AnalystHandler {
	return &AnalystHandler{analyst: analyst, renderer: renderer}
}

// ListTickets GET /analyst/conversaciones.
func (h *AnalystHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}

	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 10)
	uiFilter := domain.UIStatus(c.Query("status"))

	result, err := h.analyst.ListTickets(c.UserContext(), principal.BackendToken, page, pageSize, uiFilter)
	if err != nil {
		return err
	}

	items := make([]dto.TicketSummary, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, dto.TicketSummary{
			ID:        item.ID,
			Subject:   item.Subject,
			User:      item.User,
			Service:   item.Service,
			Level:     string(item.Level),
			Status:    string(item.Status),
			CreatedAt: item.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": dto.TicketListResponse{Items: items, Total: result.Total}})
}

// GetTicket GET /analyst/conversaciones/:id.
func (h *AnalystHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	detail, err := h.analyst.GetTicket(c.UserContext(), principal.BackendToken, id)
	if err != nil {
		return err
	}

	conv := make([]dto.ChatMessageResponse, 0, len(detail.Transcript))
	for _, msg := range detail.Transcript {
		out := dto.ChatMessageResponse{
			ID:      msg.ID,
			Role:    string(msg.Role),
			Content: msg.Content,
		}
		if msg.Role == domain.ChatRoleAssistant {
			if html, renderErr := h.renderer.Render(msg.Content); renderErr == nil {
				out.HTML = html
			}
		}
		conv = append(conv, out)
	}

	allowed := make([]string, 0, len(detail.AllowedNext))
	for _, s := range detail.AllowedNext {
		allowed = append(allowed, string(s))
	}

	resp := dto.TicketDetailResponse{
		ID:           detail.Ticket.ID,
		Subject:      detail.Ticket.Subject,
		Type:         detail.Ticket.Type,
		User:         detail.Ticket.User,
		Company:      detail.Ticket.Company,
		Service:      detail.Ticket.Service,
		Email:        detail.Ticket.Email,
		Level:        string(detail.Ticket.Level),
		Status:       string(detail.Status),
		CreatedAt:    detail.Ticket.CreatedAt,
		Conversation: conv,
		AllowedNext:  allowed,
		SelectLocked: detail.SelectLocked,
	}
	if sla := detail.Ticket.Level.ResponseSLA(); sla > 0 {
		resp.ResponseSLA = sla.String()
	}
	if !detail.Ticket.UpdatedAt.IsZero() {
		updated := detail.Ticket.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return c.JSON(fiber.Map{"data": resp})
}

// UpdateStatus PUT /analyst/tickets/:id/status.
func (h *AnalystHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	id, err := parsePathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CurrentStatus == "" || req.Status == "" {
		return apperrors.NewValidationError("current_status, status required", nil)
	}

	detail, err := h.analyst.SaveStatus(c.UserContext(), principal.BackendToken, service.SaveStatusInput{
		TicketID:      id,
		CurrentStatus: domain.UIStatus(req.CurrentStatus),
		NewStatus:     domain.UIStatus(req.Status),
		Level:         domain.TicketLevel(req.Level),
		Description:   req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.UpdateStatusResponse{
		Status:    string(detail.CurrentStatus),
		Level:     string(detail.CurrentLevel),
		UpdatedAt: detail.UpdatedAt,
		Feedback:  detail.Feedback,
	}})
}

// Escalate PUT /analyst/tickets/:id/derivar.
func (h *AnalystHandler) Escalate(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	id, err := parsePathID(c)
	if err != nil {
		return err
	}
	var req dto.EscalateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.analyst.Escalate(c.UserContext(), principal.BackendToken, id, req.Motivo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.EscalateResponse{
		UpdatedAt:       result.UpdatedAt,
		RedirectTo:      result.RedirectTo,
		RedirectAfterMS: result.RedirectAfter.Milliseconds(),
	}})
}

func parsePathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid ticket id", nil)
	}
	return id, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
