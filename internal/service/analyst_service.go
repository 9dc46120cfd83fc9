package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-portal/internal/backend"
	"github.com/spec-kit/support-portal/internal/domain"
	"github.com/spec-kit/support-portal/internal/escalation"
	"github.com/spec-kit/support-portal/internal/events"
	"github.com/spec-kit/support-portal/internal/status"
	"github.com/spec-kit/support-portal/internal/ticketflow"
)

// TicketAPI is the slice of the upstream client the analyst workflows need.
type TicketAPI interface {
	ListConversations(ctx context.Context, token string, limit, offset int, statusFilter string) (*backend.ConversationPage, error)
	GetConversation(ctx context.Context, token string, id int64) (*backend.ConversationDetail, error)
	UpdateTicketStatus(ctx context.Context, token string, id int64, req backend.UpdateStatusRequest) (*backend.TicketRecord, error)
	EscalateTicket(ctx context.Context, token string, id int64, motivo string) (*backend.TicketRecord, error)
}

// AnalystService coordinates ticket triage workflows.
type AnalystService struct {
	api        TicketAPI
	escalator  *escalation.Controller
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AnalystDependencies bundles collaborators for the service.
type AnalystDependencies struct {
	API        TicketAPI
	Escalator  *escalation.Controller
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAnalystService constructs the service.
func NewAnalystService(deps AnalystDependencies) *AnalystService {
	return &AnalystService{
		api:        deps.API,
		escalator:  deps.Escalator,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// TicketSummary is a ticket row for the dashboard list, statuses already
// translated to UI labels.
type TicketSummary struct {
	ID        int64
	Subject   string
	User      string
	Service   string
	Level     domain.TicketLevel
	Status    domain.UIStatus
	CreatedAt time.Time
}

// TicketPage is one page of the dashboard list.
type TicketPage struct {
	Items []TicketSummary
	Total int
}

// TicketDetail is the full analyst view of a ticket: data card, transcript
// and the allowed next statuses for the select control.
type TicketDetail struct {
	Ticket       domain.Ticket
	Status       domain.UIStatus
	Transcript   []domain.ChatMessage
	AllowedNext  []domain.UIStatus
	SelectLocked bool
}

// ListTickets returns a page of tickets, optionally filtered by UI status.
func (s *AnalystService) ListTickets(ctx context.Context, token string, page, pageSize int, uiFilter domain.UIStatus) (*TicketPage, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	filter := ""
	if uiFilter != "" {
		filter = string(status.FromUI(uiFilter))
	}

	resp, err := s.api.ListConversations(ctx, token, pageSize, (page-1)*pageSize, filter)
	if err != nil {
		return nil, err
	}

	items := make([]TicketSummary, 0, len(resp.Items))
	for _, record := range resp.Items {
		ui, err := status.ToUI(record.Status)
		if err != nil {
			return nil, err
		}
		items = append(items, TicketSummary{
			ID:        record.ID,
			Subject:   record.Subject,
			User:      record.User,
			Service:   record.Service,
			Level:     domain.TicketLevel(record.Level),
			Status:    ui,
			CreatedAt: record.CreatedAt,
		})
	}
	return &TicketPage{Items: items, Total: resp.Total}, nil
}

// GetTicket fetches a ticket with its transcript for the detail page.
func (s *AnalystService) GetTicket(ctx context.Context, token string, id int64) (*TicketDetail, error) {
	detail, err := s.api.GetConversation(ctx, token, id)
	if err != nil {
		return nil, err
	}
	ui, err := status.ToUI(detail.Status)
	if err != nil {
		return nil, err
	}

	transcript := make([]domain.ChatMessage, 0, len(detail.Conversation))
	for _, msg := range detail.Conversation {
		role := domain.ChatRoleUser
		// The backend stores the assistant side as "agent".
		if msg.Role == "agent" || msg.Role == "assistant" {
			role = domain.ChatRoleAssistant
		}
		transcript = append(transcript, domain.ChatMessage{
			ID:      uuid.NewString(),
			Role:    role,
			Content: msg.Content,
		})
	}

	var updatedAt time.Time
	if detail.UpdatedAt != nil {
		updatedAt = *detail.UpdatedAt
	}

	return &TicketDetail{
		Ticket: domain.Ticket{
			ID:        detail.ID,
			Subject:   detail.Subject,
			Type:      detail.Type,
			User:      detail.User,
			Company:   detail.Company,
			Service:   detail.Service,
			Email:     detail.Email,
			Level:     domain.TicketLevel(detail.Level),
			Status:    domain.TicketStatus(status.Normalize(detail.Status)),
			CreatedAt: detail.CreatedAt,
			UpdatedAt: updatedAt,
		},
		Status:       ui,
		Transcript:   transcript,
		AllowedNext:  ticketflow.AllowedNextStatuses(ui),
		SelectLocked: ui.IsTerminal(),
	}, nil
}

// SaveStatusInput carries the analyst's pending choices for a save.
type SaveStatusInput struct {
	TicketID      int64
	CurrentStatus domain.UIStatus
	NewStatus     domain.UIStatus
	Level         domain.TicketLevel
	Description   string
}

// SaveStatus validates and persists a status/level change through the
// detail controller.
func (s *AnalystService) SaveStatus(ctx context.Context, token string, input SaveStatusInput) (*ticketflow.Detail, error) {
	detail := ticketflow.NewDetail(input.TicketID, input.CurrentStatus, input.Level)
	detail.SelectedStatus = input.NewStatus
	detail.SelectedLevel = input.Level
	detail.Description = input.Description

	if err := detail.Save(ctx, s.api, token); err != nil {
		return detail, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: input.TicketID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: input.CurrentStatus,
			NewStatus: detail.CurrentStatus,
			Level:     string(detail.CurrentLevel),
		},
	})
	return detail, nil
}

// Escalate hands the ticket to a higher-tier analyst.
func (s *AnalystService) Escalate(ctx context.Context, token string, ticketID int64, reason string) (*escalation.Result, error) {
	result, err := s.escalator.Escalate(ctx, token, ticketID, reason)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketEscalated,
		TicketID: ticketID,
		Payload:  events.TicketEscalatedPayload{Motivo: reason},
	})
	return result, nil
}

func (s *AnalystService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
