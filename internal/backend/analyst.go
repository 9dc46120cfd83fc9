package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// TicketRecord is a ticket as the analyst endpoints return it.
type TicketRecord struct {
	ID        int64      `json:"id_ticket"`
	Subject   string     `json:"subject"`
	Type      string     `json:"type"`
	User      string     `json:"user"`
	Company   string     `json:"company"`
	Service   string     `json:"service"`
	Email     string     `json:"email"`
	Level     string     `json:"level"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ConversationPage is one page of the analyst ticket list.
type ConversationPage struct {
	Items []TicketRecord `json:"items"`
	Total int            `json:"total"`
}

// TranscriptMessage is one turn of the stored intake conversation. The
// upstream uses "agent" where the UI says assistant.
type TranscriptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationDetail is a ticket plus its full transcript.
type ConversationDetail struct {
	TicketRecord
	Conversation []TranscriptMessage `json:"conversation"`
}

// UpdateStatusRequest is the body for the status endpoint. Description is
// omitted unless the analyst provided a closure reason.
type UpdateStatusRequest struct {
	Status      string `json:"status"`
	Level       string `json:"level"`
	Description string `json:"description,omitempty"`
}

// escalateRequest carries the escalation justification.
type escalateRequest struct {
	Motivo string `json:"motivo"`
}

// ListConversations fetches a page of tickets, optionally filtered by
// backend status.
func (c *Client) ListConversations(ctx context.Context, token string, limit, offset int, statusFilter string) (*ConversationPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	if statusFilter != "" {
		query.Set("status", statusFilter)
	}
	var page ConversationPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/analista/conversaciones?"+query.Encode(), token, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetConversation fetches a ticket with its transcript.
func (c *Client) GetConversation(ctx context.Context, token string, id int64) (*ConversationDetail, error) {
	var detail ConversationDetail
	if err := c.doJSON(ctx, http.MethodGet, c.path("/api/analista/conversaciones/%d", id), token, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// UpdateTicketStatus saves a status/level change.
func (c *Client) UpdateTicketStatus(ctx context.Context, token string, id int64, req UpdateStatusRequest) (*TicketRecord, error) {
	var record TicketRecord
	if err := c.doJSON(ctx, http.MethodPut, c.path("/api/analista/tickets/%d/status", id), token, req, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// EscalateTicket hands the ticket to a higher-tier analyst.
func (c *Client) EscalateTicket(ctx context.Context, token string, id int64, motivo string) (*TicketRecord, error) {
	var record TicketRecord
	if err := c.doJSON(ctx, http.MethodPut, c.path("/api/analista/tickets/%d/derivar", id), token, escalateRequest{Motivo: motivo}, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
