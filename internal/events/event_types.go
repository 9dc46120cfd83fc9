package events

import (
	"time"

	"github.com/spec-kit/support-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketEscalated     EventType = "ticket_escalated"
	EventChatLocked          EventType = "chat_locked"
	EventChatReset           EventType = "chat_reset"
)

// Event represents a portal event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	TicketID  int64       `json:"ticket_id,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.UIStatus `json:"old_status"`
	NewStatus domain.UIStatus `json:"new_status"`
	Level     string          `json:"level,omitempty"`
}

// TicketEscalatedPayload payload.
type TicketEscalatedPayload struct {
	Motivo string `json:"motivo"`
}

// ChatLockedPayload payload.
type ChatLockedPayload struct {
	ThreadID     string `json:"thread_id,omitempty"`
	CardID       string `json:"card_id,omitempty"`
	AuthFailure  bool   `json:"auth_failure,omitempty"`
	CardDetected bool   `json:"card_detected"`
}
