package dto

import "time"

// TicketSummary is one dashboard row.
type TicketSummary struct {
	ID        int64     `json:"id"`
	Subject   string    `json:"subject"`
	User      string    `json:"user"`
	Service   string    `json:"service"`
	Level     string    `json:"level"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketListResponse is one page of the dashboard.
type TicketListResponse struct {
	Items []TicketSummary `json:"items"`
	Total int             `json:"total"`
}

// TicketDetailResponse is the analyst detail view.
type TicketDetailResponse struct {
	ID           int64                 `json:"id"`
	Subject      string                `json:"subject"`
	Type         string                `json:"type"`
	User         string                `json:"user"`
	Company      string                `json:"company"`
	Service      string                `json:"service"`
	Email        string                `json:"email"`
	Level        string                `json:"level"`
	Status       string                `json:"status"`
	ResponseSLA  string                `json:"response_sla,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    *time.Time            `json:"updated_at,omitempty"`
	Conversation []ChatMessageResponse `json:"conversation"`
	AllowedNext  []string              `json:"allowed_next_statuses"`
	SelectLocked bool                  `json:"select_locked"`
}

// UpdateStatusRequest carries the analyst's pending choices.
type UpdateStatusRequest struct {
	CurrentStatus string `json:"current_status"`
	Status        string `json:"status"`
	Level         string `json:"level"`
	Description   string `json:"description,omitempty"`
}

// UpdateStatusResponse mirrors the saved state.
type UpdateStatusResponse struct {
	Status    string `json:"status"`
	Level     string `json:"level"`
	UpdatedAt string `json:"updated_at,omitempty"`
	Feedback  string `json:"feedback"`
}

// EscalateRequest carries the escalation justification.
type EscalateRequest struct {
	Motivo string `json:"motivo"`
}

// EscalateResponse describes a successful handoff.
type EscalateResponse struct {
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	RedirectTo      string     `json:"redirect_to"`
	RedirectAfterMS int64      `json:"redirect_after_ms"`
}
