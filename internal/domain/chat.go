package domain

// ChatRole identifies the author of a conversation message.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of an intake conversation. The feedback and
// contact-support flags are derived from heuristics on the assistant reply,
// not from a structured upstream field.
type ChatMessage struct {
	ID                 string   `json:"id"`
	Role               ChatRole `json:"role"`
	Content            string   `json:"content"`
	ShowFeedback       bool     `json:"show_feedback,omitempty"`
	ShowContactSupport bool     `json:"show_contact_support,omitempty"`
}

// Conversation is the per-session chat state the portal caches. Once locked,
// only a full reset (new thread) accepts input again.
type Conversation struct {
	ThreadID      string        `json:"thread_id,omitempty"`
	Messages      []ChatMessage `json:"messages"`
	Locked        bool          `json:"locked"`
	OfferNewChat  bool          `json:"offer_new_chat"`
	CreatedTicket *TicketCard   `json:"created_ticket,omitempty"`
}

// TicketCard is the lightweight summary extracted from an assistant reply
// that announced a ticket creation.
type TicketCard struct {
	ID           string `json:"id"`
	Subject      string `json:"subject"`
	Type         string `json:"type,omitempty"`
	User         string `json:"user,omitempty"`
	Company      string `json:"company,omitempty"`
	Service      string `json:"service,omitempty"`
	Level        string `json:"level,omitempty"`
	Status       string `json:"status,omitempty"`
	Date         string `json:"date,omitempty"`
	ResponseTime string `json:"response_time,omitempty"`
}
