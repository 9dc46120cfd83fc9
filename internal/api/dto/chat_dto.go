package dto

// ChatSubmitRequest is one collaborator message.
type ChatSubmitRequest struct {
	Message string `json:"message"`
}

// ChatMessageResponse is a rendered conversation turn.
type ChatMessageResponse struct {
	ID                 string `json:"id"`
	Role               string `json:"role"`
	Content            string `json:"content"`
	HTML               string `json:"html,omitempty"`
	ShowFeedback       bool   `json:"show_feedback,omitempty"`
	ShowContactSupport bool   `json:"show_contact_support,omitempty"`
}

// TicketCardResponse is the summary card for a created ticket.
type TicketCardResponse struct {
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

// ConversationResponse is the chat state the client renders from.
type ConversationResponse struct {
	ThreadID      string                `json:"thread_id,omitempty"`
	Messages      []ChatMessageResponse `json:"messages"`
	Locked        bool                  `json:"locked"`
	OfferNewChat  bool                  `json:"offer_new_chat"`
	CreatedTicket *TicketCardResponse   `json:"created_ticket,omitempty"`
}
