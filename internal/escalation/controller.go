// Package escalation implements the one-way handoff of a ticket to a
// higher-tier analyst.
package escalation

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/spec-kit/support-portal/internal/backend"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// MinReasonLength is the minimum justification length after trimming.
const MinReasonLength = 10

// ReasonTooShortMessage is the local validation error.
const ReasonTooShortMessage = "El motivo debe tener al menos 10 caracteres"

// Domain messages mapped from upstream rejections.
const (
	TopTierMessage     = "Los analistas de nivel 3 no pueden derivar tickets a un nivel superior."
	NotAssignedMessage = "Solo el analista asignado puede derivar este ticket."
	NoHigherMessage    = "No hay un analista de nivel superior disponible."
)

// ListPath is where the analyst is sent after a successful escalation.
const ListPath = "/analyst/dashboard"

// Escalator is the slice of the upstream client this controller needs.
type Escalator interface {
	EscalateTicket(ctx context.Context, token string, id int64, motivo string) (*backend.TicketRecord, error)
}

// Result describes a successful escalation. The redirect delay gives the
// analyst time to read the success notice before leaving the page.
type Result struct {
	UpdatedAt     *time.Time
	RedirectTo    string
	RedirectAfter time.Duration
}

// Controller validates and executes escalations.
type Controller struct {
	client        Escalator
	redirectDelay time.Duration
}

// NewController builds a controller. A non-positive delay falls back to the
// standard two seconds.
func NewController(client Escalator, redirectDelay time.Duration) *Controller {
	if redirectDelay <= 0 {
		redirectDelay = 2 * time.Second
	}
	return &Controller{client: client, redirectDelay: redirectDelay}
}

// Escalate validates the justification locally and hands the ticket off.
// A reason shorter than MinReasonLength never reaches the network.
func (c *Controller) Escalate(ctx context.Context, token string, ticketID int64, reason string) (*Result, error) {
	trimmed := strings.TrimSpace(reason)
	if len([]rune(trimmed)) < MinReasonLength {
		return nil, apperrors.NewValidationError(ReasonTooShortMessage, nil)
	}

	record, err := c.client.EscalateTicket(ctx, token, ticketID, trimmed)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	return &Result{
		UpdatedAt:     record.UpdatedAt,
		RedirectTo:    ListPath,
		RedirectAfter: c.redirectDelay,
	}, nil
}

// mapUpstreamError turns known upstream rejections into domain messages.
// Anything else keeps the backend detail verbatim.
func mapUpstreamError(err error) error {
	domainErr := apperrors.ToDomainError(err)
	switch domainErr.HTTPStatus {
	case http.StatusForbidden:
		lowered := strings.ToLower(domainErr.Message)
		if strings.Contains(lowered, "nivel 3") {
			return apperrors.NewForbidden(TopTierMessage)
		}
		if strings.Contains(lowered, "no está asignado") || strings.Contains(lowered, "no esta asignado") {
			return apperrors.NewForbidden(NotAssignedMessage)
		}
	case http.StatusConflict:
		return apperrors.NewConflict(NoHigherMessage, nil)
	}
	return err
}
