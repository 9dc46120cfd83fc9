// Package ticketflow holds the analyst-side ticket workflow: the status
// transition machine and the detail controller that gates saves.
package ticketflow

import (
	"context"
	"strings"

	"github.com/spec-kit/support-portal/internal/backend"
	"github.com/spec-kit/support-portal/internal/domain"
	"github.com/spec-kit/support-portal/internal/status"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// DescriptionRequiredMessage is the local validation error for a terminal
// transition without a closure reason.
const DescriptionRequiredMessage = "La descripción es obligatoria al cerrar o cancelar un ticket."

// SavedMessage confirms a successful save.
const SavedMessage = "Estado actualizado correctamente."

// allowedTransitions encodes the one-way lifecycle. Terminal statuses map to
// an empty set; AllowedNextStatuses turns that into the disabled singleton.
var allowedTransitions = map[domain.UIStatus][]domain.UIStatus{
	domain.UIStatusAceptado:   {domain.UIStatusEnAtencion, domain.UIStatusFinalizado, domain.UIStatusCancelado},
	domain.UIStatusEnAtencion: {domain.UIStatusFinalizado, domain.UIStatusCancelado},
	domain.UIStatusFinalizado: {},
	domain.UIStatusCancelado:  {},
}

// AllowedNextStatuses returns the statuses the analyst may move the ticket
// to. For a terminal status the result is the singleton holding the current
// status itself, and the select control must stay disabled.
func AllowedNextStatuses(current domain.UIStatus) []domain.UIStatus {
	next, ok := allowedTransitions[current]
	if !ok || len(next) == 0 {
		return []domain.UIStatus{current}
	}
	return append([]domain.UIStatus{current}, next...)
}

// RequiresDescription reports whether saving into the status needs a closure
// reason.
func RequiresDescription(selected domain.UIStatus) bool {
	return selected.IsTerminal()
}

// StatusUpdater is the slice of the upstream client the controller needs.
type StatusUpdater interface {
	UpdateTicketStatus(ctx context.Context, token string, id int64, req backend.UpdateStatusRequest) (*backend.TicketRecord, error)
}

// Detail tracks server-confirmed state next to the analyst's pending choices
// for one ticket. It mirrors the last server response and never owns the
// ticket.
type Detail struct {
	TicketID int64

	CurrentStatus  domain.UIStatus
	SelectedStatus domain.UIStatus
	CurrentLevel   domain.TicketLevel
	SelectedLevel  domain.TicketLevel
	Description    string

	UpdatedAt string
	Feedback  string
}

// NewDetail initializes the controller from a fetched ticket.
func NewDetail(ticketID int64, current domain.UIStatus, level domain.TicketLevel) *Detail {
	return &Detail{
		TicketID:       ticketID,
		CurrentStatus:  current,
		SelectedStatus: current,
		CurrentLevel:   level,
		SelectedLevel:  level,
	}
}

// SelectDisabled reports whether the status control must be disabled.
func (d *Detail) SelectDisabled() bool {
	return d.CurrentStatus.IsTerminal()
}

// SelectStatus records a pending status choice. Moving away from a
// terminal-bound choice discards the closure reason, and any earlier save
// feedback is cleared.
func (d *Detail) SelectStatus(next domain.UIStatus) {
	if RequiresDescription(d.SelectedStatus) && !RequiresDescription(next) {
		d.Description = ""
	}
	d.SelectedStatus = next
	d.Feedback = ""
}

// SelectLevel records a pending level choice. Level is independent of status
// and freely reassignable.
func (d *Detail) SelectLevel(level domain.TicketLevel) {
	d.SelectedLevel = level
	d.Feedback = ""
}

// Save validates locally and then pushes the pending status/level to the
// upstream. Validation failures never reach the network. A single attempt is
// made per call; the caller re-enables the control after completion either
// way.
func (d *Detail) Save(ctx context.Context, updater StatusUpdater, token string) error {
	changingStatus := d.SelectedStatus != d.CurrentStatus

	if changingStatus && !transitionAllowed(d.CurrentStatus, d.SelectedStatus) {
		err := apperrors.NewValidationError("transición de estado no permitida", map[string]any{
			"from": d.CurrentStatus,
			"to":   d.SelectedStatus,
		})
		d.Feedback = apperrors.ToDomainError(err).Message
		return err
	}

	description := strings.TrimSpace(d.Description)
	if changingStatus && RequiresDescription(d.SelectedStatus) && description == "" {
		err := apperrors.NewValidationError(DescriptionRequiredMessage, nil)
		d.Feedback = DescriptionRequiredMessage
		return err
	}

	if d.SelectedLevel != "" && !d.SelectedLevel.Valid() {
		err := apperrors.NewValidationError("nivel de ticket no válido", map[string]any{"level": d.SelectedLevel})
		d.Feedback = apperrors.ToDomainError(err).Message
		return err
	}

	req := backend.UpdateStatusRequest{
		Status: string(status.FromUI(d.SelectedStatus)),
		Level:  string(d.SelectedLevel),
	}
	if RequiresDescription(d.SelectedStatus) {
		req.Description = description
	}

	record, err := updater.UpdateTicketStatus(ctx, token, d.TicketID, req)
	if err != nil {
		d.Feedback = apperrors.ToDomainError(err).Message
		return err
	}

	d.adopt(record)
	d.Feedback = SavedMessage
	return nil
}

// adopt refreshes the server-confirmed state from a save response.
func (d *Detail) adopt(record *backend.TicketRecord) {
	if ui, err := status.ToUI(record.Status); err == nil {
		d.CurrentStatus = ui
		d.SelectedStatus = ui
	} else {
		d.CurrentStatus = d.SelectedStatus
	}
	if record.Level != "" {
		d.CurrentLevel = domain.TicketLevel(record.Level)
		d.SelectedLevel = d.CurrentLevel
	} else {
		d.CurrentLevel = d.SelectedLevel
	}
	if record.UpdatedAt != nil {
		d.UpdatedAt = record.UpdatedAt.Format("02/01/2006 15:04")
	}
}

func transitionAllowed(current, next domain.UIStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
