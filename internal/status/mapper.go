// Package status translates between the backend status vocabulary and the
// labels shown in the portal UI.
package status

import (
	"net/http"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/spec-kit/support-portal/internal/domain"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// backendToUI maps normalized backend statuses to UI labels. The backend
// vocabulary is treated as a closed enum: anything outside this table is a
// hard error at the boundary, never a silent default.
var backendToUI = map[string]domain.UIStatus{
	"aceptado":    domain.UIStatusAceptado,
	"abierto":     domain.UIStatusAceptado,
	"en proceso":  domain.UIStatusAceptado,
	"en progreso": domain.UIStatusAceptado,
	"en atencion": domain.UIStatusEnAtencion,
	"cerrado":     domain.UIStatusFinalizado,
	"finalizado":  domain.UIStatusFinalizado,
	"cancelado":   domain.UIStatusCancelado,
	"rechazado":   domain.UIStatusCancelado,
}

// uiToBackend is the strict one-to-one inverse table.
var uiToBackend = map[domain.UIStatus]domain.TicketStatus{
	domain.UIStatusAceptado:   domain.TicketStatusAceptado,
	domain.UIStatusEnAtencion: domain.TicketStatusEnAtencion,
	domain.UIStatusFinalizado: domain.TicketStatusCerrado,
	domain.UIStatusCancelado:  domain.TicketStatusCancelado,
}

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritics and trims the raw value.
func Normalize(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	stripped, _, err := transform.String(deaccent, lowered)
	if err != nil {
		return lowered
	}
	return stripped
}

// ToUI maps a raw backend status string to its UI label. Unrecognized input
// is rejected.
func ToUI(raw string) (domain.UIStatus, error) {
	ui, ok := backendToUI[Normalize(raw)]
	if !ok {
		return "", apperrors.NewDomainError(
			"UNKNOWN_STATUS",
			"estado de ticket no reconocido",
			http.StatusBadGateway,
			map[string]any{"status": raw},
		)
	}
	return ui, nil
}

// FromUI maps a UI label to the value the backend expects. Labels outside the
// table pass through unchanged.
func FromUI(ui domain.UIStatus) domain.TicketStatus {
	if backend, ok := uiToBackend[ui]; ok {
		return backend
	}
	return domain.TicketStatus(ui)
}
