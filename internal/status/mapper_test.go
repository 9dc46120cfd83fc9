package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-portal/internal/domain"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"  Aceptado ", "aceptado"},
		{"EN ATENCIÓN", "en atencion"},
		{"En Atención", "en atencion"},
		{"cerrado", "cerrado"},
		{"Crítico", "critico"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.raw), "input %q", tc.raw)
	}
}

func TestToUI(t *testing.T) {
	cases := map[string]domain.UIStatus{
		"aceptado":    domain.UIStatusAceptado,
		"Aceptado":    domain.UIStatusAceptado,
		"abierto":     domain.UIStatusAceptado,
		"en proceso":  domain.UIStatusAceptado,
		"en progreso": domain.UIStatusAceptado,
		"en atención": domain.UIStatusEnAtencion,
		"en atencion": domain.UIStatusEnAtencion,
		"EN ATENCIÓN": domain.UIStatusEnAtencion,
		"cerrado":     domain.UIStatusFinalizado,
		"finalizado":  domain.UIStatusFinalizado,
		"cancelado":   domain.UIStatusCancelado,
		"rechazado":   domain.UIStatusCancelado,
		"  Cerrado  ": domain.UIStatusFinalizado,
	}
	for raw, want := range cases {
		got, err := ToUI(raw)
		require.NoError(t, err, "input %q", raw)
		assert.Equal(t, want, got, "input %q", raw)
	}
}

func TestToUI_UnknownStatus(t *testing.T) {
	for _, raw := range []string{"pendiente", "", "archived", "zzz"} {
		_, err := ToUI(raw)
		require.Error(t, err, "input %q", raw)

		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNKNOWN_STATUS", domainErr.Code)
		assert.Equal(t, 502, domainErr.HTTPStatus)
	}
}

func TestFromUI(t *testing.T) {
	assert.Equal(t, domain.TicketStatusAceptado, FromUI(domain.UIStatusAceptado))
	assert.Equal(t, domain.TicketStatusEnAtencion, FromUI(domain.UIStatusEnAtencion))
	assert.Equal(t, domain.TicketStatusCerrado, FromUI(domain.UIStatusFinalizado))
	assert.Equal(t, domain.TicketStatusCancelado, FromUI(domain.UIStatusCancelado))

	// Labels outside the table pass through untouched.
	assert.Equal(t, domain.TicketStatus("Custom"), FromUI(domain.UIStatus("Custom")))
}

func TestRoundTrip(t *testing.T) {
	for _, ui := range []domain.UIStatus{
		domain.UIStatusAceptado,
		domain.UIStatusEnAtencion,
		domain.UIStatusFinalizado,
		domain.UIStatusCancelado,
	} {
		got, err := ToUI(string(FromUI(ui)))
		require.NoError(t, err)
		assert.Equal(t, ui, got)
	}
}
