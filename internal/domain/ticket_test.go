package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUIStatus_IsTerminal(t *testing.T) {
	assert.False(t, UIStatusAceptado.IsTerminal())
	assert.False(t, UIStatusEnAtencion.IsTerminal())
	assert.True(t, UIStatusFinalizado.IsTerminal())
	assert.True(t, UIStatusCancelado.IsTerminal())
}

func TestTicketLevel_ResponseSLA(t *testing.T) {
	assert.Equal(t, 96*time.Hour, TicketLevelBajo.ResponseSLA())
	assert.Equal(t, 48*time.Hour, TicketLevelMedio.ResponseSLA())
	assert.Equal(t, 24*time.Hour, TicketLevelAlto.ResponseSLA())
	assert.Equal(t, 4*time.Hour, TicketLevelCritico.ResponseSLA())
	assert.Zero(t, TicketLevel("Urgente").ResponseSLA())
}

func TestTicketLevel_Valid(t *testing.T) {
	assert.True(t, TicketLevelMedio.Valid())
	assert.False(t, TicketLevel("Urgente").Valid())
	assert.False(t, TicketLevel("").Valid())
}

func TestRole_HomePath(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", RoleAdmin.HomePath())
	assert.Equal(t, "/analyst/dashboard", RoleAnalista.HomePath())
	assert.Equal(t, "/chat", RoleColaborador.HomePath())
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleAnalista.Valid())
	assert.True(t, RoleColaborador.Valid())
	assert.False(t, Role("root").Valid())
	assert.False(t, Role("").Valid())
}
