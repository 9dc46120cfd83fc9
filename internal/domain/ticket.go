package domain

import "time"

// TicketStatus enumerates the backend status vocabulary. The upstream API is
// the source of truth for ticket state; these are the only values it emits.
type TicketStatus string

const (
	TicketStatusAceptado   TicketStatus = "aceptado"
	TicketStatusEnAtencion TicketStatus = "en atención"
	TicketStatusCerrado    TicketStatus = "cerrado"
	TicketStatusCancelado  TicketStatus = "cancelado"
)

// UIStatus enumerates the labels shown to analysts and collaborators.
type UIStatus string

const (
	UIStatusAceptado   UIStatus = "Aceptado"
	UIStatusEnAtencion UIStatus = "En Atención"
	UIStatusFinalizado UIStatus = "Finalizado"
	UIStatusCancelado  UIStatus = "Cancelado"
)

// IsTerminal reports whether no further transitions are permitted.
func (s UIStatus) IsTerminal() bool {
	return s == UIStatusFinalizado || s == UIStatusCancelado
}

// TicketLevel enumerates priority tiers.
type TicketLevel string

const (
	TicketLevelBajo    TicketLevel = "Bajo"
	TicketLevelMedio   TicketLevel = "Medio"
	TicketLevelAlto    TicketLevel = "Alto"
	TicketLevelCritico TicketLevel = "Crítico"
)

// levelSLA maps each tier to its expected response time.
var levelSLA = map[TicketLevel]time.Duration{
	TicketLevelBajo:    96 * time.Hour,
	TicketLevelMedio:   48 * time.Hour,
	TicketLevelAlto:    24 * time.Hour,
	TicketLevelCritico: 4 * time.Hour,
}

// ResponseSLA returns the expected response time for the level, or zero for
// an unknown tier.
func (l TicketLevel) ResponseSLA() time.Duration {
	return levelSLA[l]
}

// Valid reports whether the level is one of the four known tiers.
func (l TicketLevel) Valid() bool {
	_, ok := levelSLA[l]
	return ok
}

// Ticket mirrors what the upstream backend exposes about a support request.
// The portal never owns this record; it caches the last fetched or saved
// server response.
type Ticket struct {
	ID        int64
	Subject   string
	Type      string
	User      string
	Company   string
	Service   string
	Email     string
	Level     TicketLevel
	Status    TicketStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
