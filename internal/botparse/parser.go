// Package botparse decides, from the AI agent's free-text reply, whether a
// support ticket was just created, and extracts a summary card when one was.
//
// The agent announces creations in Spanish prose, optionally followed by a
// markdown table with the ticket data. The phrasing is part of the contract
// with the upstream agent, not incidental. Every parse path resolves to a
// value; this package never returns an error.
package botparse

import (
	"encoding/json"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/spec-kit/support-portal/internal/domain"
	"github.com/spec-kit/support-portal/internal/status"
)

// cardMarkerRe matches an embedded structured marker. When present and
// parseable it is preferred over the prose heuristics.
var cardMarkerRe = regexp.MustCompile(`(?is)<card\b[^>]*type\s*=\s*['"](ticket_detail|ticket_created)['"][^>]*>(.*?)</card>`)

// cardBlockRe matches any card block for display stripping.
var cardBlockRe = regexp.MustCompile(`(?is)<card\b[^>]*>.*?</card>`)

// creationPatterns are the phrases the agent uses to announce a created
// ticket. Order is irrelevant; any match counts.
var creationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)he\s+(generado|creado|registrado)\s+(el\s+)?ticket`),
	regexp.MustCompile(`(?i)ticket.*ha\s+sido\s+(generado|creado|registrado)`),
	regexp.MustCompile(`(?i)se\s+ha\s+(generado|creado|registrado).+ticket`),
	regexp.MustCompile(`(?i)ticket\s+#?\d+.*(generado|creado|registrado)`),
	regexp.MustCompile(`(?i)generad[oa]\s+exitosamente`),
	regexp.MustCompile(`(?i)cread[oa]\s+exitosamente`),
	regexp.MustCompile(`(?i)su\s+solicitud\s+ha\s+sido\s+registrada`),
	regexp.MustCompile(`(?i)he\s+procedido\s+a\s+generar`),
}

// Extract inspects an assistant reply and returns the created-ticket card,
// or nil when the reply is ordinary conversation. A creation announcement
// without parseable ticket data still yields a placeholder card so the
// caller locks the conversation.
func Extract(answer string) *domain.TicketCard {
	if answer == "" {
		return nil
	}
	text := html.UnescapeString(answer)

	if card := fromCardMarker(text); card != nil {
		return card
	}

	if !mentionsCreation(text) {
		return nil
	}
	if hasTicketTable(text) {
		if card := fromMarkdownTable(text); card != nil {
			return card
		}
	}
	// Created, details unknown.
	return &domain.TicketCard{ID: "unknown", Subject: "Ticket"}
}

// StripCardMarkup removes embedded card blocks from a reply, leaving the
// prose and table for display. When stripping would leave nothing, the raw
// reply is returned as-is.
func StripCardMarkup(answer string) string {
	cleaned := strings.TrimSpace(cardBlockRe.ReplaceAllString(html.UnescapeString(answer), ""))
	if cleaned == "" {
		return answer
	}
	return cleaned
}

func mentionsCreation(text string) bool {
	for _, pattern := range creationPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

func hasTicketTable(text string) bool {
	return strings.Contains(text, "| ID") && strings.Contains(text, "| Asunto")
}

func fromCardMarker(text string) *domain.TicketCard {
	match := cardMarkerRe.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	var payload struct {
		ID      string `json:"id"`
		Subject string `json:"subject"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(match[2])), &payload); err != nil {
		// Malformed marker; fall back to the prose heuristics.
		return nil
	}
	card := &domain.TicketCard{ID: payload.ID, Subject: payload.Subject}
	if card.ID == "" {
		card.ID = "card-ticket"
	}
	if card.Subject == "" {
		card.Subject = "Ticket"
	}
	return card
}

// fromMarkdownTable reads the ticket table by header name, so column order
// and count do not matter. Returns nil when the table shape is unusable.
func fromMarkdownTable(text string) *domain.TicketCard {
	lines := strings.Split(text, "\n")
	var headerLine, dataLine string
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if strings.Contains(line, "| ID") && strings.Contains(line, "| Asunto") {
			// The data row sits right after the separator row.
			if i+2 < len(lines) && strings.Contains(lines[i+1], "---") {
				headerLine = line
				dataLine = lines[i+2]
			}
			break
		}
	}
	if headerLine == "" || dataLine == "" {
		return nil
	}

	headers := splitRow(headerLine, normalizeHeader)
	cells := splitRow(dataLine, strings.TrimSpace)

	headerStart := indexOf(headers, "id")
	if headerStart == -1 {
		headerStart = 1
	}
	cellStart := 0
	if len(cells) > 0 && cells[0] == "" {
		cellStart = 1
	}

	data := map[string]string{}
	for offset, header := range headers[headerStart:] {
		if header == "" {
			continue
		}
		if idx := offset + cellStart; idx < len(cells) {
			data[header] = cells[idx]
		}
	}

	return &domain.TicketCard{
		ID:           valueOr(data, "id", "#000"),
		Subject:      valueOr(data, "asunto", "Solicitud de soporte"),
		Type:         valueOr(data, "tipo", "Incidencia"),
		User:         valueOr(data, "usuario", "-"),
		Company:      valueOr(data, "empresa", "-"),
		Service:      valueOr(data, "servicio", "-"),
		Level:        valueOr(data, "nivel", "Medio"),
		Status:       valueOr(data, "estado", "Abierto"),
		Date:         dateOrToday(data),
		ResponseTime: valueOr(data, "tiempo_de_respuesta", "24 horas"),
	}
}

func splitRow(row string, clean func(string) string) []string {
	parts := strings.Split(row, "|")
	out := make([]string, len(parts))
	for i, part := range parts {
		out[i] = clean(part)
	}
	return out
}

func normalizeHeader(header string) string {
	return strings.ReplaceAll(status.Normalize(header), " ", "_")
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}

func valueOr(data map[string]string, key, fallback string) string {
	if v := data[key]; v != "" {
		return v
	}
	return fallback
}

func dateOrToday(data map[string]string) string {
	if v := data["fecha_de_creacion"]; v != "" {
		return v
	}
	if v := data["fecha"]; v != "" {
		return v
	}
	return time.Now().Format("02/01/2006")
}
