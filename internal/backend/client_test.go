package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-portal/internal/config"
	"github.com/spec-kit/support-portal/internal/domain"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(config.BackendConfig{BaseURL: server.URL, TimeoutSeconds: 5}, zap.NewNop())
	return client, server
}

func TestClient_Chat(t *testing.T) {
	var gotAuth string
	var gotBody ChatRequest

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(ChatResponse{Response: "hola", ThreadID: "t-1"}) //nolint:errcheck
	}))

	resp, err := client.Chat(context.Background(), "tok", "mi impresora falla", "")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "mi impresora falla", gotBody.Query)
	assert.Empty(t, gotBody.ThreadID)
	assert.Equal(t, "hola", resp.Response)
	assert.Equal(t, "t-1", resp.ThreadID)
}

func TestClient_UpstreamDetailPreserved(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "El analista no está asignado"}) //nolint:errcheck
	}))

	_, err := client.EscalateTicket(context.Background(), "tok", 7, "motivo suficientemente largo")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "El analista no está asignado", domainErr.Message)
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
}

func TestClient_GenericFallbackWithoutDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>panic</html>")) //nolint:errcheck
	}))

	_, err := client.Chat(context.Background(), "tok", "hola", "")
	require.Error(t, err)
	assert.Equal(t, GenericFailureMessage, apperrors.ToDomainError(err).Message)
}

func TestClient_TransportFailure(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := client.Chat(context.Background(), "tok", "hola", "")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, GenericFailureMessage, domainErr.Message)
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
}

func TestClient_ListConversations(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analista/conversaciones", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "40", r.URL.Query().Get("offset"))
		assert.Equal(t, "en atención", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode(ConversationPage{ //nolint:errcheck
			Items: []TicketRecord{{ID: 1, Subject: "VPN caída", Status: "en atención"}},
			Total: 41,
		})
	}))

	page, err := client.ListConversations(context.Background(), "tok", 20, 40, "en atención")
	require.NoError(t, err)
	assert.Equal(t, 41, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "VPN caída", page.Items[0].Subject)
}

func TestClient_UpdateTicketStatus(t *testing.T) {
	var gotBody UpdateStatusRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/analista/tickets/9/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(TicketRecord{ID: 9, Status: "cerrado", Level: "Alto"}) //nolint:errcheck
	}))

	record, err := client.UpdateTicketStatus(context.Background(), "tok", 9, UpdateStatusRequest{
		Status:      "cerrado",
		Level:       "Alto",
		Description: "resuelto",
	})
	require.NoError(t, err)
	assert.Equal(t, "cerrado", gotBody.Status)
	assert.Equal(t, "resuelto", gotBody.Description)
	assert.Equal(t, "cerrado", record.Status)
}

func TestClient_ExchangeGoogleToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/google/login/analista", r.URL.Path)
		// The exchange itself is unauthenticated.
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(TokenExchangeResponse{AccessToken: "backend-token"}) //nolint:errcheck
	}))

	resp, err := client.ExchangeGoogleToken(context.Background(), domain.RoleAnalista, "google-id-token")
	require.NoError(t, err)
	assert.Equal(t, "backend-token", resp.AccessToken)
}
