package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-portal/internal/backend"
	"github.com/spec-kit/support-portal/internal/domain"
	"github.com/spec-kit/support-portal/internal/events"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

type memoryStore struct {
	conversations map[string]*domain.Conversation
}

func newMemoryStore() *memoryStore {
	return &memoryStore{conversations: map[string]*domain.Conversation{}}
}

func (m *memoryStore) Get(_ context.Context, sessionID string) (*domain.Conversation, error) {
	if conv, ok := m.conversations[sessionID]; ok {
		copied := *conv
		return &copied, nil
	}
	return &domain.Conversation{Messages: []domain.ChatMessage{}}, nil
}

func (m *memoryStore) Save(_ context.Context, sessionID string, conv *domain.Conversation) error {
	copied := *conv
	m.conversations[sessionID] = &copied
	return nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID string) error {
	delete(m.conversations, sessionID)
	return nil
}

type fakeAgent struct {
	calls    int
	lastTurn string
	resp     *backend.ChatResponse
	err      error
}

func (f *fakeAgent) Chat(_ context.Context, _, query, _ string) (*backend.ChatResponse, error) {
	f.calls++
	f.lastTurn = query
	return f.resp, f.err
}

func newTestService(agent Agent) (*Service, *memoryStore, events.Dispatcher) {
	store := newMemoryStore()
	dispatcher := events.NewInMemoryDispatcher()
	return NewService(store, agent, dispatcher, zap.NewNop()), store, dispatcher
}

func TestService_Submit_OrdinaryTurn(t *testing.T) {
	agent := &fakeAgent{resp: &backend.ChatResponse{
		Response: "¿Podrías describir el problema con más detalle?",
		ThreadID: "thread-1",
	}}
	svc, _, _ := newTestService(agent)

	conv, err := svc.Submit(context.Background(), "sess", "token", "mi correo no funciona")
	require.NoError(t, err)

	require.Len(t, conv.Messages, 2)
	assert.Equal(t, domain.ChatRoleUser, conv.Messages[0].Role)
	assert.Equal(t, "mi correo no funciona", conv.Messages[0].Content)
	assert.Equal(t, domain.ChatRoleAssistant, conv.Messages[1].Role)
	assert.True(t, conv.Messages[1].ShowFeedback)
	assert.Equal(t, "thread-1", conv.ThreadID)
	assert.False(t, conv.Locked)
	assert.Nil(t, conv.CreatedTicket)
}

func TestService_Submit_MissingTokenLocksConversation(t *testing.T) {
	agent := &fakeAgent{}
	svc, store, dispatcher := newTestService(agent)

	var locked []events.Event
	dispatcher.Subscribe(events.EventChatLocked, func(_ context.Context, e events.Event) error {
		locked = append(locked, e)
		return nil
	})

	conv, err := svc.Submit(context.Background(), "sess", "", "hola")
	require.NoError(t, err)

	// The agent is never called without credentials.
	assert.Zero(t, agent.calls)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, AuthErrorMessage, conv.Messages[1].Content)
	assert.True(t, conv.Locked)

	require.Len(t, locked, 1)
	payload, ok := locked[0].Payload.(events.ChatLockedPayload)
	require.True(t, ok)
	assert.True(t, payload.AuthFailure)

	// Locked conversations reject further input.
	_, err = svc.Submit(context.Background(), "sess", "token", "otra cosa")
	require.Error(t, err)
	assert.Equal(t, LockedMessage, apperrors.ToDomainError(err).Message)

	// The rejected turn is not recorded.
	saved, err := store.Get(context.Background(), "sess")
	require.NoError(t, err)
	assert.Len(t, saved.Messages, 2)
}

func TestService_Submit_AgentFailureInjectsApology(t *testing.T) {
	agent := &fakeAgent{err: errors.New("connection refused")}
	svc, _, _ := newTestService(agent)

	conv, err := svc.Submit(context.Background(), "sess", "token", "hola")
	require.NoError(t, err)

	require.Len(t, conv.Messages, 2)
	last := conv.Messages[1]
	assert.Equal(t, AgentDownMessage, last.Content)
	assert.True(t, last.ShowContactSupport)
	assert.False(t, conv.Locked)

	// The visitor may simply try again.
	agent.err = nil
	agent.resp = &backend.ChatResponse{Response: "Claro, te ayudo.", ThreadID: "t"}
	conv, err = svc.Submit(context.Background(), "sess", "token", "hola de nuevo")
	require.NoError(t, err)
	assert.Len(t, conv.Messages, 4)
}

func TestService_Submit_TicketCreationLocks(t *testing.T) {
	agent := &fakeAgent{resp: &backend.ChatResponse{
		Response: "He generado el ticket.\n\n| ID | Asunto |\n|----|--------|\n| #55 | Impresora |\n",
		ThreadID: "thread-9",
	}}
	svc, _, dispatcher := newTestService(agent)

	var locked []events.Event
	dispatcher.Subscribe(events.EventChatLocked, func(_ context.Context, e events.Event) error {
		locked = append(locked, e)
		return nil
	})

	conv, err := svc.Submit(context.Background(), "sess", "token", "no imprime nada")
	require.NoError(t, err)

	assert.True(t, conv.Locked)
	assert.True(t, conv.OfferNewChat)
	require.NotNil(t, conv.CreatedTicket)
	assert.Equal(t, "#55", conv.CreatedTicket.ID)
	assert.Equal(t, "Impresora", conv.CreatedTicket.Subject)

	require.Len(t, locked, 1)
	payload, ok := locked[0].Payload.(events.ChatLockedPayload)
	require.True(t, ok)
	assert.True(t, payload.CardDetected)
	assert.Equal(t, "#55", payload.CardID)
}

func TestService_Reset_UnlocksByDiscarding(t *testing.T) {
	agent := &fakeAgent{resp: &backend.ChatResponse{
		Response: "Se ha generado el ticket correspondiente.",
		ThreadID: "thread-2",
	}}
	svc, _, _ := newTestService(agent)

	_, err := svc.Submit(context.Background(), "sess", "token", "ayuda")
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), "sess", "token", "más texto")
	require.Error(t, err)

	require.NoError(t, svc.Reset(context.Background(), "sess"))

	conv, err := svc.History(context.Background(), "sess")
	require.NoError(t, err)
	assert.Empty(t, conv.Messages)
	assert.False(t, conv.Locked)
	assert.Empty(t, conv.ThreadID)

	// A fresh thread accepts input again.
	agent.resp = &backend.ChatResponse{Response: "Hola, ¿en qué ayudo?", ThreadID: "thread-3"}
	conv, err = svc.Submit(context.Background(), "sess", "token", "hola")
	require.NoError(t, err)
	assert.False(t, conv.Locked)
}
