// Package chat runs the collaborator intake conversation against the AI
// answering endpoint.
package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-portal/internal/backend"
	"github.com/spec-kit/support-portal/internal/botparse"
	"github.com/spec-kit/support-portal/internal/domain"
	"github.com/spec-kit/support-portal/internal/events"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// Messages injected into the conversation on failure paths. They are spoken
// in the assistant's voice so the visitor sees them inline.
const (
	AuthErrorMessage = "Error de autenticación. No pude verificar tu sesión. Por favor, cierra sesión y vuelve a intentarlo."
	AgentDownMessage = "Lo siento, estoy teniendo problemas para conectarme con el agente de soporte. Por favor, intenta de nuevo más tarde."
)

// LockedMessage rejects input on a locked conversation.
const LockedMessage = "La conversación está bloqueada. Inicia un nuevo chat para enviar otra solicitud."

// Agent is the slice of the upstream client the chat service needs.
type Agent interface {
	Chat(ctx context.Context, token, query, threadID string) (*backend.ChatResponse, error)
}

// Store abstracts the conversation cache.
type Store interface {
	Get(ctx context.Context, sessionID string) (*domain.Conversation, error)
	Save(ctx context.Context, sessionID string, conv *domain.Conversation) error
	Delete(ctx context.Context, sessionID string) error
}

// Service orchestrates conversation turns, the creation heuristics and the
// lock lifecycle.
type Service struct {
	store      Store
	agent      Agent
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewService constructs the service.
func NewService(store Store, agent Agent, dispatcher events.Dispatcher, logger *zap.Logger) *Service {
	return &Service{store: store, agent: agent, dispatcher: dispatcher, logger: logger}
}

// History returns the cached conversation for a session.
func (s *Service) History(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	return s.store.Get(ctx, sessionID)
}

// Reset discards the conversation, starting a fresh thread. This is the only
// way a locked conversation accepts input again.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Type: events.EventChatReset, SessionID: sessionID})
	return nil
}

// Submit runs one conversation turn. The returned conversation reflects all
// injected messages and lock state; callers re-render from it.
func (s *Service) Submit(ctx context.Context, sessionID, backendToken, content string) (*domain.Conversation, error) {
	conv, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if conv.Locked {
		return nil, apperrors.NewConflict(LockedMessage, nil)
	}

	conv.Messages = append(conv.Messages, domain.ChatMessage{
		ID:      uuid.NewString(),
		Role:    domain.ChatRoleUser,
		Content: content,
	})

	// Without a backend token there is nothing to call; the conversation
	// locks with an explanatory assistant message.
	if backendToken == "" {
		conv.Messages = append(conv.Messages, domain.ChatMessage{
			ID:      uuid.NewString(),
			Role:    domain.ChatRoleAssistant,
			Content: AuthErrorMessage,
		})
		conv.Locked = true
		if err := s.store.Save(ctx, sessionID, conv); err != nil {
			return nil, err
		}
		s.publish(ctx, events.Event{
			Type:      events.EventChatLocked,
			SessionID: sessionID,
			Payload:   events.ChatLockedPayload{AuthFailure: true},
		})
		return conv, nil
	}

	resp, err := s.agent.Chat(ctx, backendToken, content, conv.ThreadID)
	if err != nil {
		// Terminal for this turn; the visitor may re-submit.
		s.logger.Warn("chat turn failed", zap.String("session_id", sessionID), zap.Error(err))
		conv.Messages = append(conv.Messages, domain.ChatMessage{
			ID:                 uuid.NewString(),
			Role:               domain.ChatRoleAssistant,
			Content:            AgentDownMessage,
			ShowContactSupport: true,
		})
		if saveErr := s.store.Save(ctx, sessionID, conv); saveErr != nil {
			return nil, saveErr
		}
		return conv, nil
	}

	conv.ThreadID = resp.ThreadID
	conv.Messages = append(conv.Messages, domain.ChatMessage{
		ID:           uuid.NewString(),
		Role:         domain.ChatRoleAssistant,
		Content:      botparse.StripCardMarkup(resp.Response),
		ShowFeedback: true,
	})

	if card := botparse.Extract(resp.Response); card != nil {
		conv.Locked = true
		conv.OfferNewChat = true
		conv.CreatedTicket = card
		s.publish(ctx, events.Event{
			Type:      events.EventChatLocked,
			SessionID: sessionID,
			Payload: events.ChatLockedPayload{
				ThreadID:     conv.ThreadID,
				CardID:       card.ID,
				CardDetected: true,
			},
		})
	}

	if err := s.store.Save(ctx, sessionID, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
