package chat

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/support-portal/internal/domain"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// ConversationStore caches per-session conversation state in Redis. The
// cache is the only place this state lives; losing it simply starts the
// visitor on a fresh thread.
type ConversationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewConversationStore builds a store with the given inactivity TTL.
func NewConversationStore(client *redis.Client, ttl time.Duration) *ConversationStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &ConversationStore{client: client, ttl: ttl}
}

func conversationKey(sessionID string) string {
	return "conversation:" + sessionID
}

// Get loads the conversation for a session, or an empty one when none is
// cached.
func (s *ConversationStore) Get(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	raw, err := s.client.Get(ctx, conversationKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &domain.Conversation{Messages: []domain.ChatMessage{}}, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	var conv domain.Conversation
	if err := json.Unmarshal(raw, &conv); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &conv, nil
}

// Save persists the conversation and refreshes its TTL.
func (s *ConversationStore) Save(ctx context.Context, sessionID string, conv *domain.Conversation) error {
	raw, err := json.Marshal(conv)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.client.Set(ctx, conversationKey(sessionID), raw, s.ttl).Err(); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Delete clears the cached conversation.
func (s *ConversationStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, conversationKey(sessionID)).Err(); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}
