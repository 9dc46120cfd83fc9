package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-portal/internal/domain"
)

// fakeUsedStateStore mimics Redis SETNX semantics in memory.
type fakeUsedStateStore struct {
	used map[string]bool
}

func newFakeUsedStateStore() *fakeUsedStateStore {
	return &fakeUsedStateStore{used: map[string]bool{}}
}

func (f *fakeUsedStateStore) SetNX(ctx context.Context, key string, _ interface{}, _ time.Duration) *redis.BoolCmd {
	if f.used[key] {
		return redis.NewBoolResult(false, nil)
	}
	f.used[key] = true
	return redis.NewBoolResult(true, nil)
}

func TestStateManager_IssueAndConsume(t *testing.T) {
	sm := NewStateManager("secret", 5*time.Minute, newFakeUsedStateStore())

	token, err := sm.Issue(context.Background(), domain.RoleColaborador)
	require.NoError(t, err)

	role, err := sm.Consume(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleColaborador, role)
}

func TestStateManager_ConsumeIsSingleUse(t *testing.T) {
	sm := NewStateManager("secret", 5*time.Minute, newFakeUsedStateStore())

	token, err := sm.Issue(context.Background(), domain.RoleAdmin)
	require.NoError(t, err)

	_, err = sm.Consume(context.Background(), token)
	require.NoError(t, err)

	// Replay of the same state is rejected.
	_, err = sm.Consume(context.Background(), token)
	assert.Error(t, err)
}

func TestStateManager_RejectsInvalidRole(t *testing.T) {
	sm := NewStateManager("secret", 5*time.Minute, newFakeUsedStateStore())
	_, err := sm.Issue(context.Background(), domain.Role("superuser"))
	assert.Error(t, err)
}

func TestStateManager_RejectsTamperedToken(t *testing.T) {
	issuer := NewStateManager("secret", 5*time.Minute, newFakeUsedStateStore())
	token, err := issuer.Issue(context.Background(), domain.RoleAnalista)
	require.NoError(t, err)

	verifier := NewStateManager("other-secret", 5*time.Minute, newFakeUsedStateStore())
	_, err = verifier.Consume(context.Background(), token)
	assert.Error(t, err)
}
