package session

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/support-portal/internal/domain"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// UsedStateStore is the slice of the Redis client used to track consumed
// state tokens.
type UsedStateStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// StateManager issues the signed one-time state parameter carried through
// the OAuth round-trip. The state remembers which role the user picked on
// the login screen; it is single-use and short-lived, so an unauthenticated
// endpoint can never toggle another session's role.
type StateManager struct {
	secret []byte
	ttl    time.Duration
	redis  UsedStateStore
}

// NewStateManager builds a manager backed by Redis for single-use tracking.
func NewStateManager(secret string, ttl time.Duration, client UsedStateStore) *StateManager {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StateManager{secret: []byte(secret), ttl: ttl, redis: client}
}

// stateClaims is the state JWT payload.
type stateClaims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a state token for the chosen role.
func (sm *StateManager) Issue(ctx context.Context, role domain.Role) (string, error) {
	if !role.Valid() {
		return "", apperrors.NewValidationError("rol no válido", map[string]any{"role": role})
	}
	now := time.Now()
	claims := &stateClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(sm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(sm.secret)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return signed, nil
}

// Consume validates a state token and burns it. A second consume of the
// same token fails.
func (sm *StateManager) Consume(ctx context.Context, stateToken string) (domain.Role, error) {
	parsed, err := jwt.ParseWithClaims(stateToken, &stateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return sm.secret, nil
	})
	if err != nil {
		return "", apperrors.NewUnauthorized("estado de inicio de sesión inválido o expirado")
	}
	claims, ok := parsed.Claims.(*stateClaims)
	if !ok || !parsed.Valid || !claims.Role.Valid() {
		return "", apperrors.NewUnauthorized("estado de inicio de sesión inválido o expirado")
	}

	if sm.redis != nil {
		// SETNX marks the jti as used; a prior mark means replay.
		fresh, err := sm.redis.SetNX(ctx, "oauth_state:"+claims.ID, "used", sm.ttl).Result()
		if err != nil {
			return "", apperrors.NewInternalError(err)
		}
		if !fresh {
			return "", apperrors.NewUnauthorized("el estado de inicio de sesión ya fue utilizado")
		}
	}

	return claims.Role, nil
}
