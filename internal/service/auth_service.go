package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-portal/internal/backend"
	"github.com/spec-kit/support-portal/internal/domain"
	"github.com/spec-kit/support-portal/internal/session"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// IdentityExchanger is the slice of the upstream client the login flow needs.
type IdentityExchanger interface {
	ExchangeGoogleToken(ctx context.Context, role domain.Role, idToken string) (*backend.TokenExchangeResponse, error)
}

// AuthService runs the Google login flow: a signed one-time state remembers
// the chosen role across the OAuth round-trip, and the returned id_token is
// exchanged upstream for a backend access token wrapped in a portal session.
type AuthService struct {
	exchanger IdentityExchanger
	states    *session.StateManager
	tokens    *session.TokenManager
	logger    *zap.Logger
}

// NewAuthService constructs the service.
func NewAuthService(exchanger IdentityExchanger, states *session.StateManager, tokens *session.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{exchanger: exchanger, states: states, tokens: tokens, logger: logger}
}

// StartLogin issues the state parameter for the chosen role.
func (s *AuthService) StartLogin(ctx context.Context, role domain.Role) (string, error) {
	return s.states.Issue(ctx, role)
}

// LoginResult is a completed login.
type LoginResult struct {
	SessionToken string
	ExpiresAt    time.Time
	Role         domain.Role
	HomePath     string
}

// CompleteLogin consumes the state, exchanges the Google id_token upstream
// and issues the portal session.
func (s *AuthService) CompleteLogin(ctx context.Context, stateToken, idToken, email, name string) (*LoginResult, error) {
	if idToken == "" {
		return nil, apperrors.NewValidationError("id_token requerido", nil)
	}

	role, err := s.states.Consume(ctx, stateToken)
	if err != nil {
		return nil, err
	}

	exchange, err := s.exchanger.ExchangeGoogleToken(ctx, role, idToken)
	if err != nil {
		s.logger.Warn("token exchange failed", zap.String("role", string(role)), zap.Error(err))
		return nil, err
	}
	if exchange.AccessToken == "" {
		return nil, apperrors.NewUnauthorized("el servicio de soporte no emitió un token de acceso")
	}

	sessionToken, expiresAt, err := s.tokens.GenerateToken(role, exchange.AccessToken, email, name)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &LoginResult{
		SessionToken: sessionToken,
		ExpiresAt:    expiresAt,
		Role:         role,
		HomePath:     role.HomePath(),
	}, nil
}
