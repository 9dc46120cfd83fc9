package backend

import (
	"context"
	"net/http"

	"github.com/spec-kit/support-portal/internal/domain"
)

type tokenExchangeRequest struct {
	IDToken string `json:"id_token"`
}

// TokenExchangeResponse carries the backend access token issued for a
// verified Google identity.
type TokenExchangeResponse struct {
	AccessToken string `json:"access_token"`
}

// ExchangeGoogleToken trades a Google id_token for a backend access token
// scoped to the requested role.
func (c *Client) ExchangeGoogleToken(ctx context.Context, role domain.Role, idToken string) (*TokenExchangeResponse, error) {
	var resp TokenExchangeResponse
	if err := c.doJSON(ctx, http.MethodPost, c.path("/api/auth/google/login/%s", role), "", tokenExchangeRequest{IDToken: idToken}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
