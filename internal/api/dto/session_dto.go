package dto

import "time"

// StartLoginRequest selects the role before the OAuth round-trip.
type StartLoginRequest struct {
	Role string `json:"role"`
}

// StartLoginResponse carries the signed one-time state parameter.
type StartLoginResponse struct {
	State string `json:"state"`
}

// CompleteLoginRequest closes the OAuth round-trip.
type CompleteLoginRequest struct {
	State   string `json:"state"`
	IDToken string `json:"id_token"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
}

// SessionResponse is an issued portal session.
type SessionResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Role        string    `json:"role"`
	Home        string    `json:"home"`
}
