// Package backend is the typed client for the upstream ticketing API. All
// authoritative ticket state lives behind this contract; the portal only
// reads, displays and requests mutations.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-portal/internal/config"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// GenericFailureMessage is shown when the upstream gives no usable detail.
const GenericFailureMessage = "Ocurrió un error al comunicarse con el servicio de soporte. Por favor, intenta de nuevo más tarde."

// Client talks to the upstream ticketing backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a client from configuration.
func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

// errorBody is the upstream error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

// doJSON performs a request and decodes a 2xx response into out. Non-2xx
// responses become DomainErrors carrying the upstream detail verbatim when
// present; transport and decode failures collapse to the generic fallback.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed", zap.String("path", path), zap.Error(err))
		return apperrors.NewUpstreamError(GenericFailureMessage, http.StatusBadGateway)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("backend response unreadable", zap.String("path", path), zap.Error(err))
		return apperrors.NewUpstreamError(GenericFailureMessage, http.StatusBadGateway)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.upstreamError(path, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("backend response undecodable", zap.String("path", path), zap.Error(err))
		return apperrors.NewUpstreamError(GenericFailureMessage, http.StatusBadGateway)
	}
	return nil
}

func (c *Client) upstreamError(path string, status int, raw []byte) error {
	detail := GenericFailureMessage
	var parsed errorBody
	if err := json.Unmarshal(raw, &parsed); err == nil && strings.TrimSpace(parsed.Detail) != "" {
		detail = parsed.Detail
	}
	c.logger.Info("backend rejected request",
		zap.String("path", path),
		zap.Int("status", status),
		zap.String("detail", detail))
	return apperrors.NewUpstreamError(detail, status)
}

func (c *Client) path(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
