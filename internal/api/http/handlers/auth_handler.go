package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-portal/internal/api/dto"
	"github.com/spec-kit/support-portal/internal/domain"
	"github.com/spec-kit/support-portal/internal/service"
	"github.com/spec-kit/support-portal/internal/session"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// AuthHandler exposes the Google login flow and the role-based home
// redirect.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// StartLogin POST /auth/google/start.
func (h *AuthHandler) StartLogin(c *fiber.Ctx) error {
	var req dto.StartLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	role := domain.Role(req.Role)
	if !role.Valid() {
		return apperrors.NewValidationError("role must be admin, analista or colaborador", nil)
	}

	state, err := h.auth.StartLogin(c.UserContext(), role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StartLoginResponse{State: state}})
}

// CompleteLogin POST /auth/google/login.
func (h *AuthHandler) CompleteLogin(c *fiber.Ctx) error {
	var req dto.CompleteLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.State == "" || req.IDToken == "" {
		return apperrors.NewValidationError("state, id_token required", nil)
	}

	result, err := h.auth.CompleteLogin(c.UserContext(), req.State, req.IDToken, req.Email, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		AccessToken: result.SessionToken,
		ExpiresAt:   result.ExpiresAt,
		Role:        string(result.Role),
		Home:        result.HomePath,
	}})
}

// Home GET /portal/home sends each role to its own dashboard.
func (h *AuthHandler) Home(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return c.Redirect(principal.Role.HomePath(), fiber.StatusFound)
}
