package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-portal/internal/api/dto"
	"github.com/spec-kit/support-portal/internal/backend"
	"github.com/spec-kit/support-portal/internal/service"
	"github.com/spec-kit/support-portal/internal/session"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// AdminHandler manages the admin console endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListServicios GET /admin/servicios.
func (h *AdminHandler) ListServicios(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	items, err := h.admin.ListServicios(c.UserContext(), principal.BackendToken)
	if err != nil {
		return err
	}
	out := make([]dto.ServicioResponse, 0, len(items))
	for _, item := range items {
		out = append(out, servicioResponse(item))
	}
	return c.JSON(fiber.Map{"data": out})
}

// CreateServicio POST /admin/servicios.
func (h *AdminHandler) CreateServicio(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.ServicioRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	created, err := h.admin.CreateServicio(c.UserContext(), principal.BackendToken, req.Nombre)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": servicioResponse(*created)})
}

// UpdateServicio PUT /admin/servicios/:id.
func (h *AdminHandler) UpdateServicio(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	id, err := parsePathID(c)
	if err != nil {
		return err
	}
	var req dto.ServicioRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := h.admin.UpdateServicio(c.UserContext(), principal.BackendToken, id, req.Nombre)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": servicioResponse(*updated)})
}

// DeleteServicio DELETE /admin/servicios/:id.
func (h *AdminHandler) DeleteServicio(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	id, err := parsePathID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteServicio(c.UserContext(), principal.BackendToken, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListClientes GET /admin/clientes.
func (h *AdminHandler) ListClientes(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	items, err := h.admin.ListClientes(c.UserContext(), principal.BackendToken)
	if err != nil {
		return err
	}
	out := make([]dto.ClienteResponse, 0, len(items))
	for _, item := range items {
		out = append(out, clienteResponse(item))
	}
	return c.JSON(fiber.Map{"data": out})
}

// GetCliente GET /admin/clientes/:id.
func (h *AdminHandler) GetCliente(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	id, err := parsePathID(c)
	if err != nil {
		return err
	}
	detail, err := h.admin.GetCliente(c.UserContext(), principal.BackendToken, id)
	if err != nil {
		return err
	}
	servicios := make([]dto.ServicioResponse, 0, len(detail.Servicios))
	for _, s := range detail.Servicios {
		servicios = append(servicios, servicioResponse(s))
	}
	return c.JSON(fiber.Map{"data": dto.ClienteDetailResponse{
		ClienteResponse: clienteResponse(detail.Cliente),
		Servicios:       servicios,
	}})
}

// CreateCliente POST /admin/clientes.
func (h *AdminHandler) CreateCliente(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	var req dto.ClienteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	created, err := h.admin.CreateCliente(c.UserContext(), principal.BackendToken, req.Nombre, req.Dominio)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": clienteResponse(*created)})
}

// UpdateCliente PUT /admin/clientes/:id.
func (h *AdminHandler) UpdateCliente(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	id, err := parsePathID(c)
	if err != nil {
		return err
	}
	var req dto.ClienteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	updated, err := h.admin.UpdateCliente(c.UserContext(), principal.BackendToken, id, req.Nombre, req.Dominio)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clienteResponse(*updated)})
}

// DeleteCliente DELETE /admin/clientes/:id.
func (h *AdminHandler) DeleteCliente(c *fiber.Ctx) error {
	principal, ok := session.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("session required")
	}
	id, err := parsePathID(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteCliente(c.UserContext(), principal.BackendToken, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func servicioResponse(s backend.Servicio) dto.ServicioResponse {
	return dto.ServicioResponse{ID: s.ID, Nombre: s.Nombre}
}

func clienteResponse(cl backend.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{ID: cl.ID, Nombre: cl.Nombre, Dominio: cl.Dominio}
}
