package service

import (
	"context"
	"strings"

	"github.com/spec-kit/support-portal/internal/backend"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

// Local validation messages for the admin console forms.
const (
	NombreTooShortMessage  = "El nombre debe tener al menos 3 caracteres."
	DominioRequiredMessage = "El dominio es obligatorio."
)

// CatalogAPI is the slice of the upstream client the admin console needs.
type CatalogAPI interface {
	ListServicios(ctx context.Context, token string) ([]backend.Servicio, error)
	CreateServicio(ctx context.Context, token, nombre string) (*backend.Servicio, error)
	UpdateServicio(ctx context.Context, token string, id int64, nombre string) (*backend.Servicio, error)
	DeleteServicio(ctx context.Context, token string, id int64) error
	ListClientes(ctx context.Context, token string) ([]backend.Cliente, error)
	GetCliente(ctx context.Context, token string, id int64) (*backend.ClienteDetail, error)
	CreateCliente(ctx context.Context, token, nombre, dominio string) (*backend.Cliente, error)
	UpdateCliente(ctx context.Context, token string, id int64, nombre, dominio string) (*backend.Cliente, error)
	DeleteCliente(ctx context.Context, token string, id int64) error
}

// AdminService validates admin console input and passes CRUD through to the
// upstream catalog.
type AdminService struct {
	api CatalogAPI
}

// NewAdminService constructs the service.
func NewAdminService(api CatalogAPI) *AdminService {
	return &AdminService{api: api}
}

// ListServicios returns the service catalog.
func (s *AdminService) ListServicios(ctx context.Context, token string) ([]backend.Servicio, error) {
	return s.api.ListServicios(ctx, token)
}

// CreateServicio validates and registers a service.
func (s *AdminService) CreateServicio(ctx context.Context, token, nombre string) (*backend.Servicio, error) {
	nombre, err := validNombre(nombre)
	if err != nil {
		return nil, err
	}
	return s.api.CreateServicio(ctx, token, nombre)
}

// UpdateServicio validates and renames a service.
func (s *AdminService) UpdateServicio(ctx context.Context, token string, id int64, nombre string) (*backend.Servicio, error) {
	nombre, err := validNombre(nombre)
	if err != nil {
		return nil, err
	}
	return s.api.UpdateServicio(ctx, token, id, nombre)
}

// DeleteServicio removes a service.
func (s *AdminService) DeleteServicio(ctx context.Context, token string, id int64) error {
	return s.api.DeleteServicio(ctx, token, id)
}

// ListClientes returns the registered clients.
func (s *AdminService) ListClientes(ctx context.Context, token string) ([]backend.Cliente, error) {
	return s.api.ListClientes(ctx, token)
}

// GetCliente returns a client with assigned services.
func (s *AdminService) GetCliente(ctx context.Context, token string, id int64) (*backend.ClienteDetail, error) {
	return s.api.GetCliente(ctx, token, id)
}

// CreateCliente validates and registers a client.
func (s *AdminService) CreateCliente(ctx context.Context, token, nombre, dominio string) (*backend.Cliente, error) {
	nombre, err := validNombre(nombre)
	if err != nil {
		return nil, err
	}
	dominio = strings.TrimSpace(dominio)
	if dominio == "" {
		return nil, apperrors.NewValidationError(DominioRequiredMessage, nil)
	}
	return s.api.CreateCliente(ctx, token, nombre, dominio)
}

// UpdateCliente validates and updates a client.
func (s *AdminService) UpdateCliente(ctx context.Context, token string, id int64, nombre, dominio string) (*backend.Cliente, error) {
	nombre, err := validNombre(nombre)
	if err != nil {
		return nil, err
	}
	dominio = strings.TrimSpace(dominio)
	if dominio == "" {
		return nil, apperrors.NewValidationError(DominioRequiredMessage, nil)
	}
	return s.api.UpdateCliente(ctx, token, id, nombre, dominio)
}

// DeleteCliente removes a client.
func (s *AdminService) DeleteCliente(ctx context.Context, token string, id int64) error {
	return s.api.DeleteCliente(ctx, token, id)
}

func validNombre(nombre string) (string, error) {
	nombre = strings.TrimSpace(nombre)
	if len([]rune(nombre)) < 3 {
		return "", apperrors.NewValidationError(NombreTooShortMessage, nil)
	}
	return nombre, nil
}
