package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-portal/internal/backend"
	apperrors "github.com/spec-kit/support-portal/pkg/util/errorutil"
)

type fakeCatalogAPI struct {
	createdNombre  string
	createdDominio string
	calls          int
}

func (f *fakeCatalogAPI) ListServicios(_ context.Context, _ string) ([]backend.Servicio, error) {
	return []backend.Servicio{{ID: 1, Nombre: "Redes"}}, nil
}

func (f *fakeCatalogAPI) CreateServicio(_ context.Context, _, nombre string) (*backend.Servicio, error) {
	f.calls++
	f.createdNombre = nombre
	return &backend.Servicio{ID: 2, Nombre: nombre}, nil
}

func (f *fakeCatalogAPI) UpdateServicio(_ context.Context, _ string, id int64, nombre string) (*backend.Servicio, error) {
	f.calls++
	return &backend.Servicio{ID: id, Nombre: nombre}, nil
}

func (f *fakeCatalogAPI) DeleteServicio(_ context.Context, _ string, _ int64) error {
	f.calls++
	return nil
}

func (f *fakeCatalogAPI) ListClientes(_ context.Context, _ string) ([]backend.Cliente, error) {
	return []backend.Cliente{{ID: 1, Nombre: "Acme", Dominio: "acme.com"}}, nil
}

func (f *fakeCatalogAPI) GetCliente(_ context.Context, _ string, id int64) (*backend.ClienteDetail, error) {
	return &backend.ClienteDetail{
		Cliente:   backend.Cliente{ID: id, Nombre: "Acme", Dominio: "acme.com"},
		Servicios: []backend.Servicio{{ID: 1, Nombre: "Redes"}},
	}, nil
}

func (f *fakeCatalogAPI) CreateCliente(_ context.Context, _, nombre, dominio string) (*backend.Cliente, error) {
	f.calls++
	f.createdNombre = nombre
	f.createdDominio = dominio
	return &backend.Cliente{ID: 2, Nombre: nombre, Dominio: dominio}, nil
}

func (f *fakeCatalogAPI) UpdateCliente(_ context.Context, _ string, id int64, nombre, dominio string) (*backend.Cliente, error) {
	f.calls++
	return &backend.Cliente{ID: id, Nombre: nombre, Dominio: dominio}, nil
}

func (f *fakeCatalogAPI) DeleteCliente(_ context.Context, _ string, _ int64) error {
	f.calls++
	return nil
}

func TestAdminService_CreateServicio_TrimsAndValidates(t *testing.T) {
	api := &fakeCatalogAPI{}
	svc := NewAdminService(api)

	created, err := svc.CreateServicio(context.Background(), "tok", "  Soporte en sitio  ")
	require.NoError(t, err)
	assert.Equal(t, "Soporte en sitio", created.Nombre)
	assert.Equal(t, "Soporte en sitio", api.createdNombre)
}

func TestAdminService_CreateServicio_NombreTooShort(t *testing.T) {
	api := &fakeCatalogAPI{}
	svc := NewAdminService(api)

	for _, nombre := range []string{"", "ab", "  a  "} {
		_, err := svc.CreateServicio(context.Background(), "tok", nombre)
		require.Error(t, err, "nombre %q", nombre)
		assert.Equal(t, NombreTooShortMessage, apperrors.ToDomainError(err).Message)
	}
	// Validation failures never reach the upstream.
	assert.Zero(t, api.calls)
}

func TestAdminService_CreateCliente_RequiresDominio(t *testing.T) {
	api := &fakeCatalogAPI{}
	svc := NewAdminService(api)

	_, err := svc.CreateCliente(context.Background(), "tok", "Acme", "   ")
	require.Error(t, err)
	assert.Equal(t, DominioRequiredMessage, apperrors.ToDomainError(err).Message)
	assert.Zero(t, api.calls)

	cliente, err := svc.CreateCliente(context.Background(), "tok", "Acme", " acme.com ")
	require.NoError(t, err)
	assert.Equal(t, "acme.com", cliente.Dominio)
}

func TestAdminService_UpdateCliente_Validates(t *testing.T) {
	api := &fakeCatalogAPI{}
	svc := NewAdminService(api)

	_, err := svc.UpdateCliente(context.Background(), "tok", 1, "ab", "acme.com")
	require.Error(t, err)

	updated, err := svc.UpdateCliente(context.Background(), "tok", 1, "Acme Dos", "acme2.com")
	require.NoError(t, err)
	assert.Equal(t, "Acme Dos", updated.Nombre)
}
