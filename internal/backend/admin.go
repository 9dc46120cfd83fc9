package backend

import (
	"context"
	"net/http"
)

// Servicio is a catalog service managed from the admin console.
type Servicio struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// Cliente is a client company.
type Cliente struct {
	ID      int64  `json:"id"`
	Nombre  string `json:"nombre"`
	Dominio string `json:"dominio"`
}

// ClienteDetail adds the services assigned to a client.
type ClienteDetail struct {
	Cliente
	Servicios []Servicio `json:"servicios"`
}

type servicioRequest struct {
	Nombre string `json:"nombre"`
}

type clienteRequest struct {
	Nombre  string `json:"nombre"`
	Dominio string `json:"dominio"`
}

// ListServicios returns the service catalog.
func (c *Client) ListServicios(ctx context.Context, token string) ([]Servicio, error) {
	var items []Servicio
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/servicios", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateServicio registers a new service.
func (c *Client) CreateServicio(ctx context.Context, token, nombre string) (*Servicio, error) {
	var created Servicio
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/servicios", token, servicioRequest{Nombre: nombre}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateServicio renames a service.
func (c *Client) UpdateServicio(ctx context.Context, token string, id int64, nombre string) (*Servicio, error) {
	var updated Servicio
	if err := c.doJSON(ctx, http.MethodPut, c.path("/api/admin/servicios/%d", id), token, servicioRequest{Nombre: nombre}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteServicio removes a service.
func (c *Client) DeleteServicio(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.path("/api/admin/servicios/%d", id), token, nil, nil)
}

// ListClientes returns the registered client companies.
func (c *Client) ListClientes(ctx context.Context, token string) ([]Cliente, error) {
	var items []Cliente
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/clientes", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetCliente returns a client with its assigned services.
func (c *Client) GetCliente(ctx context.Context, token string, id int64) (*ClienteDetail, error) {
	var detail ClienteDetail
	if err := c.doJSON(ctx, http.MethodGet, c.path("/api/admin/clientes/%d", id), token, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateCliente registers a new client company.
func (c *Client) CreateCliente(ctx context.Context, token, nombre, dominio string) (*Cliente, error) {
	var created Cliente
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/clientes", token, clienteRequest{Nombre: nombre, Dominio: dominio}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCliente updates a client company.
func (c *Client) UpdateCliente(ctx context.Context, token string, id int64, nombre, dominio string) (*Cliente, error) {
	var updated Cliente
	if err := c.doJSON(ctx, http.MethodPut, c.path("/api/admin/clientes/%d", id), token, clienteRequest{Nombre: nombre, Dominio: dominio}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCliente removes a client company.
func (c *Client) DeleteCliente(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, c.path("/api/admin/clientes/%d", id), token, nil, nil)
}
