package dto

// ServicioRequest creates or renames a catalog service.
type ServicioRequest struct {
	Nombre string `json:"nombre"`
}

// ServicioResponse is a catalog service.
type ServicioResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// ClienteRequest creates or updates a client company.
type ClienteRequest struct {
	Nombre  string `json:"nombre"`
	Dominio string `json:"dominio"`
}

// ClienteResponse is a client company.
type ClienteResponse struct {
	ID      int64  `json:"id"`
	Nombre  string `json:"nombre"`
	Dominio string `json:"dominio"`
}

// ClienteDetailResponse adds the assigned services.
type ClienteDetailResponse struct {
	ClienteResponse
	Servicios []ServicioResponse `json:"servicios"`
}
