package dto

import "time"

// AuditoriaResponse una entrada del registro de auditoría.
// Usuario queda vacío si el usuario fue eliminado después de la acción.
type AuditoriaResponse struct {
	ID       string    `json:"id"`
	Usuario  string    `json:"usuario,omitempty"`
	Accion   string    `json:"accion"`
	Modulo   string    `json:"modulo"`
	Detalle  string    `json:"detalle,omitempty"`
	Fecha    time.Time `json:"fecha"`
}

// AuditoriaListResponse listado paginado, más recientes primero.
type AuditoriaListResponse struct {
	Items []AuditoriaResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
