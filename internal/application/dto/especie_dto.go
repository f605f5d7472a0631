package dto

import "github.com/shopspring/decimal"

// CreateEspecieRequest datos para registrar una especie.
type CreateEspecieRequest struct {
	Nombre               string          `json:"nombre" validate:"required"`
	Descripcion          string          `json:"descripcion"`
	ProporcionConversion decimal.Decimal `json:"proporcion_conversion"`
}

// UpdateEspecieRequest datos editables de una especie.
type UpdateEspecieRequest struct {
	Nombre               string          `json:"nombre"`
	Descripcion          string          `json:"descripcion"`
	ProporcionConversion decimal.Decimal `json:"proporcion_conversion"`
}

// EspecieResponse representación de una especie en respuestas.
type EspecieResponse struct {
	ID                   string          `json:"id"`
	Nombre               string          `json:"nombre"`
	Descripcion          string          `json:"descripcion,omitempty"`
	ProporcionConversion decimal.Decimal `json:"proporcion_conversion"`
}

// EspecieListResponse listado de especies.
type EspecieListResponse struct {
	Items []EspecieResponse `json:"items"`
}
