package dto

import "github.com/shopspring/decimal"

// CreateInsumoRequest datos para registrar un insumo.
type CreateInsumoRequest struct {
	Nombre          string          `json:"nombre" validate:"required"`
	Descripcion     string          `json:"descripcion"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	Unidad          string          `json:"unidad" validate:"required"` // kg | lt | un
	MinimoSeguridad decimal.Decimal `json:"minimo_seguridad"`
}

// UpdateInsumoRequest datos editables de un insumo.
type UpdateInsumoRequest struct {
	Nombre          string          `json:"nombre"`
	Descripcion     string          `json:"descripcion"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	Unidad          string          `json:"unidad"`
	MinimoSeguridad decimal.Decimal `json:"minimo_seguridad"`
}

// InsumoResponse representación de un insumo en respuestas.
type InsumoResponse struct {
	ID              string          `json:"id"`
	Nombre          string          `json:"nombre"`
	Descripcion     string          `json:"descripcion,omitempty"`
	Cantidad        decimal.Decimal `json:"cantidad"`
	Unidad          string          `json:"unidad"`
	MinimoSeguridad decimal.Decimal `json:"minimo_seguridad"`
	BajoMinimo      bool            `json:"bajo_minimo"`
}

// InsumoListResponse listado de insumos.
type InsumoListResponse struct {
	Items []InsumoResponse `json:"items"`
}
