package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaxisacoRequest datos para registrar un movimiento de stock.
type CreateMaxisacoRequest struct {
	EspecieID      string          `json:"especie_id" validate:"required"`
	PesoKg         decimal.Decimal `json:"peso_kg" validate:"required"`
	TipoMovimiento string          `json:"tipo_movimiento" validate:"required"` // entrada | salida
	Observaciones  string          `json:"observaciones"`
}

// UpdateMaxisacoRequest datos editables de un movimiento.
type UpdateMaxisacoRequest struct {
	EspecieID      string          `json:"especie_id"`
	PesoKg         decimal.Decimal `json:"peso_kg"`
	TipoMovimiento string          `json:"tipo_movimiento"`
	Observaciones  string          `json:"observaciones"`
}

// MaxisacoResponse representación de un movimiento en respuestas.
type MaxisacoResponse struct {
	ID             string          `json:"id"`
	EspecieID      string          `json:"especie_id"`
	PesoKg         decimal.Decimal `json:"peso_kg"`
	TipoMovimiento string          `json:"tipo_movimiento"`
	FechaRegistro  time.Time       `json:"fecha_registro"`
	RegistradoPor  string          `json:"registrado_por,omitempty"`
	ActualizadoPor string          `json:"actualizado_por,omitempty"`
	Observaciones  string          `json:"observaciones,omitempty"`
}

// MaxisacoListResponse listado paginado de movimientos.
type MaxisacoListResponse struct {
	Items []MaxisacoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
