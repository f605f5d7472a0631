package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateContratoRequest datos para crear un contrato.
type CreateContratoRequest struct {
	Cliente       string          `json:"cliente" validate:"required"`
	TonelajeTotal decimal.Decimal `json:"tonelaje_total" validate:"required"`
	FechaInicio   time.Time       `json:"fecha_inicio" validate:"required"`
	FechaFin      time.Time       `json:"fecha_fin" validate:"required"`
	Estado        string          `json:"estado"` // por defecto "activo"
}

// UpdateContratoRequest datos editables de un contrato.
type UpdateContratoRequest struct {
	Cliente       string          `json:"cliente"`
	TonelajeTotal decimal.Decimal `json:"tonelaje_total"`
	FechaInicio   time.Time       `json:"fecha_inicio"`
	FechaFin      time.Time       `json:"fecha_fin"`
	Estado        string          `json:"estado"`
}

// ContratoResponse representación de un contrato en respuestas.
type ContratoResponse struct {
	ID            string          `json:"id"`
	Cliente       string          `json:"cliente"`
	TonelajeTotal decimal.Decimal `json:"tonelaje_total"`
	FechaInicio   time.Time       `json:"fecha_inicio"`
	FechaFin      time.Time       `json:"fecha_fin"`
	Estado        string          `json:"estado"`
}

// ContratoListResponse listado paginado de contratos.
type ContratoListResponse struct {
	Items []ContratoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateEntregaRequest datos para comprometer una entrega mensual.
type CreateEntregaRequest struct {
	EspecieID            string          `json:"especie_id" validate:"required"`
	Mes                  time.Time       `json:"mes" validate:"required"`
	ToneladasRequeridas  decimal.Decimal `json:"toneladas_requeridas" validate:"required"`
	ToneladasCumplidas   decimal.Decimal `json:"toneladas_cumplidas"`
	ComprometidaSinStock bool            `json:"comprometida_sin_stock"`
	FechaLimite          *time.Time      `json:"fecha_limite,omitempty"`
}

// UpdateEntregaRequest datos editables de una entrega. Los campos puntero
// distinguen "no enviado" de su valor cero: un PUT parcial que los omite
// conserva lo comprometido en vez de resetearlo.
type UpdateEntregaRequest struct {
	Mes                  time.Time        `json:"mes"`
	ToneladasRequeridas  decimal.Decimal  `json:"toneladas_requeridas"`
	ToneladasCumplidas   *decimal.Decimal `json:"toneladas_cumplidas,omitempty"`
	ComprometidaSinStock *bool            `json:"comprometida_sin_stock,omitempty"`
	FechaLimite          *time.Time       `json:"fecha_limite,omitempty"`
}

// EntregaResponse representación de una entrega en respuestas.
type EntregaResponse struct {
	ID                   string          `json:"id"`
	ContratoID           string          `json:"contrato_id"`
	EspecieID            string          `json:"especie_id"`
	Mes                  time.Time       `json:"mes"`
	ToneladasRequeridas  decimal.Decimal `json:"toneladas_requeridas"`
	ToneladasCumplidas   decimal.Decimal `json:"toneladas_cumplidas"`
	ComprometidaSinStock bool            `json:"comprometida_sin_stock"`
	FechaLimite          *time.Time      `json:"fecha_limite,omitempty"`
}

// EntregaListResponse entregas de un contrato.
type EntregaListResponse struct {
	Items []EntregaResponse `json:"items"`
}
