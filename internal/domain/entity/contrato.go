package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un contrato comercial.
const (
	ContratoActivo     = "activo"
	ContratoCompletado = "completado"
	ContratoCancelado  = "cancelado"
)

// Contrato representa un contrato comercial con sus compromisos de entrega mensuales.
type Contrato struct {
	ID                 string
	Cliente            string
	TonelajeTotal      decimal.Decimal
	FechaInicio        time.Time
	FechaFin           time.Time
	Estado             string // activo | completado | cancelado
	CreadoPor          string // UserID
	FechaCreacion      time.Time
	ActualizadoPor     string // UserID
	FechaActualizacion time.Time
}

// EntregaContrato es una línea de compromiso mensual dentro de un contrato.
// Mes se normaliza al primer día del mes. La eliminación del contrato
// elimina sus entregas en cascada.
type EntregaContrato struct {
	ID                   string
	ContratoID           string
	EspecieID            string
	Mes                  time.Time // primer día del mes
	ToneladasRequeridas  decimal.Decimal
	ToneladasCumplidas   decimal.Decimal
	ComprometidaSinStock bool       // override explícito cuando no hay stock disponible
	FechaLimite          *time.Time // fecha tope del compromiso, opcional
}
