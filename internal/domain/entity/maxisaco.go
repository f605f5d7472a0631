package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
)

// Maxisaco representa un movimiento de stock: un saco a granel de alga
// que entra o sale de bodega. El inventario nunca se cachea; siempre se
// recalcula desde estas filas.
type Maxisaco struct {
	ID                 string
	EspecieID          string
	PesoKg             decimal.Decimal // siempre >= 0
	TipoMovimiento     string          // entrada | salida
	FechaRegistro      time.Time
	RegistradoPor      string // UserID
	FechaActualizacion time.Time
	ActualizadoPor     string // UserID, vacío si nunca se editó
	Observaciones      string
}
