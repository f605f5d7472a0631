package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida de insumos.
const (
	UnidadKg = "kg"
	UnidadLt = "lt"
	UnidadUn = "un"
)

// Insumo representa un insumo consumible de la planta (yodo, sal, envases...).
// MinimoSeguridad define el umbral bajo el cual el dashboard emite alerta.
type Insumo struct {
	ID                 string
	Nombre             string // único
	Descripcion        string
	Cantidad           decimal.Decimal
	Unidad             string // kg | lt | un
	MinimoSeguridad    decimal.Decimal
	CreadoPor          string // UserID
	FechaCreacion      time.Time
	ActualizadoPor     string // UserID
	FechaActualizacion time.Time
}

// BajoMinimo indica si el insumo está bajo su mínimo de seguridad.
func (i *Insumo) BajoMinimo() bool {
	return i.Cantidad.LessThan(i.MinimoSeguridad)
}
