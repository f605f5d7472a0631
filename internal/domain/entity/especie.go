package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Especie representa un tipo de alga procesada por la planta.
// La proporción de conversión es la relación húmedo:seco (ej. 6.00 para 6:1).
type Especie struct {
	ID                    string
	Nombre                string // único
	Descripcion           string
	ProporcionConversion  decimal.Decimal
	FechaCreacion         time.Time
	FechaActualizacion    time.Time
}
