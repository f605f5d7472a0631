package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/algasur/algas-api/internal/domain/entity"
)

// InventarioEspecieResult resultado crudo de la consulta de entradas/salidas
// por especie. Lo produce la DB; el motor del dashboard aplica el clamp.
type InventarioEspecieResult struct {
	EspecieID string
	Nombre    string
	Entradas  decimal.Decimal // suma de peso_kg de movimientos "entrada"
	Salidas   decimal.Decimal // suma de peso_kg de movimientos "salida"
}

// EntregasMesResult agregado mensual de entregas contractuales.
type EntregasMesResult struct {
	Mes        int // 1..12
	Requeridas decimal.Decimal
	Cumplidas  decimal.Decimal
}

// ReporteRepository define las consultas de lectura para el dashboard
// ejecutivo. Las implementaciones son read-only (no modifican datos).
type ReporteRepository interface {
	// InventarioPorEspecie devuelve entradas y salidas sumadas por especie,
	// incluyendo especies sin movimientos (sumas en cero).
	InventarioPorEspecie(ctx context.Context) ([]InventarioEspecieResult, error)

	// TotalesEntregas devuelve la suma de toneladas requeridas y cumplidas
	// de todas las entregas. Usa COALESCE para devolver cero sin filas.
	TotalesEntregas(ctx context.Context) (requeridas, cumplidas decimal.Decimal, err error)

	// ProduccionEntreFechas suma los kg de movimientos de entrada con
	// fecha_registro en [desde, hasta) — intervalo semiabierto.
	ProduccionEntreFechas(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)

	// TonelajeContratosActivos suma tonelaje_total de contratos activos.
	TonelajeContratosActivos(ctx context.Context) (decimal.Decimal, error)

	// EntregasPorMes agrupa las entregas del año por mes calendario.
	// Solo devuelve los meses con filas; el motor densifica a 12.
	EntregasPorMes(ctx context.Context, anio int) ([]EntregasMesResult, error)

	// HistoricoEntradasEspecie devuelve la producción mensual histórica
	// (solo entradas) de una especie, ordenada cronológicamente, excluyendo
	// meses sin producción.
	HistoricoEntradasEspecie(ctx context.Context, especieID string) ([]entity.HistoricoMes, error)
}
