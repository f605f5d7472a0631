package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas agregadas de solo lectura para el dashboard.
// Todas las sumas usan COALESCE para devolver cero en ausencia de filas;
// el clamp de inventarios negativos NO se hace aquí sino en el motor.
type ReporteRepo struct {
	q Querier
}

func NewReporteRepository(q Querier) *ReporteRepo {
	return &ReporteRepo{q: q}
}

// InventarioPorEspecie suma entradas y salidas agrupadas por especie.
// El LEFT JOIN garantiza una fila con sumas en cero para especies sin
// movimientos.
func (r *ReporteRepo) InventarioPorEspecie(ctx context.Context) ([]repository.InventarioEspecieResult, error) {
	query := `
		SELECT e.id, e.nombre,
		       COALESCE(SUM(m.peso_kg) FILTER (WHERE m.tipo_movimiento = 'entrada'), 0) AS entradas,
		       COALESCE(SUM(m.peso_kg) FILTER (WHERE m.tipo_movimiento = 'salida'), 0)  AS salidas
		FROM especies e
		LEFT JOIN maxisacos m ON m.especie_id = e.id
		GROUP BY e.id, e.nombre
		ORDER BY e.nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("inventario por especie: %w", err)
	}
	defer rows.Close()
	var results []repository.InventarioEspecieResult
	for rows.Next() {
		var res repository.InventarioEspecieResult
		if err := rows.Scan(&res.EspecieID, &res.Nombre, &res.Entradas, &res.Salidas); err != nil {
			return nil, fmt.Errorf("scan inventario: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// TotalesEntregas suma toneladas requeridas y cumplidas de todas las entregas.
func (r *ReporteRepo) TotalesEntregas(ctx context.Context) (requeridas, cumplidas decimal.Decimal, err error) {
	query := `
		SELECT COALESCE(SUM(toneladas_requeridas), 0),
		       COALESCE(SUM(toneladas_cumplidas), 0)
		FROM entregas_contrato`
	if err = r.q.QueryRow(ctx, query).Scan(&requeridas, &cumplidas); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("totales entregas: %w", err)
	}
	return requeridas, cumplidas, nil
}

// ProduccionEntreFechas suma kg de entradas con fecha_registro en [desde, hasta).
func (r *ReporteRepo) ProduccionEntreFechas(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(peso_kg), 0)
		FROM maxisacos
		WHERE tipo_movimiento = 'entrada'
		  AND fecha_registro >= $1
		  AND fecha_registro < $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, desde, hasta).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("produccion entre fechas: %w", err)
	}
	return total, nil
}

// TonelajeContratosActivos suma el tonelaje total de los contratos activos.
func (r *ReporteRepo) TonelajeContratosActivos(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(tonelaje_total), 0)
		FROM contratos
		WHERE estado = 'activo'`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("tonelaje contratos activos: %w", err)
	}
	return total, nil
}

// EntregasPorMes agrupa las entregas del año por mes calendario. Solo
// devuelve los meses con filas; la densificación a 12 meses la hace el motor.
func (r *ReporteRepo) EntregasPorMes(ctx context.Context, anio int) ([]repository.EntregasMesResult, error) {
	query := `
		SELECT EXTRACT(MONTH FROM mes)::int AS mes,
		       COALESCE(SUM(toneladas_requeridas), 0),
		       COALESCE(SUM(toneladas_cumplidas), 0)
		FROM entregas_contrato
		WHERE EXTRACT(YEAR FROM mes)::int = $1
		GROUP BY 1
		ORDER BY 1`
	rows, err := r.q.Query(ctx, query, anio)
	if err != nil {
		return nil, fmt.Errorf("entregas por mes: %w", err)
	}
	defer rows.Close()
	var results []repository.EntregasMesResult
	for rows.Next() {
		var res repository.EntregasMesResult
		if err := rows.Scan(&res.Mes, &res.Requeridas, &res.Cumplidas); err != nil {
			return nil, fmt.Errorf("scan entregas por mes: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// HistoricoEntradasEspecie devuelve la producción mensual histórica de una
// especie (solo entradas), en toneladas, ordenada cronológicamente. Los
// meses sin producción no aparecen.
func (r *ReporteRepo) HistoricoEntradasEspecie(ctx context.Context, especieID string) ([]entity.HistoricoMes, error) {
	query := `
		SELECT EXTRACT(YEAR FROM fecha_registro)::int  AS anio,
		       EXTRACT(MONTH FROM fecha_registro)::int AS mes,
		       SUM(peso_kg) / 1000.0                   AS toneladas
		FROM maxisacos
		WHERE especie_id = $1 AND tipo_movimiento = 'entrada'
		GROUP BY 1, 2
		HAVING SUM(peso_kg) > 0
		ORDER BY 1, 2`
	rows, err := r.q.Query(ctx, query, especieID)
	if err != nil {
		return nil, fmt.Errorf("historico entradas: %w", err)
	}
	defer rows.Close()
	var historico []entity.HistoricoMes
	for rows.Next() {
		var h entity.HistoricoMes
		if err := rows.Scan(&h.Anio, &h.Mes, &h.Toneladas); err != nil {
			return nil, fmt.Errorf("scan historico: %w", err)
		}
		historico = append(historico, h)
	}
	return historico, rows.Err()
}
