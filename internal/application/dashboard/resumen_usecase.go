// Package dashboard contiene el motor de agregación del Dashboard Ejecutivo:
// inventario actual, cumplimiento contractual, producción mensual, ingresos
// proyectados, la serie densa de 12 meses proyección vs contractual, la
// distribución de inventario y las alertas tempranas.
//
// Combina dos almacenes sin transacción compartida: el relacional
// (movimientos, contratos, entregas, insumos) y el documental
// (proyecciones). El dashboard es una foto best-effort para reporte, no una
// vista transaccional: tolera read skew entre consultas.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/domain/repository"
	"github.com/algasur/algas-api/pkg/logger"
)

// mesesAbrev etiquetas de los 12 meses del gráfico.
var mesesAbrev = [12]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// Líneas base de comparación para las variaciones de los KPIs. El período
// previo no se almacena; se aproxima con referencias fijas igual que el
// tablero original.
var (
	baseCumplimiento = 98.0
	factorProduccion = 0.92
	factorInventario = 0.97
	factorIngresos   = 0.90
)

// ResumenUseCase genera el resumen ejecutivo del dashboard.
//
// Fuentes de datos: ReporteRepository (consultas read-only sobre el
// relacional), ProyeccionRepository (documental) e InsumoRepository para
// alertas de insumos. No escribe en ninguno de los tres.
type ResumenUseCase struct {
	reportes     repository.ReporteRepository
	proyecciones repository.ProyeccionRepository
	insumos      repository.InsumoRepository
	precioTon    decimal.Decimal // CLP por tonelada, inyectado desde config
	log          *logger.Logger
}

// NewResumenUseCase construye el motor de agregación.
func NewResumenUseCase(
	reportes repository.ReporteRepository,
	proyecciones repository.ProyeccionRepository,
	insumos repository.InsumoRepository,
	precioTonelada decimal.Decimal,
	log *logger.Logger,
) *ResumenUseCase {
	return &ResumenUseCase{
		reportes:     reportes,
		proyecciones: proyecciones,
		insumos:      insumos,
		precioTon:    precioTonelada,
		log:          log,
	}
}

// InventarioActual calcula el inventario neto por especie
// (entradas - salidas) y el total general.
//
// Un neto negativo es una anomalía de datos (salidas superan entradas), no
// inventario físico: se reporta como cero. El total es la suma de los netos
// YA ajustados, de modo que la anomalía de una especie no descuente el
// inventario positivo de otra.
func (uc *ResumenUseCase) InventarioActual(ctx context.Context) (decimal.Decimal, []dto.InventarioEspecieDTO, error) {
	filas, err := uc.reportes.InventarioPorEspecie(ctx)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("dashboard: inventario por especie: %w", err)
	}
	total := decimal.Zero
	especies := make([]dto.InventarioEspecieDTO, 0, len(filas))
	for _, f := range filas {
		neto := f.Entradas.Sub(f.Salidas)
		if neto.IsNegative() {
			neto = decimal.Zero
		}
		total = total.Add(neto)
		especies = append(especies, dto.InventarioEspecieDTO{
			EspecieID: f.EspecieID,
			Nombre:    f.Nombre,
			Cantidad:  neto,
			Unidad:    "kg",
		})
	}
	return total, especies, nil
}

// CumplimientoContractual agrega requeridas y cumplidas de todas las
// entregas y calcula el porcentaje con 2 decimales. Sin toneladas
// requeridas el cumplimiento se define como 0 (no es un error).
func (uc *ResumenUseCase) CumplimientoContractual(ctx context.Context) (pct float64, requeridas, cumplidas decimal.Decimal, err error) {
	requeridas, cumplidas, err = uc.reportes.TotalesEntregas(ctx)
	if err != nil {
		return 0, decimal.Zero, decimal.Zero, fmt.Errorf("dashboard: totales de entregas: %w", err)
	}
	if requeridas.IsZero() {
		return 0, requeridas, cumplidas, nil
	}
	pctDec := cumplidas.Div(requeridas).Mul(decimal.NewFromInt(100)).Round(2)
	pct, _ = pctDec.Float64()
	return pct, requeridas, cumplidas, nil
}

// ProduccionMensual suma los kg de entradas registradas dentro del mes de
// la fecha de referencia, usando el intervalo semiabierto
// [primer día, primer día del mes siguiente) para no contar dos veces los
// bordes de mes.
func (uc *ResumenUseCase) ProduccionMensual(ctx context.Context, referencia time.Time) (float64, error) {
	desde := time.Date(referencia.Year(), referencia.Month(), 1, 0, 0, 0, 0, referencia.Location())
	hasta := desde.AddDate(0, 1, 0)
	total, err := uc.reportes.ProduccionEntreFechas(ctx, desde, hasta)
	if err != nil {
		return 0, fmt.Errorf("dashboard: producción mensual: %w", err)
	}
	f, _ := total.Float64()
	return f, nil
}

// IngresosProyectados multiplica el tonelaje comprometido en contratos
// activos por el precio promedio configurado. Métrica simplificada a
// propósito: no descuenta entregas ya cumplidas ni distingue especies.
func (uc *ResumenUseCase) IngresosProyectados(ctx context.Context) (float64, error) {
	tonelaje, err := uc.reportes.TonelajeContratosActivos(ctx)
	if err != nil {
		return 0, fmt.Errorf("dashboard: tonelaje de contratos activos: %w", err)
	}
	f, _ := tonelaje.Mul(uc.precioTon).Float64()
	return f, nil
}

// ProyeccionVsContractual construye la serie densa de 12 meses
// (enero..diciembre) para el año dado, sin importar cuán dispersos estén
// los datos:
//
//  1. Entregas agrupadas por mes → contractual[] y real[]; los meses sin
//     filas quedan en 0.
//  2. Proyecciones del documental sumadas por mes → proyectado[]; un mes
//     sin proyección cae al valor contractual de ese mes (mantiene el
//     gráfico continuo mientras el microservicio no haya corrido).
//  3. Si el almacén documental no responde, proyectado degrada por completo
//     a contractual: fail-open para display, nunca propaga el error.
func (uc *ResumenUseCase) ProyeccionVsContractual(ctx context.Context, anio int) (dto.ChartProyeccionDTO, error) {
	entregas, err := uc.reportes.EntregasPorMes(ctx, anio)
	if err != nil {
		return dto.ChartProyeccionDTO{}, fmt.Errorf("dashboard: entregas por mes: %w", err)
	}
	porMes := make(map[int]repository.EntregasMesResult, len(entregas))
	for _, e := range entregas {
		porMes[e.Mes] = e
	}

	proy, err := uc.proyecciones.TotalesPorMes(ctx, anio)
	if err != nil {
		uc.log.Warn().Err(err).Int("anio", anio).
			Msg("almacén de proyecciones no disponible; la serie proyectada degrada a contractual")
		proy = nil
	}

	chart := dto.ChartProyeccionDTO{
		Labels:      make([]string, 0, 12),
		Contractual: make([]float64, 0, 12),
		Real:        make([]float64, 0, 12),
		Proyectado:  make([]float64, 0, 12),
	}
	for mes := 1; mes <= 12; mes++ {
		chart.Labels = append(chart.Labels, mesesAbrev[mes-1])

		contractual, real := 0.0, 0.0
		if fila, ok := porMes[mes]; ok {
			contractual, _ = fila.Requeridas.Float64()
			real, _ = fila.Cumplidas.Float64()
		}
		chart.Contractual = append(chart.Contractual, contractual)
		chart.Real = append(chart.Real, real)

		if valor, ok := proy[mes]; ok {
			chart.Proyectado = append(chart.Proyectado, valor)
		} else {
			chart.Proyectado = append(chart.Proyectado, contractual)
		}
	}
	return chart, nil
}

// DistribucionInventario convierte los netos por especie en porcentajes del
// total (2 decimales), omitiendo especies en cero. Con inventario total en
// cero devuelve secuencias vacías, no un error.
func DistribucionInventario(especies []dto.InventarioEspecieDTO, total decimal.Decimal) dto.ChartInventarioDTO {
	chart := dto.ChartInventarioDTO{Labels: []string{}, Data: []float64{}}
	if !total.IsPositive() {
		return chart
	}
	for _, e := range especies {
		if !e.Cantidad.IsPositive() {
			continue
		}
		pct, _ := e.Cantidad.Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		chart.Labels = append(chart.Labels, e.Nombre)
		chart.Data = append(chart.Data, pct)
	}
	return chart
}

// AlertasTempranas evalúa las reglas de alerta en orden fijo; la lista
// resultante conserva ese orden de evaluación, no un orden por severidad:
//
//	cumplimiento < 95        → nivel alto
//	inventario total <= 0    → nivel medio
//	insumo bajo su mínimo    → nivel bajo (una alerta por insumo)
func (uc *ResumenUseCase) AlertasTempranas(ctx context.Context, cumplimiento float64, inventarioTotal decimal.Decimal) ([]dto.AlertaDTO, error) {
	alertas := []dto.AlertaDTO{}

	if cumplimiento < 95 {
		alertas = append(alertas, dto.AlertaDTO{
			Nivel:   "alto",
			Titulo:  "Riesgo de incumplimiento contractual",
			Detalle: fmt.Sprintf("Cumplimiento actual: %v%%", cumplimiento),
		})
	}

	if !inventarioTotal.IsPositive() {
		alertas = append(alertas, dto.AlertaDTO{
			Nivel:   "medio",
			Titulo:  "Inventario total en 0",
			Detalle: "Sin registros de stock en bodega.",
		})
	}

	bajos, err := uc.insumos.ListBajoMinimo()
	if err != nil {
		return nil, fmt.Errorf("dashboard: insumos bajo mínimo: %w", err)
	}
	for _, ins := range bajos {
		alertas = append(alertas, dto.AlertaDTO{
			Nivel:  "bajo",
			Titulo: fmt.Sprintf("Insumo bajo mínimo: %s", ins.Nombre),
			Detalle: fmt.Sprintf("Quedan %s %s; mínimo de seguridad %s %s.",
				ins.Cantidad.String(), ins.Unidad, ins.MinimoSeguridad.String(), ins.Unidad),
		})
	}

	return alertas, nil
}

// GetResumen ensambla el DashboardResumenDTO completo.
//
// Las cuatro consultas relacionales de KPIs corren en paralelo; el gráfico
// de proyecciones (que además toca el documental) se arma después. Un fallo
// relacional hace fallar el reporte completo; un fallo del documental solo
// degrada la serie proyectada.
func (uc *ResumenUseCase) GetResumen(ctx context.Context) (*dto.DashboardResumenDTO, error) {
	now := time.Now()

	type cumplimientoResult struct {
		pct float64
		err error
	}
	type produccionResult struct {
		total float64
		err   error
	}
	type inventarioResult struct {
		total    decimal.Decimal
		especies []dto.InventarioEspecieDTO
		err      error
	}
	type ingresosResult struct {
		total float64
		err   error
	}

	cumplimientoCh := make(chan cumplimientoResult, 1)
	produccionCh := make(chan produccionResult, 1)
	inventarioCh := make(chan inventarioResult, 1)
	ingresosCh := make(chan ingresosResult, 1)

	go func() {
		pct, _, _, err := uc.CumplimientoContractual(ctx)
		cumplimientoCh <- cumplimientoResult{pct, err}
	}()
	go func() {
		total, err := uc.ProduccionMensual(ctx, now)
		produccionCh <- produccionResult{total, err}
	}()
	go func() {
		total, especies, err := uc.InventarioActual(ctx)
		inventarioCh <- inventarioResult{total, especies, err}
	}()
	go func() {
		total, err := uc.IngresosProyectados(ctx)
		ingresosCh <- ingresosResult{total, err}
	}()

	cumplimiento := <-cumplimientoCh
	produccion := <-produccionCh
	inventario := <-inventarioCh
	ingresos := <-ingresosCh

	if cumplimiento.err != nil {
		return nil, cumplimiento.err
	}
	if produccion.err != nil {
		return nil, produccion.err
	}
	if inventario.err != nil {
		return nil, inventario.err
	}
	if ingresos.err != nil {
		return nil, ingresos.err
	}

	chartProy, err := uc.ProyeccionVsContractual(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	alertas, err := uc.AlertasTempranas(ctx, cumplimiento.pct, inventario.total)
	if err != nil {
		return nil, err
	}

	inventarioTotal, _ := inventario.total.Float64()

	return &dto.DashboardResumenDTO{
		CumplimientoContractual: cumplimiento.pct,
		ProduccionMensual:       produccion.total,
		InventarioTotal:         inventarioTotal,
		IngresosProyectados:     ingresos.total,

		CumplimientoVar: CalcularVariacion(cumplimiento.pct, baseCumplimiento),
		ProduccionVar:   CalcularVariacion(produccion.total, produccion.total*factorProduccion),
		InventarioVar:   CalcularVariacion(inventarioTotal, inventarioTotal*factorInventario),
		IngresosVar:     CalcularVariacion(ingresos.total, ingresos.total*factorIngresos),

		ChartProyeccion: chartProy,
		ChartInventario: DistribucionInventario(inventario.especies, inventario.total),
		Inventario:      inventario.especies,
		Alertas:         alertas,
	}, nil
}

// CalcularVariacion calcula la variación porcentual entre actual y previo,
// redondeada a 2 decimales. Con previo en cero devuelve 0.
func CalcularVariacion(actual, previo float64) float64 {
	if previo == 0 {
		return 0
	}
	return math.Round((actual-previo)/previo*100*100) / 100
}
