package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algasur/algas-api/internal/application/dashboard"
	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
	"github.com/algasur/algas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeReportes struct {
	inventario   []repository.InventarioEspecieResult
	inventarioEr error

	requeridas decimal.Decimal
	cumplidas  decimal.Decimal

	produccion      decimal.Decimal
	produccionDesde time.Time
	produccionHasta time.Time

	tonelajeActivos decimal.Decimal

	entregasMes []repository.EntregasMesResult
}

func (f *fakeReportes) InventarioPorEspecie(context.Context) ([]repository.InventarioEspecieResult, error) {
	return f.inventario, f.inventarioEr
}

func (f *fakeReportes) TotalesEntregas(context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return f.requeridas, f.cumplidas, nil
}

func (f *fakeReportes) ProduccionEntreFechas(_ context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	f.produccionDesde = desde
	f.produccionHasta = hasta
	return f.produccion, nil
}

func (f *fakeReportes) TonelajeContratosActivos(context.Context) (decimal.Decimal, error) {
	return f.tonelajeActivos, nil
}

func (f *fakeReportes) EntregasPorMes(context.Context, int) ([]repository.EntregasMesResult, error) {
	return f.entregasMes, nil
}

func (f *fakeReportes) HistoricoEntradasEspecie(context.Context, string) ([]entity.HistoricoMes, error) {
	return nil, nil
}

type fakeProyecciones struct {
	totales map[int]float64
	err     error
}

func (f *fakeProyecciones) Upsert(context.Context, entity.Proyeccion) error { return nil }

func (f *fakeProyecciones) TotalesPorMes(context.Context, int) (map[int]float64, error) {
	return f.totales, f.err
}

type fakeInsumos struct {
	bajos []*entity.Insumo
}

func (f *fakeInsumos) Create(*entity.Insumo) error                 { return nil }
func (f *fakeInsumos) GetByID(string) (*entity.Insumo, error)      { return nil, nil }
func (f *fakeInsumos) List() ([]*entity.Insumo, error)             { return nil, nil }
func (f *fakeInsumos) Update(*entity.Insumo) error                 { return nil }
func (f *fakeInsumos) Delete(string) error                         { return nil }
func (f *fakeInsumos) ListBajoMinimo() ([]*entity.Insumo, error)   { return f.bajos, nil }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newUC(rep *fakeReportes, proy *fakeProyecciones, ins *fakeInsumos) *dashboard.ResumenUseCase {
	return dashboard.NewResumenUseCase(rep, proy, ins, dec("450000"), logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

// Un neto negativo es anomalía de datos, no inventario físico: reporta 0 y
// no descuenta del total de las demás especies.
func TestInventarioActual_ClampeaNetosNegativos(t *testing.T) {
	rep := &fakeReportes{inventario: []repository.InventarioEspecieResult{
		{EspecieID: "1", Nombre: "Luga Roja", Entradas: dec("500"), Salidas: dec("200")},
		{EspecieID: "2", Nombre: "Pelillo", Entradas: dec("100"), Salidas: dec("400")},
	}}
	uc := newUC(rep, &fakeProyecciones{}, &fakeInsumos{})

	total, especies, err := uc.InventarioActual(context.Background())
	require.NoError(t, err)

	assert.True(t, total.Equal(dec("300")), "el total debe sumar los netos ya ajustados, no 0")
	require.Len(t, especies, 2)
	assert.True(t, especies[0].Cantidad.Equal(dec("300")))
	assert.True(t, especies[1].Cantidad.IsZero(), "neto negativo debe reportarse como 0")
}

// Escenario de referencia: 1000 kg de entradas y 300 kg de salidas de Luga
// Roja dejan 700 kg netos, y con una sola especie la torta es 100%.
func TestInventarioActual_UnaEspecie700Kg(t *testing.T) {
	rep := &fakeReportes{inventario: []repository.InventarioEspecieResult{
		{EspecieID: "1", Nombre: "Luga Roja", Entradas: dec("1000"), Salidas: dec("300")},
	}}
	uc := newUC(rep, &fakeProyecciones{}, &fakeInsumos{})

	total, especies, err := uc.InventarioActual(context.Background())
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("700")))

	chart := dashboard.DistribucionInventario(especies, total)
	require.Len(t, chart.Labels, 1)
	assert.Equal(t, "Luga Roja", chart.Labels[0])
	assert.Equal(t, 100.0, chart.Data[0])
}

// ──────────────────────────────────────────────────────────────────────────────
// Cumplimiento contractual
// ──────────────────────────────────────────────────────────────────────────────

func TestCumplimientoContractual_SinRequeridasEsCero(t *testing.T) {
	rep := &fakeReportes{requeridas: decimal.Zero, cumplidas: decimal.Zero}
	uc := newUC(rep, &fakeProyecciones{}, &fakeInsumos{})

	pct, _, _, err := uc.CumplimientoContractual(context.Background())
	require.NoError(t, err, "sin entregas no es un error, es cumplimiento 0")
	assert.Equal(t, 0.0, pct)
}

func TestCumplimientoContractual_RedondeaADosDecimales(t *testing.T) {
	rep := &fakeReportes{requeridas: dec("1200"), cumplidas: dec("700")}
	uc := newUC(rep, &fakeProyecciones{}, &fakeInsumos{})

	pct, _, _, err := uc.CumplimientoContractual(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 58.33, pct) // 700/1200*100 = 58.3333...
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción mensual
// ──────────────────────────────────────────────────────────────────────────────

// El intervalo debe ser semiabierto [primer día, primer día del mes
// siguiente) para no contar dos veces los bordes de mes.
func TestProduccionMensual_IntervaloSemiabierto(t *testing.T) {
	rep := &fakeReportes{produccion: dec("1500")}
	uc := newUC(rep, &fakeProyecciones{}, &fakeInsumos{})

	referencia := time.Date(2026, time.February, 17, 13, 45, 0, 0, time.UTC)
	total, err := uc.ProduccionMensual(context.Background(), referencia)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, total)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), rep.produccionDesde)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), rep.produccionHasta)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ingresos proyectados
// ──────────────────────────────────────────────────────────────────────────────

func TestIngresosProyectados_TonelajePorPrecio(t *testing.T) {
	rep := &fakeReportes{tonelajeActivos: dec("80")}
	uc := newUC(rep, &fakeProyecciones{}, &fakeInsumos{})

	ingresos, err := uc.IngresosProyectados(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 36_000_000.0, ingresos) // 80 ton * 450.000 CLP
}

// ──────────────────────────────────────────────────────────────────────────────
// Serie proyección vs contractual
// ──────────────────────────────────────────────────────────────────────────────

// Con datos dispersos (solo marzo y julio) la serie sigue saliendo densa:
// 12 posiciones, con ceros donde no hay entregas.
func TestProyeccionVsContractual_SerieDensaDe12(t *testing.T) {
	rep := &fakeReportes{entregasMes: []repository.EntregasMesResult{
		{Mes: 3, Requeridas: dec("40"), Cumplidas: dec("35")},
		{Mes: 7, Requeridas: dec("60"), Cumplidas: dec("10")},
	}}
	proy := &fakeProyecciones{totales: map[int]float64{3: 42.5}}
	uc := newUC(rep, proy, &fakeInsumos{})

	chart, err := uc.ProyeccionVsContractual(context.Background(), 2026)
	require.NoError(t, err)

	require.Len(t, chart.Labels, 12)
	require.Len(t, chart.Contractual, 12)
	require.Len(t, chart.Real, 12)
	require.Len(t, chart.Proyectado, 12)
	assert.Equal(t, "Ene", chart.Labels[0])
	assert.Equal(t, "Dic", chart.Labels[11])

	assert.Equal(t, 40.0, chart.Contractual[2])
	assert.Equal(t, 35.0, chart.Real[2])
	assert.Equal(t, 42.5, chart.Proyectado[2], "marzo tiene proyección propia")

	assert.Equal(t, 60.0, chart.Contractual[6])
	assert.Equal(t, 60.0, chart.Proyectado[6], "julio sin proyección cae al contractual")

	assert.Equal(t, 0.0, chart.Contractual[0])
	assert.Equal(t, 0.0, chart.Real[0])
	assert.Equal(t, 0.0, chart.Proyectado[0])
}

// Caída del almacén documental: la serie proyectada degrada por completo a
// la contractual y el resumen no falla.
func TestProyeccionVsContractual_DocumentalCaidoDegradaAContractual(t *testing.T) {
	rep := &fakeReportes{entregasMes: []repository.EntregasMesResult{
		{Mes: 2, Requeridas: dec("25"), Cumplidas: dec("20")},
	}}
	proy := &fakeProyecciones{err: errors.New("server selection timeout")}
	uc := newUC(rep, proy, &fakeInsumos{})

	chart, err := uc.ProyeccionVsContractual(context.Background(), 2026)
	require.NoError(t, err, "el fallo del documental no debe propagarse")
	assert.Equal(t, chart.Contractual, chart.Proyectado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Distribución de inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestDistribucionInventario_OmiteEspeciesEnCero(t *testing.T) {
	especies := []dto.InventarioEspecieDTO{
		{Nombre: "Luga Roja", Cantidad: dec("750")},
		{Nombre: "Pelillo", Cantidad: decimal.Zero},
		{Nombre: "Cochayuyo", Cantidad: dec("250")},
	}
	chart := dashboard.DistribucionInventario(especies, dec("1000"))

	assert.Equal(t, []string{"Luga Roja", "Cochayuyo"}, chart.Labels)
	assert.Equal(t, []float64{75, 25}, chart.Data)
}

func TestDistribucionInventario_TotalCeroDevuelveVacio(t *testing.T) {
	especies := []dto.InventarioEspecieDTO{{Nombre: "Luga Roja", Cantidad: decimal.Zero}}
	chart := dashboard.DistribucionInventario(especies, decimal.Zero)

	assert.Empty(t, chart.Labels)
	assert.Empty(t, chart.Data)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas tempranas
// ──────────────────────────────────────────────────────────────────────────────

// El umbral es estricto: 95.0 exacto NO dispara la alerta, 94.99 sí.
func TestAlertasTempranas_UmbralCumplimiento(t *testing.T) {
	uc := newUC(&fakeReportes{}, &fakeProyecciones{}, &fakeInsumos{})

	alertas, err := uc.AlertasTempranas(context.Background(), 95.0, dec("100"))
	require.NoError(t, err)
	assert.Empty(t, alertas, "95.0 exacto no debe alertar")

	alertas, err = uc.AlertasTempranas(context.Background(), 94.99, dec("100"))
	require.NoError(t, err)
	require.Len(t, alertas, 1)
	assert.Equal(t, "alto", alertas[0].Nivel)
}

// Las tres reglas disparadas a la vez conservan el orden de evaluación:
// cumplimiento, inventario, insumos.
func TestAlertasTempranas_OrdenDeEvaluacion(t *testing.T) {
	ins := &fakeInsumos{bajos: []*entity.Insumo{
		{Nombre: "Yodo", Cantidad: dec("2"), Unidad: "lt", MinimoSeguridad: dec("10")},
	}}
	uc := newUC(&fakeReportes{}, &fakeProyecciones{}, ins)

	alertas, err := uc.AlertasTempranas(context.Background(), 80, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, alertas, 3)
	assert.Equal(t, "alto", alertas[0].Nivel)
	assert.Equal(t, "medio", alertas[1].Nivel)
	assert.Equal(t, "bajo", alertas[2].Nivel)
	assert.Contains(t, alertas[2].Titulo, "Yodo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Variación y resumen completo
// ──────────────────────────────────────────────────────────────────────────────

func TestCalcularVariacion(t *testing.T) {
	assert.Equal(t, 0.0, dashboard.CalcularVariacion(50, 0), "previo 0 devuelve 0, no división por cero")
	assert.Equal(t, 25.0, dashboard.CalcularVariacion(125, 100))
	assert.Equal(t, -10.0, dashboard.CalcularVariacion(90, 100))
	assert.Equal(t, 2.04, dashboard.CalcularVariacion(100, 98))
}

func TestGetResumen_EnsamblaTodo(t *testing.T) {
	rep := &fakeReportes{
		inventario: []repository.InventarioEspecieResult{
			{EspecieID: "1", Nombre: "Luga Roja", Entradas: dec("1000"), Salidas: dec("300")},
		},
		requeridas:      dec("100"),
		cumplidas:       dec("96"),
		produccion:      dec("500"),
		tonelajeActivos: dec("10"),
	}
	uc := newUC(rep, &fakeProyecciones{}, &fakeInsumos{})

	out, err := uc.GetResumen(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 96.0, out.CumplimientoContractual)
	assert.Equal(t, 500.0, out.ProduccionMensual)
	assert.Equal(t, 700.0, out.InventarioTotal)
	assert.Equal(t, 4_500_000.0, out.IngresosProyectados)
	assert.Len(t, out.ChartProyeccion.Labels, 12)
	assert.Empty(t, out.Alertas, "96% de cumplimiento y stock positivo no alertan")
	require.Len(t, out.Inventario, 1)
	assert.Equal(t, "Luga Roja", out.Inventario[0].Nombre)
}
