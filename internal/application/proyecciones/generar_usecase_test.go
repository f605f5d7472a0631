package proyecciones_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algasur/algas-api/internal/application/proyecciones"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
	"github.com/algasur/algas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeEspecies struct {
	lista []*entity.Especie
}

func (f *fakeEspecies) Create(*entity.Especie) error                { return nil }
func (f *fakeEspecies) GetByID(string) (*entity.Especie, error)     { return nil, nil }
func (f *fakeEspecies) GetByNombre(string) (*entity.Especie, error) { return nil, nil }
func (f *fakeEspecies) List() ([]*entity.Especie, error)            { return f.lista, nil }
func (f *fakeEspecies) Update(*entity.Especie) error                { return nil }
func (f *fakeEspecies) Delete(string) error                         { return nil }

type fakeReportes struct {
	historicos map[string][]entity.HistoricoMes // por especie ID
}

func (f *fakeReportes) InventarioPorEspecie(context.Context) ([]repository.InventarioEspecieResult, error) {
	return nil, nil
}
func (f *fakeReportes) TotalesEntregas(context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.Zero, decimal.Zero, nil
}
func (f *fakeReportes) ProduccionEntreFechas(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (f *fakeReportes) TonelajeContratosActivos(context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (f *fakeReportes) EntregasPorMes(context.Context, int) ([]repository.EntregasMesResult, error) {
	return nil, nil
}
func (f *fakeReportes) HistoricoEntradasEspecie(_ context.Context, especieID string) ([]entity.HistoricoMes, error) {
	return f.historicos[especieID], nil
}

type fakeStore struct {
	guardadas []entity.Proyeccion
}

func (f *fakeStore) Upsert(_ context.Context, p entity.Proyeccion) error {
	f.guardadas = append(f.guardadas, p)
	return nil
}
func (f *fakeStore) TotalesPorMes(context.Context, int) (map[int]float64, error) { return nil, nil }

// fakeCliente falla para las especies listadas en fallaPara.
type fakeCliente struct {
	fallaPara       map[string]bool
	llamadas        []string
	ultimoHistorico []entity.HistoricoMes
}

func (f *fakeCliente) Proyectar(_ context.Context, especie string, historico []entity.HistoricoMes, meses int) ([]proyecciones.PuntoProyectado, error) {
	f.llamadas = append(f.llamadas, especie)
	f.ultimoHistorico = historico
	if f.fallaPara[especie] {
		return nil, errors.New("timeout del microservicio")
	}
	puntos := make([]proyecciones.PuntoProyectado, 0, meses)
	ultimo := historico[len(historico)-1]
	anio, mes := ultimo.Anio, ultimo.Mes
	for i := 0; i < meses; i++ {
		mes++
		if mes > 12 {
			mes = 1
			anio++
		}
		puntos = append(puntos, proyecciones.PuntoProyectado{Anio: anio, Mes: mes, ProyeccionTon: 10})
	}
	return puntos, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Una especie sin histórico se omite: no tiene sentido proyectar sin datos,
// y no debe llamarse al microservicio por ella.
func TestGenerar_OmiteEspeciesSinHistorico(t *testing.T) {
	especies := &fakeEspecies{lista: []*entity.Especie{
		{ID: "e1", Nombre: "Luga Roja"},
		{ID: "e2", Nombre: "Pelillo"}, // sin histórico
	}}
	reportes := &fakeReportes{historicos: map[string][]entity.HistoricoMes{
		"e1": {{Anio: 2026, Mes: 7, Toneladas: 12}},
	}}
	store := &fakeStore{}
	cliente := &fakeCliente{}
	uc := proyecciones.NewGenerarUseCase(especies, reportes, store, cliente, 3, logger.Nop())

	res, err := uc.Generar(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.EspeciesProcesadas)
	assert.Equal(t, 1, res.EspeciesOmitidas)
	assert.Equal(t, 3, res.PuntosGuardados)
	assert.Equal(t, []string{"Luga Roja"}, cliente.llamadas)
}

// El fallo de una especie no aborta el batch: las demás se procesan igual.
func TestGenerar_FalloAisladoNoAbortaElBatch(t *testing.T) {
	especies := &fakeEspecies{lista: []*entity.Especie{
		{ID: "e1", Nombre: "Luga Roja"},
		{ID: "e2", Nombre: "Cochayuyo"},
	}}
	reportes := &fakeReportes{historicos: map[string][]entity.HistoricoMes{
		"e1": {{Anio: 2026, Mes: 7, Toneladas: 12}},
		"e2": {{Anio: 2026, Mes: 7, Toneladas: 8}},
	}}
	store := &fakeStore{}
	cliente := &fakeCliente{fallaPara: map[string]bool{"Luga Roja": true}}
	uc := proyecciones.NewGenerarUseCase(especies, reportes, store, cliente, 2, logger.Nop())

	res, err := uc.Generar(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.EspeciesProcesadas)
	assert.Equal(t, 1, res.EspeciesOmitidas)
	assert.Equal(t, 2, res.PuntosGuardados)

	// Solo los puntos de la especie exitosa llegaron al documental.
	require.Len(t, store.guardadas, 2)
	for _, p := range store.guardadas {
		assert.Equal(t, "Cochayuyo", p.Especie)
	}
}

// Los puntos guardados continúan mes a mes desde el final del histórico,
// con rollover de año incluido.
func TestGenerar_PuntosContinuanDesdeElHistorico(t *testing.T) {
	especies := &fakeEspecies{lista: []*entity.Especie{{ID: "e1", Nombre: "Luga Roja"}}}
	reportes := &fakeReportes{historicos: map[string][]entity.HistoricoMes{
		"e1": {{Anio: 2026, Mes: 11, Toneladas: 12}},
	}}
	store := &fakeStore{}
	uc := proyecciones.NewGenerarUseCase(especies, reportes, store, &fakeCliente{}, 3, logger.Nop())

	_, err := uc.Generar(context.Background())
	require.NoError(t, err)

	require.Len(t, store.guardadas, 3)
	assert.Equal(t, 12, store.guardadas[0].Mes)
	assert.Equal(t, 2026, store.guardadas[0].Anio)
	assert.Equal(t, 1, store.guardadas[1].Mes)
	assert.Equal(t, 2027, store.guardadas[1].Anio)
	assert.Equal(t, 2, store.guardadas[2].Mes)
}

// Un mes cuyas entradas suman cero kilos no aporta señal: se descarta del
// histórico antes de llamar al microservicio.
func TestGenerar_DescartaMesesSinProduccion(t *testing.T) {
	especies := &fakeEspecies{lista: []*entity.Especie{{ID: "e1", Nombre: "Luga Roja"}}}
	reportes := &fakeReportes{historicos: map[string][]entity.HistoricoMes{
		"e1": {
			{Anio: 2026, Mes: 5, Toneladas: 0},
			{Anio: 2026, Mes: 6, Toneladas: 12},
			{Anio: 2026, Mes: 7, Toneladas: 0},
		},
	}}
	cliente := &fakeCliente{}
	uc := proyecciones.NewGenerarUseCase(especies, reportes, &fakeStore{}, cliente, 2, logger.Nop())

	res, err := uc.Generar(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.EspeciesProcesadas)
	require.Len(t, cliente.ultimoHistorico, 1)
	assert.Equal(t, 6, cliente.ultimoHistorico[0].Mes)
	assert.Equal(t, float64(12), cliente.ultimoHistorico[0].Toneladas)
}

// Una especie cuyo histórico es solo meses de cero toneladas equivale a no
// tener histórico: se omite sin llamar al microservicio.
func TestGenerar_HistoricoSoloDeCerosEquivaleAVacio(t *testing.T) {
	especies := &fakeEspecies{lista: []*entity.Especie{{ID: "e1", Nombre: "Pelillo"}}}
	reportes := &fakeReportes{historicos: map[string][]entity.HistoricoMes{
		"e1": {{Anio: 2026, Mes: 3, Toneladas: 0}, {Anio: 2026, Mes: 4, Toneladas: 0}},
	}}
	cliente := &fakeCliente{}
	uc := proyecciones.NewGenerarUseCase(especies, reportes, &fakeStore{}, cliente, 2, logger.Nop())

	res, err := uc.Generar(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.EspeciesProcesadas)
	assert.Equal(t, 1, res.EspeciesOmitidas)
	assert.Empty(t, cliente.llamadas)
}
