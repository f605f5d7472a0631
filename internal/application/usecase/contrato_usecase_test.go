package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/application/usecase"
	"github.com/algasur/algas-api/internal/domain"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeContratos struct {
	contratos map[string]*entity.Contrato
	entregas  map[string]*entity.EntregaContrato
	creadas   []*entity.EntregaContrato
}

func newFakeContratos() *fakeContratos {
	return &fakeContratos{
		contratos: map[string]*entity.Contrato{},
		entregas:  map[string]*entity.EntregaContrato{},
	}
}

func (f *fakeContratos) Create(c *entity.Contrato) error { f.contratos[c.ID] = c; return nil }
func (f *fakeContratos) GetByID(id string) (*entity.Contrato, error) {
	return f.contratos[id], nil
}
func (f *fakeContratos) List(int, int) ([]*entity.Contrato, error) { return nil, nil }
func (f *fakeContratos) Update(c *entity.Contrato) error           { f.contratos[c.ID] = c; return nil }
func (f *fakeContratos) Delete(id string) error                    { delete(f.contratos, id); return nil }

func (f *fakeContratos) CreateEntrega(e *entity.EntregaContrato) error {
	f.entregas[e.ID] = e
	f.creadas = append(f.creadas, e)
	return nil
}
func (f *fakeContratos) GetEntregaByID(id string) (*entity.EntregaContrato, error) {
	return f.entregas[id], nil
}
func (f *fakeContratos) ListEntregas(string) ([]*entity.EntregaContrato, error) { return nil, nil }
func (f *fakeContratos) UpdateEntrega(e *entity.EntregaContrato) error {
	f.entregas[e.ID] = e
	return nil
}
func (f *fakeContratos) DeleteEntrega(id string) error { delete(f.entregas, id); return nil }

type fakeEspecies struct {
	porID map[string]*entity.Especie
}

func (f *fakeEspecies) Create(*entity.Especie) error { return nil }
func (f *fakeEspecies) GetByID(id string) (*entity.Especie, error) {
	return f.porID[id], nil
}
func (f *fakeEspecies) GetByNombre(string) (*entity.Especie, error) { return nil, nil }
func (f *fakeEspecies) List() ([]*entity.Especie, error)            { return nil, nil }
func (f *fakeEspecies) Update(*entity.Especie) error                { return nil }
func (f *fakeEspecies) Delete(string) error                         { return nil }

// fakeInventario solo implementa la consulta de inventario; el resto del
// puerto de reportes no se usa desde contratos.
type fakeInventario struct {
	filas []repository.InventarioEspecieResult
}

func (f *fakeInventario) InventarioPorEspecie(context.Context) ([]repository.InventarioEspecieResult, error) {
	return f.filas, nil
}
func (f *fakeInventario) TotalesEntregas(context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.Zero, decimal.Zero, nil
}
func (f *fakeInventario) ProduccionEntreFechas(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (f *fakeInventario) TonelajeContratosActivos(context.Context) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (f *fakeInventario) EntregasPorMes(context.Context, int) ([]repository.EntregasMesResult, error) {
	return nil, nil
}
func (f *fakeInventario) HistoricoEntradasEspecie(context.Context, string) ([]entity.HistoricoMes, error) {
	return nil, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func boolPtr(b bool) *bool { return &b }

// armarUC deja un contrato y una especie listos, con el stock indicado en kg.
func armarUC(stockKg string) (*usecase.ContratoUseCase, *fakeContratos) {
	repo := newFakeContratos()
	repo.contratos["c1"] = &entity.Contrato{ID: "c1", Cliente: "Exportadora Sur", Estado: entity.ContratoActivo}
	especies := &fakeEspecies{porID: map[string]*entity.Especie{
		"e1": {ID: "e1", Nombre: "Luga Roja"},
	}}
	inv := &fakeInventario{filas: []repository.InventarioEspecieResult{
		{EspecieID: "e1", Nombre: "Luga Roja", Entradas: dec(stockKg), Salidas: decimal.Zero},
	}}
	return usecase.NewContratoUseCase(repo, especies, inv), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateEntrega_CumplidasMayorQueRequeridasEsInvalido(t *testing.T) {
	uc, _ := armarUC("100000")

	_, err := uc.CreateEntrega(context.Background(), "c1", dto.CreateEntregaRequest{
		EspecieID:           "e1",
		Mes:                 time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ToneladasRequeridas: dec("10"),
		ToneladasCumplidas:  dec("12"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El compromiso (toneladas) se compara contra inventario (kg): 5 ton = 5000 kg.
func TestCreateEntrega_SinStockSuficienteRechaza(t *testing.T) {
	uc, repo := armarUC("4000") // 4 ton disponibles

	_, err := uc.CreateEntrega(context.Background(), "c1", dto.CreateEntregaRequest{
		EspecieID:           "e1",
		Mes:                 time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ToneladasRequeridas: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Empty(t, repo.creadas)
}

// comprometida_sin_stock es el override explícito: el mismo compromiso
// rechazado arriba pasa, y la marca queda persistida en la entrega.
func TestCreateEntrega_OverrideSinStockPersiste(t *testing.T) {
	uc, repo := armarUC("4000")

	out, err := uc.CreateEntrega(context.Background(), "c1", dto.CreateEntregaRequest{
		EspecieID:            "e1",
		Mes:                  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ToneladasRequeridas:  dec("5"),
		ComprometidaSinStock: true,
	})
	require.NoError(t, err)
	assert.True(t, out.ComprometidaSinStock)
	require.Len(t, repo.creadas, 1)
	assert.True(t, repo.creadas[0].ComprometidaSinStock)
}

// El mes del compromiso siempre se normaliza al primer día del mes.
func TestCreateEntrega_NormalizaMesAlPrimerDia(t *testing.T) {
	uc, repo := armarUC("100000")

	_, err := uc.CreateEntrega(context.Background(), "c1", dto.CreateEntregaRequest{
		EspecieID:           "e1",
		Mes:                 time.Date(2026, 9, 23, 11, 30, 0, 0, time.UTC),
		ToneladasRequeridas: dec("5"),
	})
	require.NoError(t, err)
	require.Len(t, repo.creadas, 1)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), repo.creadas[0].Mes)
}

func TestCreateEntrega_ContratoInexistente(t *testing.T) {
	uc, _ := armarUC("100000")

	_, err := uc.CreateEntrega(context.Background(), "no-existe", dto.CreateEntregaRequest{
		EspecieID:           "e1",
		ToneladasRequeridas: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateEntrega_ValidaCumplidasContraRequeridas(t *testing.T) {
	uc, repo := armarUC("100000")
	repo.entregas["en1"] = &entity.EntregaContrato{
		ID: "en1", ContratoID: "c1", EspecieID: "e1",
		Mes:                 time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ToneladasRequeridas: dec("10"),
	}

	_, err := uc.UpdateEntrega(context.Background(), "en1", dto.UpdateEntregaRequest{
		ToneladasCumplidas: decPtr("11"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.UpdateEntrega(context.Background(), "en1", dto.UpdateEntregaRequest{
		ToneladasCumplidas: decPtr("10"),
	})
	require.NoError(t, err, "cumplidas == requeridas es el caso de entrega completa")
	assert.True(t, out.ToneladasCumplidas.Equal(dec("10")))
}

// Un PUT parcial que omite cumplidas y el override no los resetea: solo se
// pisa lo que el cliente envió explícitamente.
func TestUpdateEntrega_ParcialConservaCumplidasYOverride(t *testing.T) {
	uc, repo := armarUC("100000")
	repo.entregas["en1"] = &entity.EntregaContrato{
		ID: "en1", ContratoID: "c1", EspecieID: "e1",
		Mes:                  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ToneladasRequeridas:  dec("10"),
		ToneladasCumplidas:   dec("4"),
		ComprometidaSinStock: true,
	}

	out, err := uc.UpdateEntrega(context.Background(), "en1", dto.UpdateEntregaRequest{
		ToneladasRequeridas: dec("12"),
	})
	require.NoError(t, err)
	assert.True(t, out.ToneladasCumplidas.Equal(dec("4")), "cumplidas no viajó en el request")
	assert.True(t, out.ComprometidaSinStock, "el override no viajó en el request")

	// Enviar el campo explícitamente sí lo actualiza, incluso a cero / false.
	out, err = uc.UpdateEntrega(context.Background(), "en1", dto.UpdateEntregaRequest{
		ToneladasCumplidas:   decPtr("0"),
		ComprometidaSinStock: boolPtr(false),
	})
	require.NoError(t, err)
	assert.True(t, out.ToneladasCumplidas.IsZero())
	assert.False(t, out.ComprometidaSinStock)
}
