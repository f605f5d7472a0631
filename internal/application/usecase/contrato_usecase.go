package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/domain"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

// kgPorTonelada conversión para comparar compromisos (toneladas) contra
// inventario (kg).
var kgPorTonelada = decimal.NewFromInt(1000)

// ContratoUseCase reglas de negocio para contratos y entregas mensuales.
type ContratoUseCase struct {
	repo     repository.ContratoRepository
	especies repository.EspecieRepository
	reportes repository.ReporteRepository
}

// NewContratoUseCase construye el caso de uso. El repositorio de reportes se
// usa solo para validar disponibilidad de stock al comprometer entregas.
func NewContratoUseCase(
	repo repository.ContratoRepository,
	especies repository.EspecieRepository,
	reportes repository.ReporteRepository,
) *ContratoUseCase {
	return &ContratoUseCase{repo: repo, especies: especies, reportes: reportes}
}

// Create crea un contrato. Estado por defecto: activo.
func (uc *ContratoUseCase) Create(userID string, in dto.CreateContratoRequest) (*dto.ContratoResponse, error) {
	estado := in.Estado
	if estado == "" {
		estado = entity.ContratoActivo
	}
	if !estadoValido(estado) {
		return nil, domain.ErrInvalidInput
	}
	if in.FechaFin.Before(in.FechaInicio) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Contrato{
		ID:                 uuid.New().String(),
		Cliente:            in.Cliente,
		TonelajeTotal:      in.TonelajeTotal,
		FechaInicio:        in.FechaInicio,
		FechaFin:           in.FechaFin,
		Estado:             estado,
		CreadoPor:          userID,
		FechaCreacion:      now,
		ActualizadoPor:     userID,
		FechaActualizacion: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return toContratoResponse(c), nil
}

// GetByID obtiene un contrato por ID.
func (uc *ContratoUseCase) GetByID(id string) (*dto.ContratoResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toContratoResponse(c), nil
}

// List lista contratos paginados.
func (uc *ContratoUseCase) List(limit, offset int) (*dto.ContratoListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ContratoResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toContratoResponse(c))
	}
	return &dto.ContratoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un contrato.
func (uc *ContratoUseCase) Update(id, userID string, in dto.UpdateContratoRequest) (*dto.ContratoResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Cliente != "" {
		c.Cliente = in.Cliente
	}
	if !in.TonelajeTotal.IsZero() {
		c.TonelajeTotal = in.TonelajeTotal
	}
	if !in.FechaInicio.IsZero() {
		c.FechaInicio = in.FechaInicio
	}
	if !in.FechaFin.IsZero() {
		c.FechaFin = in.FechaFin
	}
	if in.Estado != "" {
		if !estadoValido(in.Estado) {
			return nil, domain.ErrInvalidInput
		}
		c.Estado = in.Estado
	}
	if c.FechaFin.Before(c.FechaInicio) {
		return nil, domain.ErrInvalidInput
	}
	c.ActualizadoPor = userID
	c.FechaActualizacion = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return toContratoResponse(c), nil
}

// Delete elimina un contrato y, en cascada, sus entregas.
func (uc *ContratoUseCase) Delete(id string) error {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// CreateEntrega compromete una entrega mensual dentro de un contrato.
//
// Validaciones de negocio (no las impone la DB):
//   - toneladas_cumplidas <= toneladas_requeridas
//   - toneladas_requeridas no puede exceder el stock disponible de la
//     especie, salvo override explícito con comprometida_sin_stock.
func (uc *ContratoUseCase) CreateEntrega(ctx context.Context, contratoID string, in dto.CreateEntregaRequest) (*dto.EntregaResponse, error) {
	c, err := uc.repo.GetByID(contratoID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	esp, err := uc.especies.GetByID(in.EspecieID)
	if err != nil {
		return nil, err
	}
	if esp == nil {
		return nil, domain.ErrNotFound
	}
	if in.ToneladasCumplidas.GreaterThan(in.ToneladasRequeridas) {
		return nil, domain.ErrInvalidInput
	}
	if !in.ComprometidaSinStock {
		if err := uc.validarStockDisponible(ctx, in.EspecieID, in.ToneladasRequeridas); err != nil {
			return nil, err
		}
	}
	e := &entity.EntregaContrato{
		ID:                   uuid.New().String(),
		ContratoID:           contratoID,
		EspecieID:            in.EspecieID,
		Mes:                  primerDiaDelMes(in.Mes),
		ToneladasRequeridas:  in.ToneladasRequeridas,
		ToneladasCumplidas:   in.ToneladasCumplidas,
		ComprometidaSinStock: in.ComprometidaSinStock,
		FechaLimite:          in.FechaLimite,
	}
	if err := uc.repo.CreateEntrega(e); err != nil {
		return nil, err
	}
	return toEntregaResponse(e), nil
}

// ListEntregas devuelve las entregas de un contrato ordenadas por mes.
func (uc *ContratoUseCase) ListEntregas(contratoID string) (*dto.EntregaListResponse, error) {
	c, err := uc.repo.GetByID(contratoID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListEntregas(contratoID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EntregaResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEntregaResponse(e))
	}
	return &dto.EntregaListResponse{Items: items}, nil
}

// UpdateEntrega edita una entrega comprometida.
func (uc *ContratoUseCase) UpdateEntrega(ctx context.Context, id string, in dto.UpdateEntregaRequest) (*dto.EntregaResponse, error) {
	e, err := uc.repo.GetEntregaByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if !in.Mes.IsZero() {
		e.Mes = primerDiaDelMes(in.Mes)
	}
	if !in.ToneladasRequeridas.IsZero() {
		e.ToneladasRequeridas = in.ToneladasRequeridas
	}
	if in.ToneladasCumplidas != nil {
		e.ToneladasCumplidas = *in.ToneladasCumplidas
	}
	if in.ComprometidaSinStock != nil {
		e.ComprometidaSinStock = *in.ComprometidaSinStock
	}
	if in.FechaLimite != nil {
		e.FechaLimite = in.FechaLimite
	}
	if e.ToneladasCumplidas.GreaterThan(e.ToneladasRequeridas) {
		return nil, domain.ErrInvalidInput
	}
	if !e.ComprometidaSinStock {
		if err := uc.validarStockDisponible(ctx, e.EspecieID, e.ToneladasRequeridas); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.UpdateEntrega(e); err != nil {
		return nil, err
	}
	return toEntregaResponse(e), nil
}

// DeleteEntrega elimina una entrega puntual.
func (uc *ContratoUseCase) DeleteEntrega(id string) error {
	e, err := uc.repo.GetEntregaByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	return uc.repo.DeleteEntrega(id)
}

// validarStockDisponible compara el compromiso (toneladas) contra el
// inventario neto de la especie (kg, con clamp a cero).
func (uc *ContratoUseCase) validarStockDisponible(ctx context.Context, especieID string, toneladas decimal.Decimal) error {
	filas, err := uc.reportes.InventarioPorEspecie(ctx)
	if err != nil {
		return err
	}
	disponibleKg := decimal.Zero
	for _, f := range filas {
		if f.EspecieID == especieID {
			neto := f.Entradas.Sub(f.Salidas)
			if neto.IsPositive() {
				disponibleKg = neto
			}
			break
		}
	}
	if toneladas.Mul(kgPorTonelada).GreaterThan(disponibleKg) {
		return domain.ErrStockInsuficiente
	}
	return nil
}

func primerDiaDelMes(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func estadoValido(estado string) bool {
	switch estado {
	case entity.ContratoActivo, entity.ContratoCompletado, entity.ContratoCancelado:
		return true
	}
	return false
}

func toContratoResponse(c *entity.Contrato) *dto.ContratoResponse {
	if c == nil {
		return nil
	}
	return &dto.ContratoResponse{
		ID:            c.ID,
		Cliente:       c.Cliente,
		TonelajeTotal: c.TonelajeTotal,
		FechaInicio:   c.FechaInicio,
		FechaFin:      c.FechaFin,
		Estado:        c.Estado,
	}
}

func toEntregaResponse(e *entity.EntregaContrato) *dto.EntregaResponse {
	if e == nil {
		return nil
	}
	return &dto.EntregaResponse{
		ID:                   e.ID,
		ContratoID:           e.ContratoID,
		EspecieID:            e.EspecieID,
		Mes:                  e.Mes,
		ToneladasRequeridas:  e.ToneladasRequeridas,
		ToneladasCumplidas:   e.ToneladasCumplidas,
		ComprometidaSinStock: e.ComprometidaSinStock,
		FechaLimite:          e.FechaLimite,
	}
}
