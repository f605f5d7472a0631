package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/domain"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

// StockUseCase reglas de negocio para movimientos de stock (maxisacos).
// Las ediciones y eliminaciones están permitidas: el inventario siempre se
// recalcula desde las filas vigentes, nunca desde un saldo cacheado.
type StockUseCase struct {
	repo     repository.MaxisacoRepository
	especies repository.EspecieRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.MaxisacoRepository, especies repository.EspecieRepository) *StockUseCase {
	return &StockUseCase{repo: repo, especies: especies}
}

// Create registra un movimiento. peso_kg debe ser >= 0 y la especie existir.
func (uc *StockUseCase) Create(userID string, in dto.CreateMaxisacoRequest) (*dto.MaxisacoResponse, error) {
	if err := validarMovimiento(in.TipoMovimiento); err != nil {
		return nil, err
	}
	if in.PesoKg.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	esp, err := uc.especies.GetByID(in.EspecieID)
	if err != nil {
		return nil, err
	}
	if esp == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	m := &entity.Maxisaco{
		ID:                 uuid.New().String(),
		EspecieID:          in.EspecieID,
		PesoKg:             in.PesoKg,
		TipoMovimiento:     in.TipoMovimiento,
		FechaRegistro:      now,
		RegistradoPor:      userID,
		FechaActualizacion: now,
		ActualizadoPor:     userID,
		Observaciones:      in.Observaciones,
	}
	if err := uc.repo.Create(m); err != nil {
		return nil, err
	}
	return toMaxisacoResponse(m), nil
}

// GetByID obtiene un movimiento por ID.
func (uc *StockUseCase) GetByID(id string) (*dto.MaxisacoResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return toMaxisacoResponse(m), nil
}

// List lista movimientos paginados, más recientes primero.
func (uc *StockUseCase) List(limit, offset int) (*dto.MaxisacoListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaxisacoResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaxisacoResponse(m))
	}
	return &dto.MaxisacoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update edita un movimiento existente y deja constancia de quién lo actualizó.
func (uc *StockUseCase) Update(id, userID string, in dto.UpdateMaxisacoRequest) (*dto.MaxisacoResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.EspecieID != "" {
		esp, err := uc.especies.GetByID(in.EspecieID)
		if err != nil {
			return nil, err
		}
		if esp == nil {
			return nil, domain.ErrNotFound
		}
		m.EspecieID = in.EspecieID
	}
	if in.TipoMovimiento != "" {
		if err := validarMovimiento(in.TipoMovimiento); err != nil {
			return nil, err
		}
		m.TipoMovimiento = in.TipoMovimiento
	}
	if !in.PesoKg.IsZero() {
		if in.PesoKg.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		m.PesoKg = in.PesoKg
	}
	if in.Observaciones != "" {
		m.Observaciones = in.Observaciones
	}
	m.ActualizadoPor = userID
	m.FechaActualizacion = time.Now()
	if err := uc.repo.Update(m); err != nil {
		return nil, err
	}
	return toMaxisacoResponse(m), nil
}

// Delete elimina un movimiento.
func (uc *StockUseCase) Delete(id string) error {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func validarMovimiento(tipo string) error {
	if tipo != entity.MovimientoEntrada && tipo != entity.MovimientoSalida {
		return domain.ErrInvalidInput
	}
	return nil
}

func toMaxisacoResponse(m *entity.Maxisaco) *dto.MaxisacoResponse {
	if m == nil {
		return nil
	}
	return &dto.MaxisacoResponse{
		ID:             m.ID,
		EspecieID:      m.EspecieID,
		PesoKg:         m.PesoKg,
		TipoMovimiento: m.TipoMovimiento,
		FechaRegistro:  m.FechaRegistro,
		RegistradoPor:  m.RegistradoPor,
		ActualizadoPor: m.ActualizadoPor,
		Observaciones:  m.Observaciones,
	}
}
