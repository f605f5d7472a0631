package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/domain"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

// InsumoUseCase reglas de negocio para insumos consumibles.
type InsumoUseCase struct {
	repo repository.InsumoRepository
}

// NewInsumoUseCase construye el caso de uso.
func NewInsumoUseCase(repo repository.InsumoRepository) *InsumoUseCase {
	return &InsumoUseCase{repo: repo}
}

// Create registra un insumo. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *InsumoUseCase) Create(userID string, in dto.CreateInsumoRequest) (*dto.InsumoResponse, error) {
	if !unidadValida(in.Unidad) {
		return nil, domain.ErrInvalidInput
	}
	if in.Cantidad.IsNegative() || in.MinimoSeguridad.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	i := &entity.Insumo{
		ID:                 uuid.New().String(),
		Nombre:             in.Nombre,
		Descripcion:        in.Descripcion,
		Cantidad:           in.Cantidad,
		Unidad:             in.Unidad,
		MinimoSeguridad:    in.MinimoSeguridad,
		CreadoPor:          userID,
		FechaCreacion:      now,
		ActualizadoPor:     userID,
		FechaActualizacion: now,
	}
	if err := uc.repo.Create(i); err != nil {
		return nil, err
	}
	return toInsumoResponse(i), nil
}

// GetByID obtiene un insumo por ID.
func (uc *InsumoUseCase) GetByID(id string) (*dto.InsumoResponse, error) {
	i, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, nil
	}
	return toInsumoResponse(i), nil
}

// List lista todos los insumos ordenados por nombre.
func (uc *InsumoUseCase) List() (*dto.InsumoListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.InsumoResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toInsumoResponse(i))
	}
	return &dto.InsumoListResponse{Items: items}, nil
}

// Update actualiza un insumo existente.
func (uc *InsumoUseCase) Update(id, userID string, in dto.UpdateInsumoRequest) (*dto.InsumoResponse, error) {
	i, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != "" {
		i.Nombre = in.Nombre
	}
	if in.Descripcion != "" {
		i.Descripcion = in.Descripcion
	}
	if in.Unidad != "" {
		if !unidadValida(in.Unidad) {
			return nil, domain.ErrInvalidInput
		}
		i.Unidad = in.Unidad
	}
	if in.Cantidad.IsNegative() || in.MinimoSeguridad.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	i.Cantidad = in.Cantidad
	if !in.MinimoSeguridad.IsZero() {
		i.MinimoSeguridad = in.MinimoSeguridad
	}
	i.ActualizadoPor = userID
	i.FechaActualizacion = time.Now()
	if err := uc.repo.Update(i); err != nil {
		return nil, err
	}
	return toInsumoResponse(i), nil
}

// Delete elimina un insumo.
func (uc *InsumoUseCase) Delete(id string) error {
	i, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if i == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func unidadValida(u string) bool {
	switch u {
	case entity.UnidadKg, entity.UnidadLt, entity.UnidadUn:
		return true
	}
	return false
}

func toInsumoResponse(i *entity.Insumo) *dto.InsumoResponse {
	if i == nil {
		return nil
	}
	return &dto.InsumoResponse{
		ID:              i.ID,
		Nombre:          i.Nombre,
		Descripcion:     i.Descripcion,
		Cantidad:        i.Cantidad,
		Unidad:          i.Unidad,
		MinimoSeguridad: i.MinimoSeguridad,
		BajoMinimo:      i.BajoMinimo(),
	}
}
