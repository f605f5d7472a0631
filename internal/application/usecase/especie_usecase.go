package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/domain"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

// EspecieUseCase reglas de negocio para especies de alga.
type EspecieUseCase struct {
	repo repository.EspecieRepository
}

// NewEspecieUseCase construye el caso de uso.
func NewEspecieUseCase(repo repository.EspecieRepository) *EspecieUseCase {
	return &EspecieUseCase{repo: repo}
}

// Create registra una especie. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *EspecieUseCase) Create(in dto.CreateEspecieRequest) (*dto.EspecieResponse, error) {
	existing, _ := uc.repo.GetByNombre(in.Nombre)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	e := &entity.Especie{
		ID:                   uuid.New().String(),
		Nombre:               in.Nombre,
		Descripcion:          in.Descripcion,
		ProporcionConversion: in.ProporcionConversion,
		FechaCreacion:        now,
		FechaActualizacion:   now,
	}
	if err := uc.repo.Create(e); err != nil {
		return nil, err
	}
	return toEspecieResponse(e), nil
}

// GetByID obtiene una especie por ID.
func (uc *EspecieUseCase) GetByID(id string) (*dto.EspecieResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	return toEspecieResponse(e), nil
}

// List lista todas las especies.
func (uc *EspecieUseCase) List() (*dto.EspecieListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.EspecieResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEspecieResponse(e))
	}
	return &dto.EspecieListResponse{Items: items}, nil
}

// Update actualiza los datos de una especie.
func (uc *EspecieUseCase) Update(id string, in dto.UpdateEspecieRequest) (*dto.EspecieResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != "" && in.Nombre != e.Nombre {
		existing, _ := uc.repo.GetByNombre(in.Nombre)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		e.Nombre = in.Nombre
	}
	if in.Descripcion != "" {
		e.Descripcion = in.Descripcion
	}
	if !in.ProporcionConversion.IsZero() {
		e.ProporcionConversion = in.ProporcionConversion
	}
	e.FechaActualizacion = time.Now()
	if err := uc.repo.Update(e); err != nil {
		return nil, err
	}
	return toEspecieResponse(e), nil
}

// Delete elimina una especie. Devuelve domain.ErrEnReferencia si tiene
// movimientos de stock o entregas asociados.
func (uc *EspecieUseCase) Delete(id string) error {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toEspecieResponse(e *entity.Especie) *dto.EspecieResponse {
	if e == nil {
		return nil
	}
	return &dto.EspecieResponse{
		ID:                   e.ID,
		Nombre:               e.Nombre,
		Descripcion:          e.Descripcion,
		ProporcionConversion: e.ProporcionConversion,
	}
}
