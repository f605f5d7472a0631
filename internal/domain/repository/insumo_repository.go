package repository

import "github.com/algasur/algas-api/internal/domain/entity"

// InsumoRepository puerto de persistencia para insumos consumibles.
type InsumoRepository interface {
	Create(i *entity.Insumo) error
	GetByID(id string) (*entity.Insumo, error)
	List() ([]*entity.Insumo, error)
	Update(i *entity.Insumo) error
	Delete(id string) error
	// ListBajoMinimo devuelve insumos con cantidad bajo su mínimo de seguridad.
	ListBajoMinimo() ([]*entity.Insumo, error)
}
