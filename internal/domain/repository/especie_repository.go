package repository

import "github.com/algasur/algas-api/internal/domain/entity"

// EspecieRepository puerto de persistencia para especies.
type EspecieRepository interface {
	Create(e *entity.Especie) error
	GetByID(id string) (*entity.Especie, error)
	GetByNombre(nombre string) (*entity.Especie, error)
	List() ([]*entity.Especie, error)
	Update(e *entity.Especie) error
	// Delete elimina la especie. Devuelve domain.ErrEnReferencia si existen
	// maxisacos o entregas que la referencian.
	Delete(id string) error
}
