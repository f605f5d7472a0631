package repository

import "github.com/algasur/algas-api/internal/domain/entity"

// MaxisacoRepository puerto de persistencia para movimientos de stock.
type MaxisacoRepository interface {
	Create(m *entity.Maxisaco) error
	GetByID(id string) (*entity.Maxisaco, error)
	// List devuelve movimientos ordenados por fecha de registro descendente.
	List(limit, offset int) ([]*entity.Maxisaco, error)
	Update(m *entity.Maxisaco) error
	Delete(id string) error
}
