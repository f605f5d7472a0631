package repository

import "github.com/algasur/algas-api/internal/domain/entity"

// ContratoRepository puerto de persistencia para contratos y sus entregas.
// La eliminación de un contrato elimina sus entregas en cascada.
type ContratoRepository interface {
	Create(c *entity.Contrato) error
	GetByID(id string) (*entity.Contrato, error)
	List(limit, offset int) ([]*entity.Contrato, error)
	Update(c *entity.Contrato) error
	Delete(id string) error

	CreateEntrega(e *entity.EntregaContrato) error
	GetEntregaByID(id string) (*entity.EntregaContrato, error)
	// ListEntregas devuelve las entregas de un contrato ordenadas por mes.
	ListEntregas(contratoID string) ([]*entity.EntregaContrato, error)
	UpdateEntrega(e *entity.EntregaContrato) error
	DeleteEntrega(id string) error
}
