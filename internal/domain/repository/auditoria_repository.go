package repository

import "github.com/algasur/algas-api/internal/domain/entity"

// AuditoriaRepository puerto de persistencia para el registro de auditoría.
// Append-only: no existen Update ni Delete.
type AuditoriaRepository interface {
	Create(a *entity.Auditoria) error
	// List devuelve entradas ordenadas por fecha descendente (más recientes primero).
	List(limit, offset int) ([]*entity.Auditoria, error)
}
