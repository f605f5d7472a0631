package postgres

import (
	"context"
	"fmt"

	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementación sobre PostgreSQL del registro de auditoría.
// Solo inserta y lista: las filas nunca se modifican ni eliminan desde la
// aplicación. usuario_id tiene ON DELETE SET NULL para que la entrada
// sobreviva a la eliminación del usuario.
type AuditoriaRepo struct {
	q Querier
}

func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Create inserta una entrada de auditoría.
func (r *AuditoriaRepo) Create(a *entity.Auditoria) error {
	query := `
		INSERT INTO auditoria (id, usuario_id, username, accion, modulo, detalle, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.UsuarioID, a.Username, a.Accion, a.Modulo, a.Detalle, a.Fecha,
	)
	if err != nil {
		return fmt.Errorf("create auditoria: %w", err)
	}
	return nil
}

// List devuelve entradas paginadas, más recientes primero.
func (r *AuditoriaRepo) List(limit, offset int) ([]*entity.Auditoria, error) {
	query := `
		SELECT id, usuario_id, username, accion, modulo, detalle, fecha
		FROM auditoria
		ORDER BY fecha DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list auditoria: %w", err)
	}
	defer rows.Close()
	var list []*entity.Auditoria
	for rows.Next() {
		var a entity.Auditoria
		var detalle *string
		if err := rows.Scan(&a.ID, &a.UsuarioID, &a.Username, &a.Accion, &a.Modulo, &detalle, &a.Fecha); err != nil {
			return nil, fmt.Errorf("scan auditoria: %w", err)
		}
		if detalle != nil {
			a.Detalle = *detalle
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
