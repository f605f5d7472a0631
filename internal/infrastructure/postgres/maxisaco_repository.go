package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/algasur/algas-api/internal/domain"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

var _ repository.MaxisacoRepository = (*MaxisacoRepo)(nil)

// MaxisacoRepo implementación sobre PostgreSQL del libro de movimientos.
type MaxisacoRepo struct {
	q Querier
}

func NewMaxisacoRepository(q Querier) *MaxisacoRepo {
	return &MaxisacoRepo{q: q}
}

const maxisacoColumns = `id, especie_id, peso_kg, tipo_movimiento, fecha_registro,
	registrado_por, fecha_actualizacion, actualizado_por, observaciones`

// Create registra un movimiento de stock.
func (r *MaxisacoRepo) Create(m *entity.Maxisaco) error {
	query := `
		INSERT INTO maxisacos (` + maxisacoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.EspecieID, m.PesoKg, m.TipoMovimiento, m.FechaRegistro,
		m.RegistradoPor, m.FechaActualizacion, nullIfEmpty(m.ActualizadoPor), m.Observaciones,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create maxisaco: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MaxisacoRepo) GetByID(id string) (*entity.Maxisaco, error) {
	query := `SELECT ` + maxisacoColumns + ` FROM maxisacos WHERE id = $1`
	m, err := scanMaxisaco(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get maxisaco: %w", err)
	}
	return m, nil
}

// List devuelve movimientos paginados, más recientes primero.
func (r *MaxisacoRepo) List(limit, offset int) ([]*entity.Maxisaco, error) {
	query := `
		SELECT ` + maxisacoColumns + `
		FROM maxisacos
		ORDER BY fecha_registro DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list maxisacos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Maxisaco
	for rows.Next() {
		m, err := scanMaxisaco(rows)
		if err != nil {
			return nil, fmt.Errorf("scan maxisaco: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update corrige un movimiento ya registrado.
func (r *MaxisacoRepo) Update(m *entity.Maxisaco) error {
	query := `
		UPDATE maxisacos
		SET especie_id = $2, peso_kg = $3, tipo_movimiento = $4,
		    fecha_actualizacion = $5, actualizado_por = $6, observaciones = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		m.ID, m.EspecieID, m.PesoKg, m.TipoMovimiento,
		m.FechaActualizacion, nullIfEmpty(m.ActualizadoPor), m.Observaciones,
	)
	if err != nil {
		return fmt.Errorf("update maxisaco: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un movimiento.
func (r *MaxisacoRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM maxisacos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete maxisaco: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMaxisaco(row pgx.Row) (*entity.Maxisaco, error) {
	var m entity.Maxisaco
	var actualizadoPor, observaciones *string
	err := row.Scan(
		&m.ID, &m.EspecieID, &m.PesoKg, &m.TipoMovimiento, &m.FechaRegistro,
		&m.RegistradoPor, &m.FechaActualizacion, &actualizadoPor, &observaciones,
	)
	if err != nil {
		return nil, err
	}
	if actualizadoPor != nil {
		m.ActualizadoPor = *actualizadoPor
	}
	if observaciones != nil {
		m.Observaciones = *observaciones
	}
	return &m, nil
}
