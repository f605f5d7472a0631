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

var _ repository.EspecieRepository = (*EspecieRepo)(nil)

// EspecieRepo implementación sobre PostgreSQL (usable con pool o tx).
type EspecieRepo struct {
	q Querier
}

// NewEspecieRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEspecieRepository(q Querier) *EspecieRepo {
	return &EspecieRepo{q: q}
}

// Create persiste una especie.
func (r *EspecieRepo) Create(e *entity.Especie) error {
	query := `
		INSERT INTO especies (id, nombre, descripcion, proporcion_conversion, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Nombre, e.Descripcion, e.ProporcionConversion, e.FechaCreacion, e.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create especie: %w", err)
	}
	return nil
}

// GetByID obtiene una especie por ID.
func (r *EspecieRepo) GetByID(id string) (*entity.Especie, error) {
	return r.getBy("id", id)
}

// GetByNombre obtiene una especie por nombre (único).
func (r *EspecieRepo) GetByNombre(nombre string) (*entity.Especie, error) {
	return r.getBy("nombre", nombre)
}

func (r *EspecieRepo) getBy(column, value string) (*entity.Especie, error) {
	query := fmt.Sprintf(`
		SELECT id, nombre, descripcion, proporcion_conversion, fecha_creacion, fecha_actualizacion
		FROM especies WHERE %s = $1`, column)
	var e entity.Especie
	var descripcion *string
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&e.ID, &e.Nombre, &descripcion, &e.ProporcionConversion, &e.FechaCreacion, &e.FechaActualizacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get especie: %w", err)
	}
	if descripcion != nil {
		e.Descripcion = *descripcion
	}
	return &e, nil
}

// List lista todas las especies ordenadas por nombre.
func (r *EspecieRepo) List() ([]*entity.Especie, error) {
	query := `
		SELECT id, nombre, descripcion, proporcion_conversion, fecha_creacion, fecha_actualizacion
		FROM especies ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list especies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Especie
	for rows.Next() {
		var e entity.Especie
		var descripcion *string
		if err := rows.Scan(&e.ID, &e.Nombre, &descripcion, &e.ProporcionConversion, &e.FechaCreacion, &e.FechaActualizacion); err != nil {
			return nil, fmt.Errorf("scan especie: %w", err)
		}
		if descripcion != nil {
			e.Descripcion = *descripcion
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update actualiza una especie.
func (r *EspecieRepo) Update(e *entity.Especie) error {
	query := `
		UPDATE especies
		SET nombre = $2, descripcion = $3, proporcion_conversion = $4, fecha_actualizacion = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		e.ID, e.Nombre, e.Descripcion, e.ProporcionConversion, e.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update especie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una especie. La FK de maxisacos y entregas es PROTECT:
// una violación 23503 se traduce a domain.ErrEnReferencia.
func (r *EspecieRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM especies WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrEnReferencia
		}
		return fmt.Errorf("delete especie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
