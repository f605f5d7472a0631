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

var _ repository.InsumoRepository = (*InsumoRepo)(nil)

// InsumoRepo implementación sobre PostgreSQL de insumos consumibles.
type InsumoRepo struct {
	q Querier
}

func NewInsumoRepository(q Querier) *InsumoRepo {
	return &InsumoRepo{q: q}
}

const insumoColumns = `id, nombre, descripcion, cantidad, unidad, minimo_seguridad,
	creado_por, fecha_creacion, actualizado_por, fecha_actualizacion`

// Create persiste un insumo.
func (r *InsumoRepo) Create(i *entity.Insumo) error {
	query := `
		INSERT INTO insumos (` + insumoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		i.ID, i.Nombre, i.Descripcion, i.Cantidad, i.Unidad, i.MinimoSeguridad,
		i.CreadoPor, i.FechaCreacion, nullIfEmpty(i.ActualizadoPor), i.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create insumo: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *InsumoRepo) GetByID(id string) (*entity.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos WHERE id = $1`
	i, err := scanInsumo(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo: %w", err)
	}
	return i, nil
}

// List devuelve todos los insumos ordenados por nombre.
func (r *InsumoRepo) List() ([]*entity.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos ORDER BY nombre`
	return r.queryMany(query)
}

// ListBajoMinimo devuelve los insumos con cantidad bajo su mínimo de seguridad.
func (r *InsumoRepo) ListBajoMinimo() ([]*entity.Insumo, error) {
	query := `
		SELECT ` + insumoColumns + `
		FROM insumos
		WHERE cantidad < minimo_seguridad
		ORDER BY nombre`
	return r.queryMany(query)
}

func (r *InsumoRepo) queryMany(query string, args ...any) ([]*entity.Insumo, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list insumos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Insumo
	for rows.Next() {
		i, err := scanInsumo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Update actualiza un insumo.
func (r *InsumoRepo) Update(i *entity.Insumo) error {
	query := `
		UPDATE insumos
		SET nombre = $2, descripcion = $3, cantidad = $4, unidad = $5,
		    minimo_seguridad = $6, actualizado_por = $7, fecha_actualizacion = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		i.ID, i.Nombre, i.Descripcion, i.Cantidad, i.Unidad,
		i.MinimoSeguridad, nullIfEmpty(i.ActualizadoPor), i.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update insumo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un insumo.
func (r *InsumoRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM insumos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete insumo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanInsumo(row pgx.Row) (*entity.Insumo, error) {
	var i entity.Insumo
	var descripcion, actualizadoPor *string
	err := row.Scan(
		&i.ID, &i.Nombre, &descripcion, &i.Cantidad, &i.Unidad, &i.MinimoSeguridad,
		&i.CreadoPor, &i.FechaCreacion, &actualizadoPor, &i.FechaActualizacion,
	)
	if err != nil {
		return nil, err
	}
	if descripcion != nil {
		i.Descripcion = *descripcion
	}
	if actualizadoPor != nil {
		i.ActualizadoPor = *actualizadoPor
	}
	return &i, nil
}
