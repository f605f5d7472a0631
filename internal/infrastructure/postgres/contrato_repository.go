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

var _ repository.ContratoRepository = (*ContratoRepo)(nil)

// ContratoRepo implementación sobre PostgreSQL de contratos y entregas.
// La cascada de entregas al eliminar un contrato la resuelve la FK
// ON DELETE CASCADE de entregas_contrato.contrato_id.
type ContratoRepo struct {
	q Querier
}

func NewContratoRepository(q Querier) *ContratoRepo {
	return &ContratoRepo{q: q}
}

const contratoColumns = `id, cliente, tonelaje_total, fecha_inicio, fecha_fin, estado,
	creado_por, fecha_creacion, actualizado_por, fecha_actualizacion`

// Create persiste un contrato.
func (r *ContratoRepo) Create(c *entity.Contrato) error {
	query := `
		INSERT INTO contratos (` + contratoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Cliente, c.TonelajeTotal, c.FechaInicio, c.FechaFin, c.Estado,
		c.CreadoPor, c.FechaCreacion, nullIfEmpty(c.ActualizadoPor), c.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("create contrato: %w", err)
	}
	return nil
}

// GetByID obtiene un contrato por ID.
func (r *ContratoRepo) GetByID(id string) (*entity.Contrato, error) {
	query := `SELECT ` + contratoColumns + ` FROM contratos WHERE id = $1`
	c, err := scanContrato(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contrato: %w", err)
	}
	return c, nil
}

// List devuelve contratos paginados, más recientes primero.
func (r *ContratoRepo) List(limit, offset int) ([]*entity.Contrato, error) {
	query := `
		SELECT ` + contratoColumns + `
		FROM contratos
		ORDER BY fecha_creacion DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list contratos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Contrato
	for rows.Next() {
		c, err := scanContrato(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contrato: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un contrato.
func (r *ContratoRepo) Update(c *entity.Contrato) error {
	query := `
		UPDATE contratos
		SET cliente = $2, tonelaje_total = $3, fecha_inicio = $4, fecha_fin = $5,
		    estado = $6, actualizado_por = $7, fecha_actualizacion = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Cliente, c.TonelajeTotal, c.FechaInicio, c.FechaFin,
		c.Estado, nullIfEmpty(c.ActualizadoPor), c.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("update contrato: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un contrato y, por cascada en la FK, sus entregas.
func (r *ContratoRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM contratos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contrato: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const entregaColumns = `id, contrato_id, especie_id, mes, toneladas_requeridas,
	toneladas_cumplidas, comprometida_sin_stock, fecha_limite`

// CreateEntrega persiste una línea de compromiso mensual.
func (r *ContratoRepo) CreateEntrega(e *entity.EntregaContrato) error {
	query := `
		INSERT INTO entregas_contrato (` + entregaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ContratoID, e.EspecieID, e.Mes, e.ToneladasRequeridas,
		e.ToneladasCumplidas, e.ComprometidaSinStock, e.FechaLimite,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create entrega: %w", err)
	}
	return nil
}

// GetEntregaByID obtiene una entrega por ID.
func (r *ContratoRepo) GetEntregaByID(id string) (*entity.EntregaContrato, error) {
	query := `SELECT ` + entregaColumns + ` FROM entregas_contrato WHERE id = $1`
	var e entity.EntregaContrato
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.ContratoID, &e.EspecieID, &e.Mes, &e.ToneladasRequeridas,
		&e.ToneladasCumplidas, &e.ComprometidaSinStock, &e.FechaLimite,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entrega: %w", err)
	}
	return &e, nil
}

// ListEntregas devuelve las entregas de un contrato ordenadas por mes.
func (r *ContratoRepo) ListEntregas(contratoID string) ([]*entity.EntregaContrato, error) {
	query := `
		SELECT ` + entregaColumns + `
		FROM entregas_contrato
		WHERE contrato_id = $1
		ORDER BY mes`
	rows, err := r.q.Query(context.Background(), query, contratoID)
	if err != nil {
		return nil, fmt.Errorf("list entregas: %w", err)
	}
	defer rows.Close()
	var list []*entity.EntregaContrato
	for rows.Next() {
		var e entity.EntregaContrato
		if err := rows.Scan(
			&e.ID, &e.ContratoID, &e.EspecieID, &e.Mes, &e.ToneladasRequeridas,
			&e.ToneladasCumplidas, &e.ComprometidaSinStock, &e.FechaLimite,
		); err != nil {
			return nil, fmt.Errorf("scan entrega: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// UpdateEntrega actualiza una línea de compromiso.
func (r *ContratoRepo) UpdateEntrega(e *entity.EntregaContrato) error {
	query := `
		UPDATE entregas_contrato
		SET especie_id = $2, mes = $3, toneladas_requeridas = $4,
		    toneladas_cumplidas = $5, comprometida_sin_stock = $6, fecha_limite = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		e.ID, e.EspecieID, e.Mes, e.ToneladasRequeridas,
		e.ToneladasCumplidas, e.ComprometidaSinStock, e.FechaLimite,
	)
	if err != nil {
		return fmt.Errorf("update entrega: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteEntrega elimina una línea de compromiso.
func (r *ContratoRepo) DeleteEntrega(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM entregas_contrato WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entrega: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanContrato(row pgx.Row) (*entity.Contrato, error) {
	var c entity.Contrato
	var actualizadoPor *string
	err := row.Scan(
		&c.ID, &c.Cliente, &c.TonelajeTotal, &c.FechaInicio, &c.FechaFin, &c.Estado,
		&c.CreadoPor, &c.FechaCreacion, &actualizadoPor, &c.FechaActualizacion,
	)
	if err != nil {
		return nil, err
	}
	if actualizadoPor != nil {
		c.ActualizadoPor = *actualizadoPor
	}
	return &c, nil
}
