package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/algasur/algas-api/internal/domain"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)
var _ repository.RolRepository = (*RolRepo)(nil)

// UsuarioRepo implementación sobre PostgreSQL de usuarios.
type UsuarioRepo struct {
	q Querier
}

func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioColumns = `id, username, password_hash, email, nombre, apellido,
	rut, telefono, activo, rol_id, fecha_creacion`

// Create persiste un usuario.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (` + usuarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Username, u.PasswordHash, u.Email, u.Nombre, u.Apellido,
		u.Rut, u.Telefono, u.Activo, nullIfEmpty(u.RolID), u.FechaCreacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameAlreadyInUse
		}
		return fmt.Errorf("create usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	return r.getBy("id", id)
}

// GetByUsername obtiene un usuario por username. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetByUsername(username string) (*entity.Usuario, error) {
	return r.getBy("username", username)
}

func (r *UsuarioRepo) getBy(column, value string) (*entity.Usuario, error) {
	query := fmt.Sprintf(`SELECT `+usuarioColumns+` FROM usuarios WHERE %s = $1`, column)
	u, err := scanUsuario(r.q.QueryRow(context.Background(), query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// List devuelve usuarios paginados ordenados por username.
func (r *UsuarioRepo) List(limit, offset int) ([]*entity.Usuario, error) {
	query := `
		SELECT ` + usuarioColumns + `
		FROM usuarios
		ORDER BY username
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza un usuario.
func (r *UsuarioRepo) Update(u *entity.Usuario) error {
	query := `
		UPDATE usuarios
		SET username = $2, password_hash = $3, email = $4, nombre = $5,
		    apellido = $6, rut = $7, telefono = $8, activo = $9, rol_id = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		u.ID, u.Username, u.PasswordHash, u.Email, u.Nombre,
		u.Apellido, u.Rut, u.Telefono, u.Activo, nullIfEmpty(u.RolID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameAlreadyInUse
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un usuario. Las filas de auditoría que lo referencian
// conservan el username copiado y su usuario_id pasa a NULL (ON DELETE SET NULL).
func (r *UsuarioRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	var rolID *string
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Nombre, &u.Apellido,
		&u.Rut, &u.Telefono, &u.Activo, &rolID, &u.FechaCreacion,
	)
	if err != nil {
		return nil, err
	}
	if rolID != nil {
		u.RolID = *rolID
	}
	return &u, nil
}

// RolRepo implementación sobre PostgreSQL de roles. Los permisos se
// almacenan como JSONB (mapa permiso -> bool).
type RolRepo struct {
	q Querier
}

func NewRolRepository(q Querier) *RolRepo {
	return &RolRepo{q: q}
}

// Create persiste un rol con sus permisos.
func (r *RolRepo) Create(rol *entity.Rol) error {
	permisos, err := json.Marshal(rol.Permisos)
	if err != nil {
		return fmt.Errorf("marshal permisos: %w", err)
	}
	query := `INSERT INTO roles (id, nombre, descripcion, permisos) VALUES ($1, $2, $3, $4)`
	_, err = r.q.Exec(context.Background(), query, rol.ID, rol.Nombre, rol.Descripcion, permisos)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create rol: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID.
func (r *RolRepo) GetByID(id string) (*entity.Rol, error) {
	return r.getBy("id", id)
}

// GetByNombre obtiene un rol por nombre.
func (r *RolRepo) GetByNombre(nombre string) (*entity.Rol, error) {
	return r.getBy("nombre", nombre)
}

func (r *RolRepo) getBy(column, value string) (*entity.Rol, error) {
	query := fmt.Sprintf(`SELECT id, nombre, descripcion, permisos FROM roles WHERE %s = $1`, column)
	rol, err := scanRol(r.q.QueryRow(context.Background(), query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol: %w", err)
	}
	return rol, nil
}

// List devuelve todos los roles ordenados por nombre.
func (r *RolRepo) List() ([]*entity.Rol, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, descripcion, permisos FROM roles ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Rol
	for rows.Next() {
		rol, err := scanRol(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		list = append(list, rol)
	}
	return list, rows.Err()
}

// Update actualiza un rol y reemplaza su mapa de permisos completo.
func (r *RolRepo) Update(rol *entity.Rol) error {
	permisos, err := json.Marshal(rol.Permisos)
	if err != nil {
		return fmt.Errorf("marshal permisos: %w", err)
	}
	query := `UPDATE roles SET nombre = $2, descripcion = $3, permisos = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, rol.ID, rol.Nombre, rol.Descripcion, permisos)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update rol: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanRol(row pgx.Row) (*entity.Rol, error) {
	var rol entity.Rol
	var descripcion *string
	var permisos []byte
	if err := row.Scan(&rol.ID, &rol.Nombre, &descripcion, &permisos); err != nil {
		return nil, err
	}
	if descripcion != nil {
		rol.Descripcion = *descripcion
	}
	if len(permisos) > 0 {
		if err := json.Unmarshal(permisos, &rol.Permisos); err != nil {
			return nil, fmt.Errorf("unmarshal permisos: %w", err)
		}
	}
	return &rol, nil
}
