package repository

import "github.com/algasur/algas-api/internal/domain/entity"

// UsuarioRepository puerto de persistencia para usuarios.
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	// GetByUsername devuelve (nil, nil) si el usuario no existe.
	GetByUsername(username string) (*entity.Usuario, error)
	List(limit, offset int) ([]*entity.Usuario, error)
	Update(u *entity.Usuario) error
	Delete(id string) error
}

// RolRepository puerto de persistencia para roles y sus permisos.
type RolRepository interface {
	Create(r *entity.Rol) error
	GetByID(id string) (*entity.Rol, error)
	GetByNombre(nombre string) (*entity.Rol, error)
	List() ([]*entity.Rol, error)
	Update(r *entity.Rol) error
}
