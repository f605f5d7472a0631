package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/domain"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

// UsuarioUseCase administración de usuarios y roles.
type UsuarioUseCase struct {
	usuarios repository.UsuarioRepository
	roles    repository.RolRepository
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(usuarios repository.UsuarioRepository, roles repository.RolRepository) *UsuarioUseCase {
	return &UsuarioUseCase{usuarios: usuarios, roles: roles}
}

// Create crea un usuario con password hasheado con bcrypt.
// Devuelve domain.ErrUsernameAlreadyInUse si el username ya existe.
func (uc *UsuarioUseCase) Create(in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	existing, _ := uc.usuarios.GetByUsername(in.Username)
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyInUse
	}
	if in.RolID != "" {
		rol, err := uc.roles.GetByID(in.RolID)
		if err != nil {
			return nil, err
		}
		if rol == nil {
			return nil, domain.ErrNotFound
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &entity.Usuario{
		ID:            uuid.New().String(),
		Username:      in.Username,
		PasswordHash:  string(hash),
		Email:         in.Email,
		Nombre:        in.Nombre,
		Apellido:      in.Apellido,
		Rut:           in.Rut,
		Telefono:      in.Telefono,
		Activo:        true,
		RolID:         in.RolID,
		FechaCreacion: time.Now(),
	}
	if err := uc.usuarios.Create(u); err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UsuarioUseCase) GetByID(id string) (*dto.UsuarioResponse, error) {
	u, err := uc.usuarios.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return toUsuarioResponse(u), nil
}

// List lista usuarios paginados.
func (uc *UsuarioUseCase) List(limit, offset int) (*dto.UsuarioListResponse, error) {
	list, err := uc.usuarios.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUsuarioResponse(u))
	}
	return &dto.UsuarioListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza datos de un usuario (no el password ni el username).
func (uc *UsuarioUseCase) Update(id string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	u, err := uc.usuarios.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Nombre != "" {
		u.Nombre = in.Nombre
	}
	if in.Apellido != "" {
		u.Apellido = in.Apellido
	}
	if in.Telefono != "" {
		u.Telefono = in.Telefono
	}
	if in.Activo != nil {
		u.Activo = *in.Activo
	}
	if in.RolID != "" {
		rol, err := uc.roles.GetByID(in.RolID)
		if err != nil {
			return nil, err
		}
		if rol == nil {
			return nil, domain.ErrNotFound
		}
		u.RolID = in.RolID
	}
	if err := uc.usuarios.Update(u); err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// Delete elimina un usuario. Las entradas de auditoría que lo referencian
// conservan la fila con usuario nulo.
func (uc *UsuarioUseCase) Delete(id string) error {
	u, err := uc.usuarios.GetByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	return uc.usuarios.Delete(id)
}

// CreateRol crea un rol con su mapa de permisos.
func (uc *UsuarioUseCase) CreateRol(in dto.CreateRolRequest) (*dto.RolResponse, error) {
	existing, _ := uc.roles.GetByNombre(in.Nombre)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	r := &entity.Rol{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Permisos:    in.Permisos,
	}
	if r.Permisos == nil {
		r.Permisos = map[string]bool{}
	}
	if err := uc.roles.Create(r); err != nil {
		return nil, err
	}
	return toRolResponse(r), nil
}

// ListRoles lista todos los roles.
func (uc *UsuarioUseCase) ListRoles() (*dto.RolListResponse, error) {
	list, err := uc.roles.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.RolResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRolResponse(r))
	}
	return &dto.RolListResponse{Items: items}, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Nombre:   u.Nombre,
		Apellido: u.Apellido,
		Rut:      u.Rut,
		Telefono: u.Telefono,
		Activo:   u.Activo,
		RolID:    u.RolID,
	}
}

func toRolResponse(r *entity.Rol) *dto.RolResponse {
	if r == nil {
		return nil
	}
	return &dto.RolResponse{
		ID:          r.ID,
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Permisos:    r.Permisos,
	}
}
