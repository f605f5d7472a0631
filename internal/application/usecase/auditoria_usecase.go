package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

// AuditoriaUseCase registra y consulta el log de acciones. Las entradas son
// append-only: este caso de uso no expone edición ni borrado.
type AuditoriaUseCase struct {
	repo     repository.AuditoriaRepository
	usuarios repository.UsuarioRepository
}

// NewAuditoriaUseCase construye el caso de uso.
func NewAuditoriaUseCase(repo repository.AuditoriaRepository, usuarios repository.UsuarioRepository) *AuditoriaUseCase {
	return &AuditoriaUseCase{repo: repo, usuarios: usuarios}
}

// Registrar persiste una entrada de auditoría. El usuario se resuelve por
// username con el mismo contrato de sesión que la capa de permisos; si no
// existe, la entrada se guarda con referencia nula (el historial debe
// sobrevivir al ciclo de vida del usuario).
func (uc *AuditoriaUseCase) Registrar(username, accion, modulo, detalle string) error {
	var usuarioID *string
	if username != "" {
		u, err := uc.usuarios.GetByUsername(username)
		if err == nil && u != nil {
			usuarioID = &u.ID
		}
	}
	return uc.repo.Create(&entity.Auditoria{
		ID:        uuid.New().String(),
		UsuarioID: usuarioID,
		Username:  username,
		Accion:    accion,
		Modulo:    modulo,
		Detalle:   detalle,
		Fecha:     time.Now(),
	})
}

// List devuelve el registro paginado, más recientes primero.
func (uc *AuditoriaUseCase) List(limit, offset int) (*dto.AuditoriaListResponse, error) {
	entradas, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditoriaResponse, 0, len(entradas))
	for _, a := range entradas {
		items = append(items, dto.AuditoriaResponse{
			ID:      a.ID,
			Usuario: a.Username,
			Accion:  a.Accion,
			Modulo:  a.Modulo,
			Detalle: a.Detalle,
			Fecha:   a.Fecha,
		})
	}
	return &dto.AuditoriaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
