package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrUsernameAlreadyInUse = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrEnReferencia         = errors.New("el recurso está referenciado por otros registros")
	ErrStockInsuficiente    = errors.New("stock insuficiente para el compromiso")
	ErrServicioProyecciones = errors.New("servicio de proyecciones no disponible")
)
