// Package access implementa la evaluación de permisos por rol.
//
// Es una función de decisión pura sobre el estado de usuarios/roles:
//
//	(identidad de sesión, permiso requerido) -> Autorizado | Denegado(redirect)
//
// No tiene efectos secundarios más allá de leer usuario y rol. La
// denegación en sí es la frontera de seguridad; el destino de redirección
// es solo una cortesía de UX según el rol.
package access

import (
	"fmt"

	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/domain/repository"
)

// Destinos de redirección tras una denegación.
const (
	RedirectLogin     = "/login"
	RedirectDashboard = "/dashboard"
	RedirectStock     = "/stock"
	RedirectEspecies  = "/especies"
)

// Decision resultado de la evaluación de un permiso.
type Decision struct {
	Autorizado bool
	Redirect   string          // destino sugerido cuando Autorizado es false
	Usuario    *entity.Usuario // resuelto cuando la identidad existe y está activa
}

// Evaluator evalúa permisos contra el estado actual de usuarios y roles.
type Evaluator struct {
	usuarios repository.UsuarioRepository
	roles    repository.RolRepository
}

// NewEvaluator construye el evaluador.
func NewEvaluator(usuarios repository.UsuarioRepository, roles repository.RolRepository) *Evaluator {
	return &Evaluator{usuarios: usuarios, roles: roles}
}

// Evaluate aplica la secuencia de chequeos:
//
//  1. Sin identidad de sesión → Denegado, redirect a login.
//  2. Identidad sin usuario activo correspondiente → Denegado, redirect a
//     login (idéntico al caso sin sesión: no filtrar si la sesión era válida).
//  3. Usuario sin rol asignado → Denegado, redirect a login.
//  4. Rol sin el permiso (un permiso desconocido evalúa a false, nunca a
//     true) → Denegado con redirect según el nivel del rol.
//  5. Todo válido → Autorizado.
//
// Un error de infraestructura al leer usuario o rol se devuelve al caller;
// no se traduce en una autorización.
func (e *Evaluator) Evaluate(username, permiso string) (Decision, error) {
	if username == "" {
		return Decision{Redirect: RedirectLogin}, nil
	}

	usuario, err := e.usuarios.GetByUsername(username)
	if err != nil {
		return Decision{}, fmt.Errorf("access: buscar usuario: %w", err)
	}
	if usuario == nil || !usuario.Activo {
		// Sesión obsoleta: tratar exactamente igual que sin sesión.
		return Decision{Redirect: RedirectLogin}, nil
	}

	if usuario.RolID == "" {
		return Decision{Redirect: RedirectLogin, Usuario: usuario}, nil
	}
	rol, err := e.roles.GetByID(usuario.RolID)
	if err != nil {
		return Decision{}, fmt.Errorf("access: buscar rol: %w", err)
	}
	if rol == nil {
		return Decision{Redirect: RedirectLogin, Usuario: usuario}, nil
	}

	if !rol.TienePermiso(permiso) {
		return Decision{Redirect: redirectPorRol(rol.Nombre), Usuario: usuario}, nil
	}

	return Decision{Autorizado: true, Usuario: usuario}, nil
}

// redirectPorRol devuelve el área propia de cada nivel de rol.
func redirectPorRol(nombre string) string {
	switch nombre {
	case entity.RolAdmin, entity.RolGerente:
		return RedirectDashboard
	case entity.RolEncargadoStock:
		return RedirectStock
	case entity.RolOperario:
		return RedirectEspecies
	default:
		return RedirectLogin
	}
}
