package entity

import "time"

// Nombres de roles conocidos. El conjunto de permisos de cada rol vive en la
// base de datos; estos nombres solo se usan para la redirección tras una
// denegación de permiso (cortesía de UX, no frontera de seguridad).
const (
	RolAdmin          = "RolAdmin"
	RolGerente        = "Gerente"
	RolEncargadoStock = "EncargadoStock"
	RolOperario       = "Operario"
)

// Permisos nombrados que consumen los middlewares. El conjunto es abierto:
// un rol puede declarar permisos adicionales y un permiso desconocido
// siempre evalúa a false.
const (
	PermisoVerDashboard    = "PermisoVerDashboard"
	PermisoEditarStock     = "PermisoEditarStock"
	PermisoCrearContratos  = "PermisoCrearContratos"
	PermisoGestionUsuarios = "PermisoGestionUsuarios"
)

// Rol agrupa permisos nombrados. Permisos es un mapa explícito
// permiso -> bool; la regla "permiso desconocido = false" es parte del
// contrato de TienePermiso, no un accidente de representación.
type Rol struct {
	ID          string
	Nombre      string
	Descripcion string
	Permisos    map[string]bool
}

// TienePermiso evalúa un permiso nombrado. Un permiso que el rol no declara
// se considera denegado.
func (r *Rol) TienePermiso(nombre string) bool {
	if r == nil || r.Permisos == nil {
		return false
	}
	return r.Permisos[nombre]
}

// Usuario representa un usuario del sistema.
type Usuario struct {
	ID            string
	Username      string // único
	PasswordHash  string // bcrypt, nunca plano en dominio después de persistir
	Email         string
	Nombre        string
	Apellido      string
	Rut           string
	Telefono      string
	Activo        bool
	RolID         string // vacío si no tiene rol asignado
	FechaCreacion time.Time
}
