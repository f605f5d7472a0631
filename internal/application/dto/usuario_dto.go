package dto

// LoginRequest credenciales de ingreso.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido más el usuario autenticado.
type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}

// CreateUsuarioRequest datos para crear un usuario (solo administración).
type CreateUsuarioRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"required,email"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Rut      string `json:"rut"`
	Telefono string `json:"telefono"`
	RolID    string `json:"rol_id"`
}

// UpdateUsuarioRequest datos editables de un usuario.
type UpdateUsuarioRequest struct {
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Telefono string `json:"telefono"`
	Activo   *bool  `json:"activo,omitempty"`
	RolID    string `json:"rol_id"`
}

// UsuarioResponse representación de un usuario en respuestas (sin password).
type UsuarioResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Nombre   string `json:"nombre,omitempty"`
	Apellido string `json:"apellido,omitempty"`
	Rut      string `json:"rut,omitempty"`
	Telefono string `json:"telefono,omitempty"`
	Activo   bool   `json:"activo"`
	RolID    string `json:"rol_id,omitempty"`
}

// UsuarioListResponse listado paginado de usuarios.
type UsuarioListResponse struct {
	Items []UsuarioResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateRolRequest datos para crear un rol con sus permisos.
type CreateRolRequest struct {
	Nombre      string          `json:"nombre" validate:"required"`
	Descripcion string          `json:"descripcion"`
	Permisos    map[string]bool `json:"permisos"`
}

// RolResponse representación de un rol en respuestas.
type RolResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion,omitempty"`
	Permisos    map[string]bool `json:"permisos"`
}

// RolListResponse listado de roles.
type RolListResponse struct {
	Items []RolResponse `json:"items"`
}
