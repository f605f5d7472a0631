package entity

import "time"

// Auditoria es un registro inmutable de una acción de escritura exitosa.
// UsuarioID es nullable: la fila sobrevive a la eliminación del usuario.
// La aplicación nunca modifica ni elimina estas filas.
type Auditoria struct {
	ID        string
	UsuarioID *string
	Username  string // copia del username al momento de la acción, para display
	Accion    string // crear | editar | eliminar | login | ...
	Modulo    string // Stock, Contrato, Especie, Insumos, Usuarios...
	Detalle   string
	Fecha     time.Time
}
