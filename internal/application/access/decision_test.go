package access_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algasur/algas-api/internal/application/access"
	"github.com/algasur/algas-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsuarios struct {
	porUsername map[string]*entity.Usuario
	err         error
}

func (f *fakeUsuarios) Create(*entity.Usuario) error            { return nil }
func (f *fakeUsuarios) GetByID(string) (*entity.Usuario, error) { return nil, nil }
func (f *fakeUsuarios) GetByUsername(username string) (*entity.Usuario, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.porUsername[username], nil
}
func (f *fakeUsuarios) List(int, int) ([]*entity.Usuario, error) { return nil, nil }
func (f *fakeUsuarios) Update(*entity.Usuario) error             { return nil }
func (f *fakeUsuarios) Delete(string) error                      { return nil }

type fakeRoles struct {
	porID map[string]*entity.Rol
}

func (f *fakeRoles) Create(*entity.Rol) error { return nil }
func (f *fakeRoles) GetByID(id string) (*entity.Rol, error) {
	return f.porID[id], nil
}
func (f *fakeRoles) GetByNombre(string) (*entity.Rol, error) { return nil, nil }
func (f *fakeRoles) List() ([]*entity.Rol, error)            { return nil, nil }
func (f *fakeRoles) Update(*entity.Rol) error                { return nil }

func evaluadorConRol(rolNombre string, permisos map[string]bool) *access.Evaluator {
	usuarios := &fakeUsuarios{porUsername: map[string]*entity.Usuario{
		"mrios": {ID: "u1", Username: "mrios", Activo: true, RolID: "r1"},
	}}
	roles := &fakeRoles{porID: map[string]*entity.Rol{
		"r1": {ID: "r1", Nombre: rolNombre, Permisos: permisos},
	}}
	return access.NewEvaluator(usuarios, roles)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_SinSesionRedirigeALogin(t *testing.T) {
	ev := access.NewEvaluator(&fakeUsuarios{}, &fakeRoles{})

	d, err := ev.Evaluate("", entity.PermisoVerDashboard)
	require.NoError(t, err)
	assert.False(t, d.Autorizado)
	assert.Equal(t, access.RedirectLogin, d.Redirect)
}

// Sesión cuyo usuario fue eliminado: comportamiento idéntico al caso sin
// sesión, sin revelar que la sesión alguna vez fue válida.
func TestEvaluate_UsuarioEliminadoEsComoSinSesion(t *testing.T) {
	ev := access.NewEvaluator(&fakeUsuarios{porUsername: map[string]*entity.Usuario{}}, &fakeRoles{})

	d, err := ev.Evaluate("fantasma", entity.PermisoVerDashboard)
	require.NoError(t, err)
	assert.False(t, d.Autorizado)
	assert.Equal(t, access.RedirectLogin, d.Redirect)
	assert.Nil(t, d.Usuario)
}

func TestEvaluate_UsuarioInactivoDenegado(t *testing.T) {
	usuarios := &fakeUsuarios{porUsername: map[string]*entity.Usuario{
		"mrios": {ID: "u1", Username: "mrios", Activo: false, RolID: "r1"},
	}}
	ev := access.NewEvaluator(usuarios, &fakeRoles{})

	d, err := ev.Evaluate("mrios", entity.PermisoVerDashboard)
	require.NoError(t, err)
	assert.False(t, d.Autorizado)
	assert.Equal(t, access.RedirectLogin, d.Redirect)
}

func TestEvaluate_PermisoTrueAutoriza(t *testing.T) {
	ev := evaluadorConRol(entity.RolGerente, map[string]bool{
		entity.PermisoVerDashboard: true,
	})

	d, err := ev.Evaluate("mrios", entity.PermisoVerDashboard)
	require.NoError(t, err)
	assert.True(t, d.Autorizado)
	require.NotNil(t, d.Usuario)
	assert.Equal(t, "mrios", d.Usuario.Username)
}

// Un permiso declarado explícitamente en false deniega igual que uno ausente.
func TestEvaluate_PermisoFalseDenegado(t *testing.T) {
	ev := evaluadorConRol(entity.RolGerente, map[string]bool{
		entity.PermisoVerDashboard: false,
	})

	d, err := ev.Evaluate("mrios", entity.PermisoVerDashboard)
	require.NoError(t, err)
	assert.False(t, d.Autorizado)
	assert.Equal(t, access.RedirectDashboard, d.Redirect)
}

// Un permiso que el rol nunca declaró evalúa a false, nunca a true.
func TestEvaluate_PermisoDesconocidoDenegado(t *testing.T) {
	ev := evaluadorConRol(entity.RolOperario, map[string]bool{
		entity.PermisoEditarStock: true,
	})

	d, err := ev.Evaluate("mrios", "PermisoInventado")
	require.NoError(t, err)
	assert.False(t, d.Autorizado)
}

// El destino tras una denegación depende del nivel del rol.
func TestEvaluate_RedirectPorNivelDeRol(t *testing.T) {
	casos := []struct {
		rol      string
		esperado string
	}{
		{entity.RolAdmin, access.RedirectDashboard},
		{entity.RolGerente, access.RedirectDashboard},
		{entity.RolEncargadoStock, access.RedirectStock},
		{entity.RolOperario, access.RedirectEspecies},
		{"RolDesconocido", access.RedirectLogin},
	}
	for _, c := range casos {
		ev := evaluadorConRol(c.rol, map[string]bool{})
		d, err := ev.Evaluate("mrios", entity.PermisoGestionUsuarios)
		require.NoError(t, err)
		assert.Equal(t, c.esperado, d.Redirect, "rol %s", c.rol)
	}
}

// Un fallo de infraestructura se propaga; jamás se convierte en autorización.
func TestEvaluate_ErrorDeInfraestructuraSePropaga(t *testing.T) {
	ev := access.NewEvaluator(&fakeUsuarios{err: errors.New("conexión rechazada")}, &fakeRoles{})

	d, err := ev.Evaluate("mrios", entity.PermisoVerDashboard)
	require.Error(t, err)
	assert.False(t, d.Autorizado)
}
