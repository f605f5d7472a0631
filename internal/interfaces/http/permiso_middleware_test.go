package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algasur/algas-api/internal/application/access"
	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/domain/entity"
	apphttp "github.com/algasur/algas-api/internal/interfaces/http"
)

type usuariosEnMemoria struct {
	porUsername map[string]*entity.Usuario
}

func (f *usuariosEnMemoria) Create(*entity.Usuario) error            { return nil }
func (f *usuariosEnMemoria) GetByID(string) (*entity.Usuario, error) { return nil, nil }
func (f *usuariosEnMemoria) GetByUsername(username string) (*entity.Usuario, error) {
	return f.porUsername[username], nil
}
func (f *usuariosEnMemoria) List(int, int) ([]*entity.Usuario, error) { return nil, nil }
func (f *usuariosEnMemoria) Update(*entity.Usuario) error             { return nil }
func (f *usuariosEnMemoria) Delete(string) error                      { return nil }

type rolesEnMemoria struct {
	porID map[string]*entity.Rol
}

func (f *rolesEnMemoria) Create(*entity.Rol) error                { return nil }
func (f *rolesEnMemoria) GetByID(id string) (*entity.Rol, error)  { return f.porID[id], nil }
func (f *rolesEnMemoria) GetByNombre(string) (*entity.Rol, error) { return nil, nil }
func (f *rolesEnMemoria) List() ([]*entity.Rol, error)            { return nil, nil }
func (f *rolesEnMemoria) Update(*entity.Rol) error                { return nil }

// buildPermisoApp arma una ruta que exige PermisoVerDashboard evaluado
// contra el estado de usuarios/roles dado.
func buildPermisoApp(usuario *entity.Usuario, rol *entity.Rol) *fiber.App {
	usuarios := &usuariosEnMemoria{porUsername: map[string]*entity.Usuario{}}
	roles := &rolesEnMemoria{porID: map[string]*entity.Rol{}}
	if usuario != nil {
		usuarios.porUsername[usuario.Username] = usuario
	}
	if rol != nil {
		roles.porID[rol.ID] = rol
	}
	ev := access.NewEvaluator(usuarios, roles)

	app := fiber.New()
	app.Get("/dashboard/resumen",
		func(c *fiber.Ctx) error {
			if u := c.Get("X-Test-User"); u != "" {
				c.Locals(apphttp.LocalUsername, u)
			}
			return c.Next()
		},
		apphttp.RequierePermiso(entity.PermisoVerDashboard, ev),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func solicitarComo(t *testing.T, app *fiber.App, username string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/resumen", nil)
	if username != "" {
		req.Header.Set("X-Test-User", username)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequierePermiso_AutorizadoPasa(t *testing.T) {
	app := buildPermisoApp(
		&entity.Usuario{ID: "u1", Username: "mrios", Activo: true, RolID: "r1"},
		&entity.Rol{ID: "r1", Nombre: entity.RolGerente, Permisos: map[string]bool{entity.PermisoVerDashboard: true}},
	)
	resp := solicitarComo(t, app, "mrios")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// La denegación incluye en el cuerpo el redirect sugerido para el rol.
func TestRequierePermiso_DenegadoIncluyeRedirect(t *testing.T) {
	app := buildPermisoApp(
		&entity.Usuario{ID: "u1", Username: "jperez", Activo: true, RolID: "r1"},
		&entity.Rol{ID: "r1", Nombre: entity.RolOperario, Permisos: map[string]bool{}},
	)
	resp := solicitarComo(t, app, "jperez")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "FORBIDDEN", body.Code)
	assert.Equal(t, access.RedirectEspecies, body.Redirect)
}

// Usuario eliminado tras emitirse el token: denegado con redirect a login,
// indistinguible de una petición sin sesión.
func TestRequierePermiso_UsuarioEliminadoRedirigeALogin(t *testing.T) {
	app := buildPermisoApp(nil, nil)
	resp := solicitarComo(t, app, "fantasma")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, access.RedirectLogin, body.Redirect)
}
