package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/algasur/algas-api/internal/application/access"
	"github.com/algasur/algas-api/internal/application/auth"
	"github.com/algasur/algas-api/internal/application/dashboard"
	"github.com/algasur/algas-api/internal/application/proyecciones"
	"github.com/algasur/algas-api/internal/application/usecase"
	"github.com/algasur/algas-api/internal/domain/entity"
	"github.com/algasur/algas-api/internal/infrastructure/pdf"
	"github.com/algasur/algas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	EspecieUC      *usecase.EspecieUseCase
	StockUC        *usecase.StockUseCase
	ContratoUC     *usecase.ContratoUseCase
	InsumoUC       *usecase.InsumoUseCase
	UsuarioUC      *usecase.UsuarioUseCase
	AuditoriaUC    *usecase.AuditoriaUseCase
	DashboardUC    *dashboard.ResumenUseCase
	ProyeccionesUC *proyecciones.GenerarUseCase
	Evaluator      *access.Evaluator
	PDFGen         *pdf.MarotoReporteGenerator
	JWTSecret      string
	Log            *logger.Logger
}

// Router registra las rutas de la API.
//
// Esquema de protección: todo excepto /auth/login requiere Bearer Token.
// Los permisos nombrados se evalúan por grupo; las escrituras exitosas
// quedan en el registro de auditoría con el módulo correspondiente.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público). El login exitoso también queda auditado.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login",
		Auditar("login", "Usuarios", deps.AuditoriaUC, deps.Log, nil),
		authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Especies (protegido; escritura con permiso de stock)
	especies := protected.Group("/especies")
	especieHandler := NewEspecieHandler(deps.EspecieUC)
	especies.Get("/", especieHandler.List)
	especies.Get("/:id", especieHandler.GetByID)
	editaStock := RequierePermiso(entity.PermisoEditarStock, deps.Evaluator)
	especies.Post("/", editaStock,
		Auditar("crear", "Especie", deps.AuditoriaUC, deps.Log, nil),
		especieHandler.Create)
	especies.Put("/:id", editaStock,
		Auditar("editar", "Especie", deps.AuditoriaUC, deps.Log, detalleConID),
		especieHandler.Update)
	especies.Delete("/:id", editaStock,
		Auditar("eliminar", "Especie", deps.AuditoriaUC, deps.Log, detalleConID),
		especieHandler.Delete)

	// Stock (protegido, permiso de edición de stock para escrituras)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Post("/", editaStock,
		Auditar("crear", "Stock", deps.AuditoriaUC, deps.Log, nil),
		stockHandler.Create)
	stock.Put("/:id", editaStock,
		Auditar("editar", "Stock", deps.AuditoriaUC, deps.Log, detalleConID),
		stockHandler.Update)
	stock.Delete("/:id", editaStock,
		Auditar("eliminar", "Stock", deps.AuditoriaUC, deps.Log, detalleConID),
		stockHandler.Delete)

	// Contratos y entregas (protegido, permiso de contratos para escrituras)
	creaContratos := RequierePermiso(entity.PermisoCrearContratos, deps.Evaluator)
	contratos := protected.Group("/contratos")
	contratoHandler := NewContratoHandler(deps.ContratoUC)
	contratos.Get("/", contratoHandler.List)
	contratos.Get("/:id", contratoHandler.GetByID)
	contratos.Post("/", creaContratos,
		Auditar("crear", "Contrato", deps.AuditoriaUC, deps.Log, nil),
		contratoHandler.Create)
	contratos.Put("/:id", creaContratos,
		Auditar("editar", "Contrato", deps.AuditoriaUC, deps.Log, detalleConID),
		contratoHandler.Update)
	contratos.Delete("/:id", creaContratos,
		Auditar("eliminar", "Contrato", deps.AuditoriaUC, deps.Log, detalleConID),
		contratoHandler.Delete)
	contratos.Get("/:id/entregas", contratoHandler.ListEntregas)
	contratos.Post("/:id/entregas", creaContratos,
		Auditar("crear", "Contrato", deps.AuditoriaUC, deps.Log, detalleConID),
		contratoHandler.CreateEntrega)
	entregas := protected.Group("/entregas")
	entregas.Put("/:entregaId", creaContratos,
		Auditar("editar", "Contrato", deps.AuditoriaUC, deps.Log, detalleEntrega),
		contratoHandler.UpdateEntrega)
	entregas.Delete("/:entregaId", creaContratos,
		Auditar("eliminar", "Contrato", deps.AuditoriaUC, deps.Log, detalleEntrega),
		contratoHandler.DeleteEntrega)

	// Insumos (protegido, permiso de edición de stock para escrituras)
	insumos := protected.Group("/insumos")
	insumoHandler := NewInsumoHandler(deps.InsumoUC)
	insumos.Get("/", insumoHandler.List)
	insumos.Get("/:id", insumoHandler.GetByID)
	insumos.Post("/", editaStock,
		Auditar("crear", "Insumos", deps.AuditoriaUC, deps.Log, nil),
		insumoHandler.Create)
	insumos.Put("/:id", editaStock,
		Auditar("editar", "Insumos", deps.AuditoriaUC, deps.Log, detalleConID),
		insumoHandler.Update)
	insumos.Delete("/:id", editaStock,
		Auditar("eliminar", "Insumos", deps.AuditoriaUC, deps.Log, detalleConID),
		insumoHandler.Delete)

	// Usuarios y roles (protegido, solo gestión de usuarios)
	gestionaUsuarios := RequierePermiso(entity.PermisoGestionUsuarios, deps.Evaluator)
	usuarios := protected.Group("/usuarios", gestionaUsuarios)
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Post("/",
		Auditar("crear", "Usuarios", deps.AuditoriaUC, deps.Log, nil),
		usuarioHandler.Create)
	usuarios.Put("/:id",
		Auditar("editar", "Usuarios", deps.AuditoriaUC, deps.Log, detalleConID),
		usuarioHandler.Update)
	usuarios.Delete("/:id",
		Auditar("eliminar", "Usuarios", deps.AuditoriaUC, deps.Log, detalleConID),
		usuarioHandler.Delete)
	roles := protected.Group("/roles", gestionaUsuarios)
	roles.Get("/", usuarioHandler.ListRoles)
	roles.Post("/",
		Auditar("crear", "Usuarios", deps.AuditoriaUC, deps.Log, nil),
		usuarioHandler.CreateRol)

	// Dashboard ejecutivo (protegido, permiso de dashboard)
	veDashboard := RequierePermiso(entity.PermisoVerDashboard, deps.Evaluator)
	dashboardGroup := protected.Group("/dashboard", veDashboard)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.PDFGen)
	dashboardGroup.Get("/resumen", dashboardHandler.Resumen)
	dashboardGroup.Get("/reporte.pdf", dashboardHandler.ReportePDF)

	// Proyecciones (protegido, permiso de dashboard)
	proyGroup := protected.Group("/proyecciones", veDashboard)
	proyHandler := NewProyeccionesHandler(deps.ProyeccionesUC)
	proyGroup.Post("/generar",
		Auditar("generar", "Proyecciones", deps.AuditoriaUC, deps.Log, nil),
		proyHandler.Generar)

	// Auditoría (protegido, solo gestión de usuarios puede leer el registro)
	auditoria := protected.Group("/auditoria", gestionaUsuarios)
	auditoriaHandler := NewAuditoriaHandler(deps.AuditoriaUC)
	auditoria.Get("/", auditoriaHandler.List)
}

// detalleConID incluye el ID del recurso afectado en la entrada de auditoría.
func detalleConID(c *fiber.Ctx) string {
	return "id=" + c.Params("id")
}

func detalleEntrega(c *fiber.Ctx) string {
	return "entrega=" + c.Params("entregaId")
}
