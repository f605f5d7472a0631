package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/algasur/algas-api/internal/application/access"
	"github.com/algasur/algas-api/internal/application/auth"
	"github.com/algasur/algas-api/internal/application/dashboard"
	"github.com/algasur/algas-api/internal/application/proyecciones"
	"github.com/algasur/algas-api/internal/application/usecase"
	"github.com/algasur/algas-api/internal/infrastructure/forecast"
	"github.com/algasur/algas-api/internal/infrastructure/mongodb"
	infrapdf "github.com/algasur/algas-api/internal/infrastructure/pdf"
	"github.com/algasur/algas-api/internal/infrastructure/postgres"
	httpRouter "github.com/algasur/algas-api/internal/interfaces/http"
	"github.com/algasur/algas-api/pkg/config"
	"github.com/algasur/algas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	proyStore, err := mongodb.NewProyeccionRepository(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := proyStore.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("cierre de MongoDB")
		}
	}()

	especieRepo := postgres.NewEspecieRepository(pool)
	maxisacoRepo := postgres.NewMaxisacoRepository(pool)
	contratoRepo := postgres.NewContratoRepository(pool)
	insumoRepo := postgres.NewInsumoRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	rolRepo := postgres.NewRolRepository(pool)
	auditoriaRepo := postgres.NewAuditoriaRepository(pool)
	reporteRepo := postgres.NewReporteRepository(pool)

	precioTon, err := decimal.NewFromString(cfg.Negocio.PrecioToneladaCLP)
	if err != nil {
		log.Fatal().Err(err).Str("valor", cfg.Negocio.PrecioToneladaCLP).
			Msg("PRECIO_TONELADA_CLP inválido")
	}

	especieUC := usecase.NewEspecieUseCase(especieRepo)
	stockUC := usecase.NewStockUseCase(maxisacoRepo, especieRepo)
	contratoUC := usecase.NewContratoUseCase(contratoRepo, especieRepo, reporteRepo)
	insumoUC := usecase.NewInsumoUseCase(insumoRepo)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo, rolRepo)
	auditoriaUC := usecase.NewAuditoriaUseCase(auditoriaRepo, usuarioRepo)
	dashboardUC := dashboard.NewResumenUseCase(reporteRepo, proyStore, insumoRepo, precioTon, log)

	forecastClient := forecast.NewClient(cfg.Proyecciones)
	proyeccionesUC := proyecciones.NewGenerarUseCase(
		especieRepo, reporteRepo, proyStore, forecastClient, cfg.Proyecciones.Horizonte, log,
	)

	evaluator := access.NewEvaluator(usuarioRepo, rolRepo)
	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Algasur API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		EspecieUC:      especieUC,
		StockUC:        stockUC,
		ContratoUC:     contratoUC,
		InsumoUC:       insumoUC,
		UsuarioUC:      usuarioUC,
		AuditoriaUC:    auditoriaUC,
		DashboardUC:    dashboardUC,
		ProyeccionesUC: proyeccionesUC,
		Evaluator:      evaluator,
		PDFGen:         infrapdf.NewMarotoReporteGenerator(),
		JWTSecret:      cfg.JWT.Secret,
		Log:            log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
