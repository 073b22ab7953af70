package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/estatedesk-api/internal/application/analytics"
	"github.com/jhoicas/estatedesk-api/internal/application/auth"
	"github.com/jhoicas/estatedesk-api/internal/application/documents"
	"github.com/jhoicas/estatedesk-api/internal/application/lease"
	"github.com/jhoicas/estatedesk-api/internal/application/listing"
	"github.com/jhoicas/estatedesk-api/internal/application/portal"
	"github.com/jhoicas/estatedesk-api/internal/application/reports"
	"github.com/jhoicas/estatedesk-api/internal/application/usecase"
	"github.com/jhoicas/estatedesk-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/estatedesk-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estatedesk-api/internal/infrastructure/postgres"
	"github.com/jhoicas/estatedesk-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/estatedesk-api/internal/interfaces/http"
	"github.com/jhoicas/estatedesk-api/pkg/config"
	"github.com/jhoicas/estatedesk-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	files, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de documentos")
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	repos := postgres.NewRepos(pool)
	txRunner := postgres.NewTxRunner(pool)
	statsUC := analytics.NewStatsUseCase(postgres.NewStatsRepository(pool))

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	zoneUC := usecase.NewZoneUseCase(repos, txRunner, files, log)
	buildingUC := usecase.NewBuildingUseCase(repos, txRunner, files, log)
	unitUC := usecase.NewUnitUseCase(repos, txRunner, files, log)
	tenantUC := lease.NewTenantUseCase(repos, txRunner, m, log)
	portalUC := portal.NewUseCase(repos, txRunner, m, log)
	documentUC := documents.NewUseCase(repos, files, cfg.Upload.MaxBytes, m, log)
	listingUC := listing.NewUseCase(postgres.NewListingRepository(pool), statsUC, cfg.Listing.PageSize)
	statementUC := reports.NewStatementUseCase(repos, infrapdf.NewMarotoStatementGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		// Margen para los campos del formulario multipart; el límite real lo aplica el caso de uso.
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1024*1024,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	if m != nil {
		app.Use(httpRouter.Metrics(m))
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EstateDesk API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Archivos del driver local; con S3 las URLs son prefirmadas.
	if cfg.Storage.Driver == config.StorageLocal {
		app.Static("/storage", cfg.Storage.LocalRoot)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ZoneUC:      zoneUC,
		BuildingUC:  buildingUC,
		UnitUC:      unitUC,
		TenantUC:    tenantUC,
		PortalUC:    portalUC,
		DocumentUC:  documentUC,
		ListingUC:   listingUC,
		StatementUC: statementUC,
		Validator:   httpRouter.NewValidator(),
		JWTSecret:   cfg.JWT.Secret,
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
