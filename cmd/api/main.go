package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/inventario-movimientos/docs"
	"github.com/jhoicas/inventario-movimientos/internal/application/audit"
	"github.com/jhoicas/inventario-movimientos/internal/application/auth"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/export"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/idempotency"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventario-movimientos/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/inventario-movimientos/internal/interfaces/http"
	"github.com/jhoicas/inventario-movimientos/pkg/config"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

// @title                       Inventario Movimientos API
// @version                     1.0
// @description                 Libro de movimientos de stock, catálogo de productos y bitácora de acciones.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Bool("allow_negative_stock", cfg.Ledger.AllowNegativeStock).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.ApplySchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	m := metrics.New()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := audit.NewRecorder(auditRepo, m)
	ledgerUC := inventory.NewLedgerUseCase(txRunner, movementRepo, recorder, m, inventory.LedgerConfig{
		AllowNegativeStock: cfg.Ledger.AllowNegativeStock,
		PageSize:           cfg.Ledger.PageSize,
	})
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	uploader, err := storage.NewLocalUploader(cfg.Upload.Dir, cfg.Upload.MaxBytes())
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de imágenes")
	}

	deps := httpRouter.RouterDeps{
		AppName:  cfg.App.Name,
		LedgerUC: ledgerUC,
		Renderers: map[string]inventory.MovementRenderer{
			inventory.ExportFormatPDF: infrapdf.NewMovementsPDF(cfg.App.Name),
			inventory.ExportFormatCSV: export.NewMovementsCSV(),
		},
		ProductUC: usecase.NewProductUseCase(txRunner, productRepo, recorder),
		Category:  usecase.NewCategoryUseCase(postgres.NewCategoryRepository(pool)),
		Location:  usecase.NewLocationUseCase(postgres.NewLocationRepository(pool)),
		UserUC:    usecase.NewUserUseCase(userRepo),
		ReportUC:  usecase.NewReportUseCase(postgres.NewReportRepository(pool), productRepo),
		AuditUC:   audit.NewUseCase(auditRepo),
		AuthUC:    authUC,
		Uploader:  uploader,
		Metrics:   m.Handler(),
		JWTSecret: cfg.JWT.Secret,
	}

	// Redis es opcional: sin REDIS_URL el header Idempotency-Key se ignora.
	if cfg.Redis.URL != "" {
		client, err := idempotency.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, Idempotency-Key deshabilitado")
		} else {
			defer client.Close()
			deps.Idempotency = idempotency.NewStore(client, time.Duration(cfg.Redis.IdempotencyTTLHours)*time.Hour)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    int(cfg.Upload.MaxBytes()) + 1<<20,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderIdempotencyKey,
	}))
	app.Use(httpRouter.RequestLogger(m))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Movimientos API",
	}))

	app.Static(storage.PublicPrefix, uploader.Dir())

	httpRouter.Router(app, deps)

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
