package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/inventario-movimientos/internal/application/audit"
	"github.com/jhoicas/inventario-movimientos/internal/application/auth"
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
	"github.com/jhoicas/inventario-movimientos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	LedgerUC  *inventory.LedgerUseCase
	Renderers map[string]inventory.MovementRenderer
	ProductUC *usecase.ProductUseCase
	Category  *usecase.CategoryUseCase
	Location  *usecase.LocationUseCase
	UserUC    *usecase.UserUseCase
	ReportUC  *usecase.ReportUseCase
	AuditUC   *audit.UseCase
	AuthUC    *auth.AuthUseCase
	Uploader  ImageUploader
	// Idempotency es opcional (nil sin Redis).
	Idempotency IdempotencyStore
	// Metrics expone /metrics si no es nil.
	Metrics nethttp.Handler
	// LoginRateLimit intentos de login por minuto e IP (0 = 20).
	LoginRateLimit int
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Auth (público, con límite por IP)
	loginLimit := deps.LoginRateLimit
	if loginLimit <= 0 {
		loginLimit = 20
	}
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	api.Post("/auth/login", limiter.New(limiter.Config{
		Max:        loginLimit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiados intentos, espere un minuto"})
		},
	}), authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	idem := Idempotency(deps.Idempotency)

	// Movimientos
	movements := protected.Group("/movements")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.Renderers)
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Get("/export", inventoryHandler.ExportMovements)
	movements.Post("/", idem, inventoryHandler.RecordMovement)
	movements.Get("/:id", inventoryHandler.GetMovement)
	movements.Delete("/:id", inventoryHandler.DeleteMovement)

	// Productos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", idem, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.Category, deps.Location)
	categories := protected.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Put("/:id", catalogHandler.UpdateCategory)
	categories.Delete("/:id", catalogHandler.DeleteCategory)
	locations := protected.Group("/locations")
	locations.Get("/", catalogHandler.ListLocations)
	locations.Post("/", catalogHandler.CreateLocation)
	locations.Put("/:id", catalogHandler.UpdateLocation)
	locations.Delete("/:id", catalogHandler.DeleteLocation)

	// Usuarios: gestión solo admin; el cambio de contraseña lo valida el caso de uso.
	users := protected.Group("/users")
	adminOnly := RequireRole(entity.RoleAdmin)
	users.Get("/", adminOnly, authHandler.ListUsers)
	users.Post("/", adminOnly, authHandler.CreateUser)
	users.Put("/:id/password", authHandler.ChangePassword)
	users.Delete("/:id", adminOnly, authHandler.DeleteUser)

	// Reportes, bitácora e imágenes
	reportHandler := NewReportHandler(deps.ReportUC, deps.AuditUC, deps.Uploader)
	protected.Get("/reports/summary", reportHandler.Summary)
	protected.Get("/reports/low-stock", reportHandler.LowStock)
	protected.Get("/audit", reportHandler.ListAudit)
	protected.Post("/upload", reportHandler.UploadImage)
}
