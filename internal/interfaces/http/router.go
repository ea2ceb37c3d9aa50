package http

import (
	"context"
	nethttp "net/http"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/pkg/logger"
)

// AppOptions configuración de la app Fiber.
type AppOptions struct {
	Name        string
	SwaggerFile string // vacío o inexistente = sin /docs
	Recorder    RequestRecorder
}

// NewApp crea la app Fiber con el ErrorHandler JSON, log de peticiones, recover, CORS abierto
// y Swagger UI en /docs.
func NewApp(log *logger.Logger, opts AppOptions) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(RequestLogger(log, opts.Recorder))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	if opts.SwaggerFile != "" {
		if _, err := os.Stat(opts.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: opts.SwaggerFile,
				Path:     "docs",
				Title:    "SafeAlert API",
			}))
		} else {
			log.Warn().Str("file", opts.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}
	return app
}

// RouterDeps dependencias para el router. Los servicios nil no registran sus rutas.
type RouterDeps struct {
	Alerts    AlertService
	Reports   ReportService
	Products  ProductService
	Movements MovementService
	Catalogs  CatalogService
	Dashboard DashboardService
	Recipes   RecipeService
	Auth      AuthService

	Log          *logger.Logger
	Dev          bool
	JWTSecret    string
	AuthRequired bool
	Module       string
	Port         int
	Metrics      nethttp.Handler
	Redis        Pinger // opcional, se reporta en /api/health
}

// Pinger dependencia externa que /api/health comprueba.
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthPingTimeout = 2 * time.Second

// healthHandler @Summary Estado del servicio
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /api/health [get]
func healthHandler(deps RouterDeps, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := dto.HealthResponse{Status: "ok", Module: deps.Module, Port: deps.Port}
		if deps.Redis != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
			defer cancel()
			if err := deps.Redis.Ping(ctx); err != nil {
				log.Warn().Err(err).Msg("health: redis no responde")
				resp.Status, resp.Redis = "degradado", "error"
			} else {
				resp.Redis = "ok"
			}
		}
		return c.JSON(resp)
	}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// health check usado por los orquestadores
	api.Get("/health", healthHandler(deps, log))

	// Alertas: sin autenticación
	if deps.Alerts != nil {
		h := NewAlertHandler(deps.Alerts, log.Component("alertas"), deps.Dev)
		alertas := api.Group("/alertas")
		alertas.Get("/", h.List)
		alertas.Patch("/", h.UpdateStatus)
		alertas.Post("/generar", h.Generate)
		alertas.Get("/:id", h.GetByID)
		alertas.Get("/:id/historial", h.History)
	}

	if deps.Auth != nil {
		h := NewAuthHandler(deps.Auth, log.Component("auth"), deps.Dev)
		authGroup := api.Group("/auth")
		authGroup.Post("/register", h.Register)
		authGroup.Post("/login", h.Login)
	}

	// Escrituras protegidas solo con AUTH_REQUIRED=true
	writeAuth := WritesOnly(OptionalAuth(deps.AuthRequired, deps.JWTSecret))
	adminOnly := func(c *fiber.Ctx) error { return c.Next() }
	if deps.AuthRequired {
		adminOnly = RequireRole(entity.RoleAdmin)
	}

	if deps.Reports != nil {
		h := NewReportHandler(deps.Reports, log.Component("reportes"), deps.Dev)
		reportes := api.Group("/reportes", writeAuth)
		reportes.Get("/", h.List)
		reportes.Post("/generar", h.Generate)
		reportes.Get("/pdf", h.PDF)
	}

	inventario := api.Group("/inventario", writeAuth)
	if deps.Products != nil && deps.Movements != nil {
		h := NewProductHandler(deps.Products, deps.Movements, log.Component("inventario"), deps.Dev)
		productos := inventario.Group("/productos")
		productos.Get("/", h.List)
		productos.Post("/", h.Create)
		productos.Get("/proximos-vencer", h.Expiring)
		productos.Post("/clasificar", h.Classify)
		productos.Get("/:id", h.GetByID)
		productos.Put("/:id", h.Update)
		productos.Delete("/:id", adminOnly, h.Delete)
		productos.Get("/:id/movimientos", h.Movements)
		inventario.Post("/movimientos", h.RegisterMovement)
	}

	if deps.Catalogs != nil {
		h := NewCatalogHandler(deps.Catalogs, log.Component("catalogos"), deps.Dev)

		categorias := inventario.Group("/categorias")
		categorias.Get("/", h.ListCategories)
		categorias.Post("/", h.CreateCategory)
		categorias.Get("/:id", h.GetCategory)
		categorias.Put("/:id", h.UpdateCategory)
		categorias.Delete("/:id", adminOnly, h.DeleteCategory)

		proveedores := inventario.Group("/proveedores")
		proveedores.Get("/", h.ListSuppliers)
		proveedores.Post("/", h.CreateSupplier)
		proveedores.Get("/:id", h.GetSupplier)
		proveedores.Put("/:id", h.UpdateSupplier)
		proveedores.Delete("/:id", adminOnly, h.DeleteSupplier)

		almacenamientos := inventario.Group("/almacenamientos")
		almacenamientos.Get("/", h.ListStorages)
		almacenamientos.Post("/", h.CreateStorage)
		almacenamientos.Get("/:id", h.GetStorage)
		almacenamientos.Put("/:id", h.UpdateStorage)
		almacenamientos.Delete("/:id", adminOnly, h.DeleteStorage)
	}

	if deps.Dashboard != nil {
		h := NewDashboardHandler(deps.Dashboard, log.Component("dashboard"), deps.Dev)
		api.Group("/dashboard", writeAuth).Get("/resumen", h.Summary)
	}

	if deps.Recipes != nil {
		h := NewRecipeHandler(deps.Recipes, log.Component("recetas"), deps.Dev)
		api.Group("/recetas", writeAuth).Post("/sugerir", h.Suggest)
	}
}
