// @title        SafeAlert API
// @version      1.0
// @description  Alertas de caducidad, reportes de desperdicio evitado e inventario de productos perecederos.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/safealert/safealert-api/docs"
	"github.com/safealert/safealert-api/internal/application/alertas"
	"github.com/safealert/safealert-api/internal/application/auth"
	"github.com/safealert/safealert-api/internal/application/dashboard"
	"github.com/safealert/safealert-api/internal/application/inventario"
	"github.com/safealert/safealert-api/internal/application/recetas"
	"github.com/safealert/safealert-api/internal/application/reportes"
	infraai "github.com/safealert/safealert-api/internal/infrastructure/ai"
	"github.com/safealert/safealert-api/internal/infrastructure/cache"
	"github.com/safealert/safealert-api/internal/infrastructure/events"
	"github.com/safealert/safealert-api/internal/infrastructure/metrics"
	infrapdf "github.com/safealert/safealert-api/internal/infrastructure/pdf"
	"github.com/safealert/safealert-api/internal/infrastructure/postgres"
	httpRouter "github.com/safealert/safealert-api/internal/interfaces/http"
	"github.com/safealert/safealert-api/pkg/config"
	"github.com/safealert/safealert-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
		Module:  cfg.App.Module,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.HTTP.Port).
		Bool("auth_required", cfg.Auth.Required).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	productRepo := postgres.NewProductRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	historyRepo := postgres.NewAlertHistoryRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	storageRepo := postgres.NewStorageRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	collector := metrics.NewCollector(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)

	alertDeps := alertas.Deps{
		Products: productRepo,
		Alerts:   alertRepo,
		History:  historyRepo,
		TxRunner: txRunner,
		Metrics:  collector,
		Logger:   log,
	}

	// Redis: caché de alertas activas + lock del generador
	var alertCache inventario.AlertCacheInvalidator
	var redisStore *cache.RedisStore
	if cfg.Redis.Enabled() {
		store, err := cache.NewRedisStore(cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se continúa sin caché")
		} else {
			defer store.Close()
			alertDeps.Cache = store
			alertDeps.Locker = store
			alertCache = store
			redisStore = store
			log.Info().Str("addr", cfg.Redis.Addr).Msg("redis conectado")
		}
	}

	// Kafka: evento por cada alerta creada
	if cfg.Kafka.Enabled() {
		publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.AlertsTopic)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error().Err(err).Msg("cerrar productor kafka")
			}
		}()
		alertDeps.Publisher = publisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.AlertsTopic).Msg("kafka habilitado")
	}

	alertUC := alertas.NewAlertUseCase(alertDeps)
	reportUC := reportes.NewReportUseCase(alertRepo, reportRepo, infrapdf.NewMarotoReportGenerator(), log)
	productUC := inventario.NewProductUseCase(productRepo).WithAlertCache(alertCache, log)
	movementUC := inventario.NewMovementUseCase(txRunner, movementRepo, productRepo).WithAlertCache(alertCache, log)
	catalogUC := inventario.NewCatalogUseCase(categoryRepo, supplierRepo, storageRepo)
	dashboardUC := dashboard.NewDashboardUseCase(productRepo, alertRepo, reportUC)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel, cfg.AI.RatePerMinute)
	if !anthropicSvc.Enabled() {
		log.Warn().Msg("ANTHROPIC_API_KEY vacío: /api/recetas/sugerir responderá 503")
	}
	recipeUC := recetas.NewRecipeUseCase(productRepo, anthropicSvc)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app := httpRouter.NewApp(log.Component("http"), httpRouter.AppOptions{
		Name:        cfg.App.Name,
		SwaggerFile: "./docs/swagger.json",
		Recorder:    collector,
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Alerts:       alertUC,
		Reports:      reportUC,
		Products:     productUC,
		Movements:    movementUC,
		Catalogs:     catalogUC,
		Dashboard:    dashboardUC,
		Recipes:      recipeUC,
		Auth:         authUC,
		Log:          log,
		Dev:          cfg.App.IsDevelopment(),
		JWTSecret:    cfg.JWT.Secret,
		AuthRequired: cfg.Auth.Required,
		Module:       cfg.App.Module,
		Port:         cfg.HTTP.Port,
		Metrics:      collector.Handler(),
		Redis:        redisPinger(redisStore),
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

// redisPinger evita pasar un *RedisStore nil dentro de la interfaz.
func redisPinger(s *cache.RedisStore) httpRouter.Pinger {
	if s == nil {
		return nil
	}
	return s
}
