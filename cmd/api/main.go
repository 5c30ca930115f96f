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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/jhoicas/crm-api/docs"
	appanalytics "github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/application/sales"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/infrastructure/cache"
	"github.com/jhoicas/crm-api/internal/infrastructure/mq"
	infrapdf "github.com/jhoicas/crm-api/internal/infrastructure/pdf"
	"github.com/jhoicas/crm-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/crm-api/internal/interfaces/http"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/format"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// @title        CRM API
// @version      1.0
// @description  Clientes, productos, pedidos y pipeline de leads.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Redis (opcional): claves de idempotencia de POST /api/orders.
	var idem sales.IdempotencyStore
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, pedidos sin idempotencia")
		} else {
			defer rdb.Close()
			idem = cache.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		}
	}

	// RabbitMQ (opcional): eventos lead.status_changed.
	var events pipeline.EventPublisher
	if cfg.AMQP.Enabled() {
		pub, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq no disponible, eventos deshabilitados")
		} else {
			defer pub.Close()
			events = pub
		}
	}

	money := format.New(cfg.Locale.Currency, cfg.Locale.Language)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name, money)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	deps := httpRouter.RouterDeps{
		AuthUC:       authUC,
		CustomerUC:   usecase.NewCustomerUseCase(customerRepo),
		ProductUC:    usecase.NewProductUseCase(productRepo),
		LeadUC:       usecase.NewLeadUseCase(leadRepo),
		ActivityUC:   usecase.NewActivityUseCase(activityRepo, leadRepo),
		NoteUC:       usecase.NewNoteUseCase(noteRepo, leadRepo, userRepo),
		TaskUC:       usecase.NewTaskUseCase(taskRepo, leadRepo),
		StatusChange: pipeline.NewStatusChangeUseCase(leadRepo, txRunner, events, log.Named("pipeline")),
		CreateOrder:  sales.NewCreateOrderUseCase(customerRepo, txRunner, idem, log.Named("sales")),
		OrderUC:      sales.NewOrderUseCase(orderRepo, txRunner),
		OrderPDF:     sales.NewOrderPDFUseCase(orderRepo, customerRepo, pdfGenerator),
		DashboardUC:  appanalytics.NewDashboardUseCase(analyticsRepo, money),
		JWTSecret:    cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.NewErrorHandler(log),
	})
	// serverCtx se cancela al apagar: las consultas en curso se abortan.
	serverCtx, stopRequests := context.WithCancel(context.Background())
	defer stopRequests()

	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(httpRouter.RequestContext(serverCtx, cfg.HTTP.RequestTimeout))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

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

	stopRequests()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
