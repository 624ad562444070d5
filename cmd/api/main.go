package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"bffmvp/docs"
	"bffmvp/internal/client"
	"bffmvp/internal/config"
	"bffmvp/internal/database"
	handlers "bffmvp/internal/http/handler"
	"bffmvp/internal/http/middleware"
	"bffmvp/internal/logging"
	"bffmvp/internal/otel"
	"bffmvp/internal/repository"
	"bffmvp/internal/repository/memory"
	"bffmvp/internal/repository/postgres"
	"bffmvp/internal/routeview"
	"bffmvp/internal/service"
	"bffmvp/internal/storage"
)

// @title BFF MVP API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		logrus.WithError(err).Fatal("failed to configure logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	db, routeRepo, logRepo := openStore(ctx, cfg, log)
	if db != nil {
		defer db.Close()
	}

	// Object storage is optional; without it snapshot export answers 503.
	var objStore storage.Storage
	if cfg.MinIO.Enabled() {
		objStore, err = storage.NewMinIO(cfg.MinIO)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize object storage")
		}
	}

	routeSvc := service.NewRouteService(routeRepo)
	logSvc := service.NewRequestLogService(logRepo, cfg.RequestLogLimit)
	snapSvc := service.NewSnapshotService(objStore, routeRepo)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register http metrics")
	}
	viewMetrics, err := routeview.NewMetrics(reg)
	if err != nil {
		log.WithError(err).Fatal("failed to register view metrics")
	}

	routesClient := client.New(cfg.View.BackendURL, cfg.View.FetchTimeout)
	newView := func() *routeview.View {
		return routeview.New(routesClient,
			routeview.WithLogger(log),
			routeview.WithMetrics(viewMetrics),
			routeview.WithTimeout(cfg.View.FetchTimeout),
		)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	app.Use(cors.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	// Dynamic routes are matched last, so fixed routes must be registered first.
	handlers.RegisterRoutes(app, handlers.Deps{
		DB:         db,
		Routes:     routeSvc,
		Logs:       logSvc,
		Snapshots:  snapSvc,
		NewView:    newView,
		RenderWait: cfg.View.RenderWait,
		Log:        log,
	})

	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := ":" + cfg.Port
	log.WithFields(logrus.Fields{
		"event":        "server_started",
		"addr":         addr,
		"store_driver": cfg.StoreDriver,
		"backend_url":  cfg.View.BackendURL,
	}).Info("listening")

	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

// openStore returns the repositories selected by STORE_DRIVER. db is nil for the memory driver.
func openStore(ctx context.Context, cfg *config.AppConfig, log *logrus.Logger) (*sql.DB, repository.RouteRepository, repository.RequestLogRepository) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return nil, memory.NewRouteStore(), memory.NewRequestLogStore()
	case config.StorePostgres:
		// Initialize PostgreSQL connection (with pooling via database/sql) and migrate.
		db, err := database.Setup(ctx, cfg.Database, log)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to database")
		}
		return db, postgres.NewRoutePostgres(db), postgres.NewRequestLogPostgres(db)
	default:
		log.WithField("store_driver", cfg.StoreDriver).Fatal("unsupported store driver")
		return nil, nil, nil
	}
}
