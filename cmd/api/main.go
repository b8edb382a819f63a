package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NoirPrimordial7/nearnest-sub000/docs"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/config"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/database"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/database/migration"
	handlers "github.com/NoirPrimordial7/nearnest-sub000/internal/http/handler"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/http/middleware"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/otel"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/repository/postgres"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/service"
	"github.com/NoirPrimordial7/nearnest-sub000/internal/storage"
)

// @title NearNest Store Verification API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Tracing first so the DB driver picks up the provider.
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// S3-compatible object storage for uploaded document files.
	blobs, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Repositories and services.
	storeRepo := postgres.NewStorePostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	auditRepo := postgres.NewAuditPostgres(db)
	productRepo := postgres.NewProductPostgres(db)

	storeSvc := service.NewStoreService(storeRepo)
	verifSvc := service.NewVerificationService(blobs, storeRepo, docRepo, auditRepo)
	productSvc := service.NewProductService(productRepo, storeRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Global middleware: request IDs, JSON request logs, traces, metrics.
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, storeSvc, verifSvc, productSvc)

	// Swagger UI with dynamic host and scheme.
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
