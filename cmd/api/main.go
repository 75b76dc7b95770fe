package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"postapi/internal/auth"
	"postapi/internal/cache"
	"postapi/internal/config"
	"postapi/internal/database"
	"postapi/internal/database/migration"
	handlers "postapi/internal/http/handler"
	"postapi/internal/http/middleware"
	"postapi/internal/otel"
	"postapi/internal/repository"
	"postapi/internal/repository/pgxrepo"
	"postapi/internal/repository/postgres"
	"postapi/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	shutdownTracing, err := otel.Init(ctx, time.Local)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Schema management always goes through database/sql, even when the pgx
	// native pool serves traffic afterwards.
	migrateDB, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := migration.EnsureMigrated(ctx, migrateDB, time.Local, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var (
		uow    repository.UnitOfWork
		pinger handlers.Pinger
	)

	switch cfg.Database.Driver {
	case "pgx":
		migrateDB.Close()

		pool, err := database.NewPgxPool(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer pool.Close()

		uow = pgxrepo.NewUnitOfWork(pool)
		pinger = database.PoolPinger{Pool: pool}
	default:
		defer migrateDB.Close()

		uow = postgres.NewUnitOfWork(migrateDB)
		pinger = migrateDB
	}

	// Redis-backed list cache; degrade to a no-op cache when Redis is not
	// configured or unreachable at startup.
	var listCache cache.PostListCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Printf("redis unavailable, caching disabled: %v", err)
		} else {
			defer client.Close()
			listCache = cache.NewRedisPostCache(client, cfg.CacheTTL())
		}
	}

	tokens, err := auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL())
	if err != nil {
		log.Fatalf("failed to initialize auth: %v", err)
	}

	userSvc := service.NewUserService(uow, tokens)
	postSvc := service.NewPostService(uow, listCache)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, pinger, tokens, userSvc, postSvc)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
