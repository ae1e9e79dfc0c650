package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/tenant-items-api/docs"
	"github.com/kingrain94/tenant-items-api/internal/api"
	"github.com/kingrain94/tenant-items-api/internal/auth"
	"github.com/kingrain94/tenant-items-api/internal/config"
	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/metrics"
	"github.com/kingrain94/tenant-items-api/internal/middleware"
	"github.com/kingrain94/tenant-items-api/internal/repository"
	"github.com/kingrain94/tenant-items-api/internal/repository/memory"
	"github.com/kingrain94/tenant-items-api/internal/repository/postgres"
	"github.com/kingrain94/tenant-items-api/internal/service"
	"github.com/kingrain94/tenant-items-api/internal/service/pubsub"
	"github.com/kingrain94/tenant-items-api/internal/service/queue"
	"github.com/kingrain94/tenant-items-api/pkg/logger"
)

// @title           Tenant Items API
// @version         1.0
// @description     Schema-per-tenant item and authentication API.

// @host      localhost:10000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	hasher := auth.NewHasher(0)
	appMetrics := metrics.New()

	var repo repository.Repository
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		store := memory.NewStore(cfg.MemoryTenants...)
		if cfg.MemoryAdminPass != "" {
			seedAdmin(store, cfg.MemoryTenants, cfg.MemoryAdminPass, hasher, appLogger)
		}
		repo = memory.NewRepository(store)
		appLogger.Info("Using in-memory storage")
	default:
		dbConnections, err := config.NewDatabaseConnections(&cfg.Database)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", err)
		}
		defer dbConnections.Close()

		appLogger.Info("Database connections established - writer and reader connected")
		repo = postgres.NewPostgresRepository(dbConnections)
	}
	repo = appMetrics.InstrumentRepository(repo)

	// Redis backs the item stream and rate limiting. The memory driver runs without it.
	var (
		redisPubSub *pubsub.RedisPubSub
		rateLimit   *middleware.RateLimitMiddleware
		redisClient *redis.Client
	)
	redisClient, err = cfg.Redis.GetClient()
	switch {
	case err == nil:
		defer redisClient.Close()
		redisPubSub = pubsub.NewRedisPubSub(redisClient, appLogger)
		defer redisPubSub.Close()
		rateLimit = middleware.NewRateLimitMiddleware(redisClient, appLogger)
	case cfg.StorageDriver == config.StorageDriverMemory:
		appLogger.Warnf("Redis unavailable, item stream and rate limiting disabled: %v", err)
	default:
		appLogger.Fatal("Failed to connect to Redis", err)
	}

	sqsClient, err := cfg.SQS.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to create SQS client", err)
	}
	sqsService := queue.NewSQSService(sqsClient, cfg.SQS.ExportQueueURL)

	tokens := auth.NewTokenService(cfg.JWT)

	var publisher service.EventPublisher
	var subscriber api.EventSubscriber
	if redisPubSub != nil {
		publisher = redisPubSub
		subscriber = redisPubSub
	}

	itemService := service.NewItemService(repo, publisher, appLogger)
	authService := service.NewAuthService(repo, tokens, hasher, appLogger)
	exportService := service.NewExportService(sqsService)

	server := api.NewServer(
		itemService,
		authService,
		exportService,
		subscriber,
		middleware.NewAuthMiddleware(tokens),
		rateLimit,
		middleware.NewValidationMiddleware(appLogger),
		appMetrics,
		appLogger,
		api.Limits{
			MaxRequestSize:  cfg.MaxRequestSize,
			GlobalRateLimit: cfg.GlobalRateLimit,
			TenantRateLimit: cfg.DefaultRateLimit,
		},
	)

	docs.SwaggerInfo.Title = "Tenant Items API"
	docs.SwaggerInfo.Description = "Schema-per-tenant item and authentication API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.ServerPort)
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           server.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
	_ = appLogger.Sync()
}

func seedAdmin(store *memory.Store, schemas []string, password string, hasher *auth.Hasher, appLogger *logger.Logger) {
	hash, err := hasher.Hash(password)
	if err != nil {
		appLogger.Fatal("Failed to hash admin password", err)
	}

	for _, schema := range schemas {
		if _, err := store.SeedUser(schema, domain.User{Username: "admin", Password: hash, IsActive: true}); err != nil {
			appLogger.Fatal("Failed to seed admin user", err)
		}
	}
}
