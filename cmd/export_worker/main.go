package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrain94/tenant-items-api/internal/config"
	"github.com/kingrain94/tenant-items-api/internal/repository/postgres"
	"github.com/kingrain94/tenant-items-api/internal/service/queue"
	"github.com/kingrain94/tenant-items-api/internal/worker"
	"github.com/kingrain94/tenant-items-api/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	dbConnections, err := config.NewDatabaseConnections(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", err)
	}
	defer dbConnections.Close()

	pgRepo := postgres.NewPostgresRepository(dbConnections)

	ctx := context.Background()
	sqsClient, err := cfg.SQS.GetClient(ctx)
	if err != nil {
		appLogger.Fatal("Failed to create SQS client", err)
	}
	sqsService := queue.NewSQSService(sqsClient, cfg.SQS.ExportQueueURL)

	s3Client, err := cfg.S3.GetClient(ctx)
	if err != nil {
		appLogger.Fatal("Failed to create S3 client", err)
	}

	exportWorker := worker.NewExportWorker(
		sqsService,
		sqsService.ExportQueueURL(),
		pgRepo,
		s3Client,
		cfg.S3.BucketName,
		appLogger,
		2,             // worker count
		5*time.Second, // poll interval
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	exportWorker.Start()

	<-sigChan
	appLogger.Info("Shutting down export worker...")

	exportWorker.Stop()
	appLogger.Info("Export worker stopped")
}
