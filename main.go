package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"

	"teamboard/config"
	"teamboard/middleware"
	"teamboard/routes"
	"teamboard/storage"
	"teamboard/worker"
)

func main() {
	// Initialize logger
	logger := log.New(os.Stdout, "TEAMBOARD: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Error reporting is optional; without a DSN the sentry calls are no-ops.
	if config.AppConfig.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         config.AppConfig.SentryDSN,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Fatalf("Failed to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Blob store and download URL signer
	store, err := storage.NewDiskStore(config.AppConfig.UploadDir)
	if err != nil {
		logger.Fatalf("Failed to initialize blob store: %v", err)
	}
	signer := storage.NewSigner(
		config.AppConfig.EncryptionKey,
		time.Duration(config.AppConfig.SignedURLTTL)*time.Second,
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // document uploads
	})

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Start the orphan sweeper
	orphanWorker := worker.NewOrphanWorker(config.DB, store, log.New(os.Stdout, "ORPHAN: ", log.LstdFlags))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go orphanWorker.Start(ctx)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	// Setup routes
	routes.SetupRoutes(app, config.DB, store, signer)

	// Start server
	logger.Printf("Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
