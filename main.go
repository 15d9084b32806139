package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/student-admin-service/internal/auth"
	"github.com/SAP-F-2025/student-admin-service/internal/cache"
	"github.com/SAP-F-2025/student-admin-service/internal/config"
	"github.com/SAP-F-2025/student-admin-service/internal/events"
	"github.com/SAP-F-2025/student-admin-service/internal/handlers"
	"github.com/SAP-F-2025/student-admin-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/student-admin-service/internal/services"
	"github.com/SAP-F-2025/student-admin-service/internal/storage"
	"github.com/SAP-F-2025/student-admin-service/internal/utils"
	"github.com/SAP-F-2025/student-admin-service/internal/validator"
	"github.com/SAP-F-2025/student-admin-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg.DatabaseURL, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Initialize file storage
	fileStore, err := storage.NewLocalFileStore(cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Initialize event publisher (if configured)
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaEventPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, watermill.NewSlogLogger(slogLogger))
		if err != nil {
			log.Printf("Warning: Failed to initialize event publisher: %v", err)
			publisher = nil
		}
	}

	// Token issuers
	sessionIssuer := auth.NewSessionIssuer(cfg.SessionJWTSecret, 24*time.Hour)
	assignmentIssuer := auth.NewAssignmentIssuer(cfg.AssignmentJWTSecret, 7*24*time.Hour)

	// Initialize validator
	v := validator.New()

	// Initialize services
	serviceManager := services.NewDefaultServiceManager(services.Dependencies{
		Repo:             repoManager.GetRepository(),
		FileStore:        fileStore,
		CacheManager:     cache.NewCacheManager(redisClient),
		Publisher:        publisher,
		SessionIssuer:    sessionIssuer,
		AssignmentIssuer: assignmentIssuer,
		FrontendBaseURL:  cfg.FrontendBaseURL,
		Logger:           slogLogger,
		Validator:        v,
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, sessionIssuer, logger)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	handlers.SetupMiddleware(router, logger, cfg.CORSOrigins)

	// Setup routes
	handlerManager.SetupRoutes(router, fileStore.Root())

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Shutdown services (also closes repository and publisher)
	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	logger.Info("Server exited")
}
