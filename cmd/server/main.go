package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-powered-ecommerce/backend/internal/models"
	"chat-powered-ecommerce/backend/pkg/config"
	"chat-powered-ecommerce/backend/pkg/di"
	"chat-powered-ecommerce/backend/pkg/logger"
	"chat-powered-ecommerce/backend/pkg/observability"
	"chat-powered-ecommerce/backend/pkg/router"
	"chat-powered-ecommerce/backend/pkg/secrets"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		stdlog.Println("No .env file found")
	}

	cfg := config.New()

	// Initialize structured logger
	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format != "text"

	log := logger.New(logConfig)
	logger.SetGlobal(log)

	log.Info("Starting application", "version", os.Getenv("APP_VERSION"), "env", cfg.Server.Env)

	// Initialize secrets management (Vault when configured, env otherwise)
	if err := secrets.Init(log); err != nil {
		log.LogError(err, "Failed to initialize secrets manager")
		os.Exit(1)
	}

	// Initialize tracing and metrics
	shutdownTracing := observability.SetupTracing("chat-ecommerce-backend")
	defer shutdownTracing()
	observability.SetupMetrics()

	// Initialize database
	db, err := config.NewDB()
	if err != nil {
		log.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.ChatMessage{},
		&models.Product{},
		&models.Color{},
		&models.ShippingInfo{},
		&models.Order{},
		&models.OrderDetail{},
	); err != nil {
		log.LogError(err, "Failed to migrate database")
		os.Exit(1)
	}

	// Create indexes for better query performance
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_user_open ON sessions(user_id) WHERE ended_at IS NULL").Error; err != nil {
		log.LogError(err, "Failed to create session index", "index", "idx_sessions_user_open")
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_chat_messages_user_ts ON chat_messages(user_id, timestamp)").Error; err != nil {
		log.LogError(err, "Failed to create message index", "index", "idx_chat_messages_user_ts")
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages(session_id)").Error; err != nil {
		log.LogError(err, "Failed to create message session index", "index", "idx_chat_messages_session")
	}

	// Initialize dependency injection container
	container, err := di.NewContainer(cfg, log, db)
	if err != nil {
		log.LogError(err, "Failed to initialize dependency container")
		os.Exit(1)
	}

	// Initialize and setup router
	r := router.New(container)
	r.SetupRoutes()

	// Add OpenAPI validation if schema file is available
	if err := r.AddOpenAPIValidation(); err != nil {
		log.LogError(err, "Failed to enable OpenAPI validation")
		os.Exit(1)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r.Engine,
	}

	// Start the server in a goroutine
	go func() {
		log.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.LogError(err, "Server failed to start")
			os.Exit(1)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal
	<-quit
	log.Info("Shutting down server...")

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the server
	if err := srv.Shutdown(ctx); err != nil {
		log.LogError(err, "Server forced to shutdown")
	}

	log.Info("Server exited gracefully")
}
