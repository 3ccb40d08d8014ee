package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/notesapp/backend/config"
	"github.com/notesapp/backend/internal/app/controller"
	"github.com/notesapp/backend/internal/app/repository"
	"github.com/notesapp/backend/internal/app/service"
	"github.com/notesapp/backend/internal/db"
	"github.com/notesapp/backend/internal/middleware"
	"github.com/notesapp/backend/internal/router"
	"github.com/notesapp/backend/internal/scheduler"
	"github.com/notesapp/backend/pkg/logger"
	"github.com/notesapp/backend/pkg/mailer"
	"github.com/notesapp/backend/pkg/redis"
)

func main() {
	// Load configuration; refuses to start without a signing secret
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Notes API Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Optional redis-backed logout blacklist
	if cfg.Redis.Addr != "" {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to connect to redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close redis connection", err)
			}
		}()
	} else {
		logger.Info("Redis not configured, logout token blacklist disabled")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	noteRepo := repository.NewNoteRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.SessionExpiry,
	)
	passwordResetService := service.NewPasswordResetService(userRepo, mailer.New(&cfg.SMTP))
	noteService := service.NewNoteService(noteRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService, passwordResetService, cfg.JWT.Secret)
	noteController := controller.NewNoteController(noteService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		noteController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Hourly sweep of expired reset tokens
	resetTokenScheduler := scheduler.NewResetTokenScheduler(userRepo)
	if err := resetTokenScheduler.Start(); err != nil {
		logger.Fatal("Failed to start reset token scheduler", err)
	}
	defer resetTokenScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
