package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/otp-auth/internal/api"
	"github.com/hugh/otp-auth/internal/auth"
	"github.com/hugh/otp-auth/internal/mail"
	"github.com/hugh/otp-auth/internal/store"
	"github.com/hugh/otp-auth/internal/tasks"
	"github.com/hugh/otp-auth/pkg/config"
	"github.com/hugh/otp-auth/pkg/queue"
	"github.com/hugh/otp-auth/pkg/util"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting auth server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
		"driver", cfg.Database.Driver,
	)

	// Connect to the user store
	users, closeStore, err := store.Open(context.Background(), &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Redis is only needed for queued welcome mail
	var redisClient *redis.Client
	var asynqClient *asynq.Client
	if cfg.Mail.AsyncWelcome {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("failed to connect to Redis, welcome mail will be sent inline", "error", err)
			redisClient.Close()
			redisClient = nil
		} else {
			asynqClient = queue.NewClient(&cfg.Redis)
		}
	}

	// Initialize mail
	smtpDispatcher, err := mail.NewSMTPDispatcher(&cfg.Mail, logger)
	if err != nil {
		logger.Error("failed to configure mail", "error", err)
		os.Exit(1)
	}
	var dispatcher mail.Dispatcher = smtpDispatcher
	if asynqClient != nil {
		dispatcher = tasks.NewQueuedDispatcher(smtpDispatcher, asynqClient, logger)
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := auth.NewService(users, jwtService, dispatcher, logger)

	// Create router
	router := api.NewRouter(api.RouterConfig{
		Users:          users,
		Redis:          redisClient,
		Logger:         logger,
		JWTService:     jwtService,
		AuthService:    authService,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Production:     cfg.Server.IsProduction(),
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if asynqClient != nil {
		asynqClient.Close()
	}
	if redisClient != nil {
		redisClient.Close()
	}

	if err := closeStore(ctx); err != nil {
		logger.Error("closing database", "error", err)
	}

	logger.Info("server stopped")
}
