package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contacts_api/internal/config"
	"contacts_api/internal/handler"
	"contacts_api/internal/middleware"
	"contacts_api/internal/repository"
	"contacts_api/internal/service"
	"contacts_api/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// --- Configuration ---
	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	level.Set(cfg.LogLevel)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(ctx, cfg.DB, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := config.Migrate(ctx, dbPool, logger); err != nil {
		logger.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// --- Wiring ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecret, cfg.AccessTTL)

	userRepo := repository.NewUserRepository(dbPool)

	authService := service.NewAuthService(userRepo, jwtUtil, logger)
	contactService := service.NewContactService(dbPool, logger)

	authHandler := handler.NewAuthHandler(authService, jwtUtil, logger)
	contactHandler := handler.NewContactHandler(contactService, logger)
	healthHandler := handler.NewHealthHandler(dbPool, logger)

	// --- Setup Gin Router ---
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS())

	authHandler.RegisterAuthRoutes(router)
	contactHandler.RegisterContactRoutes(router, middleware.JWTAuthMiddleware(jwtUtil))
	router.GET("/health", healthHandler.Health)

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	logger.Info("server exiting")
}
