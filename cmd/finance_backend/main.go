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

	"github.com/SscSPs/empower_finance_app/internal/backend"
	"github.com/SscSPs/empower_finance_app/internal/core/ports"
	"github.com/SscSPs/empower_finance_app/internal/core/services"
	"github.com/SscSPs/empower_finance_app/internal/events"
	"github.com/SscSPs/empower_finance_app/internal/events/amqp"
	"github.com/SscSPs/empower_finance_app/internal/events/analytics"
	"github.com/SscSPs/empower_finance_app/internal/events/ws"
	"github.com/SscSPs/empower_finance_app/internal/handlers"
	"github.com/SscSPs/empower_finance_app/internal/middleware"
	"github.com/SscSPs/empower_finance_app/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:generate swag init -g main.go -d .,../../internal/handlers,../../internal/dto,../../internal/core/domain -o ../docs --parseDependency

const shutdownTimeout = 10 * time.Second

// @title Empower Finance API
// @version 1.0
// @description Personal finance ledger and savings goals.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open storage backend", slog.String("backend", cfg.StorageBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Cleanup()

	var sinks []ports.EventPublisher
	if cfg.AMQPURL != "" {
		publisher, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			// The broker is optional; the API keeps serving without it.
			logger.Warn("AMQP publisher unavailable, continuing without it", slog.String("error", err.Error()))
		} else {
			defer publisher.Close()
			sinks = append(sinks, publisher)
		}
	}
	if cfg.PosthogAPIKey != "" {
		tracker, err := analytics.NewPublisher(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
		if err != nil {
			logger.Warn("Posthog client unavailable, continuing without analytics", slog.String("error", err.Error()))
		} else if tracker != nil {
			defer tracker.Close()
			sinks = append(sinks, tracker)
		}
	}
	var hub *ws.Hub
	if cfg.WSEnabled {
		hub = ws.NewHub(logger)
		defer hub.Close()
		sinks = append(sinks, hub)
	}

	serviceContainer := services.NewServiceContainer(cfg, store.Repositories, events.Combine(sinks...))

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, hub); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("backend", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}
