package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/empower_finance_app/cmd/docs"
	portssvc "github.com/SscSPs/empower_finance_app/internal/core/ports/services"
	"github.com/SscSPs/empower_finance_app/internal/events/ws"
	"github.com/SscSPs/empower_finance_app/internal/middleware"
	"github.com/SscSPs/empower_finance_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil hub leaves the websocket route out.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *ws.Hub,
) error {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	if err := setupAPIV1Routes(r, cfg, services, hub); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	hub *ws.Hub,
) error {
	// Auth runs first so the limiter can key on the user id.
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if cfg.RateLimit != "" {
		l, err := middleware.NewMemoryRateLimiter(cfg.RateLimit)
		if err != nil {
			return fmt.Errorf("failed to configure rate limiter: %w", err)
		}
		v1.Use(middleware.RateLimit(l))
	}

	// Delegate route registration to specific handlers, passing required services
	RegisterTransactionRoutes(v1, services.Transaction, services.Aggregation)
	RegisterGoalRoutes(v1, services.Goal, services.Aggregation)
	RegisterDashboardRoutes(v1, services.Aggregation)
	if hub != nil {
		RegisterWSRoutes(v1, hub)
	}
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
