// Package v1 provides the HTTP API.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"prodcat/internal/domain/auth"
	"prodcat/internal/domain/product"
	"prodcat/internal/domain/reconcile"
	"prodcat/internal/domain/reports"
	"prodcat/internal/infrastructure/http/v1/handlers"
	"prodcat/internal/infrastructure/http/v1/middleware"
	"prodcat/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Pool for readiness checks (may be nil in tests)
	Pool *pgxpool.Pool

	// JWTValidator for token validation on protected routes
	JWTValidator middleware.JWTValidator

	AuthService    *auth.Service
	ProductService *product.Service
	SyncService    *reconcile.Service
	ReportsService *reports.Service
}

// NewRouter creates and configures the Gin router.
// Route shapes follow the external API contract: /auth/jwt, /contentful,
// /product, /reports/*.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	baseHandler := handlers.NewBaseHandler()

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	// Public token issuance
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)
	router.GET("/auth/jwt", authHandler.Token)

	// Public product listing
	productHandler := handlers.NewProductHandler(baseHandler, cfg.ProductService)
	router.GET("/product", productHandler.Get)

	// Protected endpoints
	protected := router.Group("")
	protected.Use(middleware.Auth(cfg.JWTValidator))
	{
		protected.DELETE("/product/:sku", productHandler.Delete)

		syncHandler := handlers.NewSyncHandler(baseHandler, cfg.SyncService)
		protected.GET("/contentful", syncHandler.Sync)

		reportsHandler := handlers.NewReportsHandler(baseHandler, cfg.ReportsService)
		reportsGroup := protected.Group("/reports")
		{
			reportsGroup.GET("/deleted-percentage", reportsHandler.DeletedPercentage)
			reportsGroup.GET("/non-deleted-percentage", reportsHandler.NonDeletedPercentage)
			reportsGroup.GET("/models", reportsHandler.ModelsByBrand)
		}
	}

	return router
}
