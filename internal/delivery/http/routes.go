package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/safeeat/backend/config"
	"github.com/safeeat/backend/internal/infrastructure/metrics"
)

// SetupRouter creates and configures the Gin router.
// m may be nil, in which case /metrics is not served.
func SetupRouter(cfg *config.Config, handler *Handler, m *metrics.Metrics) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	if m != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))
	}

	limiter := NewIPRateLimiter(cfg.RateLimit.PerIP)
	var onLimited func()
	if m != nil {
		onLimited = m.IncrementRateLimited
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(limiter, onLimited))
	{
		prefs := v1.Group("/preferences")
		{
			prefs.GET("/ingredients", handler.ListIngredients)
			prefs.PUT("/ingredients", handler.ReplaceIngredients)
			prefs.POST("/ingredients", handler.AddIngredient)
			prefs.DELETE("/ingredients/:ingredient", handler.RemoveIngredient)
			prefs.GET("/suggestions", handler.SuggestIngredients)
		}

		v1.GET("/products/:barcode", handler.ScanBarcode)
		v1.POST("/scan/image", handler.ScanImage)
	}

	return router
}
