package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/affanabid/Hiro/internal/delivery/http/middleware"
	"github.com/affanabid/Hiro/internal/remote"
	"github.com/affanabid/Hiro/internal/view"
)

// NewRouter creates and configures the Gin router with all routes and middleware.
func NewRouter(
	vm *view.ViewModel,
	collection remote.Collection,
	logger *zap.Logger,
	rateLimitPerMin int,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(logger))

	// Metrics endpoint (no rate limiting)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		healthHandler := NewHealthHandler(vm, logger)
		v1.GET("/health", healthHandler.Health)

		jobsHandler := NewJobsHandler(vm, collection, logger)
		v1.GET("/jobs", jobsHandler.List)

		// Mutations (with rate limiting)
		limited := v1.Group("", middleware.RateLimiter(rateLimitPerMin))
		limited.POST("/jobs", jobsHandler.Create)
		limited.PUT("/jobs/:id", jobsHandler.Update)
		limited.PATCH("/jobs/:id", jobsHandler.Patch)
		limited.DELETE("/jobs/:id", jobsHandler.Delete)

		// WebSocket for snapshot push
		streamHandler := NewStreamHandler(vm, logger)
		v1.GET("/jobs/stream", streamHandler.Stream)
	}

	return router
}
