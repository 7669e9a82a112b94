package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsrin/en-app-analytics/internal/config"
	"github.com/vsrin/en-app-analytics/internal/domain"
	"github.com/vsrin/en-app-analytics/internal/handler"
	"github.com/vsrin/en-app-analytics/internal/logger"
	"github.com/vsrin/en-app-analytics/internal/middleware"
	"github.com/vsrin/en-app-analytics/internal/storage"
)

// RegisterRoutes wires all endpoints onto the router. The liveness probe sits
// outside the authenticated base path group.
func RegisterRoutes(router *gin.Engine, cfg *config.Config, store storage.Store, log logger.Logger) {
	analytics := handler.NewAnalyticsHandler(store, cfg, log)
	health := handler.NewHealthHandler(store)

	router.GET("/health", health.Liveness)

	base := router.Group(cfg.Service.BasePath)
	base.Use(middleware.Auth(cfg.Service.JWTSecret))
	{
		base.GET("/apps", analytics.Apps)
		base.GET("/apps/:appId/system-health", analytics.SystemHealth)
		base.GET("/apps/:appId/users", analytics.Users)
		base.GET("/apps/:appId/batches", analytics.Batches)
		base.GET("/apps/:appId/batches/:batchId", analytics.BatchDetail)
		base.GET("/apps/:appId/failures", analytics.Failures)
		base.GET("/apps/:appId/products", analytics.Products)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, domain.ErrorResponse{Error: "Endpoint not found"})
	})
}
