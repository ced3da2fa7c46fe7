// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"rxconsole/internal/domain/console"
	"rxconsole/internal/infrastructure/http/v1/handlers"
	"rxconsole/internal/infrastructure/http/v1/middleware"
	"rxconsole/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Console is the assembled operator session
	Console *console.Console

	// Upstream health probe
	Upstream handlers.Pinger
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	healthHandler := handlers.NewHealthHandler(cfg.Upstream)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	pharmacyHandler := handlers.NewPharmacyHandler(base, cfg.Console.Directory)
	filtersHandler := handlers.NewFiltersHandler(base, cfg.Console)
	reportsHandler := handlers.NewReportsHandler(base, cfg.Console)
	gapsHandler := handlers.NewGapsHandler(base, cfg.Console)

	api := router.Group("/api/v1")
	api.Use(middleware.Operator())
	{
		api.GET("/pharmacies", pharmacyHandler.List)
		api.POST("/pharmacies/refresh", pharmacyHandler.Refresh)

		api.GET("/filters", filtersHandler.Get)
		api.PATCH("/filters", filtersHandler.Stage)
		api.POST("/filters/apply", filtersHandler.Apply)
		api.POST("/filters/clear", filtersHandler.Clear)

		api.GET("/reports", reportsHandler.Overview)
		api.GET("/reports/:kind", reportsHandler.Get)
		api.PUT("/reports/:kind/page", reportsHandler.SetPage)

		api.GET("/gaps", gapsHandler.List)
		api.GET("/gaps/statistics", gapsHandler.Statistics)
		api.GET("/gaps/:id", gapsHandler.Details)
		api.POST("/gaps/:id/resolve", gapsHandler.Resolve)
	}

	return router
}
