package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pointbank/internal/server/http/handlers"
	"github.com/polkiloo/pointbank/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PointFacade, health handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	pointHandler := handlers.NewPointHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	engine.GET("/healthz", healthHandler.Check)

	api := engine.Group("/api")
	points := api.Group("/points")
	points.GET("/:userID", pointHandler.Balance)
	points.GET("/:userID/history", pointHandler.History)
	points.POST("/:userID/charge", pointHandler.Charge)
	points.POST("/:userID/use", pointHandler.Use)

	return engine
}
