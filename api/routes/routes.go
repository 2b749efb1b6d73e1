package routes

import (
	"github.com/ArowuTest/point-balance-service/internal/config"
	"github.com/ArowuTest/point-balance-service/internal/handlers"
	"github.com/ArowuTest/point-balance-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerDependencies holds the handlers mounted by the router
type HandlerDependencies struct {
	PointHandler *handlers.PointHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))

	pointHandler := deps.PointHandler

	// Unversioned routes
	router.GET("/", pointHandler.Ok)
	router.GET("/save", pointHandler.SaveRandom)
	router.GET("/get", pointHandler.GetRandom)

	api := router.Group("/api/v1")
	{
		api.GET("/health", pointHandler.Health)

		points := api.Group("/points")
		{
			points.POST("", pointHandler.CreatePoint)
			points.GET("/:id", pointHandler.GetPoint)
			points.PUT("/:id/refresh", pointHandler.RefreshPoint)
			points.DELETE("/:id", pointHandler.DeletePoint)
		}
	}

	return router
}
