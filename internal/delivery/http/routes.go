package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/closetcompare/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		sizes := v1.Group("/sizes")
		{
			sizes.GET("/charts", handler.ListCharts)
			sizes.GET("/charts/:gender/:class", handler.GetChart)
			sizes.POST("/convert", handler.ConvertSize)
			sizes.GET("/letter/:numeric", handler.LetterSize)
		}

		v1.POST("/recommendations/rank", handler.Rank)

		products := v1.Group("/products")
		{
			products.GET("/:id", handler.GetProduct)
			products.GET("/:id/recommendations", handler.Recommendations)
			products.GET("/:id/prices", handler.PriceHistory)
		}
	}

	return router
}
