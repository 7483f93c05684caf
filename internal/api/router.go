package api

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lbrouwer/surfcast/internal/api/middleware"
	"github.com/lbrouwer/surfcast/internal/config"
)

// NewRouter builds the gin engine with CORS, structured request logging,
// centralized error handling, and every route §6 specifies.
func NewRouter(h *Handler, corsCfg config.CORSConfig, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsCfg.AllowOrigins,
		AllowMethods:     corsCfg.AllowMethods,
		AllowHeaders:     corsCfg.AllowHeaders,
		ExposeHeaders:    corsCfg.ExposeHeaders,
		AllowCredentials: corsCfg.AllowCredentials,
		MaxAge:           corsCfg.MaxAge,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.HealthCheck)
		v1.GET("/spots", h.GetCatalog)
		v1.GET("/spots/:spot_id/forecast/daily", h.GetDailyForecast)
		v1.GET("/spots/:spot_id/forecast/detailed", h.GetDetailedForecast)
		v1.POST("/trip-analysis", h.PostTripAnalysis)
		v1.POST("/refresh", h.PostRefresh)
		v1.GET("/refresh/status/:run_id", h.GetRefreshStatus)
	}

	return router
}
