package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bataanroutes/route-backend-go/internal/config"
	"github.com/bataanroutes/route-backend-go/internal/handler"
	"github.com/bataanroutes/route-backend-go/internal/middleware"
	"github.com/bataanroutes/route-backend-go/internal/observability"
)

// SetupRouter wires the HTTP surface
func SetupRouter(cfg *config.Config, routes *handler.RouteHandler, zones *handler.FloodZoneHandler, metrics *observability.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS: the map frontend is served from a different origin
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "ok",
			"provider":        "openrouteservice",
			"ors_key_present": cfg.ORSAPIKey != "",
		})
	})

	r.GET("/flood-zones", zones.List)

	// Rate limited: each optimize call may spend ORS quota
	r.POST("/optimize-route", middleware.RateLimit(30, time.Minute), routes.OptimizeRoute)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}
