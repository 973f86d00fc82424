package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutricoach/backend/config"
	"github.com/nutricoach/backend/internal/api"
	"github.com/nutricoach/backend/internal/database"
	"github.com/nutricoach/backend/internal/middleware"
)

// Handlers bundles the API handlers the router wires up.
type Handlers struct {
	Profile *api.ProfileHandler
	Planner *api.PlannerHandler
	Chat    *api.ChatHandler
	Calorie *api.CalorieHandler
	Vision  *api.VisionHandler
	Media   *api.MediaHandler
}

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, handlers Handlers) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), cfg); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes; every route identifies the caller by email header.
	v1 := router.Group("/api/v1")
	v1.Use(middleware.Identity())
	{
		handlers.Profile.RegisterRoutes(v1)
		handlers.Planner.RegisterRoutes(v1)
		handlers.Chat.RegisterRoutes(v1)
		handlers.Calorie.RegisterRoutes(v1)
		handlers.Vision.RegisterRoutes(v1)
		if handlers.Media != nil {
			handlers.Media.RegisterRoutes(v1)
		}
	}

	return router
}
