package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutricoach/backend/internal/middleware"
	"github.com/nutricoach/backend/internal/service"
)

// VisionHandler handles image calorie estimation requests.
type VisionHandler struct {
	vision  *service.VisionService
	limiter *middleware.RateLimiter
}

// NewVisionHandler creates a new VisionHandler instance.
func NewVisionHandler(vision *service.VisionService, limiter *middleware.RateLimiter) *VisionHandler {
	return &VisionHandler{vision: vision, limiter: limiter}
}

// RegisterRoutes registers the vision routes.
func (h *VisionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/vision/estimate", h.limiter.RateLimitMiddleware(), h.Estimate)
}

// Estimate asks the vision model for a calorie estimate of the pictured
// food. Repeated requests for the same image are served from cache.
func (h *VisionHandler) Estimate(c *gin.Context) {
	var req struct {
		ImageURL string `json:"image_url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate, err := h.vision.EstimateCalories(c.Request.Context(), req.ImageURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"calories": estimate.Calories,
		"raw":      estimate.Raw,
	})
}
