package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutricoach/backend/internal/middleware"
	"github.com/nutricoach/backend/internal/service"
	"github.com/nutricoach/backend/internal/store"
)

// PlannerHandler handles meal plan, grocery list and recommendation
// requests.
type PlannerHandler struct {
	planner *service.PlannerService
	export  *service.ExportService
	records *store.RecordStore
	limiter *middleware.RateLimiter
}

// NewPlannerHandler creates a new PlannerHandler instance.
func NewPlannerHandler(planner *service.PlannerService, export *service.ExportService, records *store.RecordStore, limiter *middleware.RateLimiter) *PlannerHandler {
	return &PlannerHandler{
		planner: planner,
		export:  export,
		records: records,
		limiter: limiter,
	}
}

// RegisterRoutes registers the planner routes. Generation endpoints go
// through the per-user rate limiter; reads do not.
func (h *PlannerHandler) RegisterRoutes(router *gin.RouterGroup) {
	limited := h.limiter.RateLimitMiddleware()

	meal := router.Group("/meal-plan")
	{
		meal.POST("/generate", limited, h.GenerateMealPlan)
		meal.GET("", h.GetMealPlan)
	}

	grocery := router.Group("/grocery-list")
	{
		grocery.POST("/generate", limited, h.GenerateGroceryList)
		grocery.GET("", h.GetGroceryList)
		grocery.GET("/export", h.ExportGroceryList)
	}

	rec := router.Group("/recommendation")
	{
		rec.POST("/generate", limited, h.GenerateRecommendation)
		rec.GET("", h.GetRecommendation)
	}
}

// GenerateMealPlan builds and stores a weekly meal plan for the caller.
// The response carries the normalized model output, which is structured
// JSON when parsing succeeded and cleaned text otherwise.
func (h *PlannerHandler) GenerateMealPlan(c *gin.Context) {
	plan, err := h.planner.GenerateMealPlan(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": plan})
}

// GetMealPlan returns the caller's stored meal plan.
func (h *PlannerHandler) GetMealPlan(c *gin.Context) {
	plan, err := h.planner.LoadMealPlan(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if plan == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": plan})
}

// GenerateGroceryList builds and stores a grocery list from the caller's
// meal plan and profile.
func (h *PlannerHandler) GenerateGroceryList(c *gin.Context) {
	items, err := h.planner.GenerateGroceryList(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": items})
}

// GetGroceryList returns the caller's grocery list shaped for display.
func (h *PlannerHandler) GetGroceryList(c *gin.Context) {
	display, found, err := h.planner.ShowGroceryList(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "grocery list not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": display})
}

// ExportGroceryList renders the caller's grocery list as a PDF document.
func (h *PlannerHandler) ExportGroceryList(c *gin.Context) {
	email := middleware.UserEmail(c)

	display, found, err := h.planner.ShowGroceryList(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "grocery list not found"})
		return
	}

	pdf, err := h.export.GroceryListPDF(c.Request.Context(), email, display)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="grocery-list.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GenerateRecommendation produces and stores lifestyle advice for the
// caller.
func (h *PlannerHandler) GenerateRecommendation(c *gin.Context) {
	text, err := h.planner.GenerateRecommendation(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": text})
}

// GetRecommendation returns the caller's stored recommendation.
func (h *PlannerHandler) GetRecommendation(c *gin.Context) {
	text, err := h.records.LoadRecommendation(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if text == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": text})
}
