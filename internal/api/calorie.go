package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutricoach/backend/internal/middleware"
	"github.com/nutricoach/backend/internal/store"
)

// CalorieHandler handles calorie logging and reporting requests.
type CalorieHandler struct {
	records *store.RecordStore
}

// NewCalorieHandler creates a new CalorieHandler instance.
func NewCalorieHandler(records *store.RecordStore) *CalorieHandler {
	return &CalorieHandler{records: records}
}

// RegisterRoutes registers the calorie routes.
func (h *CalorieHandler) RegisterRoutes(router *gin.RouterGroup) {
	calories := router.Group("/calories")
	{
		calories.POST("", h.Log)
		calories.GET("/total", h.Total)
		calories.GET("/date/:date", h.TotalByDate)
		calories.GET("/date/:date/entries", h.EntriesByDate)
		calories.GET("/weekly", h.Weekly)
	}
}

// Log records a calorie entry. The date defaults to today when omitted.
func (h *CalorieHandler) Log(c *gin.Context) {
	var req struct {
		Calorie  *int   `json:"calorie" binding:"required"`
		FoodItem string `json:"food_item" binding:"required"`
		Date     string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *req.Calorie < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "calorie must not be negative"})
		return
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format(store.DateLayout)
	} else if _, err := time.Parse(store.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	total, err := h.records.LogCalorie(c.Request.Context(), middleware.UserEmail(c), *req.Calorie, req.FoodItem, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "calorie entry logged",
		"total_calories": total,
	})
}

// Total returns the caller's all-time calorie total.
func (h *CalorieHandler) Total(c *gin.Context) {
	total, err := h.records.TotalCalories(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_calories": total})
}

// TotalByDate returns the calorie total for a single day.
func (h *CalorieHandler) TotalByDate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(store.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	total, err := h.records.TotalCaloriesByDate(c.Request.Context(), middleware.UserEmail(c), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "total_calories": total})
}

// EntriesByDate returns the individual entries logged on a single day.
func (h *CalorieHandler) EntriesByDate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(store.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	entries, err := h.records.CaloriesByDate(c.Request.Context(), middleware.UserEmail(c), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "entries": entries})
}

// Weekly returns per-day calorie totals for the last seven days. Days
// without entries are omitted.
func (h *CalorieHandler) Weekly(c *gin.Context) {
	totals, err := h.records.DailyTotals(c.Request.Context(), middleware.UserEmail(c), 7)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily_totals": totals})
}
