package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutricoach/backend/internal/middleware"
	"github.com/nutricoach/backend/internal/models"
	"github.com/nutricoach/backend/internal/store"
)

// ProfileHandler handles user profile requests.
type ProfileHandler struct {
	records *store.RecordStore
}

// NewProfileHandler creates a new ProfileHandler instance.
func NewProfileHandler(records *store.RecordStore) *ProfileHandler {
	return &ProfileHandler{records: records}
}

// RegisterRoutes registers the profile routes.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.POST("", h.Upsert)
		profile.GET("", h.Get)
		profile.DELETE("", h.Delete)
	}
}

// profileRequest mirrors the profile fields the client submits. Every
// value outside dietary_restrictions and allergies is required; a write
// replaces the stored profile wholesale.
type profileRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Age                  int      `json:"age" binding:"required"`
	Gender               string   `json:"gender" binding:"required"`
	Height               float64  `json:"height" binding:"required"`
	Weight               float64  `json:"weight" binding:"required"`
	ActivityLevel        string   `json:"activity_level" binding:"required"`
	ExerciseHours        *int     `json:"exercise_hours" binding:"required"`
	JobType              string   `json:"job_type" binding:"required"`
	WorkType             string   `json:"work_type" binding:"required"`
	WorkHours            *int     `json:"work_hours" binding:"required"`
	CookingHours         *int     `json:"cooking_hours" binding:"required"`
	ProficiencyInCooking string   `json:"proficiency_in_cooking" binding:"required"`
	Goals                string   `json:"goals" binding:"required"`
	DietaryRestrictions  string   `json:"dietary_restrictions"`
	DietType             string   `json:"diet_type" binding:"required"`
	Allergies            string   `json:"allergies"`
	CuisinePreference    string   `json:"cuisine_preference" binding:"required"`
	Budget               *float64 `json:"budget" binding:"required"`
	GroceryFrequency     string   `json:"grocery_frequency" binding:"required"`
	CalorieGoal          *int     `json:"calorie_goal" binding:"required"`
}

// Upsert stores the caller's profile, replacing any existing one.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile data: " + err.Error()})
		return
	}

	profile := models.UserProfile{
		Email:                middleware.UserEmail(c),
		Name:                 req.Name,
		Age:                  req.Age,
		Gender:               req.Gender,
		Height:               req.Height,
		Weight:               req.Weight,
		ActivityLevel:        req.ActivityLevel,
		ExerciseHours:        *req.ExerciseHours,
		JobType:              req.JobType,
		WorkType:             req.WorkType,
		WorkHours:            *req.WorkHours,
		CookingHours:         *req.CookingHours,
		ProficiencyInCooking: req.ProficiencyInCooking,
		Goals:                req.Goals,
		DietaryRestrictions:  req.DietaryRestrictions,
		DietType:             req.DietType,
		Allergies:            req.Allergies,
		CuisinePreference:    req.CuisinePreference,
		Budget:               *req.Budget,
		GroceryFrequency:     req.GroceryFrequency,
		CalorieGoal:          *req.CalorieGoal,
	}

	if err := h.records.UpsertProfile(c.Request.Context(), &profile); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile saved"})
}

// Get returns the caller's stored profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.records.LoadProfile(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// Delete removes the caller's profile documents. Other per-user data
// (meal plan, grocery list, chat, recommendation, calorie entries) is kept;
// full erasure requires separate deletes per category.
func (h *ProfileHandler) Delete(c *gin.Context) {
	deleted, err := h.records.DeleteProfile(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}
