package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutricoach/backend/internal/service"
	"github.com/nutricoach/backend/internal/store"
)

// respondServiceError maps a service or store error to a status code and a
// generic JSON body. Raw driver and upstream error text never reaches the
// caller; the full error is logged here instead.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProfileRequired):
		c.JSON(http.StatusNotFound, gin.H{"error": "user profile not found"})
	case errors.Is(err, service.ErrMealPlanRequired):
		c.JSON(http.StatusNotFound, gin.H{"error": "meal plan not found"})
	case errors.Is(err, service.ErrUpstreamModel):
		log.Printf("[API] upstream model failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "generation service unavailable"})
	case errors.Is(err, service.ErrRendererUnavailable):
		log.Printf("[API] pdf renderer failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "export service unavailable"})
	case errors.Is(err, store.ErrStorageUnavailable):
		log.Printf("[API] storage failure: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	default:
		log.Printf("[API] unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
