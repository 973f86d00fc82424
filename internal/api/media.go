package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutricoach/backend/internal/middleware"
	"github.com/nutricoach/backend/internal/service"
)

const maxUploadSize = 10 << 20 // 10MB

// MediaHandler handles user image upload and retrieval requests.
type MediaHandler struct {
	media *service.MediaService
}

// NewMediaHandler creates a new MediaHandler instance.
func NewMediaHandler(media *service.MediaService) *MediaHandler {
	return &MediaHandler{media: media}
}

// RegisterRoutes registers the media routes. Object keys contain slashes,
// so key-scoped operations take the key as a query parameter rather than
// a path segment.
func (h *MediaHandler) RegisterRoutes(router *gin.RouterGroup) {
	images := router.Group("/images")
	{
		images.POST("", h.Upload)
		images.GET("", h.List)
		images.GET("/url", h.PresignedURL)
		images.DELETE("", h.Delete)
	}
}

// Upload stores an image in the caller's folder and returns its key.
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 10MB limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		log.Printf("[API] Failed to open uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	key, err := h.media.Upload(c.Request.Context(), middleware.UserEmail(c), file.Filename, contentType, src)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key})
}

// List returns the objects in the caller's folder.
func (h *MediaHandler) List(c *gin.Context) {
	objects, err := h.media.List(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": objects})
}

// PresignedURL returns a time-limited download URL for one of the
// caller's objects.
func (h *MediaHandler) PresignedURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	url, err := h.media.PresignedURL(c.Request.Context(), middleware.UserEmail(c), key)
	if err != nil {
		if errors.Is(err, service.ErrForeignObject) {
			c.JSON(http.StatusForbidden, gin.H{"error": "object does not belong to the caller"})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Delete removes one of the caller's objects.
func (h *MediaHandler) Delete(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	if err := h.media.Delete(c.Request.Context(), middleware.UserEmail(c), key); err != nil {
		if errors.Is(err, service.ErrForeignObject) {
			c.JSON(http.StatusForbidden, gin.H{"error": "object does not belong to the caller"})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}
