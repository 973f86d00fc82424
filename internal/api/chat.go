package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutricoach/backend/internal/middleware"
	"github.com/nutricoach/backend/internal/models"
	"github.com/nutricoach/backend/internal/service"
)

// ChatHandler handles nutrition chat requests.
type ChatHandler struct {
	chat    *service.ChatService
	limiter *middleware.RateLimiter
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(chat *service.ChatService, limiter *middleware.RateLimiter) *ChatHandler {
	return &ChatHandler{chat: chat, limiter: limiter}
}

// RegisterRoutes registers the chat routes.
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat")
	{
		chat.POST("", h.limiter.RateLimitMiddleware(), h.Turn)
		chat.GET("/history", h.History)
	}
}

// Turn runs one chat exchange. The client sends the prior history so a
// conversation can continue across requests; the server keeps the
// persisted copy current either way.
func (h *ChatHandler) Turn(c *gin.Context) {
	var req struct {
		Message string                `json:"message" binding:"required"`
		History []models.ChatExchange `json:"history"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.chat.Turn(c.Request.Context(), middleware.UserEmail(c), req.Message, req.History)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// History returns the caller's persisted chat history.
func (h *ChatHandler) History(c *gin.Context) {
	history, err := h.chat.History(c.Request.Context(), middleware.UserEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}
