package api

import (
	"errors"
	"net/http"
	"strings"

	"chat-powered-ecommerce/backend/internal/models"
	"chat-powered-ecommerce/backend/internal/service"
	"chat-powered-ecommerce/backend/pkg/logger"
	"chat-powered-ecommerce/backend/pkg/middleware"
	"chat-powered-ecommerce/backend/pkg/observability"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles chat submission and conversation resumption
type ChatHandler struct {
	chat   *service.ChatService
	logger *logger.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *service.ChatService, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

// SendMessage handles an inbound chat submission: one full
// send-receive-persist cycle against the completion service.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	result, err := h.chat.SendMessage(c.Request.Context(), userID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		case errors.Is(err, service.ErrGenerationFailed):
			observability.GenerationFailures.Inc()
			h.logger.Error("generation failed", "error", err.Error(), "user_id", userID)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate a response"})
		default:
			h.logger.Error("error sending message", "error", err.Error(), "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		}
		return
	}

	observability.MessagesSent.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message":    result.Message,
		"response":   result.Response,
		"session_id": result.SessionID,
	})
}

// LastConversation replays the transcript of the user's most recent session
// so a reconnecting client can continue where it left off.
func (h *ChatHandler) LastConversation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	conversation, err := h.chat.LastConversation(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoConversation):
			c.JSON(http.StatusNotFound, gin.H{"error": "No conversation found"})
		default:
			h.logger.Error("error loading conversation", "error", err.Error(), "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversation"})
		}
		return
	}

	c.JSON(http.StatusOK, conversation)
}
