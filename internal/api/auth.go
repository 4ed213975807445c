package api

import (
	"net/http"

	"chat-powered-ecommerce/backend/internal/models"
	"chat-powered-ecommerce/backend/internal/service"
	"chat-powered-ecommerce/backend/pkg/logger"
	"chat-powered-ecommerce/backend/pkg/middleware"
	"chat-powered-ecommerce/backend/pkg/observability"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles account and session lifecycle requests. Login opens a
// chat session for the user; logout closes it.
type AuthHandler struct {
	users    *service.UserService
	sessions *service.SessionService
	logger   *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users *service.UserService, sessions *service.SessionService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Signup handles user registration
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("error binding JSON for signup", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, token, err := h.users.CreateUser(&req)
	if err != nil {
		switch err {
		case service.ErrUserAlreadyExists:
			c.JSON(http.StatusConflict, gin.H{"error": "A user with this username already exists"})
		default:
			h.logger.Error("error creating user", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user account"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user.ToResponse(),
		"token": token,
	})
}

// Login authenticates a user, opens a new chat session, and returns a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("error binding JSON for login", "error", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	user, token, err := h.users.Login(&req)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		default:
			h.logger.Error("error during login", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred during login"})
		}
		return
	}

	session, err := h.sessions.Open(user.ID)
	if err != nil {
		h.logger.Error("error opening session at login", "error", err.Error(), "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred during login"})
		return
	}
	observability.SessionsOpened.Inc()

	h.logger.Info("user logged in",
		"user_id", user.ID,
		"session_id", session.ID,
	)

	c.JSON(http.StatusOK, gin.H{
		"user":       user.ToResponse(),
		"token":      token,
		"session_id": session.ID,
	})
}

// Logout closes the user's open session. A logout with nothing open still
// succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.sessions.Close(userID); err != nil {
		h.logger.Error("error closing session", "error", err.Error(), "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the current authenticated user
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.users.GetUserByID(userID)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.logger.Error("error getting user", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	c.JSON(http.StatusOK, user.ToResponse())
}
