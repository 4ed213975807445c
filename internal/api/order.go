package api

import (
	"net/http"

	"chat-powered-ecommerce/backend/internal/models"
	"chat-powered-ecommerce/backend/internal/service"
	"chat-powered-ecommerce/backend/pkg/logger"
	"chat-powered-ecommerce/backend/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles order placement and lookup
type OrderHandler struct {
	orders *service.OrderService
	logger *logger.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *service.OrderService, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

// CreateOrder places an order for the authenticated user
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	order, err := h.orders.CreateOrder(userID, &req)
	if err != nil {
		switch err {
		case service.ErrInvalidPostalCode, service.ErrInsufficientStock:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case service.ErrProductNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		default:
			h.logger.Error("error creating order", "error", err.Error(), "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrder returns one of the user's orders
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order ID must be a number"})
		return
	}

	order, err := h.orders.GetOrder(userID, id)
	if err != nil {
		switch err {
		case service.ErrOrderNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			h.logger.Error("error getting order", "error", err.Error(), "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListOrders returns all of the user's orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orders, err := h.orders.ListOrders(userID)
	if err != nil {
		h.logger.Error("error listing orders", "error", err.Error(), "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}
