package api

import (
	"net/http"
	"strconv"

	"chat-powered-ecommerce/backend/internal/models"
	"chat-powered-ecommerce/backend/internal/service"
	"chat-powered-ecommerce/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	products *service.ProductService
	logger   *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *service.ProductService, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// ListProducts returns the catalog
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.products.ListProducts()
	if err != nil {
		h.logger.Error("error listing products", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one catalog item
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID must be a number"})
		return
	}

	product, err := h.products.GetProduct(id)
	if err != nil {
		switch err {
		case service.ErrProductNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		default:
			h.logger.Error("error getting product", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a catalog item
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.products.CreateProduct(&req)
	if err != nil {
		switch err {
		case service.ErrBlankField, service.ErrNegativeValue:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("error creating product", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		}
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update to a catalog item
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID must be a number"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	product, err := h.products.UpdateProduct(id, &req)
	if err != nil {
		switch err {
		case service.ErrProductNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case service.ErrBlankField, service.ErrNegativeValue:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("error updating product", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a catalog item
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID must be a number"})
		return
	}

	if err := h.products.DeleteProduct(id); err != nil {
		switch err {
		case service.ErrProductNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		default:
			h.logger.Error("error deleting product", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ListColors returns all color options
func (h *ProductHandler) ListColors(c *gin.Context) {
	colors, err := h.products.ListColors()
	if err != nil {
		h.logger.Error("error listing colors", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list colors"})
		return
	}
	c.JSON(http.StatusOK, colors)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	return uint(id), err
}
