package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"chat-powered-ecommerce/backend/internal/models"
	"chat-powered-ecommerce/backend/pkg/cache"
	"chat-powered-ecommerce/backend/pkg/logger"
	"chat-powered-ecommerce/backend/pkg/redis"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrBlankField      = errors.New("field must not be blank")
	ErrNegativeValue   = errors.New("value must not be negative")
)

const catalogCacheKey = "products:catalog"

// ProductService handles the product catalog. Catalog reads go through the
// shared redis cache when one is configured, with a short-lived in-process
// cache as the fallback layer; writes invalidate both.
type ProductService struct {
	db    *gorm.DB
	redis *redis.Client
	local *cache.Cache
	log   *logger.Logger
}

// NewProductService creates a new product service. redisClient may be nil.
func NewProductService(db *gorm.DB, redisClient *redis.Client, log *logger.Logger) *ProductService {
	if log == nil {
		log = logger.GetGlobal()
	}
	return &ProductService{
		db:    db,
		redis: redisClient,
		local: cache.New(time.Minute),
		log:   log,
	}
}

// ListProducts returns the full catalog with color options
func (s *ProductService) ListProducts() ([]models.Product, error) {
	if cached, ok := s.local.Get(catalogCacheKey); ok {
		if products, ok := cached.([]models.Product); ok {
			return products, nil
		}
	}
	if s.redis != nil {
		if cached, err := s.redis.Get(catalogCacheKey); err == nil {
			var products []models.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				s.local.Set(catalogCacheKey, products)
				return products, nil
			}
		}
	}

	var products []models.Product
	if err := s.db.Preload("Colors").Find(&products).Error; err != nil {
		return nil, err
	}

	s.local.Set(catalogCacheKey, products)
	if s.redis != nil {
		if data, err := json.Marshal(products); err == nil {
			if err := s.redis.Set(catalogCacheKey, data); err != nil {
				s.log.Debug("catalog cache write failed", "error", err.Error())
			}
		}
	}
	return products, nil
}

// GetProduct returns one product with its colors
func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Colors").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// CreateProduct adds a catalog item and links its color options
func (s *ProductService) CreateProduct(req *models.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrBlankField
	}
	if req.Price < 0 || req.ItemQuantity < 0 {
		return nil, ErrNegativeValue
	}

	product := models.Product{
		Name:         req.Name,
		Description:  req.Description,
		ItemQuantity: req.ItemQuantity,
		Price:        req.Price,
		ImagePath:    req.ImagePath,
		ImageAlt:     req.ImageAlt,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		if len(req.ColorIDs) > 0 {
			var colors []models.Color
			if err := tx.Find(&colors, req.ColorIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(&product).Association("Colors").Append(colors); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog()
	return &product, nil
}

// UpdateProduct applies a partial update to a catalog item
func (s *ProductService) UpdateProduct(id uint, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrBlankField
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ItemQuantity != nil {
		if *req.ItemQuantity < 0 {
			return nil, ErrNegativeValue
		}
		updates["item_quantity"] = *req.ItemQuantity
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrNegativeValue
		}
		updates["price"] = *req.Price
	}
	if req.ImagePath != nil {
		updates["image_path"] = *req.ImagePath
	}
	if req.ImageAlt != nil {
		updates["image_alt"] = *req.ImageAlt
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.invalidateCatalog()
	}
	return product, nil
}

// DeleteProduct removes a catalog item
func (s *ProductService) DeleteProduct(id uint) error {
	result := s.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	s.invalidateCatalog()
	return nil
}

// ListColors returns all color options
func (s *ProductService) ListColors() ([]models.Color, error) {
	var colors []models.Color
	err := s.db.Find(&colors).Error
	return colors, err
}

func (s *ProductService) invalidateCatalog() {
	s.local.Delete(catalogCacheKey)
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(catalogCacheKey); err != nil {
		s.log.Debug("catalog cache invalidation failed", "error", err.Error())
	}
}
