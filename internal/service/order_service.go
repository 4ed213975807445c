package service

import (
	"errors"

	"chat-powered-ecommerce/backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidPostalCode = errors.New("invalid postal code format")
	ErrInsufficientStock = errors.New("insufficient stock for product")
)

// OrderService handles order placement and lookup
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates a new order service
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder places an order for the user: persists shipping info, the order
// row with its confirmation number, and one detail row per item, and
// decrements stock, all in one transaction.
func (s *OrderService) CreateOrder(userID uint, req *models.CreateOrderRequest) (*models.Order, error) {
	if req.ShippingInfo != nil && !models.ValidPostalCode(req.ShippingInfo.PostalCode) {
		return nil, ErrInvalidPostalCode
	}

	order := models.Order{UserID: userID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.ShippingInfo != nil {
			if err := tx.Create(req.ShippingInfo).Error; err != nil {
				return err
			}
			order.ShippingInfoID = &req.ShippingInfo.ID
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			if product.ItemQuantity < item.Quantity {
				return ErrInsufficientStock
			}

			detail := models.OrderDetail{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				ColorID:   item.ColorID,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}

			if err := tx.Model(&product).
				Update("item_quantity", gorm.Expr("item_quantity - ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(userID, order.ID)
}

// GetOrder returns one of the user's orders with details and products
func (s *OrderService) GetOrder(userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("OrderDetails.Product").
		Preload("OrderDetails.Color").
		Preload("ShippingInfo").
		Where("user_id = ?", userID).
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListOrders returns all of the user's orders, newest first
func (s *OrderService) ListOrders(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("OrderDetails").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
