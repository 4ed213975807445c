package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShippingInfo stores delivery details for an order
type ShippingInfo struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	AddressLine1 string `gorm:"not null" json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `gorm:"not null" json:"city"`
	State        string `gorm:"not null" json:"state"`
	PostalCode   string `gorm:"not null" json:"postal_code"`
	Country      string `gorm:"not null" json:"country"`
	PhoneNumber  string `gorm:"not null" json:"phone_number"`
}

// Order is a confirmed purchase. Every order gets a random uuid confirmation
// number at creation time.
type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	ConfirmationNum string    `gorm:"uniqueIndex;size:36;not null" json:"confirmation_num"`
	ShippingInfoID  *uint     `json:"shipping_info_id,omitempty"`

	ShippingInfo *ShippingInfo `json:"shipping_info,omitempty"`
	OrderDetails []OrderDetail `gorm:"constraint:OnDelete:CASCADE" json:"order_details"`
}

// OrderDetail is one line item within an order
type OrderDetail struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	OrderID   uint  `gorm:"index;not null" json:"order_id"`
	ProductID uint  `gorm:"not null" json:"product_id"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	ColorID   *uint `json:"color_id,omitempty"`

	Product *Product `json:"product,omitempty"`
	Color   *Color   `json:"color,omitempty"`
}

// CreateOrderRequest is the request structure for placing an order
type CreateOrderRequest struct {
	ShippingInfo *ShippingInfo            `json:"shipping_info"`
	Items        []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemRequest is one requested line item
type CreateOrderItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
	ColorID   *uint `json:"color_id"`
}

var postalCodeRe = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// ValidPostalCode reports whether a postal code matches the accepted format
// ("12345" or "12345-6789").
func ValidPostalCode(code string) bool {
	return postalCodeRe.MatchString(code)
}

// BeforeCreate assigns the confirmation number before the row is inserted
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ConfirmationNum == "" {
		o.ConfirmationNum = uuid.New().String()
	}
	return nil
}
