package models

import (
	"fmt"
	"time"
)

// Product is a catalog item. Prices are stored in cents to keep arithmetic
// exact; PriceInDollars formats for display.
type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	ItemQuantity int       `gorm:"not null;default:0" json:"item_quantity"`
	Price        int64     `gorm:"not null" json:"price"`
	ImagePath    string    `json:"image_path,omitempty"`
	ImageAlt     string    `json:"image_alt,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Colors []Color `gorm:"many2many:product_colors" json:"colors,omitempty"`
}

// Color is a selectable product color option
type Color struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Products []Product `gorm:"many2many:product_colors" json:"-"`
}

// CreateProductRequest is the request structure for adding a catalog item
type CreateProductRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	ItemQuantity int    `json:"item_quantity" binding:"min=0"`
	Price        int64  `json:"price" binding:"required,min=0"`
	ImagePath    string `json:"image_path"`
	ImageAlt     string `json:"image_alt"`
	ColorIDs     []uint `json:"color_ids"`
}

// UpdateProductRequest carries partial catalog updates
type UpdateProductRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ItemQuantity *int    `json:"item_quantity"`
	Price        *int64  `json:"price"`
	ImagePath    *string `json:"image_path"`
	ImageAlt     *string `json:"image_alt"`
}

// PriceInDollars formats the cent price as a dollar string
func (p *Product) PriceInDollars() string {
	return fmt.Sprintf("$%.2f", float64(p.Price)/100)
}
