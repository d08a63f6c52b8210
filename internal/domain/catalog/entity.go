// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a sellable catalog entry. Price is the selling price,
// MRP the list price used only for displayed discounts. MaxPurchasable caps
// how many units a single cart may hold; 0 means no product-specific cap.
type Product struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	SKU            string          `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name           string          `gorm:"not null;size:255" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	Price          decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	MRP            decimal.Decimal `gorm:"type:decimal(16,2)" json:"mrp"`
	Image          string          `gorm:"size:500" json:"image"`
	MaxPurchasable int             `gorm:"default:0" json:"max_purchasable"`
	IsActive       bool            `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// Snapshot is the slice of product data the cart captures at add time.
type Snapshot struct {
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Image       string          `json:"image,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	MRP         decimal.Decimal `json:"mrp"`
	MaxQuantity int             `json:"max_quantity,omitempty"`
}
