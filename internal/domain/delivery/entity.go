// internal/domain/delivery/entity.go
package delivery

import (
	"time"

	"github.com/shopspring/decimal"
)

// PincodeZone maps a destination pincode to its serviceability verdict and
// quoted shipping cost. EstimatedDelivery is a display string, not a date.
type PincodeZone struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Pincode           string          `gorm:"uniqueIndex;not null;size:10" json:"pincode"`
	IsServiceable     bool            `gorm:"default:true" json:"is_serviceable"`
	EstimatedDelivery string          `gorm:"size:100" json:"estimated_delivery"`
	ShippingCost      decimal.Decimal `gorm:"type:decimal(16,2)" json:"shipping_cost"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// TableName overrides the table name
func (PincodeZone) TableName() string {
	return "pincode_zones"
}

// Result is the serviceability verdict returned to callers.
type Result struct {
	Pincode           string          `json:"pincode"`
	IsServiceable     bool            `json:"is_serviceable"`
	EstimatedDelivery string          `json:"estimated_delivery"`
	ShippingCost      decimal.Decimal `json:"shipping_cost"`
}
