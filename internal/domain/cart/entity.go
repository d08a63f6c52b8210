// internal/domain/cart/entity.go
package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem represents one entry in the cart: a purchasable unit and a quantity.
// Name, SKU and the two prices are snapshots captured when the item was added;
// they are not re-synced when the catalog changes afterwards.
type LineItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Name        string          `json:"name"`
	SKU         string          `json:"sku"`
	Image       string          `json:"image,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	MRP         decimal.Decimal `json:"mrp"`
	Quantity    int             `json:"quantity"`
	MaxQuantity int             `json:"max_quantity,omitempty"` // 0 means no catalog ceiling; the default cap applies
}

// DeliveryContext holds the serviceability verdict for the session's
// destination pincode. The cart carries at most one at a time.
type DeliveryContext struct {
	Pincode           string          `json:"pincode"`
	IsServiceable     bool            `json:"is_serviceable"`
	EstimatedDelivery string          `json:"estimated_delivery"`
	ShippingCost      decimal.Decimal `json:"shipping_cost"`
}

// Totals represents calculated cart totals. These are derived values: they are
// rebuilt from the line items and delivery context after every mutation and
// are never persisted.
type Totals struct {
	ItemCount int             `json:"item_count"` // Sum of all quantities
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"` // MRP total minus subtotal; informational only
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

// State is a read-only snapshot of the cart: line items in insertion order,
// the current delivery context and the derived totals.
type State struct {
	Items    []LineItem      `json:"items"`
	Delivery DeliveryContext `json:"delivery"`
	Totals   Totals          `json:"totals"`
}
