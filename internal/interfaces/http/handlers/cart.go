// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/cart-service/internal/config"
	"github.com/your-org/cart-service/internal/domain/cart"
	"github.com/your-org/cart-service/internal/domain/catalog"
	"github.com/your-org/cart-service/internal/domain/delivery"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints. The catalog and serviceability lookups
// happen here, before the store is touched; the store itself never performs
// I/O beyond its persistence slot.
type CartHandler struct {
	catalogService  *catalog.Service
	deliveryService *delivery.Service
	redisClient     *redis.Client
	config          *config.Config
	log             *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		catalogService:  catalog.NewService(db),
		deliveryService: delivery.NewService(db, redisClient, cfg.Cart.ServiceabilityCacheTTL),
		redisClient:     redisClient,
		config:          cfg,
		log:             log,
	}
}

// AddItemRequest represents an add to cart request
type AddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// UpdateQuantityRequest represents a quantity update request
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// SetDeliveryRequest represents a delivery pincode request
type SetDeliveryRequest struct {
	Pincode string `json:"pincode" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	store := h.openStore(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    store.State(),
	})
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	snap, err := h.catalogService.Snapshot(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	store := h.openStore(c)
	store.AddItem(cart.LineItem{
		ID:          snap.ProductID,
		ProductID:   snap.ProductID,
		Name:        snap.Name,
		SKU:         snap.SKU,
		Image:       snap.Image,
		UnitPrice:   snap.UnitPrice,
		MRP:         snap.MRP,
		MaxQuantity: snap.MaxQuantity,
	}, req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    store.State(),
	})
}

// UpdateItemQuantity handles PUT /cart/items/:id
func (h *CartHandler) UpdateItemQuantity(c *gin.Context) {
	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store := h.openStore(c)
	store.SetQuantity(c.Param("id"), req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    store.State(),
	})
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	store := h.openStore(c)
	store.RemoveItem(c.Param("id"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    store.State(),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.openStore(c)
	store.Clear()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    store.State(),
	})
}

// SetDelivery handles PUT /cart/delivery
func (h *CartHandler) SetDelivery(c *gin.Context) {
	var req SetDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	verdict, err := h.deliveryService.Check(c.Request.Context(), req.Pincode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check serviceability",
		})
		return
	}

	// A not-serviceable verdict is still stored; the UI decides how to
	// message it.
	store := h.openStore(c)
	store.SetDelivery(verdict.Pincode, verdict.IsServiceable, verdict.EstimatedDelivery, verdict.ShippingCost)

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery context updated successfully",
		"data":    store.State(),
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	store := h.openStore(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": store.State().Totals.ItemCount,
		},
	})
}

// openStore restores the session's cart from Redis. A missing or corrupt
// record yields an empty cart.
func (h *CartHandler) openStore(c *gin.Context) *cart.Store {
	sessionID := h.getOrCreateSessionID(c)
	storage := cart.NewRedisStorage(h.redisClient, sessionID, h.config.Cart.SessionTTL)
	return cart.Open(storage, h.policy(), h.log)
}

func (h *CartHandler) policy() cart.Policy {
	return cart.Policy{
		DefaultMaxQuantity:    h.config.Cart.DefaultMaxQuantity,
		FreeShippingThreshold: decimal.NewFromInt(h.config.Cart.FreeShippingThreshold),
	}
}

// getOrCreateSessionID gets session ID from cookie or creates a new one
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()

		// Session cookie lifetime follows the cart TTL
		maxAge := int(h.config.Cart.SessionTTL.Seconds())
		c.SetCookie("session_id", sessionID, maxAge, "/", "", false, true)
	}

	return sessionID
}
