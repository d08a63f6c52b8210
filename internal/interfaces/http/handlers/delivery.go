// internal/interfaces/http/handlers/delivery.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/cart-service/internal/config"
	"github.com/your-org/cart-service/internal/domain/delivery"
	"gorm.io/gorm"
)

// DeliveryHandler handles serviceability endpoints
type DeliveryHandler struct {
	deliveryService *delivery.Service
	config          *config.Config
}

// NewDeliveryHandler creates a new delivery handler
func NewDeliveryHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: delivery.NewService(db, redisClient, cfg.Cart.ServiceabilityCacheTTL),
		config:          cfg,
	}
}

// CheckPincode handles GET /delivery/:pincode
func (h *DeliveryHandler) CheckPincode(c *gin.Context) {
	verdict, err := h.deliveryService.Check(c.Request.Context(), c.Param("pincode"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check serviceability",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Serviceability retrieved successfully",
		"data":    verdict,
	})
}

// UpsertPincode handles PUT /delivery/:pincode
func (h *DeliveryHandler) UpsertPincode(c *gin.Context) {
	var zone delivery.PincodeZone
	if err := c.ShouldBindJSON(&zone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}
	zone.Pincode = c.Param("pincode")

	if err := h.deliveryService.Upsert(c.Request.Context(), &zone); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pincode zone saved successfully",
		"data":    zone,
	})
}
